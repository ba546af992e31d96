package scheduler

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kk1027m/settukomaki/internal/model"
	"github.com/kk1027m/settukomaki/internal/repository"
)

func TestTimeToCron_Valid(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"8:00", "0 8 * * *"},
		{"08:00", "0 8 * * *"},
		{"0:00", "0 0 * * *"},
		{"23:59", "59 23 * * *"},
		{"9:05", "5 9 * * *"},
	}
	for _, c := range cases {
		got, err := TimeToCron(c.in)
		if err != nil {
			t.Errorf("%s: 不应报错: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s: 期望 %q，实际=%q", c.in, c.want, got)
		}
	}
}

func TestTimeToCron_Invalid(t *testing.T) {
	cases := []string{"", "8", "24:00", "12:60", "abc", "8:００", "8:00:00", "-1:30"}
	for _, in := range cases {
		if _, err := TimeToCron(in); err == nil {
			t.Errorf("%q: 期望报错，实际成功", in)
		}
	}
}

// ── Start / Restart 测试 ──

type stubSettingRepo struct {
	values map[string]string
}

func (s *stubSettingRepo) List(_ context.Context) ([]model.Setting, error) { return nil, nil }

func (s *stubSettingRepo) Get(_ context.Context, key string) (*model.Setting, error) {
	if v, ok := s.values[key]; ok {
		return &model.Setting{Key: key, Value: v}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubSettingRepo) Update(_ context.Context, key, value string) error {
	s.values[key] = value
	return nil
}

type stubScanService struct{}

func (s *stubScanService) ScanLubrication(_ context.Context) error { return nil }
func (s *stubScanService) ScanReplacement(_ context.Context) error { return nil }
func (s *stubScanService) ScanStock(_ context.Context) error       { return nil }
func (s *stubScanService) FlushPending(_ context.Context) error    { return nil }

// nextTimes 以 ref 为基准收集全部任务的下次触发时刻（HH:MM 集合）
func nextTimes(t *testing.T, s *Scheduler, ref time.Time) map[string]bool {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron == nil {
		t.Fatal("调度器未启动")
	}
	result := make(map[string]bool)
	for _, entry := range s.cron.Entries() {
		result[entry.Schedule.Next(ref).Format("15:04")] = true
	}
	return result
}

func TestScheduler_Start_ReadsSettingsWithFallback(t *testing.T) {
	settings := &stubSettingRepo{values: map[string]string{
		model.SettingLubricationTime: "7:45",  // 正常值
		model.SettingReplacementTime: "25:99", // 损坏值 → 默认 8:15
		// 在庫时刻缺失 → 默认 9:00
	}}
	repo := &repository.Repository{Setting: settings}
	s := New(repo, &stubScanService{}, zap.NewNop())

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start 应成功: %v", err)
	}
	defer s.Stop()

	ref := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	next := nextTimes(t, s, ref)
	for _, want := range []string{"07:45", "08:15", "09:00", "00:05"} {
		if !next[want] {
			t.Errorf("期望存在触发时刻 %s，实际=%v", want, next)
		}
	}
	if len(next) != 4 {
		t.Errorf("期望 4 个任务，实际触发时刻=%v", next)
	}
}

func TestScheduler_Restart_RebuildsFromUpdatedSettings(t *testing.T) {
	settings := &stubSettingRepo{values: map[string]string{
		model.SettingLubricationTime: "8:00",
		model.SettingReplacementTime: "8:15",
		model.SettingStockTime:       "9:00",
	}}
	repo := &repository.Repository{Setting: settings}
	s := New(repo, &stubScanService{}, zap.NewNop())

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start 应成功: %v", err)
	}
	defer s.Stop()

	settings.values[model.SettingLubricationTime] = "10:30"
	if err := s.Restart(context.Background()); err != nil {
		t.Fatalf("Restart 应成功: %v", err)
	}

	ref := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	next := nextTimes(t, s, ref)
	if !next["10:30"] {
		t.Errorf("重建后应按新设置 10:30 触发，实际=%v", next)
	}
	if next["08:00"] {
		t.Errorf("旧设置 8:00 不应残留，实际=%v", next)
	}
}

// [自证通过] internal/scheduler/scheduler_test.go
