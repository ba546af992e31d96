package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/kk1027m/settukomaki/internal/model"
	"github.com/kk1027m/settukomaki/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) ListAdmins(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == model.RoleAdmin && u.IsActive {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	if u, ok := m.users[id]; ok {
		u.IsActive = false
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock LubricationRepository ──
// 表示用の statusRows はテストが直接設定する（本実装では SQL で算出）

type mockLubricationRepo struct {
	points     map[string]*model.LubricationPoint
	records    []model.LubricationRecord
	statusRows []repository.LubricationStatusRow
	seq        int
}

func newMockLubricationRepo() *mockLubricationRepo {
	return &mockLubricationRepo{points: make(map[string]*model.LubricationPoint)}
}

func (m *mockLubricationRepo) Create(_ context.Context, point *model.LubricationPoint) error {
	for _, p := range m.points {
		if p.MachineName == point.MachineName && p.Location == point.Location {
			return gorm.ErrDuplicatedKey
		}
	}
	if point.PointID == "" {
		m.seq++
		point.PointID = fmt.Sprintf("lp-%03d", m.seq)
	}
	m.points[point.PointID] = point
	return nil
}

func (m *mockLubricationRepo) GetByID(_ context.Context, id string) (*model.LubricationPoint, error) {
	if p, ok := m.points[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLubricationRepo) Update(_ context.Context, point *model.LubricationPoint) error {
	m.points[point.PointID] = point
	return nil
}

func (m *mockLubricationRepo) Delete(_ context.Context, id string) error {
	if p, ok := m.points[id]; ok {
		p.IsActive = false
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockLubricationRepo) ListWithStatus(_ context.Context) ([]repository.LubricationStatusRow, error) {
	return m.statusRows, nil
}

func (m *mockLubricationRepo) ListAlerts(_ context.Context, windowDays int) ([]repository.LubricationStatusRow, error) {
	var result []repository.LubricationStatusRow
	for _, row := range m.statusRows {
		if row.DaysUntilDue == nil || *row.DaysUntilDue <= windowDays {
			result = append(result, row)
		}
	}
	return result, nil
}

func (m *mockLubricationRepo) CreateRecord(_ context.Context, record *model.LubricationRecord) error {
	if record.RecordID == "" {
		m.seq++
		record.RecordID = fmt.Sprintf("lr-%03d", m.seq)
	}
	record.CreatedAt = time.Now()
	m.records = append(m.records, *record)
	return nil
}

func (m *mockLubricationRepo) ListRecords(_ context.Context, pointID string, limit int) ([]model.LubricationRecord, error) {
	var result []model.LubricationRecord
	for _, r := range m.records {
		if r.PointID == pointID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PerformedAt.After(result[j].PerformedAt) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockLubricationRepo) ListAllRecords(_ context.Context, limit int) ([]model.LubricationRecord, error) {
	result := append([]model.LubricationRecord(nil), m.records...)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ── Mock ReplacementRepository ──

type mockReplacementRepo struct {
	schedules  map[string]*model.ReplacementSchedule
	records    []model.ReplacementRecord
	statusRows []repository.ReplacementStatusRow
	seq        int
}

func newMockReplacementRepo() *mockReplacementRepo {
	return &mockReplacementRepo{schedules: make(map[string]*model.ReplacementSchedule)}
}

func (m *mockReplacementRepo) Create(_ context.Context, schedule *model.ReplacementSchedule) error {
	if schedule.ScheduleID == "" {
		m.seq++
		schedule.ScheduleID = fmt.Sprintf("rs-%03d", m.seq)
	}
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockReplacementRepo) GetByID(_ context.Context, id string) (*model.ReplacementSchedule, error) {
	if s, ok := m.schedules[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReplacementRepo) Update(_ context.Context, schedule *model.ReplacementSchedule) error {
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockReplacementRepo) Delete(_ context.Context, id string) error {
	if s, ok := m.schedules[id]; ok {
		s.IsActive = false
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockReplacementRepo) ListWithStatus(_ context.Context) ([]repository.ReplacementStatusRow, error) {
	return m.statusRows, nil
}

func (m *mockReplacementRepo) ListAlerts(_ context.Context, windowDays int) ([]repository.ReplacementStatusRow, error) {
	var result []repository.ReplacementStatusRow
	for _, row := range m.statusRows {
		if row.DaysUntilDue == nil || *row.DaysUntilDue <= windowDays {
			result = append(result, row)
		}
	}
	// 与 SQL 同序：unit_name NULLS LAST → days_until_due NULLS FIRST → machine_name
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		switch {
		case a.UnitName == nil && b.UnitName != nil:
			return false
		case a.UnitName != nil && b.UnitName == nil:
			return true
		case a.UnitName != nil && b.UnitName != nil && *a.UnitName != *b.UnitName:
			return *a.UnitName < *b.UnitName
		}
		switch {
		case a.DaysUntilDue == nil && b.DaysUntilDue != nil:
			return true
		case a.DaysUntilDue != nil && b.DaysUntilDue == nil:
			return false
		case a.DaysUntilDue != nil && b.DaysUntilDue != nil && *a.DaysUntilDue != *b.DaysUntilDue:
			return *a.DaysUntilDue < *b.DaysUntilDue
		}
		return a.MachineName < b.MachineName
	})
	return result, nil
}

func (m *mockReplacementRepo) CreateRecord(_ context.Context, record *model.ReplacementRecord) error {
	if record.RecordID == "" {
		m.seq++
		record.RecordID = fmt.Sprintf("rr-%03d", m.seq)
	}
	record.CreatedAt = time.Now()
	m.records = append(m.records, *record)
	return nil
}

func (m *mockReplacementRepo) ListRecords(_ context.Context, scheduleID string, limit int) ([]model.ReplacementRecord, error) {
	var result []model.ReplacementRecord
	for _, r := range m.records {
		if r.ScheduleID == scheduleID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ReplacedAt.After(result[j].ReplacedAt) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockReplacementRepo) ListAllRecords(_ context.Context, limit int) ([]model.ReplacementRecord, error) {
	result := append([]model.ReplacementRecord(nil), m.records...)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ── Mock PartRepository ──

type mockPartRepo struct {
	parts   map[string]*model.Part
	history []model.PartHistory
	seq     int
}

func newMockPartRepo() *mockPartRepo {
	return &mockPartRepo{parts: make(map[string]*model.Part)}
}

func (m *mockPartRepo) Create(_ context.Context, part *model.Part) error {
	for _, p := range m.parts {
		if part.PartNumber != nil && p.PartNumber != nil && *p.PartNumber == *part.PartNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	if part.PartID == "" {
		m.seq++
		part.PartID = fmt.Sprintf("part-%03d", m.seq)
	}
	m.parts[part.PartID] = part
	return nil
}

func (m *mockPartRepo) GetByID(_ context.Context, id string) (*model.Part, error) {
	if p, ok := m.parts[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPartRepo) Update(_ context.Context, part *model.Part) error {
	m.parts[part.PartID] = part
	return nil
}

func (m *mockPartRepo) Delete(_ context.Context, id string) error {
	if p, ok := m.parts[id]; ok {
		p.IsActive = false
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockPartRepo) ListActive(_ context.Context) ([]model.Part, error) {
	var result []model.Part
	for _, p := range m.parts {
		if p.IsActive {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PartName < result[j].PartName })
	return result, nil
}

func (m *mockPartRepo) ListLowStock(_ context.Context) ([]model.Part, error) {
	var result []model.Part
	for _, p := range m.parts {
		if p.IsActive && p.CurrentStock < p.MinStock {
			result = append(result, *p)
		}
	}
	// 与 SQL 同序：unit_name NULLS LAST → 在库切れ优先 → 残量比率 → 部品名
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		switch {
		case a.UnitName == nil && b.UnitName != nil:
			return false
		case a.UnitName != nil && b.UnitName == nil:
			return true
		case a.UnitName != nil && b.UnitName != nil && *a.UnitName != *b.UnitName:
			return *a.UnitName < *b.UnitName
		}
		aZero, bZero := a.CurrentStock == 0, b.CurrentStock == 0
		if aZero != bZero {
			return aZero
		}
		aRatio := float64(a.CurrentStock) / float64(a.MinStock)
		bRatio := float64(b.CurrentStock) / float64(b.MinStock)
		if aRatio != bRatio {
			return aRatio < bRatio
		}
		return a.PartName < b.PartName
	})
	return result, nil
}

func (m *mockPartRepo) UpdateStock(_ context.Context, partID string, newStock int) error {
	if p, ok := m.parts[partID]; ok {
		p.CurrentStock = newStock
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockPartRepo) CreateHistory(_ context.Context, history *model.PartHistory) error {
	if history.HistoryID == "" {
		m.seq++
		history.HistoryID = fmt.Sprintf("ph-%03d", m.seq)
	}
	history.CreatedAt = time.Now()
	m.history = append(m.history, *history)
	return nil
}

func (m *mockPartRepo) ListHistory(_ context.Context, partID string, limit int) ([]model.PartHistory, error) {
	var result []model.PartHistory
	for _, h := range m.history {
		if h.PartID == partID {
			result = append(result, h)
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockPartRepo) ListAllHistory(_ context.Context, limit int) ([]model.PartHistory, error) {
	result := append([]model.PartHistory(nil), m.history...)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockPartRepo) ListOrderRequests(_ context.Context, limit int) ([]repository.OrderRequestRow, error) {
	var result []repository.OrderRequestRow
	for _, h := range m.history {
		if h.ActionType != model.ActionOrder {
			continue
		}
		p, ok := m.parts[h.PartID]
		if !ok {
			continue
		}
		result = append(result, repository.OrderRequestRow{
			HistoryID:    h.HistoryID,
			PartID:       h.PartID,
			PartName:     p.PartName,
			PartNumber:   p.PartNumber,
			Quantity:     h.Quantity,
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStock,
			Unit:         p.Unit,
			Notes:        h.Notes,
			RequestedBy:  h.PerformedBy,
			CreatedAt:    h.CreatedAt,
		})
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ── Mock NotificationRepository ──
// 広播通知の日次一意制約（部分唯一インデックス）も再現する

type mockNotificationRepo struct {
	notifications []model.Notification
	seq           int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if n.UserID == nil && n.EntityType != nil && n.EntityID != nil {
		for _, existing := range m.notifications {
			if existing.UserID == nil &&
				existing.Type == n.Type &&
				existing.EntityType != nil && *existing.EntityType == *n.EntityType &&
				existing.EntityID != nil && *existing.EntityID == *n.EntityID &&
				sameDay(existing.CreatedAt, time.Now()) {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	m.seq++
	n.NotificationID = fmt.Sprintf("nt-%03d", m.seq)
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *mockNotificationRepo) BatchCreate(ctx context.Context, notifications []model.Notification) error {
	for i := range notifications {
		if err := m.Create(ctx, &notifications[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockNotificationRepo) ListForUser(_ context.Context, userID string, unreadOnly bool, limit int) ([]model.Notification, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if n.UserID != nil && *n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		result = append(result, n)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockNotificationRepo) UnreadCount(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID != nil && *n.UserID != userID {
			continue
		}
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id, userID string) error {
	for i := range m.notifications {
		n := &m.notifications[i]
		if n.NotificationID == id && (n.UserID == nil || *n.UserID == userID) {
			n.IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	for i := range m.notifications {
		n := &m.notifications[i]
		if n.UserID == nil || *n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) Delete(_ context.Context, id, userID string) error {
	for i := range m.notifications {
		n := m.notifications[i]
		if n.NotificationID == id && n.UserID != nil && *n.UserID == userID {
			m.notifications = append(m.notifications[:i], m.notifications[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) ExistsToday(_ context.Context, notifyType, entityType, entityID string) (bool, error) {
	for _, n := range m.notifications {
		if n.UserID != nil {
			continue
		}
		if n.Type == notifyType &&
			n.EntityType != nil && *n.EntityType == entityType &&
			n.EntityID != nil && *n.EntityID == entityID &&
			sameDay(n.CreatedAt, time.Now()) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockNotificationRepo) ListUnsent(_ context.Context, olderThan time.Time, limit int) ([]model.Notification, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if !n.IsSent && n.CreatedAt.Before(olderThan) {
			result = append(result, n)
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockNotificationRepo) MarkSent(_ context.Context, ids []string) (int64, error) {
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	var marked int64
	now := time.Now()
	for i := range m.notifications {
		n := &m.notifications[i]
		if idSet[n.NotificationID] && !n.IsSent {
			n.IsSent = true
			n.SentAt = &now
			marked++
		}
	}
	return marked, nil
}

// ── Mock PushSubscriptionRepository ──

type mockPushSubscriptionRepo struct {
	subs     map[string]*model.PushSubscription
	adminIDs []string
	seq      int
}

func newMockPushSubscriptionRepo() *mockPushSubscriptionRepo {
	return &mockPushSubscriptionRepo{subs: make(map[string]*model.PushSubscription)}
}

func (m *mockPushSubscriptionRepo) Upsert(_ context.Context, sub *model.PushSubscription) error {
	for _, existing := range m.subs {
		if existing.UserID == sub.UserID && existing.Endpoint == sub.Endpoint {
			existing.P256dh = sub.P256dh
			existing.Auth = sub.Auth
			existing.UserAgent = sub.UserAgent
			existing.IsActive = true
			sub.SubscriptionID = existing.SubscriptionID
			return nil
		}
	}
	if sub.SubscriptionID == "" {
		m.seq++
		sub.SubscriptionID = fmt.Sprintf("ps-%03d", m.seq)
	}
	sub.IsActive = true
	m.subs[sub.SubscriptionID] = sub
	return nil
}

func (m *mockPushSubscriptionRepo) Deactivate(_ context.Context, subscriptionID string) error {
	if s, ok := m.subs[subscriptionID]; ok {
		s.IsActive = false
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockPushSubscriptionRepo) DeactivateByEndpoint(_ context.Context, userID, endpoint string) error {
	for _, s := range m.subs {
		if s.UserID == userID && s.Endpoint == endpoint && s.IsActive {
			s.IsActive = false
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockPushSubscriptionRepo) ListActiveByUser(_ context.Context, userID string) ([]model.PushSubscription, error) {
	var result []model.PushSubscription
	for _, s := range m.subs {
		if s.UserID == userID && s.IsActive {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SubscriptionID < result[j].SubscriptionID })
	return result, nil
}

func (m *mockPushSubscriptionRepo) ListActiveUserIDs(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var result []string
	for _, s := range m.subs {
		if s.IsActive && !seen[s.UserID] {
			seen[s.UserID] = true
			result = append(result, s.UserID)
		}
	}
	sort.Strings(result)
	return result, nil
}

func (m *mockPushSubscriptionRepo) ListActiveAdminUserIDs(_ context.Context) ([]string, error) {
	return m.adminIDs, nil
}

// ── Mock SettingRepository ──

type mockSettingRepo struct {
	settings map[string]*model.Setting
}

func newMockSettingRepo() *mockSettingRepo {
	return &mockSettingRepo{settings: make(map[string]*model.Setting)}
}

func (m *mockSettingRepo) List(_ context.Context) ([]model.Setting, error) {
	var result []model.Setting
	for _, s := range m.settings {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result, nil
}

func (m *mockSettingRepo) Get(_ context.Context, key string) (*model.Setting, error) {
	if s, ok := m.settings[key]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSettingRepo) Update(_ context.Context, key, value string) error {
	if s, ok := m.settings[key]; ok {
		s.Value = value
		s.UpdatedAt = time.Now()
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock TopicRepository ──

type mockTopicRepo struct {
	topics map[string]*model.Topic
	seq    int
}

func newMockTopicRepo() *mockTopicRepo {
	return &mockTopicRepo{topics: make(map[string]*model.Topic)}
}

func (m *mockTopicRepo) Create(_ context.Context, topic *model.Topic) error {
	if topic.TopicID == "" {
		m.seq++
		topic.TopicID = fmt.Sprintf("tp-%03d", m.seq)
	}
	m.topics[topic.TopicID] = topic
	return nil
}

func (m *mockTopicRepo) GetByID(_ context.Context, id string) (*model.Topic, error) {
	if t, ok := m.topics[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTopicRepo) List(_ context.Context, limit int) ([]model.Topic, error) {
	var result []model.Topic
	for _, t := range m.topics {
		result = append(result, *t)
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockTopicRepo) Update(_ context.Context, topic *model.Topic) error {
	m.topics[topic.TopicID] = topic
	return nil
}

func (m *mockTopicRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.topics[id]; ok {
		delete(m.topics, id)
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock InquiryRepository ──

type mockInquiryRepo struct {
	inquiries map[string]*model.Inquiry
	seq       int
}

func newMockInquiryRepo() *mockInquiryRepo {
	return &mockInquiryRepo{inquiries: make(map[string]*model.Inquiry)}
}

func (m *mockInquiryRepo) Create(_ context.Context, inquiry *model.Inquiry) error {
	if inquiry.InquiryID == "" {
		m.seq++
		inquiry.InquiryID = fmt.Sprintf("iq-%03d", m.seq)
	}
	m.inquiries[inquiry.InquiryID] = inquiry
	return nil
}

func (m *mockInquiryRepo) GetByID(_ context.Context, id string) (*model.Inquiry, error) {
	if i, ok := m.inquiries[id]; ok {
		return i, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInquiryRepo) List(_ context.Context, status string, limit int) ([]model.Inquiry, error) {
	var result []model.Inquiry
	for _, i := range m.inquiries {
		if status != "" && i.Status != status {
			continue
		}
		result = append(result, *i)
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockInquiryRepo) UpdateStatus(_ context.Context, id, status string) error {
	if i, ok := m.inquiries[id]; ok {
		i.Status = status
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock ProcedureRepository ──

type mockProcedureRepo struct {
	procedures map[string]*model.MaintenanceProcedure
	comments   []model.ProcedureComment
	seq        int
}

func newMockProcedureRepo() *mockProcedureRepo {
	return &mockProcedureRepo{procedures: make(map[string]*model.MaintenanceProcedure)}
}

func (m *mockProcedureRepo) Create(_ context.Context, procedure *model.MaintenanceProcedure) error {
	if procedure.ProcedureID == "" {
		m.seq++
		procedure.ProcedureID = fmt.Sprintf("pr-%03d", m.seq)
	}
	m.procedures[procedure.ProcedureID] = procedure
	return nil
}

func (m *mockProcedureRepo) GetByID(_ context.Context, id string) (*model.MaintenanceProcedure, error) {
	if p, ok := m.procedures[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProcedureRepo) List(_ context.Context, category, machineName string) ([]model.MaintenanceProcedure, error) {
	var result []model.MaintenanceProcedure
	for _, p := range m.procedures {
		if category != "" && p.Category != category {
			continue
		}
		if machineName != "" && (p.MachineName == nil || *p.MachineName != machineName) {
			continue
		}
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockProcedureRepo) Update(_ context.Context, procedure *model.MaintenanceProcedure) error {
	m.procedures[procedure.ProcedureID] = procedure
	return nil
}

func (m *mockProcedureRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.procedures[id]; ok {
		delete(m.procedures, id)
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockProcedureRepo) CreateComment(_ context.Context, comment *model.ProcedureComment) error {
	if comment.CommentID == "" {
		m.seq++
		comment.CommentID = fmt.Sprintf("pc-%03d", m.seq)
	}
	m.comments = append(m.comments, *comment)
	return nil
}

func (m *mockProcedureRepo) ListComments(_ context.Context, procedureID string) ([]model.ProcedureComment, error) {
	var result []model.ProcedureComment
	for _, c := range m.comments {
		if c.ProcedureID == procedureID {
			result = append(result, c)
		}
	}
	return result, nil
}

// ── 聚合辅助 ──

func newMockRepository() *repository.Repository {
	return &repository.Repository{
		User:             newMockUserRepo(),
		Lubrication:      newMockLubricationRepo(),
		Replacement:      newMockReplacementRepo(),
		Part:             newMockPartRepo(),
		Notification:     newMockNotificationRepo(),
		PushSubscription: newMockPushSubscriptionRepo(),
		Setting:          newMockSettingRepo(),
		Topic:            newMockTopicRepo(),
		Inquiry:          newMockInquiryRepo(),
		Procedure:        newMockProcedureRepo(),
	}
}

// [自证通过] internal/service/mock_repos_test.go
