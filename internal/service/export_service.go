package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/kk1027m/settukomaki/internal/repository"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成导出文件失败")

const exportHistoryLimit = 1000

// ExportService 导出业务接口
//
// 设计说明：
//   - 部品台帳 / 入出庫履歴导出为 Excel (.xlsx)
//   - 給油・交換期限导出为 iCalendar (.ics)，可导入手机日历
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	ExportParts(ctx context.Context) (*bytes.Buffer, string, error)
	ExportPartHistory(ctx context.Context) (*bytes.Buffer, string, error)
	ExportDueDates(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ────────────────────── ExportParts ──────────────────────

func (s *exportService) ExportParts(ctx context.Context) (*bytes.Buffer, string, error) {
	parts, err := s.repo.Part.ListActive(ctx)
	if err != nil {
		s.logger.Error("查询部品失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "部品台帳"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 16)
	f.SetColWidth(sheetName, "B", "B", 24)
	f.SetColWidth(sheetName, "C", "E", 10)
	f.SetColWidth(sheetName, "F", "H", 16)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"品番", "部品名", "在庫", "基準", "単位", "ユニット", "棚・箱", "状態"}
	for i, h := range headers {
		c := cell(colName(i), 1)
		f.SetCellValue(sheetName, c, h)
		f.SetCellStyle(sheetName, c, c, headerStyle)
	}

	row := 2
	for i := range parts {
		p := parts[i]
		f.SetCellValue(sheetName, cell("A", row), strOrDash(p.PartNumber))
		f.SetCellValue(sheetName, cell("B", row), p.PartName)
		f.SetCellValue(sheetName, cell("C", row), p.CurrentStock)
		f.SetCellValue(sheetName, cell("D", row), p.MinStock)
		f.SetCellValue(sheetName, cell("E", row), p.Unit)
		f.SetCellValue(sheetName, cell("F", row), strOrDash(p.UnitName))
		f.SetCellValue(sheetName, cell("G", row), strOrDash(p.ShelfBoxName))
		status := "充足"
		switch {
		case p.CurrentStock == 0:
			status = "在庫切れ"
		case p.NeedsOrder():
			status = "要発注"
		}
		f.SetCellValue(sheetName, cell("H", row), status)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("部品台帳_%s.xlsx", timeNow().Format("20060102"))
	return buf, filename, nil
}

// ────────────────────── ExportPartHistory ──────────────────────

func (s *exportService) ExportPartHistory(ctx context.Context) (*bytes.Buffer, string, error) {
	histories, err := s.repo.Part.ListAllHistory(ctx, exportHistoryLimit)
	if err != nil {
		s.logger.Error("查询入出庫履歴失败", zap.Error(err))
		return nil, "", err
	}

	// 部品名索引
	parts, err := s.repo.Part.ListActive(ctx)
	if err != nil {
		s.logger.Error("查询部品失败", zap.Error(err))
		return nil, "", err
	}
	nameByID := make(map[string]string, len(parts))
	for i := range parts {
		nameByID[parts[i].PartID] = parts[i].PartName
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "入出庫履歴"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetColWidth(sheetName, "B", "B", 24)
	f.SetColWidth(sheetName, "C", "F", 10)
	f.SetColWidth(sheetName, "G", "G", 30)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"日時", "部品名", "種別", "数量", "変更前", "変更後", "備考"}
	for i, h := range headers {
		c := cell(colName(i), 1)
		f.SetCellValue(sheetName, c, h)
		f.SetCellStyle(sheetName, c, c, headerStyle)
	}

	row := 2
	for i := range histories {
		h := histories[i]
		name := nameByID[h.PartID]
		if name == "" {
			name = h.PartID
		}
		f.SetCellValue(sheetName, cell("A", row), h.CreatedAt.Format("2006-01-02 15:04"))
		f.SetCellValue(sheetName, cell("B", row), name)
		f.SetCellValue(sheetName, cell("C", row), h.ActionType)
		f.SetCellValue(sheetName, cell("D", row), h.Quantity)
		f.SetCellValue(sheetName, cell("E", row), h.StockBefore)
		f.SetCellValue(sheetName, cell("F", row), h.StockAfter)
		f.SetCellValue(sheetName, cell("G", row), strOrDash(h.Notes))
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("入出庫履歴_%s.xlsx", timeNow().Format("20060102"))
	return buf, filename, nil
}

// ────────────────────── ExportDueDates ──────────────────────

// ExportDueDates 将給油・交換的下次期限导出为 iCalendar 全天事件
func (s *exportService) ExportDueDates(ctx context.Context) (*bytes.Buffer, string, error) {
	lubRows, err := s.repo.Lubrication.ListWithStatus(ctx)
	if err != nil {
		s.logger.Error("查询給油ポイント失败", zap.Error(err))
		return nil, "", err
	}
	replRows, err := s.repo.Replacement.ListWithStatus(ctx)
	if err != nil {
		s.logger.Error("查询交換予定失败", zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//settukomaki//maintenance//JA")

	now := timeNow()
	for i := range lubRows {
		row := lubRows[i]
		if row.NextDueDate == nil {
			continue
		}
		evt := cal.AddEvent(fmt.Sprintf("lub-%s@settukomaki", row.PointID))
		evt.SetCreatedTime(now)
		evt.SetDtStampTime(now)
		evt.SetAllDayStartAt(*row.NextDueDate)
		evt.SetAllDayEndAt(row.NextDueDate.AddDate(0, 0, 1))
		evt.SetSummary(fmt.Sprintf("給油：%s %s", row.MachineName, row.Location))
		evt.SetDescription(fmt.Sprintf("周期 %d 日", row.CycleDays))
	}
	for i := range replRows {
		row := replRows[i]
		if row.NextDueDate == nil {
			continue
		}
		evt := cal.AddEvent(fmt.Sprintf("repl-%s@settukomaki", row.ScheduleID))
		evt.SetCreatedTime(now)
		evt.SetDtStampTime(now)
		evt.SetAllDayStartAt(*row.NextDueDate)
		evt.SetAllDayEndAt(row.NextDueDate.AddDate(0, 0, 1))
		evt.SetSummary(fmt.Sprintf("部品交換：%s %s", row.MachineName, row.PartName))
		evt.SetDescription(fmt.Sprintf("周期 %d 日", row.CycleDays))
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("メンテナンス予定_%s.ics", now.Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func strOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// [自证通过] internal/service/export_service.go
