package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"clinic-admin/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportWeekly 导出分配的周排班为 Excel
	ExportWeekly(ctx context.Context, assignmentID int64) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo     *repository.Repository
	schedule WorkScheduleService
	logger   *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, schedule WorkScheduleService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, schedule: schedule, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportWeekly — 周排班导出
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 第 1 行：分院 / 诊室标题
//   - 第 3 行：表头（星期、开始、结束、启用、跨分院冲突）
//   - 第 4~10 行：周一 ~ 周日，无排班的日期留空
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportWeekly(ctx context.Context, assignmentID int64) (*bytes.Buffer, string, error) {
	placement, found, err := s.repo.Assignment.Resolve(ctx, assignmentID)
	if err != nil {
		s.logger.Error("解析诊室分配失败", zap.Int64("assignment_id", assignmentID), zap.Error(err))
		return nil, "", err
	}
	if !found {
		return nil, "", ErrAssignmentNotFound
	}

	days, err := s.schedule.GetWeekly(ctx, assignmentID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("关闭 Excel 文件失败", zap.Error(err))
		}
	}()

	const sheet = "周排班"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		s.logger.Error("重命名工作表失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	title := fmt.Sprintf("%s / %s（分配 #%d）", placement.BranchName, placement.RoomName, assignmentID)
	_ = f.SetCellValue(sheet, "A1", title)
	_ = f.MergeCell(sheet, "A1", "E1")

	headers := []string{"星期", "开始", "结束", "启用", "跨分院冲突"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		_ = f.SetCellValue(sheet, cell, h)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err == nil {
		_ = f.SetCellStyle(sheet, "A1", "E3", headerStyle)
	}

	for i, day := range days {
		row := i + 4
		values := []interface{}{day.WeekdayName, "", "", yesNo(day.Active), yesNo(day.Conflict)}
		if day.StartTime != nil {
			values[1] = *day.StartTime
		}
		if day.EndTime != nil {
			values[2] = *day.EndTime
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	_ = f.SetColWidth(sheet, "A", "E", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("weekly-schedule-%d.xlsx", assignmentID)
	return buf, filename, nil
}

func yesNo(b bool) string {
	if b {
		return "是"
	}
	return "否"
}
