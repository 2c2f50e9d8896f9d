package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"clinic-admin/internal/dto"
	"clinic-admin/internal/model"
	"clinic-admin/internal/repository"
	"clinic-admin/pkg/mq"
)

// ── 周排班模块业务错误 ──

var (
	ErrInvalidTimeRange          = errors.New("结束时间必须晚于开始时间")
	ErrScheduleReferenceNotFound = errors.New("医生、星期或诊室分配不存在")
)

// EventWorkScheduleUpserted 排班写入成功后发布的事件类型（routing key）
const EventWorkScheduleUpserted = "work_schedule.upserted"

// eventPublishTimeout 事件发布独立于请求生命周期的超时
const eventPublishTimeout = 5 * time.Second

// WorkScheduleUpsertedEvent 排班变更事件
type WorkScheduleUpsertedEvent struct {
	ScheduleID             int64     `json:"scheduleId"`
	DoctorID               int64     `json:"doctorId"`
	WeekdayID              int64     `json:"weekdayId"`
	DoctorRoomAssignmentID int64     `json:"doctorRoomAssignmentId"`
	BranchID               int64     `json:"branchId,omitempty"`
	Active                 bool      `json:"active"`
	Created                bool      `json:"created"`
	OccurredAt             time.Time `json:"occurredAt"`
}

// WorkScheduleService 医生周排班业务接口
//
// 冲突只作为读侧提示：写入不做跨分院冲突拦截
type WorkScheduleService interface {
	// ListWeekdays 周一到周日的固定序列，与已存排班无关
	ListWeekdays(ctx context.Context) ([]dto.WeekdayResponse, error)
	// GetWeekly 分配的周视图，固定 7 行
	GetWeekly(ctx context.Context, assignmentID int64) ([]dto.WeeklyScheduleDayResponse, error)
	// CheckConflict 单日跨分院冲突检查，分配不存在时为 false
	CheckConflict(ctx context.Context, assignmentID, weekdayID int64) (*dto.ConflictCheckResponse, error)
	// Upsert 按 (医生, 星期, 分配) 新建或整行替换
	Upsert(ctx context.Context, req *dto.UpsertWorkScheduleRequest, callerID string) (*dto.WorkScheduleResponse, error)
}

type workScheduleService struct {
	repo      *repository.Repository
	publisher mq.Publisher
	logger    *zap.Logger
}

// NewWorkScheduleService 创建 WorkScheduleService 实例
func NewWorkScheduleService(repo *repository.Repository, publisher mq.Publisher, logger *zap.Logger) WorkScheduleService {
	return &workScheduleService{repo: repo, publisher: publisher, logger: logger}
}

// ────────────────────── ListWeekdays ──────────────────────

func (s *workScheduleService) ListWeekdays(ctx context.Context) ([]dto.WeekdayResponse, error) {
	days, err := s.repo.Weekday.ListOrdered(ctx)
	if err != nil {
		s.logger.Error("查询星期失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.WeekdayResponse, 0, len(days))
	for _, d := range days {
		result = append(result, dto.WeekdayResponse{
			ID:      d.ID,
			Name:    d.Name,
			Ordinal: model.WeekdayOrdinal(d.Name),
		})
	}
	return result, nil
}

// ────────────────────── GetWeekly ──────────────────────

func (s *workScheduleService) GetWeekly(ctx context.Context, assignmentID int64) ([]dto.WeeklyScheduleDayResponse, error) {
	rows, err := s.repo.WorkSchedule.ListWeekly(ctx, assignmentID)
	if err != nil {
		s.logger.Error("查询周排班失败", zap.Int64("assignment_id", assignmentID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.WeeklyScheduleDayResponse, 0, len(rows))
	for _, row := range rows {
		day := dto.WeeklyScheduleDayResponse{
			WeekdayID:              row.WeekdayID,
			WeekdayName:            row.WeekdayName,
			Ordinal:                row.Ordinal,
			ScheduleID:             row.ScheduleID,
			Active:                 row.Active,
			Conflict:               row.Conflict,
			DoctorRoomAssignmentID: assignmentID,
		}
		if row.StartTime != nil {
			v := dto.NormalizeClock(*row.StartTime)
			day.StartTime = &v
		}
		if row.EndTime != nil {
			v := dto.NormalizeClock(*row.EndTime)
			day.EndTime = &v
		}
		result = append(result, day)
	}
	return result, nil
}

// ────────────────────── CheckConflict ──────────────────────

func (s *workScheduleService) CheckConflict(ctx context.Context, assignmentID, weekdayID int64) (*dto.ConflictCheckResponse, error) {
	conflict, err := s.repo.WorkSchedule.HasBranchConflict(ctx, assignmentID, weekdayID)
	if err != nil {
		s.logger.Error("检查排班冲突失败",
			zap.Int64("assignment_id", assignmentID),
			zap.Int64("weekday_id", weekdayID),
			zap.Error(err))
		return nil, err
	}

	return &dto.ConflictCheckResponse{
		DoctorRoomAssignmentID: assignmentID,
		WeekdayID:              weekdayID,
		Conflict:               conflict,
	}, nil
}

// ────────────────────── Upsert ──────────────────────

func (s *workScheduleService) Upsert(ctx context.Context, req *dto.UpsertWorkScheduleRequest, callerID string) (*dto.WorkScheduleResponse, error) {
	start, okStart := dto.ParseClock(*req.StartTime)
	end, okEnd := dto.ParseClock(*req.EndTime)
	if !okStart || !okEnd || !end.After(start) {
		return nil, ErrInvalidTimeRange
	}

	ws := &model.DoctorWorkSchedule{
		DoctorID:               *req.DoctorID,
		WeekdayID:              *req.WeekdayID,
		DoctorRoomAssignmentID: *req.DoctorRoomAssignmentID,
		StartTime:              start.Format(dto.ClockLayout),
		EndTime:                end.Format(dto.ClockLayout),
		Active:                 *req.Active,
	}
	ws.CreatedBy = &callerID
	ws.UpdatedBy = &callerID

	saved, err := s.repo.WorkSchedule.Upsert(ctx, ws)
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrScheduleReferenceNotFound
		}
		s.logger.Error("写入排班失败",
			zap.Int64("doctor_id", ws.DoctorID),
			zap.Int64("weekday_id", ws.WeekdayID),
			zap.Int64("assignment_id", ws.DoctorRoomAssignmentID),
			zap.Error(err))
		return nil, err
	}

	created := saved.WasCreated()
	s.logger.Info("排班已写入",
		zap.Int64("schedule_id", saved.ID),
		zap.Bool("created", created),
		zap.String("caller", callerID))

	s.publishUpserted(saved, created)

	return toWorkScheduleResponse(saved, created), nil
}

// publishUpserted 异步发布排班变更事件，失败只记录日志
func (s *workScheduleService) publishUpserted(saved *model.DoctorWorkSchedule, created bool) {
	event := WorkScheduleUpsertedEvent{
		ScheduleID:             saved.ID,
		DoctorID:               saved.DoctorID,
		WeekdayID:              saved.WeekdayID,
		DoctorRoomAssignmentID: saved.DoctorRoomAssignmentID,
		Active:                 saved.Active,
		Created:                created,
		OccurredAt:             saved.UpdatedAt,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), eventPublishTimeout)
		defer cancel()

		placement, found, err := s.repo.Assignment.Resolve(ctx, event.DoctorRoomAssignmentID)
		if err != nil {
			s.logger.Warn("解析排班所属分院失败", zap.Int64("assignment_id", event.DoctorRoomAssignmentID), zap.Error(err))
		} else if found {
			event.BranchID = placement.BranchID
		}

		if err := s.publisher.Publish(ctx, EventWorkScheduleUpserted, event); err != nil {
			s.logger.Warn("发布排班变更事件失败", zap.Int64("schedule_id", event.ScheduleID), zap.Error(err))
		}
	}()
}

// ── 内部辅助方法 ──

func toWorkScheduleResponse(ws *model.DoctorWorkSchedule, created bool) *dto.WorkScheduleResponse {
	return &dto.WorkScheduleResponse{
		ID:                     ws.ID,
		DoctorID:               ws.DoctorID,
		WeekdayID:              ws.WeekdayID,
		DoctorRoomAssignmentID: ws.DoctorRoomAssignmentID,
		StartTime:              dto.NormalizeClock(ws.StartTime),
		EndTime:                dto.NormalizeClock(ws.EndTime),
		Active:                 ws.Active,
		Created:                created,
		UpdatedAt:              ws.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
