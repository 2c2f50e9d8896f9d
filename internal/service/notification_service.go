package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"clinic-admin/internal/dto"
	"clinic-admin/pkg/mq"
)

// ── 通知模块业务错误 ──

var (
	ErrNotificationUnavailable = errors.New("通知队列不可用")
)

// DoctorNotification 投递到通知队列的单条消息，设备令牌查找与推送由下游消费者完成
type DoctorNotification struct {
	DoctorID  int64     `json:"doctorId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationService 推送通知扇出接口
type NotificationService interface {
	// Push 每位医生一条消息（去重），返回入队数量
	Push(ctx context.Context, req *dto.PushNotificationRequest, callerID string) (*dto.PushNotificationResponse, error)
}

type notificationService struct {
	publisher mq.Publisher
	queue     string
	logger    *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(publisher mq.Publisher, queue string, logger *zap.Logger) NotificationService {
	return &notificationService{publisher: publisher, queue: queue, logger: logger}
}

func (s *notificationService) Push(ctx context.Context, req *dto.PushNotificationRequest, callerID string) (*dto.PushNotificationResponse, error) {
	now := time.Now()
	seen := make(map[int64]bool, len(req.DoctorIDs))
	queued := 0
	var lastErr error

	for _, doctorID := range req.DoctorIDs {
		if seen[doctorID] {
			continue
		}
		seen[doctorID] = true

		msg := DoctorNotification{
			DoctorID:  doctorID,
			Title:     req.Title,
			Body:      req.Body,
			CreatedBy: callerID,
			CreatedAt: now,
		}
		if err := s.publisher.Enqueue(ctx, s.queue, msg); err != nil {
			lastErr = err
			s.logger.Warn("通知入队失败", zap.Int64("doctor_id", doctorID), zap.Error(err))
			continue
		}
		queued++
	}

	// 全部失败视为队列不可用；部分失败按尽力而为返回已入队数量
	if queued == 0 && lastErr != nil {
		return nil, ErrNotificationUnavailable
	}

	s.logger.Info("通知已入队", zap.Int("queued", queued), zap.String("caller", callerID))
	return &dto.PushNotificationResponse{Queued: queued}, nil
}
