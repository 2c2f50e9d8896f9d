package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"clinic-admin/internal/dto"
)

func TestNotificationService_Push_DeduplicatesDoctors(t *testing.T) {
	pub := newMockPublisher()
	svc := NewNotificationService(pub, "doctor.notifications", zap.NewNop())

	resp, err := svc.Push(context.Background(), &dto.PushNotificationRequest{
		DoctorIDs: []int64{7, 8, 7, 9, 8},
		Title:     "排班调整",
		Body:      "下周一门诊改至 South",
	}, "admin-001")
	if err != nil {
		t.Fatalf("Push 应成功: %v", err)
	}
	if resp.Queued != 3 {
		t.Errorf("期望入队 3 条，实际=%d", resp.Queued)
	}
	if len(pub.enqueued) != 3 {
		t.Fatalf("期望发布 3 条，实际=%d", len(pub.enqueued))
	}
	for _, msg := range pub.enqueued {
		if msg.target != "doctor.notifications" {
			t.Errorf("队列名错误: %s", msg.target)
		}
	}
	first := pub.enqueued[0].payload.(DoctorNotification)
	if first.DoctorID != 7 || first.CreatedBy != "admin-001" {
		t.Errorf("消息内容错误: %+v", first)
	}
}

func TestNotificationService_Push_QueueDown(t *testing.T) {
	pub := newMockPublisher()
	pub.failEvery = true
	svc := NewNotificationService(pub, "doctor.notifications", zap.NewNop())

	_, err := svc.Push(context.Background(), &dto.PushNotificationRequest{
		DoctorIDs: []int64{1},
		Title:     "t",
		Body:      "b",
	}, "admin-001")
	if !errors.Is(err, ErrNotificationUnavailable) {
		t.Errorf("期望 ErrNotificationUnavailable，实际: %v", err)
	}
}
