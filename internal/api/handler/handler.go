package handler

import "clinic-admin/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	WorkSchedule *WorkScheduleHandler
	Clinic       *ClinicHandler
	Doctor       *DoctorHandler
	Notification *NotificationHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		WorkSchedule: NewWorkScheduleHandler(svc.WorkSchedule, svc.Export),
		Clinic:       NewClinicHandler(svc.Clinic),
		Doctor:       NewDoctorHandler(svc.Doctor),
		Notification: NewNotificationHandler(svc.Notification),
	}
}
