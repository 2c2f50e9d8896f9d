package dto

// ── 推送通知 DTO ──

// PushNotificationRequest 向一组医生推送通知
type PushNotificationRequest struct {
	DoctorIDs []int64 `json:"doctorIds" binding:"required,min=1,max=500,dive,min=1"`
	Title     string  `json:"title"     binding:"required,max=100"`
	Body      string  `json:"body"      binding:"required,max=1000"`
}

// PushNotificationResponse 已入队的消息数量
type PushNotificationResponse struct {
	Queued int `json:"queued"`
}
