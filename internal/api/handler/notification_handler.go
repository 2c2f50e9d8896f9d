package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-admin/internal/dto"
	"clinic-admin/internal/service"
	"clinic-admin/pkg/response"
)

// NotificationHandler 通知推送 HTTP 处理器
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler 创建 NotificationHandler
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// Push 向医生批量投递通知，异步送达
// POST /api/v1/notifications/push
func (h *NotificationHandler) Push(c *gin.Context) {
	var req dto.PushNotificationRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.notificationSvc.Push(c.Request.Context(), &req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotificationUnavailable):
			response.Error(c, http.StatusServiceUnavailable, 24001, "通知队列不可用")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Accepted(c, result)
}
