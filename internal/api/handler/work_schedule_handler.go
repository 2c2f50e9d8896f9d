package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"clinic-admin/internal/dto"
	"clinic-admin/internal/service"
	"clinic-admin/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WorkScheduleHandler 排班模块 HTTP 处理器
type WorkScheduleHandler struct {
	scheduleSvc service.WorkScheduleService
	exportSvc   service.ExportService
}

// NewWorkScheduleHandler 创建 WorkScheduleHandler
func NewWorkScheduleHandler(scheduleSvc service.WorkScheduleService, exportSvc service.ExportService) *WorkScheduleHandler {
	return &WorkScheduleHandler{scheduleSvc: scheduleSvc, exportSvc: exportSvc}
}

// ListWeekdays 周一到周日
// GET /api/v1/weekdays
func (h *WorkScheduleHandler) ListWeekdays(c *gin.Context) {
	weekdays, err := h.scheduleSvc.ListWeekdays(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": weekdays})
}

// GetWeekly 分配的周排班视图
// GET /api/v1/work-schedules/weekly?doctorRoomAssignmentId=N
func (h *WorkScheduleHandler) GetWeekly(c *gin.Context) {
	var req dto.WeeklyScheduleRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	days, err := h.scheduleSvc.GetWeekly(c.Request.Context(), req.DoctorRoomAssignmentID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": days})
}

// CheckConflict 单日跨分院冲突检查
// GET /api/v1/work-schedules/conflict?doctorRoomAssignmentId=N&weekdayId=M
func (h *WorkScheduleHandler) CheckConflict(c *gin.Context) {
	var req dto.ConflictCheckRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.scheduleSvc.CheckConflict(c.Request.Context(), req.DoctorRoomAssignmentID, req.WeekdayID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// Upsert 新建或替换排班
// PUT /api/v1/work-schedules
func (h *WorkScheduleHandler) Upsert(c *gin.Context) {
	var req dto.UpsertWorkScheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.Upsert(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	if result.Created {
		response.Created(c, result)
		return
	}
	response.OK(c, result)
}

// ExportWeekly 导出周排班
// GET /api/v1/work-schedules/weekly/export?doctorRoomAssignmentId=N
func (h *WorkScheduleHandler) ExportWeekly(c *gin.Context) {
	var req dto.WeeklyScheduleRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	buf, filename, err := h.exportSvc.ExportWeekly(c.Request.Context(), req.DoctorRoomAssignmentID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	// 设置下载响应头
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// handleScheduleError 统一处理排班模块业务错误
func (h *WorkScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 21001, "结束时间必须晚于开始时间")
	case errors.Is(err, service.ErrScheduleReferenceNotFound):
		response.UnprocessableEntity(c, 21002, "医生、星期或诊室分配不存在")
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 21003, "诊室分配不存在")
	default:
		response.InternalError(c)
	}
}
