package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"clinic-admin/internal/dto"
	"clinic-admin/internal/service"
	"clinic-admin/pkg/response"
)

// DoctorHandler 医生目录 HTTP 处理器
type DoctorHandler struct {
	doctorSvc service.DoctorService
}

// NewDoctorHandler 创建 DoctorHandler
func NewDoctorHandler(doctorSvc service.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctorSvc: doctorSvc}
}

// ListDoctors 获取医生列表
// GET /api/v1/doctors
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	var req dto.DoctorListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	doctors, err := h.doctorSvc.ListDoctors(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": doctors})
}

// GetDoctor 获取医生详情
// GET /api/v1/doctors/:id
func (h *DoctorHandler) GetDoctor(c *gin.Context) {
	id, ok := mustParseID(c, "id", "医生")
	if !ok {
		return
	}

	doctor, err := h.doctorSvc.GetDoctor(c.Request.Context(), id)
	if err != nil {
		h.handleDoctorError(c, err)
		return
	}

	response.OK(c, doctor)
}

// CreateDoctor 创建医生
// POST /api/v1/doctors
func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var req dto.CreateDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	doctor, err := h.doctorSvc.CreateDoctor(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleDoctorError(c, err)
		return
	}

	response.Created(c, doctor)
}

// ── 专科 ──

// ListSpecialties 获取专科列表
// GET /api/v1/specialties
func (h *DoctorHandler) ListSpecialties(c *gin.Context) {
	list, err := h.doctorSvc.ListSpecialties(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreateSpecialty 创建专科
// POST /api/v1/specialties
func (h *DoctorHandler) CreateSpecialty(c *gin.Context) {
	var req dto.CreateSpecialtyRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	specialty, err := h.doctorSvc.CreateSpecialty(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleDoctorError(c, err)
		return
	}

	response.Created(c, specialty)
}

// ListDoctorSpecialties 获取医生的专科
// GET /api/v1/doctors/:id/specialties
func (h *DoctorHandler) ListDoctorSpecialties(c *gin.Context) {
	id, ok := mustParseID(c, "id", "医生")
	if !ok {
		return
	}

	list, err := h.doctorSvc.ListDoctorSpecialties(c.Request.Context(), id)
	if err != nil {
		h.handleDoctorError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// AssignSpecialty 为医生分配专科（幂等）
// POST /api/v1/doctors/:id/specialties
func (h *DoctorHandler) AssignSpecialty(c *gin.Context) {
	id, ok := mustParseID(c, "id", "医生")
	if !ok {
		return
	}

	var req dto.AssignSpecialtyRequest
	if !bindJSON(c, &req) {
		return
	}

	list, err := h.doctorSvc.AssignSpecialty(c.Request.Context(), id, &req)
	if err != nil {
		h.handleDoctorError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// ── 诊室分配 ──

// ListAssignments 获取医生的诊室分配
// GET /api/v1/doctors/:id/assignments
func (h *DoctorHandler) ListAssignments(c *gin.Context) {
	id, ok := mustParseID(c, "id", "医生")
	if !ok {
		return
	}

	list, err := h.doctorSvc.ListAssignments(c.Request.Context(), id)
	if err != nil {
		h.handleDoctorError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GetAssignment 获取诊室分配详情
// GET /api/v1/doctor-room-assignments/:id
func (h *DoctorHandler) GetAssignment(c *gin.Context) {
	id, ok := mustParseID(c, "id", "诊室分配")
	if !ok {
		return
	}

	assignment, err := h.doctorSvc.GetAssignment(c.Request.Context(), id)
	if err != nil {
		h.handleDoctorError(c, err)
		return
	}

	response.OK(c, assignment)
}

// CreateAssignment 将医生分配到诊室
// POST /api/v1/doctor-room-assignments
func (h *DoctorHandler) CreateAssignment(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	assignment, err := h.doctorSvc.CreateAssignment(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleDoctorError(c, err)
		return
	}

	response.Created(c, assignment)
}

// handleDoctorError 统一处理医生目录业务错误
func (h *DoctorHandler) handleDoctorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDoctorNotFound):
		response.NotFound(c, 23001, "医生不存在")
	case errors.Is(err, service.ErrDoctorLicenseExists):
		response.Conflict(c, 23002, "执业证号已存在")
	case errors.Is(err, service.ErrSpecialtyNotFound):
		response.NotFound(c, 23003, "专科不存在")
	case errors.Is(err, service.ErrSpecialtyExists):
		response.Conflict(c, 23004, "专科名称已存在")
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 23005, "诊室分配不存在")
	case errors.Is(err, service.ErrAssignmentExists):
		response.Conflict(c, 23006, "该医生已分配到此诊室")
	case errors.Is(err, service.ErrAssignmentRefNotFound):
		response.UnprocessableEntity(c, 23007, "医生或诊室不存在")
	default:
		response.InternalError(c)
	}
}
