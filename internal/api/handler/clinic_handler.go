package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"clinic-admin/internal/dto"
	"clinic-admin/internal/service"
	pkgerrors "clinic-admin/pkg/errors"
	"clinic-admin/pkg/response"
)

// ClinicHandler 分院 / 楼层 / 诊室 HTTP 处理器
type ClinicHandler struct {
	clinicSvc service.ClinicService
}

// NewClinicHandler 创建 ClinicHandler
func NewClinicHandler(clinicSvc service.ClinicService) *ClinicHandler {
	return &ClinicHandler{clinicSvc: clinicSvc}
}

// ── 分院 ──

// ListBranches 分页获取分院
// GET /api/v1/branches
func (h *ClinicHandler) ListBranches(c *gin.Context) {
	var req dto.BranchListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	branches, total, err := h.clinicSvc.ListBranches(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, branches, total, req.GetPage(), req.GetPageSize())
}

// GetBranch 获取分院详情
// GET /api/v1/branches/:id
func (h *ClinicHandler) GetBranch(c *gin.Context) {
	id, ok := mustParseID(c, "id", "分院")
	if !ok {
		return
	}

	branch, err := h.clinicSvc.GetBranch(c.Request.Context(), id)
	if err != nil {
		h.handleClinicError(c, err)
		return
	}

	response.OK(c, branch)
}

// CreateBranch 创建分院
// POST /api/v1/branches
func (h *ClinicHandler) CreateBranch(c *gin.Context) {
	var req dto.CreateBranchRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	branch, err := h.clinicSvc.CreateBranch(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleClinicError(c, err)
		return
	}

	response.Created(c, branch)
}

// UpdateBranch 局部更新分院（带版本号）
// PUT /api/v1/branches/:id
func (h *ClinicHandler) UpdateBranch(c *gin.Context) {
	id, ok := mustParseID(c, "id", "分院")
	if !ok {
		return
	}

	var req dto.UpdateBranchRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	branch, err := h.clinicSvc.UpdateBranch(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleClinicError(c, err)
		return
	}

	response.OK(c, branch)
}

// DeleteBranch 软删除分院
// DELETE /api/v1/branches/:id
func (h *ClinicHandler) DeleteBranch(c *gin.Context) {
	id, ok := mustParseID(c, "id", "分院")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.clinicSvc.DeleteBranch(c.Request.Context(), id, callerID); err != nil {
		h.handleClinicError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── 楼层 ──

// ListFloors 获取分院楼层
// GET /api/v1/branches/:id/floors
func (h *ClinicHandler) ListFloors(c *gin.Context) {
	branchID, ok := mustParseID(c, "id", "分院")
	if !ok {
		return
	}

	floors, err := h.clinicSvc.ListFloors(c.Request.Context(), branchID)
	if err != nil {
		h.handleClinicError(c, err)
		return
	}

	response.OK(c, gin.H{"list": floors})
}

// CreateFloor 创建楼层
// POST /api/v1/branches/:id/floors
func (h *ClinicHandler) CreateFloor(c *gin.Context) {
	branchID, ok := mustParseID(c, "id", "分院")
	if !ok {
		return
	}

	var req dto.CreateFloorRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	floor, err := h.clinicSvc.CreateFloor(c.Request.Context(), branchID, &req, callerID)
	if err != nil {
		h.handleClinicError(c, err)
		return
	}

	response.Created(c, floor)
}

// ── 诊室 ──

// ListRooms 获取诊室列表
// GET /api/v1/consulting-rooms?floorId=&branchId=
func (h *ClinicHandler) ListRooms(c *gin.Context) {
	var req dto.ConsultingRoomListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	rooms, err := h.clinicSvc.ListRooms(c.Request.Context(), &req)
	if err != nil {
		h.handleClinicError(c, err)
		return
	}

	response.OK(c, gin.H{"list": rooms})
}

// GetRoom 获取诊室详情
// GET /api/v1/consulting-rooms/:id
func (h *ClinicHandler) GetRoom(c *gin.Context) {
	id, ok := mustParseID(c, "id", "诊室")
	if !ok {
		return
	}

	room, err := h.clinicSvc.GetRoom(c.Request.Context(), id)
	if err != nil {
		h.handleClinicError(c, err)
		return
	}

	response.OK(c, room)
}

// CreateRoom 创建诊室
// POST /api/v1/consulting-rooms
func (h *ClinicHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateConsultingRoomRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	room, err := h.clinicSvc.CreateRoom(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleClinicError(c, err)
		return
	}

	response.Created(c, room)
}

// UpdateRoom 局部更新诊室
// PUT /api/v1/consulting-rooms/:id
func (h *ClinicHandler) UpdateRoom(c *gin.Context) {
	id, ok := mustParseID(c, "id", "诊室")
	if !ok {
		return
	}

	var req dto.UpdateConsultingRoomRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	room, err := h.clinicSvc.UpdateRoom(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleClinicError(c, err)
		return
	}

	response.OK(c, room)
}

// handleClinicError 统一处理院区模块业务错误
func (h *ClinicHandler) handleClinicError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBranchNotFound):
		response.NotFound(c, 22001, "分院不存在")
	case errors.Is(err, service.ErrFloorNotFound):
		response.NotFound(c, 22002, "楼层不存在")
	case errors.Is(err, service.ErrRoomNotFound):
		response.NotFound(c, 22003, "诊室不存在")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 10009, "数据已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}
