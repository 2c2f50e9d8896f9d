package dto

// ── 分院 / 楼层 / 诊室 DTO ──

// CreateBranchRequest 创建分院请求
type CreateBranchRequest struct {
	Name    string `json:"name"    binding:"required,min=2,max=100"`
	Address string `json:"address" binding:"omitempty,max=200"`
	Phone   string `json:"phone"   binding:"omitempty,max=30"`
}

// UpdateBranchRequest 分院局部更新请求，Version 用于乐观锁
type UpdateBranchRequest struct {
	Version int     `json:"version" binding:"required,min=1"`
	Name    *string `json:"name"    binding:"omitempty,min=2,max=100"`
	Address *string `json:"address" binding:"omitempty,max=200"`
	Phone   *string `json:"phone"   binding:"omitempty,max=30"`
	Active  *bool   `json:"active"`
}

// BranchListRequest 分院列表查询参数
type BranchListRequest struct {
	PaginationRequest
	IncludeInactive bool `form:"includeInactive"`
}

// BranchResponse 分院信息响应
type BranchResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Active    bool   `json:"active"`
	Version   int    `json:"version"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// CreateFloorRequest 创建楼层请求（分院 ID 取自路径）
type CreateFloorRequest struct {
	Name  string `json:"name"  binding:"required,min=1,max=50"`
	Level int    `json:"level" binding:"min=-10,max=200"`
}

// FloorResponse 楼层信息响应
type FloorResponse struct {
	ID       int64  `json:"id"`
	BranchID int64  `json:"branchId"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
}

// CreateConsultingRoomRequest 创建诊室请求
type CreateConsultingRoomRequest struct {
	FloorID int64  `json:"floorId" binding:"required,min=1"`
	Name    string `json:"name"    binding:"required,min=1,max=100"`
	Code    string `json:"code"    binding:"omitempty,max=30"`
}

// UpdateConsultingRoomRequest 诊室局部更新请求
type UpdateConsultingRoomRequest struct {
	Name   *string `json:"name"   binding:"omitempty,min=1,max=100"`
	Code   *string `json:"code"   binding:"omitempty,max=30"`
	Active *bool   `json:"active"`
}

// ConsultingRoomListRequest 诊室列表查询参数
type ConsultingRoomListRequest struct {
	FloorID  *int64 `form:"floorId"  binding:"omitempty,min=1"`
	BranchID *int64 `form:"branchId" binding:"omitempty,min=1"`
}

// ConsultingRoomResponse 诊室信息响应
type ConsultingRoomResponse struct {
	ID      int64  `json:"id"`
	FloorID int64  `json:"floorId"`
	Name    string `json:"name"`
	Code    string `json:"code,omitempty"`
	Active  bool   `json:"active"`
}
