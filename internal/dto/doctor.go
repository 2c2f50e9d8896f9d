package dto

// ── 医生 / 专科 / 诊室分配 DTO ──

// CreateDoctorRequest 创建医生请求，可同时指定初始专科
type CreateDoctorRequest struct {
	FullName      string  `json:"fullName"      binding:"required,min=2,max=100"`
	LicenseNumber string  `json:"licenseNumber" binding:"required,min=3,max=50"`
	SpecialtyIDs  []int64 `json:"specialtyIds"  binding:"omitempty,dive,min=1"`
}

// DoctorListRequest 医生列表查询参数
type DoctorListRequest struct {
	ActiveOnly bool `form:"activeOnly"`
}

// DoctorResponse 医生信息响应
type DoctorResponse struct {
	ID            int64            `json:"id"`
	FullName      string           `json:"fullName"`
	LicenseNumber string           `json:"licenseNumber"`
	Active        bool             `json:"active"`
	Specialties   []IDNameResponse `json:"specialties,omitempty"`
}

// CreateSpecialtyRequest 创建专科请求
type CreateSpecialtyRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// AssignSpecialtyRequest 为医生添加专科
type AssignSpecialtyRequest struct {
	SpecialtyID int64 `json:"specialtyId" binding:"required,min=1"`
}

// CreateAssignmentRequest 创建医生诊室分配请求
type CreateAssignmentRequest struct {
	DoctorID         int64 `json:"doctorId"         binding:"required,min=1"`
	ConsultingRoomID int64 `json:"consultingRoomId" binding:"required,min=1"`
}

// AssignmentResponse 医生诊室分配响应
type AssignmentResponse struct {
	ID               int64           `json:"id"`
	DoctorID         int64           `json:"doctorId"`
	ConsultingRoomID int64           `json:"consultingRoomId"`
	Room             *IDNameResponse `json:"room,omitempty"`
	Branch           *IDNameResponse `json:"branch,omitempty"`
}
