package dto

// ── 周排班模块 DTO ──
// 字段名与既有调用方保持一致，不可修改

// UpsertWorkScheduleRequest 排班写入请求，六个字段全部必填
type UpsertWorkScheduleRequest struct {
	DoctorID               *int64  `json:"doctorId"               binding:"required,min=1"`
	WeekdayID              *int64  `json:"weekdayId"              binding:"required,min=1"`
	DoctorRoomAssignmentID *int64  `json:"doctorRoomAssignmentId" binding:"required,min=1"`
	StartTime              *string `json:"startTime"              binding:"required,clock"`
	EndTime                *string `json:"endTime"                binding:"required,clock"`
	Active                 *bool   `json:"active"                 binding:"required"`
}

// WeeklyScheduleRequest 周视图查询参数
type WeeklyScheduleRequest struct {
	DoctorRoomAssignmentID int64 `form:"doctorRoomAssignmentId" binding:"required,min=1"`
}

// ConflictCheckRequest 冲突检查查询参数
type ConflictCheckRequest struct {
	DoctorRoomAssignmentID int64 `form:"doctorRoomAssignmentId" binding:"required,min=1"`
	WeekdayID              int64 `form:"weekdayId"              binding:"required,min=1"`
}

// WeekdayResponse 星期
type WeekdayResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Ordinal int    `json:"ordinal"`
}

// WeeklyScheduleDayResponse 周视图中的一天；无排班时排班字段为 null，active 为 false
type WeeklyScheduleDayResponse struct {
	WeekdayID              int64   `json:"weekdayId"`
	WeekdayName            string  `json:"weekdayName"`
	Ordinal                int     `json:"ordinal"`
	ScheduleID             *int64  `json:"scheduleId"`
	StartTime              *string `json:"startTime"`
	EndTime                *string `json:"endTime"`
	Active                 bool    `json:"active"`
	Conflict               bool    `json:"conflict"`
	DoctorRoomAssignmentID int64   `json:"doctorRoomAssignmentId"`
}

// ConflictCheckResponse 冲突检查结果
type ConflictCheckResponse struct {
	DoctorRoomAssignmentID int64 `json:"doctorRoomAssignmentId"`
	WeekdayID              int64 `json:"weekdayId"`
	Conflict               bool  `json:"conflict"`
}

// WorkScheduleResponse 写入后的排班
type WorkScheduleResponse struct {
	ID                     int64  `json:"id"`
	DoctorID               int64  `json:"doctorId"`
	WeekdayID              int64  `json:"weekdayId"`
	DoctorRoomAssignmentID int64  `json:"doctorRoomAssignmentId"`
	StartTime              string `json:"startTime"`
	EndTime                string `json:"endTime"`
	Active                 bool   `json:"active"`
	Created                bool   `json:"created"`
	UpdatedAt              string `json:"updatedAt"`
}
