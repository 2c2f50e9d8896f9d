package model

// DoctorWorkSchedule 医生周排班表 — 对应 doctor_work_schedules
// (doctor_id, weekday_id, doctor_room_assignment_id) 为业务主键，写入只通过 upsert 整行替换
type DoctorWorkSchedule struct {
	ID                     int64  `gorm:"primaryKey"                                                json:"id"`
	DoctorID               int64  `gorm:"not null;uniqueIndex:uq_work_schedule_identity,priority:1" json:"doctor_id"`
	WeekdayID              int64  `gorm:"not null;uniqueIndex:uq_work_schedule_identity,priority:2" json:"weekday_id"`
	DoctorRoomAssignmentID int64  `gorm:"not null;uniqueIndex:uq_work_schedule_identity,priority:3" json:"doctor_room_assignment_id"`
	StartTime              string `gorm:"type:time;not null"                                        json:"start_time"` // "09:00:00"
	EndTime                string `gorm:"type:time;not null"                                        json:"end_time"`
	Active                 bool   `gorm:"not null"                                                  json:"active"`
	BaseModel

	// 关联（仅用于建立外键约束，写入时保持为 nil）
	Doctor     *Doctor               `gorm:"foreignKey:DoctorID;references:ID"               json:"-"`
	Weekday    *Weekday              `gorm:"foreignKey:WeekdayID;references:ID"              json:"-"`
	Assignment *DoctorRoomAssignment `gorm:"foreignKey:DoctorRoomAssignmentID;references:ID" json:"-"`
}

// TableName 指定表名
func (DoctorWorkSchedule) TableName() string { return "doctor_work_schedules" }

// WasCreated upsert 后的行 created_at 与 updated_at 相同即为新插入
func (s *DoctorWorkSchedule) WasCreated() bool {
	return s.CreatedAt.Equal(s.UpdatedAt)
}

// WeeklyScheduleRow 周视图查询结果（星期 LEFT JOIN 排班），每个星期恰好一行
type WeeklyScheduleRow struct {
	WeekdayID   int64
	WeekdayName string
	Ordinal     int
	ScheduleID  *int64
	StartTime   *string
	EndTime     *string
	Active      bool
	Conflict    bool
}
