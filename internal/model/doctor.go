package model

import "time"

// Doctor 医生表 — 对应 doctors
type Doctor struct {
	ID            int64  `gorm:"primaryKey"                            json:"id"`
	FullName      string `gorm:"type:varchar(100);not null"            json:"full_name"`
	LicenseNumber string `gorm:"type:varchar(50);not null;uniqueIndex" json:"license_number"`
	Active        bool   `gorm:"not null"                              json:"active"`
	BaseModel

	// 关联
	Specialties []DoctorSpecialty `gorm:"foreignKey:DoctorID" json:"specialties,omitempty"`
}

// TableName 指定表名
func (Doctor) TableName() string { return "doctors" }

// Specialty 专科表 — 对应 specialties
type Specialty struct {
	ID   int64  `gorm:"primaryKey"                             json:"id"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	BaseModel
}

// TableName 指定表名
func (Specialty) TableName() string { return "specialties" }

// DoctorSpecialty 医生专科关系表 — 对应 doctor_specialties
type DoctorSpecialty struct {
	ID          int64     `gorm:"primaryKey"                                         json:"id"`
	DoctorID    int64     `gorm:"not null;uniqueIndex:uq_doctor_specialty,priority:1" json:"doctor_id"`
	SpecialtyID int64     `gorm:"not null;uniqueIndex:uq_doctor_specialty,priority:2" json:"specialty_id"`
	CreatedAt   time.Time `gorm:"not null"                                           json:"created_at"`

	// 关联
	Specialty *Specialty `gorm:"foreignKey:SpecialtyID;references:ID" json:"specialty,omitempty"`
}

// TableName 指定表名
func (DoctorSpecialty) TableName() string { return "doctor_specialties" }

// DoctorRoomAssignment 医生诊室分配表 — 对应 doctor_room_assignments
// 排班以分配 ID 作为外键，分院通过 诊室 → 楼层 → 分院 推导
type DoctorRoomAssignment struct {
	ID               int64 `gorm:"primaryKey"                                    json:"id"`
	DoctorID         int64 `gorm:"not null;uniqueIndex:uq_doctor_room,priority:1" json:"doctor_id"`
	ConsultingRoomID int64 `gorm:"not null;uniqueIndex:uq_doctor_room,priority:2" json:"consulting_room_id"`
	BaseModel

	// 关联
	Doctor         *Doctor         `gorm:"foreignKey:DoctorID;references:ID"         json:"doctor,omitempty"`
	ConsultingRoom *ConsultingRoom `gorm:"foreignKey:ConsultingRoomID;references:ID" json:"consulting_room,omitempty"`
}

// TableName 指定表名
func (DoctorRoomAssignment) TableName() string { return "doctor_room_assignments" }

// AssignmentPlacement 分配 ID 解析出的医生与分院
type AssignmentPlacement struct {
	AssignmentID int64
	DoctorID     int64
	BranchID     int64
	BranchName   string
	RoomName     string
}
