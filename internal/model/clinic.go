package model

// Branch 分院表 — 对应 branches
type Branch struct {
	ID      int64  `gorm:"primaryKey"                 json:"id"`
	Name    string `gorm:"type:varchar(100);not null" json:"name"`
	Address string `gorm:"type:varchar(200)"          json:"address,omitempty"`
	Phone   string `gorm:"type:varchar(30)"           json:"phone,omitempty"`
	Active  bool   `gorm:"not null"                   json:"active"`
	VersionedModel
}

// TableName 指定表名
func (Branch) TableName() string { return "branches" }

// Floor 楼层表 — 对应 floors
type Floor struct {
	ID       int64  `gorm:"primaryKey"                json:"id"`
	BranchID int64  `gorm:"not null;index"            json:"branch_id"`
	Name     string `gorm:"type:varchar(50);not null" json:"name"`
	Level    int    `gorm:"not null;default:0"        json:"level"`
	SoftDeleteModel

	// 关联
	Branch *Branch `gorm:"foreignKey:BranchID;references:ID" json:"branch,omitempty"`
}

// TableName 指定表名
func (Floor) TableName() string { return "floors" }

// ConsultingRoom 诊室表 — 对应 consulting_rooms
type ConsultingRoom struct {
	ID      int64  `gorm:"primaryKey"                 json:"id"`
	FloorID int64  `gorm:"not null;index"             json:"floor_id"`
	Name    string `gorm:"type:varchar(100);not null" json:"name"`
	Code    string `gorm:"type:varchar(30)"           json:"code,omitempty"`
	Active  bool   `gorm:"not null"                   json:"active"`
	SoftDeleteModel

	// 关联
	Floor *Floor `gorm:"foreignKey:FloorID;references:ID" json:"floor,omitempty"`
}

// TableName 指定表名
func (ConsultingRoom) TableName() string { return "consulting_rooms" }

// BranchUpdatableColumns 分院局部更新允许写入的列
var BranchUpdatableColumns = []string{"name", "address", "phone", "active"}

// ConsultingRoomUpdatableColumns 诊室局部更新允许写入的列
var ConsultingRoomUpdatableColumns = []string{"name", "code", "active"}
