package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"clinic-admin/internal/model"
)

// DoctorRoomAssignmentRepository 医生诊室分配数据访问接口
type DoctorRoomAssignmentRepository interface {
	Create(ctx context.Context, assignment *model.DoctorRoomAssignment) error
	GetByID(ctx context.Context, id int64) (*model.DoctorRoomAssignment, error)
	ListByDoctor(ctx context.Context, doctorID int64) ([]model.DoctorRoomAssignment, error)
	// Resolve 解析分配对应的医生与分院；分配不存在时返回 (nil, false, nil)
	Resolve(ctx context.Context, id int64) (*model.AssignmentPlacement, bool, error)
}

type doctorRoomAssignmentRepo struct {
	db *gorm.DB
}

// NewDoctorRoomAssignmentRepo 创建 DoctorRoomAssignmentRepository 实例
func NewDoctorRoomAssignmentRepo(db *gorm.DB) DoctorRoomAssignmentRepository {
	return &doctorRoomAssignmentRepo{db: db}
}

func (r *doctorRoomAssignmentRepo) Create(ctx context.Context, assignment *model.DoctorRoomAssignment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(assignment).Error
}

func (r *doctorRoomAssignmentRepo) GetByID(ctx context.Context, id int64) (*model.DoctorRoomAssignment, error) {
	var assignment model.DoctorRoomAssignment
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("ConsultingRoom").Preload("ConsultingRoom.Floor").Preload("ConsultingRoom.Floor.Branch").
		Where("id = ?", id).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *doctorRoomAssignmentRepo) ListByDoctor(ctx context.Context, doctorID int64) ([]model.DoctorRoomAssignment, error) {
	var assignments []model.DoctorRoomAssignment
	err := r.db.WithContext(ctx).
		Preload("ConsultingRoom").Preload("ConsultingRoom.Floor").Preload("ConsultingRoom.Floor.Branch").
		Where("doctor_id = ?", doctorID).
		Order("id ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *doctorRoomAssignmentRepo) Resolve(ctx context.Context, id int64) (*model.AssignmentPlacement, bool, error) {
	var placement model.AssignmentPlacement
	result := r.db.WithContext(ctx).Raw(`
		SELECT dra.id AS assignment_id, dra.doctor_id, f.branch_id,
		       b.name AS branch_name, cr.name AS room_name
		FROM doctor_room_assignments dra
		JOIN consulting_rooms cr ON cr.id = dra.consulting_room_id
		JOIN floors f ON f.id = cr.floor_id
		JOIN branches b ON b.id = f.branch_id
		WHERE dra.id = ?`, id).
		Scan(&placement)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, false, nil
	}
	return &placement, true, nil
}
