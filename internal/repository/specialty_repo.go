package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"clinic-admin/internal/model"
)

// SpecialtyRepository 专科及医生专科关系数据访问接口
type SpecialtyRepository interface {
	Create(ctx context.Context, specialty *model.Specialty) error
	GetByID(ctx context.Context, id int64) (*model.Specialty, error)
	List(ctx context.Context) ([]model.Specialty, error)
	// AssignToDoctor 幂等：关系已存在时不做任何修改
	AssignToDoctor(ctx context.Context, doctorID, specialtyID int64) error
	ListByDoctor(ctx context.Context, doctorID int64) ([]model.DoctorSpecialty, error)
}

type specialtyRepo struct {
	db *gorm.DB
}

// NewSpecialtyRepo 创建 SpecialtyRepository 实例
func NewSpecialtyRepo(db *gorm.DB) SpecialtyRepository {
	return &specialtyRepo{db: db}
}

func (r *specialtyRepo) Create(ctx context.Context, specialty *model.Specialty) error {
	return r.db.WithContext(ctx).Create(specialty).Error
}

func (r *specialtyRepo) GetByID(ctx context.Context, id int64) (*model.Specialty, error) {
	var specialty model.Specialty
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&specialty).Error
	if err != nil {
		return nil, err
	}
	return &specialty, nil
}

func (r *specialtyRepo) List(ctx context.Context) ([]model.Specialty, error) {
	var specialties []model.Specialty
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&specialties).Error
	return specialties, err
}

func (r *specialtyRepo) AssignToDoctor(ctx context.Context, doctorID, specialtyID int64) error {
	link := &model.DoctorSpecialty{DoctorID: doctorID, SpecialtyID: specialtyID}
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doctor_id"}, {Name: "specialty_id"}},
			DoNothing: true,
		}).
		Create(link).Error
}

func (r *specialtyRepo) ListByDoctor(ctx context.Context, doctorID int64) ([]model.DoctorSpecialty, error) {
	var links []model.DoctorSpecialty
	err := r.db.WithContext(ctx).
		Preload("Specialty").
		Where("doctor_id = ?", doctorID).
		Order("specialty_id ASC").
		Find(&links).Error
	return links, err
}
