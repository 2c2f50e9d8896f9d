package repository

import (
	"context"

	"gorm.io/gorm"

	"clinic-admin/internal/model"
)

// DoctorRepository 医生数据访问接口
type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	GetByID(ctx context.Context, id int64) (*model.Doctor, error)
	List(ctx context.Context, activeOnly bool) ([]model.Doctor, error)
}

type doctorRepo struct {
	db *gorm.DB
}

// NewDoctorRepo 创建 DoctorRepository 实例
func NewDoctorRepo(db *gorm.DB) DoctorRepository {
	return &doctorRepo{db: db}
}

func (r *doctorRepo) Create(ctx context.Context, doctor *model.Doctor) error {
	return r.db.WithContext(ctx).Omit("Specialties").Create(doctor).Error
}

func (r *doctorRepo) GetByID(ctx context.Context, id int64) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.db.WithContext(ctx).
		Preload("Specialties").Preload("Specialties.Specialty").
		Where("id = ?", id).
		First(&doctor).Error
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepo) List(ctx context.Context, activeOnly bool) ([]model.Doctor, error) {
	var doctors []model.Doctor
	db := r.db.WithContext(ctx)
	if activeOnly {
		db = db.Where("active = ?", true)
	}
	err := db.Order("full_name ASC, id ASC").Find(&doctors).Error
	return doctors, err
}
