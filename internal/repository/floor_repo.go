package repository

import (
	"context"

	"gorm.io/gorm"

	"clinic-admin/internal/model"
)

// FloorRepository 楼层数据访问接口
type FloorRepository interface {
	Create(ctx context.Context, floor *model.Floor) error
	GetByID(ctx context.Context, id int64) (*model.Floor, error)
	ListByBranch(ctx context.Context, branchID int64) ([]model.Floor, error)
}

type floorRepo struct {
	db *gorm.DB
}

// NewFloorRepo 创建 FloorRepository 实例
func NewFloorRepo(db *gorm.DB) FloorRepository {
	return &floorRepo{db: db}
}

func (r *floorRepo) Create(ctx context.Context, floor *model.Floor) error {
	return r.db.WithContext(ctx).Omit("Branch").Create(floor).Error
}

func (r *floorRepo) GetByID(ctx context.Context, id int64) (*model.Floor, error) {
	var floor model.Floor
	err := r.db.WithContext(ctx).
		Preload("Branch").
		Where("id = ?", id).
		First(&floor).Error
	if err != nil {
		return nil, err
	}
	return &floor, nil
}

func (r *floorRepo) ListByBranch(ctx context.Context, branchID int64) ([]model.Floor, error) {
	var floors []model.Floor
	err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("level ASC, id ASC").
		Find(&floors).Error
	return floors, err
}
