package repository

import (
	"context"

	"gorm.io/gorm"

	"clinic-admin/internal/model"
	pkgerrors "clinic-admin/pkg/errors"
)

// BranchRepository 分院数据访问接口
type BranchRepository interface {
	Create(ctx context.Context, branch *model.Branch) error
	GetByID(ctx context.Context, id int64) (*model.Branch, error)
	List(ctx context.Context, includeInactive bool, offset, limit int) ([]model.Branch, int64, error)
	// UpdateFields 按版本号局部更新，版本不匹配返回 ErrOptimisticLock
	UpdateFields(ctx context.Context, id int64, version int, fields map[string]interface{}, updatedBy string) error
	Delete(ctx context.Context, id int64, deletedBy string) error
}

// branchRepo BranchRepository 的 GORM 实现
type branchRepo struct {
	db *gorm.DB
}

// NewBranchRepo 创建 BranchRepository 实例
func NewBranchRepo(db *gorm.DB) BranchRepository {
	return &branchRepo{db: db}
}

func (r *branchRepo) Create(ctx context.Context, branch *model.Branch) error {
	return r.db.WithContext(ctx).Create(branch).Error
}

func (r *branchRepo) GetByID(ctx context.Context, id int64) (*model.Branch, error) {
	var branch model.Branch
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&branch).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepo) List(ctx context.Context, includeInactive bool, offset, limit int) ([]model.Branch, int64, error) {
	var branches []model.Branch
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Branch{})
	if !includeInactive {
		db = db.Where("active = ?", true)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("name ASC, id ASC").
		Find(&branches).Error
	return branches, total, err
}

func (r *branchRepo) UpdateFields(ctx context.Context, id int64, version int, fields map[string]interface{}, updatedBy string) error {
	if err := checkColumns(fields, model.BranchUpdatableColumns); err != nil {
		return err
	}

	updates := make(map[string]interface{}, len(fields)+2)
	for col, v := range fields {
		updates[col] = v
	}
	updates["updated_by"] = updatedBy
	updates["version"] = version + 1

	result := r.db.WithContext(ctx).
		Model(&model.Branch{}).
		Where("id = ? AND version = ?", id, version).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}

func (r *branchRepo) Delete(ctx context.Context, id int64, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Branch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}
