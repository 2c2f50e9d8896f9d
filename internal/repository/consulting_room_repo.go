package repository

import (
	"context"

	"gorm.io/gorm"

	"clinic-admin/internal/model"
)

// ConsultingRoomRepository 诊室数据访问接口
type ConsultingRoomRepository interface {
	Create(ctx context.Context, room *model.ConsultingRoom) error
	GetByID(ctx context.Context, id int64) (*model.ConsultingRoom, error)
	// List floorID / branchID 为 nil 时不作为过滤条件
	List(ctx context.Context, floorID, branchID *int64) ([]model.ConsultingRoom, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}, updatedBy string) error
}

type consultingRoomRepo struct {
	db *gorm.DB
}

// NewConsultingRoomRepo 创建 ConsultingRoomRepository 实例
func NewConsultingRoomRepo(db *gorm.DB) ConsultingRoomRepository {
	return &consultingRoomRepo{db: db}
}

func (r *consultingRoomRepo) Create(ctx context.Context, room *model.ConsultingRoom) error {
	return r.db.WithContext(ctx).Omit("Floor").Create(room).Error
}

func (r *consultingRoomRepo) GetByID(ctx context.Context, id int64) (*model.ConsultingRoom, error) {
	var room model.ConsultingRoom
	err := r.db.WithContext(ctx).
		Preload("Floor").
		Where("id = ?", id).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *consultingRoomRepo) List(ctx context.Context, floorID, branchID *int64) ([]model.ConsultingRoom, error) {
	var rooms []model.ConsultingRoom
	db := r.db.WithContext(ctx).Model(&model.ConsultingRoom{})

	if floorID != nil {
		db = db.Where("consulting_rooms.floor_id = ?", *floorID)
	}
	if branchID != nil {
		db = db.Where("consulting_rooms.floor_id IN (?)",
			r.db.Model(&model.Floor{}).Select("id").Where("branch_id = ?", *branchID))
	}

	err := db.Preload("Floor").
		Order("consulting_rooms.name ASC, consulting_rooms.id ASC").
		Find(&rooms).Error
	return rooms, err
}

func (r *consultingRoomRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}, updatedBy string) error {
	if err := checkColumns(fields, model.ConsultingRoomUpdatableColumns); err != nil {
		return err
	}

	updates := make(map[string]interface{}, len(fields)+1)
	for col, v := range fields {
		updates[col] = v
	}
	updates["updated_by"] = updatedBy

	return r.db.WithContext(ctx).
		Model(&model.ConsultingRoom{}).
		Where("id = ?", id).
		Updates(updates).Error
}
