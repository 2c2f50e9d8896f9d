package repository

import (
	"context"

	"gorm.io/gorm"

	"clinic-admin/internal/model"
)

// WeekdayRepository 星期参考表数据访问接口
type WeekdayRepository interface {
	// ListOrdered 按周一→周日的固定序号返回全部星期
	ListOrdered(ctx context.Context) ([]model.Weekday, error)
}

type weekdayRepo struct {
	db *gorm.DB
}

// NewWeekdayRepo 创建 WeekdayRepository 实例
func NewWeekdayRepo(db *gorm.DB) WeekdayRepository {
	return &weekdayRepo{db: db}
}

func (r *weekdayRepo) ListOrdered(ctx context.Context) ([]model.Weekday, error) {
	var days []model.Weekday
	err := r.db.WithContext(ctx).
		Model(&model.Weekday{}).
		Order(model.WeekdayOrdinalSQL("name") + ", id").
		Find(&days).Error
	return days, err
}
