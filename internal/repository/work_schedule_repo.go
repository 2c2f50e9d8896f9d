package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"clinic-admin/internal/model"
)

// WorkScheduleRepository 医生周排班数据访问接口
type WorkScheduleRepository interface {
	// HasBranchConflict 同一医生同一星期在其他分院是否已有启用的排班（排除分配自身）
	// 分配不存在时返回 false
	HasBranchConflict(ctx context.Context, assignmentID, weekdayID int64) (bool, error)
	// ListWeekly 以星期表为主表左连接排班，固定返回 7 行并附带冲突标记
	ListWeekly(ctx context.Context, assignmentID int64) ([]model.WeeklyScheduleRow, error)
	// Upsert 以 (doctor_id, weekday_id, doctor_room_assignment_id) 为键插入或整行替换，返回写入后的行
	Upsert(ctx context.Context, ws *model.DoctorWorkSchedule) (*model.DoctorWorkSchedule, error)
	FindByIdentity(ctx context.Context, doctorID, weekdayID, assignmentID int64) (*model.DoctorWorkSchedule, error)
}

type workScheduleRepo struct {
	db *gorm.DB
}

// NewWorkScheduleRepo 创建 WorkScheduleRepository 实例
func NewWorkScheduleRepo(db *gorm.DB) WorkScheduleRepository {
	return &workScheduleRepo{db: db}
}

// branchConflictExpr 生成跨分院冲突的 EXISTS 子句
// target 子查询由分配 ID 推导医生与分院，分配不存在时子查询为空，EXISTS 自然为假
// weekdayExpr 为星期 ID 的 SQL 表达式（命名参数或外层列）
func branchConflictExpr(weekdayExpr string) string {
	return `EXISTS (
		SELECT 1
		FROM doctor_work_schedules other
		JOIN doctor_room_assignments other_dra ON other_dra.id = other.doctor_room_assignment_id
		JOIN consulting_rooms other_room ON other_room.id = other_dra.consulting_room_id
		JOIN floors other_floor ON other_floor.id = other_room.floor_id
		JOIN (
			SELECT dra.doctor_id, f.branch_id
			FROM doctor_room_assignments dra
			JOIN consulting_rooms cr ON cr.id = dra.consulting_room_id
			JOIN floors f ON f.id = cr.floor_id
			WHERE dra.id = @assignment
		) target ON target.doctor_id = other.doctor_id
		WHERE other.weekday_id = ` + weekdayExpr + `
		  AND other.active = @active
		  AND other.doctor_room_assignment_id <> @assignment
		  AND other_floor.branch_id <> target.branch_id
	)`
}

func (r *workScheduleRepo) HasBranchConflict(ctx context.Context, assignmentID, weekdayID int64) (bool, error) {
	var out struct {
		Conflict bool
	}
	err := r.db.WithContext(ctx).
		Raw("SELECT "+branchConflictExpr("@weekday")+" AS conflict", map[string]interface{}{
			"assignment": assignmentID,
			"weekday":    weekdayID,
			"active":     true,
		}).
		Scan(&out).Error
	if err != nil {
		return false, err
	}
	return out.Conflict, nil
}

func (r *workScheduleRepo) ListWeekly(ctx context.Context, assignmentID int64) ([]model.WeeklyScheduleRow, error) {
	query := `
		SELECT w.id AS weekday_id,
		       w.name AS weekday_name,
		       ` + model.WeekdayOrdinalSQL("w.name") + ` AS ordinal,
		       s.id AS schedule_id,
		       s.start_time,
		       s.end_time,
		       COALESCE(s.active, @inactive) AS active,
		       ` + branchConflictExpr("w.id") + ` AS conflict
		FROM weekdays w
		LEFT JOIN doctor_work_schedules s
		       ON s.weekday_id = w.id
		      AND s.doctor_room_assignment_id = @assignment
		      AND s.doctor_id = (SELECT doctor_id FROM doctor_room_assignments WHERE id = @assignment)
		ORDER BY ordinal, w.id`

	var rows []model.WeeklyScheduleRow
	err := r.db.WithContext(ctx).
		Raw(query, map[string]interface{}{
			"assignment": assignmentID,
			"active":     true,
			"inactive":   false,
		}).
		Scan(&rows).Error
	return rows, err
}

func (r *workScheduleRepo) Upsert(ctx context.Context, ws *model.DoctorWorkSchedule) (*model.DoctorWorkSchedule, error) {
	var saved model.DoctorWorkSchedule
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := *ws
		row.ID = 0
		err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "doctor_id"},
					{Name: "weekday_id"},
					{Name: "doctor_room_assignment_id"},
				},
				DoUpdates: clause.AssignmentColumns([]string{
					"start_time", "end_time", "active", "updated_at", "updated_by",
				}),
			}).
			Create(&row).Error
		if err != nil {
			return err
		}

		// 冲突更新时部分驱动不回填主键，统一按业务键重新读取
		return tx.Where("doctor_id = ? AND weekday_id = ? AND doctor_room_assignment_id = ?",
			ws.DoctorID, ws.WeekdayID, ws.DoctorRoomAssignmentID).
			First(&saved).Error
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *workScheduleRepo) FindByIdentity(ctx context.Context, doctorID, weekdayID, assignmentID int64) (*model.DoctorWorkSchedule, error) {
	var ws model.DoctorWorkSchedule
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND weekday_id = ? AND doctor_room_assignment_id = ?",
			doctorID, weekdayID, assignmentID).
		First(&ws).Error
	if err != nil {
		return nil, err
	}
	return &ws, nil
}
