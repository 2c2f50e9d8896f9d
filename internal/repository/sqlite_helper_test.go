package repository_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"clinic-admin/internal/model"
	"clinic-admin/internal/repository"
)

// newTestDB 每个测试独立的内存 SQLite，开启外键约束并写入 7 个星期
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := "file:" + name + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "打开 SQLite 失败")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(
		&model.Weekday{},
		&model.Branch{},
		&model.Floor{},
		&model.ConsultingRoom{},
		&model.Doctor{},
		&model.Specialty{},
		&model.DoctorSpecialty{},
		&model.DoctorRoomAssignment{},
		&model.DoctorWorkSchedule{},
	)
	require.NoError(t, err, "AutoMigrate 失败")

	for i, name := range model.WeekdayNames {
		require.NoError(t, db.Create(&model.Weekday{ID: int64(i + 1), Name: name}).Error)
	}
	return db
}

// clinicFixture 两个分院各一间诊室，同一医生分别分配
type clinicFixture struct {
	repo        *repository.Repository
	north       *model.Branch
	south       *model.Branch
	doctor      *model.Doctor
	northAssign *model.DoctorRoomAssignment
	southAssign *model.DoctorRoomAssignment
}

func newClinicFixture(t *testing.T, db *gorm.DB) *clinicFixture {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewRepository(db)

	north := &model.Branch{Name: "North", Active: true}
	south := &model.Branch{Name: "South", Active: true}
	require.NoError(t, repo.Branch.Create(ctx, north))
	require.NoError(t, repo.Branch.Create(ctx, south))

	northRoom := createRoom(t, repo, north.ID, "N-101")
	southRoom := createRoom(t, repo, south.ID, "S-201")

	doctor := &model.Doctor{ID: 7, FullName: "Dr. Seven", LicenseNumber: "LIC-0007", Active: true}
	require.NoError(t, repo.Doctor.Create(ctx, doctor))

	northAssign := &model.DoctorRoomAssignment{ID: 101, DoctorID: doctor.ID, ConsultingRoomID: northRoom.ID}
	southAssign := &model.DoctorRoomAssignment{ID: 202, DoctorID: doctor.ID, ConsultingRoomID: southRoom.ID}
	require.NoError(t, repo.Assignment.Create(ctx, northAssign))
	require.NoError(t, repo.Assignment.Create(ctx, southAssign))

	return &clinicFixture{
		repo:        repo,
		north:       north,
		south:       south,
		doctor:      doctor,
		northAssign: northAssign,
		southAssign: southAssign,
	}
}

func createRoom(t *testing.T, repo *repository.Repository, branchID int64, name string) *model.ConsultingRoom {
	t.Helper()
	ctx := context.Background()

	floor := &model.Floor{BranchID: branchID, Name: "1F", Level: 1}
	require.NoError(t, repo.Floor.Create(ctx, floor))

	room := &model.ConsultingRoom{FloorID: floor.ID, Name: name, Active: true}
	require.NoError(t, repo.ConsultingRoom.Create(ctx, room))
	return room
}

func slot(doctorID, weekdayID, assignmentID int64, start, end string, active bool) *model.DoctorWorkSchedule {
	return &model.DoctorWorkSchedule{
		DoctorID:               doctorID,
		WeekdayID:              weekdayID,
		DoctorRoomAssignmentID: assignmentID,
		StartTime:              start,
		EndTime:                end,
		Active:                 active,
	}
}
