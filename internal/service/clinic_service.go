package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"clinic-admin/internal/dto"
	"clinic-admin/internal/model"
	"clinic-admin/internal/repository"
)

// ── 分院 / 楼层 / 诊室业务错误 ──

var (
	ErrBranchNotFound = errors.New("分院不存在")
	ErrFloorNotFound  = errors.New("楼层不存在")
	ErrRoomNotFound   = errors.New("诊室不存在")
)

// ClinicService 院区拓扑业务接口（分院 → 楼层 → 诊室）
type ClinicService interface {
	CreateBranch(ctx context.Context, req *dto.CreateBranchRequest, callerID string) (*dto.BranchResponse, error)
	GetBranch(ctx context.Context, id int64) (*dto.BranchResponse, error)
	ListBranches(ctx context.Context, req *dto.BranchListRequest) ([]dto.BranchResponse, int64, error)
	UpdateBranch(ctx context.Context, id int64, req *dto.UpdateBranchRequest, callerID string) (*dto.BranchResponse, error)
	DeleteBranch(ctx context.Context, id int64, callerID string) error

	CreateFloor(ctx context.Context, branchID int64, req *dto.CreateFloorRequest, callerID string) (*dto.FloorResponse, error)
	ListFloors(ctx context.Context, branchID int64) ([]dto.FloorResponse, error)

	CreateRoom(ctx context.Context, req *dto.CreateConsultingRoomRequest, callerID string) (*dto.ConsultingRoomResponse, error)
	GetRoom(ctx context.Context, id int64) (*dto.ConsultingRoomResponse, error)
	ListRooms(ctx context.Context, req *dto.ConsultingRoomListRequest) ([]dto.ConsultingRoomResponse, error)
	UpdateRoom(ctx context.Context, id int64, req *dto.UpdateConsultingRoomRequest, callerID string) (*dto.ConsultingRoomResponse, error)
}

type clinicService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClinicService 创建 ClinicService 实例
func NewClinicService(repo *repository.Repository, logger *zap.Logger) ClinicService {
	return &clinicService{repo: repo, logger: logger}
}

// ────────────────────── Branch ──────────────────────

func (s *clinicService) CreateBranch(ctx context.Context, req *dto.CreateBranchRequest, callerID string) (*dto.BranchResponse, error) {
	branch := &model.Branch{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Active:  true,
	}
	branch.Version = 1
	branch.CreatedBy = &callerID
	branch.UpdatedBy = &callerID

	if err := s.repo.Branch.Create(ctx, branch); err != nil {
		s.logger.Error("创建分院失败", zap.Error(err))
		return nil, err
	}
	return toBranchResponse(branch), nil
}

func (s *clinicService) GetBranch(ctx context.Context, id int64) (*dto.BranchResponse, error) {
	branch, err := s.getBranch(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

func (s *clinicService) ListBranches(ctx context.Context, req *dto.BranchListRequest) ([]dto.BranchResponse, int64, error) {
	branches, total, err := s.repo.Branch.List(ctx, req.IncludeInactive, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出分院失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.BranchResponse, 0, len(branches))
	for i := range branches {
		result = append(result, *toBranchResponse(&branches[i]))
	}
	return result, total, nil
}

func (s *clinicService) UpdateBranch(ctx context.Context, id int64, req *dto.UpdateBranchRequest, callerID string) (*dto.BranchResponse, error) {
	if _, err := s.getBranch(ctx, id); err != nil {
		return nil, err
	}

	// 请求字段 → 列名的显式映射，只写入出现的字段
	fields := make(map[string]interface{})
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Active != nil {
		fields["active"] = *req.Active
	}

	if len(fields) > 0 {
		if err := s.repo.Branch.UpdateFields(ctx, id, req.Version, fields, callerID); err != nil {
			if !isBusinessError(err) {
				s.logger.Error("更新分院失败", zap.Int64("id", id), zap.Error(err))
			}
			return nil, err
		}
	}

	return s.GetBranch(ctx, id)
}

func (s *clinicService) DeleteBranch(ctx context.Context, id int64, callerID string) error {
	if _, err := s.getBranch(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Branch.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除分院失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Floor ──────────────────────

func (s *clinicService) CreateFloor(ctx context.Context, branchID int64, req *dto.CreateFloorRequest, callerID string) (*dto.FloorResponse, error) {
	if _, err := s.getBranch(ctx, branchID); err != nil {
		return nil, err
	}

	floor := &model.Floor{
		BranchID: branchID,
		Name:     req.Name,
		Level:    req.Level,
	}
	floor.CreatedBy = &callerID
	floor.UpdatedBy = &callerID

	if err := s.repo.Floor.Create(ctx, floor); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrBranchNotFound
		}
		s.logger.Error("创建楼层失败", zap.Int64("branch_id", branchID), zap.Error(err))
		return nil, err
	}
	return toFloorResponse(floor), nil
}

func (s *clinicService) ListFloors(ctx context.Context, branchID int64) ([]dto.FloorResponse, error) {
	if _, err := s.getBranch(ctx, branchID); err != nil {
		return nil, err
	}

	floors, err := s.repo.Floor.ListByBranch(ctx, branchID)
	if err != nil {
		s.logger.Error("列出楼层失败", zap.Int64("branch_id", branchID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.FloorResponse, 0, len(floors))
	for i := range floors {
		result = append(result, *toFloorResponse(&floors[i]))
	}
	return result, nil
}

// ────────────────────── ConsultingRoom ──────────────────────

func (s *clinicService) CreateRoom(ctx context.Context, req *dto.CreateConsultingRoomRequest, callerID string) (*dto.ConsultingRoomResponse, error) {
	if _, err := s.repo.Floor.GetByID(ctx, req.FloorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFloorNotFound
		}
		s.logger.Error("查询楼层失败", zap.Int64("id", req.FloorID), zap.Error(err))
		return nil, err
	}

	room := &model.ConsultingRoom{
		FloorID: req.FloorID,
		Name:    req.Name,
		Code:    req.Code,
		Active:  true,
	}
	room.CreatedBy = &callerID
	room.UpdatedBy = &callerID

	if err := s.repo.ConsultingRoom.Create(ctx, room); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrFloorNotFound
		}
		s.logger.Error("创建诊室失败", zap.Error(err))
		return nil, err
	}
	return toRoomResponse(room), nil
}

func (s *clinicService) GetRoom(ctx context.Context, id int64) (*dto.ConsultingRoomResponse, error) {
	room, err := s.repo.ConsultingRoom.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("查询诊室失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return toRoomResponse(room), nil
}

func (s *clinicService) ListRooms(ctx context.Context, req *dto.ConsultingRoomListRequest) ([]dto.ConsultingRoomResponse, error) {
	rooms, err := s.repo.ConsultingRoom.List(ctx, req.FloorID, req.BranchID)
	if err != nil {
		s.logger.Error("列出诊室失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ConsultingRoomResponse, 0, len(rooms))
	for i := range rooms {
		result = append(result, *toRoomResponse(&rooms[i]))
	}
	return result, nil
}

func (s *clinicService) UpdateRoom(ctx context.Context, id int64, req *dto.UpdateConsultingRoomRequest, callerID string) (*dto.ConsultingRoomResponse, error) {
	if _, err := s.GetRoom(ctx, id); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Code != nil {
		fields["code"] = *req.Code
	}
	if req.Active != nil {
		fields["active"] = *req.Active
	}

	if len(fields) > 0 {
		if err := s.repo.ConsultingRoom.UpdateFields(ctx, id, fields, callerID); err != nil {
			s.logger.Error("更新诊室失败", zap.Int64("id", id), zap.Error(err))
			return nil, err
		}
	}

	return s.GetRoom(ctx, id)
}

// ── 内部辅助方法 ──

func (s *clinicService) getBranch(ctx context.Context, id int64) (*model.Branch, error) {
	branch, err := s.repo.Branch.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		s.logger.Error("查询分院失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return branch, nil
}

func toBranchResponse(b *model.Branch) *dto.BranchResponse {
	return &dto.BranchResponse{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		Active:    b.Active,
		Version:   b.Version,
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toFloorResponse(f *model.Floor) *dto.FloorResponse {
	return &dto.FloorResponse{
		ID:       f.ID,
		BranchID: f.BranchID,
		Name:     f.Name,
		Level:    f.Level,
	}
}

func toRoomResponse(r *model.ConsultingRoom) *dto.ConsultingRoomResponse {
	return &dto.ConsultingRoomResponse{
		ID:      r.ID,
		FloorID: r.FloorID,
		Name:    r.Name,
		Code:    r.Code,
		Active:  r.Active,
	}
}
