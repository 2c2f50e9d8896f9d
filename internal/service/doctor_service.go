package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"clinic-admin/internal/dto"
	"clinic-admin/internal/model"
	"clinic-admin/internal/repository"
)

// ── 医生 / 专科 / 诊室分配业务错误 ──

var (
	ErrDoctorNotFound        = errors.New("医生不存在")
	ErrDoctorLicenseExists   = errors.New("执业证号已存在")
	ErrSpecialtyNotFound     = errors.New("专科不存在")
	ErrSpecialtyExists       = errors.New("专科名称已存在")
	ErrAssignmentNotFound    = errors.New("诊室分配不存在")
	ErrAssignmentExists      = errors.New("该医生已分配到此诊室")
	ErrAssignmentRefNotFound = errors.New("医生或诊室不存在")
)

// DoctorService 医生目录业务接口
type DoctorService interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest, callerID string) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, id int64) (*dto.DoctorResponse, error)
	ListDoctors(ctx context.Context, req *dto.DoctorListRequest) ([]dto.DoctorResponse, error)

	CreateSpecialty(ctx context.Context, req *dto.CreateSpecialtyRequest, callerID string) (*dto.IDNameResponse, error)
	ListSpecialties(ctx context.Context) ([]dto.IDNameResponse, error)
	// AssignSpecialty 幂等：重复分配不报错
	AssignSpecialty(ctx context.Context, doctorID int64, req *dto.AssignSpecialtyRequest) ([]dto.IDNameResponse, error)
	ListDoctorSpecialties(ctx context.Context, doctorID int64) ([]dto.IDNameResponse, error)

	CreateAssignment(ctx context.Context, req *dto.CreateAssignmentRequest, callerID string) (*dto.AssignmentResponse, error)
	GetAssignment(ctx context.Context, id int64) (*dto.AssignmentResponse, error)
	ListAssignments(ctx context.Context, doctorID int64) ([]dto.AssignmentResponse, error)
}

type doctorService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDoctorService 创建 DoctorService 实例
func NewDoctorService(repo *repository.Repository, logger *zap.Logger) DoctorService {
	return &doctorService{repo: repo, logger: logger}
}

// ────────────────────── Doctor ──────────────────────

func (s *doctorService) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest, callerID string) (*dto.DoctorResponse, error) {
	doctor := &model.Doctor{
		FullName:      req.FullName,
		LicenseNumber: req.LicenseNumber,
		Active:        true,
	}
	doctor.CreatedBy = &callerID
	doctor.UpdatedBy = &callerID

	// 医生与初始专科在同一事务内写入
	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Doctor.Create(ctx, doctor); err != nil {
			return err
		}
		for _, specialtyID := range req.SpecialtyIDs {
			if err := txRepo.Specialty.AssignToDoctor(ctx, doctor.ID, specialtyID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrDoctorLicenseExists
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return nil, ErrSpecialtyNotFound
		}
		s.logger.Error("创建医生失败", zap.String("license", req.LicenseNumber), zap.Error(err))
		return nil, err
	}

	return s.GetDoctor(ctx, doctor.ID)
}

func (s *doctorService) GetDoctor(ctx context.Context, id int64) (*dto.DoctorResponse, error) {
	doctor, err := s.repo.Doctor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		s.logger.Error("查询医生失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return toDoctorResponse(doctor), nil
}

func (s *doctorService) ListDoctors(ctx context.Context, req *dto.DoctorListRequest) ([]dto.DoctorResponse, error) {
	doctors, err := s.repo.Doctor.List(ctx, req.ActiveOnly)
	if err != nil {
		s.logger.Error("列出医生失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.DoctorResponse, 0, len(doctors))
	for i := range doctors {
		result = append(result, *toDoctorResponse(&doctors[i]))
	}
	return result, nil
}

// ────────────────────── Specialty ──────────────────────

func (s *doctorService) CreateSpecialty(ctx context.Context, req *dto.CreateSpecialtyRequest, callerID string) (*dto.IDNameResponse, error) {
	specialty := &model.Specialty{Name: req.Name}
	specialty.CreatedBy = &callerID
	specialty.UpdatedBy = &callerID

	if err := s.repo.Specialty.Create(ctx, specialty); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSpecialtyExists
		}
		s.logger.Error("创建专科失败", zap.Error(err))
		return nil, err
	}
	return &dto.IDNameResponse{ID: specialty.ID, Name: specialty.Name}, nil
}

func (s *doctorService) ListSpecialties(ctx context.Context) ([]dto.IDNameResponse, error) {
	specialties, err := s.repo.Specialty.List(ctx)
	if err != nil {
		s.logger.Error("列出专科失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.IDNameResponse, 0, len(specialties))
	for _, sp := range specialties {
		result = append(result, dto.IDNameResponse{ID: sp.ID, Name: sp.Name})
	}
	return result, nil
}

func (s *doctorService) AssignSpecialty(ctx context.Context, doctorID int64, req *dto.AssignSpecialtyRequest) ([]dto.IDNameResponse, error) {
	if _, err := s.GetDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	if err := s.repo.Specialty.AssignToDoctor(ctx, doctorID, req.SpecialtyID); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrSpecialtyNotFound
		}
		s.logger.Error("分配专科失败",
			zap.Int64("doctor_id", doctorID),
			zap.Int64("specialty_id", req.SpecialtyID),
			zap.Error(err))
		return nil, err
	}

	return s.ListDoctorSpecialties(ctx, doctorID)
}

func (s *doctorService) ListDoctorSpecialties(ctx context.Context, doctorID int64) ([]dto.IDNameResponse, error) {
	links, err := s.repo.Specialty.ListByDoctor(ctx, doctorID)
	if err != nil {
		s.logger.Error("查询医生专科失败", zap.Int64("doctor_id", doctorID), zap.Error(err))
		return nil, err
	}
	return toSpecialtyList(links), nil
}

// ────────────────────── Assignment ──────────────────────

func (s *doctorService) CreateAssignment(ctx context.Context, req *dto.CreateAssignmentRequest, callerID string) (*dto.AssignmentResponse, error) {
	assignment := &model.DoctorRoomAssignment{
		DoctorID:         req.DoctorID,
		ConsultingRoomID: req.ConsultingRoomID,
	}
	assignment.CreatedBy = &callerID
	assignment.UpdatedBy = &callerID

	if err := s.repo.Assignment.Create(ctx, assignment); err != nil {
		switch {
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return nil, ErrAssignmentRefNotFound
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrAssignmentExists
		}
		s.logger.Error("创建诊室分配失败",
			zap.Int64("doctor_id", req.DoctorID),
			zap.Int64("room_id", req.ConsultingRoomID),
			zap.Error(err))
		return nil, err
	}

	return s.GetAssignment(ctx, assignment.ID)
}

func (s *doctorService) GetAssignment(ctx context.Context, id int64) (*dto.AssignmentResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询诊室分配失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return toAssignmentResponse(assignment), nil
}

func (s *doctorService) ListAssignments(ctx context.Context, doctorID int64) ([]dto.AssignmentResponse, error) {
	if _, err := s.GetDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	assignments, err := s.repo.Assignment.ListByDoctor(ctx, doctorID)
	if err != nil {
		s.logger.Error("列出诊室分配失败", zap.Int64("doctor_id", doctorID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		result = append(result, *toAssignmentResponse(&assignments[i]))
	}
	return result, nil
}

// ── 内部辅助方法 ──

func toDoctorResponse(d *model.Doctor) *dto.DoctorResponse {
	return &dto.DoctorResponse{
		ID:            d.ID,
		FullName:      d.FullName,
		LicenseNumber: d.LicenseNumber,
		Active:        d.Active,
		Specialties:   toSpecialtyList(d.Specialties),
	}
}

func toSpecialtyList(links []model.DoctorSpecialty) []dto.IDNameResponse {
	result := make([]dto.IDNameResponse, 0, len(links))
	for _, link := range links {
		item := dto.IDNameResponse{ID: link.SpecialtyID}
		if link.Specialty != nil {
			item.Name = link.Specialty.Name
		}
		result = append(result, item)
	}
	return result
}

func toAssignmentResponse(a *model.DoctorRoomAssignment) *dto.AssignmentResponse {
	resp := &dto.AssignmentResponse{
		ID:               a.ID,
		DoctorID:         a.DoctorID,
		ConsultingRoomID: a.ConsultingRoomID,
	}
	if room := a.ConsultingRoom; room != nil {
		resp.Room = &dto.IDNameResponse{ID: room.ID, Name: room.Name}
		if room.Floor != nil && room.Floor.Branch != nil {
			resp.Branch = &dto.IDNameResponse{ID: room.Floor.Branch.ID, Name: room.Floor.Branch.Name}
		}
	}
	return resp
}
