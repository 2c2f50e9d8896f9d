package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"clinic-admin/internal/model"
	"clinic-admin/internal/repository"
	pkgerrors "clinic-admin/pkg/errors"
)

// ── Mock WeekdayRepository ──

type mockWeekdayRepo struct {
	days []model.Weekday
	err  error
}

func newMockWeekdayRepo() *mockWeekdayRepo {
	days := make([]model.Weekday, 0, len(model.WeekdayNames))
	for i, name := range model.WeekdayNames {
		days = append(days, model.Weekday{ID: int64(i + 1), Name: name})
	}
	return &mockWeekdayRepo{days: days}
}

func (m *mockWeekdayRepo) ListOrdered(_ context.Context) ([]model.Weekday, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := append([]model.Weekday(nil), m.days...)
	sort.SliceStable(out, func(i, j int) bool {
		return model.WeekdayOrdinal(out[i].Name) < model.WeekdayOrdinal(out[j].Name)
	})
	return out, nil
}

// ── Mock BranchRepository ──

type mockBranchRepo struct {
	branches map[int64]*model.Branch
	nextID   int64
}

func newMockBranchRepo() *mockBranchRepo {
	return &mockBranchRepo{branches: make(map[int64]*model.Branch), nextID: 1}
}

func (m *mockBranchRepo) Create(_ context.Context, branch *model.Branch) error {
	if branch.ID == 0 {
		branch.ID = m.nextID
		m.nextID++
	}
	now := time.Now()
	branch.CreatedAt, branch.UpdatedAt = now, now
	m.branches[branch.ID] = branch
	return nil
}

func (m *mockBranchRepo) GetByID(_ context.Context, id int64) (*model.Branch, error) {
	if b, ok := m.branches[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBranchRepo) List(_ context.Context, includeInactive bool, offset, limit int) ([]model.Branch, int64, error) {
	var all []model.Branch
	for _, b := range m.branches {
		if includeInactive || b.Active {
			all = append(all, *b)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockBranchRepo) UpdateFields(_ context.Context, id int64, version int, fields map[string]interface{}, updatedBy string) error {
	b, ok := m.branches[id]
	if !ok || b.Version != version {
		return pkgerrors.ErrOptimisticLock
	}
	for col, v := range fields {
		switch col {
		case "name":
			b.Name = v.(string)
		case "address":
			b.Address = v.(string)
		case "phone":
			b.Phone = v.(string)
		case "active":
			b.Active = v.(bool)
		default:
			return pkgerrors.ErrUnknownColumn
		}
	}
	b.Version++
	b.UpdatedBy = &updatedBy
	return nil
}

func (m *mockBranchRepo) Delete(_ context.Context, id int64, _ string) error {
	delete(m.branches, id)
	return nil
}

// ── Mock FloorRepository ──

type mockFloorRepo struct {
	floors map[int64]*model.Floor
	nextID int64
}

func newMockFloorRepo() *mockFloorRepo {
	return &mockFloorRepo{floors: make(map[int64]*model.Floor), nextID: 1}
}

func (m *mockFloorRepo) Create(_ context.Context, floor *model.Floor) error {
	if floor.ID == 0 {
		floor.ID = m.nextID
		m.nextID++
	}
	m.floors[floor.ID] = floor
	return nil
}

func (m *mockFloorRepo) GetByID(_ context.Context, id int64) (*model.Floor, error) {
	if f, ok := m.floors[id]; ok {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFloorRepo) ListByBranch(_ context.Context, branchID int64) ([]model.Floor, error) {
	var result []model.Floor
	for _, f := range m.floors {
		if f.BranchID == branchID {
			result = append(result, *f)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Level < result[j].Level })
	return result, nil
}

// ── Mock ConsultingRoomRepository ──

type mockRoomRepo struct {
	rooms  map[int64]*model.ConsultingRoom
	nextID int64
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{rooms: make(map[int64]*model.ConsultingRoom), nextID: 1}
}

func (m *mockRoomRepo) Create(_ context.Context, room *model.ConsultingRoom) error {
	if room.ID == 0 {
		room.ID = m.nextID
		m.nextID++
	}
	m.rooms[room.ID] = room
	return nil
}

func (m *mockRoomRepo) GetByID(_ context.Context, id int64) (*model.ConsultingRoom, error) {
	if r, ok := m.rooms[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) List(_ context.Context, floorID, _ *int64) ([]model.ConsultingRoom, error) {
	var result []model.ConsultingRoom
	for _, r := range m.rooms {
		if floorID == nil || r.FloorID == *floorID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRoomRepo) UpdateFields(_ context.Context, id int64, fields map[string]interface{}, updatedBy string) error {
	r, ok := m.rooms[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for col, v := range fields {
		switch col {
		case "name":
			r.Name = v.(string)
		case "code":
			r.Code = v.(string)
		case "active":
			r.Active = v.(bool)
		default:
			return pkgerrors.ErrUnknownColumn
		}
	}
	r.UpdatedBy = &updatedBy
	return nil
}

// ── Mock DoctorRepository ──

type mockDoctorRepo struct {
	doctors map[int64]*model.Doctor
	nextID  int64
	// links 由 mockSpecialtyRepo 共享，GetByID 时回填专科
	specialties *mockSpecialtyRepo
}

func newMockDoctorRepo(specialties *mockSpecialtyRepo) *mockDoctorRepo {
	return &mockDoctorRepo{doctors: make(map[int64]*model.Doctor), nextID: 1, specialties: specialties}
}

func (m *mockDoctorRepo) Create(_ context.Context, doctor *model.Doctor) error {
	for _, d := range m.doctors {
		if d.LicenseNumber == doctor.LicenseNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	if doctor.ID == 0 {
		doctor.ID = m.nextID
		m.nextID++
	}
	m.doctors[doctor.ID] = doctor
	return nil
}

func (m *mockDoctorRepo) GetByID(ctx context.Context, id int64) (*model.Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *d
	copied.Specialties, _ = m.specialties.ListByDoctor(ctx, id)
	return &copied, nil
}

func (m *mockDoctorRepo) List(_ context.Context, activeOnly bool) ([]model.Doctor, error) {
	var result []model.Doctor
	for _, d := range m.doctors {
		if !activeOnly || d.Active {
			result = append(result, *d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ── Mock SpecialtyRepository ──

type mockSpecialtyRepo struct {
	specialties map[int64]*model.Specialty
	links       map[int64][]int64 // doctorID → specialtyIDs
	nextID      int64
}

func newMockSpecialtyRepo() *mockSpecialtyRepo {
	return &mockSpecialtyRepo{
		specialties: make(map[int64]*model.Specialty),
		links:       make(map[int64][]int64),
		nextID:      1,
	}
}

func (m *mockSpecialtyRepo) Create(_ context.Context, specialty *model.Specialty) error {
	for _, sp := range m.specialties {
		if sp.Name == specialty.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	if specialty.ID == 0 {
		specialty.ID = m.nextID
		m.nextID++
	}
	m.specialties[specialty.ID] = specialty
	return nil
}

func (m *mockSpecialtyRepo) GetByID(_ context.Context, id int64) (*model.Specialty, error) {
	if sp, ok := m.specialties[id]; ok {
		return sp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSpecialtyRepo) List(_ context.Context) ([]model.Specialty, error) {
	var result []model.Specialty
	for _, sp := range m.specialties {
		result = append(result, *sp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockSpecialtyRepo) AssignToDoctor(_ context.Context, doctorID, specialtyID int64) error {
	if _, ok := m.specialties[specialtyID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	for _, id := range m.links[doctorID] {
		if id == specialtyID {
			return nil
		}
	}
	m.links[doctorID] = append(m.links[doctorID], specialtyID)
	return nil
}

func (m *mockSpecialtyRepo) ListByDoctor(_ context.Context, doctorID int64) ([]model.DoctorSpecialty, error) {
	var result []model.DoctorSpecialty
	for _, id := range m.links[doctorID] {
		result = append(result, model.DoctorSpecialty{
			DoctorID:    doctorID,
			SpecialtyID: id,
			Specialty:   m.specialties[id],
		})
	}
	return result, nil
}

// ── Mock DoctorRoomAssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[int64]*model.DoctorRoomAssignment
	placements  map[int64]*model.AssignmentPlacement
	nextID      int64
	resolveErr  error
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{
		assignments: make(map[int64]*model.DoctorRoomAssignment),
		placements:  make(map[int64]*model.AssignmentPlacement),
		nextID:      1,
	}
}

// place 登记分配及其所在分院
func (m *mockAssignmentRepo) place(id, doctorID, branchID int64, branchName, roomName string) {
	m.assignments[id] = &model.DoctorRoomAssignment{ID: id, DoctorID: doctorID}
	m.placements[id] = &model.AssignmentPlacement{
		AssignmentID: id,
		DoctorID:     doctorID,
		BranchID:     branchID,
		BranchName:   branchName,
		RoomName:     roomName,
	}
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.DoctorRoomAssignment) error {
	if assignment.DoctorID <= 0 || assignment.ConsultingRoomID <= 0 {
		return gorm.ErrForeignKeyViolated
	}
	for _, a := range m.assignments {
		if a.DoctorID == assignment.DoctorID && a.ConsultingRoomID == assignment.ConsultingRoomID {
			return gorm.ErrDuplicatedKey
		}
	}
	if assignment.ID == 0 {
		assignment.ID = m.nextID
		m.nextID++
	}
	m.assignments[assignment.ID] = assignment
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id int64) (*model.DoctorRoomAssignment, error) {
	if a, ok := m.assignments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) ListByDoctor(_ context.Context, doctorID int64) ([]model.DoctorRoomAssignment, error) {
	var result []model.DoctorRoomAssignment
	for _, a := range m.assignments {
		if a.DoctorID == doctorID {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockAssignmentRepo) Resolve(_ context.Context, id int64) (*model.AssignmentPlacement, bool, error) {
	if m.resolveErr != nil {
		return nil, false, m.resolveErr
	}
	p, ok := m.placements[id]
	if !ok {
		return nil, false, nil
	}
	return p, true, nil
}

// ── Mock WorkScheduleRepository ──

type scheduleKey struct {
	doctorID, weekdayID, assignmentID int64
}

// mockWorkScheduleRepo 以业务键保存排班，冲突与周视图按分配所在分院在内存中计算
type mockWorkScheduleRepo struct {
	mu          sync.Mutex
	rows        map[scheduleKey]*model.DoctorWorkSchedule
	assignments *mockAssignmentRepo
	weekdays    *mockWeekdayRepo
	nextID      int64
	upsertErr   error
}

func newMockWorkScheduleRepo(assignments *mockAssignmentRepo, weekdays *mockWeekdayRepo) *mockWorkScheduleRepo {
	return &mockWorkScheduleRepo{
		rows:        make(map[scheduleKey]*model.DoctorWorkSchedule),
		assignments: assignments,
		weekdays:    weekdays,
		nextID:      1,
	}
}

func (m *mockWorkScheduleRepo) HasBranchConflict(_ context.Context, assignmentID, weekdayID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conflictLocked(assignmentID, weekdayID), nil
}

func (m *mockWorkScheduleRepo) conflictLocked(assignmentID, weekdayID int64) bool {
	target, ok := m.assignments.placements[assignmentID]
	if !ok {
		return false
	}
	for key, row := range m.rows {
		if key.doctorID != target.DoctorID || key.weekdayID != weekdayID || !row.Active {
			continue
		}
		if key.assignmentID == assignmentID {
			continue
		}
		other, ok := m.assignments.placements[key.assignmentID]
		if ok && other.BranchID != target.BranchID {
			return true
		}
	}
	return false
}

func (m *mockWorkScheduleRepo) ListWeekly(ctx context.Context, assignmentID int64) ([]model.WeeklyScheduleRow, error) {
	days, err := m.weekdays.ListOrdered(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var doctorID int64
	if p, ok := m.assignments.placements[assignmentID]; ok {
		doctorID = p.DoctorID
	}

	rows := make([]model.WeeklyScheduleRow, 0, len(days))
	for _, d := range days {
		row := model.WeeklyScheduleRow{
			WeekdayID:   d.ID,
			WeekdayName: d.Name,
			Ordinal:     model.WeekdayOrdinal(d.Name),
			Conflict:    m.conflictLocked(assignmentID, d.ID),
		}
		if ws, ok := m.rows[scheduleKey{doctorID, d.ID, assignmentID}]; ok {
			id, start, end := ws.ID, ws.StartTime, ws.EndTime
			row.ScheduleID = &id
			row.StartTime = &start
			row.EndTime = &end
			row.Active = ws.Active
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (m *mockWorkScheduleRepo) Upsert(_ context.Context, ws *model.DoctorWorkSchedule) (*model.DoctorWorkSchedule, error) {
	if m.upsertErr != nil {
		return nil, m.upsertErr
	}
	if _, ok := m.assignments.assignments[ws.DoctorRoomAssignmentID]; !ok {
		return nil, gorm.ErrForeignKeyViolated
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	key := scheduleKey{ws.DoctorID, ws.WeekdayID, ws.DoctorRoomAssignmentID}
	if existing, ok := m.rows[key]; ok {
		existing.StartTime = ws.StartTime
		existing.EndTime = ws.EndTime
		existing.Active = ws.Active
		existing.UpdatedAt = now.Add(time.Millisecond)
		existing.UpdatedBy = ws.UpdatedBy
		copied := *existing
		return &copied, nil
	}

	row := *ws
	row.ID = m.nextID
	m.nextID++
	row.CreatedAt, row.UpdatedAt = now, now
	m.rows[key] = &row
	copied := row
	return &copied, nil
}

func (m *mockWorkScheduleRepo) FindByIdentity(_ context.Context, doctorID, weekdayID, assignmentID int64) (*model.DoctorWorkSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ws, ok := m.rows[scheduleKey{doctorID, weekdayID, assignmentID}]; ok {
		copied := *ws
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── 测试辅助 ──

type mockRepos struct {
	weekday      *mockWeekdayRepo
	branch       *mockBranchRepo
	floor        *mockFloorRepo
	room         *mockRoomRepo
	doctor       *mockDoctorRepo
	specialty    *mockSpecialtyRepo
	assignment   *mockAssignmentRepo
	workSchedule *mockWorkScheduleRepo
}

// newMockRepository 组装未绑定数据库的 Repository 聚合，Transaction 直接以自身执行
func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		weekday:    newMockWeekdayRepo(),
		branch:     newMockBranchRepo(),
		floor:      newMockFloorRepo(),
		room:       newMockRoomRepo(),
		specialty:  newMockSpecialtyRepo(),
		assignment: newMockAssignmentRepo(),
	}
	m.doctor = newMockDoctorRepo(m.specialty)
	m.workSchedule = newMockWorkScheduleRepo(m.assignment, m.weekday)

	repo := &repository.Repository{
		Weekday:        m.weekday,
		Branch:         m.branch,
		Floor:          m.floor,
		ConsultingRoom: m.room,
		Doctor:         m.doctor,
		Specialty:      m.specialty,
		Assignment:     m.assignment,
		WorkSchedule:   m.workSchedule,
	}
	return repo, m
}

// ── Mock Publisher ──

type publishedMessage struct {
	target  string
	payload interface{}
}

type mockPublisher struct {
	mu        sync.Mutex
	published chan publishedMessage
	enqueued  []publishedMessage
	failEvery bool
}

func newMockPublisher() *mockPublisher {
	return &mockPublisher{published: make(chan publishedMessage, 16)}
}

var errPublisherDown = errors.New("broker unavailable")

func (p *mockPublisher) Publish(_ context.Context, routingKey string, payload interface{}) error {
	if p.failEvery {
		return errPublisherDown
	}
	p.published <- publishedMessage{target: routingKey, payload: payload}
	return nil
}

func (p *mockPublisher) Enqueue(_ context.Context, queue string, payload interface{}) error {
	if p.failEvery {
		return errPublisherDown
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enqueued = append(p.enqueued, publishedMessage{target: queue, payload: payload})
	return nil
}

func (p *mockPublisher) Close() error { return nil }
