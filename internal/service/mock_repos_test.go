package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/VibolSen/Backend/internal/model"
	"github.com/VibolSen/Backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, role string, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		all = append(all, *u)
	}
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

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock GroupRepository ──

type mockGroupRepo struct {
	groups map[string]*model.Group
	seq    int
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{groups: make(map[string]*model.Group)}
}

func (m *mockGroupRepo) Create(_ context.Context, group *model.Group) error {
	if group.GroupID == "" {
		m.seq++
		group.GroupID = fmt.Sprintf("group-%d", m.seq)
	}
	m.groups[group.GroupID] = group
	return nil
}

func (m *mockGroupRepo) GetByID(_ context.Context, id string) (*model.Group, error) {
	if g, ok := m.groups[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupRepo) List(_ context.Context) ([]model.Group, error) {
	var result []model.Group
	for _, g := range m.groups {
		result = append(result, *g)
	}
	return result, nil
}

func (m *mockGroupRepo) Update(_ context.Context, group *model.Group) error {
	m.groups[group.GroupID] = group
	return nil
}

func (m *mockGroupRepo) Delete(_ context.Context, id string) error {
	delete(m.groups, id)
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course
	seq     int
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.CourseID == "" {
		m.seq++
		course.CourseID = fmt.Sprintf("course-%d", m.seq)
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	delete(m.courses, id)
	return nil
}

// ── Mock RoomRepository ──

type mockRoomRepo struct {
	rooms map[string]*model.Room
	seq   int
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{rooms: make(map[string]*model.Room)}
}

func (m *mockRoomRepo) Create(_ context.Context, room *model.Room) error {
	if room.RoomID == "" {
		m.seq++
		room.RoomID = fmt.Sprintf("room-%d", m.seq)
	}
	m.rooms[room.RoomID] = room
	return nil
}

func (m *mockRoomRepo) GetByID(_ context.Context, id string) (*model.Room, error) {
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) GetByName(_ context.Context, name string) (*model.Room, error) {
	for _, r := range m.rooms {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) List(_ context.Context) ([]model.Room, error) {
	var result []model.Room
	for _, r := range m.rooms {
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRoomRepo) Update(_ context.Context, room *model.Room) error {
	m.rooms[room.RoomID] = room
	return nil
}

func (m *mockRoomRepo) Delete(_ context.Context, id string) error {
	delete(m.rooms, id)
	return nil
}

// ── Mock ScheduleRepository ──

// mockScheduleRepo 用 slice 保存以维持插入顺序（List 断言依赖顺序稳定）
type mockScheduleRepo struct {
	schedules []*model.Schedule
	seq       int
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{}
}

func (m *mockScheduleRepo) CreateWithSessions(_ context.Context, schedule *model.Schedule) error {
	if schedule.ScheduleID == "" {
		m.seq++
		schedule.ScheduleID = fmt.Sprintf("sched-%d", m.seq)
	}
	for i := range schedule.Sessions {
		schedule.Sessions[i].ScheduleID = schedule.ScheduleID
		if schedule.Sessions[i].SessionID == "" {
			schedule.Sessions[i].SessionID = fmt.Sprintf("%s-s%d", schedule.ScheduleID, i+1)
		}
	}
	m.schedules = append(m.schedules, schedule)
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.Schedule, error) {
	for _, s := range m.schedules {
		if s.ScheduleID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) List(_ context.Context, filter repository.ScheduleFilter) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, s := range m.schedules {
		if filter.TeacherID != "" && (s.TeacherID == nil || *s.TeacherID != filter.TeacherID) {
			continue
		}
		if filter.GroupID != "" && (s.GroupID == nil || *s.GroupID != filter.GroupID) {
			continue
		}
		if filter.CourseID != "" && (s.CourseID == nil || *s.CourseID != filter.CourseID) {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockScheduleRepo) FindCandidates(_ context.Context, filter repository.CandidateFilter) ([]model.Schedule, error) {
	hasDim := (filter.TeacherID != nil && *filter.TeacherID != "") ||
		(filter.GroupID != nil && *filter.GroupID != "") ||
		(filter.RoomID != nil && *filter.RoomID != "") ||
		strings.TrimSpace(filter.Location) != ""
	if !hasDim {
		return nil, nil
	}

	var result []model.Schedule
	for _, s := range m.schedules {
		if s.ScheduleID == filter.ExcludeScheduleID {
			continue
		}
		match := false
		if filter.TeacherID != nil && *filter.TeacherID != "" &&
			s.TeacherID != nil && *s.TeacherID == *filter.TeacherID {
			match = true
		}
		if filter.GroupID != nil && *filter.GroupID != "" &&
			s.GroupID != nil && *s.GroupID == *filter.GroupID {
			match = true
		}
		if filter.RoomID != nil && *filter.RoomID != "" &&
			s.RoomID != nil && *s.RoomID == *filter.RoomID {
			match = true
		}
		if strings.TrimSpace(filter.Location) != "" && s.Location == filter.Location {
			match = true
		}
		if match {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) UpdateWithSessions(_ context.Context, schedule *model.Schedule) error {
	for i, s := range m.schedules {
		if s.ScheduleID == schedule.ScheduleID {
			for j := range schedule.Sessions {
				schedule.Sessions[j].ScheduleID = schedule.ScheduleID
				schedule.Sessions[j].SessionID = fmt.Sprintf("%s-s%d", schedule.ScheduleID, j+1)
			}
			m.schedules[i] = schedule
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	for i, s := range m.schedules {
		if s.ScheduleID == id {
			m.schedules = append(m.schedules[:i], m.schedules[i+1:]...)
			return nil
		}
	}
	return nil
}

