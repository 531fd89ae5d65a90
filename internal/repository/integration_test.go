//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/VibolSen/Backend/internal/model"
	"github.com/VibolSen/Backend/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=academy password=academy_password dbname=academy_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Course{},
		&model.Room{},
		&model.Schedule{},
		&model.Session{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestData 创建基础测试数据并返回清理函数
func setupTestData(t *testing.T) (teacher *model.User, group *model.Group, room *model.Room, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	teacher = &model.User{
		Email:        fmt.Sprintf("teacher%d@academy.edu", time.Now().UnixNano()),
		PasswordHash: "$2a$10$placeholder",
		FirstName:    "测试",
		LastName:     "教师",
		Role:         model.RoleTeacher,
	}
	if err := testDB.WithContext(ctx).Create(teacher).Error; err != nil {
		t.Fatalf("创建教师失败: %v", err)
	}

	group = &model.Group{
		Name:         fmt.Sprintf("测试班组-%d", time.Now().UnixNano()),
		AcademicYear: "2026-2027",
	}
	if err := testDB.WithContext(ctx).Create(group).Error; err != nil {
		t.Fatalf("创建班组失败: %v", err)
	}

	room = &model.Room{
		Name:      fmt.Sprintf("测试教室-%d", time.Now().UnixNano()),
		Capacity:  30,
		Type:      "CLASSROOM",
		Status:    "AVAILABLE",
		Resources: model.StringArray{"projector", "whiteboard"},
	}
	if err := testDB.WithContext(ctx).Create(room).Error; err != nil {
		t.Fatalf("创建教室失败: %v", err)
	}

	cleanup = func() {
		testDB.Where("room_id = ?", room.RoomID).Delete(&model.Room{})
		testDB.Where("group_id = ?", group.GroupID).Delete(&model.Group{})
		testDB.Where("user_id = ?", teacher.UserID).Delete(&model.User{})
	}
	return
}

func newTestSchedule(teacher *model.User, group *model.Group) *model.Schedule {
	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 12, 18, 0, 0, 0, 0, time.UTC)
	return &model.Schedule{
		Title:       "集成测试日程",
		CreatorID:   teacher.UserID,
		TeacherID:   &teacher.UserID,
		GroupID:     &group.GroupID,
		IsRecurring: true,
		StartDate:   &start,
		EndDate:     &end,
		DaysOfWeek:  model.StringArray{"Monday", "Wednesday"},
		Sessions: []model.Session{
			{StartTime: "09:00", EndTime: "10:00"},
			{StartTime: "14:00", EndTime: "15:30"},
		},
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Unique Constraints
// ═══════════════════════════════════════════════════════════

func TestUser_UniqueEmail(t *testing.T) {
	teacher, _, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	dup := &model.User{
		Email:        teacher.Email,
		PasswordHash: "$2a$10$placeholder",
		FirstName:    "重复",
		LastName:     "邮箱",
		Role:         model.RoleStudent,
	}
	err := repo.User.Create(ctx, dup)
	if err == nil {
		testDB.Where("user_id = ?", dup.UserID).Delete(&model.User{})
		t.Fatal("期望邮箱唯一约束违反，但创建成功了")
	}
}

func TestRoom_UniqueName(t *testing.T) {
	_, _, room, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	dup := &model.Room{Name: room.Name, Capacity: 10}
	err := repo.Room.Create(ctx, dup)
	if err == nil {
		testDB.Where("room_id = ?", dup.RoomID).Delete(&model.Room{})
		t.Fatal("期望教室名称唯一约束违反，但创建成功了")
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Schedule + Sessions Lifecycle
// ═══════════════════════════════════════════════════════════

func TestSchedule_CreateWithSessions(t *testing.T) {
	teacher, group, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	sched := newTestSchedule(teacher, group)
	if err := repo.Schedule.CreateWithSessions(ctx, sched); err != nil {
		t.Fatalf("CreateWithSessions 失败: %v", err)
	}
	defer repo.Schedule.Delete(ctx, sched.ScheduleID)

	found, err := repo.Schedule.GetByID(ctx, sched.ScheduleID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if len(found.Sessions) != 2 {
		t.Errorf("期望 2 个课节，得到 %d 个", len(found.Sessions))
	}
	if !found.DaysOfWeek.Contains("Monday") || !found.DaysOfWeek.Contains("Wednesday") {
		t.Errorf("days_of_week 往返不一致: %v", found.DaysOfWeek)
	}
	if found.Teacher == nil || found.Teacher.UserID != teacher.UserID {
		t.Error("Teacher 关联未预加载")
	}
}

func TestSchedule_UpdateReplacesSessions(t *testing.T) {
	teacher, group, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	sched := newTestSchedule(teacher, group)
	if err := repo.Schedule.CreateWithSessions(ctx, sched); err != nil {
		t.Fatalf("CreateWithSessions 失败: %v", err)
	}
	defer repo.Schedule.Delete(ctx, sched.ScheduleID)

	// 全量替换为单个课节
	sched.Title = "更新后的日程"
	sched.Sessions = []model.Session{{StartTime: "16:00", EndTime: "17:00"}}
	if err := repo.Schedule.UpdateWithSessions(ctx, sched); err != nil {
		t.Fatalf("UpdateWithSessions 失败: %v", err)
	}

	found, err := repo.Schedule.GetByID(ctx, sched.ScheduleID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if found.Title != "更新后的日程" {
		t.Errorf("标题未更新: %s", found.Title)
	}
	if len(found.Sessions) != 1 {
		t.Fatalf("旧课节应被替换，期望 1 个，得到 %d 个", len(found.Sessions))
	}
	if found.Sessions[0].StartTime != "16:00" {
		t.Errorf("课节开始时间不符: %s", found.Sessions[0].StartTime)
	}
}

func TestSchedule_DeleteCascadesSessions(t *testing.T) {
	teacher, group, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	sched := newTestSchedule(teacher, group)
	if err := repo.Schedule.CreateWithSessions(ctx, sched); err != nil {
		t.Fatalf("CreateWithSessions 失败: %v", err)
	}

	if err := repo.Schedule.Delete(ctx, sched.ScheduleID); err != nil {
		t.Fatalf("Delete 失败: %v", err)
	}

	if _, err := repo.Schedule.GetByID(ctx, sched.ScheduleID); err == nil {
		t.Fatal("删除后应查不到日程")
	}

	var count int64
	testDB.Model(&model.Session{}).Where("schedule_id = ?", sched.ScheduleID).Count(&count)
	if count != 0 {
		t.Errorf("课节应随日程删除，剩余 %d 条", count)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: FindCandidates
// ═══════════════════════════════════════════════════════════

func TestFindCandidates_MatchesByAnyDimension(t *testing.T) {
	teacher, group, room, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	sched := newTestSchedule(teacher, group)
	sched.RoomID = &room.RoomID
	sched.Location = room.Name
	if err := repo.Schedule.CreateWithSessions(ctx, sched); err != nil {
		t.Fatalf("CreateWithSessions 失败: %v", err)
	}
	defer repo.Schedule.Delete(ctx, sched.ScheduleID)

	// 仅教师维度匹配
	found, err := repo.Schedule.FindCandidates(ctx, repository.CandidateFilter{TeacherID: &teacher.UserID})
	if err != nil {
		t.Fatalf("FindCandidates 失败: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("按教师维度期望 1 条候选，得到 %d 条", len(found))
	}
	if len(found[0].Sessions) != 2 {
		t.Errorf("候选应预加载课节，得到 %d 个", len(found[0].Sessions))
	}

	// 仅地点维度匹配
	found, err = repo.Schedule.FindCandidates(ctx, repository.CandidateFilter{Location: room.Name})
	if err != nil {
		t.Fatalf("FindCandidates 失败: %v", err)
	}
	if len(found) != 1 {
		t.Errorf("按地点维度期望 1 条候选，得到 %d 条", len(found))
	}

	// 全空维度不产生候选
	found, err = repo.Schedule.FindCandidates(ctx, repository.CandidateFilter{})
	if err != nil {
		t.Fatalf("FindCandidates 失败: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("空维度期望 0 条候选，得到 %d 条", len(found))
	}
}

func TestFindCandidates_ExcludesSelf(t *testing.T) {
	teacher, group, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	sched := newTestSchedule(teacher, group)
	if err := repo.Schedule.CreateWithSessions(ctx, sched); err != nil {
		t.Fatalf("CreateWithSessions 失败: %v", err)
	}
	defer repo.Schedule.Delete(ctx, sched.ScheduleID)

	found, err := repo.Schedule.FindCandidates(ctx, repository.CandidateFilter{
		TeacherID:         &teacher.UserID,
		ExcludeScheduleID: sched.ScheduleID,
	})
	if err != nil {
		t.Fatalf("FindCandidates 失败: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("排除自身后期望 0 条候选，得到 %d 条", len(found))
	}
}

// ═══════════════════════════════════════════════════════════
// Test: User List Pagination
// ═══════════════════════════════════════════════════════════

func TestUser_ListPagination(t *testing.T) {
	teacher, _, _, cleanup := setupTestData(t)
	defer cleanup()
	_ = teacher

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	users, total, err := repo.User.List(ctx, model.RoleTeacher, 0, 10)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total < 1 {
		t.Errorf("期望至少 1 个教师，total=%d", total)
	}
	for _, u := range users {
		if u.Role != model.RoleTeacher {
			t.Errorf("角色过滤失效，出现 %s", u.Role)
		}
	}
}
