package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/VibolSen/Backend/internal/dto"
	"github.com/VibolSen/Backend/internal/model"
)

func setupTestExportService() (ExportService, *testRepos) {
	repos := newTestRepos()
	svc := NewExportService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

// seedExportSchedule 写入一条带教师与课节的周期性日程
func seedExportSchedule(repos *testRepos) *model.Schedule {
	teacherID := "t-1"
	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC) // Monday
	end := time.Date(2026, 12, 18, 0, 0, 0, 0, time.UTC)

	sched := &model.Schedule{
		Title:       "代数课",
		CreatorID:   "admin-1",
		TeacherID:   &teacherID,
		Teacher:     &model.User{UserID: teacherID, FirstName: "Dara", LastName: "Sok"},
		Location:    "Lab 3",
		IsRecurring: true,
		StartDate:   &start,
		EndDate:     &end,
		DaysOfWeek:  model.StringArray{"Monday", "Wednesday"},
		Sessions: []model.Session{
			{StartTime: "09:00:00", EndTime: "10:00:00"},
		},
	}
	_ = repos.schedule.CreateWithSessions(context.Background(), sched)
	return sched
}

func TestExportService_XLSX_Empty(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportSchedulesXLSX(context.Background(), &dto.ScheduleListRequest{})
	if !errors.Is(err, ErrExportNoSchedules) {
		t.Errorf("期望 ErrExportNoSchedules，实际: %v", err)
	}
}

func TestExportService_XLSX_Success(t *testing.T) {
	svc, repos := setupTestExportService()
	seedExportSchedule(repos)

	buf, filename, err := svc.ExportSchedulesXLSX(context.Background(), &dto.ScheduleListRequest{})
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名应以 .xlsx 结尾: %s", filename)
	}

	// 回读校验内容
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出内容应为合法 xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("日程清单")
	if err != nil {
		t.Fatalf("读取 Sheet 失败: %v", err)
	}
	// 表头 + 1 条数据行
	if len(rows) != 2 {
		t.Fatalf("期望 2 行，实际 %d", len(rows))
	}
	data := rows[1]
	if data[0] != "代数课" {
		t.Errorf("标题列不符: %s", data[0])
	}
	if data[1] != "Dara Sok" {
		t.Errorf("教师列不符: %s", data[1])
	}
	if data[8] != "09:00" || data[9] != "10:00" {
		t.Errorf("课节时间应裁剪为 HH:mm: %s-%s", data[8], data[9])
	}
}

func TestExportService_ICS_Recurring(t *testing.T) {
	svc, repos := setupTestExportService()
	seedExportSchedule(repos)

	buf, filename, err := svc.ExportSchedulesICS(context.Background(), &dto.ScheduleListRequest{})
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if !strings.HasSuffix(filename, ".ics") {
		t.Errorf("文件名应以 .ics 结尾: %s", filename)
	}

	content := buf.String()
	if !strings.Contains(content, "BEGIN:VCALENDAR") || !strings.Contains(content, "BEGIN:VEVENT") {
		t.Error("导出应包含日历与事件块")
	}
	if !strings.Contains(content, "SUMMARY:代数课") {
		t.Error("事件应携带日程标题")
	}
	if !strings.Contains(content, "FREQ=WEEKLY") || !strings.Contains(content, "BYDAY=MO,WE") {
		t.Errorf("周期性日程应生成 WEEKLY BYDAY 规则，实际:\n%s", content)
	}
	if !strings.Contains(content, "UNTIL=20261218") {
		t.Error("有结束日期时 RRULE 应携带 UNTIL")
	}
	if !strings.Contains(content, "LOCATION:Lab 3") {
		t.Error("事件应携带地点")
	}
}

func TestExportService_ICS_SkipsUndatedSchedule(t *testing.T) {
	svc, repos := setupTestExportService()

	// 无起始日期的日程无法定位到日历时间，应被跳过
	_ = repos.schedule.CreateWithSessions(context.Background(), &model.Schedule{
		Title:     "待定安排",
		CreatorID: "admin-1",
		Sessions:  []model.Session{{StartTime: "09:00", EndTime: "10:00"}},
	})

	buf, _, err := svc.ExportSchedulesICS(context.Background(), &dto.ScheduleListRequest{})
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if strings.Contains(buf.String(), "BEGIN:VEVENT") {
		t.Error("无日期的日程不应产出事件")
	}
}

