package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/VibolSen/Backend/internal/dto"
	"github.com/VibolSen/Backend/internal/model"
	"github.com/VibolSen/Backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoSchedules  = errors.New("没有可导出的日程")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// byDayCodes Weekday → RFC 5545 BYDAY 码
var byDayCodes = map[string]string{
	"Monday":    "MO",
	"Tuesday":   "TU",
	"Wednesday": "WE",
	"Thursday":  "TH",
	"Friday":    "FR",
	"Saturday":  "SA",
	"Sunday":    "SU",
}

// goWeekdays Weekday 名称 → time.Weekday
var goWeekdays = map[string]time.Weekday{
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
	"Sunday":    time.Sunday,
}

// ExportService 导出业务接口
//
// 设计说明：
//   - Excel 导出为扁平清单（一行一个「日程×课节」），便于后续筛选透视
//   - ICS 导出遵循 RFC 5545：周期性日程产出带 RRULE 的事件，一次性日程产出单次事件
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportSchedulesXLSX 导出日程清单为 Excel
	ExportSchedulesXLSX(ctx context.Context, req *dto.ScheduleListRequest) (*bytes.Buffer, string, error)
	// ExportSchedulesICS 导出日程为 iCalendar
	ExportSchedulesICS(ctx context.Context, req *dto.ScheduleListRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportSchedulesXLSX — 导出日程清单为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式（单 Sheet 扁平清单）：
//   | 标题 | 教师 | 班组 | 课程 | 地点 | 周期 | 起止日期 | 星期 | 开始 | 结束 |
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportSchedulesXLSX(ctx context.Context, req *dto.ScheduleListRequest) (*bytes.Buffer, string, error) {
	schedules, err := s.listForExport(ctx, req)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "日程清单"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽
	widths := map[string]float64{
		"A": 24, "B": 18, "C": 16, "D": 16, "E": 16,
		"F": 8, "G": 24, "H": 28, "I": 8, "J": 8,
	}
	for col, w := range widths {
		f.SetColWidth(sheetName, col, col, w)
	}

	// 样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头
	headers := []string{"标题", "教师", "班组", "课程", "地点", "周期", "起止日期", "星期", "开始", "结束"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheetName, "A1", cell(colName(len(headers)-1), 1), headerStyle)

	// 数据行：一行一个「日程×课节」；无课节的日程也占一行
	row := 2
	for i := range schedules {
		sched := &schedules[i]
		base := scheduleRowValues(sched)

		if len(sched.Sessions) == 0 {
			writeScheduleRow(f, sheetName, row, base, "", "")
			row++
			continue
		}
		for _, session := range sched.Sessions {
			writeScheduleRow(f, sheetName, row, base,
				normalizeClock(session.StartTime), normalizeClock(session.EndTime))
			row++
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("schedules_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportSchedulesICS — 导出日程为 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 事件生成规则：
//   - 每个「日程×课节」产出一个 VEVENT
//   - 周期性日程：DTSTART 取起始日期后首个命中的星期，
//     RRULE=FREQ=WEEKLY;BYDAY=...（有结束日期时附 UNTIL）
//   - 一次性日程：DTSTART/DTEND 直接取起始日期 + 课节时间
//   - 无起始日期的日程跳过（无法定位到具体日历时间）

func (s *exportService) ExportSchedulesICS(ctx context.Context, req *dto.ScheduleListRequest) (*bytes.Buffer, string, error) {
	schedules, err := s.listForExport(ctx, req)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Academy Backend//Schedule Export//EN")

	now := time.Now().UTC()
	for i := range schedules {
		sched := &schedules[i]
		if sched.StartDate == nil {
			continue
		}

		for _, session := range sched.Sessions {
			startClock := normalizeClock(session.StartTime)
			endClock := normalizeClock(session.EndTime)

			firstDate := firstOccurrence(sched)
			start, err := combineDateClock(firstDate, startClock)
			if err != nil {
				continue
			}
			end, err := combineDateClock(firstDate, endClock)
			if err != nil {
				continue
			}

			event := cal.AddEvent(fmt.Sprintf("%s-%s@academy", sched.ScheduleID, session.SessionID))
			event.SetDtStampTime(now)
			event.SetStartAt(start)
			event.SetEndAt(end)
			event.SetSummary(sched.Title)
			if sched.Location != "" {
				event.SetLocation(sched.Location)
			}
			if sched.Teacher != nil {
				event.SetDescription(fmt.Sprintf("Teacher: %s", sched.Teacher.FullName()))
			}

			if sched.IsRecurring && len(sched.DaysOfWeek) > 0 {
				event.AddRrule(buildRrule(sched))
			}
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())

	filename := fmt.Sprintf("schedules_%s.ics", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ── 内部辅助方法 ──

func (s *exportService) listForExport(ctx context.Context, req *dto.ScheduleListRequest) ([]model.Schedule, error) {
	schedules, err := s.repo.Schedule.List(ctx, repository.ScheduleFilter{
		TeacherID: req.TeacherID,
		GroupID:   req.GroupID,
		CourseID:  req.CourseID,
	})
	if err != nil {
		s.logger.Error("查询导出日程失败", zap.Error(err))
		return nil, err
	}
	if len(schedules) == 0 {
		return nil, ErrExportNoSchedules
	}
	return schedules, nil
}

// scheduleRowValues 日程级列值（课节级两列由调用方补充）
func scheduleRowValues(sched *model.Schedule) []string {
	teacherName := "-"
	if sched.Teacher != nil {
		teacherName = sched.Teacher.FullName()
	}
	groupName := "-"
	if sched.Group != nil {
		groupName = sched.Group.Name
	}
	courseName := "-"
	if sched.Course != nil {
		courseName = sched.Course.Name
	}
	location := sched.Location
	if location == "" {
		location = "-"
	}

	recurring := "一次性"
	dateRange := "-"
	weekdays := "-"
	if sched.IsRecurring {
		recurring = "周期性"
		weekdays = strings.Join(sched.DaysOfWeek, ", ")
	}
	if sched.StartDate != nil {
		dateRange = sched.StartDate.Format(dateLayout)
		if sched.EndDate != nil {
			dateRange += " ~ " + sched.EndDate.Format(dateLayout)
		}
	}

	return []string{sched.Title, teacherName, groupName, courseName, location, recurring, dateRange, weekdays}
}

func writeScheduleRow(f *excelize.File, sheetName string, row int, base []string, start, end string) {
	for i, v := range base {
		f.SetCellValue(sheetName, cell(colName(i), row), v)
	}
	if start == "" {
		start, end = "-", "-"
	}
	f.SetCellValue(sheetName, cell(colName(len(base)), row), start)
	f.SetCellValue(sheetName, cell(colName(len(base)+1), row), end)
}

// firstOccurrence 周期性日程自起始日期起首个命中星期的日期；一次性日程即起始日期
func firstOccurrence(sched *model.Schedule) time.Time {
	date := *sched.StartDate
	if !sched.IsRecurring || len(sched.DaysOfWeek) == 0 {
		return date
	}

	wanted := make(map[time.Weekday]bool, len(sched.DaysOfWeek))
	for _, name := range sched.DaysOfWeek {
		if wd, ok := goWeekdays[name]; ok {
			wanted[wd] = true
		}
	}
	if len(wanted) == 0 {
		return date
	}

	for i := 0; i < 7; i++ {
		if wanted[date.Weekday()] {
			return date
		}
		date = date.AddDate(0, 0, 1)
	}
	return *sched.StartDate
}

func combineDateClock(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

func buildRrule(sched *model.Schedule) string {
	codes := make([]string, 0, len(sched.DaysOfWeek))
	for _, name := range sched.DaysOfWeek {
		if code, ok := byDayCodes[name]; ok {
			codes = append(codes, code)
		}
	}

	rule := fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s", strings.Join(codes, ","))
	if sched.EndDate != nil {
		// UNTIL 取结束日当天末尾，保证最后一天的课节仍被覆盖
		until := time.Date(sched.EndDate.Year(), sched.EndDate.Month(), sched.EndDate.Day(),
			23, 59, 59, 0, time.UTC)
		rule += ";UNTIL=" + until.Format("20060102T150405Z")
	}
	return rule
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
