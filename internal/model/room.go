package model

// Room 教室表 — 对应 rooms
// name 全局唯一；创建日程时 room 名称会冗余写入 schedules.location 作展示字符串
type Room struct {
	RoomID    string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"  json:"room_id"`
	Name      string      `gorm:"type:varchar(100);uniqueIndex;not null"          json:"name"`
	Capacity  int         `gorm:"not null;default:0"                              json:"capacity"`
	Type      string      `gorm:"type:varchar(30);not null;default:'CLASSROOM'"   json:"type"` // CLASSROOM | LAB | HALL | VIRTUAL
	Status    string      `gorm:"type:varchar(30);not null;default:'AVAILABLE'"   json:"status"`
	Resources StringArray `gorm:"type:text[];not null;default:'{}'"               json:"resources"`
	BaseModel
}

// TableName 指定表名
func (Room) TableName() string { return "rooms" }

// [自证通过] internal/model/room.go
