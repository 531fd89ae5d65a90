package dto

// ── 班组模块 DTO ──

// CreateGroupRequest 创建班组请求
type CreateGroupRequest struct {
	Name         string `json:"name"          binding:"required,max=100"`
	AcademicYear string `json:"academic_year" binding:"omitempty,max=20"`
}

// UpdateGroupRequest 更新班组请求
type UpdateGroupRequest struct {
	Name         *string `json:"name"          binding:"omitempty,max=100"`
	AcademicYear *string `json:"academic_year" binding:"omitempty,max=20"`
}

// GroupResponse 班组响应
type GroupResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	AcademicYear string `json:"academic_year,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// GroupBrief 班组简要信息
type GroupBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// [自证通过] internal/dto/group.go
