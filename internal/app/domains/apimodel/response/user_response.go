package response

import "time"

// UserResponse 用户资料响应（永不包含密码散列）
type UserResponse struct {
	ID        int64     `json:"id" example:"175910001001"`
	Name      string    `json:"name" example:"Jane Doe"`
	Email     string    `json:"email" example:"jane@example.com"`
	Role      string    `json:"role" example:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse 注册/登录响应
type AuthResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}
