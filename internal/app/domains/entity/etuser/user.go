package etuser

import (
	"errors"
	"strings"
	"time"
)

// 错误定义
var (
	ErrInvalidUserID   = errors.New("invalid user ID")
	ErrInvalidName     = errors.New("user name cannot be empty")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidPassword = errors.New("password hash cannot be empty")
)

// 角色常量
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User 用户实体
type User struct {
	ID           int64     // 用户ID（雪花ID）
	Name         string    // 用户名
	Email        string    // 邮箱
	PasswordHash string    // bcrypt 密码散列，永不对外序列化
	Role         string    // 角色 user/admin
	CreatedAt    time.Time // 创建时间
}

// NewUser 创建用户（工厂方法）
func NewUser(id int64, name, email, passwordHash string) (*User, error) {
	// 业务规则校验
	if id <= 0 {
		return nil, ErrInvalidUserID
	}
	if name == "" {
		return nil, ErrInvalidName
	}
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if passwordHash == "" {
		return nil, ErrInvalidPassword
	}

	return &User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         RoleUser,
		CreatedAt:    time.Now(),
	}, nil
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
