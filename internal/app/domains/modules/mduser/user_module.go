package mduser

import (
	"context"

	"dermascan/internal/app/domains/entity/etuser"
	"dermascan/internal/app/domains/repo/rpuser"
)

// UserModule 用户模块（数据编排层）
type UserModule struct {
	userRepo rpuser.UserRepository
}

// NewUserModule 创建用户模块
func NewUserModule(userRepo rpuser.UserRepository) *UserModule {
	return &UserModule{
		userRepo: userRepo,
	}
}

// CreateUser 创建用户
func (m *UserModule) CreateUser(ctx context.Context, user *etuser.User) error {
	return m.userRepo.Create(ctx, user)
}

// GetUser 查询用户
func (m *UserModule) GetUser(ctx context.Context, userID int64) (*etuser.User, error) {
	return m.userRepo.GetByID(ctx, userID)
}

// GetUserByEmail 根据邮箱查询用户（检查重复、登录）
func (m *UserModule) GetUserByEmail(ctx context.Context, email string) (*etuser.User, error) {
	return m.userRepo.GetByEmail(ctx, email)
}
