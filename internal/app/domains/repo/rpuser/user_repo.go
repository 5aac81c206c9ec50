package rpuser

import (
	"context"

	"dermascan/internal/app/domains/entity/etuser"
)

// UserRepository 用户仓储接口
type UserRepository interface {
	// Create 创建用户
	Create(ctx context.Context, user *etuser.User) error

	// GetByID 根据ID查询用户
	GetByID(ctx context.Context, userID int64) (*etuser.User, error)

	// GetByEmail 根据邮箱查询用户，不存在时返回 (nil, nil)
	GetByEmail(ctx context.Context, email string) (*etuser.User, error)
}
