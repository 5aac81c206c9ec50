package rpuser

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dermascan/internal/app/domains/entity/etuser"
	"dermascan/internal/app/pkg/errorx"
	"dermascan/internal/common/entity"
)

// UserRepositoryImpl 用户仓储实现（MySQL）
type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储实例
func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create 创建用户
func (r *UserRepositoryImpl) Create(ctx context.Context, user *etuser.User) error {
	po := &entity.User{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(po).Error
}

// GetByID 根据ID查询用户
func (r *UserRepositoryImpl) GetByID(ctx context.Context, userID int64) (*etuser.User, error) {
	var po entity.User
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.ErrUserNotFound
		}
		return nil, err
	}
	return r.toDomainModel(&po), nil
}

// GetByEmail 根据邮箱查询用户（用于检查重复和登录）
func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*etuser.User, error) {
	var po entity.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomainModel(&po), nil
}

// toDomainModel GORM 模型转换为领域对象
func (r *UserRepositoryImpl) toDomainModel(po *entity.User) *etuser.User {
	return &etuser.User{
		ID:           po.ID,
		Name:         po.Name,
		Email:        po.Email,
		PasswordHash: po.PasswordHash,
		Role:         po.Role,
		CreatedAt:    po.CreatedAt,
	}
}
