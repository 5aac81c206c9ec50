package svuser

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"dermascan/internal/app/domains/entity/etuser"
	"dermascan/internal/app/domains/modules/mduser"
	"dermascan/internal/app/pkg/authtoken"
	"dermascan/internal/app/pkg/errorx"
	"dermascan/internal/app/pkg/idgen"
)

// UserService 用户服务，负责注册/登录业务编排
type UserService struct {
	userModule *mduser.UserModule
	tokens     *authtoken.Manager
}

// NewUserService 创建用户服务实例
func NewUserService(userModule *mduser.UserModule, tokens *authtoken.Manager) *UserService {
	return &UserService{
		userModule: userModule,
		tokens:     tokens,
	}
}

// Register 注册用户（完整业务流程）
// 1. 检查邮箱是否重复
// 2. bcrypt 散列密码
// 3. 生成分布式ID并落库
// 4. 签发令牌
func (s *UserService) Register(ctx context.Context, name, email, password string) (*etuser.User, string, error) {
	existing, err := s.userModule.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("check email duplicate failed: %w", err)
	}
	if existing != nil {
		return nil, "", errorx.Validation("user already exists with this email")
	}

	if len(password) < 6 {
		return nil, "", errorx.Validation("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password failed: %w", err)
	}

	user, err := etuser.NewUser(idgen.GenerateID(), name, email, string(hash))
	if err != nil {
		return nil, "", errorx.Validation(err.Error())
	}

	if err := s.userModule.CreateUser(ctx, user); err != nil {
		return nil, "", errorx.Persistence("failed to register user")
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("issue token failed: %w", err)
	}

	return user, token, nil
}

// Login 登录
func (s *UserService) Login(ctx context.Context, email, password string) (*etuser.User, string, error) {
	user, err := s.userModule.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("get user failed: %w", err)
	}
	if user == nil {
		// 与密码错误返回同样的信息，不暴露邮箱是否注册
		return nil, "", errorx.NewBusinessError(401, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errorx.NewBusinessError(401, "invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("issue token failed: %w", err)
	}

	return user, token, nil
}

// GetProfile 查询用户资料
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*etuser.User, error) {
	user, err := s.userModule.GetUser(ctx, userID)
	if err != nil {
		if err == errorx.ErrUserNotFound {
			return nil, errorx.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user failed: %w", err)
	}
	return user, nil
}
