package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"storefront_api/internal/apperr"
	"storefront_api/internal/model"
	"storefront_api/internal/permission"
	"storefront_api/internal/repository"
	"storefront_api/internal/serializer"
)

// ==================== UserService 用户服务 ====================

// UserService 用户服务
type UserService struct {
	store  *repository.Store
	policy permission.Policy
	// bcrypt 计算成本，测试中调低
	cost int
}

// NewUserService 创建用户服务
func NewUserService(store *repository.Store) *UserService {
	return &UserService{store: store, policy: permission.UserPolicy, cost: bcrypt.DefaultCost}
}

// SetHashCost 设置密码哈希成本
func (s *UserService) SetHashCost(cost int) {
	s.cost = cost
}

// List 用户列表，仅管理员可见；已停用用户需显式 include_inactive 才列出
func (s *UserService) List(ctx context.Context, user *model.User, q ListQuery) ([]model.User, error) {
	if err := s.policy.Check(ctx, user, permission.ActionList); err != nil {
		return nil, err
	}
	return s.store.Users.List(ctx, repository.UserFilter{
		IncludeInactive: q.IncludeInactive && permission.IsAdminUser(user),
		Pagination:      q.pagination(),
	})
}

// Retrieve 用户详情，非管理员看不到已停用用户
func (s *UserService) Retrieve(ctx context.Context, user *model.User, id int64) (*model.User, error) {
	return s.load(ctx, user, permission.ActionRetrieve, id)
}

func (s *UserService) load(ctx context.Context, user *model.User, action permission.Action, id int64) (*model.User, error) {
	if err := s.policy.Check(ctx, user, action); err != nil {
		return nil, err
	}
	target, err := s.store.Users.GetByID(ctx, id, permission.IsAdminUser(user))
	if err != nil {
		return nil, err
	}
	if err := s.policy.CheckObject(ctx, user, action, target); err != nil {
		return nil, err
	}
	return target, nil
}

// Create 注册用户并签发令牌
// 角色标记不接受输入：新用户总是启用、非管理员、非商家
func (s *UserService) Create(ctx context.Context, user *model.User, body []byte) (*model.User, error) {
	if err := s.policy.Check(ctx, user, permission.ActionCreate); err != nil {
		return nil, err
	}
	in, err := serializer.DecodeUser(body, false)
	if err != nil {
		return nil, err
	}
	if err := s.checkEmail(ctx, *in.Email, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("生成密码哈希失败: %w", err)
	}

	created := &model.User{Password: string(hash), IsActive: true}
	in.Apply(created)

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Users.Create(ctx, created); err != nil {
			return err
		}
		token, err := issueToken(ctx, tx, created)
		if err != nil {
			return err
		}
		created.AuthToken = token
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithField("user_id", created.ID).Info("用户注册成功")
	return created, nil
}

// Update 修改资料，密码单独哈希
func (s *UserService) Update(ctx context.Context, user *model.User, id int64, body []byte, partial bool) (*model.User, error) {
	target, err := s.load(ctx, user, writeAction(partial), id)
	if err != nil {
		return nil, err
	}
	in, err := serializer.DecodeUser(body, partial)
	if err != nil {
		return nil, err
	}
	if in.Email != nil && *in.Email != target.Email {
		if err := s.checkEmail(ctx, *in.Email, target.ID); err != nil {
			return nil, err
		}
	}

	in.Apply(target)
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), s.cost)
		if err != nil {
			return nil, fmt.Errorf("生成密码哈希失败: %w", err)
		}
		target.Password = string(hash)
	}

	if err := s.store.Users.Update(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

// Destroy 软删除：停用账号并吊销令牌，记录保留
func (s *UserService) Destroy(ctx context.Context, user *model.User, id int64) error {
	target, err := s.load(ctx, user, permission.ActionDestroy, id)
	if err != nil {
		return err
	}
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Users.UpdateFields(ctx, target.ID, map[string]interface{}{"is_active": false}); err != nil {
			return err
		}
		return tx.Tokens.DeleteByUserID(ctx, target.ID)
	})
}

// ==================== 辅助函数 ====================

func (s *UserService) checkEmail(ctx context.Context, email string, excludeID int64) error {
	exists, err := s.store.Users.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apperr.NewValidationError("email", MsgEmailExists)
	}
	return nil
}
