package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"storefront_api/internal/model"
)

// ==================== UserRepository 用户仓库 ====================

// UserRepository 用户仓库接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64, includeInactive bool) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	List(ctx context.Context, filter UserFilter) ([]model.User, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
}

// UserFilter 用户筛选条件
type UserFilter struct {
	IncludeInactive bool
	Pagination
}

// ==================== 实现 ====================

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return create(r.db.WithContext(ctx), user)
}

// GetByID 根据 ID 获取用户，默认只查启用用户
func (r *userRepository) GetByID(ctx context.Context, id int64, includeInactive bool) (*model.User, error) {
	var user model.User
	query := r.db.WithContext(ctx).Preload("AuthToken")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.First(&user, id).Error; err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}

// GetByEmail 根据邮箱获取用户，不存在返回 nil, nil
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Preload("AuthToken").Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update 保存用户
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return save(r.db.WithContext(ctx), user)
}

// UpdateFields 更新指定字段
func (r *userRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

// List 用户列表
func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]model.User, error) {
	var users []model.User
	query := r.db.WithContext(ctx).Preload("AuthToken")
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	err := filter.apply(query).Order("id ASC").Find(&users).Error
	return users, err
}

// ExistsByEmail 检查邮箱是否已被其他用户占用
func (r *userRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// ==================== TokenRepository 令牌仓库 ====================

// TokenRepository 认证令牌仓库接口
type TokenRepository interface {
	Save(ctx context.Context, token *model.AuthToken) error
	GetByKey(ctx context.Context, key string) (*model.AuthToken, error)
	DeleteByUserID(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

// Save 按 user_id 覆盖保存，每个用户最多一个令牌
func (r *tokenRepository) Save(ctx context.Context, token *model.AuthToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", token.UserID).Delete(&model.AuthToken{}).Error; err != nil {
			return err
		}
		return create(tx, token)
	})
}

// GetByKey 根据 key 获取令牌及其用户，不存在返回 nil, nil
func (r *tokenRepository) GetByKey(ctx context.Context, key string) (*model.AuthToken, error) {
	var token model.AuthToken
	err := r.db.WithContext(ctx).Preload("User").Where(&model.AuthToken{Key: key}).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.AuthToken{}).Error
}

// DeleteExpired 删除过期令牌，返回删除数量
func (r *tokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", before).Delete(&model.AuthToken{})
	return result.RowsAffected, result.Error
}
