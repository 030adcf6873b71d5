package service

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"storefront_api/internal/middleware"
	"storefront_api/internal/model"
	"storefront_api/internal/repository"
	"storefront_api/internal/serializer"
)

// ==================== 认证相关 ====================

// Login 邮箱密码登录，已有未过期令牌时直接复用
func (s *UserService) Login(ctx context.Context, body []byte) (*model.User, error) {
	in, err := serializer.DecodeLogin(body)
	if err != nil {
		return nil, err
	}

	user, err := s.store.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if user.AuthToken == nil || user.AuthToken.Expired(now) {
		token, err := issueToken(ctx, s.store, user)
		if err != nil {
			return nil, err
		}
		user.AuthToken = token
	}

	// 更新最后登录时间
	if err := s.store.Users.UpdateFields(ctx, user.ID, map[string]interface{}{"last_login": now}); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("更新最后登录时间失败")
	}
	user.LastLogin = &now
	return user, nil
}

// ==================== 令牌 ====================

// issueToken 签发并保存令牌，覆盖用户原有令牌
func issueToken(ctx context.Context, store *repository.Store, user *model.User) (*model.AuthToken, error) {
	key, expiresAt, err := middleware.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("签发令牌失败: %w", err)
	}
	token := &model.AuthToken{Key: key, UserID: user.ID, ExpiresAt: expiresAt}
	if err := store.Tokens.Save(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}
