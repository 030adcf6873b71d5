package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"

	"storefront_api/internal/apperr"
	"storefront_api/internal/model"
	"storefront_api/internal/repository"
)

// ==================== JWT 配置 ====================

// JWTConfig JWT 配置
type JWTConfig struct {
	SecretKey string        // 签名密钥
	TokenTTL  time.Duration // 令牌有效期
	Issuer    string        // 签发者
}

// DefaultJWTConfig 默认配置
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		SecretKey: "storefront-secret-key-change-in-production",
		TokenTTL:  30 * 24 * time.Hour,
		Issuer:    "storefront",
	}
}

// 全局配置
var jwtConfig = DefaultJWTConfig()

// SetJWTConfig 设置 JWT 配置
func SetJWTConfig(cfg *JWTConfig) {
	jwtConfig = cfg
}

// GetJWTConfig 获取 JWT 配置
func GetJWTConfig() *JWTConfig {
	return jwtConfig
}

// ==================== Claims 定义 ====================

// UserClaims 用户声明
type UserClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// ==================== Token 生成 ====================

// GenerateToken 生成认证令牌，返回令牌字符串和过期时间
func GenerateToken(userID int64, email string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(jwtConfig.TokenTTL)
	claims := &UserClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtConfig.Issuer,
			Subject:   "access",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			// 同一秒内重复签发也要得到不同的 key
			ID: strings.ReplaceAll(now.Format("20060102150405.000000000"), ".", ""),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtConfig.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ==================== Token 解析 ====================

// ParseToken 解析 Token
func ParseToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(jwtConfig.SecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// ==================== Gin 中间件 ====================

// Context Keys
const (
	ContextKeyUser   = "user"
	ContextKeyUserID = "user_id"
	ContextKeyEmail  = "email"
)

// extractToken 支持 "Token <key>" 和 "Bearer <key>"
func extractToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	switch parts[0] {
	case "Token", "Bearer":
		key := strings.TrimSpace(parts[1])
		return key, key != ""
	default:
		return "", false
	}
}

// Authenticate 认证中间件
// 未携带 Authorization 时按匿名用户放行；携带但无效时返回 401
// 令牌必须签名有效、存在于 auth_tokens 表、未过期，且用户仍处于启用状态
func Authenticate(tokens repository.TokenRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		key, ok := extractToken(authHeader)
		if !ok {
			abortUnauthenticated(c)
			return
		}

		if _, err := ParseToken(key); err != nil {
			abortUnauthenticated(c)
			return
		}

		token, err := tokens.GetByKey(c.Request.Context(), key)
		if err != nil {
			log.WithError(err).Error("查询认证令牌失败")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "A server error occurred."})
			return
		}
		if token == nil || token.User == nil || !token.User.IsActive || token.Expired(time.Now()) {
			abortUnauthenticated(c)
			return
		}

		// 注入用户信息到 Context
		c.Set(ContextKeyUser, token.User)
		c.Set(ContextKeyUserID, token.User.ID)
		c.Set(ContextKeyEmail, token.User.Email)

		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context) {
	c.Header("WWW-Authenticate", "Token")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": apperr.DetailInvalidCredentials})
}

// ==================== 辅助函数 ====================

// CurrentUser 当前登录用户，匿名返回 nil
func CurrentUser(c *gin.Context) *model.User {
	if u, exists := c.Get(ContextKeyUser); exists {
		if user, ok := u.(*model.User); ok {
			return user
		}
	}
	return nil
}

// GetUserID 从 Context 获取用户 ID
func GetUserID(c *gin.Context) int64 {
	if id, exists := c.Get(ContextKeyUserID); exists {
		return id.(int64)
	}
	return 0
}

// GetEmail 从 Context 获取用户邮箱
func GetEmail(c *gin.Context) string {
	if email, exists := c.Get(ContextKeyEmail); exists {
		return email.(string)
	}
	return ""
}
