package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_api/internal/model"
	"storefront_api/internal/repository"
	"storefront_api/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== JWT ====================

func TestGenerateAndParseToken(t *testing.T) {
	key, expiresAt, err := GenerateToken(7, "a@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(GetJWTConfig().TokenTTL), expiresAt, time.Minute)

	claims, err := ParseToken(key)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)

	other, _, err := GenerateToken(7, "a@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, key, other)

	_, err = ParseToken(key + "x")
	assert.Error(t, err)
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		header string
		key    string
		ok     bool
	}{
		{"Token abc", "abc", true},
		{"Bearer abc", "abc", true},
		{"Basic abc", "", false},
		{"Token", "", false},
		{"Token   ", "", false},
	}
	for _, tt := range tests {
		key, ok := extractToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.key, key, tt.header)
	}
}

// ==================== Authenticate ====================

func setupAuthRouter(t *testing.T) (*gin.Engine, *repository.Store) {
	db := testutil.NewDB(t)
	store := repository.NewStore(db)

	r := gin.New()
	r.Use(Authenticate(store.Tokens), AuditContext())
	r.GET("/me", func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": u.ID, "audit": GetAuditUserID(c.Request.Context())})
	})
	return r, store
}

func issue(t *testing.T, store *repository.Store, u *model.User, ttl time.Duration) string {
	t.Helper()
	key, _, err := GenerateToken(u.ID, u.Email)
	require.NoError(t, err)
	require.NoError(t, store.Tokens.Save(context.Background(), &model.AuthToken{
		Key: key, UserID: u.ID, ExpiresAt: time.Now().Add(ttl),
	}))
	return key
}

func get(r *gin.Engine, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	r, store := setupAuthRouter(t)
	u := testutil.CreateUser(t, store.DB(), "a@example.com", false, false)
	key := issue(t, store, u, time.Hour)

	t.Run("匿名", func(t *testing.T) {
		w := get(r, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user":null}`, w.Body.String())
	})

	t.Run("Token 前缀", func(t *testing.T) {
		w := get(r, "Token "+key)
		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]int64
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, u.ID, body["user"])
		assert.Equal(t, u.ID, body["audit"])
	})

	t.Run("Bearer 前缀", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get(r, "Bearer "+key).Code)
	})

	t.Run("无效令牌", func(t *testing.T) {
		w := get(r, "Token not-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Token", w.Header().Get("WWW-Authenticate"))
		assert.JSONEq(t, `{"detail":"Invalid token."}`, w.Body.String())
	})
}

func TestAuthenticate_RevokedExpiredInactive(t *testing.T) {
	r, store := setupAuthRouter(t)
	ctx := context.Background()

	// 签名有效但未入库
	ghost := testutil.CreateUser(t, store.DB(), "ghost@example.com", false, false)
	key, _, err := GenerateToken(ghost.ID, ghost.Email)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Token "+key).Code)

	expired := testutil.CreateUser(t, store.DB(), "old@example.com", false, false)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Token "+issue(t, store, expired, -time.Minute)).Code)

	inactive := testutil.CreateUser(t, store.DB(), "gone@example.com", false, false)
	inactiveKey := issue(t, store, inactive, time.Hour)
	require.NoError(t, store.Users.UpdateFields(ctx, inactive.ID, map[string]interface{}{"is_active": false}))
	assert.Equal(t, http.StatusUnauthorized, get(r, "Token "+inactiveKey).Code)
}

// ==================== Throttle ====================

func TestRateLimiter_Check(t *testing.T) {
	limiter := NewRateLimiter()

	assert.True(t, limiter.Check("k", time.Hour).Allowed)
	res := limiter.Check("k", time.Hour)
	assert.False(t, res.Allowed)
	assert.Greater(t, res.RetryAfter, time.Duration(0))

	// 不同 key 互不影响
	assert.True(t, limiter.Check("other", time.Hour).Allowed)

	limiter.Reset("k")
	assert.True(t, limiter.Check("k", time.Hour).Allowed)
}

func TestThrottle(t *testing.T) {
	r := gin.New()
	r.POST("/login", Throttle(NewRateLimiter(), "login", time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	post := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		return w
	}

	assert.Equal(t, http.StatusOK, post().Code)
	w := post()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "Request was throttled.")
}

func TestThrottle_Disabled(t *testing.T) {
	r := gin.New()
	r.POST("/login", Throttle(NewRateLimiter(), "login", 0), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

// ==================== Audit ====================

func TestRegisterAuditCallbacks(t *testing.T) {
	db := testutil.NewDB(t)
	RegisterAuditCallbacks(db)
	owner := testutil.CreateUser(t, db, "a@example.com", false, false)

	ctx := WithAuditInfo(context.Background(), owner.ID, owner.Email)
	vendor := &model.Vendor{OwnerID: owner.ID, Name: "shop"}
	require.NoError(t, db.WithContext(ctx).Create(vendor).Error)
	assert.Equal(t, owner.ID, vendor.CreatedBy)
	assert.Equal(t, owner.ID, vendor.UpdatedBy)

	// 无审计信息时不填充
	plain := &model.Vendor{OwnerID: owner.ID, Name: "plain"}
	require.NoError(t, db.Create(plain).Error)
	assert.Zero(t, plain.CreatedBy)
}
