package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_api/internal/apperr"
	"storefront_api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== renderError ====================

func TestRenderError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "字段校验",
			err:    apperr.NewValidationError("quantity", "too many"),
			status: http.StatusBadRequest,
			body:   `{"quantity":"too many"}`,
		},
		{
			name:   "包装后的校验错误",
			err:    fmt.Errorf("创建失败: %w", apperr.NewNonFieldError("bad")),
			status: http.StatusBadRequest,
			body:   `{"non_field_errors":"bad"}`,
		},
		{
			name:   "资源不存在",
			err:    apperr.NewNotFound("product", 9),
			status: http.StatusNotFound,
			body:   `{"detail":"Not found."}`,
		},
		{
			name:   "关联对象不存在",
			err:    apperr.NewRelatedNotFound("product", 9),
			status: http.StatusNotFound,
			body:   `{"product":"Invalid pk \"9\" - object does not exist."}`,
		},
		{
			name:   "未登录",
			err:    apperr.NewNotAuthenticated(),
			status: http.StatusUnauthorized,
			body:   `{"detail":"Authentication credentials were not provided."}`,
		},
		{
			name:   "无权限",
			err:    apperr.NewPermissionDenied(),
			status: http.StatusForbidden,
			body:   `{"detail":"You do not have permission to perform this action."}`,
		},
		{
			name:   "方法不允许",
			err:    &apperr.MethodNotAllowed{Method: http.MethodPatch},
			status: http.StatusMethodNotAllowed,
			body:   `{"detail":"Method \"PATCH\" not allowed."}`,
		},
		{
			name:   "登录失败",
			err:    service.ErrInvalidCredentials,
			status: http.StatusBadRequest,
			body:   `{"non_field_errors":"Unable to log in with provided credentials."}`,
		},
		{
			name:   "未配置存储",
			err:    service.ErrStorageDisabled,
			status: http.StatusServiceUnavailable,
			body:   `{"detail":"Image storage is not configured."}`,
		},
		{
			name:   "未知错误",
			err:    errors.New("connection refused"),
			status: http.StatusInternalServerError,
			body:   `{"detail":"A server error occurred."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			renderError(ctx, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestRenderError_UnauthenticatedHeader(t *testing.T) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	renderError(ctx, apperr.NewNotAuthenticated())
	assert.Equal(t, "Token", w.Header().Get("WWW-Authenticate"))
}

// ==================== 请求参数 ====================

func newQueryContext(target string) *gin.Context {
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return ctx
}

func TestListQuery(t *testing.T) {
	q, err := listQuery(newQueryContext("/?page=2&page_size=5&vendor=3&category=4&product=5&user=6&is_available=false&root=true&include_inactive=1"))
	require.NoError(t, err)

	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 5, q.PageSize)
	assert.Equal(t, int64(3), q.VendorID)
	assert.Equal(t, int64(4), q.CategoryID)
	assert.Equal(t, int64(5), q.ProductID)
	assert.Equal(t, int64(6), q.OwnerID)
	require.NotNil(t, q.Available)
	assert.False(t, *q.Available)
	assert.True(t, q.RootOnly)
	assert.True(t, q.IncludeInactive)

	q, err = listQuery(newQueryContext("/"))
	require.NoError(t, err)
	assert.Equal(t, service.ListQuery{}, q)
}

func TestListQuery_Invalid(t *testing.T) {
	_, err := listQuery(newQueryContext("/?page=abc&vendor=-1&is_available=maybe"))
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)

	assert.Equal(t, map[string]string{
		"page":         msgInvalidInteger,
		"vendor":       msgInvalidInteger,
		"is_available": msgInvalidBoolean,
	}, verr.Fields)
}

func TestParseID(t *testing.T) {
	r := gin.New()
	r.GET("/items/:id", func(ctx *gin.Context) {
		id, ok := parseID(ctx)
		if !ok {
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"id": id})
	})

	tests := []struct {
		path   string
		status int
	}{
		{"/items/12", http.StatusOK},
		{"/items/abc", http.StatusNotFound},
		{"/items/0", http.StatusNotFound},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.status, w.Code, tt.path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/12", nil))
	var body map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(12), body["id"])
}

func TestFields(t *testing.T) {
	assert.Nil(t, fields(newQueryContext("/")))
	assert.Equal(t, []string{"id", "name"}, fields(newQueryContext("/?fields=id,%20name,")))
}
