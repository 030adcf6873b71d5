package controller

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"storefront_api/internal/apperr"
	"storefront_api/internal/middleware"
	"storefront_api/internal/model"
	"storefront_api/internal/serializer"
	"storefront_api/internal/service"
)

const (
	detailServerError     = "A server error occurred."
	detailStorageDisabled = "Image storage is not configured."
	msgInvalidInteger     = "A valid integer is required."
	msgInvalidBoolean     = "Must be a valid boolean."
	maxBodyBytes          = 1 << 20
	maxUploadBytes        = 10 << 20
)

// ErrorResponse 错误响应，字段级错误时 key 为字段名
type ErrorResponse map[string]string

// renderError 将服务层错误映射为 HTTP 响应
func renderError(ctx *gin.Context, err error) {
	var (
		validationErr *apperr.ValidationError
		notFoundErr   *apperr.NotFoundError
		deniedErr     *apperr.PermissionDenied
		methodErr     *apperr.MethodNotAllowed
	)

	switch {
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, validationErr.Fields)
	case errors.As(err, &notFoundErr):
		if notFoundErr.Field != "" {
			ctx.JSON(http.StatusNotFound, gin.H{notFoundErr.Field: notFoundErr.Error()})
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"detail": notFoundErr.Error()})
	case errors.As(err, &deniedErr):
		if deniedErr.Unauthenticated {
			ctx.Header("WWW-Authenticate", "Token")
			ctx.JSON(http.StatusUnauthorized, gin.H{"detail": deniedErr.Error()})
			return
		}
		ctx.JSON(http.StatusForbidden, gin.H{"detail": deniedErr.Error()})
	case errors.As(err, &methodErr):
		ctx.JSON(http.StatusMethodNotAllowed, gin.H{"detail": methodErr.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		ctx.JSON(http.StatusBadRequest, gin.H{apperr.NonFieldErrors: service.MsgLoginFailed})
	case errors.Is(err, service.ErrStorageDisabled):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"detail": detailStorageDisabled})
	default:
		_ = ctx.Error(err)
		log.WithError(err).WithFields(log.Fields{
			"method": ctx.Request.Method,
			"path":   ctx.Request.URL.Path,
		}).Error("请求处理失败")
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": detailServerError})
	}
}

// parseID 路径参数 id，非法时按资源不存在处理
func parseID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		renderError(ctx, apperr.NewNotFound("", 0))
		return 0, false
	}
	return id, true
}

// readBody 读取请求体原文，交给服务层在鉴权之后再解析
func readBody(ctx *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": "Request body too large."})
			return nil, false
		}
		renderError(ctx, apperr.NewNonFieldError("Unable to read request body."))
		return nil, false
	}
	return body, true
}

// currentUser 当前登录用户，匿名为 nil
func currentUser(ctx *gin.Context) *model.User {
	return middleware.CurrentUser(ctx)
}

// fields ?fields=a,b 动态字段
func fields(ctx *gin.Context) []string {
	return serializer.ParseFields(ctx.Query("fields"))
}

// listQuery 解析列表接口的分页与筛选参数
func listQuery(ctx *gin.Context) (service.ListQuery, error) {
	var q service.ListQuery
	verr := &apperr.ValidationError{}

	intParam := func(name string) int64 {
		raw := ctx.Query(name)
		if raw == "" {
			return 0
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			verr.Add(name, msgInvalidInteger)
			return 0
		}
		return n
	}
	boolParam := func(name string) *bool {
		raw := ctx.Query(name)
		if raw == "" {
			return nil
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			verr.Add(name, msgInvalidBoolean)
			return nil
		}
		return &b
	}

	q.Page = int(intParam("page"))
	q.PageSize = int(intParam("page_size"))
	q.VendorID = intParam("vendor")
	q.CategoryID = intParam("category")
	q.ProductID = intParam("product")
	q.OwnerID = intParam("user")
	q.Available = boolParam("is_available")
	if root := boolParam("root"); root != nil {
		q.RootOnly = *root
	}
	if inactive := boolParam("include_inactive"); inactive != nil {
		q.IncludeInactive = *inactive
	}

	if !verr.Empty() {
		return q, verr
	}
	return q, nil
}
