package apperr

import (
	"fmt"
	"sort"
	"strings"
)

// NonFieldErrors 对象级校验错误使用的字段名
const NonFieldErrors = "non_field_errors"

// ==================== ValidationError ====================

// ValidationError 输入校验失败，携带字段级错误信息
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError 创建单字段校验错误
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// NewNonFieldError 创建对象级校验错误
func NewNonFieldError(message string) *ValidationError {
	return NewValidationError(NonFieldErrors, message)
}

// Add 追加字段错误，同一字段只保留第一条
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// Empty 是否没有任何错误
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ==================== NotFoundError ====================

// NotFoundError 资源不存在
// Field 非空时表示请求体中引用的关联对象不存在
type NotFoundError struct {
	Resource string
	Field    string
	ID       int64
}

func (e *NotFoundError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", e.ID)
	}
	return "Not found."
}

// NewNotFound 创建资源不存在错误
func NewNotFound(resource string, id int64) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// NewRelatedNotFound 创建关联对象不存在错误
func NewRelatedNotFound(field string, id int64) *NotFoundError {
	return &NotFoundError{Field: field, ID: id}
}

// ==================== PermissionDenied ====================

const (
	DetailPermissionDenied   = "You do not have permission to perform this action."
	DetailNotAuthenticated   = "Authentication credentials were not provided."
	DetailInvalidCredentials = "Invalid token."
)

// PermissionDenied 鉴权失败
type PermissionDenied struct {
	Detail string
	// Unauthenticated 为 true 时返回 401，否则 403
	Unauthenticated bool
}

func (e *PermissionDenied) Error() string {
	if e.Detail == "" {
		return DetailPermissionDenied
	}
	return e.Detail
}

// NewPermissionDenied 已登录但无权限
func NewPermissionDenied() *PermissionDenied {
	return &PermissionDenied{Detail: DetailPermissionDenied}
}

// NewNotAuthenticated 匿名请求访问需要登录的接口
func NewNotAuthenticated() *PermissionDenied {
	return &PermissionDenied{Detail: DetailNotAuthenticated, Unauthenticated: true}
}

// ==================== MethodNotAllowed ====================

// MethodNotAllowed 结构性禁止的操作，与调用者身份无关
type MethodNotAllowed struct {
	Method string
}

func (e *MethodNotAllowed) Error() string {
	return fmt.Sprintf("Method %q not allowed.", e.Method)
}
