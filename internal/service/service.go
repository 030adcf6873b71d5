package service

import (
	"context"
	"errors"

	"storefront_api/internal/apperr"
	"storefront_api/internal/model"
	"storefront_api/internal/permission"
	"storefront_api/internal/repository"
)

// ==================== 错误定义 ====================

var (
	ErrInvalidCredentials = errors.New("unable to log in with provided credentials")
	ErrStorageDisabled    = errors.New("image storage is not configured")
)

// 面向客户端的校验提示
const (
	MsgEmailExists      = "user with this email already exists."
	MsgLoginFailed      = "Unable to log in with provided credentials."
	MsgEmptyCart        = "Cannot place an order for an empty cart."
	MsgCartHasOrders    = "Cart has orders and cannot be deleted."
	MsgCategoryCycle    = "A category cannot be its own ancestor."
	MsgUploadMissing    = "No file was submitted."
	MsgUploadNotAnImage = "Upload a valid image."
)

// ==================== 列表查询 ====================

// ListQuery 列表接口的通用筛选条件，0 表示不筛选
type ListQuery struct {
	Page     int
	PageSize int

	VendorID   int64
	CategoryID int64
	ProductID  int64
	OwnerID    int64
	Available  *bool
	RootOnly   bool
	// IncludeInactive 仅管理员的用户列表生效
	IncludeInactive bool
}

func (q ListQuery) pagination() repository.Pagination {
	return repository.Pagination{Page: q.Page, PageSize: q.PageSize}
}

// ownerScope 非管理员只能看到自己的记录
func ownerScope(user *model.User, q ListQuery) repository.OwnerFilter {
	filter := repository.OwnerFilter{Pagination: q.pagination()}
	if !permission.IsAdminUser(user) {
		filter.UserID = user.ID
	}
	return filter
}

// related 加载请求体引用的对象，不存在时返回字段级 NotFound
func related[T any](ctx context.Context, field string, id int64, lookup func(context.Context, int64) (*T, error)) (*T, error) {
	obj, err := lookup(ctx, id)
	if err != nil {
		var nf *apperr.NotFoundError
		if errors.As(err, &nf) {
			return nil, apperr.NewRelatedNotFound(field, id)
		}
		return nil, err
	}
	return obj, nil
}

// writeAction PUT / PATCH 对应的操作
func writeAction(partial bool) permission.Action {
	if partial {
		return permission.ActionPartialUpdate
	}
	return permission.ActionUpdate
}
