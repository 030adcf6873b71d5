package permission

import (
	"context"

	"storefront_api/internal/apperr"
	"storefront_api/internal/model"
)

// Action 资源操作
type Action string

const (
	ActionList          Action = "list"
	ActionRetrieve      Action = "retrieve"
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionPartialUpdate Action = "partial_update"
	ActionDestroy       Action = "destroy"
)

// Predicate 权限判定，分为接口级和对象级两层
type Predicate interface {
	HasPermission(ctx context.Context, user *model.User) bool
	HasObjectPermission(ctx context.Context, user *model.User, obj any) bool
}

// ==================== 基础判定 ====================

type allowAny struct{}

func (allowAny) HasPermission(context.Context, *model.User) bool { return true }
func (allowAny) HasObjectPermission(context.Context, *model.User, any) bool {
	return true
}

type deny struct{}

func (deny) HasPermission(context.Context, *model.User) bool { return false }
func (deny) HasObjectPermission(context.Context, *model.User, any) bool {
	return false
}

type isAuthenticated struct{}

func (isAuthenticated) HasPermission(_ context.Context, u *model.User) bool {
	return u != nil && u.IsActive
}
func (isAuthenticated) HasObjectPermission(context.Context, *model.User, any) bool {
	return true
}

type isAdmin struct{}

func (isAdmin) HasPermission(_ context.Context, u *model.User) bool {
	return IsAdminUser(u)
}
func (isAdmin) HasObjectPermission(context.Context, *model.User, any) bool {
	return true
}

// isOwner 对象归属于当前用户
type isOwner struct{}

func (isOwner) HasPermission(_ context.Context, u *model.User) bool {
	return u != nil && u.IsActive
}
func (isOwner) HasObjectPermission(_ context.Context, u *model.User, obj any) bool {
	return ownedBy(u, obj)
}

// isVendorOwner 当前用户是对象所属店铺的所有者
type isVendorOwner struct{}

func (isVendorOwner) HasPermission(_ context.Context, u *model.User) bool {
	return u != nil && u.IsActive && u.IsVendor
}
func (isVendorOwner) HasObjectPermission(_ context.Context, u *model.User, obj any) bool {
	return ownedBy(u, obj)
}

// isAVendor 当前用户拥有商家身份
type isAVendor struct{}

func (isAVendor) HasPermission(_ context.Context, u *model.User) bool {
	return u != nil && u.IsActive && u.IsVendor
}
func (isAVendor) HasObjectPermission(context.Context, *model.User, any) bool {
	return true
}

// CustomerChecker 判断用户是否购买过商品
type CustomerChecker func(ctx context.Context, productID, userID int64) bool

// canReview 买过该商品的用户才能评价，对象为 *model.Product
type canReview struct {
	isCustomer CustomerChecker
}

func (canReview) HasPermission(_ context.Context, u *model.User) bool {
	return u != nil && u.IsActive
}
func (p canReview) HasObjectPermission(ctx context.Context, u *model.User, obj any) bool {
	product, ok := obj.(*model.Product)
	if !ok || u == nil || p.isCustomer == nil {
		return false
	}
	return p.isCustomer(ctx, product.ID, u.ID)
}

var (
	AllowAny        Predicate = allowAny{}
	Deny            Predicate = deny{}
	IsAuthenticated Predicate = isAuthenticated{}
	IsAdmin         Predicate = isAdmin{}
	IsOwner         Predicate = isOwner{}
	IsVendorOwner   Predicate = isVendorOwner{}
	IsAVendor       Predicate = isAVendor{}
)

// CanReview 评价权限
func CanReview(isCustomer CustomerChecker) Predicate {
	return canReview{isCustomer: isCustomer}
}

// IsAdminUser 管理员判定
func IsAdminUser(u *model.User) bool {
	return u != nil && u.IsActive && u.IsStaff
}

func ownedBy(u *model.User, obj any) bool {
	if u == nil {
		return false
	}
	owned, ok := obj.(model.Owned)
	if !ok {
		return false
	}
	return owned.OwnedBy() == u.ID
}

// ==================== 组合 ====================

type and []Predicate

// And 全部满足
func And(preds ...Predicate) Predicate { return and(preds) }

func (a and) HasPermission(ctx context.Context, u *model.User) bool {
	for _, p := range a {
		if !p.HasPermission(ctx, u) {
			return false
		}
	}
	return true
}

func (a and) HasObjectPermission(ctx context.Context, u *model.User, obj any) bool {
	for _, p := range a {
		if !p.HasObjectPermission(ctx, u, obj) {
			return false
		}
	}
	return true
}

type or []Predicate

// Or 任一满足；对象级要求同一分支两层都通过
func Or(preds ...Predicate) Predicate { return or(preds) }

func (o or) HasPermission(ctx context.Context, u *model.User) bool {
	for _, p := range o {
		if p.HasPermission(ctx, u) {
			return true
		}
	}
	return false
}

func (o or) HasObjectPermission(ctx context.Context, u *model.User, obj any) bool {
	for _, p := range o {
		if p.HasPermission(ctx, u) && p.HasObjectPermission(ctx, u, obj) {
			return true
		}
	}
	return false
}

// ==================== Policy ====================

// Policy 资源的操作 -> 判定映射，未列出的操作使用 Default
type Policy struct {
	Actions map[Action]Predicate
	Default Predicate
}

// For 操作对应的判定
func (p Policy) For(action Action) Predicate {
	if pred, ok := p.Actions[action]; ok {
		return pred
	}
	if p.Default != nil {
		return p.Default
	}
	return Deny
}

// Check 接口级校验
func (p Policy) Check(ctx context.Context, user *model.User, action Action) error {
	if p.For(action).HasPermission(ctx, user) {
		return nil
	}
	return denied(user)
}

// CheckObject 对象级校验，包含接口级
func (p Policy) CheckObject(ctx context.Context, user *model.User, action Action, obj any) error {
	pred := p.For(action)
	if !pred.HasPermission(ctx, user) || !pred.HasObjectPermission(ctx, user, obj) {
		return denied(user)
	}
	return nil
}

func denied(user *model.User) error {
	if user == nil {
		return apperr.NewNotAuthenticated()
	}
	return apperr.NewPermissionDenied()
}
