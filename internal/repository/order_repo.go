package repository

import (
	"context"

	"gorm.io/gorm"

	"storefront_api/internal/model"
)

// ==================== CartRepository 购物车仓库 ====================

type CartRepository interface {
	Create(ctx context.Context, cart *model.Cart) error
	GetByID(ctx context.Context, id int64) (*model.Cart, error)
	Touch(ctx context.Context, cart *model.Cart) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter OwnerFilter) ([]model.Cart, error)
	HasOrders(ctx context.Context, id int64) (bool, error)
}

// OwnerFilter UserID 为 0 时不筛选（管理员视角）
type OwnerFilter struct {
	UserID int64
	Pagination
}

func (f OwnerFilter) scope(db *gorm.DB) *gorm.DB {
	if f.UserID > 0 {
		db = db.Where("user_id = ?", f.UserID)
	}
	return f.apply(db)
}

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) Create(ctx context.Context, cart *model.Cart) error {
	return create(r.db.WithContext(ctx), cart)
}

// GetByID 预加载 Items.Product
func (r *cartRepo) GetByID(ctx context.Context, id int64) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		First(&cart, id).Error
	if err != nil {
		return nil, notFound(err, "cart", id)
	}
	return &cart, nil
}

// Touch 更新 updated_at
func (r *cartRepo) Touch(ctx context.Context, cart *model.Cart) error {
	return save(r.db.WithContext(ctx), cart)
}

// Delete 购物车内的条目保留，仅解除关联
func (r *cartRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.OrderItem{}).Where("cart_id = ?", id).Update("cart_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Cart{}, id).Error
	})
}

func (r *cartRepo) List(ctx context.Context, filter OwnerFilter) ([]model.Cart, error) {
	var carts []model.Cart
	err := filter.scope(r.db.WithContext(ctx)).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		Order("id ASC").
		Find(&carts).Error
	return carts, err
}

func (r *cartRepo) HasOrders(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Where("cart_id = ?", id).Count(&count).Error
	return count > 0, err
}

// ==================== OrderItemRepository 订单条目仓库 ====================

type OrderItemRepository interface {
	Create(ctx context.Context, item *model.OrderItem) error
	GetByID(ctx context.Context, id int64) (*model.OrderItem, error)
	Update(ctx context.Context, item *model.OrderItem) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter OwnerFilter) ([]model.OrderItem, error)
	// ListByIDs 只返回属于 userID 的条目
	ListByIDs(ctx context.Context, ids []int64, userID int64) ([]model.OrderItem, error)
	// SetCart 将条目挂到购物车；replace 为 true 时先清空购物车原有条目
	SetCart(ctx context.Context, cartID int64, ids []int64, replace bool) error
}

type orderItemRepo struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &orderItemRepo{db: db}
}

func (r *orderItemRepo) Create(ctx context.Context, item *model.OrderItem) error {
	return create(r.db.WithContext(ctx), item)
}

func (r *orderItemRepo) GetByID(ctx context.Context, id int64) (*model.OrderItem, error) {
	var item model.OrderItem
	if err := r.db.WithContext(ctx).Preload("Product").First(&item, id).Error; err != nil {
		return nil, notFound(err, "order item", id)
	}
	return &item, nil
}

func (r *orderItemRepo) Update(ctx context.Context, item *model.OrderItem) error {
	return save(r.db.WithContext(ctx), item)
}

func (r *orderItemRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.OrderItem{}, id).Error
}

func (r *orderItemRepo) List(ctx context.Context, filter OwnerFilter) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := filter.scope(r.db.WithContext(ctx)).
		Preload("Product").
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *orderItemRepo) ListByIDs(ctx context.Context, ids []int64, userID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ? AND user_id = ?", ids, userID).
		Find(&items).Error
	return items, err
}

func (r *orderItemRepo) SetCart(ctx context.Context, cartID int64, ids []int64, replace bool) error {
	db := r.db.WithContext(ctx)
	if replace {
		if err := db.Model(&model.OrderItem{}).Where("cart_id = ?", cartID).Update("cart_id", nil).Error; err != nil {
			return err
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return db.Model(&model.OrderItem{}).Where("id IN ?", ids).Update("cart_id", cartID).Error
}

// ==================== OrderRepository 订单仓库 ====================

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter OwnerFilter) ([]model.Order, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *model.Order) error {
	return create(r.db.WithContext(ctx), order)
}

// GetByID 预加载 Cart.Items.Product
func (r *orderRepo) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Cart.Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Cart.Items.Product").
		First(&order, id).Error
	if err != nil {
		return nil, notFound(err, "order", id)
	}
	return &order, nil
}

func (r *orderRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Order{}, id).Error
}

func (r *orderRepo) List(ctx context.Context, filter OwnerFilter) ([]model.Order, error) {
	var orders []model.Order
	err := filter.scope(r.db.WithContext(ctx)).
		Preload("Cart.Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Cart.Items.Product").
		Order("id ASC").
		Find(&orders).Error
	return orders, err
}

// ==================== ReviewRepository 评价仓库 ====================

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, id int64) (*model.Review, error)
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ReviewFilter) ([]model.Review, error)
}

type ReviewFilter struct {
	ProductID int64
	UserID    int64
	Pagination
}

type reviewRepo struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, review *model.Review) error {
	return create(r.db.WithContext(ctx), review)
}

func (r *reviewRepo) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).Preload("User").First(&review, id).Error; err != nil {
		return nil, notFound(err, "review", id)
	}
	return &review, nil
}

func (r *reviewRepo) Update(ctx context.Context, review *model.Review) error {
	return save(r.db.WithContext(ctx), review)
}

func (r *reviewRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Review{}, id).Error
}

func (r *reviewRepo) List(ctx context.Context, filter ReviewFilter) ([]model.Review, error) {
	var reviews []model.Review
	query := r.db.WithContext(ctx).Preload("User")
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	err := filter.apply(query).Order("id ASC").Find(&reviews).Error
	return reviews, err
}
