package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront_api/internal/apperr"
)

// ==================== 通用 ====================

// Pagination 分页参数，PageSize 为 0 时不分页
type Pagination struct {
	Page     int
	PageSize int
}

func (p Pagination) apply(db *gorm.DB) *gorm.DB {
	if p.PageSize <= 0 {
		return db
	}
	page := p.Page
	if page <= 0 {
		page = 1
	}
	return db.Limit(p.PageSize).Offset((page - 1) * p.PageSize)
}

// notFound 将 gorm.ErrRecordNotFound 转换为 apperr.NotFoundError
func notFound(err error, resource string, id int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NewNotFound(resource, id)
	}
	return err
}

// save 只保存当前对象，不级联预加载的关联
func save(db *gorm.DB, value any) error {
	return db.Omit(clause.Associations).Save(value).Error
}

func create(db *gorm.DB, value any) error {
	return db.Omit(clause.Associations).Create(value).Error
}

// ==================== 工作单元 ====================

// Store 全部仓储的集合，Transaction 内的仓储共享同一事务
type Store struct {
	db *gorm.DB

	Users      UserRepository
	Tokens     TokenRepository
	Vendors    VendorRepository
	Categories CategoryRepository
	Products   ProductRepository
	SizeCharts SizeChartRepository
	Sizes      SizeRepository
	Images     ImageRepository
	Carts      CartRepository
	OrderItems OrderItemRepository
	Orders     OrderRepository
	Reviews    ReviewRepository
}

// NewStore 创建工作单元
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:         db,
		Users:      NewUserRepository(db),
		Tokens:     NewTokenRepository(db),
		Vendors:    NewVendorRepository(db),
		Categories: NewCategoryRepository(db),
		Products:   NewProductRepository(db),
		SizeCharts: NewSizeChartRepository(db),
		Sizes:      NewSizeRepository(db),
		Images:     NewImageRepository(db),
		Carts:      NewCartRepository(db),
		OrderItems: NewOrderItemRepository(db),
		Orders:     NewOrderRepository(db),
		Reviews:    NewReviewRepository(db),
	}
}

// DB 底层连接
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction 执行事务，fn 返回错误时回滚
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
