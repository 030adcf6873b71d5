package repository

import (
	"context"

	"gorm.io/gorm"

	"storefront_api/internal/model"
)

// ==================== VendorRepository 店铺仓库 ====================

type VendorRepository interface {
	Create(ctx context.Context, vendor *model.Vendor) error
	GetByID(ctx context.Context, id int64) (*model.Vendor, error)
	Update(ctx context.Context, vendor *model.Vendor) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter VendorFilter) ([]model.Vendor, error)
}

// VendorFilter OwnerID 为 0 时不筛选
type VendorFilter struct {
	OwnerID int64
	Pagination
}

type vendorRepo struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepo{db: db}
}

func (r *vendorRepo) Create(ctx context.Context, vendor *model.Vendor) error {
	return create(r.db.WithContext(ctx), vendor)
}

func (r *vendorRepo) GetByID(ctx context.Context, id int64) (*model.Vendor, error) {
	var vendor model.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, id).Error; err != nil {
		return nil, notFound(err, "vendor", id)
	}
	return &vendor, nil
}

func (r *vendorRepo) Update(ctx context.Context, vendor *model.Vendor) error {
	return save(r.db.WithContext(ctx), vendor)
}

func (r *vendorRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Vendor{}, id).Error
}

func (r *vendorRepo) List(ctx context.Context, filter VendorFilter) ([]model.Vendor, error) {
	var vendors []model.Vendor
	query := r.db.WithContext(ctx).Model(&model.Vendor{})
	if filter.OwnerID > 0 {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	err := filter.apply(query).Order("id ASC").Find(&vendors).Error
	return vendors, err
}

// ==================== CategoryRepository 分类仓库 ====================

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter CategoryFilter) ([]model.Category, error)
	All(ctx context.Context) ([]model.Category, error)
}

// CategoryFilter RootOnly 只返回顶级分类
type CategoryFilter struct {
	RootOnly bool
	Pagination
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, category *model.Category) error {
	return create(r.db.WithContext(ctx), category)
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, notFound(err, "category", id)
	}
	return &category, nil
}

func (r *categoryRepo) Update(ctx context.Context, category *model.Category) error {
	return save(r.db.WithContext(ctx), category)
}

// Delete 子分类的 parent_id 置空
func (r *categoryRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Category{}).Where("parent_id = ?", id).Update("parent_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Category{}, id).Error
	})
}

func (r *categoryRepo) List(ctx context.Context, filter CategoryFilter) ([]model.Category, error) {
	var categories []model.Category
	query := r.db.WithContext(ctx).Model(&model.Category{})
	if filter.RootOnly {
		query = query.Where("parent_id IS NULL")
	}
	err := filter.apply(query).Order("id ASC").Find(&categories).Error
	return categories, err
}

// All 全部分类，用于构建子分类树
func (r *categoryRepo) All(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error
	return categories, err
}
