package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront_api/internal/model"
)

// ==================== ProductRepository 商品仓库 ====================

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	// GetForUpdate 在事务内锁定商品行
	GetForUpdate(ctx context.Context, id int64) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)

	// 购买记录
	AddCustomer(ctx context.Context, productID, userID int64) error
	IsCustomer(ctx context.Context, productID, userID int64) (bool, error)
}

// ProductFilter 0 表示不筛选
type ProductFilter struct {
	VendorID   int64
	CategoryID int64
	Available  *bool
	// 下架商品默认隐藏：管理员可见全部，店主可见自己店铺的
	IncludeHidden bool
	OwnerID       int64
	Pagination
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return create(r.db.WithContext(ctx), product)
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Preload("Vendor").First(&product, id).Error; err != nil {
		return nil, notFound(err, "product", id)
	}
	return &product, nil
}

func (r *productRepo) GetForUpdate(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, id).Error
	if err != nil {
		return nil, notFound(err, "product", id)
	}

	var vendor model.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, product.VendorID).Error; err != nil {
		return nil, notFound(err, "vendor", product.VendorID)
	}
	product.Vendor = &vendor
	return &product, nil
}

func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	return save(r.db.WithContext(ctx), product)
}

func (r *productRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM product_customers WHERE product_id = ?", id).Error; err != nil {
			return err
		}
		for _, child := range []any{&model.Size{}, &model.Image{}, &model.Review{}, &model.OrderItem{}} {
			if err := tx.Where("product_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Product{}, id).Error
	})
}

func (r *productRepo) List(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	var products []model.Product
	query := r.db.WithContext(ctx).Model(&model.Product{})
	if filter.VendorID > 0 {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	query = r.visible(query, filter)
	err := filter.apply(query).Order("id ASC").Find(&products).Error
	return products, err
}

// visible 上架状态筛选；非管理员的下架商品只限本人店铺
func (r *productRepo) visible(query *gorm.DB, filter ProductFilter) *gorm.DB {
	if filter.Available != nil && *filter.Available {
		return query.Where("is_available = ?", true)
	}
	if filter.IncludeHidden {
		if filter.Available != nil {
			query = query.Where("is_available = ?", false)
		}
		return query
	}

	owned := "vendor_id IN (SELECT id FROM vendors WHERE owner_id = ?)"
	if filter.Available != nil {
		return query.Where("is_available = ?", false).Where(owned, filter.OwnerID)
	}
	return query.Where(r.db.Where("is_available = ?", true).Or(owned, filter.OwnerID))
}

// AddCustomer 记录购买关系，重复添加无副作用
func (r *productRepo) AddCustomer(ctx context.Context, productID, userID int64) error {
	ok, err := r.IsCustomer(ctx, productID, userID)
	if err != nil || ok {
		return err
	}
	return r.db.WithContext(ctx).Table("product_customers").Create(map[string]interface{}{
		"product_id": productID,
		"user_id":    userID,
	}).Error
}

func (r *productRepo) IsCustomer(ctx context.Context, productID, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("product_customers").
		Where("product_id = ? AND user_id = ?", productID, userID).
		Count(&count).Error
	return count > 0, err
}

// ==================== SizeChartRepository 尺码字典 ====================

type SizeChartRepository interface {
	List(ctx context.Context) ([]model.SizeChart, error)
	Exists(ctx context.Context, name string) (bool, error)
	// Upsert 批量写入，已存在的忽略，返回新增数量
	Upsert(ctx context.Context, names []string) (int64, error)
}

type sizeChartRepo struct {
	db *gorm.DB
}

func NewSizeChartRepository(db *gorm.DB) SizeChartRepository {
	return &sizeChartRepo{db: db}
}

func (r *sizeChartRepo) List(ctx context.Context) ([]model.SizeChart, error) {
	var sizes []model.SizeChart
	err := r.db.WithContext(ctx).Order("id ASC").Find(&sizes).Error
	return sizes, err
}

func (r *sizeChartRepo) Exists(ctx context.Context, name string) (bool, error) {
	var chart model.SizeChart
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&chart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *sizeChartRepo) Upsert(ctx context.Context, names []string) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}
	rows := make([]model.SizeChart, 0, len(names))
	for _, n := range names {
		rows = append(rows, model.SizeChart{Name: n})
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&rows)
	return result.RowsAffected, result.Error
}

// ==================== SizeRepository 尺码仓库 ====================

type SizeRepository interface {
	Create(ctx context.Context, size *model.Size) error
	GetByID(ctx context.Context, id int64) (*model.Size, error)
	Update(ctx context.Context, size *model.Size) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter SizeFilter) ([]model.Size, error)
	// SumQuantity 商品下尺码库存之和，excludeID 非 0 时排除该尺码
	SumQuantity(ctx context.Context, productID, excludeID int64) (int, error)
}

type SizeFilter struct {
	ProductID int64
	Pagination
}

type sizeRepo struct {
	db *gorm.DB
}

func NewSizeRepository(db *gorm.DB) SizeRepository {
	return &sizeRepo{db: db}
}

func (r *sizeRepo) Create(ctx context.Context, size *model.Size) error {
	return create(r.db.WithContext(ctx), size)
}

// GetByID 预加载 Product.Vendor 以便做归属判定
func (r *sizeRepo) GetByID(ctx context.Context, id int64) (*model.Size, error) {
	var size model.Size
	if err := r.db.WithContext(ctx).Preload("Product.Vendor").First(&size, id).Error; err != nil {
		return nil, notFound(err, "size", id)
	}
	return &size, nil
}

func (r *sizeRepo) Update(ctx context.Context, size *model.Size) error {
	return save(r.db.WithContext(ctx), size)
}

func (r *sizeRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Size{}, id).Error
}

func (r *sizeRepo) List(ctx context.Context, filter SizeFilter) ([]model.Size, error) {
	var sizes []model.Size
	query := r.db.WithContext(ctx).Model(&model.Size{})
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	err := filter.apply(query).Order("id ASC").Find(&sizes).Error
	return sizes, err
}

func (r *sizeRepo) SumQuantity(ctx context.Context, productID, excludeID int64) (int, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&model.Size{}).Where("product_id = ?", productID)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Select("COALESCE(SUM(quantity), 0)").Scan(&total).Error
	return int(total), err
}

// ==================== ImageRepository 图片仓库 ====================

type ImageRepository interface {
	Create(ctx context.Context, image *model.Image) error
	GetByID(ctx context.Context, id int64) (*model.Image, error)
	Update(ctx context.Context, image *model.Image) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ImageFilter) ([]model.Image, error)
}

type ImageFilter struct {
	ProductID int64
	Pagination
}

type imageRepo struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepo{db: db}
}

func (r *imageRepo) Create(ctx context.Context, image *model.Image) error {
	return create(r.db.WithContext(ctx), image)
}

func (r *imageRepo) GetByID(ctx context.Context, id int64) (*model.Image, error) {
	var image model.Image
	if err := r.db.WithContext(ctx).Preload("Product.Vendor").First(&image, id).Error; err != nil {
		return nil, notFound(err, "image", id)
	}
	return &image, nil
}

func (r *imageRepo) Update(ctx context.Context, image *model.Image) error {
	return save(r.db.WithContext(ctx), image)
}

func (r *imageRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Image{}, id).Error
}

func (r *imageRepo) List(ctx context.Context, filter ImageFilter) ([]model.Image, error) {
	var images []model.Image
	query := r.db.WithContext(ctx).Model(&model.Image{})
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	err := filter.apply(query).Order("id ASC").Find(&images).Error
	return images, err
}
