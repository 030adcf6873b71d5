package service

import (
	"context"

	"storefront_api/internal/apperr"
	"storefront_api/internal/model"
	"storefront_api/internal/permission"
	"storefront_api/internal/repository"
	"storefront_api/internal/serializer"
)

// ==================== ProductService 商品服务 ====================

type ProductService struct {
	store  *repository.Store
	policy permission.Policy
}

func NewProductService(store *repository.Store) *ProductService {
	return &ProductService{store: store, policy: permission.ProductPolicy}
}

// List 支持按店铺、分类、上架状态筛选，默认只列出上架商品
func (s *ProductService) List(ctx context.Context, user *model.User, q ListQuery) ([]model.Product, error) {
	if err := s.policy.Check(ctx, user, permission.ActionList); err != nil {
		return nil, err
	}
	filter := repository.ProductFilter{
		VendorID:      q.VendorID,
		CategoryID:    q.CategoryID,
		Available:     q.Available,
		IncludeHidden: permission.IsAdminUser(user),
		Pagination:    q.pagination(),
	}
	if user != nil {
		filter.OwnerID = user.ID
	}
	return s.store.Products.List(ctx, filter)
}

func (s *ProductService) Retrieve(ctx context.Context, user *model.User, id int64) (*model.Product, error) {
	return s.load(ctx, user, permission.ActionRetrieve, id)
}

func (s *ProductService) load(ctx context.Context, user *model.User, action permission.Action, id int64) (*model.Product, error) {
	if err := s.policy.Check(ctx, user, action); err != nil {
		return nil, err
	}
	product, err := s.store.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !hiddenVisible(user, product) {
		return nil, apperr.NewNotFound("product", id)
	}
	if err := s.policy.CheckObject(ctx, user, action, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Create 只能在自己的店铺下创建商品
func (s *ProductService) Create(ctx context.Context, user *model.User, body []byte) (*model.Product, error) {
	if err := s.policy.Check(ctx, user, permission.ActionCreate); err != nil {
		return nil, err
	}
	in, err := serializer.DecodeProduct(body, false)
	if err != nil {
		return nil, err
	}

	vendor, err := related(ctx, "vendor", *in.Vendor, s.store.Vendors.GetByID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CheckObject(ctx, user, permission.ActionCreate, vendor); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, in.Category); err != nil {
		return nil, err
	}

	product := in.NewProduct()
	if err := s.store.Products.Create(ctx, product); err != nil {
		return nil, err
	}
	product.Vendor = vendor
	return product, nil
}

// Update vendor 不可修改；库存不能低于已有尺码库存之和
func (s *ProductService) Update(ctx context.Context, user *model.User, id int64, body []byte, partial bool) (*model.Product, error) {
	action := writeAction(partial)
	if _, err := s.load(ctx, user, action, id); err != nil {
		return nil, err
	}
	in, err := serializer.DecodeProduct(body, partial)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, in.Category); err != nil {
		return nil, err
	}

	var product *model.Product
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		product, err = tx.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		in.Apply(product)
		if in.Quantity != nil {
			total, err := tx.Sizes.SumQuantity(ctx, product.ID, 0)
			if err != nil {
				return err
			}
			if err := serializer.ValidateProductStock(product.Quantity, total); err != nil {
				return err
			}
		}
		return tx.Products.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Destroy 连同尺码、图片、评价、订单条目一起删除
func (s *ProductService) Destroy(ctx context.Context, user *model.User, id int64) error {
	product, err := s.load(ctx, user, permission.ActionDestroy, id)
	if err != nil {
		return err
	}
	return s.store.Products.Delete(ctx, product.ID)
}

func (s *ProductService) checkCategory(ctx context.Context, category serializer.NullableID) error {
	if !category.Set || category.Value == nil {
		return nil
	}
	_, err := related(ctx, "category", *category.Value, s.store.Categories.GetByID)
	return err
}

// hiddenVisible 下架商品只对管理员和店主可见
func hiddenVisible(user *model.User, product *model.Product) bool {
	if product.IsAvailable || permission.IsAdminUser(user) {
		return true
	}
	return user != nil && product.OwnedBy() == user.ID
}
