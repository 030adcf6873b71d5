package service

import (
	"context"

	log "github.com/sirupsen/logrus"

	"storefront_api/internal/model"
	"storefront_api/internal/permission"
	"storefront_api/internal/repository"
	"storefront_api/internal/serializer"
)

// ==================== VendorService 店铺服务 ====================

type VendorService struct {
	store  *repository.Store
	policy permission.Policy
}

func NewVendorService(store *repository.Store) *VendorService {
	return &VendorService{store: store, policy: permission.VendorPolicy}
}

func (s *VendorService) List(ctx context.Context, user *model.User, q ListQuery) ([]model.Vendor, error) {
	if err := s.policy.Check(ctx, user, permission.ActionList); err != nil {
		return nil, err
	}
	return s.store.Vendors.List(ctx, repository.VendorFilter{OwnerID: q.OwnerID, Pagination: q.pagination()})
}

func (s *VendorService) Retrieve(ctx context.Context, user *model.User, id int64) (*model.Vendor, error) {
	return s.load(ctx, user, permission.ActionRetrieve, id)
}

func (s *VendorService) load(ctx context.Context, user *model.User, action permission.Action, id int64) (*model.Vendor, error) {
	if err := s.policy.Check(ctx, user, action); err != nil {
		return nil, err
	}
	vendor, err := s.store.Vendors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CheckObject(ctx, user, action, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

// Create 创建店铺，所有者为当前用户；非商家用户在同一事务内升级为商家
func (s *VendorService) Create(ctx context.Context, user *model.User, body []byte) (*model.Vendor, error) {
	if err := s.policy.Check(ctx, user, permission.ActionCreate); err != nil {
		return nil, err
	}
	in, err := serializer.DecodeVendor(body, false)
	if err != nil {
		return nil, err
	}

	vendor := &model.Vendor{OwnerID: user.ID}
	in.Apply(vendor)

	promoted := false
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Vendors.Create(ctx, vendor); err != nil {
			return err
		}
		if user.IsVendor {
			return nil
		}
		promoted = true
		return tx.Users.UpdateFields(ctx, user.ID, map[string]interface{}{"is_vendor": true})
	})
	if err != nil {
		return nil, err
	}

	if promoted {
		user.IsVendor = true
		log.WithFields(log.Fields{"user_id": user.ID, "vendor_id": vendor.ID}).Info("用户升级为商家")
	}
	return vendor, nil
}

// Update owner 不可修改
func (s *VendorService) Update(ctx context.Context, user *model.User, id int64, body []byte, partial bool) (*model.Vendor, error) {
	vendor, err := s.load(ctx, user, writeAction(partial), id)
	if err != nil {
		return nil, err
	}
	in, err := serializer.DecodeVendor(body, partial)
	if err != nil {
		return nil, err
	}
	in.Apply(vendor)
	if err := s.store.Vendors.Update(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

// Destroy 删除店铺及其全部商品
func (s *VendorService) Destroy(ctx context.Context, user *model.User, id int64) error {
	vendor, err := s.load(ctx, user, permission.ActionDestroy, id)
	if err != nil {
		return err
	}
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		products, err := tx.Products.List(ctx, repository.ProductFilter{VendorID: vendor.ID, IncludeHidden: true})
		if err != nil {
			return err
		}
		for _, p := range products {
			if err := tx.Products.Delete(ctx, p.ID); err != nil {
				return err
			}
		}
		return tx.Vendors.Delete(ctx, vendor.ID)
	})
}
