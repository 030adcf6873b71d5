package service

import (
	"context"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"storefront_api/internal/apperr"
	"storefront_api/internal/model"
	"storefront_api/internal/permission"
	"storefront_api/internal/repository"
	"storefront_api/internal/serializer"
)

// ==================== ImageService 商品图片服务 ====================

type ImageService struct {
	store   *repository.Store
	storage StorageProvider
	policy  permission.Policy
}

// NewImageService storage 为 nil 时不支持上传
func NewImageService(store *repository.Store, storage StorageProvider) *ImageService {
	return &ImageService{store: store, storage: storage, policy: permission.ImagePolicy}
}

func (s *ImageService) List(ctx context.Context, user *model.User, q ListQuery) ([]model.Image, error) {
	if err := s.policy.Check(ctx, user, permission.ActionList); err != nil {
		return nil, err
	}
	return s.store.Images.List(ctx, repository.ImageFilter{ProductID: q.ProductID, Pagination: q.pagination()})
}

func (s *ImageService) Retrieve(ctx context.Context, user *model.User, id int64) (*model.Image, error) {
	return s.load(ctx, user, permission.ActionRetrieve, id)
}

func (s *ImageService) load(ctx context.Context, user *model.User, action permission.Action, id int64) (*model.Image, error) {
	if err := s.policy.Check(ctx, user, action); err != nil {
		return nil, err
	}
	image, err := s.store.Images.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CheckObject(ctx, user, action, image); err != nil {
		return nil, err
	}
	return image, nil
}

// ownedProduct 加载图片所属商品并校验当前用户是其店铺所有者
func (s *ImageService) ownedProduct(ctx context.Context, user *model.User, productID int64) (*model.Product, error) {
	product, err := related(ctx, "product", productID, s.store.Products.GetByID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CheckObject(ctx, user, permission.ActionCreate, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Create 以外链 URL 创建图片
func (s *ImageService) Create(ctx context.Context, user *model.User, body []byte) (*model.Image, error) {
	if err := s.policy.Check(ctx, user, permission.ActionCreate); err != nil {
		return nil, err
	}
	in, err := serializer.DecodeImage(body, false)
	if err != nil {
		return nil, err
	}
	product, err := s.ownedProduct(ctx, user, *in.Product)
	if err != nil {
		return nil, err
	}

	image := &model.Image{}
	in.Apply(image)
	if err := s.store.Images.Create(ctx, image); err != nil {
		return nil, err
	}
	image.Product = product
	return image, nil
}

// Upload 上传文件到对象存储后创建图片，入库失败时删除已上传的文件
func (s *ImageService) Upload(ctx context.Context, user *model.User, productID int64, filename string, data []byte) (*model.Image, error) {
	if err := s.policy.Check(ctx, user, permission.ActionCreate); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, apperr.NewValidationError("file", MsgUploadMissing)
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperr.NewValidationError("file", MsgUploadNotAnImage)
	}
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}

	product, err := s.ownedProduct(ctx, user, productID)
	if err != nil {
		return nil, err
	}

	obj, err := s.storage.Upload(ctx, data, filename, contentType)
	if err != nil {
		return nil, err
	}

	image := &model.Image{ProductID: product.ID, URL: obj.URL, StorageKey: obj.Key}
	if err := s.store.Images.Create(ctx, image); err != nil {
		if delErr := s.storage.Delete(ctx, obj.Key); delErr != nil {
			log.WithError(delErr).WithField("key", obj.Key).Warn("回滚已上传图片失败")
		}
		return nil, err
	}
	image.Product = product

	log.WithFields(log.Fields{"image_id": image.ID, "key": obj.Key}).Info("图片上传成功")
	return image, nil
}

// Update 修改 product 时需要同时拥有新商品
func (s *ImageService) Update(ctx context.Context, user *model.User, id int64, body []byte, partial bool) (*model.Image, error) {
	image, err := s.load(ctx, user, writeAction(partial), id)
	if err != nil {
		return nil, err
	}
	in, err := serializer.DecodeImage(body, partial)
	if err != nil {
		return nil, err
	}
	if in.Product != nil && *in.Product != image.ProductID {
		product, err := s.ownedProduct(ctx, user, *in.Product)
		if err != nil {
			return nil, err
		}
		image.Product = product
	}

	// 改为外链后原上传文件不再被引用
	staleKey := ""
	if in.URL != nil && *in.URL != image.URL {
		staleKey = image.StorageKey
		image.StorageKey = ""
	}

	in.Apply(image)
	if err := s.store.Images.Update(ctx, image); err != nil {
		return nil, err
	}
	s.removeObject(ctx, staleKey)
	return image, nil
}

// Destroy 删除记录，上传的文件一并删除
func (s *ImageService) Destroy(ctx context.Context, user *model.User, id int64) error {
	image, err := s.load(ctx, user, permission.ActionDestroy, id)
	if err != nil {
		return err
	}
	if err := s.store.Images.Delete(ctx, image.ID); err != nil {
		return err
	}
	s.removeObject(ctx, image.StorageKey)
	return nil
}

func (s *ImageService) removeObject(ctx context.Context, key string) {
	if key == "" || s.storage == nil {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		log.WithError(err).WithField("key", key).Warn("删除存储文件失败")
	}
}
