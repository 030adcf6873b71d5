package service

import (
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"storefront_api/internal/model"
	"storefront_api/internal/permission"
	"storefront_api/internal/repository"
	"storefront_api/internal/serializer"
)

// ==================== SizeService 尺码服务 ====================

// SizeService 尺码写入在锁定商品行的事务内完成：
// 同一商品的并发尺码写入串行执行，库存校验和写入之间不会被插入
type SizeService struct {
	store  *repository.Store
	policy permission.Policy
}

func NewSizeService(store *repository.Store) *SizeService {
	return &SizeService{store: store, policy: permission.SizePolicy}
}

func (s *SizeService) List(ctx context.Context, user *model.User, q ListQuery) ([]model.Size, error) {
	if err := s.policy.Check(ctx, user, permission.ActionList); err != nil {
		return nil, err
	}
	return s.store.Sizes.List(ctx, repository.SizeFilter{ProductID: q.ProductID, Pagination: q.pagination()})
}

func (s *SizeService) Retrieve(ctx context.Context, user *model.User, id int64) (*model.Size, error) {
	return s.load(ctx, user, permission.ActionRetrieve, id)
}

func (s *SizeService) load(ctx context.Context, user *model.User, action permission.Action, id int64) (*model.Size, error) {
	if err := s.policy.Check(ctx, user, action); err != nil {
		return nil, err
	}
	size, err := s.store.Sizes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CheckObject(ctx, user, action, size); err != nil {
		return nil, err
	}
	return size, nil
}

func (s *SizeService) Create(ctx context.Context, user *model.User, body []byte) (*model.Size, error) {
	if err := s.policy.Check(ctx, user, permission.ActionCreate); err != nil {
		return nil, err
	}
	in, err := serializer.DecodeSize(body, false)
	if err != nil {
		return nil, err
	}

	size := in.NewSize()
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		product, err := related(ctx, "product", size.ProductID, tx.Products.GetForUpdate)
		if err != nil {
			return err
		}
		if err := s.policy.CheckObject(ctx, user, permission.ActionCreate, product); err != nil {
			return err
		}
		if err := checkSize(ctx, tx, size, product, true); err != nil {
			return err
		}
		if err := tx.Sizes.Create(ctx, size); err != nil {
			return err
		}
		size.Product = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return size, nil
}

// Update 允许把尺码挂到另一个商品，此时需要同时拥有新商品
func (s *SizeService) Update(ctx context.Context, user *model.User, id int64, body []byte, partial bool) (*model.Size, error) {
	action := writeAction(partial)
	size, err := s.load(ctx, user, action, id)
	if err != nil {
		return nil, err
	}
	in, err := serializer.DecodeSize(body, partial)
	if err != nil {
		return nil, err
	}

	var updated *model.Size
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		current, err := lockSize(ctx, tx, id, size.ProductID)
		if err != nil {
			return err
		}
		if err := s.policy.CheckObject(ctx, user, action, current); err != nil {
			return err
		}

		moved := in.Product != nil && *in.Product != current.ProductID
		in.Apply(current)

		product, err := related(ctx, "product", current.ProductID, tx.Products.GetForUpdate)
		if err != nil {
			return err
		}
		if moved {
			if err := s.policy.CheckObject(ctx, user, permission.ActionCreate, product); err != nil {
				return err
			}
		}
		if err := checkSize(ctx, tx, current, product, in.Size != nil); err != nil {
			return err
		}
		current.Product = product
		updated = current
		return tx.Sizes.Update(ctx, current)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// lockSize 锁定尺码所属商品后重新读取尺码
// 读取期间尺码被移到别的商品时，改锁新商品再读一次
func lockSize(ctx context.Context, tx *repository.Store, id, productID int64) (*model.Size, error) {
	for {
		if _, err := tx.Products.GetForUpdate(ctx, productID); err != nil {
			return nil, err
		}
		size, err := tx.Sizes.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if size.ProductID == productID {
			return size, nil
		}
		productID = size.ProductID
	}
}

func (s *SizeService) Destroy(ctx context.Context, user *model.User, id int64) error {
	size, err := s.load(ctx, user, permission.ActionDestroy, id)
	if err != nil {
		return err
	}
	return s.store.Sizes.Delete(ctx, size.ID)
}

// checkSize 尺码必须在字典中，且同商品各尺码库存之和不超过商品库存
// 调用方需已锁定 product；部分更新未提交 size 时跳过字典校验
func checkSize(ctx context.Context, tx *repository.Store, size *model.Size, product *model.Product, checkLabel bool) error {
	if checkLabel {
		known, err := tx.SizeCharts.Exists(ctx, size.Size)
		if err != nil {
			return err
		}
		if err := serializer.ValidateSizeLabel(known); err != nil {
			return err
		}
	}
	others, err := tx.Sizes.SumQuantity(ctx, product.ID, size.ID)
	if err != nil {
		return err
	}
	return serializer.ValidateSizeStock(others, size.Quantity, product.Quantity)
}

// ==================== SizeChartService 尺码字典 ====================

type SizeChartService struct {
	store *repository.Store
}

func NewSizeChartService(store *repository.Store) *SizeChartService {
	return &SizeChartService{store: store}
}

func (s *SizeChartService) List(ctx context.Context) ([]model.SizeChart, error) {
	return s.store.SizeCharts.List(ctx)
}

// sizeChartFile 尺码字典文件格式
//
//	sizes:
//	  - S
//	  - M
type sizeChartFile struct {
	Sizes []string `yaml:"sizes"`
}

// LoadSizeChart 读取尺码字典文件，去除空白和重复项
func LoadSizeChart(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取尺码文件失败: %w", err)
	}
	var file sizeChartFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("解析尺码文件失败: %w", err)
	}

	seen := make(map[string]bool, len(file.Sizes))
	names := make([]string, 0, len(file.Sizes))
	for _, n := range file.Sizes {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	return names, nil
}

// Seed 从文件导入尺码字典，已存在的跳过，返回新增数量
func (s *SizeChartService) Seed(ctx context.Context, path string) (int64, error) {
	names, err := LoadSizeChart(path)
	if err != nil {
		return 0, err
	}
	n, err := s.store.SizeCharts.Upsert(ctx, names)
	if err != nil {
		return 0, err
	}
	log.WithFields(log.Fields{"file": path, "total": len(names), "added": n}).Info("尺码字典导入完成")
	return n, nil
}
