package service

import (
	"context"

	"storefront_api/internal/apperr"
	"storefront_api/internal/model"
	"storefront_api/internal/permission"
	"storefront_api/internal/repository"
	"storefront_api/internal/serializer"
)

// ==================== CategoryService 分类服务 ====================

// CategoryService 分类服务，返回结果附带整棵子分类索引用于递归输出
type CategoryService struct {
	store  *repository.Store
	policy permission.Policy
}

func NewCategoryService(store *repository.Store) *CategoryService {
	return &CategoryService{store: store, policy: permission.CategoryPolicy}
}

func (s *CategoryService) Tree(ctx context.Context) (serializer.CategoryTree, error) {
	all, err := s.store.Categories.All(ctx)
	if err != nil {
		return nil, err
	}
	return serializer.NewCategoryTree(all), nil
}

// List RootOnly 为 true 时只列出顶级分类
func (s *CategoryService) List(ctx context.Context, user *model.User, q ListQuery) ([]model.Category, error) {
	if err := s.policy.Check(ctx, user, permission.ActionList); err != nil {
		return nil, err
	}
	return s.store.Categories.List(ctx, repository.CategoryFilter{RootOnly: q.RootOnly, Pagination: q.pagination()})
}

func (s *CategoryService) Retrieve(ctx context.Context, user *model.User, id int64) (*model.Category, error) {
	return s.load(ctx, user, permission.ActionRetrieve, id)
}

func (s *CategoryService) load(ctx context.Context, user *model.User, action permission.Action, id int64) (*model.Category, error) {
	if err := s.policy.Check(ctx, user, action); err != nil {
		return nil, err
	}
	category, err := s.store.Categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CheckObject(ctx, user, action, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Create 创建分类，嵌套的 sub_categories 在同一事务内作为子分类创建
func (s *CategoryService) Create(ctx context.Context, user *model.User, body []byte) (*model.Category, error) {
	if err := s.policy.Check(ctx, user, permission.ActionCreate); err != nil {
		return nil, err
	}
	in, err := serializer.DecodeCategory(body, false)
	if err != nil {
		return nil, err
	}
	if in.Parent.Set && in.Parent.Value != nil {
		if _, err := related(ctx, "parent", *in.Parent.Value, s.store.Categories.GetByID); err != nil {
			return nil, err
		}
	}

	var root *model.Category
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		root, err = createCategory(ctx, tx, in, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return root, nil
}

func createCategory(ctx context.Context, tx *repository.Store, in *serializer.CategoryInput, parentID *int64) (*model.Category, error) {
	category := &model.Category{}
	in.Apply(category)
	if parentID != nil {
		category.ParentID = parentID
	}
	if err := tx.Categories.Create(ctx, category); err != nil {
		return nil, err
	}
	for i := range in.SubCategories {
		if _, err := createCategory(ctx, tx, &in.SubCategories[i], &category.ID); err != nil {
			return nil, err
		}
	}
	return category, nil
}

// Update sub_categories 只读；修改 parent 时不允许形成环
func (s *CategoryService) Update(ctx context.Context, user *model.User, id int64, body []byte, partial bool) (*model.Category, error) {
	category, err := s.load(ctx, user, writeAction(partial), id)
	if err != nil {
		return nil, err
	}
	in, err := serializer.DecodeCategory(body, partial)
	if err != nil {
		return nil, err
	}
	if in.Parent.Set && in.Parent.Value != nil {
		if err := s.checkAncestry(ctx, category.ID, *in.Parent.Value); err != nil {
			return nil, err
		}
	}

	in.Apply(category)
	if err := s.store.Categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// checkAncestry 沿 parentID 向上查找，遇到 id 自身即为环
func (s *CategoryService) checkAncestry(ctx context.Context, id, parentID int64) error {
	parent, err := related(ctx, "parent", parentID, s.store.Categories.GetByID)
	if err != nil {
		return err
	}
	seen := map[int64]bool{}
	for cur := parent; cur != nil; {
		if cur.ID == id {
			return apperr.NewValidationError("parent", MsgCategoryCycle)
		}
		if cur.ParentID == nil || seen[cur.ID] {
			return nil
		}
		seen[cur.ID] = true
		cur, err = s.store.Categories.GetByID(ctx, *cur.ParentID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *CategoryService) Destroy(ctx context.Context, user *model.User, id int64) error {
	category, err := s.load(ctx, user, permission.ActionDestroy, id)
	if err != nil {
		return err
	}
	return s.store.Categories.Delete(ctx, category.ID)
}
