package serializer

import (
	"fmt"

	"storefront_api/internal/apperr"
	"storefront_api/internal/model"
)

var CategoryFields = []string{"id", "name", "parent", "sub_categories", "created_at", "updated_at"}

// CategoryTree parentID -> 直接子分类
type CategoryTree map[int64][]model.Category

// NewCategoryTree 由全部分类构建子分类索引
func NewCategoryTree(all []model.Category) CategoryTree {
	tree := make(CategoryTree)
	for _, c := range all {
		if c.ParentID != nil {
			tree[*c.ParentID] = append(tree[*c.ParentID], c)
		}
	}
	return tree
}

// CategorySerializer 分类表示，sub_categories 递归展开
type CategorySerializer struct {
	tree CategoryTree
}

func NewCategorySerializer(tree CategoryTree) *CategorySerializer {
	if tree == nil {
		tree = CategoryTree{}
	}
	return &CategorySerializer{tree: tree}
}

func (s *CategorySerializer) Represent(c *model.Category) Data {
	return s.represent(c, map[int64]bool{})
}

func (s *CategorySerializer) RepresentList(categories []model.Category) []Data {
	out := make([]Data, 0, len(categories))
	for i := range categories {
		out = append(out, s.Represent(&categories[i]))
	}
	return out
}

// visited 防止环形父子关系导致无限递归
func (s *CategorySerializer) represent(c *model.Category, visited map[int64]bool) Data {
	visited[c.ID] = true

	subs := make([]Data, 0, len(s.tree[c.ID]))
	for _, child := range s.tree[c.ID] {
		if visited[child.ID] {
			continue
		}
		child := child
		subs = append(subs, s.represent(&child, visited))
	}

	return Data{
		"id":             c.ID,
		"name":           c.Name,
		"parent":         idPtr(c.ParentID),
		"sub_categories": subs,
		"created_at":     formatTime(c.CreatedAt),
		"updated_at":     formatTime(c.UpdatedAt),
	}
}

// CategoryInput 分类写入字段，sub_categories 仅在创建时生效
type CategoryInput struct {
	Name          *string         `json:"name" validate:"omitempty,max=255"`
	Parent        NullableID      `json:"parent"`
	SubCategories []CategoryInput `json:"sub_categories" validate:"omitempty,dive"`
}

func DecodeCategory(body []byte, partial bool) (*CategoryInput, error) {
	in := &CategoryInput{}
	if err := decodeJSON(body, in); err != nil {
		return nil, err
	}
	verr := &apperr.ValidationError{}
	checkCategory(in, "", partial, verr)
	validateStruct(in, verr)
	return in, finish(verr)
}

func checkCategory(in *CategoryInput, prefix string, partial bool, verr *apperr.ValidationError) {
	if !partial {
		required(verr, prefix+"name", in.Name == nil)
	}
	notBlank(verr, prefix+"name", in.Name)
	for i := range in.SubCategories {
		// 嵌套子分类总是按创建处理
		checkCategory(&in.SubCategories[i], fmt.Sprintf("%ssub_categories[%d].", prefix, i), false, verr)
	}
}

func (in *CategoryInput) Apply(c *model.Category) {
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Parent.Set {
		c.ParentID = in.Parent.Value
	}
}
