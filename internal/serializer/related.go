package serializer

import (
	"context"
	"errors"

	"storefront_api/internal/apperr"
)

// RelatedField 嵌套关联字段：写入时接收主键，读取时输出目标对象的受限字段
type RelatedField[T any] struct {
	// Name 请求体中的字段名，用于错误信息
	Name string
	// Lookup 按主键加载目标对象，不存在时返回 *apperr.NotFoundError
	Lookup func(ctx context.Context, id int64) (*T, error)
	// Render 目标对象的受限表示
	Render func(*T) Data
}

// Decode 主键 -> 对象
func (f RelatedField[T]) Decode(ctx context.Context, id int64) (*T, error) {
	obj, err := f.Lookup(ctx, id)
	if err != nil {
		var nf *apperr.NotFoundError
		if errors.As(err, &nf) {
			return nil, apperr.NewRelatedNotFound(f.Name, id)
		}
		return nil, err
	}
	if obj == nil {
		return nil, apperr.NewRelatedNotFound(f.Name, id)
	}
	return obj, nil
}

// Encode 对象 -> 受限表示，未加载时输出 nil
func (f RelatedField[T]) Encode(obj *T) any {
	if obj == nil {
		return nil
	}
	return f.Render(obj)
}
