package serializer

import (
	"context"
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"storefront_api/internal/apperr"
	"storefront_api/internal/model"
)

// ProductRelatedField OrderItem.product：写入商品 id，读取商品受限字段
func ProductRelatedField(lookup func(ctx context.Context, id int64) (*model.Product, error)) RelatedField[model.Product] {
	return RelatedField[model.Product]{
		Name:   "product",
		Lookup: lookup,
		Render: NewProductCustomSerializer().Represent,
	}
}

// CartRelatedField Order.cart：写入购物车 id，读取购物车受限字段
func CartRelatedField(lookup func(ctx context.Context, id int64) (*model.Cart, error)) RelatedField[model.Cart] {
	return RelatedField[model.Cart]{
		Name:   "cart",
		Lookup: lookup,
		Render: NewCartCustomSerializer().Represent,
	}
}

// ==================== OrderItem ====================

var (
	OrderItemFields       = []string{"id", "user", "product", "cart", "quantity", "created_at", "updated_at"}
	OrderItemCustomFields = []string{"product", "quantity"}
)

type OrderItemSerializer struct {
	fieldSet
	product RelatedField[model.Product]
}

func NewOrderItemSerializer(fields ...string) *OrderItemSerializer {
	return &OrderItemSerializer{
		fieldSet: newFieldSet(OrderItemFields, fields),
		product:  ProductRelatedField(nil),
	}
}

func NewOrderItemCustomSerializer() *OrderItemSerializer {
	return NewOrderItemSerializer(OrderItemCustomFields...)
}

// Represent 需预加载 Product
func (s *OrderItemSerializer) Represent(item *model.OrderItem) Data {
	return s.pick(Data{
		"id":         item.ID,
		"user":       item.UserID,
		"product":    s.product.Encode(item.Product),
		"cart":       idPtr(item.CartID),
		"quantity":   item.Quantity,
		"created_at": formatTime(item.CreatedAt),
		"updated_at": formatTime(item.UpdatedAt),
	})
}

func (s *OrderItemSerializer) RepresentList(items []model.OrderItem) []Data {
	out := make([]Data, 0, len(items))
	for i := range items {
		out = append(out, s.Represent(&items[i]))
	}
	return out
}

// OrderItemInput user 由服务端绑定为当前用户
type OrderItemInput struct {
	Product  *int64     `json:"product"`
	Cart     NullableID `json:"cart"`
	Quantity *int       `json:"quantity" validate:"omitempty,gte=1"`
}

func DecodeOrderItem(body []byte, partial bool) (*OrderItemInput, error) {
	in := &OrderItemInput{}
	if err := decodeJSON(body, in); err != nil {
		return nil, err
	}
	verr := &apperr.ValidationError{}
	if !partial {
		required(verr, "product", in.Product == nil)
	}
	validateStruct(in, verr)
	return in, finish(verr)
}

// NewOrderItem 默认数量 1
func (in *OrderItemInput) NewOrderItem() *model.OrderItem {
	item := &model.OrderItem{Quantity: 1}
	in.Apply(item)
	return item
}

func (in *OrderItemInput) Apply(item *model.OrderItem) {
	if in.Product != nil {
		item.ProductID = *in.Product
	}
	if in.Cart.Set {
		item.CartID = in.Cart.Value
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
}

// ==================== Cart ====================

var (
	CartFields       = []string{"id", "user", "items", "created_at", "updated_at"}
	CartCustomFields = []string{"id", "user", "items"}
)

type CartSerializer struct {
	fieldSet
	items *OrderItemSerializer
}

func NewCartSerializer(fields ...string) *CartSerializer {
	return &CartSerializer{
		fieldSet: newFieldSet(CartFields, fields),
		items:    NewOrderItemCustomSerializer(),
	}
}

func NewCartCustomSerializer() *CartSerializer {
	return NewCartSerializer(CartCustomFields...)
}

// Represent 需预加载 Items.Product
func (s *CartSerializer) Represent(c *model.Cart) Data {
	return s.pick(Data{
		"id":         c.ID,
		"user":       c.UserID,
		"items":      s.items.RepresentList(c.Items),
		"created_at": formatTime(c.CreatedAt),
		"updated_at": formatTime(c.UpdatedAt),
	})
}

func (s *CartSerializer) RepresentList(carts []model.Cart) []Data {
	out := make([]Data, 0, len(carts))
	for i := range carts {
		out = append(out, s.Represent(&carts[i]))
	}
	return out
}

// CartInput items 为当前用户的 OrderItem id 列表
type CartInput struct {
	Items *[]int64 `json:"items"`
}

func DecodeCart(body []byte) (*CartInput, error) {
	in := &CartInput{}
	if err := decodeJSON(body, in); err != nil {
		return nil, err
	}
	return in, nil
}

// ==================== Order ====================

var OrderFields = []string{"id", "user", "cart", "total", "items", "created_at"}

type OrderSerializer struct {
	fieldSet
	cart RelatedField[model.Cart]
}

func NewOrderSerializer(fields ...string) *OrderSerializer {
	return &OrderSerializer{
		fieldSet: newFieldSet(OrderFields, fields),
		cart:     CartRelatedField(nil),
	}
}

// Represent 需预加载 Cart.Items.Product
func (s *OrderSerializer) Represent(o *model.Order) Data {
	return s.pick(Data{
		"id":         o.ID,
		"user":       o.UserID,
		"cart":       s.cart.Encode(o.Cart),
		"total":      formatPrice(o.Total),
		"items":      orderLines(o),
		"created_at": formatTime(o.CreatedAt),
	})
}

func (s *OrderSerializer) RepresentList(orders []model.Order) []Data {
	out := make([]Data, 0, len(orders))
	for i := range orders {
		out = append(out, s.Represent(&orders[i]))
	}
	return out
}

func orderLines(o *model.Order) []Data {
	var lines []model.OrderLine
	if len(o.Items) > 0 {
		if err := json.Unmarshal(o.Items, &lines); err != nil {
			log.WithError(err).WithField("order_id", o.ID).Error("订单快照解析失败")
			lines = nil
		}
	}
	out := make([]Data, 0, len(lines))
	for _, l := range lines {
		out = append(out, Data{
			"product":  l.ProductID,
			"name":     l.Name,
			"brand":    l.Brand,
			"price":    formatPrice(l.Price),
			"quantity": l.Quantity,
		})
	}
	return out
}

// OrderInput 下单只需要购物车 id
type OrderInput struct {
	Cart *int64 `json:"cart"`
}

func DecodeOrder(body []byte) (*OrderInput, error) {
	in := &OrderInput{}
	if err := decodeJSON(body, in); err != nil {
		return nil, err
	}
	verr := &apperr.ValidationError{}
	required(verr, "cart", in.Cart == nil)
	return in, finish(verr)
}
