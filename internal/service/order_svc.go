package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"storefront_api/internal/apperr"
	"storefront_api/internal/model"
	"storefront_api/internal/permission"
	"storefront_api/internal/repository"
	"storefront_api/internal/serializer"
)

// ==================== OrderItemService 订单条目服务 ====================

type OrderItemService struct {
	store  *repository.Store
	policy permission.Policy
}

func NewOrderItemService(store *repository.Store) *OrderItemService {
	return &OrderItemService{store: store, policy: permission.OrderItemPolicy}
}

// List 非管理员只能看到自己的条目
func (s *OrderItemService) List(ctx context.Context, user *model.User, q ListQuery) ([]model.OrderItem, error) {
	if err := s.policy.Check(ctx, user, permission.ActionList); err != nil {
		return nil, err
	}
	return s.store.OrderItems.List(ctx, ownerScope(user, q))
}

func (s *OrderItemService) Retrieve(ctx context.Context, user *model.User, id int64) (*model.OrderItem, error) {
	return s.load(ctx, user, permission.ActionRetrieve, id)
}

func (s *OrderItemService) load(ctx context.Context, user *model.User, action permission.Action, id int64) (*model.OrderItem, error) {
	if err := s.policy.Check(ctx, user, action); err != nil {
		return nil, err
	}
	item, err := s.store.OrderItems.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CheckObject(ctx, user, action, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Create user 绑定为当前用户；product 以 id 写入
func (s *OrderItemService) Create(ctx context.Context, user *model.User, body []byte) (*model.OrderItem, error) {
	if err := s.policy.Check(ctx, user, permission.ActionCreate); err != nil {
		return nil, err
	}
	in, err := serializer.DecodeOrderItem(body, false)
	if err != nil {
		return nil, err
	}

	item := in.NewOrderItem()
	item.UserID = user.ID
	if err := s.resolve(ctx, item, in); err != nil {
		return nil, err
	}
	if err := s.store.OrderItems.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *OrderItemService) Update(ctx context.Context, user *model.User, id int64, body []byte, partial bool) (*model.OrderItem, error) {
	item, err := s.load(ctx, user, writeAction(partial), id)
	if err != nil {
		return nil, err
	}
	in, err := serializer.DecodeOrderItem(body, partial)
	if err != nil {
		return nil, err
	}

	in.Apply(item)
	if err := s.resolve(ctx, item, in); err != nil {
		return nil, err
	}
	if err := s.store.OrderItems.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// resolve 校验并加载请求体引用的商品和购物车
// 购物车必须属于条目所有者，否则视为不存在
func (s *OrderItemService) resolve(ctx context.Context, item *model.OrderItem, in *serializer.OrderItemInput) error {
	if in.Product != nil {
		product, err := serializer.ProductRelatedField(s.store.Products.GetByID).Decode(ctx, *in.Product)
		if err != nil {
			return err
		}
		item.Product = product
	}
	if in.Cart.Set && in.Cart.Value != nil {
		cart, err := related(ctx, "cart", *in.Cart.Value, s.store.Carts.GetByID)
		if err != nil {
			return err
		}
		if cart.UserID != item.UserID {
			return apperr.NewRelatedNotFound("cart", cart.ID)
		}
	}
	return nil
}

func (s *OrderItemService) Destroy(ctx context.Context, user *model.User, id int64) error {
	item, err := s.load(ctx, user, permission.ActionDestroy, id)
	if err != nil {
		return err
	}
	return s.store.OrderItems.Delete(ctx, item.ID)
}

// ==================== CartService 购物车服务 ====================

type CartService struct {
	store  *repository.Store
	policy permission.Policy
}

func NewCartService(store *repository.Store) *CartService {
	return &CartService{store: store, policy: permission.CartPolicy}
}

func (s *CartService) List(ctx context.Context, user *model.User, q ListQuery) ([]model.Cart, error) {
	if err := s.policy.Check(ctx, user, permission.ActionList); err != nil {
		return nil, err
	}
	return s.store.Carts.List(ctx, ownerScope(user, q))
}

func (s *CartService) Retrieve(ctx context.Context, user *model.User, id int64) (*model.Cart, error) {
	return s.load(ctx, user, permission.ActionRetrieve, id)
}

func (s *CartService) load(ctx context.Context, user *model.User, action permission.Action, id int64) (*model.Cart, error) {
	if err := s.policy.Check(ctx, user, action); err != nil {
		return nil, err
	}
	cart, err := s.store.Carts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CheckObject(ctx, user, action, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Create items 为当前用户自己的订单条目 id
func (s *CartService) Create(ctx context.Context, user *model.User, body []byte) (*model.Cart, error) {
	if err := s.policy.Check(ctx, user, permission.ActionCreate); err != nil {
		return nil, err
	}
	in, err := serializer.DecodeCart(body)
	if err != nil {
		return nil, err
	}

	cart := &model.Cart{UserID: user.ID}
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Carts.Create(ctx, cart); err != nil {
			return err
		}
		if in.Items == nil {
			return nil
		}
		return setItems(ctx, tx, cart, *in.Items, false)
	})
	if err != nil {
		return nil, err
	}
	return s.store.Carts.GetByID(ctx, cart.ID)
}

// Update 提交 items 时整体替换购物车内容
func (s *CartService) Update(ctx context.Context, user *model.User, id int64, body []byte, partial bool) (*model.Cart, error) {
	cart, err := s.load(ctx, user, writeAction(partial), id)
	if err != nil {
		return nil, err
	}
	in, err := serializer.DecodeCart(body)
	if err != nil {
		return nil, err
	}
	if in.Items == nil {
		return cart, nil
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := setItems(ctx, tx, cart, *in.Items, true); err != nil {
			return err
		}
		return tx.Carts.Touch(ctx, cart)
	})
	if err != nil {
		return nil, err
	}
	return s.store.Carts.GetByID(ctx, cart.ID)
}

// setItems 条目必须都属于购物车所有者
func setItems(ctx context.Context, tx *repository.Store, cart *model.Cart, ids []int64, replace bool) error {
	owned, err := tx.OrderItems.ListByIDs(ctx, ids, cart.UserID)
	if err != nil {
		return err
	}
	found := make(map[int64]bool, len(owned))
	for _, item := range owned {
		found[item.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return apperr.NewRelatedNotFound("items", id)
		}
	}
	return tx.OrderItems.SetCart(ctx, cart.ID, ids, replace)
}

// Destroy 已下单的购物车不能删除
func (s *CartService) Destroy(ctx context.Context, user *model.User, id int64) error {
	cart, err := s.load(ctx, user, permission.ActionDestroy, id)
	if err != nil {
		return err
	}
	ordered, err := s.store.Carts.HasOrders(ctx, cart.ID)
	if err != nil {
		return err
	}
	if ordered {
		return apperr.NewNonFieldError(MsgCartHasOrders)
	}
	return s.store.Carts.Delete(ctx, cart.ID)
}

// ==================== OrderService 订单服务 ====================

// OrderService 订单创建后不可修改，只支持查看、创建、删除
type OrderService struct {
	store  *repository.Store
	policy permission.Policy
}

func NewOrderService(store *repository.Store) *OrderService {
	return &OrderService{store: store, policy: permission.OrderPolicy}
}

func (s *OrderService) List(ctx context.Context, user *model.User, q ListQuery) ([]model.Order, error) {
	if err := s.policy.Check(ctx, user, permission.ActionList); err != nil {
		return nil, err
	}
	return s.store.Orders.List(ctx, ownerScope(user, q))
}

func (s *OrderService) Retrieve(ctx context.Context, user *model.User, id int64) (*model.Order, error) {
	return s.load(ctx, user, permission.ActionRetrieve, id)
}

func (s *OrderService) load(ctx context.Context, user *model.User, action permission.Action, id int64) (*model.Order, error) {
	if err := s.policy.Check(ctx, user, action); err != nil {
		return nil, err
	}
	order, err := s.store.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CheckObject(ctx, user, action, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Create 按购物车下单：快照条目、计算总价、记录购买关系，全部在一个事务内完成
func (s *OrderService) Create(ctx context.Context, user *model.User, body []byte) (*model.Order, error) {
	if err := s.policy.Check(ctx, user, permission.ActionCreate); err != nil {
		return nil, err
	}
	in, err := serializer.DecodeOrder(body)
	if err != nil {
		return nil, err
	}

	order := &model.Order{UserID: user.ID}
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		cart, err := serializer.CartRelatedField(tx.Carts.GetByID).Decode(ctx, *in.Cart)
		if err != nil {
			return err
		}
		if cart.UserID != user.ID {
			return apperr.NewRelatedNotFound("cart", cart.ID)
		}
		if len(cart.Items) == 0 {
			return apperr.NewValidationError("cart", MsgEmptyCart)
		}

		lines, total := snapshot(cart.Items)
		raw, err := json.Marshal(lines)
		if err != nil {
			return fmt.Errorf("序列化订单快照失败: %w", err)
		}
		order.CartID = cart.ID
		order.Total = total
		order.Items = datatypes.JSON(raw)
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}

		for _, line := range lines {
			if err := tx.Products.AddCustomer(ctx, line.ProductID, user.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"order_id": order.ID, "user_id": user.ID, "total": order.Total.StringFixed(2)}).Info("订单创建成功")
	return s.store.Orders.GetByID(ctx, order.ID)
}

// snapshot 条目需预加载 Product
func snapshot(items []model.OrderItem) ([]model.OrderLine, decimal.Decimal) {
	lines := make([]model.OrderLine, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		lines = append(lines, model.OrderLine{
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			Brand:     item.Product.Brand,
			Price:     item.Product.Price,
			Quantity:  item.Quantity,
		})
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return lines, total
}

func (s *OrderService) Destroy(ctx context.Context, user *model.User, id int64) error {
	order, err := s.load(ctx, user, permission.ActionDestroy, id)
	if err != nil {
		return err
	}
	return s.store.Orders.Delete(ctx, order.ID)
}
