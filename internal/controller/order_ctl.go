package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_api/internal/apperr"
	"storefront_api/internal/serializer"
	"storefront_api/internal/service"
)

// ==================== OrderItem ====================

type OrderItemController struct {
	itemSvc *service.OrderItemService
}

func NewOrderItemController(itemSvc *service.OrderItemService) *OrderItemController {
	return &OrderItemController{itemSvc: itemSvc}
}

// List 订单项列表
// @Summary 订单项列表
// @Description 非管理员只能看到自己的订单项
// @Tags Order (订单)
// @Produce json
// @Param fields query string false "返回字段，逗号分隔"
// @Success 200 {array} map[string]interface{} "订单项列表"
// @Failure 401 {object} ErrorResponse "未登录"
// @Router /api/order-items [get]
func (c *OrderItemController) List(ctx *gin.Context) {
	q, err := listQuery(ctx)
	if err != nil {
		renderError(ctx, err)
		return
	}
	items, err := c.itemSvc.List(ctx.Request.Context(), currentUser(ctx), q)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewOrderItemSerializer(fields(ctx)...).RepresentList(items))
}

// Retrieve 订单项详情
// @Summary 订单项详情
// @Tags Order (订单)
// @Produce json
// @Param id path int true "订单项ID"
// @Param fields query string false "返回字段，逗号分隔"
// @Success 200 {object} map[string]interface{} "订单项"
// @Failure 404 {object} ErrorResponse "不存在"
// @Router /api/order-items/{id} [get]
func (c *OrderItemController) Retrieve(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	item, err := c.itemSvc.Retrieve(ctx.Request.Context(), currentUser(ctx), id)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewOrderItemSerializer(fields(ctx)...).Represent(item))
}

// Create 创建订单项
// @Summary 创建订单项
// @Description product 传商品ID，返回时展开为商品摘要
// @Tags Order (订单)
// @Accept json
// @Produce json
// @Param request body serializer.OrderItemInput true "订单项"
// @Success 201 {object} map[string]interface{} "订单项"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Failure 404 {object} ErrorResponse "商品不存在"
// @Router /api/order-items [post]
func (c *OrderItemController) Create(ctx *gin.Context) {
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	item, err := c.itemSvc.Create(ctx.Request.Context(), currentUser(ctx), body)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, serializer.NewOrderItemSerializer().Represent(item))
}

// Update 修改订单项
// @Summary 修改订单项
// @Tags Order (订单)
// @Accept json
// @Produce json
// @Param id path int true "订单项ID"
// @Param request body serializer.OrderItemInput true "订单项"
// @Success 200 {object} map[string]interface{} "订单项"
// @Router /api/order-items/{id} [put]
// @Router /api/order-items/{id} [patch]
func (c *OrderItemController) Update(ctx *gin.Context) {
	c.update(ctx, false)
}

func (c *OrderItemController) PartialUpdate(ctx *gin.Context) {
	c.update(ctx, true)
}

func (c *OrderItemController) update(ctx *gin.Context, partial bool) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	item, err := c.itemSvc.Update(ctx.Request.Context(), currentUser(ctx), id, body, partial)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewOrderItemSerializer().Represent(item))
}

// Destroy 删除订单项
// @Summary 删除订单项
// @Tags Order (订单)
// @Param id path int true "订单项ID"
// @Success 204 "已删除"
// @Router /api/order-items/{id} [delete]
func (c *OrderItemController) Destroy(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.itemSvc.Destroy(ctx.Request.Context(), currentUser(ctx), id); err != nil {
		renderError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ==================== Cart ====================

type CartController struct {
	cartSvc *service.CartService
}

func NewCartController(cartSvc *service.CartService) *CartController {
	return &CartController{cartSvc: cartSvc}
}

// List 购物车列表
// @Summary 购物车列表
// @Tags Cart (购物车)
// @Produce json
// @Param fields query string false "返回字段，逗号分隔"
// @Success 200 {array} map[string]interface{} "购物车列表"
// @Router /api/carts [get]
func (c *CartController) List(ctx *gin.Context) {
	q, err := listQuery(ctx)
	if err != nil {
		renderError(ctx, err)
		return
	}
	carts, err := c.cartSvc.List(ctx.Request.Context(), currentUser(ctx), q)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewCartSerializer(fields(ctx)...).RepresentList(carts))
}

// Retrieve 购物车详情
// @Summary 购物车详情
// @Tags Cart (购物车)
// @Produce json
// @Param id path int true "购物车ID"
// @Param fields query string false "返回字段，逗号分隔"
// @Success 200 {object} map[string]interface{} "购物车"
// @Router /api/carts/{id} [get]
func (c *CartController) Retrieve(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	cart, err := c.cartSvc.Retrieve(ctx.Request.Context(), currentUser(ctx), id)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewCartSerializer(fields(ctx)...).Represent(cart))
}

// Create 创建购物车
// @Summary 创建购物车
// @Description items 为当前用户的订单项ID
// @Tags Cart (购物车)
// @Accept json
// @Produce json
// @Param request body serializer.CartInput true "购物车"
// @Success 201 {object} map[string]interface{} "购物车"
// @Failure 404 {object} ErrorResponse "订单项不存在"
// @Router /api/carts [post]
func (c *CartController) Create(ctx *gin.Context) {
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	cart, err := c.cartSvc.Create(ctx.Request.Context(), currentUser(ctx), body)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, serializer.NewCartSerializer().Represent(cart))
}

// Update 修改购物车
// @Summary 修改购物车
// @Description 传入 items 时整体替换
// @Tags Cart (购物车)
// @Accept json
// @Produce json
// @Param id path int true "购物车ID"
// @Param request body serializer.CartInput true "购物车"
// @Success 200 {object} map[string]interface{} "购物车"
// @Router /api/carts/{id} [put]
// @Router /api/carts/{id} [patch]
func (c *CartController) Update(ctx *gin.Context) {
	c.update(ctx, false)
}

func (c *CartController) PartialUpdate(ctx *gin.Context) {
	c.update(ctx, true)
}

func (c *CartController) update(ctx *gin.Context, partial bool) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	cart, err := c.cartSvc.Update(ctx.Request.Context(), currentUser(ctx), id, body, partial)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewCartSerializer().Represent(cart))
}

// Destroy 删除购物车
// @Summary 删除购物车
// @Description 已下单的购物车不能删除
// @Tags Cart (购物车)
// @Param id path int true "购物车ID"
// @Success 204 "已删除"
// @Failure 400 {object} ErrorResponse "已下单"
// @Router /api/carts/{id} [delete]
func (c *CartController) Destroy(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.cartSvc.Destroy(ctx.Request.Context(), currentUser(ctx), id); err != nil {
		renderError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ==================== Order ====================

type OrderController struct {
	orderSvc *service.OrderService
}

func NewOrderController(orderSvc *service.OrderService) *OrderController {
	return &OrderController{orderSvc: orderSvc}
}

// List 订单列表
// @Summary 订单列表
// @Description 非管理员只能看到自己的订单
// @Tags Order (订单)
// @Produce json
// @Param fields query string false "返回字段，逗号分隔"
// @Success 200 {array} map[string]interface{} "订单列表"
// @Router /api/orders [get]
func (c *OrderController) List(ctx *gin.Context) {
	q, err := listQuery(ctx)
	if err != nil {
		renderError(ctx, err)
		return
	}
	orders, err := c.orderSvc.List(ctx.Request.Context(), currentUser(ctx), q)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewOrderSerializer(fields(ctx)...).RepresentList(orders))
}

// Retrieve 订单详情
// @Summary 订单详情
// @Tags Order (订单)
// @Produce json
// @Param id path int true "订单ID"
// @Param fields query string false "返回字段，逗号分隔"
// @Success 200 {object} map[string]interface{} "订单"
// @Router /api/orders/{id} [get]
func (c *OrderController) Retrieve(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	order, err := c.orderSvc.Retrieve(ctx.Request.Context(), currentUser(ctx), id)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewOrderSerializer(fields(ctx)...).Represent(order))
}

// Create 下单
// @Summary 下单
// @Description 快照购物车中的订单项并计算总价，下单用户记为商品顾客
// @Tags Order (订单)
// @Accept json
// @Produce json
// @Param request body serializer.OrderInput true "订单"
// @Success 201 {object} map[string]interface{} "订单"
// @Failure 400 {object} ErrorResponse "购物车为空"
// @Failure 404 {object} ErrorResponse "购物车不存在"
// @Router /api/orders [post]
func (c *OrderController) Create(ctx *gin.Context) {
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	order, err := c.orderSvc.Create(ctx.Request.Context(), currentUser(ctx), body)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, serializer.NewOrderSerializer().Represent(order))
}

// Update 订单不可修改
// @Summary 修改订单（不支持）
// @Tags Order (订单)
// @Param id path int true "订单ID"
// @Failure 405 {object} ErrorResponse "不支持"
// @Router /api/orders/{id} [put]
// @Router /api/orders/{id} [patch]
func (c *OrderController) Update(ctx *gin.Context) {
	renderError(ctx, &apperr.MethodNotAllowed{Method: ctx.Request.Method})
}

// Destroy 删除订单
// @Summary 删除订单
// @Tags Order (订单)
// @Param id path int true "订单ID"
// @Success 204 "已删除"
// @Router /api/orders/{id} [delete]
func (c *OrderController) Destroy(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.orderSvc.Destroy(ctx.Request.Context(), currentUser(ctx), id); err != nil {
		renderError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
