package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_api/internal/serializer"
	"storefront_api/internal/service"
)

type ProductController struct {
	productSvc *service.ProductService
}

func NewProductController(productSvc *service.ProductService) *ProductController {
	return &ProductController{productSvc: productSvc}
}

// List 商品列表
// @Summary 商品列表
// @Description 默认只返回上架商品，店主和管理员可见下架商品；支持按店铺、分类、上架状态筛选，fields 指定返回字段
// @Tags Product (商品)
// @Produce json
// @Param vendor query int false "店铺ID"
// @Param category query int false "分类ID"
// @Param is_available query bool false "是否上架"
// @Param fields query string false "返回字段，逗号分隔"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {array} map[string]interface{} "商品列表"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Router /api/products [get]
func (c *ProductController) List(ctx *gin.Context) {
	q, err := listQuery(ctx)
	if err != nil {
		renderError(ctx, err)
		return
	}
	products, err := c.productSvc.List(ctx.Request.Context(), currentUser(ctx), q)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewProductSerializer(fields(ctx)...).RepresentList(products))
}

// Retrieve 商品详情
// @Summary 商品详情
// @Tags Product (商品)
// @Produce json
// @Param id path int true "商品ID"
// @Param fields query string false "返回字段，逗号分隔"
// @Success 200 {object} map[string]interface{} "商品"
// @Failure 404 {object} ErrorResponse "不存在"
// @Router /api/products/{id} [get]
func (c *ProductController) Retrieve(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	product, err := c.productSvc.Retrieve(ctx.Request.Context(), currentUser(ctx), id)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewProductSerializer(fields(ctx)...).Represent(product))
}

// Create 创建商品
// @Summary 创建商品
// @Description 只能在自己的店铺下创建
// @Tags Product (商品)
// @Accept json
// @Produce json
// @Param request body serializer.ProductInput true "商品信息"
// @Success 201 {object} map[string]interface{} "商品"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Failure 403 {object} ErrorResponse "无权限"
// @Failure 404 {object} ErrorResponse "店铺不存在"
// @Router /api/products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	product, err := c.productSvc.Create(ctx.Request.Context(), currentUser(ctx), body)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, serializer.NewProductSerializer().Represent(product))
}

// Update 修改商品
// @Summary 修改商品
// @Description 仅店主可修改，库存不能低于各尺码库存之和
// @Tags Product (商品)
// @Accept json
// @Produce json
// @Param id path int true "商品ID"
// @Param request body serializer.ProductInput true "商品信息"
// @Success 200 {object} map[string]interface{} "商品"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Failure 403 {object} ErrorResponse "无权限"
// @Router /api/products/{id} [put]
// @Router /api/products/{id} [patch]
func (c *ProductController) Update(ctx *gin.Context) {
	c.update(ctx, false)
}

func (c *ProductController) PartialUpdate(ctx *gin.Context) {
	c.update(ctx, true)
}

func (c *ProductController) update(ctx *gin.Context, partial bool) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	product, err := c.productSvc.Update(ctx.Request.Context(), currentUser(ctx), id, body, partial)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewProductSerializer().Represent(product))
}

// Destroy 删除商品
// @Summary 删除商品
// @Tags Product (商品)
// @Param id path int true "商品ID"
// @Success 204 "已删除"
// @Failure 403 {object} ErrorResponse "无权限"
// @Router /api/products/{id} [delete]
func (c *ProductController) Destroy(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.productSvc.Destroy(ctx.Request.Context(), currentUser(ctx), id); err != nil {
		renderError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
