package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_api/internal/serializer"
	"storefront_api/internal/service"
)

type VendorController struct {
	vendorSvc *service.VendorService
}

func NewVendorController(vendorSvc *service.VendorService) *VendorController {
	return &VendorController{vendorSvc: vendorSvc}
}

// List 店铺列表
// @Summary 店铺列表
// @Tags Vendor (店铺)
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {array} map[string]interface{} "店铺列表"
// @Router /api/vendors [get]
func (c *VendorController) List(ctx *gin.Context) {
	q, err := listQuery(ctx)
	if err != nil {
		renderError(ctx, err)
		return
	}
	vendors, err := c.vendorSvc.List(ctx.Request.Context(), currentUser(ctx), q)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewVendorSerializer().RepresentList(vendors))
}

// Retrieve 店铺详情
// @Summary 店铺详情
// @Tags Vendor (店铺)
// @Produce json
// @Param id path int true "店铺ID"
// @Success 200 {object} map[string]interface{} "店铺"
// @Failure 404 {object} ErrorResponse "不存在"
// @Router /api/vendors/{id} [get]
func (c *VendorController) Retrieve(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	vendor, err := c.vendorSvc.Retrieve(ctx.Request.Context(), currentUser(ctx), id)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewVendorSerializer().Represent(vendor))
}

// Create 开店
// @Summary 创建店铺
// @Description 店主为当前用户，当前用户同时升级为商家
// @Tags Vendor (店铺)
// @Accept json
// @Produce json
// @Param request body serializer.VendorInput true "店铺信息"
// @Success 201 {object} map[string]interface{} "店铺"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Failure 401 {object} ErrorResponse "未登录"
// @Router /api/vendors [post]
func (c *VendorController) Create(ctx *gin.Context) {
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	vendor, err := c.vendorSvc.Create(ctx.Request.Context(), currentUser(ctx), body)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, serializer.NewVendorSerializer().Represent(vendor))
}

// Update 修改店铺
// @Summary 修改店铺
// @Description 店主或管理员，owner 不可修改
// @Tags Vendor (店铺)
// @Accept json
// @Produce json
// @Param id path int true "店铺ID"
// @Param request body serializer.VendorInput true "店铺信息"
// @Success 200 {object} map[string]interface{} "店铺"
// @Failure 403 {object} ErrorResponse "无权限"
// @Router /api/vendors/{id} [put]
// @Router /api/vendors/{id} [patch]
func (c *VendorController) Update(ctx *gin.Context) {
	c.update(ctx, false)
}

func (c *VendorController) PartialUpdate(ctx *gin.Context) {
	c.update(ctx, true)
}

func (c *VendorController) update(ctx *gin.Context, partial bool) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	vendor, err := c.vendorSvc.Update(ctx.Request.Context(), currentUser(ctx), id, body, partial)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewVendorSerializer().Represent(vendor))
}

// Destroy 删除店铺
// @Summary 删除店铺
// @Description 同时删除店铺下的商品
// @Tags Vendor (店铺)
// @Param id path int true "店铺ID"
// @Success 204 "已删除"
// @Failure 403 {object} ErrorResponse "无权限"
// @Router /api/vendors/{id} [delete]
func (c *VendorController) Destroy(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.vendorSvc.Destroy(ctx.Request.Context(), currentUser(ctx), id); err != nil {
		renderError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
