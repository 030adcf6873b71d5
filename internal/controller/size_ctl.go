package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_api/internal/serializer"
	"storefront_api/internal/service"
)

type SizeController struct {
	sizeSvc  *service.SizeService
	chartSvc *service.SizeChartService
}

func NewSizeController(sizeSvc *service.SizeService, chartSvc *service.SizeChartService) *SizeController {
	return &SizeController{sizeSvc: sizeSvc, chartSvc: chartSvc}
}

// List 尺码列表
// @Summary 尺码列表
// @Tags Size (尺码)
// @Produce json
// @Param product query int false "商品ID"
// @Param fields query string false "返回字段，逗号分隔"
// @Success 200 {array} map[string]interface{} "尺码列表"
// @Router /api/sizes [get]
func (c *SizeController) List(ctx *gin.Context) {
	q, err := listQuery(ctx)
	if err != nil {
		renderError(ctx, err)
		return
	}
	sizes, err := c.sizeSvc.List(ctx.Request.Context(), currentUser(ctx), q)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewSizeSerializer(fields(ctx)...).RepresentList(sizes))
}

// Retrieve 尺码详情
// @Summary 尺码详情
// @Tags Size (尺码)
// @Produce json
// @Param id path int true "尺码ID"
// @Param fields query string false "返回字段，逗号分隔"
// @Success 200 {object} map[string]interface{} "尺码"
// @Failure 404 {object} ErrorResponse "不存在"
// @Router /api/sizes/{id} [get]
func (c *SizeController) Retrieve(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	size, err := c.sizeSvc.Retrieve(ctx.Request.Context(), currentUser(ctx), id)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewSizeSerializer(fields(ctx)...).Represent(size))
}

// Create 创建尺码
// @Summary 创建尺码
// @Description size 必须在尺码表中，各尺码库存之和不能超过商品库存
// @Tags Size (尺码)
// @Accept json
// @Produce json
// @Param request body serializer.SizeInput true "尺码信息"
// @Success 201 {object} map[string]interface{} "尺码"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Failure 403 {object} ErrorResponse "无权限"
// @Router /api/sizes [post]
func (c *SizeController) Create(ctx *gin.Context) {
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	size, err := c.sizeSvc.Create(ctx.Request.Context(), currentUser(ctx), body)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, serializer.NewSizeSerializer().Represent(size))
}

// Update 修改尺码
// @Summary 修改尺码
// @Tags Size (尺码)
// @Accept json
// @Produce json
// @Param id path int true "尺码ID"
// @Param request body serializer.SizeInput true "尺码信息"
// @Success 200 {object} map[string]interface{} "尺码"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Router /api/sizes/{id} [put]
// @Router /api/sizes/{id} [patch]
func (c *SizeController) Update(ctx *gin.Context) {
	c.update(ctx, false)
}

func (c *SizeController) PartialUpdate(ctx *gin.Context) {
	c.update(ctx, true)
}

func (c *SizeController) update(ctx *gin.Context, partial bool) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	size, err := c.sizeSvc.Update(ctx.Request.Context(), currentUser(ctx), id, body, partial)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewSizeSerializer().Represent(size))
}

// Destroy 删除尺码
// @Summary 删除尺码
// @Tags Size (尺码)
// @Param id path int true "尺码ID"
// @Success 204 "已删除"
// @Router /api/sizes/{id} [delete]
func (c *SizeController) Destroy(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.sizeSvc.Destroy(ctx.Request.Context(), currentUser(ctx), id); err != nil {
		renderError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Chart 尺码表
// @Summary 尺码表
// @Description 可用的尺码取值
// @Tags Size (尺码)
// @Produce json
// @Success 200 {array} string "尺码"
// @Router /api/size-chart [get]
func (c *SizeController) Chart(ctx *gin.Context) {
	charts, err := c.chartSvc.List(ctx.Request.Context())
	if err != nil {
		renderError(ctx, err)
		return
	}
	out := make([]string, 0, len(charts))
	for _, chart := range charts {
		out = append(out, chart.Name)
	}
	ctx.JSON(http.StatusOK, out)
}
