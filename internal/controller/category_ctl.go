package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_api/internal/serializer"
	"storefront_api/internal/service"
)

type CategoryController struct {
	categorySvc *service.CategoryService
}

func NewCategoryController(categorySvc *service.CategoryService) *CategoryController {
	return &CategoryController{categorySvc: categorySvc}
}

// newSerializer 子分类递归展开需要当前的整棵分类树
func (c *CategoryController) newSerializer(ctx *gin.Context) (*serializer.CategorySerializer, bool) {
	tree, err := c.categorySvc.Tree(ctx.Request.Context())
	if err != nil {
		renderError(ctx, err)
		return nil, false
	}
	return serializer.NewCategorySerializer(tree), true
}

// List 分类列表
// @Summary 分类列表
// @Description root=true 时只返回顶级分类，sub_categories 递归展开
// @Tags Category (分类)
// @Produce json
// @Param root query bool false "只看顶级分类"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {array} map[string]interface{} "分类列表"
// @Router /api/categories [get]
func (c *CategoryController) List(ctx *gin.Context) {
	q, err := listQuery(ctx)
	if err != nil {
		renderError(ctx, err)
		return
	}
	categories, err := c.categorySvc.List(ctx.Request.Context(), currentUser(ctx), q)
	if err != nil {
		renderError(ctx, err)
		return
	}
	s, ok := c.newSerializer(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, s.RepresentList(categories))
}

// Retrieve 分类详情
// @Summary 分类详情
// @Tags Category (分类)
// @Produce json
// @Param id path int true "分类ID"
// @Success 200 {object} map[string]interface{} "分类"
// @Failure 404 {object} ErrorResponse "不存在"
// @Router /api/categories/{id} [get]
func (c *CategoryController) Retrieve(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	category, err := c.categorySvc.Retrieve(ctx.Request.Context(), currentUser(ctx), id)
	if err != nil {
		renderError(ctx, err)
		return
	}
	s, ok := c.newSerializer(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, s.Represent(category))
}

// Create 创建分类
// @Summary 创建分类
// @Description 仅管理员，sub_categories 中的子分类一并创建
// @Tags Category (分类)
// @Accept json
// @Produce json
// @Param request body serializer.CategoryInput true "分类信息"
// @Success 201 {object} map[string]interface{} "分类"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Failure 403 {object} ErrorResponse "无权限"
// @Router /api/categories [post]
func (c *CategoryController) Create(ctx *gin.Context) {
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	category, err := c.categorySvc.Create(ctx.Request.Context(), currentUser(ctx), body)
	if err != nil {
		renderError(ctx, err)
		return
	}
	s, ok := c.newSerializer(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusCreated, s.Represent(category))
}

// Update 修改分类
// @Summary 修改分类
// @Description 仅管理员，parent 不能指向自身或后代
// @Tags Category (分类)
// @Accept json
// @Produce json
// @Param id path int true "分类ID"
// @Param request body serializer.CategoryInput true "分类信息"
// @Success 200 {object} map[string]interface{} "分类"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Router /api/categories/{id} [put]
// @Router /api/categories/{id} [patch]
func (c *CategoryController) Update(ctx *gin.Context) {
	c.update(ctx, false)
}

func (c *CategoryController) PartialUpdate(ctx *gin.Context) {
	c.update(ctx, true)
}

func (c *CategoryController) update(ctx *gin.Context, partial bool) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	category, err := c.categorySvc.Update(ctx.Request.Context(), currentUser(ctx), id, body, partial)
	if err != nil {
		renderError(ctx, err)
		return
	}
	s, ok := c.newSerializer(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, s.Represent(category))
}

// Destroy 删除分类
// @Summary 删除分类
// @Description 子分类变为顶级分类
// @Tags Category (分类)
// @Param id path int true "分类ID"
// @Success 204 "已删除"
// @Router /api/categories/{id} [delete]
func (c *CategoryController) Destroy(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.categorySvc.Destroy(ctx.Request.Context(), currentUser(ctx), id); err != nil {
		renderError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
