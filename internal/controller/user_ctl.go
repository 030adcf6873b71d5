package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_api/internal/serializer"
	"storefront_api/internal/service"
)

type UserController struct {
	userSvc *service.UserService
}

func NewUserController(userSvc *service.UserService) *UserController {
	return &UserController{userSvc: userSvc}
}

// List 用户列表
// @Summary 用户列表
// @Description 仅管理员可用，默认只列出启用用户
// @Tags User (用户)
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param include_inactive query bool false "包含已停用用户"
// @Success 200 {array} map[string]interface{} "用户列表"
// @Failure 401 {object} ErrorResponse "未登录"
// @Failure 403 {object} ErrorResponse "无权限"
// @Router /api/users [get]
func (c *UserController) List(ctx *gin.Context) {
	q, err := listQuery(ctx)
	if err != nil {
		renderError(ctx, err)
		return
	}
	users, err := c.userSvc.List(ctx.Request.Context(), currentUser(ctx), q)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewUserSerializer().RepresentList(users))
}

// Retrieve 用户详情
// @Summary 用户详情
// @Description 本人或管理员
// @Tags User (用户)
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} map[string]interface{} "用户"
// @Failure 404 {object} ErrorResponse "不存在"
// @Router /api/users/{id} [get]
func (c *UserController) Retrieve(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	user, err := c.userSvc.Retrieve(ctx.Request.Context(), currentUser(ctx), id)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewUserSerializer().Represent(user))
}

// Create 注册
// @Summary 注册用户
// @Description 任何人可注册，返回的 auth_token 可直接用于认证
// @Tags User (用户)
// @Accept json
// @Produce json
// @Param request body serializer.UserInput true "用户信息"
// @Success 201 {object} map[string]interface{} "用户"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Router /api/users [post]
func (c *UserController) Create(ctx *gin.Context) {
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	user, err := c.userSvc.Create(ctx.Request.Context(), currentUser(ctx), body)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, serializer.NewUserSerializer().Represent(user))
}

// Update 修改用户
// @Summary 修改用户
// @Description PUT 全量 / PATCH 部分更新，本人或管理员
// @Tags User (用户)
// @Accept json
// @Produce json
// @Param id path int true "用户ID"
// @Param request body serializer.UserInput true "用户信息"
// @Success 200 {object} map[string]interface{} "用户"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Failure 403 {object} ErrorResponse "无权限"
// @Router /api/users/{id} [put]
// @Router /api/users/{id} [patch]
func (c *UserController) Update(ctx *gin.Context) {
	c.update(ctx, false)
}

func (c *UserController) PartialUpdate(ctx *gin.Context) {
	c.update(ctx, true)
}

func (c *UserController) update(ctx *gin.Context, partial bool) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	user, err := c.userSvc.Update(ctx.Request.Context(), currentUser(ctx), id, body, partial)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewUserSerializer().Represent(user))
}

// Destroy 停用用户
// @Summary 删除用户
// @Description 软删除：停用账号并吊销令牌
// @Tags User (用户)
// @Param id path int true "用户ID"
// @Success 204 "已停用"
// @Failure 403 {object} ErrorResponse "无权限"
// @Router /api/users/{id} [delete]
func (c *UserController) Destroy(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.userSvc.Destroy(ctx.Request.Context(), currentUser(ctx), id); err != nil {
		renderError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
