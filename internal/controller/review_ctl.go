package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_api/internal/serializer"
	"storefront_api/internal/service"
)

type ReviewController struct {
	reviewSvc *service.ReviewService
}

func NewReviewController(reviewSvc *service.ReviewService) *ReviewController {
	return &ReviewController{reviewSvc: reviewSvc}
}

// List 评价列表
// @Summary 评价列表
// @Tags Review (评价)
// @Produce json
// @Param product query int false "商品ID"
// @Param user query int false "用户ID"
// @Param fields query string false "返回字段，逗号分隔"
// @Success 200 {array} map[string]interface{} "评价列表"
// @Router /api/reviews [get]
func (c *ReviewController) List(ctx *gin.Context) {
	q, err := listQuery(ctx)
	if err != nil {
		renderError(ctx, err)
		return
	}
	reviews, err := c.reviewSvc.List(ctx.Request.Context(), currentUser(ctx), q)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewReviewSerializer(fields(ctx)...).RepresentList(reviews))
}

// Retrieve 评价详情
// @Summary 评价详情
// @Tags Review (评价)
// @Produce json
// @Param id path int true "评价ID"
// @Param fields query string false "返回字段，逗号分隔"
// @Success 200 {object} map[string]interface{} "评价"
// @Router /api/reviews/{id} [get]
func (c *ReviewController) Retrieve(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	review, err := c.reviewSvc.Retrieve(ctx.Request.Context(), currentUser(ctx), id)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewReviewSerializer(fields(ctx)...).Represent(review))
}

// Create 发表评价
// @Summary 发表评价
// @Description 只有购买过该商品的用户可以评价
// @Tags Review (评价)
// @Accept json
// @Produce json
// @Param request body serializer.ReviewInput true "评价"
// @Success 201 {object} map[string]interface{} "评价"
// @Failure 403 {object} ErrorResponse "未购买"
// @Router /api/reviews [post]
func (c *ReviewController) Create(ctx *gin.Context) {
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	review, err := c.reviewSvc.Create(ctx.Request.Context(), currentUser(ctx), body)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, serializer.NewReviewSerializer().Represent(review))
}

// Update 修改评价
// @Summary 修改评价
// @Tags Review (评价)
// @Accept json
// @Produce json
// @Param id path int true "评价ID"
// @Param request body serializer.ReviewInput true "评价"
// @Success 200 {object} map[string]interface{} "评价"
// @Router /api/reviews/{id} [put]
// @Router /api/reviews/{id} [patch]
func (c *ReviewController) Update(ctx *gin.Context) {
	c.update(ctx, false)
}

func (c *ReviewController) PartialUpdate(ctx *gin.Context) {
	c.update(ctx, true)
}

func (c *ReviewController) update(ctx *gin.Context, partial bool) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	review, err := c.reviewSvc.Update(ctx.Request.Context(), currentUser(ctx), id, body, partial)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewReviewSerializer().Represent(review))
}

// Destroy 删除评价
// @Summary 删除评价
// @Tags Review (评价)
// @Param id path int true "评价ID"
// @Success 204 "已删除"
// @Router /api/reviews/{id} [delete]
func (c *ReviewController) Destroy(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.reviewSvc.Destroy(ctx.Request.Context(), currentUser(ctx), id); err != nil {
		renderError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
