package controller

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_api/internal/apperr"
	"storefront_api/internal/serializer"
	"storefront_api/internal/service"
)

type ImageController struct {
	imageSvc *service.ImageService
}

func NewImageController(imageSvc *service.ImageService) *ImageController {
	return &ImageController{imageSvc: imageSvc}
}

// List 图片列表
// @Summary 图片列表
// @Tags Image (图片)
// @Produce json
// @Param product query int false "商品ID"
// @Param fields query string false "返回字段，逗号分隔"
// @Success 200 {array} map[string]interface{} "图片列表"
// @Router /api/images [get]
func (c *ImageController) List(ctx *gin.Context) {
	q, err := listQuery(ctx)
	if err != nil {
		renderError(ctx, err)
		return
	}
	images, err := c.imageSvc.List(ctx.Request.Context(), currentUser(ctx), q)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewImageSerializer(fields(ctx)...).RepresentList(images))
}

// Retrieve 图片详情
// @Summary 图片详情
// @Tags Image (图片)
// @Produce json
// @Param id path int true "图片ID"
// @Param fields query string false "返回字段，逗号分隔"
// @Success 200 {object} map[string]interface{} "图片"
// @Failure 404 {object} ErrorResponse "不存在"
// @Router /api/images/{id} [get]
func (c *ImageController) Retrieve(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	image, err := c.imageSvc.Retrieve(ctx.Request.Context(), currentUser(ctx), id)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewImageSerializer(fields(ctx)...).Represent(image))
}

// Create 按 URL 添加图片
// @Summary 添加图片
// @Tags Image (图片)
// @Accept json
// @Produce json
// @Param request body serializer.ImageInput true "图片信息"
// @Success 201 {object} map[string]interface{} "图片"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Failure 403 {object} ErrorResponse "无权限"
// @Router /api/images [post]
func (c *ImageController) Create(ctx *gin.Context) {
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	image, err := c.imageSvc.Create(ctx.Request.Context(), currentUser(ctx), body)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, serializer.NewImageSerializer().Represent(image))
}

// Upload 上传图片文件
// @Summary 上传图片
// @Description 文件写入对象存储后创建图片记录
// @Tags Image (图片)
// @Accept multipart/form-data
// @Produce json
// @Param product formData int true "商品ID"
// @Param file formData file true "图片文件"
// @Success 201 {object} map[string]interface{} "图片"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Failure 403 {object} ErrorResponse "无权限"
// @Failure 503 {object} ErrorResponse "未配置存储"
// @Router /api/images/upload [post]
func (c *ImageController) Upload(ctx *gin.Context) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxUploadBytes)

	productID, err := strconv.ParseInt(ctx.PostForm("product"), 10, 64)
	if err != nil {
		if ctx.PostForm("product") == "" {
			renderError(ctx, apperr.NewValidationError("product", "This field is required."))
			return
		}
		renderError(ctx, apperr.NewValidationError("product", msgInvalidInteger))
		return
	}

	var (
		filename string
		data     []byte
	)
	fh, err := ctx.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		renderError(ctx, apperr.NewValidationError("file", err.Error()))
		return
	default:
		f, err := fh.Open()
		if err != nil {
			renderError(ctx, err)
			return
		}
		defer f.Close()
		if data, err = io.ReadAll(f); err != nil {
			renderError(ctx, err)
			return
		}
		filename = fh.Filename
	}

	image, err := c.imageSvc.Upload(ctx.Request.Context(), currentUser(ctx), productID, filename, data)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, serializer.NewImageSerializer().Represent(image))
}

// Update 修改图片
// @Summary 修改图片
// @Description 更换 URL 时删除原先上传的文件
// @Tags Image (图片)
// @Accept json
// @Produce json
// @Param id path int true "图片ID"
// @Param request body serializer.ImageInput true "图片信息"
// @Success 200 {object} map[string]interface{} "图片"
// @Router /api/images/{id} [put]
// @Router /api/images/{id} [patch]
func (c *ImageController) Update(ctx *gin.Context) {
	c.update(ctx, false)
}

func (c *ImageController) PartialUpdate(ctx *gin.Context) {
	c.update(ctx, true)
}

func (c *ImageController) update(ctx *gin.Context, partial bool) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	image, err := c.imageSvc.Update(ctx.Request.Context(), currentUser(ctx), id, body, partial)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, serializer.NewImageSerializer().Represent(image))
}

// Destroy 删除图片
// @Summary 删除图片
// @Tags Image (图片)
// @Param id path int true "图片ID"
// @Success 204 "已删除"
// @Router /api/images/{id} [delete]
func (c *ImageController) Destroy(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.imageSvc.Destroy(ctx.Request.Context(), currentUser(ctx), id); err != nil {
		renderError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
