package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_api/internal/serializer"
	"storefront_api/internal/service"
)

type AuthController struct {
	userSvc *service.UserService
}

func NewAuthController(userSvc *service.UserService) *AuthController {
	return &AuthController{userSvc: userSvc}
}

// LoginResp 登录响应
type LoginResp struct {
	Token string          `json:"token"`
	User  serializer.Data `json:"user"`
}

// Login 登录
// @Summary 邮箱密码登录
// @Description 返回令牌，未过期的令牌会被复用；同一客户端有登录频率限制
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body serializer.LoginInput true "邮箱与密码"
// @Success 200 {object} LoginResp "令牌与用户"
// @Failure 400 {object} ErrorResponse "凭证错误"
// @Failure 429 {object} ErrorResponse "请求过于频繁"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	user, err := c.userSvc.Login(ctx.Request.Context(), body)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, LoginResp{
		Token: user.AuthToken.Key,
		User:  serializer.NewUserSerializer().Represent(user),
	})
}
