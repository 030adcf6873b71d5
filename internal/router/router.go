package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront_api/internal/controller"
	"storefront_api/internal/middleware"
	"storefront_api/internal/repository"

	_ "storefront_api/docs"
)

// Controllers 各资源的控制器
type Controllers struct {
	Auth      *controller.AuthController
	User      *controller.UserController
	Vendor    *controller.VendorController
	Category  *controller.CategoryController
	Product   *controller.ProductController
	Size      *controller.SizeController
	Image     *controller.ImageController
	OrderItem *controller.OrderItemController
	Cart      *controller.CartController
	Order     *controller.OrderController
	Review    *controller.ReviewController
}

// Options 路由依赖
type Options struct {
	Tokens        repository.TokenRepository
	LoginThrottle time.Duration
	// MediaDir 非空时以 MediaURL 挂载本地上传目录
	MediaDir string
	MediaURL string
}

// New 创建 gin 引擎并注册全局中间件与路由
func New(opts Options, ctls Controllers) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": fmt.Sprintf("Method %q not allowed.", c.Request.Method)})
	})

	if opts.MediaDir != "" {
		mediaURL := opts.MediaURL
		if mediaURL == "" {
			mediaURL = "/media"
		}
		r.Static(mediaURL, opts.MediaDir)
	}

	InitRoutes(r, opts, ctls)
	return r
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, opts Options, ctls Controllers) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. API 路由组
	api := r.Group("/api")
	api.Use(middleware.Authenticate(opts.Tokens), middleware.AuditContext())
	{
		// auth 认证
		auth := api.Group("/auth")
		{
			// POST /api/auth/login
			auth.POST("/login", middleware.Throttle(middleware.NewRateLimiter(), "login", opts.LoginThrottle), ctls.Auth.Login)
		}

		resource(api.Group("/users"), ctls.User)
		resource(api.Group("/vendors"), ctls.Vendor)
		resource(api.Group("/categories"), ctls.Category)
		resource(api.Group("/products"), ctls.Product)
		resource(api.Group("/sizes"), ctls.Size)
		resource(api.Group("/order-items"), ctls.OrderItem)
		resource(api.Group("/carts"), ctls.Cart)
		resource(api.Group("/reviews"), ctls.Review)

		images := api.Group("/images")
		{
			// POST /api/images/upload 须先于 /:id 注册
			images.POST("/upload", ctls.Image.Upload)
			resource(images, ctls.Image)
		}

		// 订单创建后不可修改
		orders := api.Group("/orders")
		{
			orders.GET("", ctls.Order.List)
			orders.POST("", ctls.Order.Create)
			orders.GET("/:id", ctls.Order.Retrieve)
			orders.PUT("/:id", ctls.Order.Update)
			orders.PATCH("/:id", ctls.Order.Update)
			orders.DELETE("/:id", ctls.Order.Destroy)
		}

		// GET /api/size-chart
		api.GET("/size-chart", ctls.Size.Chart)
	}
}

// resourceController 标准的增删改查控制器
type resourceController interface {
	List(ctx *gin.Context)
	Retrieve(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	PartialUpdate(ctx *gin.Context)
	Destroy(ctx *gin.Context)
}

func resource(g *gin.RouterGroup, ctl resourceController) {
	g.GET("", ctl.List)
	g.POST("", ctl.Create)
	g.GET("/:id", ctl.Retrieve)
	g.PUT("/:id", ctl.Update)
	g.PATCH("/:id", ctl.PartialUpdate)
	g.DELETE("/:id", ctl.Destroy)
}
