package router

import (
	"storefront_api/internal/controller"
	"storefront_api/internal/repository"
	"storefront_api/internal/service"
)

// NewControllers 组装服务与控制器，storage 为 nil 时图片上传返回 503
func NewControllers(store *repository.Store, storage service.StorageProvider, hashCost int) Controllers {
	userSvc := service.NewUserService(store)
	if hashCost > 0 {
		userSvc.SetHashCost(hashCost)
	}

	return Controllers{
		Auth:      controller.NewAuthController(userSvc),
		User:      controller.NewUserController(userSvc),
		Vendor:    controller.NewVendorController(service.NewVendorService(store)),
		Category:  controller.NewCategoryController(service.NewCategoryService(store)),
		Product:   controller.NewProductController(service.NewProductService(store)),
		Size:      controller.NewSizeController(service.NewSizeService(store), service.NewSizeChartService(store)),
		Image:     controller.NewImageController(service.NewImageService(store, storage)),
		OrderItem: controller.NewOrderItemController(service.NewOrderItemService(store)),
		Cart:      controller.NewCartController(service.NewCartService(store)),
		Order:     controller.NewOrderController(service.NewOrderService(store)),
		Review:    controller.NewReviewController(service.NewReviewService(store)),
	}
}
