package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"storefront_api/internal/cli"
)

// @title Storefront API
// @version 1.0
// @description 多商家电商平台接口：用户、店铺、分类、商品、尺码、图片、购物车、订单与评价
// @BasePath /
// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
// @description Token <key> 或 Bearer <key>
func main() {
	if err := cli.Execute(); err != nil {
		log.WithError(err).Error("storefront 退出")
		os.Exit(1)
	}
}
