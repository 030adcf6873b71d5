package cli

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"storefront_api/internal/config"
	"storefront_api/internal/middleware"
	"storefront_api/pkg/database"
)

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "Multi-vendor storefront REST API",
	Long:          "Storefront 提供用户、店铺、分类、商品、尺码、图片、购物车、订单与评价的 REST 接口",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedSizesCmd)
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

// bootstrap 读取配置、初始化日志并连接数据库
func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("读取配置失败: %w", err)
	}
	config.SetupLogger(cfg.Log)

	db, err := database.Open(database.Options{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("连接数据库失败: %w", err)
	}
	middleware.RegisterAuditCallbacks(db)

	log.WithField("driver", cfg.Database.Driver).Info("数据库连接成功")
	return cfg, db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
