package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"storefront_api/internal/config"
	"storefront_api/internal/middleware"
	"storefront_api/internal/model"
	"storefront_api/internal/repository"
	"storefront_api/internal/router"
	"storefront_api/internal/service"
	"storefront_api/internal/task"
	"storefront_api/pkg/database"
)

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeDB(db)

		if autoMigrate {
			if err := database.Migrate(db, model.AllModels()...); err != nil {
				return err
			}
		}

		middleware.SetJWTConfig(&middleware.JWTConfig{
			SecretKey: cfg.JWT.Secret,
			TokenTTL:  cfg.JWT.TokenTTL,
			Issuer:    cfg.JWT.Issuer,
		})

		store := repository.NewStore(db)
		storage := initStorage(cfg.Storage)

		// -------- 定时任务 --------
		cleanup := task.NewTokenCleanupTask(store.Tokens, cfg.Tasks.TokenCleanupSpec)
		if err := cleanup.Start(); err != nil {
			return err
		}

		// -------- 路由 --------
		gin.SetMode(cfg.Server.Mode)
		opts := router.Options{
			Tokens:        store.Tokens,
			LoginThrottle: cfg.LoginThrottle,
		}
		if _, ok := storage.(*service.LocalStorage); ok {
			opts.MediaDir = cfg.Storage.LocalDir
			opts.MediaURL = cfg.Storage.PublicURL
		}
		r := router.New(opts, router.NewControllers(store, storage, 0))

		return startServer(cfg.Server, r, cleanup)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "run database migrations before serving")
}

// initStorage 初始化图片存储，失败时关闭上传功能
func initStorage(c config.StorageConfig) service.StorageProvider {
	storage, err := service.NewStorageProvider(service.StorageConfig{
		Provider:  c.Provider,
		Bucket:    c.Bucket,
		Region:    c.Region,
		AccessKey: c.AccessKey,
		SecretKey: c.SecretKey,
		Endpoint:  c.Endpoint,
		UseSSL:    c.UseSSL,
		BasePath:  c.BasePath,
		LocalDir:  c.LocalDir,
		PublicURL: c.PublicURL,
	})
	if err != nil {
		log.WithError(err).Warn("存储服务初始化失败，图片上传不可用")
		return nil
	}
	return storage
}

// startServer 启动服务并在收到退出信号后优雅关闭
func startServer(c config.ServerConfig, r *gin.Engine, cleanup *task.TokenCleanupTask) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", c.Host, c.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("服务启动在 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("服务启动失败: %w", err)
	case <-quit:
	}

	log.Info("正在关闭服务...")

	timeout := c.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cleanup.Stop(ctx)
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("服务强制关闭: %w", err)
	}

	log.Info("服务已退出")
	return nil
}
