package cli

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"storefront_api/internal/model"
	"storefront_api/internal/repository"
	"storefront_api/internal/service"
	"storefront_api/pkg/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeDB(db)

		if err := database.Migrate(db, model.AllModels()...); err != nil {
			return err
		}
		log.Info("数据库迁移完成")
		return nil
	},
}

var seedFile string

var seedSizesCmd = &cobra.Command{
	Use:   "seed-sizes",
	Short: "Load the size chart from a YAML file",
	Example: `  storefront seed-sizes
  storefront seed-sizes --file config/sizechart.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeDB(db)

		path := seedFile
		if path == "" {
			path = cfg.SizeChartFile
		}

		svc := service.NewSizeChartService(repository.NewStore(db))
		n, err := svc.Seed(cmd.Context(), path)
		if err != nil {
			return err
		}
		cmd.Printf("size chart seeded from %s: %d new\n", path, n)
		return nil
	},
}

func init() {
	seedSizesCmd.Flags().StringVarP(&seedFile, "file", "f", "", "size chart YAML (default: size_chart_file from config)")
}
