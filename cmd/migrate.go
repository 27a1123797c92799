package cmd

import (
	"category-services-backend/config"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the catalog tables",
	Long:  `Runs the schema migration for categories, services and service_price_options, including the cascading foreign keys, then exits.`,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	config.ConfigureLogging(cfg)

	db, err := config.ConnectDB(cfg)
	if err != nil {
		return err
	}
	return config.Migrate(db)
}
