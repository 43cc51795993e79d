package main

import (
	"fmt"
	"os"

	"storefront/backend/internal/config"
	"storefront/backend/internal/database"
	"storefront/backend/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront catalog API for product categories and tags",
	Long: `Storefront serves the /api/categories and /api/tags REST resources.

Configuration is read from a .env file in --config-dir and from environment
variables (DATABASE_DRIVER, DATABASE_URL, SERVER_ADDRESS, LOG_LEVEL, GIN_MODE,
CORS_ALLOWED_ORIGINS).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory containing the .env file")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

// @title           Storefront API
// @version         1.0
// @description     Catalog API for product categories and tags.
// @host            localhost:8080
// @BasePath        /api
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds what every subcommand needs.
type app struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

// bootstrap loads configuration, builds the logger and connects to the database.
func bootstrap() (*app, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if cfg.ConfigFile == "" {
		log.Warn(".env file not found, loading from environment variables")
	}

	db, err := database.Connect(cfg, log)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, log: log, db: db}, nil
}

func (a *app) close() {
	if err := database.Close(a.db); err != nil {
		a.log.Warn("Failed to close database", zap.Error(err))
	}
	_ = a.log.Sync()
}
