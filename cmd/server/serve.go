package main

import (
	"os/signal"
	"syscall"

	"storefront/backend/internal/database"
	"storefront/backend/internal/repository"
	"storefront/backend/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the schema and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		if err := database.Migrate(a.db); err != nil {
			return err
		}
		a.log.Info("Database migrated successfully")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := server.New(a.cfg, a.log,
			repository.NewCategoryRepository(a.db),
			repository.NewTagRepository(a.db),
		)
		a.log.Info("Swagger UI is available", zap.String("path", "/swagger/index.html"))
		return srv.Run(ctx)
	},
}
