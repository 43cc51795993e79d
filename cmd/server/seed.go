package main

import (
	"storefront/backend/internal/database"
	"storefront/backend/internal/seed"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample catalog (categories, products, tags) into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		if err := database.Migrate(a.db); err != nil {
			return err
		}
		_, err = seed.Run(cmd.Context(), a.db, a.log)
		return err
	},
}
