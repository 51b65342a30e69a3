package commands

import (
	"fmt"

	"lodge-backend/config"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema and seed defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if _, err := config.ConnectDatabase(cfg); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%s)\n", cfg.DBDriver)
			return nil
		},
	}
}
