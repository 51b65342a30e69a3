package commands

import (
	"os"

	"github.com/spf13/cobra"
)

func Execute() {
	rootCmd := &cobra.Command{
		Use:   "lodge",
		Short: "Lodge booking backend",
		Long:  "Public booking API and back office for the lodge: rooms, payments, front-desk guests and receipts.",
	}

	rootCmd.AddCommand(serveCmd(), migrateCmd(), quoteCmd(), receiptCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
