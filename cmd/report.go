package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopforge/shopforge/internal/config"
	"github.com/shopforge/shopforge/internal/database"
	"github.com/shopforge/shopforge/internal/report"
)

var reportLimit int

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show order totals from the loaded database",
	Long: `Query the loaded database for per-order totals: customer, date, item
count and order total, newest orders first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		dbURL, err := cfg.GetDatabaseURL()
		if err != nil {
			return err
		}

		adapter, err := database.NewAdapter(cfg.Database.Provider)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if err := adapter.Connect(ctx, dbURL); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer adapter.Close()

		rows, err := report.OrderTotals(ctx, adapter, reportLimit)
		if err != nil {
			return fmt.Errorf("failed to query order totals: %w", err)
		}

		report.Render(rows)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().IntVar(&reportLimit, "limit", 20, "Maximum orders to show (0 for all)")
}
