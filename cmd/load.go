package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopforge/shopforge/internal/database"
	"github.com/shopforge/shopforge/internal/loader"
	"github.com/shopforge/shopforge/internal/utils"
)

var (
	loadTruncate bool
	loadBatch    int
	loadNoTx     bool
	loadProfile  string
	loadSeed     int64
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load a generated dataset into the configured database",
	Long: `Regenerate the dataset from the configured seed and bulk-insert it
into the database named by the configured environment variable. Tables
are created if missing and inserted in dependency order.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(loadProfile)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("seed") {
			cfg.Seed = loadSeed
		}
		if flags.Changed("batch") {
			cfg.Batch = loadBatch
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		if loadTruncate {
			force, _ := flags.GetBool("force")
			prompt := fmt.Sprintf("⚠️  Truncate existing rows in %s before loading?", cfg.Database.Provider)
			if !utils.AskConfirmation(prompt, force) {
				return fmt.Errorf("aborted")
			}
		}

		ds, _, err := buildDataset(cfg)
		if err != nil {
			return err
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

		result, err := loader.New(adapter, loader.Options{
			BatchSize:     cfg.Batch,
			Truncate:      loadTruncate,
			NoTransaction: loadNoTx,
		}).Load(ctx, ds)
		if err != nil {
			return err
		}

		for _, table := range result.Order {
			fmt.Printf("   %s: %d rows\n", table, result.Tables[table])
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().BoolVar(&loadTruncate, "truncate", false, "Clear existing rows before loading")
	loadCmd.Flags().IntVar(&loadBatch, "batch", 0, "Rows per INSERT statement")
	loadCmd.Flags().BoolVar(&loadNoTx, "no-transaction", false, "Load without a wrapping transaction")
	loadCmd.Flags().StringVar(&loadProfile, "profile", "", "Generation profile YAML to overlay")
	loadCmd.Flags().Int64Var(&loadSeed, "seed", 0, "Random seed (0 derives one from the clock)")
}
