package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shopforge/shopforge/internal/config"
	"github.com/shopforge/shopforge/internal/dataset"
	"github.com/shopforge/shopforge/internal/export"
)

var (
	genCustomers   int
	genProducts    int
	genOrders      int
	genReviews     int
	genSeed        int64
	genFormats     []string
	genOut         string
	genProfile     string
	genVerified    string
	genPriceSpread bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic dataset and export it",
	Long: `Generate customers, products, orders, order items and reviews with
referentially intact keys, then export them in the configured formats.

The same seed always produces the same dataset. Overrides apply in
order: config file, then --profile, then flags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(genProfile)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("customers") {
			cfg.Counts.Customers = genCustomers
		}
		if flags.Changed("products") {
			cfg.Counts.Products = genProducts
		}
		if flags.Changed("orders") {
			cfg.Counts.Orders = genOrders
		}
		if flags.Changed("reviews") {
			cfg.Counts.Reviews = genReviews
		}
		if flags.Changed("seed") {
			cfg.Seed = genSeed
		}
		if flags.Changed("format") {
			cfg.Formats = genFormats
		}
		if flags.Changed("out") {
			cfg.OutputDir = genOut
		}
		if flags.Changed("verified") {
			cfg.Policies.VerifiedPurchase = genVerified
		}
		if flags.Changed("price-spread") {
			cfg.Policies.PriceSpread = genPriceSpread
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if err := cfg.EnsureDirectories(); err != nil {
			return err
		}

		ds, seed, err := buildDataset(cfg)
		if err != nil {
			return err
		}

		summary := ds.Summary()
		fmt.Println()
		fmt.Printf("   👥 Customers: %d\n", summary.Customers)
		fmt.Printf("   📦 Products: %d\n", summary.Products)
		fmt.Printf("   🛒 Orders: %d (%d items)\n", summary.Orders, summary.OrderItems)
		fmt.Printf("   ⭐ Reviews: %d\n", summary.Reviews)
		fmt.Printf("   💰 Total revenue: %s\n", summary.TotalRevenue.StringFixed(2))
		fmt.Println()

		manifest, err := export.Run(cmd.Context(), ds, export.Options{
			Dir:     cfg.OutputDir,
			Formats: cfg.Formats,
			Seed:    seed,
			Version: Version,
		})
		if err != nil {
			return fmt.Errorf("failed to export dataset: %w", err)
		}

		color.Green("✅ Exported %d files to %s", len(manifest.Files)+1, cfg.OutputDir)
		for _, file := range manifest.Files {
			fmt.Printf("   📄 %s\n", file)
		}
		fmt.Printf("   📄 manifest.json (run %s)\n", manifest.RunID)

		return nil
	},
}

// resolveConfig loads the project configuration and applies a profile
// overlay when one is given.
func resolveConfig(profilePath string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if profilePath != "" {
		profile, err := config.LoadProfile(profilePath)
		if err != nil {
			return nil, err
		}
		profile.Apply(cfg)
		color.Cyan("📋 Applied profile %s", profilePath)
	}

	return cfg, nil
}

// buildDataset generates the full dataset from the configuration and
// returns the seed actually used, so callers can record it.
func buildDataset(cfg *config.Config) (*dataset.Dataset, int64, error) {
	opts, err := cfg.GeneratorOptions()
	if err != nil {
		return nil, 0, err
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
		color.Yellow("🎲 No seed pinned, using %d", opts.Seed)
	}

	color.Cyan("🧪 Generating dataset (seed %d)...", opts.Seed)

	ds := dataset.New()
	gen := dataset.NewGenerator(opts)
	if err := gen.GenerateAll(ds, cfg.DatasetCounts()); err != nil {
		return nil, 0, fmt.Errorf("failed to generate dataset: %w", err)
	}

	return ds, opts.Seed, nil
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntVar(&genCustomers, "customers", 0, "Number of customers to generate")
	generateCmd.Flags().IntVar(&genProducts, "products", 0, "Number of products to generate")
	generateCmd.Flags().IntVar(&genOrders, "orders", 0, "Number of orders to generate")
	generateCmd.Flags().IntVar(&genReviews, "reviews", 0, "Number of reviews to generate")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "Random seed (0 derives one from the clock)")
	generateCmd.Flags().StringSliceVar(&genFormats, "format", nil, "Export formats: csv, json, sqlite")
	generateCmd.Flags().StringVar(&genOut, "out", "", "Output directory")
	generateCmd.Flags().StringVar(&genProfile, "profile", "", "Generation profile YAML to overlay")
	generateCmd.Flags().StringVar(&genVerified, "verified", "", "Verified purchase policy: purchase, product, random")
	generateCmd.Flags().BoolVar(&genPriceSpread, "price-spread", false, "Jitter item unit prices around the catalog price")
}
