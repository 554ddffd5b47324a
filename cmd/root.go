package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.4.2"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════╗",
		"║   ███████╗██╗  ██╗ ██████╗ ██████╗               ║",
		"║   ██╔════╝██║  ██║██╔═══██╗██╔══██╗              ║",
		"║   ███████╗███████║██║   ██║██████╔╝              ║",
		"║   ╚════██║██╔══██║██║   ██║██╔═══╝               ║",
		"║   ███████║██║  ██║╚██████╔╝██║ █▀▀ █▀█ █▀█ █▀▀   ║",
		"║   ╚══════╝╚═╝  ╚═╝ ╚═════╝ ╚═╝ █▀  █▄█ ██▄ ██▄   ║",
		"║                                                  ║",
		"║        🛒 Synthetic E-Commerce Datasets          ║",
		"╚══════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                  ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "shopforge",
	Short: "Generate, export and load synthetic e-commerce datasets",
	Long: `
ShopForge generates reproducible synthetic e-commerce datasets: customers,
products, orders, order items and reviews with referentially intact keys
and exact money arithmetic.

Datasets export to CSV, JSON or a ready-to-query SQLite file, and load
directly into a database for testing queries against realistic data.

Database Support:
- PostgreSQL
- MySQL
- SQLite (embedded, zero setup)`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("ShopForge CLI version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./shopforge.config.json)")
	rootCmd.PersistentFlags().BoolP("force", "f", false, "Skip confirmations")

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("shopforge.config")
	}

	viper.AutomaticEnv()

	// A missing config file is fine, defaults cover a bare directory.
	_ = viper.ReadInConfig()
}
