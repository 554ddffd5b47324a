package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shopforge/shopforge/internal/config"
	"github.com/shopforge/shopforge/template"
)

var initProvider string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new ShopForge project",
	Long:  `Create shopforge.config.json, an example environment file and the output directories in the current directory.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := template.ValidateProvider(initProvider)
		if provider != initProvider {
			color.Yellow("⚠️  Unknown provider '%s', falling back to sqlite", initProvider)
		}

		if err := config.InitializeProject(provider); err != nil {
			return err
		}

		pt := template.NewProjectTemplate(provider)

		color.Green("✅ Initialized ShopForge project for %s", pt.ProviderName())
		fmt.Println()
		fmt.Println("📁 Project structure created:")
		for _, dir := range pt.Directories() {
			fmt.Printf("   %s/\n", dir)
		}
		fmt.Println()
		fmt.Println("📝 Configuration file created:")
		fmt.Printf("   %s\n", config.FileName)
		fmt.Println()
		fmt.Printf("🚀 Next steps:\n")
		fmt.Printf("   shopforge generate   # Generate a dataset into data/\n")
		fmt.Printf("   shopforge load       # Load it into %s\n", pt.ProviderName())
		fmt.Printf("   shopforge report     # Show order totals from the database\n")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initProvider, "provider", "sqlite", "Database provider (postgresql, mysql, sqlite)")
}
