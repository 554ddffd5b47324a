package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shopforge/shopforge/internal/utils"
)

var (
	sqlQueryFlag bool
	sqlFileFlag  bool
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query-or-file>",
	Short: "Run raw SQL against the configured database",
	Long: `Run a SQL query or file against the loaded database.

SELECT-style statements print a result table. Anything else executes
statement by statement. Statements that drop or delete data ask for
confirmation unless --force is set.

Examples:
  shopforge sql "SELECT COUNT(*) FROM orders"
  shopforge sql reports/top_products.sql`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		return utils.RunRaw(cmd.Context(), args[0], sqlQueryFlag, sqlFileFlag, force)
	},
}

func init() {
	rootCmd.AddCommand(sqlCmd)
	sqlCmd.Flags().BoolVarP(&sqlQueryFlag, "query", "q", false, "Treat the argument as a SQL query")
	sqlCmd.Flags().BoolVar(&sqlFileFlag, "file", false, "Treat the argument as a SQL file")
}
