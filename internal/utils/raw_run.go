// Package utils holds the raw SQL runner shared by the CLI plus small
// SQL text helpers.
package utils

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shopforge/shopforge/internal/config"
	"github.com/shopforge/shopforge/internal/database"
	"github.com/shopforge/shopforge/internal/database/common"
)

// destructiveKeywords trigger a confirmation before execution.
var destructiveKeywords = []string{"DROP", "TRUNCATE", "DELETE"}

// RunRaw executes SQL from a literal query or a file against the
// configured database. SELECT-style statements render a result table;
// anything else executes statement by statement.
func RunRaw(ctx context.Context, input string, queryFlag, fileFlag, force bool) error {
	sqlContent, isFile, err := resolveInput(input, queryFlag, fileFlag)
	if err != nil {
		return err
	}

	query := strings.TrimSpace(sqlContent)
	if query == "" {
		if isFile {
			return fmt.Errorf("SQL file is empty: %s", input)
		}
		return fmt.Errorf("SQL query is empty")
	}

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

	if err := adapter.Connect(ctx, dbURL); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer adapter.Close()

	if isFile {
		fmt.Printf("📄 Executing SQL file: %s\n", input)
	} else {
		fmt.Printf("📄 Executing SQL query\n")
	}
	fmt.Printf("🎯 Database: %s\n", cfg.Database.Provider)
	fmt.Println()

	if isSelectQuery(query) {
		fmt.Println("⚡ Executing query...")
		result, err := adapter.Query(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}

		if result.IsEmpty() {
			fmt.Println("✅ Query executed successfully")
			fmt.Println("📊 No rows returned")
			return nil
		}

		fmt.Printf("✅ Query executed successfully\n")
		fmt.Printf("📊 %d row(s) returned\n\n", len(result.Rows))

		displayResultsTable(result.Columns, result.Rows)
		return nil
	}

	statements := SplitStatements(query)
	if len(statements) == 0 {
		return fmt.Errorf("no SQL statements found")
	}

	if hasDestructiveStatement(statements) {
		if !AskConfirmation("⚠️  Statements modify or drop data. Continue?", force) {
			return fmt.Errorf("aborted")
		}
	}

	fmt.Printf("📝 Found %d SQL statement(s)\n", len(statements))
	fmt.Println()

	for i, statement := range statements {
		fmt.Printf("⚡ Executing statement %d...\n", i+1)

		if err := adapter.Exec(ctx, statement); err != nil {
			return fmt.Errorf("failed to execute statement %d: %w", i+1, err)
		}

		fmt.Printf("✅ Statement %d executed successfully\n", i+1)
	}

	fmt.Println()
	fmt.Printf("🎉 All statements executed successfully!\n")

	return nil
}

// resolveInput decides whether input is a literal query or a file path.
// Without an explicit flag, an existing file wins.
func resolveInput(input string, queryFlag, fileFlag bool) (string, bool, error) {
	if queryFlag {
		return input, false, nil
	}

	if fileFlag {
		content, err := os.ReadFile(input)
		if err != nil {
			return "", false, fmt.Errorf("failed to read SQL file %s: %w", input, err)
		}
		return string(content), true, nil
	}

	if _, err := os.Stat(input); err == nil {
		content, err := os.ReadFile(input)
		if err != nil {
			return "", false, fmt.Errorf("failed to read SQL file %s: %w", input, err)
		}
		return string(content), true, nil
	}

	return input, false, nil
}

func isSelectQuery(query string) bool {
	queryUpper := strings.ToUpper(query)
	return strings.HasPrefix(queryUpper, "SELECT") ||
		strings.HasPrefix(queryUpper, "SHOW") ||
		strings.HasPrefix(queryUpper, "DESCRIBE") ||
		strings.HasPrefix(queryUpper, "EXPLAIN") ||
		strings.HasPrefix(queryUpper, "WITH")
}

func hasDestructiveStatement(statements []string) bool {
	for _, statement := range statements {
		for _, keyword := range destructiveKeywords {
			if ContainsSQLKeyword(statement, keyword) {
				return true
			}
		}
	}
	return false
}

func displayResultsTable(columns []string, rows []map[string]interface{}) {
	if len(rows) == 0 {
		return
	}

	colWidths := make(map[string]int)
	for _, col := range columns {
		colWidths[col] = len(col)
	}

	for _, row := range rows {
		for _, col := range columns {
			val := common.DisplayValue(row[col])
			if len(val) > colWidths[col] {
				colWidths[col] = len(val)
			}
		}
	}

	fmt.Print("┌")
	for i, col := range columns {
		fmt.Print(strings.Repeat("─", colWidths[col]+2))
		if i < len(columns)-1 {
			fmt.Print("┬")
		}
	}
	fmt.Println("┐")

	fmt.Print("│")
	for _, col := range columns {
		fmt.Printf(" %-*s │", colWidths[col], col)
	}
	fmt.Println()

	fmt.Print("├")
	for i, col := range columns {
		fmt.Print(strings.Repeat("─", colWidths[col]+2))
		if i < len(columns)-1 {
			fmt.Print("┼")
		}
	}
	fmt.Println("┤")

	for _, row := range rows {
		fmt.Print("│")
		for _, col := range columns {
			val := common.DisplayValue(row[col])
			fmt.Printf(" %-*s │", colWidths[col], val)
		}
		fmt.Println()
	}

	fmt.Print("└")
	for i, col := range columns {
		fmt.Print(strings.Repeat("─", colWidths[col]+2))
		if i < len(columns)-1 {
			fmt.Print("┴")
		}
	}
	fmt.Println("┘")
}
