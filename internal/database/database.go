// Package database selects a provider adapter for loading and querying
// generated datasets. Adapters share one interface so the loader and
// report layers stay provider-agnostic.
package database

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/shopforge/shopforge/internal/database/common"
	"github.com/shopforge/shopforge/internal/database/mysql"
	"github.com/shopforge/shopforge/internal/database/postgres"
	"github.com/shopforge/shopforge/internal/database/sqlite"
)

type Adapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	// Schema management
	EnsureSchema(ctx context.Context, tables []*common.Table) error
	DropTables(ctx context.Context, tables []*common.Table) error

	// Data operations. InsertRows batches all rows into one statement.
	Truncate(ctx context.Context, tableName string) error
	InsertRows(ctx context.Context, tableName string, columns []string, rows [][]interface{}) error
	CountRows(ctx context.Context, tableName string) (int64, error)

	// Transactions. After Begin, writes run inside the transaction
	// until Commit or Rollback.
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// Query materializes a read statement. Exec runs a statement that
	// returns no rows.
	Query(ctx context.Context, sql string, args ...interface{}) (*common.QueryResult, error)
	Exec(ctx context.Context, sql string, args ...interface{}) error

	// Builder returns a statement builder preconfigured with the
	// provider's placeholder format.
	Builder() squirrel.StatementBuilderType
}

func NewAdapter(provider string) (Adapter, error) {
	switch provider {
	case "postgresql", "postgres":
		return postgres.New(), nil
	case "mysql":
		return mysql.New(), nil
	case "sqlite", "sqlite3":
		return sqlite.New(), nil
	default:
		return nil, fmt.Errorf("unsupported database provider %q (want postgresql, mysql or sqlite)", provider)
	}
}
