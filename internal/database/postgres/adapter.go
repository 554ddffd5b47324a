package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"github.com/shopforge/shopforge/internal/database/common"
)

type Adapter struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
	qb   squirrel.StatementBuilderType
}

var typeMap = map[common.ColType]string{
	common.TypeID:    "INTEGER PRIMARY KEY",
	common.TypeInt:   "INTEGER",
	common.TypeText:  "TEXT",
	common.TypeMoney: "NUMERIC(10,2)",
	common.TypeFloat: "REAL",
	common.TypeBool:  "BOOLEAN",
	common.TypeDate:  "DATE",
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (p *Adapter) Connect(ctx context.Context, url string) error {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return fmt.Errorf("failed to parse connection URL: %w", err)
	}

	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	config.MaxConns = 2
	config.MinConns = 0
	config.MaxConnLifetime = 15 * time.Minute
	config.MaxConnIdleTime = 3 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	p.pool = pool
	return nil
}

func (p *Adapter) Close() error {
	if p.tx != nil {
		p.tx.Rollback(context.Background())
		p.tx = nil
	}
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *Adapter) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Adapter) Begin(ctx context.Context) error {
	if p.tx != nil {
		return fmt.Errorf("transaction already open")
	}
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	p.tx = tx
	return nil
}

func (p *Adapter) Commit(ctx context.Context) error {
	if p.tx == nil {
		return fmt.Errorf("no open transaction")
	}
	err := p.tx.Commit(ctx)
	p.tx = nil
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback is a no-op without an open transaction so callers can defer
// it unconditionally.
func (p *Adapter) Rollback(ctx context.Context) error {
	if p.tx == nil {
		return nil
	}
	err := p.tx.Rollback(ctx)
	p.tx = nil
	return err
}

func (p *Adapter) exec(ctx context.Context, sql string, args ...interface{}) error {
	var err error
	if p.tx != nil {
		_, err = p.tx.Exec(ctx, sql, args...)
	} else {
		_, err = p.pool.Exec(ctx, sql, args...)
	}
	return err
}

func (p *Adapter) Exec(ctx context.Context, sql string, args ...interface{}) error {
	return p.exec(ctx, sql, args...)
}

func (p *Adapter) EnsureSchema(ctx context.Context, tables []*common.Table) error {
	for _, table := range tables {
		if err := p.exec(ctx, createTableSQL(table)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.Name, err)
		}
	}
	return nil
}

func (p *Adapter) DropTables(ctx context.Context, tables []*common.Table) error {
	// Reverse order so referencing tables go first.
	for i := len(tables) - 1; i >= 0; i-- {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", pq.QuoteIdentifier(tables[i].Name))
		if err := p.exec(ctx, query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", tables[i].Name, err)
		}
	}
	return nil
}

func (p *Adapter) Truncate(ctx context.Context, tableName string) error {
	query := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", pq.QuoteIdentifier(tableName))
	if err := p.exec(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", tableName, err)
	}
	return nil
}

func (p *Adapter) InsertRows(ctx context.Context, tableName string, columns []string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	builder := p.qb.Insert(tableName).Columns(columns...)
	for _, row := range rows {
		builder = builder.Values(row...)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert for %s: %w", tableName, err)
	}
	if err := p.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", tableName, err)
	}
	return nil
}

func (p *Adapter) CountRows(ctx context.Context, tableName string) (int64, error) {
	query, args, err := p.qb.Select("COUNT(*)").From(tableName).ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if p.tx != nil {
		err = p.tx.QueryRow(ctx, query, args...).Scan(&count)
	} else {
		err = p.pool.QueryRow(ctx, query, args...).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", tableName, err)
	}
	return count, nil
}

func (p *Adapter) Query(ctx context.Context, sql string, args ...interface{}) (*common.QueryResult, error) {
	var rows pgx.Rows
	var err error
	if p.tx != nil {
		rows, err = p.tx.Query(ctx, sql, args...)
	} else {
		rows, err = p.pool.Query(ctx, sql, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, field := range fields {
		columns[i] = field.Name
	}

	var results []map[string]interface{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return &common.QueryResult{Columns: columns, Rows: results}, nil
}

func (p *Adapter) Builder() squirrel.StatementBuilderType {
	return p.qb
}

func createTableSQL(table *common.Table) string {
	defs := make([]string, 0, len(table.Columns))
	for _, col := range table.Columns {
		def := pq.QuoteIdentifier(col.Name) + " " + typeMap[col.Type]
		if col.NotNull && col.Type != common.TypeID {
			def += " NOT NULL"
		}
		if col.RefTable != "" {
			def += fmt.Sprintf(" REFERENCES %s(%s)",
				pq.QuoteIdentifier(col.RefTable), pq.QuoteIdentifier(col.RefColumn))
		}
		defs = append(defs, def)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)",
		pq.QuoteIdentifier(table.Name), strings.Join(defs, ",\n\t"))
}
