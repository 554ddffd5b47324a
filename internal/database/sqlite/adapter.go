package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/shopforge/shopforge/internal/database/common"
)

type Adapter struct {
	db   *sql.DB
	tx   *sql.Tx
	qb   squirrel.StatementBuilderType
	path string
}

var typeMap = map[common.ColType]string{
	common.TypeID:    "INTEGER PRIMARY KEY",
	common.TypeInt:   "INTEGER",
	common.TypeText:  "TEXT",
	common.TypeMoney: "NUMERIC",
	common.TypeFloat: "REAL",
	common.TypeBool:  "BOOLEAN",
	common.TypeDate:  "TEXT",
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Connect opens the database file, creating it if missing. Both plain
// paths and sqlite:// URLs are accepted.
func (s *Adapter) Connect(ctx context.Context, url string) error {
	dbPath := strings.TrimPrefix(url, "sqlite://")

	s.path = dbPath
	if idx := strings.Index(s.path, "?"); idx > 0 {
		s.path = s.path[:idx]
	}

	if !strings.Contains(dbPath, "?") {
		dbPath += "?cache=shared&_journal_mode=WAL&_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(5 * time.Minute)

	s.db = db
	return nil
}

func (s *Adapter) Close() error {
	if s.tx != nil {
		s.tx.Rollback()
		s.tx = nil
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Adapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Path returns the database file backing this adapter.
func (s *Adapter) Path() string {
	return s.path
}

func (s *Adapter) Begin(ctx context.Context) error {
	if s.tx != nil {
		return fmt.Errorf("transaction already open")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	s.tx = tx
	return nil
}

func (s *Adapter) Commit(ctx context.Context) error {
	if s.tx == nil {
		return fmt.Errorf("no open transaction")
	}
	err := s.tx.Commit()
	s.tx = nil
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Adapter) Rollback(ctx context.Context) error {
	if s.tx == nil {
		return nil
	}
	err := s.tx.Rollback()
	s.tx = nil
	return err
}

func (s *Adapter) exec(ctx context.Context, query string, args ...interface{}) error {
	var err error
	if s.tx != nil {
		_, err = s.tx.ExecContext(ctx, query, args...)
	} else {
		_, err = s.db.ExecContext(ctx, query, args...)
	}
	return err
}

func (s *Adapter) Exec(ctx context.Context, query string, args ...interface{}) error {
	return s.exec(ctx, query, args...)
}

func (s *Adapter) EnsureSchema(ctx context.Context, tables []*common.Table) error {
	for _, table := range tables {
		if err := s.exec(ctx, createTableSQL(table)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.Name, err)
		}
	}
	return nil
}

func (s *Adapter) DropTables(ctx context.Context, tables []*common.Table) error {
	for i := len(tables) - 1; i >= 0; i-- {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(tables[i].Name))
		if err := s.exec(ctx, query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", tables[i].Name, err)
		}
	}
	return nil
}

func (s *Adapter) Truncate(ctx context.Context, tableName string) error {
	if err := s.exec(ctx, fmt.Sprintf("DELETE FROM %s", quoteIdent(tableName))); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", tableName, err)
	}
	// Reset AUTOINCREMENT counters; the table is absent unless one exists.
	s.exec(ctx, "DELETE FROM sqlite_sequence WHERE name = ?", tableName)
	return nil
}

func (s *Adapter) InsertRows(ctx context.Context, tableName string, columns []string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	builder := s.qb.Insert(tableName).Columns(columns...)
	for _, row := range rows {
		builder = builder.Values(row...)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert for %s: %w", tableName, err)
	}
	if err := s.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", tableName, err)
	}
	return nil
}

func (s *Adapter) CountRows(ctx context.Context, tableName string) (int64, error) {
	query, args, err := s.qb.Select("COUNT(*)").From(tableName).ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if s.tx != nil {
		err = s.tx.QueryRowContext(ctx, query, args...).Scan(&count)
	} else {
		err = s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", tableName, err)
	}
	return count, nil
}

func (s *Adapter) Query(ctx context.Context, query string, args ...interface{}) (*common.QueryResult, error) {
	var rows *sql.Rows
	var err error
	if s.tx != nil {
		rows, err = s.tx.QueryContext(ctx, query, args...)
	} else {
		rows, err = s.db.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	return common.CollectRows(rows)
}

func (s *Adapter) Builder() squirrel.StatementBuilderType {
	return s.qb
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func createTableSQL(table *common.Table) string {
	defs := make([]string, 0, len(table.Columns))
	for _, col := range table.Columns {
		def := quoteIdent(col.Name) + " " + typeMap[col.Type]
		if col.NotNull && col.Type != common.TypeID {
			def += " NOT NULL"
		}
		if col.RefTable != "" {
			def += fmt.Sprintf(" REFERENCES %s(%s)", quoteIdent(col.RefTable), quoteIdent(col.RefColumn))
		}
		defs = append(defs, def)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)",
		quoteIdent(table.Name), strings.Join(defs, ",\n\t"))
}
