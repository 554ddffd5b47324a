package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql"

	"github.com/shopforge/shopforge/internal/database/common"
)

type Adapter struct {
	db *sql.DB
	tx *sql.Tx
	qb squirrel.StatementBuilderType
}

var typeMap = map[common.ColType]string{
	common.TypeID:    "INTEGER PRIMARY KEY",
	common.TypeInt:   "INTEGER",
	common.TypeText:  "TEXT",
	common.TypeMoney: "DECIMAL(10,2)",
	common.TypeFloat: "FLOAT",
	common.TypeBool:  "BOOLEAN",
	common.TypeDate:  "DATE",
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Connect accepts either a driver DSN or a mysql:// URL, rewriting the
// latter into the tcp() form the driver expects.
func (m *Adapter) Connect(ctx context.Context, url string) error {
	dsn := url
	if strings.HasPrefix(url, "mysql://") {
		dsn = strings.TrimPrefix(url, "mysql://")

		atIndex := strings.Index(dsn, "@")
		if atIndex > 0 {
			credentials := dsn[:atIndex]
			remainder := dsn[atIndex+1:]

			slashIndex := strings.Index(remainder, "/")
			if slashIndex > 0 {
				hostPort := remainder[:slashIndex]
				dbAndParams := remainder[slashIndex+1:]

				dbAndParams = strings.ReplaceAll(dbAndParams, "ssl-mode=REQUIRED", "tls=skip-verify")
				dbAndParams = strings.ReplaceAll(dbAndParams, "ssl-mode=DISABLED", "tls=false")
				dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=require", "tls=skip-verify")
				dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=disable", "tls=false")

				dsn = fmt.Sprintf("%s@tcp(%s)/%s", credentials, hostPort, dbAndParams)
			}
		}
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(3 * time.Minute)

	m.db = db
	return nil
}

func (m *Adapter) Close() error {
	if m.tx != nil {
		m.tx.Rollback()
		m.tx = nil
	}
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *Adapter) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *Adapter) Begin(ctx context.Context) error {
	if m.tx != nil {
		return fmt.Errorf("transaction already open")
	}
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	m.tx = tx
	return nil
}

func (m *Adapter) Commit(ctx context.Context) error {
	if m.tx == nil {
		return fmt.Errorf("no open transaction")
	}
	err := m.tx.Commit()
	m.tx = nil
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (m *Adapter) Rollback(ctx context.Context) error {
	if m.tx == nil {
		return nil
	}
	err := m.tx.Rollback()
	m.tx = nil
	return err
}

func (m *Adapter) exec(ctx context.Context, query string, args ...interface{}) error {
	var err error
	if m.tx != nil {
		_, err = m.tx.ExecContext(ctx, query, args...)
	} else {
		_, err = m.db.ExecContext(ctx, query, args...)
	}
	return err
}

func (m *Adapter) Exec(ctx context.Context, query string, args ...interface{}) error {
	return m.exec(ctx, query, args...)
}

func (m *Adapter) EnsureSchema(ctx context.Context, tables []*common.Table) error {
	for _, table := range tables {
		if err := m.exec(ctx, createTableSQL(table)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.Name, err)
		}
	}
	return nil
}

func (m *Adapter) DropTables(ctx context.Context, tables []*common.Table) error {
	for i := len(tables) - 1; i >= 0; i-- {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(tables[i].Name))
		if err := m.exec(ctx, query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", tables[i].Name, err)
		}
	}
	return nil
}

// Truncate deletes rather than truncates: MySQL refuses TRUNCATE on
// tables referenced by foreign keys even when the children are empty.
func (m *Adapter) Truncate(ctx context.Context, tableName string) error {
	if err := m.exec(ctx, fmt.Sprintf("DELETE FROM %s", quoteIdent(tableName))); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", tableName, err)
	}
	m.exec(ctx, fmt.Sprintf("ALTER TABLE %s AUTO_INCREMENT = 1", quoteIdent(tableName)))
	return nil
}

func (m *Adapter) InsertRows(ctx context.Context, tableName string, columns []string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	builder := m.qb.Insert(tableName).Columns(columns...)
	for _, row := range rows {
		builder = builder.Values(row...)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert for %s: %w", tableName, err)
	}
	if err := m.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", tableName, err)
	}
	return nil
}

func (m *Adapter) CountRows(ctx context.Context, tableName string) (int64, error) {
	query, args, err := m.qb.Select("COUNT(*)").From(tableName).ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if m.tx != nil {
		err = m.tx.QueryRowContext(ctx, query, args...).Scan(&count)
	} else {
		err = m.db.QueryRowContext(ctx, query, args...).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", tableName, err)
	}
	return count, nil
}

func (m *Adapter) Query(ctx context.Context, query string, args ...interface{}) (*common.QueryResult, error) {
	var rows *sql.Rows
	var err error
	if m.tx != nil {
		rows, err = m.tx.QueryContext(ctx, query, args...)
	} else {
		rows, err = m.db.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	return common.CollectRows(rows)
}

func (m *Adapter) Builder() squirrel.StatementBuilderType {
	return m.qb
}

func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// createTableSQL emits foreign keys as table-level constraints; MySQL
// parses inline column REFERENCES but silently ignores them.
func createTableSQL(table *common.Table) string {
	defs := make([]string, 0, len(table.Columns))
	for _, col := range table.Columns {
		def := quoteIdent(col.Name) + " " + typeMap[col.Type]
		if col.NotNull && col.Type != common.TypeID {
			def += " NOT NULL"
		}
		defs = append(defs, def)
	}
	for _, col := range table.Columns {
		if col.RefTable != "" {
			defs = append(defs, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s(%s)",
				quoteIdent(col.Name), quoteIdent(col.RefTable), quoteIdent(col.RefColumn)))
		}
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)",
		quoteIdent(table.Name), strings.Join(defs, ",\n\t"))
}
