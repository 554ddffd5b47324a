// Package loader writes generated datasets into a relational store
// through a provider adapter. Tables load in dependency order inside a
// single transaction, so a failed load leaves the store untouched.
package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/shopforge/shopforge/internal/database"
	"github.com/shopforge/shopforge/internal/database/common"
	"github.com/shopforge/shopforge/internal/dataset"
)

type Options struct {
	// BatchSize caps the rows per INSERT statement. Zero means 100.
	BatchSize int
	// Truncate clears existing rows, children first, before loading.
	Truncate bool
	// NoTransaction loads without a wrapping transaction.
	NoTransaction bool
}

// Result reports what a load wrote.
type Result struct {
	Tables  map[string]int
	Order   []string
	Elapsed time.Duration
}

type Loader struct {
	adapter database.Adapter
	opts    Options
}

func New(adapter database.Adapter, opts Options) *Loader {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}
	return &Loader{adapter: adapter, opts: opts}
}

func (l *Loader) Load(ctx context.Context, ds *dataset.Dataset) (*Result, error) {
	if !ds.Complete() {
		return nil, fmt.Errorf("cannot load: %w", dataset.ErrIncomplete)
	}

	start := time.Now()
	tables := common.Schema()
	for _, table := range tables {
		if !common.IsValidIdentifier(table.Name) {
			return nil, fmt.Errorf("invalid table name: %s", table.Name)
		}
	}

	order, err := common.BuildInsertionOrder(tables)
	if err != nil {
		return nil, fmt.Errorf("failed to build insertion order: %w", err)
	}

	color.Cyan("📦 Loading dataset into %d tables...", len(tables))

	if err := l.adapter.EnsureSchema(ctx, tables); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	if l.opts.Truncate {
		if err := l.truncate(ctx, order); err != nil {
			return nil, err
		}
	}

	inTransaction := false
	if !l.opts.NoTransaction {
		if err := l.adapter.Begin(ctx); err != nil {
			color.Yellow("⚠️  Could not start transaction: %v (continuing without transaction)", err)
		} else {
			inTransaction = true
		}
	}

	result := &Result{Tables: make(map[string]int, len(order)), Order: order}
	byName := make(map[string]*common.Table, len(tables))
	for _, table := range tables {
		byName[table.Name] = table
	}

	for _, name := range order {
		rows := tableRows(ds, name)
		color.Cyan("  📝 Loading %s (%d rows)...", name, len(rows))

		if err := l.insertBatches(ctx, byName[name], rows); err != nil {
			if inTransaction {
				if rbErr := l.adapter.Rollback(ctx); rbErr != nil {
					return nil, fmt.Errorf("load failed and rollback failed: %v (original: %w)", rbErr, err)
				}
				color.Yellow("🔄 Transaction rolled back")
			}
			return nil, fmt.Errorf("failed to load table %s: %w", name, err)
		}
		result.Tables[name] = len(rows)
	}

	if inTransaction {
		if err := l.adapter.Commit(ctx); err != nil {
			l.adapter.Rollback(ctx)
			return nil, err
		}
	}

	result.Elapsed = time.Since(start)
	color.Green("✅ Loaded %d rows in %s", result.Total(), result.Elapsed.Round(time.Millisecond))
	return result, nil
}

func (r *Result) Total() int {
	total := 0
	for _, n := range r.Tables {
		total += n
	}
	return total
}

// truncate clears tables in reverse insertion order so children go
// before the tables they reference.
func (l *Loader) truncate(ctx context.Context, order []string) error {
	color.Yellow("🗑️  Truncating tables...")
	for i := len(order) - 1; i >= 0; i-- {
		if err := l.adapter.Truncate(ctx, order[i]); err != nil {
			return fmt.Errorf("failed to truncate tables: %w", err)
		}
	}
	return nil
}

func (l *Loader) insertBatches(ctx context.Context, table *common.Table, rows [][]interface{}) error {
	columns := table.ColumnNames()
	for start := 0; start < len(rows); start += l.opts.BatchSize {
		end := start + l.opts.BatchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := l.adapter.InsertRows(ctx, table.Name, columns, rows[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// tableRows flattens one collection into rows matching the table's
// column order.
func tableRows(ds *dataset.Dataset, table string) [][]interface{} {
	switch table {
	case "customers":
		rows := make([][]interface{}, len(ds.Customers))
		for i, c := range ds.Customers {
			rows[i] = []interface{}{
				c.CustomerID, c.FirstName, c.LastName, c.Email, c.Phone,
				c.Address, c.City, c.State, c.ZipCode, c.Country, c.DateJoined,
			}
		}
		return rows
	case "products":
		rows := make([][]interface{}, len(ds.Products))
		for i, p := range ds.Products {
			rows[i] = []interface{}{
				p.ProductID, p.ProductName, p.Description, p.Category, p.Price,
				p.Cost, p.SKU, p.StockQuantity, p.Rating, p.CreatedDate,
			}
		}
		return rows
	case "orders":
		rows := make([][]interface{}, len(ds.Orders))
		for i, o := range ds.Orders {
			rows[i] = []interface{}{
				o.OrderID, o.CustomerID, o.OrderDate, o.Status, o.PaymentMethod,
				o.ShippingAddr, o.ShippingCity, o.ShippingState, o.ShippingZip, o.ShippingCost,
			}
		}
		return rows
	case "order_items":
		rows := make([][]interface{}, len(ds.OrderItems))
		for i, item := range ds.OrderItems {
			rows[i] = []interface{}{
				item.ItemID, item.OrderID, item.ProductID, item.Quantity,
				item.UnitPrice, item.TotalPrice,
			}
		}
		return rows
	case "reviews":
		rows := make([][]interface{}, len(ds.Reviews))
		for i, r := range ds.Reviews {
			rows[i] = []interface{}{
				r.ReviewID, r.ProductID, r.CustomerID, r.Rating,
				r.ReviewText, r.ReviewDate, r.VerifiedPurchase,
			}
		}
		return rows
	}
	return nil
}
