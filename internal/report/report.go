// Package report runs the stock aggregation over a loaded store: one
// row per order with the customer's name, item count and summed total,
// newest orders first.
package report

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/shopforge/shopforge/internal/database"
)

type Row struct {
	OrderID      int64           `json:"order_id"`
	CustomerName string          `json:"customer_name"`
	OrderDate    string          `json:"order_date"`
	Items        int64           `json:"items"`
	OrderTotal   decimal.Decimal `json:"order_total"`
}

// OrderTotals aggregates loaded orders, ordered by order_date
// descending with order_id breaking date ties. limit <= 0 returns
// every order.
func OrderTotals(ctx context.Context, adapter database.Adapter, limit int) ([]Row, error) {
	builder := adapter.Builder().
		Select(
			"o.order_id",
			"c.first_name",
			"c.last_name",
			"o.order_date",
			"COUNT(i.item_id) AS items",
			"SUM(i.total_price) AS order_total",
		).
		From("orders o").
		Join("customers c ON c.customer_id = o.customer_id").
		Join("order_items i ON i.order_id = o.order_id").
		GroupBy("o.order_id", "c.first_name", "c.last_name", "o.order_date").
		OrderBy("o.order_date DESC", "o.order_id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build report query: %w", err)
	}

	result, err := adapter.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to run report query: %w", err)
	}

	rows := make([]Row, 0, len(result.Rows))
	for _, raw := range result.Rows {
		orderID, err := toInt64(raw["order_id"])
		if err != nil {
			return nil, fmt.Errorf("bad order_id: %w", err)
		}
		items, err := toInt64(raw["items"])
		if err != nil {
			return nil, fmt.Errorf("bad item count for order %d: %w", orderID, err)
		}
		total, err := toDecimal(raw["order_total"])
		if err != nil {
			return nil, fmt.Errorf("bad order total for order %d: %w", orderID, err)
		}
		date, err := toDateString(raw["order_date"])
		if err != nil {
			return nil, fmt.Errorf("bad order date for order %d: %w", orderID, err)
		}

		rows = append(rows, Row{
			OrderID:      orderID,
			CustomerName: toString(raw["first_name"]) + " " + toString(raw["last_name"]),
			OrderDate:    date,
			Items:        items,
			OrderTotal:   total.Round(2),
		})
	}
	return rows, nil
}

// Render prints rows as an aligned table. Widths adapt to the data.
func Render(rows []Row) {
	if len(rows) == 0 {
		color.Yellow("⚠️  No orders to report")
		return
	}

	nameWidth, dateWidth := len("CUSTOMER"), len("DATE")
	for _, row := range rows {
		if len(row.CustomerName) > nameWidth {
			nameWidth = len(row.CustomerName)
		}
		if len(row.OrderDate) > dateWidth {
			dateWidth = len(row.OrderDate)
		}
	}

	header := color.New(color.FgCyan, color.Bold)
	header.Printf("%8s  %-*s  %-*s  %5s  %12s\n", "ORDER", nameWidth, "CUSTOMER", dateWidth, "DATE", "ITEMS", "TOTAL")
	for _, row := range rows {
		fmt.Printf("%8d  %-*s  %-*s  %5d  %12s\n",
			row.OrderID, nameWidth, row.CustomerName, dateWidth, row.OrderDate,
			row.Items, row.OrderTotal.StringFixed(2))
	}
}

// Drivers disagree on scan types: sqlite hands back int64/float64, the
// mysql text protocol strings, pgx typed values implementing
// driver.Valuer. The coercions below flatten those differences.

func toInt64(v interface{}) (int64, error) {
	switch val := v.(type) {
	case int64:
		return val, nil
	case int32:
		return int64(val), nil
	case int:
		return int64(val), nil
	case float64:
		return int64(val), nil
	case string:
		return strconv.ParseInt(val, 10, 64)
	case []byte:
		return strconv.ParseInt(string(val), 10, 64)
	case driver.Valuer:
		inner, err := val.Value()
		if err != nil {
			return 0, err
		}
		return toInt64(inner)
	default:
		return 0, fmt.Errorf("unexpected integer type %T", v)
	}
}

func toDecimal(v interface{}) (decimal.Decimal, error) {
	switch val := v.(type) {
	case string:
		return decimal.NewFromString(val)
	case []byte:
		return decimal.NewFromString(string(val))
	case float64:
		return decimal.NewFromFloat(val), nil
	case int64:
		return decimal.NewFromInt(val), nil
	case driver.Valuer:
		inner, err := val.Value()
		if err != nil {
			return decimal.Decimal{}, err
		}
		return toDecimal(inner)
	default:
		return decimal.Decimal{}, fmt.Errorf("unexpected numeric type %T", v)
	}
}

func toDateString(v interface{}) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case []byte:
		return string(val), nil
	case time.Time:
		return val.Format("2006-01-02"), nil
	case driver.Valuer:
		inner, err := val.Value()
		if err != nil {
			return "", err
		}
		return toDateString(inner)
	default:
		return "", fmt.Errorf("unexpected date type %T", v)
	}
}

func toString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", v)
	}
}
