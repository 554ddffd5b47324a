package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopforge/shopforge/internal/database"
	"github.com/shopforge/shopforge/internal/dataset"
	"github.com/shopforge/shopforge/internal/loader"
)

func loadedStore(t *testing.T, counts dataset.Counts) (database.Adapter, *dataset.Dataset) {
	t.Helper()

	dir, err := os.MkdirTemp("", "report-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	adapter, err := database.NewAdapter("sqlite")
	if err != nil {
		t.Fatalf("NewAdapter failed: %v", err)
	}
	if err := adapter.Connect(context.Background(), filepath.Join(dir, "report.db")); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(func() { adapter.Close() })

	ds := dataset.New()
	g := dataset.NewGenerator(dataset.Options{
		Seed:      42,
		Reference: dataset.NewDate(2026, time.March, 15),
	})
	if err := g.GenerateAll(ds, counts); err != nil {
		t.Fatalf("GenerateAll failed: %v", err)
	}
	if _, err := loader.New(adapter, loader.Options{}).Load(context.Background(), ds); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return adapter, ds
}

// expectedTotals recomputes each order's total from the in-memory
// dataset, the ground truth the SQL aggregation must match.
func expectedTotals(ds *dataset.Dataset) (map[int]decimal.Decimal, map[int]int64) {
	totals := make(map[int]decimal.Decimal)
	counts := make(map[int]int64)
	for _, item := range ds.OrderItems {
		if prev, ok := totals[item.OrderID]; ok {
			totals[item.OrderID] = prev.Add(item.TotalPrice)
		} else {
			totals[item.OrderID] = item.TotalPrice
		}
		counts[item.OrderID]++
	}
	return totals, counts
}

func TestOrderTotalsMatchDataset(t *testing.T) {
	adapter, ds := loadedStore(t, dataset.Counts{Customers: 5, Products: 3, Orders: 4, Reviews: 6})

	rows, err := OrderTotals(context.Background(), adapter, 0)
	if err != nil {
		t.Fatalf("OrderTotals failed: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("Expected 4 report rows, got %d", len(rows))
	}

	totals, itemCounts := expectedTotals(ds)
	for _, row := range rows {
		want, ok := totals[int(row.OrderID)]
		if !ok {
			t.Errorf("Report row for unknown order %d", row.OrderID)
			continue
		}
		if !row.OrderTotal.Equal(want) {
			t.Errorf("Order %d total %s, want %s", row.OrderID, row.OrderTotal, want)
		}
		if row.Items != itemCounts[int(row.OrderID)] {
			t.Errorf("Order %d items %d, want %d", row.OrderID, row.Items, itemCounts[int(row.OrderID)])
		}

		order := ds.Orders[row.OrderID-1]
		customer := ds.Customers[order.CustomerID-1]
		wantName := customer.FirstName + " " + customer.LastName
		if row.CustomerName != wantName {
			t.Errorf("Order %d customer %q, want %q", row.OrderID, row.CustomerName, wantName)
		}
		if row.OrderDate != order.OrderDate.String() {
			t.Errorf("Order %d date %q, want %q", row.OrderID, row.OrderDate, order.OrderDate)
		}
	}
}

func TestOrderTotalsSortNewestFirst(t *testing.T) {
	adapter, _ := loadedStore(t, dataset.Counts{Customers: 10, Products: 6, Orders: 25, Reviews: 0})

	rows, err := OrderTotals(context.Background(), adapter, 0)
	if err != nil {
		t.Fatalf("OrderTotals failed: %v", err)
	}
	if len(rows) != 25 {
		t.Fatalf("Expected 25 rows, got %d", len(rows))
	}

	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if prev.OrderDate < cur.OrderDate {
			t.Errorf("Rows out of order: %s before %s", prev.OrderDate, cur.OrderDate)
		}
		if prev.OrderDate == cur.OrderDate && prev.OrderID < cur.OrderID {
			t.Errorf("Date tie broken wrong: order %d before %d", prev.OrderID, cur.OrderID)
		}
	}
}

func TestOrderTotalsLimit(t *testing.T) {
	adapter, _ := loadedStore(t, dataset.Counts{Customers: 10, Products: 6, Orders: 25, Reviews: 0})

	all, err := OrderTotals(context.Background(), adapter, 0)
	if err != nil {
		t.Fatal(err)
	}
	top, err := OrderTotals(context.Background(), adapter, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 5 {
		t.Fatalf("Expected 5 rows, got %d", len(top))
	}
	for i := range top {
		if top[i].OrderID != all[i].OrderID || top[i].Items != all[i].Items ||
			!top[i].OrderTotal.Equal(all[i].OrderTotal) {
			t.Errorf("Row %d differs between limited and full report", i)
		}
	}
}

func TestOrderTotalsEmptyStore(t *testing.T) {
	adapter, _ := loadedStore(t, dataset.Counts{})

	rows, err := OrderTotals(context.Background(), adapter, 10)
	if err != nil {
		t.Fatalf("OrderTotals failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Expected no rows, got %d", len(rows))
	}
}
