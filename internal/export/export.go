// Package export writes a generated dataset to disk as CSV, JSON or a
// standalone SQLite database, plus a manifest describing the run.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/shopforge/shopforge/internal/database"
	"github.com/shopforge/shopforge/internal/dataset"
	"github.com/shopforge/shopforge/internal/loader"
)

const sqliteFileName = "ecommerce.db"

type Options struct {
	// Dir is the output directory, created if missing.
	Dir string
	// Formats are any of csv, json, sqlite. Empty means csv.
	Formats []string
	// Seed and Version are recorded in the manifest.
	Seed    int64
	Version string
}

// Manifest describes one export run. It is written to manifest.json in
// the output directory; Files holds the written names relative to it.
type Manifest struct {
	RunID        string         `json:"run_id"`
	GeneratedAt  time.Time      `json:"generated_at"`
	Version      string         `json:"version"`
	Seed         int64          `json:"seed"`
	Counts       map[string]int `json:"counts"`
	TotalRevenue string         `json:"total_revenue"`
	Files        []string       `json:"files"`
}

// Run writes the dataset in every requested format and then the
// manifest. The dataset must be fully generated; empty collections are
// written as header-only CSV and empty JSON arrays.
func Run(ctx context.Context, ds *dataset.Dataset, opts Options) (*Manifest, error) {
	if !ds.Complete() {
		return nil, fmt.Errorf("cannot export: %w", dataset.ErrIncomplete)
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []string{"csv"}
	}
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	var files []string
	for _, format := range opts.Formats {
		switch format {
		case "csv":
			written, err := writeCSV(ds, opts.Dir)
			if err != nil {
				return nil, err
			}
			files = append(files, written...)
		case "json":
			written, err := writeJSON(ds, opts.Dir)
			if err != nil {
				return nil, err
			}
			files = append(files, written...)
		case "sqlite":
			written, err := writeSQLite(ctx, ds, opts.Dir)
			if err != nil {
				return nil, err
			}
			files = append(files, written)
		default:
			return nil, fmt.Errorf("unsupported export format %q (want csv, json or sqlite)", format)
		}
	}

	sum := ds.Summary()
	manifest := &Manifest{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Version:     opts.Version,
		Seed:        opts.Seed,
		Counts: map[string]int{
			"customers":   sum.Customers,
			"products":    sum.Products,
			"orders":      sum.Orders,
			"order_items": sum.OrderItems,
			"reviews":     sum.Reviews,
		},
		TotalRevenue: sum.TotalRevenue.StringFixed(2),
		Files:        files,
	}
	if err := writeManifest(manifest, opts.Dir); err != nil {
		return nil, err
	}
	return manifest, nil
}

func writeManifest(m *Manifest, dir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

func writeCSV(ds *dataset.Dataset, dir string) ([]string, error) {
	entities := []struct {
		name    string
		headers []string
		rows    [][]string
	}{
		{"customers", customerHeaders(), customerRecords(ds.Customers)},
		{"products", productHeaders(), productRecords(ds.Products)},
		{"orders", orderHeaders(), orderRecords(ds.Orders)},
		{"order_items", itemHeaders(), itemRecords(ds.OrderItems)},
		{"reviews", reviewHeaders(), reviewRecords(ds.Reviews)},
	}

	files := make([]string, 0, len(entities))
	for _, entity := range entities {
		name := entity.name + ".csv"
		if err := writeCSVFile(filepath.Join(dir, name), entity.headers, entity.rows); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
		files = append(files, name)
	}
	return files, nil
}

func writeCSVFile(path string, headers []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeJSON(ds *dataset.Dataset, dir string) ([]string, error) {
	entities := []struct {
		name string
		data interface{}
	}{
		{"customers", ds.Customers},
		{"products", ds.Products},
		{"orders", ds.Orders},
		{"order_items", ds.OrderItems},
		{"reviews", ds.Reviews},
	}

	files := make([]string, 0, len(entities))
	for _, entity := range entities {
		data, err := json.MarshalIndent(entity.data, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", entity.name, err)
		}
		name := entity.name + ".json"
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
		files = append(files, name)
	}
	return files, nil
}

// writeSQLite loads the dataset into a fresh database file through the
// sqlite adapter, producing the same schema a provider load would.
func writeSQLite(ctx context.Context, ds *dataset.Dataset, dir string) (string, error) {
	path := filepath.Join(dir, sqliteFileName)

	adapter, err := database.NewAdapter("sqlite")
	if err != nil {
		return "", err
	}
	if err := adapter.Connect(ctx, path); err != nil {
		return "", fmt.Errorf("failed to open export database: %w", err)
	}
	defer adapter.Close()

	if _, err := loader.New(adapter, loader.Options{Truncate: true}).Load(ctx, ds); err != nil {
		return "", fmt.Errorf("failed to export sqlite database: %w", err)
	}
	return sqliteFileName, nil
}

func customerHeaders() []string {
	return []string{"customer_id", "first_name", "last_name", "email", "phone",
		"address", "city", "state", "zip_code", "country", "date_joined"}
}

func customerRecords(customers []dataset.Customer) [][]string {
	rows := make([][]string, len(customers))
	for i, c := range customers {
		rows[i] = []string{
			strconv.Itoa(c.CustomerID), c.FirstName, c.LastName, c.Email, c.Phone,
			c.Address, c.City, c.State, c.ZipCode, c.Country, c.DateJoined.String(),
		}
	}
	return rows
}

func productHeaders() []string {
	return []string{"product_id", "product_name", "description", "category", "price",
		"cost", "sku", "stock_quantity", "rating", "created_date"}
}

func productRecords(products []dataset.Product) [][]string {
	rows := make([][]string, len(products))
	for i, p := range products {
		rows[i] = []string{
			strconv.Itoa(p.ProductID), p.ProductName, p.Description, p.Category,
			p.Price.StringFixed(2), p.Cost.StringFixed(2), p.SKU,
			strconv.Itoa(p.StockQuantity), strconv.FormatFloat(p.Rating, 'f', 1, 64),
			p.CreatedDate.String(),
		}
	}
	return rows
}

func orderHeaders() []string {
	return []string{"order_id", "customer_id", "order_date", "status", "payment_method",
		"shipping_address", "shipping_city", "shipping_state", "shipping_zip", "shipping_cost"}
}

func orderRecords(orders []dataset.Order) [][]string {
	rows := make([][]string, len(orders))
	for i, o := range orders {
		rows[i] = []string{
			strconv.Itoa(o.OrderID), strconv.Itoa(o.CustomerID), o.OrderDate.String(),
			o.Status, o.PaymentMethod, o.ShippingAddr, o.ShippingCity,
			o.ShippingState, o.ShippingZip, o.ShippingCost.StringFixed(2),
		}
	}
	return rows
}

func itemHeaders() []string {
	return []string{"item_id", "order_id", "product_id", "quantity", "unit_price", "total_price"}
}

func itemRecords(items []dataset.OrderItem) [][]string {
	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = []string{
			strconv.Itoa(item.ItemID), strconv.Itoa(item.OrderID), strconv.Itoa(item.ProductID),
			strconv.Itoa(item.Quantity), item.UnitPrice.StringFixed(2), item.TotalPrice.StringFixed(2),
		}
	}
	return rows
}

func reviewHeaders() []string {
	return []string{"review_id", "product_id", "customer_id", "rating", "review_text",
		"review_date", "verified_purchase"}
}

func reviewRecords(reviews []dataset.Review) [][]string {
	rows := make([][]string, len(reviews))
	for i, r := range reviews {
		rows[i] = []string{
			strconv.Itoa(r.ReviewID), strconv.Itoa(r.ProductID), strconv.Itoa(r.CustomerID),
			strconv.Itoa(r.Rating), r.ReviewText, r.ReviewDate.String(),
			strconv.FormatBool(r.VerifiedPurchase),
		}
	}
	return rows
}
