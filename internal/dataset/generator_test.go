package dataset

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var testReference = NewDate(2026, time.March, 15)

func buildDataset(t *testing.T, opts Options, counts Counts) *Dataset {
	t.Helper()
	ds := New()
	g := NewGenerator(opts)
	if err := g.GenerateAll(ds, counts); err != nil {
		t.Fatalf("GenerateAll failed: %v", err)
	}
	return ds
}

func TestSequentialIDs(t *testing.T) {
	ds := buildDataset(t, Options{Seed: 1, Reference: testReference},
		Counts{Customers: 20, Products: 10, Orders: 15, Reviews: 12})

	for i, c := range ds.Customers {
		if c.CustomerID != i+1 {
			t.Errorf("Expected customer id %d, got %d", i+1, c.CustomerID)
		}
	}
	for i, p := range ds.Products {
		if p.ProductID != i+1 {
			t.Errorf("Expected product id %d, got %d", i+1, p.ProductID)
		}
	}
	for i, o := range ds.Orders {
		if o.OrderID != i+1 {
			t.Errorf("Expected order id %d, got %d", i+1, o.OrderID)
		}
	}
	for i, item := range ds.OrderItems {
		if item.ItemID != i+1 {
			t.Errorf("Expected item id %d, got %d", i+1, item.ItemID)
		}
	}
	for i, r := range ds.Reviews {
		if r.ReviewID != i+1 {
			t.Errorf("Expected review id %d, got %d", i+1, r.ReviewID)
		}
	}
}

func TestForeignKeyIntegrity(t *testing.T) {
	ds := buildDataset(t, Options{Seed: 7, Reference: testReference},
		Counts{Customers: 30, Products: 12, Orders: 40, Reviews: 25})

	customers := make(map[int]bool)
	for _, c := range ds.Customers {
		customers[c.CustomerID] = true
	}
	products := make(map[int]bool)
	for _, p := range ds.Products {
		products[p.ProductID] = true
	}
	orders := make(map[int]bool)
	for _, o := range ds.Orders {
		orders[o.OrderID] = true
		if !customers[o.CustomerID] {
			t.Errorf("Order %d references missing customer %d", o.OrderID, o.CustomerID)
		}
	}
	for _, item := range ds.OrderItems {
		if !orders[item.OrderID] {
			t.Errorf("Item %d references missing order %d", item.ItemID, item.OrderID)
		}
		if !products[item.ProductID] {
			t.Errorf("Item %d references missing product %d", item.ItemID, item.ProductID)
		}
	}
	for _, r := range ds.Reviews {
		if !products[r.ProductID] {
			t.Errorf("Review %d references missing product %d", r.ReviewID, r.ProductID)
		}
		if !customers[r.CustomerID] {
			t.Errorf("Review %d references missing customer %d", r.ReviewID, r.CustomerID)
		}
	}
}

func TestEveryOrderHasItems(t *testing.T) {
	ds := buildDataset(t, Options{Seed: 3, Reference: testReference},
		Counts{Customers: 10, Products: 8, Orders: 50, Reviews: 0})

	itemsPerOrder := make(map[int]int)
	seen := make(map[int]map[int]bool)
	for _, item := range ds.OrderItems {
		itemsPerOrder[item.OrderID]++
		if seen[item.OrderID] == nil {
			seen[item.OrderID] = make(map[int]bool)
		}
		if seen[item.OrderID][item.ProductID] {
			t.Errorf("Order %d references product %d twice", item.OrderID, item.ProductID)
		}
		seen[item.OrderID][item.ProductID] = true
	}
	for _, o := range ds.Orders {
		n := itemsPerOrder[o.OrderID]
		if n < 1 || n > 5 {
			t.Errorf("Expected order %d to have 1..5 items, got %d", o.OrderID, n)
		}
	}
}

func TestItemTotalsAreExact(t *testing.T) {
	for _, spread := range []bool{false, true} {
		ds := buildDataset(t, Options{Seed: 11, Reference: testReference, PriceSpread: spread},
			Counts{Customers: 10, Products: 10, Orders: 30, Reviews: 0})

		for _, item := range ds.OrderItems {
			want := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			if !item.TotalPrice.Equal(want) {
				t.Errorf("spread=%v: item %d total %s, want %s x %d = %s",
					spread, item.ItemID, item.TotalPrice, item.UnitPrice, item.Quantity, want)
			}
			if item.TotalPrice.Exponent() < -2 {
				t.Errorf("spread=%v: item %d total %s has more than 2 decimal places",
					spread, item.ItemID, item.TotalPrice)
			}
			if item.Quantity < 1 || item.Quantity > 5 {
				t.Errorf("Expected quantity 1..5, got %d", item.Quantity)
			}
		}
	}
}

func TestUnitPriceFollowsProduct(t *testing.T) {
	ds := buildDataset(t, Options{Seed: 5, Reference: testReference},
		Counts{Customers: 5, Products: 6, Orders: 20, Reviews: 0})

	for _, item := range ds.OrderItems {
		price := ds.Products[item.ProductID-1].Price
		if !item.UnitPrice.Equal(price) {
			t.Errorf("Item %d unit price %s, want product price %s", item.ItemID, item.UnitPrice, price)
		}
	}
}

func TestPriceSpreadStaysInBand(t *testing.T) {
	ds := buildDataset(t, Options{Seed: 5, Reference: testReference, PriceSpread: true},
		Counts{Customers: 5, Products: 6, Orders: 40, Reviews: 0})

	for _, item := range ds.OrderItems {
		price := ds.Products[item.ProductID-1].Price
		lo := price.Mul(decimal.New(80, -2)).Round(2)
		hi := price.Mul(decimal.New(120, -2)).Round(2)
		if item.UnitPrice.LessThan(lo) || item.UnitPrice.GreaterThan(hi) {
			t.Errorf("Item %d unit price %s outside [%s, %s] for product price %s",
				item.ItemID, item.UnitPrice, lo, hi, price)
		}
	}
}

func TestDateOrdering(t *testing.T) {
	ds := buildDataset(t, Options{Seed: 9, Reference: testReference},
		Counts{Customers: 15, Products: 10, Orders: 30, Reviews: 20})

	for _, c := range ds.Customers {
		if c.DateJoined.After(testReference) {
			t.Errorf("Customer %d joined %s after reference date %s", c.CustomerID, c.DateJoined, testReference)
		}
	}
	for _, o := range ds.Orders {
		joined := ds.Customers[o.CustomerID-1].DateJoined
		if o.OrderDate.Before(joined) {
			t.Errorf("Order %d dated %s before customer joined %s", o.OrderID, o.OrderDate, joined)
		}
		if o.OrderDate.After(testReference) {
			t.Errorf("Order %d dated %s after reference date %s", o.OrderID, o.OrderDate, testReference)
		}
	}
	for _, r := range ds.Reviews {
		floor := MaxDate(ds.Products[r.ProductID-1].CreatedDate, ds.Customers[r.CustomerID-1].DateJoined)
		if r.ReviewDate.Before(floor) {
			t.Errorf("Review %d dated %s before floor %s", r.ReviewID, r.ReviewDate, floor)
		}
	}
}

func TestFieldRanges(t *testing.T) {
	ds := buildDataset(t, Options{Seed: 13, Reference: testReference},
		Counts{Customers: 10, Products: 60, Orders: 25, Reviews: 30})

	minPrice, maxPrice := decimal.New(1000, -2), decimal.New(50000, -2)
	skus := make(map[string]bool)
	for _, p := range ds.Products {
		if p.Price.LessThan(minPrice) || p.Price.GreaterThan(maxPrice) {
			t.Errorf("Product %d price %s outside [10.00, 500.00]", p.ProductID, p.Price)
		}
		if p.Cost.Sign() <= 0 {
			t.Errorf("Product %d cost %s is not positive", p.ProductID, p.Cost)
		}
		if p.StockQuantity < 0 || p.StockQuantity > 1000 {
			t.Errorf("Product %d stock %d outside [0, 1000]", p.ProductID, p.StockQuantity)
		}
		if p.Rating < 3.0 || p.Rating > 5.0 {
			t.Errorf("Product %d rating %.1f outside [3.0, 5.0]", p.ProductID, p.Rating)
		}
		if skus[p.SKU] {
			t.Errorf("Duplicate SKU %s", p.SKU)
		}
		skus[p.SKU] = true

		found := false
		for _, c := range Categories {
			if p.Category == c {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Product %d has unknown category %q", p.ProductID, p.Category)
		}
	}
	for _, r := range ds.Reviews {
		if r.Rating < 1 || r.Rating > 5 {
			t.Errorf("Review %d rating %d outside [1, 5]", r.ReviewID, r.Rating)
		}
	}
	emails := make(map[string]bool)
	for _, c := range ds.Customers {
		if emails[c.Email] {
			t.Errorf("Duplicate email %s", c.Email)
		}
		emails[c.Email] = true
	}
}

func TestDeterminism(t *testing.T) {
	counts := Counts{Customers: 25, Products: 15, Orders: 30, Reviews: 20}
	a := buildDataset(t, Options{Seed: 42, Reference: testReference}, counts)
	b := buildDataset(t, Options{Seed: 42, Reference: testReference}, counts)

	if !reflect.DeepEqual(a.Customers, b.Customers) {
		t.Error("Expected identical customers for identical seeds")
	}
	if !reflect.DeepEqual(a.Products, b.Products) {
		t.Error("Expected identical products for identical seeds")
	}
	if !reflect.DeepEqual(a.Orders, b.Orders) {
		t.Error("Expected identical orders for identical seeds")
	}
	if !reflect.DeepEqual(a.OrderItems, b.OrderItems) {
		t.Error("Expected identical order items for identical seeds")
	}
	if !reflect.DeepEqual(a.Reviews, b.Reviews) {
		t.Error("Expected identical reviews for identical seeds")
	}

	c := buildDataset(t, Options{Seed: 43, Reference: testReference}, counts)
	if reflect.DeepEqual(a.Customers, c.Customers) && reflect.DeepEqual(a.Products, c.Products) {
		t.Error("Expected different seeds to produce different datasets")
	}
}

func TestZeroCounts(t *testing.T) {
	ds := buildDataset(t, Options{Seed: 1, Reference: testReference}, Counts{})

	if ds.Customers == nil || len(ds.Customers) != 0 {
		t.Errorf("Expected empty customers collection, got %v", ds.Customers)
	}
	if ds.Orders == nil || len(ds.Orders) != 0 {
		t.Errorf("Expected empty orders collection, got %v", ds.Orders)
	}
	if ds.OrderItems == nil || len(ds.OrderItems) != 0 {
		t.Errorf("Expected empty order items collection, got %v", ds.OrderItems)
	}

	sum := ds.Summary()
	if sum.Customers != 0 || sum.Orders != 0 || sum.OrderItems != 0 {
		t.Errorf("Expected zero summary, got %+v", sum)
	}
	if !sum.TotalRevenue.Equal(decimal.Zero) {
		t.Errorf("Expected zero revenue, got %s", sum.TotalRevenue)
	}
}

func TestStageOrderEnforced(t *testing.T) {
	g := NewGenerator(Options{Seed: 1, Reference: testReference})

	ds := New()
	if err := g.GenerateOrders(ds, 5); !errors.Is(err, ErrMissingDependency) {
		t.Errorf("Expected ErrMissingDependency for orders before customers, got %v", err)
	}
	if ds.Orders != nil {
		t.Error("Expected failed stage to leave orders untouched")
	}

	ds = New()
	if err := g.GenerateOrderItems(ds); !errors.Is(err, ErrMissingDependency) {
		t.Errorf("Expected ErrMissingDependency for items before orders, got %v", err)
	}

	ds = New()
	if err := g.GenerateReviews(ds, 3); !errors.Is(err, ErrMissingDependency) {
		t.Errorf("Expected ErrMissingDependency for reviews before customers, got %v", err)
	}

	// Customers generated but empty still cannot anchor orders.
	ds = New()
	if err := g.GenerateCustomers(ds, 0); err != nil {
		t.Fatalf("GenerateCustomers(0) failed: %v", err)
	}
	if err := g.GenerateOrders(ds, 5); !errors.Is(err, ErrMissingDependency) {
		t.Errorf("Expected ErrMissingDependency for orders without customers, got %v", err)
	}
	if err := g.GenerateOrders(ds, 0); err != nil {
		t.Errorf("Expected zero orders against empty customers to succeed, got %v", err)
	}
}

func TestNegativeCounts(t *testing.T) {
	g := NewGenerator(Options{Seed: 1, Reference: testReference})
	ds := New()

	if err := g.GenerateCustomers(ds, -1); !errors.Is(err, ErrNegativeCount) {
		t.Errorf("Expected ErrNegativeCount, got %v", err)
	}
	if ds.Customers != nil {
		t.Error("Expected failed stage to leave customers untouched")
	}
	if err := g.GenerateProducts(ds, -3); !errors.Is(err, ErrNegativeCount) {
		t.Errorf("Expected ErrNegativeCount, got %v", err)
	}
}

func TestVerifiedPurchasePolicy(t *testing.T) {
	counts := Counts{Customers: 12, Products: 8, Orders: 25, Reviews: 40}

	t.Run("purchase", func(t *testing.T) {
		ds := buildDataset(t, Options{Seed: 21, Reference: testReference, Verified: VerifiedByCustomer}, counts)
		purchased, _ := purchaseIndex(ds)
		for _, r := range ds.Reviews {
			want := purchased[r.CustomerID][r.ProductID]
			if r.VerifiedPurchase != want {
				t.Errorf("Review %d verified=%v, want %v (customer %d, product %d)",
					r.ReviewID, r.VerifiedPurchase, want, r.CustomerID, r.ProductID)
			}
		}
	})

	t.Run("product", func(t *testing.T) {
		ds := buildDataset(t, Options{Seed: 21, Reference: testReference, Verified: VerifiedByProduct}, counts)
		_, ordered := purchaseIndex(ds)
		for _, r := range ds.Reviews {
			if r.VerifiedPurchase != ordered[r.ProductID] {
				t.Errorf("Review %d verified=%v, want %v (product %d)",
					r.ReviewID, r.VerifiedPurchase, ordered[r.ProductID], r.ProductID)
			}
		}
	})

	t.Run("no order history means unverified", func(t *testing.T) {
		g := NewGenerator(Options{Seed: 3, Reference: testReference})
		ds := New()
		if err := g.GenerateCustomers(ds, 4); err != nil {
			t.Fatal(err)
		}
		if err := g.GenerateProducts(ds, 4); err != nil {
			t.Fatal(err)
		}
		if err := g.GenerateReviews(ds, 10); err != nil {
			t.Fatalf("GenerateReviews failed: %v", err)
		}
		for _, r := range ds.Reviews {
			if r.VerifiedPurchase {
				t.Errorf("Review %d verified without any order items", r.ReviewID)
			}
		}
	})
}

func TestParseVerifiedPolicy(t *testing.T) {
	if p, err := ParseVerifiedPolicy(""); err != nil || p != VerifiedByCustomer {
		t.Errorf("Expected default policy purchase, got %q (%v)", p, err)
	}
	if p, err := ParseVerifiedPolicy("product"); err != nil || p != VerifiedByProduct {
		t.Errorf("Expected policy product, got %q (%v)", p, err)
	}
	if _, err := ParseVerifiedPolicy("sometimes"); err == nil {
		t.Error("Expected error for unknown policy")
	}
}

func TestSummary(t *testing.T) {
	ds := buildDataset(t, Options{Seed: 17, Reference: testReference},
		Counts{Customers: 8, Products: 5, Orders: 10, Reviews: 6})

	sum := ds.Summary()
	if sum.Customers != 8 || sum.Products != 5 || sum.Orders != 10 || sum.Reviews != 6 {
		t.Errorf("Unexpected summary counts: %+v", sum)
	}
	if sum.OrderItems != len(ds.OrderItems) {
		t.Errorf("Expected %d order items in summary, got %d", len(ds.OrderItems), sum.OrderItems)
	}

	revenue := decimal.Zero
	for _, item := range ds.OrderItems {
		revenue = revenue.Add(item.TotalPrice)
	}
	if !sum.TotalRevenue.Equal(revenue) {
		t.Errorf("Expected revenue %s, got %s", revenue, sum.TotalRevenue)
	}
}

// The fixed end-to-end scenario: seed 42, 5 customers, 3 products,
// 4 orders, derived items, 6 reviews.
func TestEndToEndScenario(t *testing.T) {
	ds := buildDataset(t, Options{Seed: 42, Reference: testReference},
		Counts{Customers: 5, Products: 3, Orders: 4, Reviews: 6})

	if len(ds.Customers) != 5 || len(ds.Products) != 3 || len(ds.Orders) != 4 || len(ds.Reviews) != 6 {
		t.Fatalf("Unexpected collection sizes: %d/%d/%d/%d",
			len(ds.Customers), len(ds.Products), len(ds.Orders), len(ds.Reviews))
	}

	itemsPerOrder := make(map[int]int)
	totals := make(map[int]decimal.Decimal)
	for _, item := range ds.OrderItems {
		if item.ProductID < 1 || item.ProductID > 3 {
			t.Errorf("Item %d product id %d outside 1..3", item.ItemID, item.ProductID)
		}
		itemsPerOrder[item.OrderID]++
		if prev, ok := totals[item.OrderID]; ok {
			totals[item.OrderID] = prev.Add(item.TotalPrice)
		} else {
			totals[item.OrderID] = item.TotalPrice
		}
	}
	for _, o := range ds.Orders {
		if o.CustomerID < 1 || o.CustomerID > 5 {
			t.Errorf("Order %d customer id %d outside 1..5", o.OrderID, o.CustomerID)
		}
		n := itemsPerOrder[o.OrderID]
		if n < 1 || n > 5 {
			t.Errorf("Order %d has %d items, want 1..5", o.OrderID, n)
		}
		if totals[o.OrderID].Sign() <= 0 {
			t.Errorf("Order %d total %s is not positive", o.OrderID, totals[o.OrderID])
		}
	}

	sum := ds.Summary()
	revenue := decimal.Zero
	for _, total := range totals {
		revenue = revenue.Add(total)
	}
	if !sum.TotalRevenue.Equal(revenue) {
		t.Errorf("Summary revenue %s does not match per-order totals %s", sum.TotalRevenue, revenue)
	}
}

func TestRegeneratingReplacesCollection(t *testing.T) {
	g := NewGenerator(Options{Seed: 2, Reference: testReference})
	ds := New()
	if err := g.GenerateCustomers(ds, 10); err != nil {
		t.Fatal(err)
	}
	if err := g.GenerateCustomers(ds, 4); err != nil {
		t.Fatal(err)
	}
	if len(ds.Customers) != 4 {
		t.Errorf("Expected regeneration to replace the collection, got %d customers", len(ds.Customers))
	}
	if ds.Customers[0].CustomerID != 1 {
		t.Errorf("Expected ids to restart at 1, got %d", ds.Customers[0].CustomerID)
	}
}
