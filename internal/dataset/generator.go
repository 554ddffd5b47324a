// Package dataset generates linked synthetic e-commerce collections:
// customers, products, orders, order items and reviews. Stages run in a
// fixed dependency order against a caller-owned Dataset, and every
// randomized field is drawn from a single Source, so a seed fully
// determines the output.
package dataset

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNegativeCount rejects a stage invoked with a count below zero.
	// Zero is valid and produces an empty collection.
	ErrNegativeCount = errors.New("requested count is negative")

	// ErrMissingDependency rejects a stage invoked before the
	// collections it references were generated.
	ErrMissingDependency = errors.New("dependency not generated")

	// ErrIncomplete rejects exporting or loading a dataset whose
	// collections were not all generated.
	ErrIncomplete = errors.New("dataset is incomplete")
)

// VerifiedPolicy selects how review verified_purchase flags are derived.
type VerifiedPolicy string

const (
	// VerifiedByCustomer marks a review verified when the reviewing
	// customer has an order item for the reviewed product.
	VerifiedByCustomer VerifiedPolicy = "purchase"
	// VerifiedByProduct marks a review verified when any customer
	// ordered the reviewed product.
	VerifiedByProduct VerifiedPolicy = "product"
	// VerifiedRandom flips a coin per review.
	VerifiedRandom VerifiedPolicy = "random"
)

func ParseVerifiedPolicy(s string) (VerifiedPolicy, error) {
	switch VerifiedPolicy(s) {
	case VerifiedByCustomer, VerifiedByProduct, VerifiedRandom:
		return VerifiedPolicy(s), nil
	case "":
		return VerifiedByCustomer, nil
	}
	return "", fmt.Errorf("unknown verified_purchase policy %q (want purchase, product or random)", s)
}

// Field ranges follow the original fixture shapes; amounts are cents.
const (
	priceMinCents    = 1000 // 10.00
	priceMaxCents    = 50000
	costMinCents     = 500
	costMaxCents     = 25000
	shippingMinCents = 500
	shippingMaxCents = 2500

	stockMax         = 1000
	maxItemsPerOrder = 5
	maxQuantity      = 5
	joinedWindow     = 2 * 365 // days before the reference date
	createdWindow    = 365
	spreadMinPct     = 80 // price-spread multiplier range, percent
	spreadSpanPct    = 41
	ratingMin        = 3.0
	ratingMax        = 5.0
)

// Options configure a Generator. The zero value gives a wall-clock
// seeded source, today's reference date and the purchase policy.
type Options struct {
	// Seed initializes the random source; 0 means time-derived.
	Seed int64
	// Source overrides Seed entirely when set. Tests use this to
	// script exact sequences.
	Source Source
	// Reference is the "today" all date ranges end at. Zero means the
	// current date; fix it for byte-identical runs across days.
	Reference Date
	// Verified selects the verified_purchase heuristic.
	Verified VerifiedPolicy
	// PriceSpread jitters item unit prices within 80%..120% of the
	// product price, simulating sales and surcharges. Off, each item
	// sells at exactly the product price.
	PriceSpread bool
}

// Counts are the per-collection record counts for a full run. Order
// items carry no count; they derive from orders.
type Counts struct {
	Customers int
	Products  int
	Orders    int
	Reviews   int
}

// DefaultCounts is the stock fixture shape.
func DefaultCounts() Counts {
	return Counts{Customers: 100, Products: 50, Orders: 200, Reviews: 150}
}

// Generator drives the staged pipeline. It owns only the random source
// and policies; generated collections live in the caller's Dataset.
type Generator struct {
	facts    *Facts
	today    Date
	verified VerifiedPolicy
	spread   bool
}

func NewGenerator(opts Options) *Generator {
	src := opts.Source
	if src == nil {
		if opts.Seed != 0 {
			src = NewSeededSource(opts.Seed)
		} else {
			src = NewTimeSource()
		}
	}
	today := opts.Reference
	if today.IsZero() {
		today = DateOf(time.Now())
	}
	verified := opts.Verified
	if verified == "" {
		verified = VerifiedByCustomer
	}
	return &Generator{
		facts:    NewFacts(src),
		today:    today,
		verified: verified,
		spread:   opts.PriceSpread,
	}
}

// GenerateCustomers fills ds.Customers with count records, ids 1..count.
func (g *Generator) GenerateCustomers(ds *Dataset, count int) error {
	if count < 0 {
		return fmt.Errorf("customers: count %d: %w", count, ErrNegativeCount)
	}

	customers := make([]Customer, 0, count)
	for i := 1; i <= count; i++ {
		first := g.facts.FirstName()
		last := g.facts.LastName()
		customers = append(customers, Customer{
			CustomerID: i,
			FirstName:  first,
			LastName:   last,
			Email:      g.facts.Email(first, last),
			Phone:      g.facts.Phone(),
			Address:    g.facts.StreetAddress(),
			City:       g.facts.City(),
			State:      g.facts.State(),
			ZipCode:    g.facts.ZipCode(),
			Country:    g.facts.Country(),
			DateJoined: g.facts.DateBetween(g.today.AddDays(-joinedWindow), g.today),
		})
	}
	ds.Customers = customers
	return nil
}

// GenerateProducts fills ds.Products with count records, ids 1..count.
func (g *Generator) GenerateProducts(ds *Dataset, count int) error {
	if count < 0 {
		return fmt.Errorf("products: count %d: %w", count, ErrNegativeCount)
	}

	products := make([]Product, 0, count)
	for i := 1; i <= count; i++ {
		category := g.facts.Category()
		products = append(products, Product{
			ProductID:     i,
			ProductName:   g.facts.Company() + " " + g.facts.ProductType(category),
			Description:   g.facts.Paragraph(2, 3),
			Category:      category,
			Price:         g.facts.CentsBetween(priceMinCents, priceMaxCents),
			Cost:          g.facts.CentsBetween(costMinCents, costMaxCents),
			SKU:           g.facts.SKU(),
			StockQuantity: g.facts.IntBetween(0, stockMax),
			Rating:        g.facts.RatingBetween(ratingMin, ratingMax),
			CreatedDate:   g.facts.DateBetween(g.today.AddDays(-createdWindow), g.today),
		})
	}
	ds.Products = products
	return nil
}

// GenerateOrders fills ds.Orders with count records. Each order belongs
// to a uniformly chosen existing customer; its date falls between that
// customer's join date and the reference date, and its shipping fields
// copy the customer's address.
func (g *Generator) GenerateOrders(ds *Dataset, count int) error {
	if count < 0 {
		return fmt.Errorf("orders: count %d: %w", count, ErrNegativeCount)
	}
	if ds.Customers == nil {
		return fmt.Errorf("orders: customers: %w", ErrMissingDependency)
	}
	if count > 0 && len(ds.Customers) == 0 {
		return fmt.Errorf("orders: no customers to reference: %w", ErrMissingDependency)
	}

	orders := make([]Order, 0, count)
	for i := 1; i <= count; i++ {
		customer := ds.Customers[g.facts.Index(len(ds.Customers))]
		orders = append(orders, Order{
			OrderID:       i,
			CustomerID:    customer.CustomerID,
			OrderDate:     g.facts.DateBetween(customer.DateJoined, g.today),
			Status:        g.facts.OrderStatus(),
			PaymentMethod: g.facts.PaymentMethod(),
			ShippingAddr:  customer.Address,
			ShippingCity:  customer.City,
			ShippingState: customer.State,
			ShippingZip:   customer.ZipCode,
			ShippingCost:  g.facts.CentsBetween(shippingMinCents, shippingMaxCents),
		})
	}
	ds.Orders = orders
	return nil
}

// GenerateOrderItems fills ds.OrderItems with 1..5 items per existing
// order, each referencing a distinct uniformly chosen product. Item ids
// run sequentially across all orders. total_price is always
// quantity x unit_price at 2dp.
func (g *Generator) GenerateOrderItems(ds *Dataset) error {
	if ds.Orders == nil {
		return fmt.Errorf("order items: orders: %w", ErrMissingDependency)
	}
	if ds.Products == nil {
		return fmt.Errorf("order items: products: %w", ErrMissingDependency)
	}
	if len(ds.Orders) > 0 && len(ds.Products) == 0 {
		return fmt.Errorf("order items: no products to reference: %w", ErrMissingDependency)
	}

	items := make([]OrderItem, 0, len(ds.Orders))
	itemID := 1
	for _, order := range ds.Orders {
		n := g.facts.IntBetween(1, maxItemsPerOrder)
		if n > len(ds.Products) {
			n = len(ds.Products)
		}
		for _, idx := range g.facts.SampleIndexes(len(ds.Products), n) {
			product := ds.Products[idx]
			quantity := g.facts.IntBetween(1, maxQuantity)
			unit := product.Price
			if g.spread {
				pct := int64(spreadMinPct + g.facts.Index(spreadSpanPct))
				unit = product.Price.Mul(decimal.New(pct, -2)).Round(2)
			}
			items = append(items, OrderItem{
				ItemID:     itemID,
				OrderID:    order.OrderID,
				ProductID:  product.ProductID,
				Quantity:   quantity,
				UnitPrice:  unit,
				TotalPrice: unit.Mul(decimal.NewFromInt(int64(quantity))),
			})
			itemID++
		}
	}
	ds.OrderItems = items
	return nil
}

// GenerateReviews fills ds.Reviews with count records referencing
// uniformly chosen products and customers. The review date is never
// earlier than the product's creation or the customer's join date.
// verified_purchase follows the configured policy; with the purchase
// and product policies, reviews generated before order items simply
// come out unverified.
func (g *Generator) GenerateReviews(ds *Dataset, count int) error {
	if count < 0 {
		return fmt.Errorf("reviews: count %d: %w", count, ErrNegativeCount)
	}
	if ds.Customers == nil {
		return fmt.Errorf("reviews: customers: %w", ErrMissingDependency)
	}
	if ds.Products == nil {
		return fmt.Errorf("reviews: products: %w", ErrMissingDependency)
	}
	if count > 0 && (len(ds.Customers) == 0 || len(ds.Products) == 0) {
		return fmt.Errorf("reviews: no customers or products to reference: %w", ErrMissingDependency)
	}

	purchased, ordered := purchaseIndex(ds)

	reviews := make([]Review, 0, count)
	for i := 1; i <= count; i++ {
		product := ds.Products[g.facts.Index(len(ds.Products))]
		customer := ds.Customers[g.facts.Index(len(ds.Customers))]

		var verified bool
		switch g.verified {
		case VerifiedByProduct:
			verified = ordered[product.ProductID]
		case VerifiedRandom:
			verified = g.facts.Coin()
		default:
			verified = purchased[customer.CustomerID][product.ProductID]
		}

		reviews = append(reviews, Review{
			ReviewID:         i,
			ProductID:        product.ProductID,
			CustomerID:       customer.CustomerID,
			Rating:           g.facts.IntBetween(1, 5),
			ReviewText:       g.facts.Paragraph(2, 4),
			ReviewDate:       g.facts.DateBetween(MaxDate(product.CreatedDate, customer.DateJoined), g.today),
			VerifiedPurchase: verified,
		})
	}
	ds.Reviews = reviews
	return nil
}

// purchaseIndex maps which customers bought which products, and which
// products were ordered at all.
func purchaseIndex(ds *Dataset) (map[int]map[int]bool, map[int]bool) {
	orderCustomer := make(map[int]int, len(ds.Orders))
	for _, order := range ds.Orders {
		orderCustomer[order.OrderID] = order.CustomerID
	}

	purchased := make(map[int]map[int]bool)
	ordered := make(map[int]bool, len(ds.OrderItems))
	for _, item := range ds.OrderItems {
		ordered[item.ProductID] = true
		customerID, ok := orderCustomer[item.OrderID]
		if !ok {
			continue
		}
		if purchased[customerID] == nil {
			purchased[customerID] = make(map[int]bool)
		}
		purchased[customerID][item.ProductID] = true
	}
	return purchased, ordered
}

// GenerateAll runs the five stages in their fixed dependency order:
// customers, products, orders, order items, reviews.
func (g *Generator) GenerateAll(ds *Dataset, counts Counts) error {
	if err := g.GenerateCustomers(ds, counts.Customers); err != nil {
		return err
	}
	if err := g.GenerateProducts(ds, counts.Products); err != nil {
		return err
	}
	if err := g.GenerateOrders(ds, counts.Orders); err != nil {
		return err
	}
	if err := g.GenerateOrderItems(ds); err != nil {
		return err
	}
	return g.GenerateReviews(ds, counts.Reviews)
}
