package dataset

import (
	"github.com/shopspring/decimal"
)

// Record types mirror the exported table schemas one to one. IDs are
// sequential per collection starting at 1; money fields are 2dp decimals.

type Customer struct {
	CustomerID int    `json:"customer_id" db:"customer_id"`
	FirstName  string `json:"first_name" db:"first_name"`
	LastName   string `json:"last_name" db:"last_name"`
	Email      string `json:"email" db:"email"`
	Phone      string `json:"phone" db:"phone"`
	Address    string `json:"address" db:"address"`
	City       string `json:"city" db:"city"`
	State      string `json:"state" db:"state"`
	ZipCode    string `json:"zip_code" db:"zip_code"`
	Country    string `json:"country" db:"country"`
	DateJoined Date   `json:"date_joined" db:"date_joined"`
}

type Product struct {
	ProductID     int             `json:"product_id" db:"product_id"`
	ProductName   string          `json:"product_name" db:"product_name"`
	Description   string          `json:"description" db:"description"`
	Category      string          `json:"category" db:"category"`
	Price         decimal.Decimal `json:"price" db:"price"`
	Cost          decimal.Decimal `json:"cost" db:"cost"`
	SKU           string          `json:"sku" db:"sku"`
	StockQuantity int             `json:"stock_quantity" db:"stock_quantity"`
	Rating        float64         `json:"rating" db:"rating"`
	CreatedDate   Date            `json:"created_date" db:"created_date"`
}

type Order struct {
	OrderID       int             `json:"order_id" db:"order_id"`
	CustomerID    int             `json:"customer_id" db:"customer_id"`
	OrderDate     Date            `json:"order_date" db:"order_date"`
	Status        string          `json:"status" db:"status"`
	PaymentMethod string          `json:"payment_method" db:"payment_method"`
	ShippingAddr  string          `json:"shipping_address" db:"shipping_address"`
	ShippingCity  string          `json:"shipping_city" db:"shipping_city"`
	ShippingState string          `json:"shipping_state" db:"shipping_state"`
	ShippingZip   string          `json:"shipping_zip" db:"shipping_zip"`
	ShippingCost  decimal.Decimal `json:"shipping_cost" db:"shipping_cost"`
}

type OrderItem struct {
	ItemID     int             `json:"item_id" db:"item_id"`
	OrderID    int             `json:"order_id" db:"order_id"`
	ProductID  int             `json:"product_id" db:"product_id"`
	Quantity   int             `json:"quantity" db:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price" db:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price" db:"total_price"`
}

type Review struct {
	ReviewID         int    `json:"review_id" db:"review_id"`
	ProductID        int    `json:"product_id" db:"product_id"`
	CustomerID       int    `json:"customer_id" db:"customer_id"`
	Rating           int    `json:"rating" db:"rating"`
	ReviewText       string `json:"review_text" db:"review_text"`
	ReviewDate       Date   `json:"review_date" db:"review_date"`
	VerifiedPurchase bool   `json:"verified_purchase" db:"verified_purchase"`
}

// Dataset holds the five collections of one generation run. The caller
// owns it and passes it to each stage explicitly; there is no package
// state, so independent runs can never bleed into each other.
type Dataset struct {
	Customers  []Customer
	Products   []Product
	Orders     []Order
	OrderItems []OrderItem
	Reviews    []Review
}

func New() *Dataset {
	return &Dataset{}
}

// Complete reports whether every collection has been generated. Empty
// collections count as generated; nil ones do not.
func (ds *Dataset) Complete() bool {
	return ds.Customers != nil && ds.Products != nil && ds.Orders != nil &&
		ds.OrderItems != nil && ds.Reviews != nil
}

// Summary reports per-collection counts and the revenue booked across
// all order items. Read-only.
type Summary struct {
	Customers    int             `json:"customers"`
	Products     int             `json:"products"`
	Orders       int             `json:"orders"`
	OrderItems   int             `json:"order_items"`
	Reviews      int             `json:"reviews"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

func (ds *Dataset) Summary() Summary {
	revenue := decimal.Zero
	for _, item := range ds.OrderItems {
		revenue = revenue.Add(item.TotalPrice)
	}
	return Summary{
		Customers:    len(ds.Customers),
		Products:     len(ds.Products),
		Orders:       len(ds.Orders),
		OrderItems:   len(ds.OrderItems),
		Reviews:      len(ds.Reviews),
		TotalRevenue: revenue,
	}
}
