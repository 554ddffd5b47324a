// Package common holds the logical store schema and result types shared
// by the provider adapters, the loader and the report layer. Keeping
// them here avoids an import cycle between the adapter packages and the
// factory.
package common

import "fmt"

// ColType is a provider-neutral column type. Each adapter maps these to
// its engine's DDL types.
type ColType string

const (
	TypeID    ColType = "id" // integer primary key
	TypeInt   ColType = "int"
	TypeText  ColType = "text"
	TypeMoney ColType = "money" // fixed-point amount, 2 decimal places
	TypeFloat ColType = "float"
	TypeBool  ColType = "bool"
	TypeDate  ColType = "date" // calendar date without a time component
)

type Column struct {
	Name    string
	Type    ColType
	NotNull bool

	// RefTable/RefColumn declare a foreign key when set.
	RefTable  string
	RefColumn string
}

type Table struct {
	Name    string
	Columns []Column
}

// ColumnNames returns the insert column list in declaration order.
// Primary keys are included; generated datasets carry explicit ids.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// Dependencies lists the distinct tables t references, self-references
// excluded.
func (t *Table) Dependencies() []string {
	seen := make(map[string]bool)
	var deps []string
	for _, col := range t.Columns {
		if col.RefTable == "" || col.RefTable == t.Name || seen[col.RefTable] {
			continue
		}
		seen[col.RefTable] = true
		deps = append(deps, col.RefTable)
	}
	return deps
}

// Schema returns the store's five tables in declaration order.
func Schema() []*Table {
	return []*Table{
		{
			Name: "customers",
			Columns: []Column{
				{Name: "customer_id", Type: TypeID},
				{Name: "first_name", Type: TypeText, NotNull: true},
				{Name: "last_name", Type: TypeText, NotNull: true},
				{Name: "email", Type: TypeText, NotNull: true},
				{Name: "phone", Type: TypeText},
				{Name: "address", Type: TypeText},
				{Name: "city", Type: TypeText},
				{Name: "state", Type: TypeText},
				{Name: "zip_code", Type: TypeText},
				{Name: "country", Type: TypeText},
				{Name: "date_joined", Type: TypeDate, NotNull: true},
			},
		},
		{
			Name: "products",
			Columns: []Column{
				{Name: "product_id", Type: TypeID},
				{Name: "product_name", Type: TypeText, NotNull: true},
				{Name: "description", Type: TypeText},
				{Name: "category", Type: TypeText, NotNull: true},
				{Name: "price", Type: TypeMoney, NotNull: true},
				{Name: "cost", Type: TypeMoney, NotNull: true},
				{Name: "sku", Type: TypeText, NotNull: true},
				{Name: "stock_quantity", Type: TypeInt, NotNull: true},
				{Name: "rating", Type: TypeFloat},
				{Name: "created_date", Type: TypeDate, NotNull: true},
			},
		},
		{
			Name: "orders",
			Columns: []Column{
				{Name: "order_id", Type: TypeID},
				{Name: "customer_id", Type: TypeInt, NotNull: true, RefTable: "customers", RefColumn: "customer_id"},
				{Name: "order_date", Type: TypeDate, NotNull: true},
				{Name: "status", Type: TypeText, NotNull: true},
				{Name: "payment_method", Type: TypeText, NotNull: true},
				{Name: "shipping_address", Type: TypeText},
				{Name: "shipping_city", Type: TypeText},
				{Name: "shipping_state", Type: TypeText},
				{Name: "shipping_zip", Type: TypeText},
				{Name: "shipping_cost", Type: TypeMoney, NotNull: true},
			},
		},
		{
			Name: "order_items",
			Columns: []Column{
				{Name: "item_id", Type: TypeID},
				{Name: "order_id", Type: TypeInt, NotNull: true, RefTable: "orders", RefColumn: "order_id"},
				{Name: "product_id", Type: TypeInt, NotNull: true, RefTable: "products", RefColumn: "product_id"},
				{Name: "quantity", Type: TypeInt, NotNull: true},
				{Name: "unit_price", Type: TypeMoney, NotNull: true},
				{Name: "total_price", Type: TypeMoney, NotNull: true},
			},
		},
		{
			Name: "reviews",
			Columns: []Column{
				{Name: "review_id", Type: TypeID},
				{Name: "product_id", Type: TypeInt, NotNull: true, RefTable: "products", RefColumn: "product_id"},
				{Name: "customer_id", Type: TypeInt, NotNull: true, RefTable: "customers", RefColumn: "customer_id"},
				{Name: "rating", Type: TypeInt, NotNull: true},
				{Name: "review_text", Type: TypeText},
				{Name: "review_date", Type: TypeDate, NotNull: true},
				{Name: "verified_purchase", Type: TypeBool, NotNull: true},
			},
		},
	}
}

// BuildInsertionOrder topologically sorts tables so every table comes
// after the tables it references. Input order breaks ties, which keeps
// the result deterministic.
func BuildInsertionOrder(tables []*Table) ([]string, error) {
	byName := make(map[string]*Table, len(tables))
	for _, table := range tables {
		byName[table.Name] = table
	}

	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(name string) error {
		if temp[name] {
			return fmt.Errorf("circular dependency detected involving table: %s", name)
		}
		if visited[name] {
			return nil
		}

		temp[name] = true
		if table := byName[name]; table != nil {
			for _, dep := range table.Dependencies() {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		temp[name] = false
		visited[name] = true
		order = append(order, name)
		return nil
	}

	for _, table := range tables {
		if err := visit(table.Name); err != nil {
			return nil, err
		}
	}
	return order, nil
}
