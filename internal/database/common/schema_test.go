package common

import (
	"reflect"
	"testing"
)

func indexOf(order []string, name string) int {
	for i, n := range order {
		if n == name {
			return i
		}
	}
	return -1
}

func TestSchemaShape(t *testing.T) {
	tables := Schema()
	if len(tables) != 5 {
		t.Fatalf("Expected 5 tables, got %d", len(tables))
	}

	want := []string{"customers", "products", "orders", "order_items", "reviews"}
	for i, name := range want {
		if tables[i].Name != name {
			t.Errorf("Expected table %d to be %s, got %s", i, name, tables[i].Name)
		}
		if tables[i].Columns[0].Type != TypeID {
			t.Errorf("Expected first column of %s to be the primary key", name)
		}
		for _, col := range tables[i].Columns {
			if !IsValidIdentifier(col.Name) {
				t.Errorf("Column name %q is not a valid identifier", col.Name)
			}
		}
	}
}

func TestSchemaDependencies(t *testing.T) {
	tables := Schema()
	deps := make(map[string][]string)
	for _, table := range tables {
		deps[table.Name] = table.Dependencies()
	}

	if len(deps["customers"]) != 0 || len(deps["products"]) != 0 {
		t.Error("Expected customers and products to have no dependencies")
	}
	if !reflect.DeepEqual(deps["orders"], []string{"customers"}) {
		t.Errorf("Expected orders to depend on customers, got %v", deps["orders"])
	}
	if !reflect.DeepEqual(deps["order_items"], []string{"orders", "products"}) {
		t.Errorf("Expected order_items to depend on orders and products, got %v", deps["order_items"])
	}
	if !reflect.DeepEqual(deps["reviews"], []string{"products", "customers"}) {
		t.Errorf("Expected reviews to depend on products and customers, got %v", deps["reviews"])
	}
}

func TestBuildInsertionOrder(t *testing.T) {
	order, err := BuildInsertionOrder(Schema())
	if err != nil {
		t.Fatalf("BuildInsertionOrder failed: %v", err)
	}
	if len(order) != 5 {
		t.Fatalf("Expected 5 tables in order, got %d", len(order))
	}

	checks := [][2]string{
		{"customers", "orders"},
		{"orders", "order_items"},
		{"products", "order_items"},
		{"products", "reviews"},
		{"customers", "reviews"},
	}
	for _, pair := range checks {
		if indexOf(order, pair[0]) > indexOf(order, pair[1]) {
			t.Errorf("Expected %s before %s in %v", pair[0], pair[1], order)
		}
	}
}

func TestBuildInsertionOrderIsDeterministic(t *testing.T) {
	tables := Schema()
	first, err := BuildInsertionOrder(tables)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := BuildInsertionOrder(tables)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Expected stable order, got %v then %v", first, again)
		}
	}

	// Reversed input is still topologically valid.
	reversed := make([]*Table, len(tables))
	for i, table := range tables {
		reversed[len(tables)-1-i] = table
	}
	order, err := BuildInsertionOrder(reversed)
	if err != nil {
		t.Fatal(err)
	}
	if indexOf(order, "orders") > indexOf(order, "order_items") {
		t.Errorf("Expected orders before order_items in %v", order)
	}
}

func TestBuildInsertionOrderDetectsCycles(t *testing.T) {
	a := &Table{Name: "a", Columns: []Column{
		{Name: "id", Type: TypeID},
		{Name: "b_id", Type: TypeInt, RefTable: "b", RefColumn: "id"},
	}}
	b := &Table{Name: "b", Columns: []Column{
		{Name: "id", Type: TypeID},
		{Name: "a_id", Type: TypeInt, RefTable: "a", RefColumn: "id"},
	}}
	if _, err := BuildInsertionOrder([]*Table{a, b}); err == nil {
		t.Error("Expected circular dependency error")
	}

	// Self-references do not count as cycles.
	self := &Table{Name: "node", Columns: []Column{
		{Name: "id", Type: TypeID},
		{Name: "parent_id", Type: TypeInt, RefTable: "node", RefColumn: "id"},
	}}
	if _, err := BuildInsertionOrder([]*Table{self}); err != nil {
		t.Errorf("Expected self-reference to be allowed, got %v", err)
	}
}

func TestColumnNames(t *testing.T) {
	tables := Schema()
	got := tables[3].ColumnNames()
	want := []string{"item_id", "order_id", "product_id", "quantity", "unit_price", "total_price"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestIsValidIdentifier(t *testing.T) {
	valid := []string{"customers", "order_items", "_private", "A1"}
	for _, name := range valid {
		if !IsValidIdentifier(name) {
			t.Errorf("Expected %q to be valid", name)
		}
	}
	invalid := []string{"", "1table", "drop table", "x;--", "naïve"}
	for _, name := range invalid {
		if IsValidIdentifier(name) {
			t.Errorf("Expected %q to be invalid", name)
		}
	}
}

func TestDisplayValue(t *testing.T) {
	cases := []struct {
		in   interface{}
		want string
	}{
		{nil, "NULL"},
		{[]byte("hello"), "hello"},
		{"plain", "plain"},
		{int64(42), "42"},
		{3.5, "3.5"},
		{true, "true"},
		{false, "false"},
	}
	for _, c := range cases {
		if got := DisplayValue(c.in); got != c.want {
			t.Errorf("DisplayValue(%v): expected %q, got %q", c.in, c.want, got)
		}
	}
}
