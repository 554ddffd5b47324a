package dataset

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-15")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d.String() != "2026-03-15" {
		t.Errorf("Expected 2026-03-15, got %s", d)
	}

	if _, err := ParseDate("15/03/2026"); err == nil {
		t.Error("Expected error for malformed date")
	}
	if _, err := ParseDate("2026-13-01"); err == nil {
		t.Error("Expected error for impossible month")
	}
}

func TestAddDaysAndDaysUntil(t *testing.T) {
	d := NewDate(2026, time.February, 28)
	if got := d.AddDays(1).String(); got != "2026-03-01" {
		t.Errorf("Expected 2026-03-01, got %s", got)
	}
	leap := NewDate(2024, time.February, 28)
	if got := leap.AddDays(1).String(); got != "2024-02-29" {
		t.Errorf("Expected 2024-02-29, got %s", got)
	}

	a := NewDate(2026, time.January, 1)
	b := a.AddDays(45)
	if got := a.DaysUntil(b); got != 45 {
		t.Errorf("Expected 45 days, got %d", got)
	}
	if got := b.DaysUntil(a); got != -45 {
		t.Errorf("Expected -45 days, got %d", got)
	}
	if got := a.DaysUntil(a); got != 0 {
		t.Errorf("Expected 0 days, got %d", got)
	}
}

func TestDateComparisons(t *testing.T) {
	a := NewDate(2026, time.May, 1)
	b := NewDate(2026, time.May, 2)

	if !a.Before(b) || b.Before(a) {
		t.Error("Before misordered")
	}
	if !b.After(a) || a.After(b) {
		t.Error("After misordered")
	}
	if !a.Equal(NewDate(2026, time.May, 1)) {
		t.Error("Expected equal dates")
	}
	if !MaxDate(a, b).Equal(b) || !MaxDate(b, a).Equal(b) {
		t.Error("MaxDate did not pick the later date")
	}
	if (Date{}).IsZero() != true || a.IsZero() {
		t.Error("IsZero misreported")
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2026, time.March, 15)
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(raw) != `"2026-03-15"` {
		t.Errorf("Expected quoted date string, got %s", raw)
	}

	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("Round trip changed %s to %s", d, back)
	}

	if err := json.Unmarshal([]byte(`"not-a-date"`), &back); err == nil {
		t.Error("Expected error for malformed date")
	}
}

func TestDateSQL(t *testing.T) {
	d := NewDate(2026, time.March, 15)
	v, err := d.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if v != "2026-03-15" {
		t.Errorf("Expected 2026-03-15, got %v", v)
	}

	var back Date
	if err := back.Scan(time.Date(2026, time.March, 15, 13, 45, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan time.Time failed: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("Expected %s, got %s", d, back)
	}
	if err := back.Scan("2026-03-16"); err != nil {
		t.Fatalf("Scan string failed: %v", err)
	}
	if err := back.Scan([]byte("2026-03-17")); err != nil {
		t.Fatalf("Scan bytes failed: %v", err)
	}
	if err := back.Scan(12345); err == nil {
		t.Error("Expected error for unsupported scan type")
	}
}
