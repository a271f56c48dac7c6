package inventory

import (
	"errors"
	"testing"

	"github.com/farooq9092/Sajid-medical-store/internal/core"
)

func testProduct(c *Catalog, t *testing.T, name string, stock, minStock int) core.Product {
	t.Helper()
	p, err := c.Add(name, "Test", stock, minStock, core.Money{Paisa: 1000}, core.NewDate(2030, 1, 1))
	if err != nil {
		t.Fatalf("add %s: %v", name, err)
	}
	return p
}

func TestAddAssignsNextID(t *testing.T) {
	c := New()
	first := testProduct(c, t, "Panadol", 10, 5)
	if first.ID != 1 {
		t.Fatalf("first ID = %d, want 1", first.ID)
	}
	second := testProduct(c, t, "Brufen", 10, 5)
	if second.ID != 2 {
		t.Fatalf("second ID = %d, want 2", second.ID)
	}

	seeded := NewSeeded(core.NewDate(2024, 5, 15))
	p, err := seeded.Add("New Med", "Other", 5, 2, core.Money{Paisa: 100}, core.NewDate(2030, 1, 1))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if p.ID != 106 { // seed IDs run 101-105
		t.Fatalf("seeded next ID = %d, want 106", p.ID)
	}
}

func TestAddValidates(t *testing.T) {
	c := New()
	if _, err := c.Add("", "Test", 1, 1, core.Money{Paisa: 100}, core.NewDate(2030, 1, 1)); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if _, err := c.Add("X", "Test", 1, 1, core.Money{}, core.NewDate(2030, 1, 1)); err == nil {
		t.Fatalf("expected error for zero price")
	}
}

func TestRecordSale(t *testing.T) {
	c := New()
	p := testProduct(c, t, "Panadol", 10, 5)

	left, err := c.RecordSale(p.ID, 4)
	if err != nil || left != 6 {
		t.Fatalf("RecordSale = %d, %v; want 6", left, err)
	}

	// Selling more than the shelf holds fails and changes nothing.
	left, err = c.RecordSale(p.ID, 12)
	if !errors.Is(err, core.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if left != 6 {
		t.Fatalf("stock reported = %d, want unchanged 6", left)
	}
	if got := c.All()[0].Stock; got != 6 {
		t.Fatalf("stored stock = %d, want 6", got)
	}

	if _, err := c.RecordSale(999, 1); !errors.Is(err, core.ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
	if _, err := c.RecordSale(p.ID, 0); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero quantity, got %v", err)
	}
}

func TestLowStockView(t *testing.T) {
	c := New()
	testProduct(c, t, "Plenty", 100, 20)
	testProduct(c, t, "Short", 15, 20)
	testProduct(c, t, "Edge", 20, 20)

	got := c.LowStock()
	if len(got) != 2 {
		t.Fatalf("expected 2 low-stock products, got %d", len(got))
	}
	if got[0].Name != "Short" || got[1].Name != "Edge" {
		t.Fatalf("low stock = %v, %v", got[0].Name, got[1].Name)
	}
}

func TestExpiryViews(t *testing.T) {
	today := core.NewDate(2024, 5, 15)
	c := NewSeeded(today)

	expired := c.Expired(today)
	if len(expired) != 1 || expired[0].Name != "Ibuprofen" {
		t.Fatalf("expired = %+v", expired)
	}
	soon := c.ExpiringSoon(today)
	if len(soon) != 1 || soon[0].Name != "Insulin Glargine" {
		t.Fatalf("expiring soon = %+v", soon)
	}
	// The two views never overlap.
	for _, e := range expired {
		for _, s := range soon {
			if e.ID == s.ID {
				t.Fatalf("product %d in both views", e.ID)
			}
		}
	}
}

func TestSummary(t *testing.T) {
	today := core.NewDate(2024, 5, 15)
	c := NewSeeded(today)

	got := c.Summary(today)
	if got.TotalProducts != 5 {
		t.Fatalf("TotalProducts = %d", got.TotalProducts)
	}
	// 50*15 + 120*5 + 4*1200 + 200*10 + 15*8 = 8270 rupees
	if got.InventoryValue.Paisa != 827000 {
		t.Fatalf("InventoryValue = %d paisa", got.InventoryValue.Paisa)
	}
	// Insulin (4<=10) and Ibuprofen (15<=20)
	if got.LowStockCount != 2 {
		t.Fatalf("LowStockCount = %d", got.LowStockCount)
	}
	// Insulin expiring soon, Ibuprofen expired
	if got.ExpiryAlerts != 2 {
		t.Fatalf("ExpiryAlerts = %d", got.ExpiryAlerts)
	}
}
