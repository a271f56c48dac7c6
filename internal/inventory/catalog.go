// Package inventory is the dashboard variant's product table: stock
// levels, reorder thresholds and expiry monitoring for the medicines on
// the shelf. The table lives in process memory only; the session owns it
// for its lifetime.
package inventory

import (
	"fmt"
	"sync"

	"github.com/farooq9092/Sajid-medical-store/internal/core"
)

// Catalog holds the product table. A single mutex guards it; the design
// assumes one active session writing at a time.
type Catalog struct {
	mu       sync.Mutex
	products []core.Product
}

// Summary is the set of dashboard figures computed over the catalog.
type Summary struct {
	TotalProducts  int
	InventoryValue core.Money // Σ stock × unit price
	LowStockCount  int
	ExpiryAlerts   int // expired plus expiring within the window
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{}
}

// NewSeeded returns a catalog preloaded with the demo inventory, the
// data set the dashboard ships with before any real product is entered.
func NewSeeded(today core.Date) *Catalog {
	rupees := func(r int64) core.Money { return core.Money{Paisa: r * 100} }
	return &Catalog{products: []core.Product{
		{ID: 101, Name: "Amoxicillin 500mg", Category: "Antibiotic", Stock: 50, MinStock: 20, Price: rupees(15), Expiry: today.AddDays(365)},
		{ID: 102, Name: "Paracetamol", Category: "Pain Relief", Stock: 120, MinStock: 50, Price: rupees(5), Expiry: today.AddDays(600)},
		{ID: 103, Name: "Insulin Glargine", Category: "Diabetes", Stock: 4, MinStock: 10, Price: rupees(1200), Expiry: today.AddDays(10)},
		{ID: 104, Name: "Vitamin C", Category: "Supplement", Stock: 200, MinStock: 30, Price: rupees(10), Expiry: today.AddDays(400)},
		{ID: 105, Name: "Ibuprofen", Category: "Pain Relief", Stock: 15, MinStock: 20, Price: rupees(8), Expiry: today.AddDays(-5)},
	}}
}

// Add creates a product with the next free ID: one past the highest ID
// in the table, or 1 for an empty table.
func (c *Catalog) Add(name, category string, stock, minStock int, price core.Money, expiry core.Date) (core.Product, error) {
	p := core.Product{
		Name:     name,
		Category: category,
		Stock:    stock,
		MinStock: minStock,
		Price:    price,
		Expiry:   expiry,
	}
	if err := p.Validate(); err != nil {
		return core.Product{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var maxID int64
	for _, existing := range c.products {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	p.ID = maxID + 1
	c.products = append(c.products, p)
	return p, nil
}

// RecordSale decrements stock for a dispensed quantity and returns the
// remaining stock. Selling more than is on the shelf fails with
// ErrInsufficientStock and leaves the stock untouched.
func (c *Catalog) RecordSale(id int64, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, core.ErrInvalidAmount
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.products {
		if c.products[i].ID != id {
			continue
		}
		if quantity > c.products[i].Stock {
			return c.products[i].Stock, fmt.Errorf("%w: have %d, want %d",
				core.ErrInsufficientStock, c.products[i].Stock, quantity)
		}
		c.products[i].Stock -= quantity
		return c.products[i].Stock, nil
	}
	return 0, core.ErrUnknownItem
}

// All returns the products in table order. The slice is a copy.
func (c *Catalog) All() []core.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]core.Product(nil), c.products...)
}

// LowStock returns the products at or below their reorder threshold.
func (c *Catalog) LowStock() []core.Product {
	return c.filter(func(p core.Product) bool { return p.LowStock() })
}

// Expired returns the products whose expiry date has passed.
func (c *Catalog) Expired(today core.Date) []core.Product {
	return c.filter(func(p core.Product) bool { return p.Expired(today) })
}

// ExpiringSoon returns the products expiring within the monitor window.
func (c *Catalog) ExpiringSoon(today core.Date) []core.Product {
	return c.filter(func(p core.Product) bool { return p.ExpiringSoon(today) })
}

// Summary computes the dashboard figures fresh from the table.
func (c *Catalog) Summary(today core.Date) Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Summary{TotalProducts: len(c.products)}
	for _, p := range c.products {
		s.InventoryValue = s.InventoryValue.Add(p.StockValue())
		if p.LowStock() {
			s.LowStockCount++
		}
		if p.Expired(today) || p.ExpiringSoon(today) {
			s.ExpiryAlerts++
		}
	}
	return s
}

func (c *Catalog) filter(keep func(core.Product) bool) []core.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []core.Product
	for _, p := range c.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
