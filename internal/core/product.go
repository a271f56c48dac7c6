package core

import "strings"

// Product is one medicine in the dashboard inventory.
type Product struct {
	ID       int64
	Name     string
	Category string
	Stock    int
	MinStock int
	Price    Money
	Expiry   Date
}

// ExpiryWindowDays is the look-ahead used by the expiry monitor.
const ExpiryWindowDays = 30

func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyItem
	}
	if strings.TrimSpace(p.Category) == "" {
		return ErrEmptyCategory
	}
	if p.Stock < 0 || p.MinStock < 0 {
		return ErrInvalidAmount
	}
	if p.Price.Paisa <= 0 {
		return ErrInvalidAmount
	}
	return p.Expiry.Validate()
}

// LowStock reports whether the product has fallen to or below its
// reorder threshold.
func (p Product) LowStock() bool {
	return p.Stock <= p.MinStock
}

// Expired reports whether the product's expiry date has passed.
func (p Product) Expired(today Date) bool {
	return p.Expiry.Before(today)
}

// ExpiringSoon reports whether the product expires within the next
// ExpiryWindowDays days. Mutually exclusive with Expired.
func (p Product) ExpiringSoon(today Date) bool {
	if p.Expiry.Before(today) {
		return false
	}
	return !p.Expiry.After(today.AddDays(ExpiryWindowDays))
}

// StockValue returns stock on hand multiplied by unit price.
func (p Product) StockValue() Money {
	return Money{Paisa: int64(p.Stock) * p.Price.Paisa}
}
