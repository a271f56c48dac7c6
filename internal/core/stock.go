package core

import "strings"

const (
	Tablet    StockType = "Tablet"
	Syrup     StockType = "Syrup"
	Injection StockType = "Injection"
	Cream     StockType = "Cream"
	OtherType StockType = "Other"
)

const (
	StatusOK       StockStatus = "OK"
	StatusOrderNow StockStatus = "OrderNow"
)

type (
	StockType   string
	StockStatus string

	// StockItem is one row of the reorder list. Name is the table key.
	// Quantity is free text ("3 boxes", "half strip") and carries no
	// numeric meaning.
	StockItem struct {
		Name     string
		Type     StockType
		Quantity string
		Status   StockStatus
	}
)

func (s StockItem) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyItem
	}
	return nil
}

// NeedsReorder reports whether the row is flagged for a supplier order.
func (s StockItem) NeedsReorder() bool {
	return s.Status == StatusOrderNow
}

// ParseStockType maps a stored label to a StockType, defaulting to Other.
func ParseStockType(s string) StockType {
	switch StockType(strings.TrimSpace(s)) {
	case Tablet, Syrup, Injection, Cream:
		return StockType(strings.TrimSpace(s))
	default:
		return OtherType
	}
}

// ParseStockStatus maps a stored label to a StockStatus, defaulting to OK.
func ParseStockStatus(s string) StockStatus {
	if StockStatus(strings.TrimSpace(s)) == StatusOrderNow {
		return StatusOrderNow
	}
	return StatusOK
}
