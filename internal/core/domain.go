package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Cash         PaymentMethod = "Cash"
	MobileWallet PaymentMethod = "MobileWallet"
	Credit       PaymentMethod = "Credit"
)

const (
	// SaleBearing entries contribute sale and profit to reports.
	SaleBearing Kind = "sale"
	// ExpenseOnly entries carry their cost as a pure expense; profit is always zero.
	ExpenseOnly Kind = "expense"
)

type (
	PaymentMethod string

	Kind string

	Date struct {
		time.Time
	}

	// LedgerEntry is one row of the daily sale/expense register.
	LedgerEntry struct {
		Date     Date
		Category string
		Item     string
		Cost     Money
		Sale     Money
		Profit   Money
		Payment  PaymentMethod
	}
)

var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrEmptyItem         = errors.New("empty item description")
	ErrEmptyCategory     = errors.New("empty category")
	ErrInvalidPayment    = errors.New("invalid payment method")
	ErrOutOfRange        = errors.New("position out of range")
	ErrUnknownItem       = errors.New("unknown item")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Classify decides whether a category label counts toward revenue or is a
// pure expense. A label is ExpenseOnly when it contains "Kharcha" (household
// spending) or "Expense" (shop spending); everything else is SaleBearing.
// The substring rule is load-bearing: historical reports depend on it.
func Classify(category string) Kind {
	if strings.Contains(category, "Kharcha") || strings.Contains(category, "Expense") {
		return ExpenseOnly
	}
	return SaleBearing
}

// NewLedgerEntry builds an entry with the profit invariant applied:
// sale minus cost for SaleBearing categories, zero for ExpenseOnly ones.
func NewLedgerEntry(date Date, category, item string, cost, sale Money, payment PaymentMethod) LedgerEntry {
	e := LedgerEntry{
		Date:     date,
		Category: category,
		Item:     item,
		Cost:     cost,
		Sale:     sale,
		Payment:  payment,
	}
	if Classify(category) == SaleBearing {
		e.Profit = sale.Sub(cost)
	}
	return e
}

// Kind reports the entry's classification, derived from its category label.
func (e LedgerEntry) Kind() Kind {
	return Classify(e.Category)
}

func (e LedgerEntry) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(e.Item) == "" {
		return ErrEmptyItem
	}
	if e.Cost.Paisa < 0 || e.Sale.Paisa < 0 {
		return ErrInvalidAmount
	}
	return e.Payment.Validate()
}

func (p PaymentMethod) Validate() error {
	switch p {
	case Cash, MobileWallet, Credit:
		return nil
	default:
		return ErrInvalidPayment
	}
}

// ParsePayment maps a stored label to a PaymentMethod. Unknown labels fall
// back to Cash so hand-edited CSV rows stay loadable.
func ParsePayment(s string) PaymentMethod {
	switch strings.TrimSpace(s) {
	case string(MobileWallet), "JazzCash", "EasyPaisa":
		return MobileWallet
	case string(Credit), "Udhaar":
		return Credit
	default:
		return Cash
	}
}

// NewDate creates a Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date, truncated to midnight UTC.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses the YYYY-MM-DD wire format used by the CSV tables.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Format renders the date in the YYYY-MM-DD wire format.
func (d Date) Format() string {
	return d.Time.Format("2006-01-02")
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// Month returns the calendar month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// SameDay reports whether two dates fall on the same calendar day.
func (d Date) SameDay(o Date) bool {
	return d.Year() == o.Year() && d.Month() == o.Month() && d.Day() == o.Day()
}

// AddDays returns the date shifted by the given number of days.
func (d Date) AddDays(days int) Date {
	return Date{Time: d.Time.AddDate(0, 0, days)}
}

// Before reports whether d falls strictly before o on the calendar.
func (d Date) Before(o Date) bool {
	return d.Time.Before(o.Time)
}

// After reports whether d falls strictly after o on the calendar.
func (d Date) After(o Date) bool {
	return d.Time.After(o.Time)
}
