package ledger

import (
	"sort"

	"github.com/farooq9092/Sajid-medical-store/internal/core"
)

type scopeKind int

const (
	dayScope scopeKind = iota
	monthScope
)

// Scope is the filter window of an aggregation: a single day or a
// calendar (month, year) pair.
type Scope struct {
	kind  scopeKind
	day   core.Date
	year  int
	month int
}

// DayScope aggregates over one calendar day.
func DayScope(d core.Date) Scope {
	return Scope{kind: dayScope, day: d}
}

// MonthScope aggregates over one calendar (month, year) pair.
func MonthScope(year, month int) Scope {
	return Scope{kind: monthScope, year: year, month: month}
}

// Contains reports whether the date falls inside the scope.
func (s Scope) Contains(d core.Date) bool {
	switch s.kind {
	case dayScope:
		return s.day.SameDay(d)
	default:
		return d.Year() == s.year && d.Month() == s.month
	}
}

// Aggregate computes the totals of the entries inside the scope, fresh
// from the full sequence every time. Sale and profit sum over the
// sale-bearing subset, expense sums cost over the expense-only subset,
// savings is profit minus expense. An empty scope yields zero totals.
func Aggregate(entries []core.LedgerEntry, scope Scope) core.Totals {
	var t core.Totals
	for _, e := range entries {
		if !scope.Contains(e.Date) {
			continue
		}
		switch e.Kind() {
		case core.SaleBearing:
			t.Sale = t.Sale.Add(e.Sale)
			t.Profit = t.Profit.Add(e.Profit)
		case core.ExpenseOnly:
			t.Expense = t.Expense.Add(e.Cost)
		}
	}
	t.Savings = t.Profit.Sub(t.Expense)
	return t
}

// MonthlyArchive groups the entries by calendar (year, month), one
// summary per distinct pair, most recent first. Every entry lands in
// exactly one bucket.
func MonthlyArchive(entries []core.LedgerEntry) []core.MonthSummary {
	type key struct{ year, month int }
	seen := make(map[key]bool)
	var keys []key
	for _, e := range entries {
		k := key{e.Date.Year(), e.Date.Month()}
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year > keys[j].year
		}
		return keys[i].month > keys[j].month
	})

	out := make([]core.MonthSummary, 0, len(keys))
	for _, k := range keys {
		out = append(out, core.MonthSummary{
			Year:   k.year,
			Month:  k.month,
			Totals: Aggregate(entries, MonthScope(k.year, k.month)),
		})
	}
	return out
}
