package core

// Totals is the aggregation result for one scope (a day or a month).
type Totals struct {
	Sale    Money
	Profit  Money
	Expense Money
	Savings Money // Profit minus Expense; negative when spending outran profit
}

// MonthSummary is one row of the archive view, a month's totals keyed by
// calendar (year, month).
type MonthSummary struct {
	Year   int
	Month  int // 1-12
	Totals Totals
}
