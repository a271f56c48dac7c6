package ledger

import (
	"github.com/farooq9092/Sajid-medical-store/internal/core"
	"github.com/farooq9092/Sajid-medical-store/internal/tabular"
)

// entryToRow renders an entry in the persisted column order:
// Date, Category, Item, Cost, Sale, Profit, Payment.
func entryToRow(e core.LedgerEntry) []string {
	return []string{
		e.Date.Format(),
		e.Category,
		e.Item,
		e.Cost.String(),
		e.Sale.String(),
		e.Profit.String(),
		string(e.Payment),
	}
}

// rowToEntry parses one persisted row. The bool result is false for rows
// that cannot be read back (bad date or amounts); such rows are dropped
// rather than surfaced as errors, matching the forgiving load contract.
func rowToEntry(row []string) (core.LedgerEntry, bool) {
	date, err := core.ParseDate(row[0])
	if err != nil {
		return core.LedgerEntry{}, false
	}
	cost, err := core.ParseDecimalToPaisa(row[3])
	if err != nil {
		return core.LedgerEntry{}, false
	}
	sale, err := core.ParseDecimalToPaisa(row[4])
	if err != nil {
		return core.LedgerEntry{}, false
	}
	e := core.LedgerEntry{
		Date:     date,
		Category: row[1],
		Item:     row[2],
		Cost:     core.Money{Paisa: cost},
		Sale:     core.Money{Paisa: sale},
		Payment:  core.ParsePayment(row[6]),
	}
	// Profit is trusted from the file for sale-bearing rows and recomputed
	// when unreadable; expense-only rows are pinned to zero either way.
	if e.Kind() == core.SaleBearing {
		if p, err := core.ParseSignedToPaisa(row[5]); err == nil {
			e.Profit = core.Money{Paisa: p}
		} else {
			e.Profit = e.Sale.Sub(e.Cost)
		}
	}
	return e, true
}

// tableFromEntries renders the whole book as a snapshot table.
func tableFromEntries(entries []core.LedgerEntry) tabular.Table {
	t := tabular.Empty(tabular.LedgerSchema)
	for _, e := range entries {
		t.Rows = append(t.Rows, entryToRow(e))
	}
	return t
}

// entriesFromTable parses a snapshot table, dropping unreadable rows.
func entriesFromTable(t tabular.Table) []core.LedgerEntry {
	var entries []core.LedgerEntry
	for _, row := range t.Rows {
		if e, ok := rowToEntry(row); ok {
			entries = append(entries, e)
		}
	}
	return entries
}
