package tabular

import (
	"bytes"
	"encoding/csv"
	"strings"
)

// Fixed table schemas. Column order is part of the wire format and must
// not change: existing CSV files in the remote store depend on it.
var (
	LedgerSchema = []string{"Date", "Category", "Item", "Cost", "Sale", "Profit", "Payment"}
	StockSchema  = []string{"Medicine Name", "Type", "Quantity", "Status"}
)

// Table is an in-memory CSV table: a header plus data rows. Rows are
// positional; every row is expected to have len(Header) fields.
type Table struct {
	Header []string
	Rows   [][]string
}

// Empty returns a table with the given header and no rows, the shape
// Load falls back to when a key is missing or unreadable.
func Empty(schema []string) Table {
	return Table{Header: append([]string(nil), schema...)}
}

// HasHeader reports whether the table's header matches the schema,
// ignoring surrounding whitespace.
func (t Table) HasHeader(schema []string) bool {
	if len(t.Header) != len(schema) {
		return false
	}
	for i, col := range schema {
		if strings.TrimSpace(t.Header[i]) != col {
			return false
		}
	}
	return true
}

// Append returns a copy of the table with one more row.
func (t Table) Append(row []string) Table {
	rows := make([][]string, 0, len(t.Rows)+1)
	rows = append(rows, t.Rows...)
	rows = append(rows, row)
	return Table{Header: t.Header, Rows: rows}
}

// EncodeCSV serializes the table as comma-separated rows, header first.
func (t Table) EncodeCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeCSV parses CSV content into a table shaped to the schema. Any
// problem (empty content, parse error, header mismatch) yields the empty
// shaped table: a forgiving default, not an error path. Rows with the
// wrong field count are dropped.
func DecodeCSV(content []byte, schema []string) Table {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil || len(records) == 0 {
		return Empty(schema)
	}
	t := Table{Header: records[0]}
	if !t.HasHeader(schema) {
		return Empty(schema)
	}
	t.Header = append([]string(nil), schema...)
	for _, rec := range records[1:] {
		if len(rec) != len(schema) {
			continue
		}
		t.Rows = append(t.Rows, rec)
	}
	return t
}
