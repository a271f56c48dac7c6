// Package gsheet mirrors tables into a Google Spreadsheet, one worksheet
// per table key. The shopkeeper reads the spreadsheet as a dashboard; the
// application treats it as just another table store.
package gsheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/farooq9092/Sajid-medical-store/internal/tabular"
)

type Store struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewFromEnv creates a Sheets-backed store using environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus service account credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Store, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Store{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func newSheetsService(ctx context.Context) (*sheets.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		data, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	return sheets.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(sheets.SpreadsheetsScope))
}

// Load reads the worksheet for key into a table. Any read problem yields
// an empty schema-shaped table.
func (s *Store) Load(ctx context.Context, key string, schema []string) tabular.Table {
	rng := fmt.Sprintf("%s!A1:Z", sheetTitle(key))
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		slog.WarnContext(ctx, "Sheet read failed, treating as empty",
			"key", key, "error", err)
		return tabular.Empty(schema)
	}
	return FromMatrix(resp.Values, schema)
}

// Save clears the worksheet for key and rewrites it from the table. The
// change description is ignored; spreadsheets keep no commit log.
func (s *Store) Save(ctx context.Context, key string, t tabular.Table, _ string) error {
	title := sheetTitle(key)
	rng := fmt.Sprintf("%s!A1:Z", title)

	if _, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, rng, &sheets.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear sheet %s: %w", title, err)
	}

	vr := &sheets.ValueRange{Values: ToMatrix(t)}
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, fmt.Sprintf("%s!A1", title), vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write sheet %s: %w", title, err)
	}
	return nil
}

// sheetTitle maps a table key to a worksheet title: the file name without
// its extension ("ledger.csv" becomes "ledger").
func sheetTitle(key string) string {
	if i := strings.LastIndex(key, "."); i > 0 {
		return key[:i]
	}
	return key
}

// ToMatrix converts a table to the value matrix the Sheets API expects.
func ToMatrix(t tabular.Table) [][]any {
	out := make([][]any, 0, len(t.Rows)+1)
	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	out = append(out, header)
	for _, row := range t.Rows {
		vals := make([]any, len(row))
		for i, v := range row {
			vals[i] = v
		}
		out = append(out, vals)
	}
	return out
}

// FromMatrix converts a Sheets value matrix into a table shaped to the
// schema, applying the same forgiving rules as the CSV decoder: a missing
// or mismatched header yields an empty table, short rows are padded and
// long rows truncated to the schema width.
func FromMatrix(values [][]any, schema []string) tabular.Table {
	if len(values) == 0 {
		return tabular.Empty(schema)
	}
	header := toStrings(values[0])
	if !(tabular.Table{Header: header}).HasHeader(schema) {
		return tabular.Empty(schema)
	}
	t := tabular.Empty(schema)
	for _, raw := range values[1:] {
		row := toStrings(raw)
		for len(row) < len(schema) {
			row = append(row, "")
		}
		t.Rows = append(t.Rows, row[:len(schema)])
	}
	return t
}

func toStrings(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

var _ tabular.Store = (*Store)(nil)
