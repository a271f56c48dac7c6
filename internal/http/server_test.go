package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/farooq9092/Sajid-medical-store/internal/core"
	"github.com/farooq9092/Sajid-medical-store/internal/inventory"
	"github.com/farooq9092/Sajid-medical-store/internal/ledger"
	"github.com/farooq9092/Sajid-medical-store/internal/stock"
	"github.com/farooq9092/Sajid-medical-store/internal/tabular/memory"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	book := ledger.Open(ctx, store, "ledger.csv", nil)
	tracker := stock.Open(ctx, store, "stock.csv", nil)
	catalog := inventory.NewSeeded(core.Today())

	s := NewServer(":0", book, tracker, catalog)
	ts := httptest.NewServer(s.Server.Handler)
	t.Cleanup(ts.Close)
	return s, ts
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp, decoded
}

func TestHealthEndpoints(t *testing.T) {
	_, ts := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s = %d", path, resp.StatusCode)
		}
	}
}

func TestCreateEntryAndDayReport(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/ledger/entries", map[string]any{
		"date":     "2024-03-15",
		"category": "Medicine",
		"item":     "Panadol strip",
		"cost":     "50",
		"sale":     "80",
		"payment":  "Cash",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create entry = %d: %v", resp.StatusCode, body)
	}
	if body["profit"] != "30" {
		t.Fatalf("profit = %v", body["profit"])
	}
	if body["kind"] != "sale" {
		t.Fatalf("kind = %v", body["kind"])
	}

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/ledger/entries", map[string]any{
		"date":     "2024-03-15",
		"category": "Ghar Kharcha",
		"item":     "Groceries",
		"cost":     "200",
		"payment":  "Cash",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create expense = %d: %v", resp.StatusCode, body)
	}
	if body["profit"] != "0" {
		t.Fatalf("expense profit = %v", body["profit"])
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/ledger/reports/day?date=2024-03-15", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("day report = %d", resp.StatusCode)
	}
	totals := body["totals"].(map[string]any)
	if totals["sale"] != "80" || totals["profit"] != "30" || totals["expense"] != "200" || totals["savings"] != "-170" {
		t.Fatalf("totals = %v", totals)
	}
}

func TestCreateEntryValidation(t *testing.T) {
	_, ts := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/ledger/entries", map[string]any{
		"date":     "2024-03-15",
		"category": "Medicine",
		"item":     "",
		"cost":     "50",
		"sale":     "80",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("empty item = %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/ledger/entries", map[string]any{
		"date":     "not-a-date",
		"category": "Medicine",
		"item":     "Panadol",
		"cost":     "50",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("bad date = %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/ledger/entries", map[string]any{
		"date":     "2024-03-15",
		"category": "Medicine",
		"item":     "Panadol",
		"cost":     "-50",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("negative cost = %d", resp.StatusCode)
	}
}

func TestUpdateAndDeleteEntry(t *testing.T) {
	_, ts := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/ledger/entries", map[string]any{
		"date":     "2024-03-15",
		"category": "Medicine",
		"item":     "Panadol",
		"cost":     "50",
		"sale":     "80",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create = %d", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodPatch, ts.URL+"/ledger/entries/0", map[string]any{
		"cost": "60",
		"sale": "100",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update = %d: %v", resp.StatusCode, body)
	}
	if body["profit"] != "40" {
		t.Fatalf("recomputed profit = %v", body["profit"])
	}

	resp, _ = doJSON(t, http.MethodPatch, ts.URL+"/ledger/entries/7", map[string]any{
		"cost": "1", "sale": "2",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("update out of range = %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/ledger/entries/0", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete = %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/ledger/entries/0", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("delete empty book = %d", resp.StatusCode)
	}
}

func TestMonthReportAndArchive(t *testing.T) {
	_, ts := newTestServer(t)

	for _, e := range []map[string]any{
		{"date": "2024-03-01", "category": "Medicine", "item": "A", "cost": "10", "sale": "30"},
		{"date": "2024-03-20", "category": "Medicine", "item": "B", "cost": "5", "sale": "10"},
		{"date": "2024-05-02", "category": "Shop Expense", "item": "Rent", "cost": "500"},
	} {
		resp, _ := doJSON(t, http.MethodPost, ts.URL+"/ledger/entries", e)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("seed entry = %d", resp.StatusCode)
		}
	}

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/ledger/reports/month?year=2024&month=3", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("month report = %d", resp.StatusCode)
	}
	totals := body["totals"].(map[string]any)
	if totals["sale"] != "40" || totals["profit"] != "25" {
		t.Fatalf("march totals = %v", totals)
	}

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/ledger/reports/month?year=2024&month=13", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("month 13 = %d", resp.StatusCode)
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/ledger/archive", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("archive = %d", resp.StatusCode)
	}
	months := body["months"].([]any)
	if len(months) != 2 {
		t.Fatalf("archive months = %d", len(months))
	}
	first := months[0].(map[string]any)
	if first["year"] != float64(2024) || first["month"] != float64(5) {
		t.Fatalf("archive not newest-first: %v", first)
	}
}

func TestStockEndpoints(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/stock/items", map[string]any{
		"name":      "Panadol",
		"type":      "Tablet",
		"quantity":  "2 strips",
		"order_now": true,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upsert = %d: %v", resp.StatusCode, body)
	}
	if body["status"] != "OrderNow" {
		t.Fatalf("status = %v", body["status"])
	}

	// Upsert with the same name replaces the row.
	resp, body = doJSON(t, http.MethodPost, ts.URL+"/stock/items", map[string]any{
		"name":     "Panadol",
		"type":     "Tablet",
		"quantity": "10 strips",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("second upsert = %d", resp.StatusCode)
	}
	if body["status"] != "OK" || body["quantity"] != "10 strips" {
		t.Fatalf("replaced row = %v", body)
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/stock/items", nil)
	if resp.StatusCode != http.StatusOK || body["count"] != float64(1) {
		t.Fatalf("list = %d, count = %v", resp.StatusCode, body["count"])
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/stock/orders", nil)
	if resp.StatusCode != http.StatusOK || body["count"] != float64(0) {
		t.Fatalf("orders = %d, count = %v", resp.StatusCode, body["count"])
	}

	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/stock/items/Aspirin", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("delete unknown = %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/stock/items/Panadol", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete = %d", resp.StatusCode)
	}
}

func TestInventoryEndpoints(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/inventory/products", map[string]any{
		"name":      "Cough Syrup",
		"category":  "Cold",
		"stock":     40,
		"min_stock": 10,
		"price":     "90",
		"expiry":    "2027-01-01",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add product = %d: %v", resp.StatusCode, body)
	}
	if body["id"] != float64(106) {
		t.Fatalf("assigned id = %v", body["id"])
	}

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/inventory/sales", map[string]any{
		"product_id": 101,
		"quantity":   10,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("record sale = %d: %v", resp.StatusCode, body)
	}
	if body["remaining"] != float64(40) {
		t.Fatalf("remaining = %v", body["remaining"])
	}

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/inventory/sales", map[string]any{
		"product_id": 101,
		"quantity":   1000,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("oversell = %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/inventory/sales", map[string]any{
		"product_id": 999,
		"quantity":   1,
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown product = %d", resp.StatusCode)
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/inventory/alerts", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("alerts = %d", resp.StatusCode)
	}
	low := body["low_stock"].([]any)
	expired := body["expired"].([]any)
	soon := body["expiring_soon"].([]any)
	// Seeded data: Insulin (4/10) and Ibuprofen (15/20) low, Ibuprofen
	// expired, Insulin expiring within the window.
	if len(low) != 2 || len(expired) != 1 || len(soon) != 1 {
		t.Fatalf("alerts low=%d expired=%d soon=%d", len(low), len(expired), len(soon))
	}
}

func TestDashboard(t *testing.T) {
	_, ts := newTestServer(t)

	today := core.Today().Format()
	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/ledger/entries", map[string]any{
		"date":     today,
		"category": "Medicine",
		"item":     "Panadol",
		"cost":     "50",
		"sale":     "80",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("seed entry = %d", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/dashboard", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard = %d", resp.StatusCode)
	}
	if body["date"] != today {
		t.Fatalf("dashboard date = %v", body["date"])
	}
	inv := body["inventory"].(map[string]any)
	if inv["total_products"] != float64(5) {
		t.Fatalf("total products = %v", inv["total_products"])
	}
	if inv["inventory_value"] != "8270" {
		t.Fatalf("inventory value = %v", inv["inventory_value"])
	}
	totals := body["today"].(map[string]any)
	if totals["profit"] != "30" {
		t.Fatalf("today profit = %v", totals["profit"])
	}
}

func TestUnknownFieldRejected(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/ledger/entries", map[string]any{
		"category": "Medicine",
		"item":     "Panadol",
		"cost":     "50",
		"bogus":    true,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown field = %d: %v", resp.StatusCode, body)
	}
	if _, ok := body["error"]; !ok {
		t.Fatalf("expected error body, got %v", body)
	}
}

func TestStatusForMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{core.ErrOutOfRange, http.StatusNotFound},
		{core.ErrUnknownItem, http.StatusNotFound},
		{core.ErrInsufficientStock, http.StatusConflict},
		{core.ErrInvalidDate, http.StatusUnprocessableEntity},
		{core.ErrInvalidAmount, http.StatusUnprocessableEntity},
		{fmt.Errorf("wrapped: %w", core.ErrEmptyCategory), http.StatusUnprocessableEntity},
		{fmt.Errorf("plain failure"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Fatalf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
