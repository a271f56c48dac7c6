// Package http exposes the store over a JSON API: ledger entries and
// reports, the stock reorder list, and the inventory dashboard.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/farooq9092/Sajid-medical-store/internal/inventory"
	"github.com/farooq9092/Sajid-medical-store/internal/ledger"
	"github.com/farooq9092/Sajid-medical-store/internal/stock"
)

type Server struct {
	http.Server
	book         *ledger.Book
	tracker      *stock.Tracker
	catalog      *inventory.Catalog
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, book *ledger.Book, tracker *stock.Tracker, catalog *inventory.Catalog) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		book:    book,
		tracker: tracker,
		catalog: catalog,
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("GET /ledger/entries", s.withMiddleware(s.handleListEntries))
	mux.HandleFunc("POST /ledger/entries", s.withMiddleware(s.handleCreateEntry))
	mux.HandleFunc("PATCH /ledger/entries/{pos}", s.withMiddleware(s.handleUpdateEntry))
	mux.HandleFunc("DELETE /ledger/entries/{pos}", s.withMiddleware(s.handleDeleteEntry))
	mux.HandleFunc("GET /ledger/reports/day", s.withMiddleware(s.handleDayReport))
	mux.HandleFunc("GET /ledger/reports/month", s.withMiddleware(s.handleMonthReport))
	mux.HandleFunc("GET /ledger/archive", s.withMiddleware(s.handleArchive))

	mux.HandleFunc("GET /stock/items", s.withMiddleware(s.handleListStock))
	mux.HandleFunc("POST /stock/items", s.withMiddleware(s.handleUpsertStock))
	mux.HandleFunc("DELETE /stock/items/{name}", s.withMiddleware(s.handleDeleteStock))
	mux.HandleFunc("GET /stock/orders", s.withMiddleware(s.handleOrdersNeeded))

	mux.HandleFunc("GET /inventory/products", s.withMiddleware(s.handleListProducts))
	mux.HandleFunc("POST /inventory/products", s.withMiddleware(s.handleAddProduct))
	mux.HandleFunc("POST /inventory/sales", s.withMiddleware(s.handleRecordSale))
	mux.HandleFunc("GET /inventory/alerts", s.withMiddleware(s.handleAlerts))
	mux.HandleFunc("GET /dashboard", s.withMiddleware(s.handleDashboard))

	return s
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// withMiddleware adds security headers and request logging to a handler.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(r.Context(), "Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status_code", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// sanitizeInput removes control characters and trims whitespace from
// free-text fields before they reach the persisted tables.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 {
			return -1
		}
		return r
	}, s)
}
