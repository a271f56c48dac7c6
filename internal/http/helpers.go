package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/farooq9092/Sajid-medical-store/internal/core"
	"github.com/farooq9092/Sajid-medical-store/internal/tabular"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrOutOfRange), errors.Is(err, core.ErrUnknownItem):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInsufficientStock), errors.Is(err, tabular.ErrStaleWrite):
		return http.StatusConflict
	case errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyItem),
		errors.Is(err, core.ErrEmptyCategory),
		errors.Is(err, core.ErrInvalidPayment):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// parsePos reads the {pos} path segment as a zero-based entry position.
func parsePos(r *http.Request) (int, bool) {
	pos, err := strconv.Atoi(r.PathValue("pos"))
	if err != nil {
		return 0, false
	}
	return pos, true
}

// parseDateParam reads a YYYY-MM-DD query parameter, defaulting to today
// when absent.
func parseDateParam(r *http.Request, name string) (core.Date, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return core.Today(), nil
	}
	return core.ParseDate(v)
}

// parseYearMonth reads year and month query parameters, defaulting to the
// current calendar month.
func parseYearMonth(r *http.Request) (int, int, error) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())
	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, errors.New("invalid year parameter")
		}
		year = y
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, errors.New("invalid month parameter")
		}
		month = m
	}
	return year, month, nil
}

type totalsJSON struct {
	Sale    string `json:"sale"`
	Profit  string `json:"profit"`
	Expense string `json:"expense"`
	Savings string `json:"savings"`
}

func totalsToJSON(t core.Totals) totalsJSON {
	return totalsJSON{
		Sale:    t.Sale.String(),
		Profit:  t.Profit.String(),
		Expense: t.Expense.String(),
		Savings: t.Savings.String(),
	}
}
