package http

import (
	"net/http"

	"github.com/farooq9092/Sajid-medical-store/internal/core"
	"github.com/farooq9092/Sajid-medical-store/internal/ledger"
)

type entryJSON struct {
	Position int    `json:"position"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Item     string `json:"item"`
	Cost     string `json:"cost"`
	Sale     string `json:"sale"`
	Profit   string `json:"profit"`
	Payment  string `json:"payment"`
	Kind     string `json:"kind"`
}

func entryToJSON(pos int, e core.LedgerEntry) entryJSON {
	return entryJSON{
		Position: pos,
		Date:     e.Date.Format(),
		Category: e.Category,
		Item:     e.Item,
		Cost:     e.Cost.String(),
		Sale:     e.Sale.String(),
		Profit:   e.Profit.String(),
		Payment:  string(e.Payment),
		Kind:     string(e.Kind()),
	}
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries := s.book.All()
	out := make([]entryJSON, 0, len(entries))
	for i, e := range entries {
		out = append(out, entryToJSON(i, e))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": out,
		"count":   len(out),
	})
}

type createEntryRequest struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Item     string `json:"item"`
	Cost     string `json:"cost"`
	Sale     string `json:"sale"`
	Payment  string `json:"payment"`
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	date := core.Today()
	if req.Date != "" {
		var err error
		if date, err = core.ParseDate(req.Date); err != nil {
			writeError(w, err)
			return
		}
	}

	costPaisa, err := core.ParseDecimalToPaisa(req.Cost)
	if err != nil {
		writeError(w, err)
		return
	}
	salePaisa := int64(0)
	if req.Sale != "" {
		if salePaisa, err = core.ParseDecimalToPaisa(req.Sale); err != nil {
			writeError(w, err)
			return
		}
	}

	e := core.NewLedgerEntry(date,
		sanitizeInput(req.Category),
		sanitizeInput(req.Item),
		core.Money{Paisa: costPaisa},
		core.Money{Paisa: salePaisa},
		core.ParsePayment(req.Payment))

	if err := s.book.Append(r.Context(), e); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entryToJSON(s.book.Len()-1, e))
}

type updateEntryRequest struct {
	Cost string `json:"cost"`
	Sale string `json:"sale"`
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	pos, ok := parsePos(r)
	if !ok {
		writeBadRequest(w, "invalid position")
		return
	}
	var req updateEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	costPaisa, err := core.ParseDecimalToPaisa(req.Cost)
	if err != nil {
		writeError(w, err)
		return
	}
	salePaisa, err := core.ParseDecimalToPaisa(req.Sale)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.book.UpdateAt(r.Context(), pos, core.Money{Paisa: salePaisa}, core.Money{Paisa: costPaisa}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entryToJSON(pos, s.book.All()[pos]))
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	pos, ok := parsePos(r)
	if !ok {
		writeBadRequest(w, "invalid position")
		return
	}
	if err := s.book.DeleteAt(r.Context(), pos); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDayReport(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r, "date")
	if err != nil {
		writeError(w, err)
		return
	}
	totals := ledger.Aggregate(s.book.All(), ledger.DayScope(date))
	writeJSON(w, http.StatusOK, map[string]any{
		"date":   date.Format(),
		"totals": totalsToJSON(totals),
	})
}

func (s *Server) handleMonthReport(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	totals := ledger.Aggregate(s.book.All(), ledger.MonthScope(year, month))
	writeJSON(w, http.StatusOK, map[string]any{
		"year":   year,
		"month":  month,
		"totals": totalsToJSON(totals),
	})
}

type monthSummaryJSON struct {
	Year   int        `json:"year"`
	Month  int        `json:"month"`
	Totals totalsJSON `json:"totals"`
}

func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	archive := ledger.MonthlyArchive(s.book.All())
	out := make([]monthSummaryJSON, 0, len(archive))
	for _, m := range archive {
		out = append(out, monthSummaryJSON{Year: m.Year, Month: m.Month, Totals: totalsToJSON(m.Totals)})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"months": out,
		"count":  len(out),
	})
}
