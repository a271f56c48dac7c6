package http

import (
	"net/http"

	"github.com/farooq9092/Sajid-medical-store/internal/core"
)

type stockItemJSON struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Quantity string `json:"quantity"`
	Status   string `json:"status"`
}

func stockItemToJSON(it core.StockItem) stockItemJSON {
	return stockItemJSON{
		Name:     it.Name,
		Type:     string(it.Type),
		Quantity: it.Quantity,
		Status:   string(it.Status),
	}
}

func stockItemsToJSON(items []core.StockItem) []stockItemJSON {
	out := make([]stockItemJSON, 0, len(items))
	for _, it := range items {
		out = append(out, stockItemToJSON(it))
	}
	return out
}

func (s *Server) handleListStock(w http.ResponseWriter, r *http.Request) {
	items := s.tracker.All()
	writeJSON(w, http.StatusOK, map[string]any{
		"items": stockItemsToJSON(items),
		"count": len(items),
	})
}

type upsertStockRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Quantity string `json:"quantity"`
	OrderNow bool   `json:"order_now"`
}

func (s *Server) handleUpsertStock(w http.ResponseWriter, r *http.Request) {
	var req upsertStockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	name := sanitizeInput(req.Name)
	if err := s.tracker.Upsert(r.Context(), name, core.ParseStockType(req.Type), sanitizeInput(req.Quantity), req.OrderNow); err != nil {
		writeError(w, err)
		return
	}

	for _, it := range s.tracker.All() {
		if it.Name == name {
			writeJSON(w, http.StatusOK, stockItemToJSON(it))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleDeleteStock(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		writeBadRequest(w, "missing item name")
		return
	}
	if err := s.tracker.Delete(r.Context(), name); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOrdersNeeded(w http.ResponseWriter, r *http.Request) {
	items := s.tracker.OrdersNeeded()
	writeJSON(w, http.StatusOK, map[string]any{
		"items": stockItemsToJSON(items),
		"count": len(items),
	})
}
