package http

import (
	"net/http"

	"github.com/farooq9092/Sajid-medical-store/internal/core"
	"github.com/farooq9092/Sajid-medical-store/internal/ledger"
)

type productJSON struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"min_stock"`
	Price    string `json:"price"`
	Expiry   string `json:"expiry"`
}

func productToJSON(p core.Product) productJSON {
	return productJSON{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Stock:    p.Stock,
		MinStock: p.MinStock,
		Price:    p.Price.String(),
		Expiry:   p.Expiry.Format(),
	}
}

func productsToJSON(products []core.Product) []productJSON {
	out := make([]productJSON, 0, len(products))
	for _, p := range products {
		out = append(out, productToJSON(p))
	}
	return out
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products := s.catalog.All()
	writeJSON(w, http.StatusOK, map[string]any{
		"products": productsToJSON(products),
		"count":    len(products),
	})
}

type addProductRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"min_stock"`
	Price    string `json:"price"`
	Expiry   string `json:"expiry"`
}

func (s *Server) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	var req addProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	pricePaisa, err := core.ParseDecimalToPaisa(req.Price)
	if err != nil {
		writeError(w, err)
		return
	}
	expiry, err := core.ParseDate(req.Expiry)
	if err != nil {
		writeError(w, err)
		return
	}

	p, err := s.catalog.Add(sanitizeInput(req.Name), sanitizeInput(req.Category),
		req.Stock, req.MinStock, core.Money{Paisa: pricePaisa}, expiry)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, productToJSON(p))
}

type recordSaleRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (s *Server) handleRecordSale(w http.ResponseWriter, r *http.Request) {
	var req recordSaleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	remaining, err := s.catalog.RecordSale(req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
		"remaining":  remaining,
	})
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	today := core.Today()
	writeJSON(w, http.StatusOK, map[string]any{
		"low_stock":     productsToJSON(s.catalog.LowStock()),
		"expired":       productsToJSON(s.catalog.Expired(today)),
		"expiring_soon": productsToJSON(s.catalog.ExpiringSoon(today)),
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	today := core.Today()
	summary := s.catalog.Summary(today)
	todayTotals := ledger.Aggregate(s.book.All(), ledger.DayScope(today))

	writeJSON(w, http.StatusOK, map[string]any{
		"date": today.Format(),
		"inventory": map[string]any{
			"total_products":  summary.TotalProducts,
			"inventory_value": summary.InventoryValue.String(),
			"low_stock_count": summary.LowStockCount,
			"expiry_alerts":   summary.ExpiryAlerts,
		},
		"today":         totalsToJSON(todayTotals),
		"orders_needed": len(s.tracker.OrdersNeeded()),
	})
}
