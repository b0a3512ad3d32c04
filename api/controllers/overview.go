package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/boutiquehq/boutique-backend/api/responses"
	sales "github.com/boutiquehq/boutique-backend/internal/sales"
	"github.com/boutiquehq/boutique-backend/internal/stock"
	"github.com/boutiquehq/boutique-backend/pkg/logger"
)

type overviewResponse struct {
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	SalesCount      int64           `json:"sales_count"`
	StockCount      int64           `json:"stock_count"`
	ProductsInStock int64           `json:"products_in_stock"`
}

// Overview aggregates the dashboard counters for one store.
func Overview(saleSvc sales.Service, stockSvc stock.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := principal(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := storeIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		revenue, err := saleSvc.TotalRevenue(r.Context(), ownerID, storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		salesCount, err := saleSvc.SalesCount(r.Context(), ownerID, storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		stockCount, err := stockSvc.StockCount(r.Context(), ownerID, storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		inStock, err := stockSvc.ProductsInStock(r.Context(), ownerID, storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, overviewResponse{
			TotalRevenue:    revenue,
			SalesCount:      salesCount,
			StockCount:      stockCount,
			ProductsInStock: inStock,
		})
	}
}
