package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/boutiquehq/boutique-backend/api/controllers"
	"github.com/boutiquehq/boutique-backend/api/middleware"
	"github.com/boutiquehq/boutique-backend/internal/catalog"
	orders "github.com/boutiquehq/boutique-backend/internal/orders"
	product "github.com/boutiquehq/boutique-backend/internal/products"
	sales "github.com/boutiquehq/boutique-backend/internal/sales"
	"github.com/boutiquehq/boutique-backend/internal/stock"
	store "github.com/boutiquehq/boutique-backend/internal/stores"
	"github.com/boutiquehq/boutique-backend/internal/webhooks/payment"
	"github.com/boutiquehq/boutique-backend/pkg/config"
	"github.com/boutiquehq/boutique-backend/pkg/db"
	"github.com/boutiquehq/boutique-backend/pkg/logger"
	"github.com/boutiquehq/boutique-backend/pkg/metrics"
	"github.com/boutiquehq/boutique-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry

	Stores   store.Service
	Catalog  catalog.Service
	Products product.Service
	Stock    stock.Service
	Orders   orders.Service
	Sales    sales.Service
	Payments payment.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if deps.HTTPMetrics != nil {
		r.Use(middleware.Metrics(deps.HTTPMetrics))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/payment", controllers.PaymentWebhook(cfg.Payment, deps.Payments, logg))
	})

	r.Route("/api/v1/stores", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Post("/", controllers.StoreCreate(deps.Stores, logg))
		r.Get("/", controllers.StoreList(deps.Stores, logg))

		r.Route("/{storeId}", func(r chi.Router) {
			r.Use(middleware.StoreContext(logg))

			r.Get("/", controllers.StoreDetail(deps.Stores, logg))
			r.Patch("/", controllers.StoreUpdate(deps.Stores, logg))
			r.Delete("/", controllers.StoreDelete(deps.Stores, logg))

			r.Get("/overview", controllers.Overview(deps.Sales, deps.Stock, logg))

			r.Route("/billboards", func(r chi.Router) {
				r.Post("/", controllers.BillboardCreate(deps.Catalog, logg))
				r.Get("/", controllers.BillboardList(deps.Catalog, logg))
				r.Get("/{billboardId}", controllers.BillboardDetail(deps.Catalog, logg))
				r.Patch("/{billboardId}", controllers.BillboardUpdate(deps.Catalog, logg))
				r.Delete("/{billboardId}", controllers.BillboardDelete(deps.Catalog, logg))
			})

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", controllers.CategoryCreate(deps.Catalog, logg))
				r.Get("/", controllers.CategoryList(deps.Catalog, logg))
				r.Get("/{categoryId}", controllers.CategoryDetail(deps.Catalog, logg))
				r.Patch("/{categoryId}", controllers.CategoryUpdate(deps.Catalog, logg))
				r.Delete("/{categoryId}", controllers.CategoryDelete(deps.Catalog, logg))
			})

			r.Route("/colors", func(r chi.Router) {
				r.Post("/", controllers.ColorCreate(deps.Catalog, logg))
				r.Get("/", controllers.ColorList(deps.Catalog, logg))
				r.Get("/{colorId}", controllers.ColorDetail(deps.Catalog, logg))
				r.Patch("/{colorId}", controllers.ColorUpdate(deps.Catalog, logg))
				r.Delete("/{colorId}", controllers.ColorDelete(deps.Catalog, logg))
			})

			r.Route("/sizes", func(r chi.Router) {
				r.Post("/", controllers.SizeCreate(deps.Catalog, logg))
				r.Get("/", controllers.SizeList(deps.Catalog, logg))
				r.Get("/{sizeId}", controllers.SizeDetail(deps.Catalog, logg))
				r.Patch("/{sizeId}", controllers.SizeUpdate(deps.Catalog, logg))
				r.Delete("/{sizeId}", controllers.SizeDelete(deps.Catalog, logg))
			})

			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.ProductCreate(deps.Products, logg))
				r.Get("/", controllers.ProductList(deps.Products, logg))
				r.Route("/{productId}", func(r chi.Router) {
					r.Get("/", controllers.ProductDetail(deps.Products, logg))
					r.Patch("/", controllers.ProductUpdate(deps.Products, logg))
					r.Delete("/", controllers.ProductDelete(deps.Products, logg))
					r.Get("/variations", controllers.ProductVariationsList(deps.Products, logg))
					r.Post("/variations", controllers.ProductVariationsReplace(deps.Products, logg))
					r.Post("/stock", controllers.ProductStockAdjust(deps.Stock, logg))
				})
			})

			r.Post("/variations/{variationId}/stock", controllers.VariationStockAdjust(deps.Stock, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderList(deps.Orders, logg))
				r.Post("/delete-multiple", controllers.OrdersDeleteMultiple(deps.Orders, logg))
				r.Get("/{orderId}", controllers.OrderDetail(deps.Orders, logg))
				r.Delete("/{orderId}", controllers.OrderDelete(deps.Orders, logg))
			})

			r.Route("/sales", func(r chi.Router) {
				r.Post("/", controllers.SaleCreate(deps.Sales, logg))
				r.Get("/", controllers.SaleList(deps.Sales, logg))
				r.Delete("/{saleId}", controllers.SaleDelete(deps.Sales, logg))
			})
		})
	})

	return r
}
