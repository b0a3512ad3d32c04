package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/boutiquehq/boutique-backend/api/middleware"
	product "github.com/boutiquehq/boutique-backend/internal/products"
	"github.com/boutiquehq/boutique-backend/pkg/logger"
)

type stubProductService struct {
	deleteCalled bool
	deletedID    uuid.UUID
}

func (s *stubProductService) CreateProduct(ctx context.Context, ownerID string, storeID uuid.UUID, input product.CreateProductInput) (*product.ProductDTO, error) {
	return &product.ProductDTO{}, nil
}

func (s *stubProductService) UpdateProduct(ctx context.Context, ownerID string, storeID, productID uuid.UUID, input product.UpdateProductInput) (*product.ProductDTO, error) {
	return &product.ProductDTO{}, nil
}

func (s *stubProductService) ReplaceVariations(ctx context.Context, ownerID string, storeID, productID uuid.UUID, variations []product.VariationInput) (*product.ProductDTO, error) {
	return &product.ProductDTO{}, nil
}

func (s *stubProductService) DeleteProduct(ctx context.Context, ownerID string, storeID, productID uuid.UUID) error {
	s.deleteCalled = true
	s.deletedID = productID
	return nil
}

func (s *stubProductService) GetProduct(ctx context.Context, ownerID string, storeID, productID uuid.UUID) (*product.ProductDTO, error) {
	return &product.ProductDTO{ID: productID}, nil
}

func (s *stubProductService) ListProducts(ctx context.Context, ownerID string, input product.ListProductsInput) (*product.ProductListResult, error) {
	return &product.ProductListResult{}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func TestProductDelete(t *testing.T) {
	logg := testLogger()
	storeID := uuid.New()
	userID := uuid.New()
	productID := uuid.New()

	buildRequest := func(ctx context.Context, storeParam, productParam string) *http.Request {
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("storeId", storeParam)
		routeCtx.URLParams.Add("productId", productParam)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/stores/"+storeParam+"/products/"+productParam, nil)
		return req.WithContext(ctx)
	}

	t.Run("missing user", func(t *testing.T) {
		req := buildRequest(context.Background(), storeID.String(), productID.String())
		rec := httptest.NewRecorder()
		ProductDelete(&stubProductService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 when user missing, got %d", rec.Code)
		}
	})

	t.Run("invalid product id", func(t *testing.T) {
		ctx := middleware.WithUserID(context.Background(), userID.String())
		req := buildRequest(ctx, storeID.String(), "not-a-uuid")
		rec := httptest.NewRecorder()
		ProductDelete(&stubProductService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for invalid id, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctx := middleware.WithUserID(context.Background(), userID.String())
		req := buildRequest(ctx, storeID.String(), productID.String())
		stub := &stubProductService{}
		rec := httptest.NewRecorder()
		ProductDelete(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 on success, got %d", rec.Code)
		}
		if !stub.deleteCalled {
			t.Fatalf("expected DeleteProduct to be invoked")
		}
		if stub.deletedID != productID {
			t.Fatalf("expected product %s deleted, got %s", productID, stub.deletedID)
		}
	})
}

func TestProductCreateRejectsMissingImages(t *testing.T) {
	logg := testLogger()
	storeID := uuid.New()

	body := `{"name":"Tee","price":"12.50","category_id":"` + uuid.NewString() + `","images":[]}`
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("storeId", storeID.String())
	ctx := middleware.WithUserID(context.Background(), uuid.NewString())
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/stores/"+storeID.String()+"/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	ProductCreate(&stubProductService{}, logg).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty images, got %d", rec.Code)
	}
}
