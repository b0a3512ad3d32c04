package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRouteTTL(t *testing.T) {
	storeID := "0b0f9cb3-5a52-4c8e-9a7e-1f6f6a3f1a11"
	cases := []struct {
		name    string
		method  string
		path    string
		wantTTL time.Duration
		match   bool
	}{
		{
			name:    "bulk order delete",
			method:  http.MethodPost,
			path:    "/api/v1/stores/" + storeID + "/orders/delete-multiple",
			wantTTL: defaultIdempotencyTTL,
			match:   true,
		},
		{
			name:    "sale create",
			method:  http.MethodPost,
			path:    "/api/v1/stores/" + storeID + "/sales",
			wantTTL: criticalIdempotencyTTL,
			match:   true,
		},
		{
			name:    "product stock adjust",
			method:  http.MethodPost,
			path:    "/api/v1/stores/" + storeID + "/products/9d3427a8-1b15-4df0-8f55-111111111111/stock",
			wantTTL: criticalIdempotencyTTL,
			match:   true,
		},
		{
			name:    "variation stock adjust with trailing slash",
			method:  http.MethodPost,
			path:    "/api/v1/stores/" + storeID + "/variations/9d3427a8-1b15-4df0-8f55-222222222222/stock/",
			wantTTL: criticalIdempotencyTTL,
			match:   true,
		},
		{
			name:   "get is never guarded",
			method: http.MethodGet,
			path:   "/api/v1/stores/" + storeID + "/sales",
		},
		{
			name:   "product detail",
			method: http.MethodPost,
			path:   "/api/v1/stores/" + storeID + "/products",
		},
		{
			name:   "deeper path does not match",
			method: http.MethodPost,
			path:   "/api/v1/stores/" + storeID + "/products/x/y/stock",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			ttl, ok := routeTTL(tc.method, routePattern(req))
			if ok != tc.match {
				t.Fatalf("match = %v, want %v", ok, tc.match)
			}
			if tc.match && ttl != tc.wantTTL {
				t.Fatalf("ttl = %v, want %v", ttl, tc.wantTTL)
			}
		})
	}
}

func TestMatchPathRejectsEmptySegment(t *testing.T) {
	matcher := matchPath("/api/v1/stores/*/sales")
	if matcher("/api/v1/stores//sales") {
		t.Fatalf("empty wildcard segment must not match")
	}
}

func TestBuildScopeKeysPrincipalMethodAndPath(t *testing.T) {
	path := "/api/v1/stores/0b0f9cb3-5a52-4c8e-9a7e-1f6f6a3f1a11/sales"
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req = req.WithContext(WithUserID(req.Context(), "user_1"))

	got := buildScope(req)
	want := "user_1|POST|" + path
	if got != want {
		t.Fatalf("expected scope %q, got %q", want, got)
	}

	// The same key replayed against another store's path must not collide.
	otherPath := "/api/v1/stores/7d3c1f2e-9d41-4f7a-8f25-bd5a2c9f0e44/sales"
	other := httptest.NewRequest(http.MethodPost, otherPath, nil)
	other = other.WithContext(WithUserID(other.Context(), "user_1"))
	if buildScope(other) == got {
		t.Fatal("expected distinct scopes for distinct store paths")
	}
}
