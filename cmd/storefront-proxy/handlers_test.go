package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/efren-tilemart/judgeme-proxy/pkg/catalog"
	"github.com/efren-tilemart/judgeme-proxy/pkg/logging"
	"github.com/efren-tilemart/judgeme-proxy/pkg/pricing"
	"github.com/efren-tilemart/judgeme-proxy/pkg/upstream"
)

// stubCatalog answers both resolver chunks and single-product lookups
// from a fixed product set.
type stubCatalog struct {
	products map[string]catalog.RawProduct
	calls    int
}

func (s *stubCatalog) ProductsByHandles(ctx context.Context, handles []string) ([]catalog.RawProduct, error) {
	s.calls++
	out := make([]catalog.RawProduct, 0, len(handles))
	for _, h := range handles {
		if p, ok := s.products[h]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubCatalog) ProductByHandle(ctx context.Context, handle string) (*catalog.RawProduct, error) {
	s.calls++
	if p, ok := s.products[handle]; ok {
		return &p, nil
	}
	return nil, upstream.NotFound("catalog", "product not found: "+handle)
}

func newTestServer(stub *stubCatalog) http.Handler {
	srv := &server{
		resolver: catalog.NewResolver(stub, catalog.DefaultResolverConfig()),
		pricing:  pricing.NewService(stub),
		logger:   logging.NewLogger("http-test"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/products/resolve", srv.handleResolve)
	mux.HandleFunc("GET /api/products/{handle}/price", srv.handlePrice)
	return mux
}

func TestHandleResolve(t *testing.T) {
	stub := &stubCatalog{products: map[string]catalog.RawProduct{
		"carrara-hex": {
			Handle: "carrara-hex",
			Title:  "Carrara Hex Mosaic",
			Variants: []catalog.RawVariant{
				{Price: "100.00", InventoryManagement: "SHOPIFY", InventoryPolicy: "DENY"},
			},
		},
	}}
	handler := newTestServer(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/products/resolve",
		strings.NewReader(`{"handles":["carrara-hex","missing"]}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Products []catalog.ProductSummary `json:"products"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Response not JSON: %v", err)
	}
	if len(body.Products) != 1 || body.Products[0].Handle != "carrara-hex" {
		t.Errorf("Products = %+v", body.Products)
	}
}

func TestHandleResolve_RejectsNonArrayHandles(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"string handles", `{"handles":"carrara-hex"}`},
		{"object handles", `{"handles":{"h":1}}`},
		{"missing handles", `{}`},
		{"numeric elements", `{"handles":[1,2]}`},
		{"not json", `handles=carrara-hex`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubCatalog{products: map[string]catalog.RawProduct{}}
			handler := newTestServer(stub)

			req := httptest.NewRequest(http.MethodPost, "/api/products/resolve", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("Status = %d, want 400", rec.Code)
			}
			if stub.calls != 0 {
				t.Errorf("Bad input reached upstream: %d calls", stub.calls)
			}
		})
	}
}

func TestHandlePrice_UnknownProduct(t *testing.T) {
	handler := newTestServer(&stubCatalog{products: map[string]catalog.RawProduct{}})

	req := httptest.NewRequest(http.MethodGet, "/api/products/no-such-product/price", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("Status = %d, want 404", rec.Code)
	}

	var body struct {
		Kind string `json:"kind"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Error response not JSON: %v", err)
	}
	if body.Kind != string(upstream.KindNotFound) {
		t.Errorf("Kind = %q, want %q", body.Kind, upstream.KindNotFound)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		kind upstream.Kind
		want int
	}{
		{upstream.KindValidation, http.StatusBadRequest},
		{upstream.KindNotFound, http.StatusNotFound},
		{upstream.KindTimeout, http.StatusGatewayTimeout},
		{upstream.KindHTTP, http.StatusBadGateway},
		{upstream.KindShape, http.StatusBadGateway},
		{upstream.KindOverflow, http.StatusBadGateway},
		{upstream.Kind("mystery"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusFor(tt.kind); got != tt.want {
			t.Errorf("statusFor(%q) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}
