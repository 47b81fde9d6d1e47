// Package testutil provides configurable mock upstream servers for
// tests: a page-based reviews listing and a GraphQL catalog endpoint.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// MockReviews is a mock reviews upstream serving a fixed dataset through
// the paginated listing endpoint.
type MockReviews struct {
	server *httptest.Server
	mu     sync.Mutex

	// Reviews is the full dataset served across pages. Entries are raw
	// JSON objects so tests control the exact wire shape.
	Reviews []map[string]any

	// FailPage makes the given page return HTTP 500 (0 disables).
	FailPage int

	// RequestCount tracks listing requests served.
	RequestCount int
}

// NewMockReviews creates a mock reviews server with count generated
// reviews, all published with rating 5.
func NewMockReviews(count int) *MockReviews {
	mock := &MockReviews{}
	for i := 0; i < count; i++ {
		mock.Reviews = append(mock.Reviews, GeneratedReview(i))
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/reviews" {
			http.NotFound(w, r)
			return
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page < 1 {
			page = 1
		}
		perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
		if perPage < 1 {
			perPage = 100
		}

		mock.mu.Lock()
		mock.RequestCount++
		failPage := mock.FailPage
		dataset := mock.Reviews
		mock.mu.Unlock()

		if failPage != 0 && page == failPage {
			http.Error(w, "upstream exploded", http.StatusInternalServerError)
			return
		}

		start := (page - 1) * perPage
		if start > len(dataset) {
			start = len(dataset)
		}
		end := start + perPage
		if end > len(dataset) {
			end = len(dataset)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"current_page": page,
			"per_page":     perPage,
			"reviews":      dataset[start:end],
		})
	}))

	return mock
}

// GeneratedReview builds one published rating-5 raw review object.
func GeneratedReview(i int) map[string]any {
	return map[string]any{
		"id":             i + 1,
		"rating":         5,
		"published":      true,
		"title":          fmt.Sprintf("Review %d", i+1),
		"body":           "Great tile, would buy again.",
		"created_at":     "2024-05-01T10:00:00Z",
		"product_handle": fmt.Sprintf("product-%d", i%7),
		"product_title":  fmt.Sprintf("Product %d", i%7),
		"ip_address":     "203.0.113.9",
		"reviewer": map[string]any{
			"name":  fmt.Sprintf("Reviewer %d", i+1),
			"email": fmt.Sprintf("reviewer%d@example.com", i+1),
		},
		"pictures": []map[string]any{
			{"urls": map[string]any{
				"huge":    fmt.Sprintf("https://cdn.example.com/r%d-huge.jpg", i+1),
				"compact": fmt.Sprintf("https://cdn.example.com/r%d-compact.jpg", i+1),
			}},
		},
	}
}

// URL returns the mock server base URL.
func (m *MockReviews) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockReviews) Close() {
	m.server.Close()
}

// Requests returns the number of listing requests served.
func (m *MockReviews) Requests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.RequestCount
}

// MockCatalog is a mock catalog upstream answering the GraphQL queries
// the proxy issues.
type MockCatalog struct {
	server *httptest.Server
	mu     sync.Mutex

	// Products maps handle to a raw GraphQL product node.
	Products map[string]map[string]any

	// Fail makes every query return HTTP 500.
	Fail bool

	// QueryCount tracks GraphQL requests served.
	QueryCount int
}

// NewMockCatalog creates a mock catalog server with no products.
func NewMockCatalog() *MockCatalog {
	mock := &MockCatalog{Products: make(map[string]map[string]any)}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.QueryCount++
		fail := mock.Fail
		mock.mu.Unlock()

		if fail {
			http.Error(w, "upstream exploded", http.StatusInternalServerError)
			return
		}

		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(req.Query, "productByHandle") {
			handle, _ := req.Variables["handle"].(string)
			mock.mu.Lock()
			node := mock.Products[handle]
			mock.mu.Unlock()

			var product any
			if node != nil {
				product = node
			}
			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"productByHandle": product},
			})
			return
		}

		query, _ := req.Variables["query"].(string)
		nodes := []map[string]any{}
		for _, term := range strings.Split(query, " OR ") {
			handle := strings.TrimPrefix(strings.TrimSpace(term), "handle:")
			mock.mu.Lock()
			node := mock.Products[handle]
			mock.mu.Unlock()
			if node != nil {
				nodes = append(nodes, node)
			}
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"products": map[string]any{"nodes": nodes},
			},
		})
	}))

	return mock
}

// AddProduct registers a minimal product node for the given handle.
func (m *MockCatalog) AddProduct(handle, title string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Products[handle] = ProductNode(handle, title)
}

// ProductNode builds a minimal raw GraphQL product node.
func ProductNode(handle, title string) map[string]any {
	return map[string]any{
		"id":          "gid://shopify/Product/" + handle,
		"title":       title,
		"handle":      handle,
		"status":      "ACTIVE",
		"productType": "Tile",
		"featuredImage": map[string]any{
			"url":     "https://cdn.example.com/" + handle + ".jpg",
			"altText": title,
		},
		"variants": map[string]any{
			"nodes": []map[string]any{{
				"id":                  "gid://shopify/ProductVariant/" + handle,
				"sku":                 "SKU-" + handle,
				"price":               "100.00",
				"compareAtPrice":      "",
				"inventoryQuantity":   12,
				"inventoryPolicy":     "DENY",
				"inventoryManagement": "SHOPIFY",
			}},
		},
		"metafields": map[string]any{
			"nodes": []map[string]any{},
		},
	}
}

// Host returns the mock server host (for use as a shop domain).
func (m *MockCatalog) Host() string {
	return strings.TrimPrefix(m.server.URL, "http://")
}

// URL returns the mock server base URL.
func (m *MockCatalog) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockCatalog) Close() {
	m.server.Close()
}

// Queries returns the number of GraphQL requests served.
func (m *MockCatalog) Queries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.QueryCount
}
