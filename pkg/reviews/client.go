// Package reviews fronts the customer-reviews upstream: a paginated
// fetcher pulls the complete dataset, a sanitizer projects it onto the
// public shape, and a service caches the result with single-flight
// refresh coalescing.
package reviews

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/efren-tilemart/judgeme-proxy/pkg/upstream"
)

const serviceName = "reviews"

// Client fetches review pages from the reviews upstream.
type Client struct {
	http       *upstream.Client
	baseURL    string
	shopDomain string
	apiToken   string
	perPage    int
}

// ClientConfig holds the reviews upstream configuration.
type ClientConfig struct {
	BaseURL    string
	ShopDomain string
	APIToken   string
	PerPage    int
	Timeout    time.Duration
}

// NewClient creates a reviews upstream client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.PerPage <= 0 {
		cfg.PerPage = 100
	}
	return &Client{
		http:       upstream.NewClient(serviceName, cfg.Timeout),
		baseURL:    cfg.BaseURL,
		shopDomain: cfg.ShopDomain,
		apiToken:   cfg.APIToken,
		perPage:    cfg.PerPage,
	}
}

// reviewsPage is the upstream listing envelope.
type reviewsPage struct {
	CurrentPage *int        `json:"current_page"`
	PerPage     int         `json:"per_page"`
	Reviews     []RawReview `json:"reviews"`
}

// FetchPage fetches a single page of reviews. Page numbering starts at 1.
func (c *Client) FetchPage(ctx context.Context, page int) ([]RawReview, error) {
	query := url.Values{}
	query.Set("shop_domain", c.shopDomain)
	query.Set("api_token", c.apiToken)
	query.Set("page", fmt.Sprintf("%d", page))
	query.Set("per_page", fmt.Sprintf("%d", c.perPage))

	endpoint := fmt.Sprintf("%s/api/v1/reviews?%s", c.baseURL, query.Encode())

	var payload reviewsPage
	if err := c.http.GetJSON(ctx, endpoint, nil, &payload); err != nil {
		return nil, err
	}
	if payload.CurrentPage == nil {
		return nil, upstream.ShapeError(serviceName, "listing response missing current_page", nil)
	}

	return payload.Reviews, nil
}
