// Package catalog fronts the product-catalog upstream: a GraphQL client
// queries products by handle set, a batch resolver fans large handle
// sets out over size-limited chunks, and a sanitizer projects the raw
// records onto the public summary shape.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/efren-tilemart/judgeme-proxy/pkg/upstream"
)

const serviceName = "catalog"

// Client queries the catalog upstream's GraphQL endpoint.
type Client struct {
	http       *upstream.Client
	baseURL    string
	apiToken   string
	apiVersion string
}

// ClientConfig holds the catalog upstream configuration.
type ClientConfig struct {
	// ShopDomain is the shop to query, e.g. "example.myshopify.com".
	ShopDomain string

	// BaseURL overrides the https://{ShopDomain} base (for testing).
	BaseURL string

	APIToken   string
	APIVersion string
	Timeout    time.Duration
}

// NewClient creates a catalog upstream client.
func NewClient(cfg ClientConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = "https://" + cfg.ShopDomain
	}
	return &Client{
		http:       upstream.NewClient(serviceName, cfg.Timeout),
		baseURL:    base,
		apiToken:   cfg.APIToken,
		apiVersion: cfg.APIVersion,
	}
}

// gqlRequest is a GraphQL request envelope.
type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// gqlProduct mirrors the GraphQL product node with its connection
// envelopes still in place.
type gqlProduct struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Handle         string    `json:"handle"`
	Status         string    `json:"status"`
	ProductType    string    `json:"productType"`
	OnlineStoreURL string    `json:"onlineStoreUrl"`
	FeaturedImage  *RawImage `json:"featuredImage"`
	Variants       struct {
		Nodes []struct {
			ID                  string `json:"id"`
			SKU                 string `json:"sku"`
			Price               string `json:"price"`
			CompareAtPrice      string `json:"compareAtPrice"`
			InventoryQuantity   int    `json:"inventoryQuantity"`
			InventoryPolicy     string `json:"inventoryPolicy"`
			InventoryManagement string `json:"inventoryManagement"`
		} `json:"nodes"`
	} `json:"variants"`
	Metafields struct {
		Nodes []struct {
			Namespace string        `json:"namespace"`
			Key       string        `json:"key"`
			Value     string        `json:"value"`
			Reference *RawReference `json:"reference"`
		} `json:"nodes"`
	} `json:"metafields"`
}

type gqlError struct {
	Message string `json:"message"`
}

const productFields = `
	id
	title
	handle
	status
	productType
	onlineStoreUrl
	featuredImage{ url altText }
	variants(first: 5){
		nodes{
			id
			sku
			price
			compareAtPrice
			inventoryQuantity
			inventoryPolicy
			inventoryManagement
		}
	}
	metafields(first: 20){
		nodes{
			namespace
			key
			value
			reference{
				... on Product { title handle onlineStoreUrl }
			}
		}
	}`

// ProductsByHandles fetches the product records for one chunk of
// handles with a single query. Results arrive in upstream order.
func (c *Client) ProductsByHandles(ctx context.Context, handles []string) ([]RawProduct, error) {
	terms := make([]string, 0, len(handles))
	for _, h := range handles {
		terms = append(terms, "handle:"+h)
	}

	query := fmt.Sprintf(`query($query:String!, $first:Int!){
		products(first: $first, query: $query){
			nodes{%s}
		}
	}`, productFields)

	var payload struct {
		Data struct {
			Products *struct {
				Nodes []gqlProduct `json:"nodes"`
			} `json:"products"`
		} `json:"data"`
		Errors []gqlError `json:"errors"`
	}

	req := gqlRequest{
		Query: query,
		Variables: map[string]any{
			"query": strings.Join(terms, " OR "),
			"first": len(handles),
		},
	}
	if err := c.graphql(ctx, req, &payload); err != nil {
		return nil, err
	}
	if len(payload.Errors) > 0 {
		return nil, graphqlError(payload.Errors)
	}
	if payload.Data.Products == nil {
		return nil, upstream.ShapeError(serviceName, "products connection missing from response", nil)
	}

	products := make([]RawProduct, 0, len(payload.Data.Products.Nodes))
	for _, node := range payload.Data.Products.Nodes {
		products = append(products, flatten(node))
	}
	return products, nil
}

// ProductByHandle fetches one product with its variants and metafields.
func (c *Client) ProductByHandle(ctx context.Context, handle string) (*RawProduct, error) {
	query := fmt.Sprintf(`query($handle:String!){
		productByHandle(handle: $handle){%s}
	}`, productFields)

	var payload struct {
		Data struct {
			ProductByHandle *gqlProduct `json:"productByHandle"`
		} `json:"data"`
		Errors []gqlError `json:"errors"`
	}

	req := gqlRequest{
		Query:     query,
		Variables: map[string]any{"handle": handle},
	}
	if err := c.graphql(ctx, req, &payload); err != nil {
		return nil, err
	}
	if len(payload.Errors) > 0 {
		return nil, graphqlError(payload.Errors)
	}
	if payload.Data.ProductByHandle == nil {
		return nil, upstream.NotFound(serviceName, "product not found: "+handle)
	}

	product := flatten(*payload.Data.ProductByHandle)
	return &product, nil
}

func (c *Client) graphql(ctx context.Context, req gqlRequest, out any) error {
	endpoint := fmt.Sprintf("%s/admin/api/%s/graphql.json", c.baseURL, c.apiVersion)
	headers := map[string]string{"X-Shopify-Access-Token": c.apiToken}
	return c.http.PostJSON(ctx, endpoint, headers, req, out)
}

func graphqlError(errs []gqlError) error {
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message)
	}
	return &upstream.Error{
		Kind:    upstream.KindHTTP,
		Service: serviceName,
		Message: "graphql: " + strings.Join(messages, "; "),
	}
}

// flatten unwraps the GraphQL connection envelopes into a RawProduct.
func flatten(node gqlProduct) RawProduct {
	product := RawProduct{
		ID:             node.ID,
		Title:          node.Title,
		Handle:         node.Handle,
		Status:         node.Status,
		ProductType:    node.ProductType,
		OnlineStoreURL: node.OnlineStoreURL,
		FeaturedImage:  node.FeaturedImage,
	}
	for _, v := range node.Variants.Nodes {
		product.Variants = append(product.Variants, RawVariant(v))
	}
	for _, mf := range node.Metafields.Nodes {
		product.Metafields = append(product.Metafields, RawMetafield{
			Namespace: mf.Namespace,
			Key:       mf.Key,
			Value:     mf.Value,
			Reference: mf.Reference,
		})
	}
	return product
}
