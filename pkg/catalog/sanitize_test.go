package catalog

import "testing"

func TestSummarize_ProjectsPublicFields(t *testing.T) {
	raw := RawProduct{
		ID:             "gid://shopify/Product/1",
		Title:          "Carrara Hex Mosaic",
		Handle:         "carrara-hex",
		Status:         "ACTIVE",
		ProductType:    "Tile",
		OnlineStoreURL: "https://shop.example.com/products/carrara-hex",
		FeaturedImage:  &RawImage{URL: "https://cdn.example.com/hex.jpg", AltText: "hex"},
		Variants: []RawVariant{
			{ID: "v1", SKU: "SKU-1", Price: "100.00", InventoryQuantity: 4},
		},
	}

	summary := Summarize(raw)
	if summary.Handle != "carrara-hex" || summary.Title != "Carrara Hex Mosaic" {
		t.Errorf("Identity fields mismatch: %+v", summary)
	}
	if summary.FeaturedImageURL != "https://cdn.example.com/hex.jpg" {
		t.Errorf("FeaturedImageURL = %q", summary.FeaturedImageURL)
	}
	if summary.URL != "https://shop.example.com/products/carrara-hex" {
		t.Errorf("URL = %q", summary.URL)
	}
	if summary.ParentProduct != nil {
		t.Errorf("ParentProduct = %+v, want nil without metafield", summary.ParentProduct)
	}
}

func TestSummarize_URLFallsBackToHandlePath(t *testing.T) {
	summary := Summarize(RawProduct{Handle: "subway-white", Title: "Subway White"})
	if summary.URL != "/products/subway-white" {
		t.Errorf("URL = %q, want /products/subway-white", summary.URL)
	}
	if summary.FeaturedImageURL != "" {
		t.Errorf("FeaturedImageURL = %q, want empty without image", summary.FeaturedImageURL)
	}
}

func TestParentProduct_FoundViaMetafield(t *testing.T) {
	raw := RawProduct{
		Handle: "carrara-hex-sample",
		Metafields: []RawMetafield{
			{Namespace: "custom", Key: "color", Value: "white"},
			{Namespace: "custom", Key: "parent_product", Reference: &RawReference{
				Title:          "Carrara Hex Mosaic",
				Handle:         "carrara-hex",
				OnlineStoreURL: "https://shop.example.com/products/carrara-hex",
			}},
		},
	}

	parent := parentProduct(raw)
	if parent == nil {
		t.Fatal("Expected parent product from metafield")
	}
	if parent.Title != "Carrara Hex Mosaic" {
		t.Errorf("Title = %q", parent.Title)
	}
	if parent.URL != "https://shop.example.com/products/carrara-hex" {
		t.Errorf("URL = %q", parent.URL)
	}
}

func TestParentProduct_ReferenceURLFallback(t *testing.T) {
	raw := RawProduct{
		Metafields: []RawMetafield{
			{Key: "parent_product", Reference: &RawReference{Title: "Parent", Handle: "parent-tile"}},
		},
	}

	parent := parentProduct(raw)
	if parent == nil {
		t.Fatal("Expected parent product")
	}
	if parent.URL != "/products/parent-tile" {
		t.Errorf("URL = %q, want /products/parent-tile", parent.URL)
	}
}

func TestParentProduct_KeyWithoutReferenceIgnored(t *testing.T) {
	raw := RawProduct{
		Metafields: []RawMetafield{
			{Key: "parent_product", Value: "dangling"},
		},
	}
	if parent := parentProduct(raw); parent != nil {
		t.Errorf("ParentProduct = %+v, want nil for unresolved reference", parent)
	}
}
