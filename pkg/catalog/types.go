package catalog

// RawProduct is the product record shape returned by the catalog
// upstream, flattened from its GraphQL connection envelopes.
type RawProduct struct {
	ID             string
	Title          string
	Handle         string
	Status         string
	ProductType    string
	OnlineStoreURL string
	FeaturedImage  *RawImage
	Variants       []RawVariant
	Metafields     []RawMetafield
}

// RawImage is a product image from the upstream.
type RawImage struct {
	URL     string
	AltText string
}

// RawVariant is a product variant from the upstream.
type RawVariant struct {
	ID                  string
	SKU                 string
	Price               string
	CompareAtPrice      string
	InventoryQuantity   int
	InventoryPolicy     string // CONTINUE or DENY
	InventoryManagement string // SHOPIFY or NOT_MANAGED
}

// RawMetafield is one custom field attached to a product.
type RawMetafield struct {
	Namespace string
	Key       string
	Value     string
	Reference *RawReference
}

// RawReference is a resolved product reference inside a metafield.
type RawReference struct {
	Title          string
	Handle         string
	OnlineStoreURL string
}

// Metafield returns the value of the first metafield with the given key.
func (p RawProduct) Metafield(key string) (string, bool) {
	for _, mf := range p.Metafields {
		if mf.Key == key {
			return mf.Value, true
		}
	}
	return "", false
}

// PrimaryVariant returns the first variant, which the storefront treats
// as the sellable one.
func (p RawProduct) PrimaryVariant() (RawVariant, bool) {
	if len(p.Variants) == 0 {
		return RawVariant{}, false
	}
	return p.Variants[0], true
}

// ProductSummary is the public product shape served by the proxy.
type ProductSummary struct {
	Handle           string         `json:"handle"`
	Title            string         `json:"title"`
	FeaturedImageURL string         `json:"featuredImageUrl,omitempty"`
	URL              string         `json:"url,omitempty"`
	ParentProduct    *ParentProduct `json:"parentProduct,omitempty"`
}

// ParentProduct points at the product a variant-level listing belongs to.
type ParentProduct struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
