package catalog

// parentProductKey is the well-known metafield key linking a listing to
// its parent product.
const parentProductKey = "parent_product"

// parentProduct scans a product's metafields for the parent-product
// reference. Absence is normal and yields nil, never an error.
func parentProduct(raw RawProduct) *ParentProduct {
	for _, mf := range raw.Metafields {
		if mf.Key != parentProductKey || mf.Reference == nil {
			continue
		}
		return &ParentProduct{
			Title: mf.Reference.Title,
			URL:   productURL(mf.Reference.OnlineStoreURL, mf.Reference.Handle),
		}
	}
	return nil
}

// Summarize projects a raw product onto the public summary shape. Only
// the fields written here ever leave the proxy.
func Summarize(raw RawProduct) ProductSummary {
	summary := ProductSummary{
		Handle:        raw.Handle,
		Title:         raw.Title,
		URL:           productURL(raw.OnlineStoreURL, raw.Handle),
		ParentProduct: parentProduct(raw),
	}
	if raw.FeaturedImage != nil {
		summary.FeaturedImageURL = raw.FeaturedImage.URL
	}
	return summary
}

func productURL(onlineStoreURL, handle string) string {
	if onlineStoreURL != "" {
		return onlineStoreURL
	}
	if handle != "" {
		return "/products/" + handle
	}
	return ""
}
