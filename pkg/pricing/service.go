package pricing

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/efren-tilemart/judgeme-proxy/pkg/catalog"
	"github.com/efren-tilemart/judgeme-proxy/pkg/logging"
	"github.com/efren-tilemart/judgeme-proxy/pkg/upstream"
)

// Metafield keys carrying the pricing attributes.
const (
	keyUOM            = "uom"
	keySellUnit       = "sell_unit"
	keyProductStatus  = "product_status"
	keyAreaPerEach    = "area_per_each"
	keyAreaPerBox     = "area_per_box"
	keyAreaPerPallet  = "area_per_pallet"
	keyBoxesPerPallet = "boxes_per_pallet"
)

// ProductFetcher is the catalog lookup the pricing service depends on.
type ProductFetcher interface {
	ProductByHandle(ctx context.Context, handle string) (*catalog.RawProduct, error)
}

// Query identifies the product to derive pricing for.
type Query struct {
	Handle string `json:"handle"`
}

// Service fetches one product record and runs the derivation engine
// over it.
type Service struct {
	fetcher ProductFetcher
	logger  zerolog.Logger
}

// NewService creates a pricing service over the given product source.
func NewService(fetcher ProductFetcher) *Service {
	return &Service{
		fetcher: fetcher,
		logger:  logging.NewLogger("pricing-service"),
	}
}

// Derive resolves the queried product and returns its derived pricing
// view. It returns a not-found error when the product or its primary
// variant does not exist, and never a partially populated PriceInfo.
func (s *Service) Derive(ctx context.Context, query Query) (*PriceInfo, error) {
	handle := strings.TrimSpace(query.Handle)
	if handle == "" {
		return nil, upstream.Validation("product handle is required")
	}

	raw, err := s.fetcher.ProductByHandle(ctx, handle)
	if err != nil {
		derivationsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	variant, ok := raw.PrimaryVariant()
	if !ok {
		derivationsTotal.WithLabelValues("failure").Inc()
		return nil, upstream.NotFound("catalog", "product has no sellable variant: "+handle)
	}

	input, err := buildInput(*raw, variant)
	if err != nil {
		derivationsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	info := Derive(input)
	derivationsTotal.WithLabelValues("success").Inc()

	s.logger.Debug().
		Str("handle", handle).
		Str("sell_unit", string(info.SellUnit)).
		Float64("conversion_factor", info.ConversionFactor).
		Msg("Price derived")

	return &info, nil
}

// buildInput maps the raw catalog record onto the engine input.
func buildInput(raw catalog.RawProduct, variant catalog.RawVariant) (Input, error) {
	price, err := strconv.ParseFloat(variant.Price, 64)
	if err != nil {
		return Input{}, upstream.ShapeError("catalog", "variant price is not numeric: "+variant.Price, err)
	}

	var compareAt *float64
	if variant.CompareAtPrice != "" {
		parsed, err := strconv.ParseFloat(variant.CompareAtPrice, 64)
		if err != nil {
			return Input{}, upstream.ShapeError("catalog", "compare-at price is not numeric: "+variant.CompareAtPrice, err)
		}
		compareAt = &parsed
	}

	return Input{
		ProductType:    raw.ProductType,
		Status:         lifecycleStatus(raw),
		UOM:            UOM(strings.ToUpper(metafield(raw, keyUOM))),
		SellUnit:       SellUnit(strings.ToUpper(metafield(raw, keySellUnit))),
		Price:          price,
		CompareAtPrice: compareAt,
		Inventory: Inventory{
			Quantity:   variant.InventoryQuantity,
			Management: managementMode(variant.InventoryManagement),
			Policy:     inventoryPolicy(variant.InventoryPolicy),
		},
		Measurements: Measurements{
			AreaPerEach:    numericMetafield(raw, keyAreaPerEach),
			AreaPerBox:     numericMetafield(raw, keyAreaPerBox),
			AreaPerPallet:  numericMetafield(raw, keyAreaPerPallet),
			BoxesPerPallet: numericMetafield(raw, keyBoxesPerPallet),
		},
	}, nil
}

// lifecycleStatus reads the merchandising status metafield, falling back
// to active for products the merchandisers have not tagged.
func lifecycleStatus(raw catalog.RawProduct) LifecycleStatus {
	switch strings.ToLower(metafield(raw, keyProductStatus)) {
	case "discontinued":
		return StatusDiscontinued
	case "clearance":
		return StatusClearance
	default:
		return StatusActive
	}
}

func managementMode(value string) ManagementMode {
	if strings.EqualFold(value, "SHOPIFY") {
		return ManagementTracked
	}
	return ManagementUntracked
}

func inventoryPolicy(value string) InventoryPolicy {
	if strings.EqualFold(value, "CONTINUE") {
		return PolicyContinue
	}
	return PolicyDeny
}

func metafield(raw catalog.RawProduct, key string) string {
	value, _ := raw.Metafield(key)
	return strings.TrimSpace(value)
}

// numericMetafield parses a numeric metafield, treating absent or
// malformed values as zero so the conversion table can fall back.
func numericMetafield(raw catalog.RawProduct, key string) float64 {
	value, ok := raw.Metafield(key)
	if !ok {
		return 0
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return parsed
}
