// Package pricing derives normalized price, unit-conversion, and
// stock-display fields from raw catalog attributes. The engine is a pure
// function of its input record: no hidden state, no upstream I/O, safe
// for unrestricted parallel invocation.
package pricing

import "strings"

// trimProductType is the product category sold without area
// normalization; its price-per-base-unit view is omitted entirely.
const trimProductType = "Trim"

// Derive turns one raw product+variant record into the derived pricing
// view.
func Derive(in Input) PriceInfo {
	factor := conversionFactor(in.UOM, in.SellUnit, in.Measurements)

	info := PriceInfo{
		CurrentPrice:     in.Price,
		CompareAtPrice:   in.CompareAtPrice,
		OnSale:           in.CompareAtPrice != nil && *in.CompareAtPrice > in.Price,
		Inventory:        in.Inventory,
		UOM:              in.UOM,
		SellUnit:         in.SellUnit,
		Status:           in.Status,
		ProductType:      in.ProductType,
		ConversionFactor: factor,
		StockNotice:      stockNotice(in.Status, in.Inventory),
		UnitDisplay:      unitDisplay(in.SellUnit),
	}

	if !strings.EqualFold(in.ProductType, trimProductType) {
		base := &BaseUnitPrice{Current: perBaseUnit(in.Price, factor)}
		if in.CompareAtPrice != nil {
			compare := perBaseUnit(*in.CompareAtPrice, factor)
			base.Compare = &compare
		}
		info.PricePerBaseUnit = base
	}

	return info
}

// conversionFactor translates price-per-sell-unit into price-per-base-
// unit. The table is keyed by (UOM, SellUnit); unmatched pairs default
// to 1. A matched pair with a missing measurement yields 0, which
// perBaseUnit treats as "no conversion available".
func conversionFactor(uom UOM, sell SellUnit, m Measurements) float64 {
	switch uom {
	case UOMSquareFoot:
		switch sell {
		case SellUnitSquareFoot:
			return 1
		case SellUnitBox:
			return m.AreaPerBox
		case SellUnitEach, SellUnitPiece, SellUnitSheet:
			return m.AreaPerEach
		case SellUnitPallet:
			if m.AreaPerPallet > 0 {
				return m.AreaPerPallet
			}
			return m.AreaPerBox * m.BoxesPerPallet
		}
	}
	return 1
}

// perBaseUnit divides a sell-unit price by the conversion factor,
// falling back to the raw price when the factor is zero.
func perBaseUnit(price, factor float64) float64 {
	if factor == 0 {
		return price
	}
	return price / factor
}

// unitDisplay maps a sell-unit code to its customer-facing labels.
// Unknown codes yield empty strings.
func unitDisplay(sell SellUnit) UnitDisplay {
	switch sell {
	case SellUnitBox:
		return UnitDisplay{Singular: "box", Plural: "boxes"}
	case SellUnitSquareFoot:
		return UnitDisplay{Singular: "sq.ft", Plural: "sq.ft"}
	case SellUnitPiece:
		return UnitDisplay{Singular: "piece", Plural: "pieces"}
	case SellUnitSheet:
		return UnitDisplay{Singular: "sheet", Plural: "sheets"}
	case SellUnitSet:
		return UnitDisplay{Singular: "set", Plural: "sets"}
	case SellUnitPallet:
		return UnitDisplay{Singular: "pallet", Plural: "pallets"}
	}
	return UnitDisplay{}
}
