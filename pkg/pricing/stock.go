package pricing

import "fmt"

// Storefront call-out colors.
const (
	colorWarning = "#FD8B07"
	colorDanger  = "#DC3545"
)

// stockNotice is the stock-display decision table, keyed by lifecycle
// status, inventory management mode, inventory policy, and quantity.
// Combinations outside the table yield an empty notice: the storefront
// renders no call-out. A negative quantity means the variant is already
// oversold and is grouped with zero, never with remaining stock.
func stockNotice(status LifecycleStatus, inv Inventory) StockNotice {
	if inv.Management != ManagementTracked {
		return StockNotice{}
	}

	switch status {
	case StatusActive:
		if inv.Policy != PolicyContinue {
			return StockNotice{}
		}
		if inv.Quantity <= 0 {
			return StockNotice{
				Notice:     "Temporarily",
				Subtext:    "Oversold",
				Color:      colorWarning,
				Emphasized: true,
			}
		}
		return StockNotice{
			Notice:  "Low Stock",
			Subtext: onlyLeft(inv.Quantity),
			Color:   colorWarning,
		}

	case StatusDiscontinued:
		if inv.Policy != PolicyDeny {
			return StockNotice{}
		}
		if inv.Quantity <= 0 {
			return StockNotice{
				Notice:  "Discontinued",
				Subtext: "Out of Stock",
				Color:   colorDanger,
			}
		}
		return StockNotice{
			Notice:  "Discontinued",
			Subtext: onlyLeft(inv.Quantity),
			Color:   colorWarning,
		}

	case StatusClearance:
		if inv.Policy != PolicyDeny {
			return StockNotice{}
		}
		if inv.Quantity <= 0 {
			return StockNotice{
				Subtext: "Out of Stock",
				Color:   colorDanger,
			}
		}
		return StockNotice{
			Subtext: onlyLeft(inv.Quantity),
			Color:   colorWarning,
		}
	}

	return StockNotice{}
}

func onlyLeft(quantity int) string {
	return fmt.Sprintf("Only %d left!", quantity)
}
