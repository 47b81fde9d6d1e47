package pricing

// UOM is the unit-of-measure code for how a product is physically
// measured.
type UOM string

const (
	// UOMSquareFoot measures products by area.
	UOMSquareFoot UOM = "SF"

	// UOMEach measures products by count.
	UOMEach UOM = "EA"
)

// SellUnit is the unit a customer purchases in.
type SellUnit string

const (
	SellUnitBox        SellUnit = "BX"
	SellUnitSquareFoot SellUnit = "SF"
	SellUnitPiece      SellUnit = "PC"
	SellUnitSheet      SellUnit = "SHT"
	SellUnitSet        SellUnit = "ST"
	SellUnitPallet     SellUnit = "PLT"
	SellUnitEach       SellUnit = "EA"
)

// LifecycleStatus is the merchandising lifecycle of a product.
type LifecycleStatus string

const (
	StatusActive       LifecycleStatus = "active"
	StatusDiscontinued LifecycleStatus = "discontinued"
	StatusClearance    LifecycleStatus = "clearance"
)

// ManagementMode says whether the catalog service tracks stock counts
// for a variant.
type ManagementMode string

const (
	ManagementTracked   ManagementMode = "tracked"
	ManagementUntracked ManagementMode = "untracked"
)

// InventoryPolicy says whether sales are allowed past zero stock.
type InventoryPolicy string

const (
	PolicyContinue InventoryPolicy = "continue"
	PolicyDeny     InventoryPolicy = "deny"
)

// Inventory is the stock state of the primary variant.
type Inventory struct {
	Quantity   int             `json:"quantity"`
	Management ManagementMode  `json:"managementMode"`
	Policy     InventoryPolicy `json:"policy"`
}

// Measurements carries the numeric metafields that parameterize the
// conversion-factor table.
type Measurements struct {
	AreaPerEach    float64
	AreaPerBox     float64
	AreaPerPallet  float64
	BoxesPerPallet float64
}

// Input is the raw variant/metafield data the engine derives from.
type Input struct {
	ProductType    string
	Status         LifecycleStatus
	UOM            UOM
	SellUnit       SellUnit
	Price          float64
	CompareAtPrice *float64
	Inventory      Inventory
	Measurements   Measurements
}

// BaseUnitPrice is the price normalized to the base unit of measure.
type BaseUnitPrice struct {
	Current float64  `json:"current"`
	Compare *float64 `json:"compare,omitempty"`
}

// StockNotice is the storefront stock call-out. An all-zero value means
// no call-out is rendered.
type StockNotice struct {
	Notice     string `json:"notice"`
	Subtext    string `json:"subtext"`
	Color      string `json:"color"`
	Emphasized bool   `json:"emphasized"`
}

// UnitDisplay is the customer-facing label for the sell unit.
type UnitDisplay struct {
	Singular string `json:"singular"`
	Plural   string `json:"plural"`
}

// PriceInfo is the fully derived pricing view of one product.
type PriceInfo struct {
	CurrentPrice     float64         `json:"currentPrice"`
	CompareAtPrice   *float64        `json:"compareAtPrice,omitempty"`
	OnSale           bool            `json:"onSale"`
	Inventory        Inventory       `json:"inventory"`
	UOM              UOM             `json:"uom"`
	SellUnit         SellUnit        `json:"sellUnit"`
	Status           LifecycleStatus `json:"status"`
	ProductType      string          `json:"productType"`
	ConversionFactor float64         `json:"conversionFactor"`
	PricePerBaseUnit *BaseUnitPrice  `json:"pricePerBaseUnit,omitempty"`
	StockNotice      StockNotice     `json:"stockNotice"`
	UnitDisplay      UnitDisplay     `json:"unitDisplay"`
}
