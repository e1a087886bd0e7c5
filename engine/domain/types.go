// Package domain defines the gear catalog records and input validation.
package domain

// GearItem is a single piece of outdoor gear.
// Optional specs are nil when the store has no usable value.
type GearItem struct {
	GearID      string  `json:"gearId"`
	Name        string  `json:"name"`
	BrandName   string  `json:"brandName"`
	ProductType *string `json:"productType,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`

	WeightGrams *int     `json:"weightGrams,omitempty"`
	PriceUSD    *float64 `json:"priceUsd,omitempty"`

	VolumeLiters     *float64 `json:"volumeLiters,omitempty"`    // packs
	CapacityPersons  *int     `json:"capacityPersons,omitempty"` // tents
	TempRatingF      *int     `json:"tempRatingF,omitempty"`     // sleeping bags
	FillPower        *int     `json:"fillPower,omitempty"`       // down
	RValue           *float64 `json:"rValue,omitempty"`          // pads
	Lumens           *int     `json:"lumens,omitempty"`          // headlamps
	FuelType         *string  `json:"fuelType,omitempty"`        // stoves
	WaterproofRating *string  `json:"waterproofRating,omitempty"`

	Materials []string `json:"materials,omitempty"`
	Features  []string `json:"features,omitempty"`

	ProductURL *string `json:"productUrl,omitempty"`
	ImageURL   *string `json:"imageUrl,omitempty"`

	// Insights is only populated by single-item lookups.
	Insights []Insight `json:"insights,omitempty"`
}

// Brand is an outdoor gear manufacturer. The name doubles as its ID.
type Brand struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Country      *string `json:"country,omitempty"`
	Website      *string `json:"website,omitempty"`
	YearFounded  *int    `json:"yearFounded,omitempty"`
	Description  *string `json:"description,omitempty"`
	BestKnownFor *string `json:"bestKnownFor,omitempty"`
}

// ProductType is the leaf of the category hierarchy.
type ProductType struct {
	Name string `json:"name"`
}

// Subcategory groups product types within a category.
type Subcategory struct {
	Name         string        `json:"name"`
	ProductTypes []ProductType `json:"productTypes"`
}

// Category is the root of the category hierarchy.
type Category struct {
	Name          string        `json:"name"`
	Subcategories []Subcategory `json:"subcategories"`
}

// Insight is a usage tip attached to a gear item.
type Insight struct {
	Summary   string  `json:"summary"`
	Content   string  `json:"content"`
	Category  *string `json:"category,omitempty"`
	SourceURL *string `json:"sourceUrl,omitempty"`
}

// Stats holds node counts for the catalog.
type Stats struct {
	GearCount    int64 `json:"gearCount"`
	BrandCount   int64 `json:"brandCount"`
	InsightCount int64 `json:"insightCount"`
}

// GearFilter narrows gear listings. A nil field contributes no predicate;
// a non-nil zero value still filters.
type GearFilter struct {
	BrandName       *string
	ProductType     *string
	Category        *string
	WeightGramsLt   *int
	WeightGramsGt   *int
	PriceUSDLt      *float64
	PriceUSDGt      *float64
	CapacityPersons *int
}

// AlternativeFilter constrains alternative candidates.
// ProductType overrides the reference item's product type.
type AlternativeFilter struct {
	MaxWeight       *int
	MaxPrice        *float64
	CapacityPersons *int
	ProductType     *string
}

// Default page sizes.
const (
	DefaultGearLimit         = 50
	DefaultAutocompleteLimit = 10
	DefaultAlternativesLimit = 10
)
