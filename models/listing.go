package models

import "database/sql"

// RawListing holds one dataset row exactly as the source provided it, already
// mapped from source columns onto listing fields by a column profile.
type RawListing struct {
	Name      string
	City      string
	Bedrooms  string
	Status    string
	Category  string
	Ownership string
	Shareable string
	RawPrice  string
	AreaMin   string
	AreaMax   string
	TotalArea string
	Floors    string
	Link      string
}

// IsBlank reports whether every field of the row is empty.
func (r *RawListing) IsBlank() bool {
	for _, v := range []string{
		r.Name, r.City, r.Bedrooms, r.Status, r.Category, r.Ownership,
		r.Shareable, r.RawPrice, r.AreaMin, r.AreaMax, r.TotalArea, r.Floors, r.Link,
	} {
		if v != "" {
			return false
		}
	}
	return true
}

// Listing is the normalized record the filter engine works on.
// Text fields are lower-cased; numeric fields are invalid when the raw value
// could not be parsed.
type Listing struct {
	Name      string
	City      string
	Bedrooms  string
	Status    string
	Category  string
	Ownership string
	Shareable bool

	RawPrice   string
	Price      sql.NullFloat64
	RawAreaMin string
	RawAreaMax string
	AreaMin    sql.NullFloat64
	AreaMax    sql.NullFloat64
	TotalArea  sql.NullFloat64
	RawFloors  string
	Floors     sql.NullFloat64

	Link string
}

// DatasetReport holds summary statistics over the loaded table.
type DatasetReport struct {
	TotalListings      int            `json:"total_listings"`
	PricedListings     int            `json:"priced_listings"`
	AveragePrice       float64        `json:"average_price"`
	MinPrice           float64        `json:"min_price"`
	MaxPrice           float64        `json:"max_price"`
	MostExpensive      *Listing       `json:"-"`
	Cities             []string       `json:"cities"`
	ListingsByCity     map[string]int `json:"listings_by_city"`
	ListingsByCategory map[string]int `json:"listings_by_category"`
}

// PriceFormat selects how raw price strings are turned into rupee amounts.
type PriceFormat string

const (
	// PriceUnits requires an explicit crore or lakh unit token ("1.5 cr", "80 lakh").
	PriceUnits PriceFormat = "units"
	// PricePlain reads the value as a plain number ("12,500,000").
	PricePlain PriceFormat = "plain"
)
