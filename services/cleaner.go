package services

import (
	"database/sql"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"realestate-bot/models"
	"realestate-bot/utils"
)

const (
	crore = 10_000_000
	lakh  = 100_000
)

var (
	// currencyRegexp matches a leading currency marker: "₹", "rs", "rs." or "inr"
	currencyRegexp = regexp.MustCompile(`^(?:₹|rs\.?|inr)\s*`)
	// scaledPriceRegexp captures "<number> <unit>" where the unit token is the whole remainder
	scaledPriceRegexp = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(crores?|cr|lakhs?|lacs?|l)\.?$`)
	// areaUnitRegexp matches a trailing area unit such as "sq ft", "sq. ft." or "sqft"
	areaUnitRegexp = regexp.MustCompile(`\s*(?:sq\.?\s*ft\.?|sqft)$`)
)

// Cleaner transforms RawListings into normalized Listings.
type Cleaner struct {
	logger      *utils.Logger
	priceFormat models.PriceFormat
}

// NewCleaner creates a Cleaner with the given logger and price grammar.
func NewCleaner(logger *utils.Logger, priceFormat models.PriceFormat) *Cleaner {
	if priceFormat == "" {
		priceFormat = models.PriceUnits
	}
	return &Cleaner{logger: logger, priceFormat: priceFormat}
}

// Clean processes raw listings and returns normalized records in the same
// order. Blank rows are dropped; unparseable numbers become invalid values.
func (c *Cleaner) Clean(raw []*models.RawListing) []*models.Listing {
	result := make([]*models.Listing, 0, len(raw))
	unpriced := 0

	for i, r := range raw {
		if r.IsBlank() {
			c.logger.Debug("[cleaner] Dropping blank row %d", i+1)
			continue
		}

		listing := &models.Listing{
			Name:      normaliseText(r.Name),
			City:      normaliseText(r.City),
			Bedrooms:  normaliseText(r.Bedrooms),
			Status:    normaliseText(r.Status),
			Category:  normaliseText(r.Category),
			Ownership: normaliseText(r.Ownership),
			Shareable: parseFlag(r.Shareable),

			RawPrice:   strings.TrimSpace(r.RawPrice),
			Price:      c.ParsePrice(r.RawPrice),
			RawAreaMin: strings.TrimSpace(r.AreaMin),
			RawAreaMax: strings.TrimSpace(r.AreaMax),
			AreaMin:    ParseNumber(r.AreaMin),
			AreaMax:    ParseNumber(r.AreaMax),
			TotalArea:  ParseNumber(r.TotalArea),
			RawFloors:  strings.TrimSpace(r.Floors),
			Floors:     ParseNumber(r.Floors),

			Link: strings.TrimSpace(r.Link),
		}
		if !listing.Price.Valid {
			unpriced++
		}

		result = append(result, listing)
	}

	c.logger.Info("[cleaner] Cleaned %d → %d listings (dropped %d blank, %d without a usable price)",
		len(raw), len(result), len(raw)-len(result), unpriced)
	return result
}

// ParsePrice converts a raw price cell into rupees using the cleaner's price
// grammar. Examples with the units grammar:
//
//	"1.5 cr"    → 15000000
//	"₹80 lakh"  → 8000000
//	"80 l"      → 8000000
//	"8000000"   → invalid (no unit)
func (c *Cleaner) ParsePrice(raw string) sql.NullFloat64 {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(currencyRegexp.ReplaceAllString(s, ""))
	if s == "" {
		return sql.NullFloat64{}
	}

	if c.priceFormat == models.PricePlain {
		return parseFloat(s)
	}

	m := scaledPriceRegexp.FindStringSubmatch(s)
	if m == nil {
		return sql.NullFloat64{}
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v * unitScale(m[2]), Valid: true}
}

// ParseNumber reads counts and areas such as "1,250", "1200 sq ft" or "32".
func ParseNumber(raw string) sql.NullFloat64 {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, ",", "")
	s = areaUnitRegexp.ReplaceAllString(s, "")
	return parseFloat(strings.TrimSpace(s))
}

// unitScale maps a crore or lakh unit token to its multiplier.
func unitScale(unit string) float64 {
	if strings.HasPrefix(unit, "cr") {
		return crore
	}
	return lakh
}

func parseFloat(s string) sql.NullFloat64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1":
		return true
	}
	return false
}

// normaliseText strips surrounding whitespace, collapses internal whitespace
// and lower-cases the result.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.ToLower(strings.Join(fields, " "))
}
