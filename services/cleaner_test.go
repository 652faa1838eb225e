package services

import (
	"testing"

	"realestate-bot/models"
	"realestate-bot/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger() }

func TestCleanerParsePriceUnits(t *testing.T) {
	c := NewCleaner(newTestLogger(), models.PriceUnits)

	tests := []struct {
		raw   string
		want  float64
		valid bool
	}{
		{"1.5 cr", 15_000_000, true},
		{"1.5 Cr", 15_000_000, true},
		{"2 crore", 20_000_000, true},
		{"3 crores", 30_000_000, true},
		{"80 l", 8_000_000, true},
		{"80 lakh", 8_000_000, true},
		{"80 lakhs", 8_000_000, true},
		{"45 lac", 4_500_000, true},
		{"₹95L", 9_500_000, true},
		{"Rs. 1,20 L", 12_000_000, true},
		{"INR 2 Cr.", 20_000_000, true},
		{"8000000", 0, false},
		{"", 0, false},
		{"on request", 0, false},
		{"price on call", 0, false},
		{"80 lakh onwards", 0, false},
		{"nan", 0, false},
	}

	for _, tt := range tests {
		got := c.ParsePrice(tt.raw)
		if got.Valid != tt.valid || got.Float64 != tt.want {
			t.Errorf("ParsePrice(%q) = (%.2f, %v); want (%.2f, %v)",
				tt.raw, got.Float64, got.Valid, tt.want, tt.valid)
		}
	}
}

func TestCleanerParsePricePlain(t *testing.T) {
	c := NewCleaner(newTestLogger(), models.PricePlain)

	tests := []struct {
		raw   string
		want  float64
		valid bool
	}{
		{"12500000", 12_500_000, true},
		{"1,25,00,000", 12_500_000, true},
		{"₹ 9500000", 9_500_000, true},
		{"9500000.0", 9_500_000, true},
		{"nan", 0, false},
		{"1.5 cr", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got := c.ParsePrice(tt.raw)
		if got.Valid != tt.valid || got.Float64 != tt.want {
			t.Errorf("ParsePrice(%q) = (%.2f, %v); want (%.2f, %v)",
				tt.raw, got.Float64, got.Valid, tt.want, tt.valid)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw   string
		want  float64
		valid bool
	}{
		{"1,250", 1250, true},
		{"1200 sq ft", 1200, true},
		{"1800sqft", 1800, true},
		{"950 Sq. Ft.", 950, true},
		{"32", 32, true},
		{"32.0", 32, true},
		{"G+14", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
	}

	for _, tt := range tests {
		got := ParseNumber(tt.raw)
		if got.Valid != tt.valid || got.Float64 != tt.want {
			t.Errorf("ParseNumber(%q) = (%.2f, %v); want (%.2f, %v)",
				tt.raw, got.Float64, got.Valid, tt.want, tt.valid)
		}
	}
}

func TestCleanerNormalisesText(t *testing.T) {
	c := NewCleaner(newTestLogger(), models.PriceUnits)
	raw := []*models.RawListing{
		{Name: "  Skyline   Towers ", City: "NOIDA", Bedrooms: "2 BHK", Status: "Ready To Move", Shareable: "Yes", RawPrice: "95 L"},
	}

	cleaned := c.Clean(raw)
	if len(cleaned) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(cleaned))
	}
	l := cleaned[0]
	if l.Name != "skyline towers" {
		t.Errorf("Name: got %q, want %q", l.Name, "skyline towers")
	}
	if l.City != "noida" || l.Bedrooms != "2 bhk" || l.Status != "ready to move" {
		t.Errorf("text fields not lower-cased: %+v", l)
	}
	if !l.Shareable {
		t.Error("Shareable: got false, want true")
	}
	if l.RawPrice != "95 L" {
		t.Errorf("RawPrice should keep the source text, got %q", l.RawPrice)
	}
	if !l.Price.Valid || l.Price.Float64 != 9_500_000 {
		t.Errorf("Price: got %+v, want 9500000", l.Price)
	}
}

func TestCleanerDropsBlankRows(t *testing.T) {
	c := NewCleaner(newTestLogger(), models.PriceUnits)
	raw := []*models.RawListing{
		{Name: "A", City: "noida"},
		{},
		{Name: "B", City: "gurgaon"},
	}

	cleaned := c.Clean(raw)
	if len(cleaned) != 2 {
		t.Fatalf("expected 2 listings after dropping blank row, got %d", len(cleaned))
	}
	if cleaned[0].Name != "a" || cleaned[1].Name != "b" {
		t.Errorf("row order not preserved: %q, %q", cleaned[0].Name, cleaned[1].Name)
	}
}

func TestCleanerUnparseableNumbersAreInvalid(t *testing.T) {
	c := NewCleaner(newTestLogger(), models.PricePlain)
	cleaned := c.Clean([]*models.RawListing{
		{Name: "A", RawPrice: "TBD", AreaMin: "n/a", AreaMax: "1500", Floors: "G+14"},
	})

	l := cleaned[0]
	if l.Price.Valid || l.AreaMin.Valid || l.Floors.Valid {
		t.Errorf("expected invalid price, area_min and floors, got %+v", l)
	}
	if !l.AreaMax.Valid || l.AreaMax.Float64 != 1500 {
		t.Errorf("AreaMax: got %+v, want 1500", l.AreaMax)
	}
}
