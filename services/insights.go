package services

import (
	"fmt"
	"sort"
	"strings"

	"realestate-bot/models"
	"realestate-bot/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(listings []*models.Listing) *models.DatasetReport {
	report := &models.DatasetReport{
		Cities:             []string{},
		ListingsByCity:     make(map[string]int),
		ListingsByCategory: make(map[string]int),
	}

	if len(listings) == 0 {
		return report
	}

	report.TotalListings = len(listings)

	var priced []*models.Listing
	for _, l := range listings {
		if l.Price.Valid && l.Price.Float64 > 0 {
			priced = append(priced, l)
		}
		if l.City != "" {
			if report.ListingsByCity[l.City] == 0 {
				report.Cities = append(report.Cities, l.City)
			}
			report.ListingsByCity[l.City]++
		}
		if l.Category != "" {
			report.ListingsByCategory[l.Category]++
		}
	}

	// Price stats (only listings with a parsed price)
	report.PricedListings = len(priced)
	if len(priced) > 0 {
		report.MinPrice = priced[0].Price.Float64
		report.MaxPrice = priced[0].Price.Float64
		report.MostExpensive = priced[0]
		var total float64
		for _, l := range priced {
			p := l.Price.Float64
			total += p
			if p < report.MinPrice {
				report.MinPrice = p
			}
			if p > report.MaxPrice {
				report.MaxPrice = p
				report.MostExpensive = l
			}
		}
		report.AveragePrice = round2(total / float64(len(priced)))
		report.MinPrice = round2(report.MinPrice)
		report.MaxPrice = round2(report.MaxPrice)
	}

	return report
}

// Print writes the report through the logger, one line per fact.
func (s *InsightService) Print(r *models.DatasetReport) {
	s.logger.Info("[insights] %d listings loaded, %d with a usable price", r.TotalListings, r.PricedListings)

	if r.PricedListings > 0 {
		s.logger.Info("[insights] Price range %s – %s (average %s)",
			FormatRupees(r.MinPrice), FormatRupees(r.MaxPrice), FormatRupees(r.AveragePrice))
	} else {
		s.logger.Warn("[insights] No price data available, budget queries will match nothing")
	}

	if r.MostExpensive != nil {
		s.logger.Info("[insights] Most expensive: %s (%s)", r.MostExpensive.Name, r.MostExpensive.City)
	}

	// Sort cities by count descending
	type cityCount struct {
		city  string
		count int
	}
	var cities []cityCount
	for city, cnt := range r.ListingsByCity {
		cities = append(cities, cityCount{city, cnt})
	}
	sort.Slice(cities, func(i, j int) bool {
		if cities[i].count != cities[j].count {
			return cities[i].count > cities[j].count
		}
		return cities[i].city < cities[j].city
	})
	parts := make([]string, 0, len(cities))
	for _, cc := range cities {
		parts = append(parts, fmt.Sprintf("%s=%d", cc.city, cc.count))
	}
	if len(parts) > 0 {
		s.logger.Info("[insights] Listings by city: %s", strings.Join(parts, ", "))
	}
}

// FormatRupees renders an amount in the unit a buyer would quote it in:
// crores from 1 crore up, lakhs from 1 lakh up, plain rupees below.
func FormatRupees(v float64) string {
	switch {
	case v >= crore:
		return trimZeros(fmt.Sprintf("%.2f", v/crore)) + " Cr"
	case v >= lakh:
		return trimZeros(fmt.Sprintf("%.2f", v/lakh)) + " L"
	default:
		return trimZeros(fmt.Sprintf("%.2f", v))
	}
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
