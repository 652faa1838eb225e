package bot

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"realestate-bot/models"
)

// FormatListings renders matched listings into one reply body. Lines for
// fields the dataset does not carry are left out. An empty slice renders the
// no-results text.
func FormatListings(listings []*models.Listing) string {
	if len(listings) == 0 {
		return noResultsMessage
	}

	title := cases.Title(language.English)
	var b strings.Builder
	b.WriteString(resultsHeader)

	for _, l := range listings {
		line := func(prefix, value string) {
			if value == "" {
				return
			}
			b.WriteString(prefix)
			b.WriteString(value)
			b.WriteByte('\n')
		}

		line("🏢 ", title.String(l.Name))
		line("📍 ", title.String(l.City))
		line("🏠 BHK: ", l.Bedrooms)
		line("🏗 Status: ", title.String(l.Status))
		line("🏷 Category: ", title.String(l.Category))
		line("💰 Price: ", l.RawPrice)
		if l.RawAreaMin != "" || l.RawAreaMax != "" {
			line("📐 Area: ", l.RawAreaMin+" - "+l.RawAreaMax+" sq ft")
		}
		line("🏢 Floors: ", l.RawFloors)
		line("🔗 ", l.Link)
		b.WriteByte('\n')
	}

	return b.String()
}
