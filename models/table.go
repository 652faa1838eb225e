package models

// Table is the read-only listing table built once at startup.
// Nothing mutates it after NewTable returns, so it is safe to share
// between concurrent requests without locking.
type Table struct {
	listings []*Listing
	cities   []string
}

// NewTable copies listings into a new Table and indexes the distinct cities
// in first-seen order.
func NewTable(listings []*Listing) *Table {
	rows := make([]*Listing, len(listings))
	copy(rows, listings)

	seen := make(map[string]struct{})
	var cities []string
	for _, l := range rows {
		if l.City == "" {
			continue
		}
		if _, ok := seen[l.City]; ok {
			continue
		}
		seen[l.City] = struct{}{}
		cities = append(cities, l.City)
	}

	return &Table{listings: rows, cities: cities}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.listings)
}

// At returns the i-th row in load order.
func (t *Table) At(i int) *Listing {
	return t.listings[i]
}

// Listings returns the rows in load order. The returned slice is a copy.
func (t *Table) Listings() []*Listing {
	if t == nil {
		return nil
	}
	out := make([]*Listing, len(t.listings))
	copy(out, t.listings)
	return out
}

// Cities returns the distinct non-empty city values in first-seen order.
func (t *Table) Cities() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.cities))
	copy(out, t.cities)
	return out
}
