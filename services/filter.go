package services

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"realestate-bot/models"
)

// DefaultLimit is the number of listings a reply shows.
const DefaultLimit = 5

// Criterion reports whether a listing satisfies one applied predicate.
type Criterion func(l *models.Listing) bool

// Predicate is one filter rule. Extract inspects the lower-cased query (and
// the table, for vocabularies that come from the data) and returns the
// criterion to apply, or ok=false when the query does not trigger the rule.
type Predicate struct {
	Name    string
	Extract func(query string, table *models.Table) (c Criterion, ok bool)
}

// Result is the outcome of filtering one query.
type Result struct {
	Listings []*models.Listing
	Applied  []string
}

// FilterEngine narrows a table with every predicate a query triggers.
// It holds no per-request state and is safe for concurrent use.
type FilterEngine struct {
	predicates []Predicate
	limit      int
}

// NewFilterEngine creates an engine with the default predicate set.
func NewFilterEngine(limit int) *FilterEngine {
	return NewFilterEngineWith(limit, DefaultPredicates())
}

// NewFilterEngineWith creates an engine with a custom predicate set.
// The limit may lower the reply size but never raise it above DefaultLimit;
// a non-positive limit means DefaultLimit.
func NewFilterEngineWith(limit int, predicates []Predicate) *FilterEngine {
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}
	return &FilterEngine{predicates: predicates, limit: limit}
}

// Filter returns up to limit listings, in table order, that satisfy every
// predicate the query triggers. A query that triggers nothing returns the
// first rows of the table.
func (e *FilterEngine) Filter(table *models.Table, query string) Result {
	q := strings.ToLower(strings.TrimSpace(query))

	var criteria []Criterion
	applied := make([]string, 0, len(e.predicates))
	for _, p := range e.predicates {
		c, ok := p.Extract(q, table)
		if !ok {
			continue
		}
		criteria = append(criteria, c)
		applied = append(applied, p.Name)
	}

	listings := make([]*models.Listing, 0, e.limit)
	for i := 0; i < table.Len() && len(listings) < e.limit; i++ {
		l := table.At(i)
		if matchesAll(l, criteria) {
			listings = append(listings, l)
		}
	}

	return Result{Listings: listings, Applied: applied}
}

func matchesAll(l *models.Listing, criteria []Criterion) bool {
	for _, c := range criteria {
		if !c(l) {
			return false
		}
	}
	return true
}

var (
	bhkRegexp    = regexp.MustCompile(`(\d)\s*bhk`)
	budgetRegexp = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(crores?|cr|lakhs?|lacs?|l)\b`)
	areaRegexp   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:sq\.?\s*ft|sqft)`)
	floorsRegexp = regexp.MustCompile(`(\d+)\s*\+?\s*(?:floors?|storeys?|stories)\b|\bfloors?\s*(\d+)`)
)

// DefaultPredicates returns the predicate set in evaluation order.
func DefaultPredicates() []Predicate {
	return []Predicate{
		{Name: "city", Extract: extractCity},
		keywordPredicate("status_ready", `\bready\b`, func(l *models.Listing) bool {
			return strings.Contains(l.Status, "ready")
		}),
		keywordPredicate("status_under_construction", `\bunder[\s-]*construction\b`, func(l *models.Listing) bool {
			return strings.Contains(l.Status, "under")
		}),
		keywordPredicate("category_residential", `\bresidential\b`, func(l *models.Listing) bool {
			return l.Category == "residential"
		}),
		keywordPredicate("category_commercial", `\bcommercial\b`, func(l *models.Listing) bool {
			return l.Category == "commercial"
		}),
		{Name: "bhk", Extract: extractBHK},
		{Name: "budget", Extract: extractBudget},
		{Name: "area", Extract: extractArea},
		keywordPredicate("ownership_leasehold", `\bleasehold\b`, func(l *models.Listing) bool {
			return l.Ownership == "leasehold"
		}),
		keywordPredicate("ownership_freehold", `\bfreehold\b`, func(l *models.Listing) bool {
			return l.Ownership == "freehold"
		}),
		keywordPredicate("website", `\bwebsite\b`, func(l *models.Listing) bool {
			return l.Shareable
		}),
		{Name: "floors", Extract: extractFloors},
	}
}

// keywordPredicate applies match whenever pattern occurs in the query.
func keywordPredicate(name, pattern string, match Criterion) Predicate {
	trigger := regexp.MustCompile(pattern)
	return Predicate{
		Name: name,
		Extract: func(q string, _ *models.Table) (Criterion, bool) {
			if !trigger.MatchString(q) {
				return nil, false
			}
			return match, true
		},
	}
}

// extractCity matches cities known to the table that appear as whole words
// in the query. A city mentioned only as part of a longer mentioned city
// ("delhi" inside "new delhi") is ignored. Every remaining city must equal
// the listing's city, so naming two different cities matches nothing.
func extractCity(q string, table *models.Table) (Criterion, bool) {
	var mentioned []string
	for _, city := range table.Cities() {
		if containsWord(q, city) {
			mentioned = append(mentioned, city)
		}
	}
	if len(mentioned) == 0 {
		return nil, false
	}

	var cities []string
	for _, c := range mentioned {
		shadowed := false
		for _, other := range mentioned {
			if other != c && strings.Contains(other, c) {
				shadowed = true
				break
			}
		}
		if !shadowed {
			cities = append(cities, c)
		}
	}

	return func(l *models.Listing) bool {
		for _, c := range cities {
			if l.City != c {
				return false
			}
		}
		return true
	}, true
}

func extractBHK(q string, _ *models.Table) (Criterion, bool) {
	m := bhkRegexp.FindStringSubmatch(q)
	if m == nil {
		return nil, false
	}
	digit := m[1]
	return func(l *models.Listing) bool {
		return strings.Contains(l.Bedrooms, digit)
	}, true
}

// extractBudget reads a price ceiling such as "1.5 cr", "2 crore" or
// "80 lakh". A bare number or a bare unit word does not apply.
func extractBudget(q string, _ *models.Table) (Criterion, bool) {
	m := budgetRegexp.FindStringSubmatch(q)
	if m == nil {
		return nil, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil, false
	}
	ceiling := v * unitScale(m[2])
	return func(l *models.Listing) bool {
		return l.Price.Valid && l.Price.Float64 <= ceiling
	}, true
}

// extractArea reads an area such as "1200 sq ft" and keeps listings whose
// area range contains it.
func extractArea(q string, _ *models.Table) (Criterion, bool) {
	m := areaRegexp.FindStringSubmatch(q)
	if m == nil {
		return nil, false
	}
	area, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil, false
	}
	return func(l *models.Listing) bool {
		return l.AreaMin.Valid && l.AreaMax.Valid &&
			l.AreaMin.Float64 <= area && area <= l.AreaMax.Float64
	}, true
}

// extractFloors reads a minimum floor count such as "20 floors", "10+ floors"
// or "floor 20".
func extractFloors(q string, _ *models.Table) (Criterion, bool) {
	m := floorsRegexp.FindStringSubmatch(q)
	if m == nil {
		return nil, false
	}
	digits := m[1]
	if digits == "" {
		digits = m[2]
	}
	n, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return nil, false
	}
	return func(l *models.Listing) bool {
		return l.Floors.Valid && l.Floors.Float64 >= n
	}, true
}

// containsWord reports whether w occurs in s with no letter or digit
// directly before or after it.
func containsWord(s, w string) bool {
	if w == "" {
		return false
	}
	for start := 0; start <= len(s)-len(w); {
		i := strings.Index(s[start:], w)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(w)

		before, _ := utf8.DecodeLastRuneInString(s[:i])
		after, _ := utf8.DecodeRuneInString(s[end:])
		if (i == 0 || !isWordRune(before)) && (end == len(s) || !isWordRune(after)) {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		start = i + size
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
