package storage

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"realestate-bot/models"
)

//go:embed profiles.yaml
var defaultProfiles []byte

// Listing fields a profile may map.
const (
	FieldName      = "name"
	FieldCity      = "city"
	FieldBedrooms  = "bedrooms"
	FieldStatus    = "status"
	FieldCategory  = "category"
	FieldOwnership = "ownership"
	FieldShareable = "shareable"
	FieldPrice     = "price"
	FieldAreaMin   = "area_min"
	FieldAreaMax   = "area_max"
	FieldTotalArea = "total_area"
	FieldFloors    = "floors"
	FieldLink      = "link"
)

var fieldSetters = map[string]func(r *models.RawListing, v string){
	FieldName:      func(r *models.RawListing, v string) { r.Name = v },
	FieldCity:      func(r *models.RawListing, v string) { r.City = v },
	FieldBedrooms:  func(r *models.RawListing, v string) { r.Bedrooms = v },
	FieldStatus:    func(r *models.RawListing, v string) { r.Status = v },
	FieldCategory:  func(r *models.RawListing, v string) { r.Category = v },
	FieldOwnership: func(r *models.RawListing, v string) { r.Ownership = v },
	FieldShareable: func(r *models.RawListing, v string) { r.Shareable = v },
	FieldPrice:     func(r *models.RawListing, v string) { r.RawPrice = v },
	FieldAreaMin:   func(r *models.RawListing, v string) { r.AreaMin = v },
	FieldAreaMax:   func(r *models.RawListing, v string) { r.AreaMax = v },
	FieldTotalArea: func(r *models.RawListing, v string) { r.TotalArea = v },
	FieldFloors:    func(r *models.RawListing, v string) { r.Floors = v },
	FieldLink:      func(r *models.RawListing, v string) { r.Link = v },
}

// Profile describes how one dataset layout maps onto listing fields.
type Profile struct {
	Name        string             `yaml:"-"`
	PriceFormat models.PriceFormat `yaml:"priceFormat"`
	Required    []string           `yaml:"required"`
	Columns     map[string]string  `yaml:"columns"`
}

// LoadProfiles returns the built-in profiles, overridden by any profile of
// the same name defined in the YAML file at path. An empty path means
// built-ins only.
func LoadProfiles(path string) (map[string]*Profile, error) {
	profiles, err := parseProfiles(defaultProfiles)
	if err != nil {
		return nil, fmt.Errorf("profiles: built-in: %w", err)
	}

	if path == "" {
		return profiles, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profiles: read %q: %w", path, err)
	}
	overrides, err := parseProfiles(data)
	if err != nil {
		return nil, fmt.Errorf("profiles: %q: %w", path, err)
	}
	for name, p := range overrides {
		profiles[name] = p
	}
	return profiles, nil
}

// SelectProfile looks up a profile by name.
func SelectProfile(profiles map[string]*Profile, name string) (*Profile, error) {
	p, ok := profiles[strings.ToLower(name)]
	if !ok {
		known := make([]string, 0, len(profiles))
		for k := range profiles {
			known = append(known, k)
		}
		sort.Strings(known)
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownProfile, name, strings.Join(known, ", "))
	}
	return p, nil
}

func parseProfiles(data []byte) (map[string]*Profile, error) {
	raw := make(map[string]*Profile)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	out := make(map[string]*Profile, len(raw))
	for name, p := range raw {
		if p == nil {
			return nil, fmt.Errorf("profile %q is empty", name)
		}
		p.Name = strings.ToLower(name)
		if p.PriceFormat == "" {
			p.PriceFormat = models.PriceUnits
		}
		if err := p.validate(); err != nil {
			return nil, err
		}
		out[p.Name] = p
	}
	return out, nil
}

func (p *Profile) validate() error {
	if p.PriceFormat != models.PriceUnits && p.PriceFormat != models.PricePlain {
		return fmt.Errorf("profile %q: unknown priceFormat %q", p.Name, p.PriceFormat)
	}
	for field, col := range p.Columns {
		if _, ok := fieldSetters[field]; !ok {
			return fmt.Errorf("profile %q: unknown field %q", p.Name, field)
		}
		p.Columns[field] = NormalizeColumn(col)
	}
	for _, field := range p.Required {
		if _, ok := p.Columns[field]; !ok {
			return fmt.Errorf("profile %q: required field %q has no column", p.Name, field)
		}
	}
	return nil
}

// NormalizeColumn converts a header like " Project Name" into "project_name".
func NormalizeColumn(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// MapRows maps source rows onto RawListings using the profile. A required
// column absent from header yields a *SchemaError.
func (p *Profile) MapRows(source string, header []string, rows [][]string) ([]*models.RawListing, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := NormalizeColumn(h)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	var missing []string
	for _, field := range p.Required {
		if _, ok := index[p.Columns[field]]; !ok {
			missing = append(missing, p.Columns[field])
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &SchemaError{Source: source, Profile: p.Name, Missing: missing}
	}

	type binding struct {
		col int
		set func(r *models.RawListing, v string)
	}
	var bindings []binding
	for field, col := range p.Columns {
		if i, ok := index[col]; ok {
			bindings = append(bindings, binding{col: i, set: fieldSetters[field]})
		}
	}

	result := make([]*models.RawListing, 0, len(rows))
	for _, row := range rows {
		r := &models.RawListing{}
		for _, b := range bindings {
			if b.col < len(row) {
				b.set(r, strings.TrimSpace(row[b.col]))
			}
		}
		result = append(result, r)
	}
	return result, nil
}
