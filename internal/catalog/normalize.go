package catalog

import (
	"strconv"
	"strings"

	"travelrec/internal/model"
)

// Defaults applied to missing restaurant price bounds
const (
	DefaultPriceRangeFrom = 0
	DefaultPriceRangeTo   = 1000
)

// SplitList splits a comma/semicolon/pipe separated column into trimmed,
// lower-cased, non-empty values.
func SplitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = normalizeText(strings.Trim(p, " []'\""))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseNumber parses a numeric column, tolerating currency symbols and
// thousands separators. ok is false when the value is missing or garbage.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("₹", "", "$", "", ",", "", "Rs.", "", "Rs", "").Replace(s)
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizeRestaurant lower-cases searchable text fields
func NormalizeRestaurant(r *model.Restaurant) *model.Restaurant {
	r.Name = strings.TrimSpace(r.Name)
	r.Address = normalizeText(r.Address)
	if r.Cuisines == nil {
		r.Cuisines = model.NewStringSet()
	}
	return r
}

// NormalizeHotel lower-cases searchable text fields
func NormalizeHotel(h *model.Hotel) *model.Hotel {
	h.Name = strings.TrimSpace(h.Name)
	h.Location = normalizeText(h.Location)
	h.Category = normalizeText(h.Category)
	h.Description = strings.TrimSpace(h.Description)
	if h.Amenities == nil {
		h.Amenities = model.NewStringSet()
	}
	return h
}

// NormalizeVehicle lower-cases searchable text fields
func NormalizeVehicle(v *model.Vehicle) *model.Vehicle {
	v.Name = strings.TrimSpace(v.Name)
	v.Type = normalizeText(v.Type)
	v.Preference = normalizeText(v.Preference)
	return v
}
