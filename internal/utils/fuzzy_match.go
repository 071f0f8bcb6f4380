package utils

import (
	"regexp"
	"sort"
	"strings"
)

// amenityAliases maps a canonical hotel amenity to the phrases guests and
// listings use for it.
var amenityAliases = map[string][]string{
	"wifi":             {"wifi", "wi-fi", "wi fi", "wireless", "internet"},
	"pool":             {"pool", "swimming pool", "rooftop pool", "outdoor pool", "indoor pool"},
	"gym":              {"gym", "fitness center", "fitness centre", "fitness room", "workout"},
	"spa":              {"spa", "wellness", "massage", "sauna"},
	"bar":              {"bar", "lounge", "pub"},
	"breakfast":        {"breakfast", "complimentary breakfast", "free breakfast", "breakfast included"},
	"parking":          {"parking", "free parking", "valet", "car park"},
	"air conditioning": {"air conditioning", "air-conditioned", "a/c", "aircon", "ac"},
	"room service":     {"room service", "24-hour service", "24/7 service"},
	"business center":  {"business center", "business centre", "conference", "meeting rooms"},
	"laundry":          {"laundry", "dry cleaning"},
	"pet friendly":     {"pet friendly", "pet-friendly", "pets allowed"},
	"restaurant":       {"in-house restaurant", "on-site restaurant"},
}

var aliasPatterns = compileAliasPatterns()

func compileAliasPatterns() map[string][]*regexp.Regexp {
	patterns := make(map[string][]*regexp.Regexp, len(amenityAliases))
	for canonical, aliases := range amenityAliases {
		for _, alias := range aliases {
			patterns[canonical] = append(patterns[canonical], WordPattern(alias))
		}
	}
	return patterns
}

// WordPattern compiles a case-insensitive whole-phrase matcher
func WordPattern(phrase string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(^|[^a-z0-9])` + regexp.QuoteMeta(strings.ToLower(phrase)) + `($|[^a-z0-9])`)
}

// CanonicalAmenity returns the canonical amenity name for a phrase, or the
// lower-cased phrase itself when no alias is known.
func CanonicalAmenity(term string) string {
	t := strings.ToLower(strings.TrimSpace(term))
	if _, ok := amenityAliases[t]; ok {
		return t
	}
	for canonical, aliases := range amenityAliases {
		for _, alias := range aliases {
			if t == alias {
				return canonical
			}
		}
	}
	return t
}

// FuzzyMatchAmenity reports whether a listing amenity satisfies a wanted one
func FuzzyMatchAmenity(wanted, amenity string) bool {
	w := CanonicalAmenity(wanted)
	a := strings.ToLower(strings.TrimSpace(amenity))
	if w == "" || a == "" {
		return false
	}

	if w == a || CanonicalAmenity(a) == w {
		return true
	}

	patterns, known := aliasPatterns[w]
	if !known {
		return WordPattern(w).MatchString(a)
	}
	for _, re := range patterns {
		if re.MatchString(a) {
			return true
		}
	}
	return false
}

// ExtractAmenities returns the canonical amenities mentioned in text, sorted
func ExtractAmenities(text string) []string {
	var found []string
	for canonical, patterns := range aliasPatterns {
		for _, re := range patterns {
			if re.MatchString(text) {
				found = append(found, canonical)
				break
			}
		}
	}
	sort.Strings(found)
	return found
}
