package service

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"travelrec/internal/utils"
)

// Vocabulary holds the fixed keyword lists the extractor and classifier match
// against. Every entry is a lower-case word or phrase.
type Vocabulary struct {
	RestaurantKeywords []string            `yaml:"restaurant_keywords"`
	HotelKeywords      []string            `yaml:"hotel_keywords"`
	VehicleKeywords    []string            `yaml:"vehicle_keywords"`
	Cuisines           []string            `yaml:"cuisines"`
	SimilarCuisines    map[string][]string `yaml:"similar_cuisines"`
	HotelCategories    []string            `yaml:"hotel_categories"`
	VehicleTypes       []string            `yaml:"vehicle_types"`
	VehicleSynonyms    map[string][]string `yaml:"vehicle_synonyms"`
	CapacityWords      []string            `yaml:"capacity_words"`
	Localities         []string            `yaml:"localities"`
	CheapWords         []string            `yaml:"cheap_words"`
	ExpensiveWords     []string            `yaml:"expensive_words"`
	BestWords          []string            `yaml:"best_words"`
	WorstWords         []string            `yaml:"worst_words"`
	BookingWords       []string            `yaml:"booking_words"`
}

// DefaultVocabulary returns the built-in Mumbai-centric vocabulary
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		RestaurantKeywords: []string{
			"restaurant", "restaurants", "food", "eat", "eating", "dining", "dine",
			"cuisine", "meal", "lunch", "dinner", "cafe", "bistro", "eatery",
			"pizzeria", "steakhouse", "bakery", "place to eat", "table", "breakfast", "brunch",
		},
		HotelKeywords: []string{
			"hotel", "hotels", "motel", "inn", "stay", "accommodation", "lodge",
			"lodging", "resort", "room", "rooms", "suite", "guest house", "homestay",
			"hostel", "place to stay", "night", "nights",
		},
		VehicleKeywords: []string{
			"vehicle", "vehicles", "rental", "rentals", "rent", "transport",
			"transportation", "cab", "taxi", "drive", "driving", "ride", "riding",
		},
		Cuisines: []string{
			"indian", "chinese", "italian", "mexican", "japanese", "thai",
			"continental", "mughlai", "south indian", "north indian", "asian",
			"american", "mediterranean", "middle eastern", "lebanese", "french",
			"spanish", "greek", "korean", "vietnamese", "seafood", "vegetarian",
			"vegan", "fusion", "fast food", "street food", "pizza", "pasta", "burger",
			"sushi", "steak", "bbq", "barbecue", "dessert",
		},
		SimilarCuisines: map[string][]string{
			"chinese":        {"asian", "japanese", "korean", "thai", "vietnamese"},
			"japanese":       {"asian", "chinese", "korean", "sushi"},
			"thai":           {"asian", "chinese", "vietnamese"},
			"korean":         {"asian", "japanese", "chinese"},
			"vietnamese":     {"asian", "thai", "chinese"},
			"indian":         {"south indian", "north indian", "mughlai"},
			"south indian":   {"indian", "vegetarian"},
			"north indian":   {"indian", "mughlai"},
			"mughlai":        {"indian", "north indian"},
			"italian":        {"mediterranean", "pizza", "pasta"},
			"mexican":        {"spanish", "american"},
			"mediterranean":  {"greek", "lebanese", "middle eastern", "italian"},
			"middle eastern": {"mediterranean", "lebanese"},
			"american":       {"burger", "fast food", "bbq"},
			"fast food":      {"burger", "american", "street food"},
			"street food":    {"fast food"},
			"vegetarian":     {"vegan", "south indian"},
			"vegan":          {"vegetarian"},
			"seafood":        {"asian", "mediterranean"},
		},
		HotelCategories: []string{
			"luxury", "budget", "family", "business", "boutique", "resort",
			"motel", "hostel", "bed and breakfast", "heritage",
		},
		VehicleTypes: []string{
			"car", "bike", "motorcycle", "motorbike", "scooter", "scooty",
			"bicycle", "cycle", "bus", "suv", "van", "truck", "sedan", "hatchback",
		},
		VehicleSynonyms: map[string][]string{
			"car":        {"sedan", "hatchback", "suv"},
			"bike":       {"motorcycle", "motorbike"},
			"motorcycle": {"bike", "motorbike"},
			"motorbike":  {"bike", "motorcycle"},
			"scooter":    {"scooty"},
			"scooty":     {"scooter"},
			"cycle":      {"bicycle"},
			"bicycle":    {"cycle"},
		},
		CapacityWords: []string{"passenger", "passengers", "seats", "seater", "seating"},
		Localities: []string{
			"mumbai", "borivali", "andheri", "bandra", "dadar", "churchgate",
			"kurla", "thane", "powai", "juhu", "malad", "goregaon", "vikhroli",
			"chembur", "ghatkopar", "kandivali", "vile parle", "santacruz",
			"khar", "marine lines", "fort", "mira road", "vasai", "virar",
			"colaba", "worli", "lower parel", "matunga", "navi mumbai", "vashi",
		},
		CheapWords: []string{
			"cheap", "cheapest", "budget", "affordable", "inexpensive", "economical",
			"low price", "low cost", "low-cost", "lowest price",
		},
		ExpensiveWords: []string{
			"expensive", "most expensive", "luxury", "luxurious", "premium", "high-end",
			"high end", "pricey", "costly", "upscale", "fancy",
		},
		BestWords: []string{
			"best", "top", "top rated", "top-rated", "highest rated", "highly rated",
			"excellent", "5 star", "five star", "5-star",
		},
		WorstWords: []string{
			"worst", "lowest rated", "poorly rated", "bad", "terrible", "avoid",
		},
		BookingWords: []string{"book", "booking", "reserve", "reservation"},
	}
}

// LoadVocabulary returns the built-in vocabulary extended with the lists in
// the YAML file at path. Similar-cuisine and synonym entries in the file
// replace the built-in entry for the same key. An empty path returns the
// defaults unchanged.
func LoadVocabulary(path string) (*Vocabulary, error) {
	vocab := DefaultVocabulary()
	if path == "" {
		return vocab, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary file: %w", err)
	}

	var extra Vocabulary
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parse vocabulary file: %w", err)
	}

	vocab.merge(&extra)
	return vocab, nil
}

func (v *Vocabulary) merge(o *Vocabulary) {
	v.RestaurantKeywords = union(v.RestaurantKeywords, o.RestaurantKeywords)
	v.HotelKeywords = union(v.HotelKeywords, o.HotelKeywords)
	v.VehicleKeywords = union(v.VehicleKeywords, o.VehicleKeywords)
	v.Cuisines = union(v.Cuisines, o.Cuisines)
	v.HotelCategories = union(v.HotelCategories, o.HotelCategories)
	v.VehicleTypes = union(v.VehicleTypes, o.VehicleTypes)
	v.CapacityWords = union(v.CapacityWords, o.CapacityWords)
	v.Localities = union(v.Localities, o.Localities)
	v.CheapWords = union(v.CheapWords, o.CheapWords)
	v.ExpensiveWords = union(v.ExpensiveWords, o.ExpensiveWords)
	v.BestWords = union(v.BestWords, o.BestWords)
	v.WorstWords = union(v.WorstWords, o.WorstWords)
	v.BookingWords = union(v.BookingWords, o.BookingWords)

	for k, list := range o.SimilarCuisines {
		v.SimilarCuisines[strings.ToLower(k)] = lowerAll(list)
	}
	for k, list := range o.VehicleSynonyms {
		v.VehicleSynonyms[strings.ToLower(k)] = lowerAll(list)
	}
}

func union(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, s := range list {
			s = strings.ToLower(strings.TrimSpace(s))
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func lowerAll(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// phraseSet matches whole words or phrases in normalised query text
type phraseSet struct {
	phrases  []string
	patterns []*regexp.Regexp
}

func newPhraseSet(lists ...[]string) phraseSet {
	var all []string
	for _, l := range lists {
		all = union(all, l)
	}
	// Longer phrases first so "south indian" is preferred over "indian"
	sort.SliceStable(all, func(i, j int) bool { return len(all[i]) > len(all[j]) })

	s := phraseSet{phrases: all, patterns: make([]*regexp.Regexp, len(all))}
	for i, p := range all {
		s.patterns[i] = utils.WordPattern(p)
	}
	return s
}

// find returns the phrase occurring earliest in text; longer phrases win
// when two start at the same position
func (s phraseSet) find(text string) (string, bool) {
	best, bestPos := "", -1
	for i, re := range s.patterns {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		pos := loc[0]
		if loc[0] < len(text) && !isWordByte(text[loc[0]]) {
			pos++
		}
		if bestPos < 0 || pos < bestPos {
			best, bestPos = s.phrases[i], pos
		}
	}
	return best, bestPos >= 0
}

// matches returns every phrase present in text, longest first
func (s phraseSet) matches(text string) []string {
	var found []string
	for i, re := range s.patterns {
		if re.MatchString(text) {
			found = append(found, s.phrases[i])
		}
	}
	return found
}

func (s phraseSet) any(text string) bool {
	for _, re := range s.patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func (s phraseSet) has(word string) bool {
	for _, p := range s.phrases {
		if p == word {
			return true
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}
