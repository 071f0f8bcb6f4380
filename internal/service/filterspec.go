package service

import (
	"fmt"
	"regexp"
	"strings"

	"travelrec/internal/model"
	"travelrec/internal/utils"
)

// ConstraintKind is the catalog attribute a filter level tests
type ConstraintKind string

const (
	KindPrice         ConstraintKind = "price"
	KindRating        ConstraintKind = "rating"
	KindLocation      ConstraintKind = "location"
	KindCuisine       ConstraintKind = "cuisine"
	KindAmenity       ConstraintKind = "amenity"
	KindHotelCategory ConstraintKind = "hotel_category"
	KindVehicleType   ConstraintKind = "vehicle_type"
	KindCapacity      ConstraintKind = "capacity"
	KindName          ConstraintKind = "name"
)

// Operator is how the item attribute is compared with the parameter
type Operator string

const (
	OpAtMost   Operator = "<="
	OpAtLeast  Operator = ">="
	OpContains Operator = "contains"
	OpAnyOf    Operator = "any"
	OpEquals   Operator = "="
)

// Constraint is one level of a filter spec
type Constraint struct {
	Kind ConstraintKind
	Op   Operator
}

func (c Constraint) String() string {
	return fmt.Sprintf("%s %s", c.Kind, c.Op)
}

// FilterSpec is the ordered list of levels for one (category, case type).
// Levels[0] is the primary level.
type FilterSpec struct {
	Category model.Category
	CaseType model.CaseType
	Levels   []Constraint
}

type specKey struct {
	category model.Category
	caseType model.CaseType
}

// FilterTable maps every supported (category, case type) to its spec
type FilterTable struct {
	specs map[specKey]FilterSpec
}

var (
	priceCeiling  = Constraint{KindPrice, OpAtMost}
	priceFloor    = Constraint{KindPrice, OpAtLeast}
	ratingFloor   = Constraint{KindRating, OpAtLeast}
	ratingCeiling = Constraint{KindRating, OpAtMost}
	locationMatch = Constraint{KindLocation, OpContains}
	cuisineMatch  = Constraint{KindCuisine, OpContains}
	amenityMatch  = Constraint{KindAmenity, OpAnyOf}
	categoryMatch = Constraint{KindHotelCategory, OpContains}
	typeMatch     = Constraint{KindVehicleType, OpContains}
	capacityFloor = Constraint{KindCapacity, OpAtLeast}
	nameMatch     = Constraint{KindName, OpEquals}
)

// priorityMatrix is the filter order per category and case type
var priorityMatrix = map[model.Category]map[model.CaseType][]Constraint{
	model.CategoryRestaurant: {
		model.CaseCheap:           {priceCeiling, ratingFloor, locationMatch, cuisineMatch},
		model.CaseExpensive:       {priceFloor, ratingFloor, locationMatch, cuisineMatch},
		model.CaseBest:            {ratingFloor, priceCeiling, cuisineMatch, locationMatch},
		model.CaseWorst:           {ratingCeiling, priceFloor, cuisineMatch, locationMatch},
		model.CaseLocation:        {locationMatch, ratingFloor, priceCeiling, cuisineMatch},
		model.CaseCuisine:         {cuisineMatch, ratingFloor, priceCeiling, locationMatch},
		model.CasePriceQualityMix: {ratingFloor, priceCeiling, locationMatch, cuisineMatch},
		model.CaseBooking:         {nameMatch, locationMatch},
	},
	model.CategoryHotel: {
		model.CaseCheap:           {priceCeiling, ratingFloor, locationMatch, categoryMatch},
		model.CaseExpensive:       {priceFloor, ratingFloor, locationMatch, categoryMatch},
		model.CaseBest:            {ratingFloor, priceCeiling, locationMatch, categoryMatch},
		model.CaseWorst:           {ratingCeiling, priceCeiling, locationMatch, categoryMatch},
		model.CaseAmenities:       {amenityMatch, ratingFloor, priceCeiling, locationMatch},
		model.CaseHotelCategory:   {categoryMatch, ratingFloor, priceCeiling, locationMatch},
		model.CaseLocation:        {locationMatch, ratingFloor, priceCeiling, amenityMatch},
		model.CasePriceQualityMix: {ratingFloor, priceCeiling, locationMatch, amenityMatch},
		model.CaseBooking:         {nameMatch, locationMatch},
	},
	model.CategoryVehicle: {
		model.CaseCheap:           {priceCeiling, typeMatch, ratingFloor, locationMatch},
		model.CaseExpensive:       {priceFloor, typeMatch, ratingFloor, capacityFloor},
		model.CaseBest:            {ratingFloor, typeMatch, priceCeiling, capacityFloor},
		model.CaseWorst:           {ratingCeiling, typeMatch, priceFloor, capacityFloor},
		model.CaseVehicleType:     {typeMatch, priceCeiling, ratingFloor, locationMatch},
		model.CaseCapacity:        {capacityFloor, typeMatch, priceCeiling, ratingFloor},
		model.CaseLocation:        {locationMatch, typeMatch, priceCeiling, ratingFloor},
		model.CasePriceQualityMix: {ratingFloor, priceCeiling, typeMatch, capacityFloor},
		model.CaseBooking:         {nameMatch, capacityFloor, locationMatch},
	},
}

// NewFilterTable builds and validates the table. It fails if any spec has
// no levels, more than four, or an unknown constraint.
func NewFilterTable() (*FilterTable, error) {
	t := &FilterTable{specs: make(map[specKey]FilterSpec)}
	for category, cases := range priorityMatrix {
		for caseType, levels := range cases {
			if len(levels) == 0 || len(levels) > 4 {
				return nil, fmt.Errorf("%s/%s: expected 1-4 levels, got %d", category, caseType, len(levels))
			}
			for _, c := range levels {
				if !c.valid() {
					return nil, fmt.Errorf("%s/%s: unsupported constraint %s", category, caseType, c)
				}
			}
			t.specs[specKey{category, caseType}] = FilterSpec{
				Category: category,
				CaseType: caseType,
				Levels:   append([]Constraint(nil), levels...),
			}
		}
	}
	return t, nil
}

// Spec returns the filter spec for a resolved intent
func (t *FilterTable) Spec(category model.Category, caseType model.CaseType) (FilterSpec, bool) {
	spec, ok := t.specs[specKey{category, caseType}]
	return spec, ok
}

func (c Constraint) valid() bool {
	switch c {
	case priceCeiling, priceFloor, ratingFloor, ratingCeiling, locationMatch, cuisineMatch,
		amenityMatch, categoryMatch, typeMatch, capacityFloor, nameMatch:
		return true
	}
	return false
}

// predicate reports whether an item satisfies one bound constraint
type predicate func(model.Item) bool

// Bind resolves the constraint against params. ok is false when params
// carries no value for it, meaning the level is skipped.
func (c Constraint) Bind(p *model.ParamSet, synonyms map[string][]string) (predicate, bool) {
	switch c {
	case priceCeiling:
		if p.PriceMax == nil {
			return nil, false
		}
		limit := *p.PriceMax
		return func(item model.Item) bool { return upperPrice(item) <= limit }, true

	case priceFloor:
		if p.PriceMin == nil {
			return nil, false
		}
		limit := *p.PriceMin
		return func(item model.Item) bool { return lowerPrice(item) >= limit }, true

	case ratingFloor:
		if p.RatingMin == nil {
			return nil, false
		}
		limit := *p.RatingMin
		return func(item model.Item) bool { return model.Rating(item) >= limit }, true

	case ratingCeiling:
		if p.RatingMax == nil {
			return nil, false
		}
		limit := *p.RatingMax
		return func(item model.Item) bool { return model.Rating(item) <= limit }, true

	case locationMatch:
		if p.Location == nil || *p.Location == "" {
			return nil, false
		}
		re := utils.WordPattern(*p.Location)
		return func(item model.Item) bool { return matchesLocation(item, re) }, true

	case cuisineMatch:
		if p.Cuisine == nil || *p.Cuisine == "" {
			return nil, false
		}
		re := utils.WordPattern(*p.Cuisine)
		return func(item model.Item) bool {
			r, ok := item.(*model.Restaurant)
			return ok && servesCuisine(r, re)
		}, true

	case amenityMatch:
		if len(p.Amenities) == 0 {
			return nil, false
		}
		wanted := p.Amenities
		return func(item model.Item) bool {
			h, ok := item.(*model.Hotel)
			return ok && hasAnyAmenity(h, wanted)
		}, true

	case categoryMatch:
		if p.HotelCategory == nil || *p.HotelCategory == "" {
			return nil, false
		}
		re := utils.WordPattern(*p.HotelCategory)
		return func(item model.Item) bool {
			h, ok := item.(*model.Hotel)
			return ok && re.MatchString(h.Category)
		}, true

	case typeMatch:
		if p.VehicleType == nil || *p.VehicleType == "" {
			return nil, false
		}
		want := *p.VehicleType
		patterns := []*regexp.Regexp{utils.WordPattern(want)}
		for _, s := range synonyms[want] {
			patterns = append(patterns, utils.WordPattern(s))
		}
		return func(item model.Item) bool {
			v, ok := item.(*model.Vehicle)
			if !ok {
				return false
			}
			for _, re := range patterns {
				if re.MatchString(v.Type) || re.MatchString(v.Name) {
					return true
				}
			}
			return false
		}, true

	case capacityFloor:
		if p.CapacityMin == nil {
			return nil, false
		}
		limit := *p.CapacityMin
		return func(item model.Item) bool {
			v, ok := item.(*model.Vehicle)
			return ok && v.Capacity >= limit
		}, true

	case nameMatch:
		if p.ChosenName == nil || *p.ChosenName == "" {
			return nil, false
		}
		want := *p.ChosenName
		return func(item model.Item) bool {
			return strings.EqualFold(strings.TrimSpace(item.DisplayName()), want)
		}, true
	}
	return nil, false
}

// upperPrice is the price compared against a ceiling. Restaurants use the
// top of their range.
func upperPrice(item model.Item) float64 {
	switch it := item.(type) {
	case *model.Restaurant:
		return it.PriceRangeTo
	case *model.Hotel:
		return it.Price
	case *model.Vehicle:
		return it.PricePerDay
	}
	return 0
}

// lowerPrice is the price compared against a floor. Restaurants use the
// bottom of their range.
func lowerPrice(item model.Item) float64 {
	switch it := item.(type) {
	case *model.Restaurant:
		return it.PriceRangeFrom
	case *model.Hotel:
		return it.Price
	case *model.Vehicle:
		return it.PricePerDay
	}
	return 0
}

func matchesLocation(item model.Item, re *regexp.Regexp) bool {
	switch it := item.(type) {
	case *model.Restaurant:
		return re.MatchString(it.Address)
	case *model.Hotel:
		return re.MatchString(it.Location)
	case *model.Vehicle:
		for _, loc := range it.PickupLocations {
			if re.MatchString(loc) {
				return true
			}
		}
		for _, loc := range it.DropOffLocations {
			if re.MatchString(loc) {
				return true
			}
		}
	}
	return false
}

func servesCuisine(r *model.Restaurant, re *regexp.Regexp) bool {
	for c := range r.Cuisines {
		if re.MatchString(c) {
			return true
		}
	}
	return false
}

func hasAnyAmenity(h *model.Hotel, wanted []string) bool {
	for _, w := range wanted {
		for a := range h.Amenities {
			if utils.FuzzyMatchAmenity(w, a) {
				return true
			}
		}
		// listings often mention amenities only in the description
		if h.Description != "" && utils.FuzzyMatchAmenity(w, h.Description) {
			return true
		}
	}
	return false
}
