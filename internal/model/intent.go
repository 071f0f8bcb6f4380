package model

// Category is the top-level domain of a query
type Category string

const (
	CategoryRestaurant Category = "restaurants"
	CategoryHotel      Category = "hotels"
	CategoryVehicle    Category = "vehicles"
)

// Categories lists every category in classification precedence order.
// Ties between category scores are broken by position in this slice.
var Categories = []Category{CategoryRestaurant, CategoryHotel, CategoryVehicle}

// CaseType is the specific intent variant within a category
type CaseType string

const (
	CaseCheap           CaseType = "cheap"
	CaseExpensive       CaseType = "expensive"
	CaseBest            CaseType = "best"
	CaseWorst           CaseType = "worst"
	CaseLocation        CaseType = "location"
	CaseCuisine         CaseType = "cuisine"
	CaseAmenities       CaseType = "amenities"
	CaseHotelCategory   CaseType = "category"
	CaseVehicleType     CaseType = "type"
	CaseCapacity        CaseType = "capacity"
	CasePriceQualityMix CaseType = "price_quality_mix"
	CaseBooking         CaseType = "booking"
)

// PriceLevel is a qualitative price signal ("cheap", "luxury")
type PriceLevel string

const (
	PriceLevelNone      PriceLevel = ""
	PriceLevelCheap     PriceLevel = "cheap"
	PriceLevelExpensive PriceLevel = "expensive"
)

// RatingLevel is a qualitative rating signal ("best", "worst")
type RatingLevel string

const (
	RatingLevelNone RatingLevel = ""
	RatingLevelHigh RatingLevel = "high"
	RatingLevelLow  RatingLevel = "low"
)

// DateRange holds the raw date tokens of a booking request
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to,omitempty"`
}

// ParamSet represents structured constraints extracted from a query.
// A nil pointer or empty slice means "no constraint of this kind".
type ParamSet struct {
	PriceMax        *float64   `json:"price_max,omitempty"`
	PriceMin        *float64   `json:"price_min,omitempty"`
	RatingMin       *float64   `json:"rating_min,omitempty"`
	RatingMax       *float64   `json:"rating_max,omitempty"`
	Location        *string    `json:"location,omitempty"`
	Cuisine         *string    `json:"cuisine,omitempty"`
	SimilarCuisines []string   `json:"similar_cuisines,omitempty"`
	Amenities       []string   `json:"amenities,omitempty"`
	HotelCategory   *string    `json:"hotel_category,omitempty"`
	VehicleType     *string    `json:"vehicle_type,omitempty"`
	CapacityMin     *int       `json:"capacity_min,omitempty"`
	PartySize       *int       `json:"party_size,omitempty"`
	ChosenName      *string    `json:"chosen_name,omitempty"`
	DateRange       *DateRange `json:"date_range,omitempty"`
	TimeOfDay       *string    `json:"time_of_day,omitempty"`

	PriceLevel       PriceLevel  `json:"price_level,omitempty"`
	RatingLevel      RatingLevel `json:"rating_level,omitempty"`
	BookingRequested bool        `json:"booking_requested,omitempty"`
}

// HasPriceSignal reports whether the query said anything about price
func (p *ParamSet) HasPriceSignal() bool {
	return p.PriceLevel != PriceLevelNone || p.PriceMax != nil || p.PriceMin != nil
}

// HasRatingSignal reports whether the query said anything about rating
func (p *ParamSet) HasRatingSignal() bool {
	return p.RatingLevel != RatingLevelNone || p.RatingMin != nil || p.RatingMax != nil
}

// Clone returns a deep copy so resolved defaults never leak back into the
// extractor's output.
func (p *ParamSet) Clone() *ParamSet {
	if p == nil {
		return &ParamSet{}
	}
	c := *p
	c.PriceMax = clonePtr(p.PriceMax)
	c.PriceMin = clonePtr(p.PriceMin)
	c.RatingMin = clonePtr(p.RatingMin)
	c.RatingMax = clonePtr(p.RatingMax)
	c.Location = clonePtr(p.Location)
	c.Cuisine = clonePtr(p.Cuisine)
	c.HotelCategory = clonePtr(p.HotelCategory)
	c.VehicleType = clonePtr(p.VehicleType)
	c.CapacityMin = clonePtr(p.CapacityMin)
	c.PartySize = clonePtr(p.PartySize)
	c.ChosenName = clonePtr(p.ChosenName)
	c.DateRange = clonePtr(p.DateRange)
	c.TimeOfDay = clonePtr(p.TimeOfDay)
	c.SimilarCuisines = append([]string(nil), p.SimilarCuisines...)
	c.Amenities = append([]string(nil), p.Amenities...)
	return &c
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Intent is the classified form of a query. It is never mutated after
// classification.
type Intent struct {
	Category Category  `json:"category"`
	CaseType CaseType  `json:"case_type"`
	Params   *ParamSet `json:"params"`
	// Degraded is set when no case-type pattern matched and the category's
	// generic case was used instead.
	Degraded bool `json:"degraded,omitempty"`
}
