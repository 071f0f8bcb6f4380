package model

// Item is a read-only catalog record. The set of implementations is closed:
// Restaurant, Hotel and Vehicle.
type Item interface {
	Category() Category
	DisplayName() string
	isItem()
}

// StringSet is a lower-cased set of tokens such as cuisines or amenities
type StringSet map[string]struct{}

// NewStringSet builds a set from the given values
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		if v != "" {
			s[v] = struct{}{}
		}
	}
	return s
}

// Has reports whether v is a member
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Restaurant represents a restaurant listing
type Restaurant struct {
	Name           string    `json:"name" db:"name"`
	PriceRangeFrom float64   `json:"price_range_from" db:"price_range_from"`
	PriceRangeTo   float64   `json:"price_range_to" db:"price_range_to"`
	Rating         float64   `json:"rating" db:"rating"`
	ReviewCount    int       `json:"review_count" db:"review_count"`
	Address        string    `json:"address" db:"address"`
	Cuisines       StringSet `json:"cuisines" db:"-"`
	Phone          string    `json:"phone,omitempty" db:"phone"`
}

// Hotel represents a hotel listing
type Hotel struct {
	Name        string    `json:"name" db:"name"`
	Price       float64   `json:"price" db:"price"`
	Rating      float64   `json:"rating" db:"rating"`
	Location    string    `json:"location" db:"location"`
	Category    string    `json:"category" db:"category"`
	Amenities   StringSet `json:"amenities" db:"-"`
	Description string    `json:"description,omitempty" db:"description"`
}

// Vehicle represents a vehicle rental listing
type Vehicle struct {
	Name             string   `json:"name" db:"name"`
	PricePerDay      float64  `json:"price_per_day" db:"price_per_day"`
	PricePerHour     float64  `json:"price_per_hour" db:"price_per_hour"`
	Rating           float64  `json:"rating" db:"rating"`
	Type             string   `json:"type" db:"type"`
	PickupLocations  []string `json:"pickup_locations" db:"-"`
	DropOffLocations []string `json:"drop_off_locations" db:"-"`
	Capacity         int      `json:"capacity" db:"capacity"`
	Preference       string   `json:"preference,omitempty" db:"preference"`
}

func (*Restaurant) Category() Category { return CategoryRestaurant }
func (*Hotel) Category() Category      { return CategoryHotel }
func (*Vehicle) Category() Category    { return CategoryVehicle }

func (r *Restaurant) DisplayName() string { return r.Name }
func (h *Hotel) DisplayName() string      { return h.Name }
func (v *Vehicle) DisplayName() string    { return v.Name }

func (*Restaurant) isItem() {}
func (*Hotel) isItem()      {}
func (*Vehicle) isItem()    {}

// Rating returns the item's rating regardless of variant
func Rating(item Item) float64 {
	switch it := item.(type) {
	case *Restaurant:
		return it.Rating
	case *Hotel:
		return it.Rating
	case *Vehicle:
		return it.Rating
	}
	return 0
}
