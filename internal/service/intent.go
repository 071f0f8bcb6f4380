package service

import (
	"github.com/rs/zerolog"

	"travelrec/internal/config"
	"travelrec/internal/model"
)

// casePrecedence lists the category-specific case types tried after the
// shared price and rating cases, in order
var casePrecedence = map[model.Category][]model.CaseType{
	model.CategoryRestaurant: {model.CaseCuisine, model.CaseLocation},
	model.CategoryHotel:      {model.CaseAmenities, model.CaseHotelCategory, model.CaseLocation},
	model.CategoryVehicle:    {model.CaseVehicleType, model.CaseCapacity, model.CaseLocation},
}

// IntentClassifier resolves the category and case type of an extracted query
// and fills in the qualitative defaults for that case
type IntentClassifier struct {
	thresholds config.Thresholds
	logger     zerolog.Logger
}

// NewIntentClassifier creates a new intent classifier
func NewIntentClassifier(thresholds config.Thresholds, logger zerolog.Logger) *IntentClassifier {
	return &IntentClassifier{
		thresholds: thresholds,
		logger:     logger,
	}
}

// Classify returns the intent for ex, or ErrCategoryUndetermined when the
// query carries no category vocabulary at all
func (c *IntentClassifier) Classify(ex *Extraction) (*model.Intent, error) {
	category, ok := c.category(ex)
	if !ok {
		return nil, ErrCategoryUndetermined
	}

	params := ex.Params.Clone()
	if ex.NameCategory != category {
		// a name from another category cannot be booked here
		params.ChosenName = nil
	}

	caseType, matched := selectCase(category, params)
	if !matched {
		c.logger.Debug().
			Str("category", string(category)).
			Msg("No case type matched, using price_quality_mix")
	}

	c.applyDefaults(category, caseType, params)

	return &model.Intent{
		Category: category,
		CaseType: caseType,
		Params:   params,
		Degraded: !matched,
	}, nil
}

// category scores every category by vocabulary hits. A cuisine keyword
// always means restaurants. A named catalog item adds one point to its
// category. Ties go to the earlier entry of model.Categories.
func (c *IntentClassifier) category(ex *Extraction) (model.Category, bool) {
	if ex.CuisineFound {
		return model.CategoryRestaurant, true
	}

	best, bestScore := model.Category(""), 0
	for _, cat := range model.Categories {
		score := ex.Hits[cat]
		if ex.NameCategory == cat {
			score++
		}
		if score > bestScore {
			best, bestScore = cat, score
		}
	}
	return best, bestScore > 0
}

// selectCase applies the fixed case precedence:
// booking > price_quality_mix > cheap > expensive > best > worst >
// category-specific cases. The second result is false when nothing matched
// and the generic price_quality_mix case was chosen.
func selectCase(category model.Category, p *model.ParamSet) (model.CaseType, bool) {
	switch {
	case p.ChosenName != nil:
		return model.CaseBooking, true
	case p.HasPriceSignal() && p.HasRatingSignal():
		return model.CasePriceQualityMix, true
	case p.PriceLevel == model.PriceLevelCheap:
		return model.CaseCheap, true
	case p.PriceLevel == model.PriceLevelExpensive:
		return model.CaseExpensive, true
	case p.PriceMax != nil:
		// an explicit range is filtered and ranked by its ceiling
		return model.CaseCheap, true
	case p.PriceMin != nil:
		return model.CaseExpensive, true
	case p.RatingLevel == model.RatingLevelHigh || p.RatingMin != nil:
		return model.CaseBest, true
	case p.RatingLevel == model.RatingLevelLow || p.RatingMax != nil:
		return model.CaseWorst, true
	}

	for _, ct := range casePrecedence[category] {
		if hasCaseParam(ct, p) {
			return ct, true
		}
	}
	return model.CasePriceQualityMix, false
}

func hasCaseParam(ct model.CaseType, p *model.ParamSet) bool {
	switch ct {
	case model.CaseCuisine:
		return p.Cuisine != nil
	case model.CaseLocation:
		return p.Location != nil
	case model.CaseAmenities:
		return len(p.Amenities) > 0
	case model.CaseHotelCategory:
		return p.HotelCategory != nil
	case model.CaseVehicleType:
		return p.VehicleType != nil
	case model.CaseCapacity:
		return p.CapacityMin != nil
	}
	return false
}

// applyDefaults turns qualitative signals into numeric bounds using the
// configured thresholds. Explicit numbers from the query are never replaced.
func (c *IntentClassifier) applyDefaults(category model.Category, caseType model.CaseType, p *model.ParamSet) {
	cheapMax, luxuryMin := c.priceThresholds(category)

	if p.PriceLevel == model.PriceLevelCheap && p.PriceMax == nil {
		p.PriceMax = &cheapMax
	}
	if p.PriceLevel == model.PriceLevelExpensive && p.PriceMin == nil {
		p.PriceMin = &luxuryMin
	}

	switch caseType {
	case model.CaseBest:
		if p.RatingMin == nil {
			v := c.thresholds.BestRatingMin
			p.RatingMin = &v
		}
	case model.CaseWorst:
		if p.RatingMax == nil {
			v := c.thresholds.WorstRatingMax
			p.RatingMax = &v
		}
	case model.CasePriceQualityMix:
		if p.RatingMin == nil {
			v := c.thresholds.PriceQualityRatingMin
			if p.RatingLevel == model.RatingLevelHigh {
				v = c.thresholds.BestRatingMin
			}
			p.RatingMin = &v
		}
	}
}

func (c *IntentClassifier) priceThresholds(category model.Category) (cheapMax, luxuryMin float64) {
	switch category {
	case model.CategoryRestaurant:
		return c.thresholds.RestaurantCheapMax, c.thresholds.RestaurantLuxuryMin
	case model.CategoryHotel:
		return c.thresholds.HotelCheapMax, c.thresholds.HotelLuxuryMin
	case model.CategoryVehicle:
		return c.thresholds.VehicleCheapMax, c.thresholds.VehicleLuxuryMin
	}
	return 0, 0
}
