package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelrec/internal/model"
)

func TestNewFilterTable_CoversEveryReachableCase(t *testing.T) {
	table, err := NewFilterTable()
	require.NoError(t, err)

	shared := []model.CaseType{
		model.CaseBooking, model.CasePriceQualityMix, model.CaseCheap,
		model.CaseExpensive, model.CaseBest, model.CaseWorst,
	}

	for _, category := range model.Categories {
		cases := append(append([]model.CaseType(nil), shared...), casePrecedence[category]...)
		for _, ct := range cases {
			spec, ok := table.Spec(category, ct)
			if assert.True(t, ok, "%s/%s", category, ct) {
				assert.NotEmpty(t, spec.Levels)
				assert.LessOrEqual(t, len(spec.Levels), 4)
			}
		}
	}

	_, ok := table.Spec(model.CategoryHotel, model.CaseCuisine)
	assert.False(t, ok, "hotels have no cuisine case")
}

func TestFilterTable_PrimaryLevels(t *testing.T) {
	table, err := NewFilterTable()
	require.NoError(t, err)

	tests := []struct {
		category model.Category
		caseType model.CaseType
		primary  Constraint
	}{
		{model.CategoryRestaurant, model.CaseCheap, priceCeiling},
		{model.CategoryRestaurant, model.CaseCuisine, cuisineMatch},
		{model.CategoryHotel, model.CaseAmenities, amenityMatch},
		{model.CategoryHotel, model.CaseWorst, ratingCeiling},
		{model.CategoryVehicle, model.CaseCapacity, capacityFloor},
		{model.CategoryVehicle, model.CaseExpensive, priceFloor},
		{model.CategoryVehicle, model.CaseBooking, nameMatch},
	}

	for _, tt := range tests {
		spec, ok := table.Spec(tt.category, tt.caseType)
		require.True(t, ok)
		assert.Equal(t, tt.primary, spec.Levels[0], "%s/%s", tt.category, tt.caseType)
	}
}

func TestConstraint_Bind(t *testing.T) {
	trattoria := restaurant("Trattoria Bella", 300, 700, 4.5, "Colaba Causeway, Mumbai", "italian")
	resort := hotel("Juhu Beach Resort", 9000, 4.4, "Juhu, Mumbai", "resort", "pool", "bar")
	resort.Description = "Sea facing rooms with free parking"
	mercedes := vehicle("Mercedes E-Class", "car", 8000, 4.7, 4, "Bandra", "Andheri")

	t.Run("unbound without a value", func(t *testing.T) {
		for _, c := range []Constraint{priceCeiling, priceFloor, ratingFloor, ratingCeiling, locationMatch,
			cuisineMatch, amenityMatch, categoryMatch, typeMatch, capacityFloor, nameMatch} {
			_, bound := c.Bind(&model.ParamSet{}, nil)
			assert.False(t, bound, c.String())
		}
	})

	t.Run("restaurant prices use the range", func(t *testing.T) {
		pred, _ := priceCeiling.Bind(&model.ParamSet{PriceMax: ptr(700.0)}, nil)
		assert.True(t, pred(trattoria))
		pred, _ = priceCeiling.Bind(&model.ParamSet{PriceMax: ptr(650.0)}, nil)
		assert.False(t, pred(trattoria))

		pred, _ = priceFloor.Bind(&model.ParamSet{PriceMin: ptr(300.0)}, nil)
		assert.True(t, pred(trattoria))
	})

	t.Run("location is a whole-word match", func(t *testing.T) {
		pred, _ := locationMatch.Bind(&model.ParamSet{Location: ptr("colaba")}, nil)
		assert.True(t, pred(trattoria))
		pred, _ = locationMatch.Bind(&model.ParamSet{Location: ptr("cola")}, nil)
		assert.False(t, pred(trattoria))
	})

	t.Run("vehicle location matches drop-off", func(t *testing.T) {
		pred, _ := locationMatch.Bind(&model.ParamSet{Location: ptr("andheri")}, nil)
		assert.True(t, pred(mercedes))
	})

	t.Run("amenities match aliases and the description", func(t *testing.T) {
		pred, _ := amenityMatch.Bind(&model.ParamSet{Amenities: []string{"swimming pool"}}, nil)
		assert.True(t, pred(resort))
		pred, _ = amenityMatch.Bind(&model.ParamSet{Amenities: []string{"parking"}}, nil)
		assert.True(t, pred(resort))
		pred, _ = amenityMatch.Bind(&model.ParamSet{Amenities: []string{"gym"}}, nil)
		assert.False(t, pred(resort))
	})

	t.Run("category specific constraints reject other variants", func(t *testing.T) {
		pred, _ := cuisineMatch.Bind(&model.ParamSet{Cuisine: ptr("italian")}, nil)
		assert.False(t, pred(resort))
		pred, _ = capacityFloor.Bind(&model.ParamSet{CapacityMin: ptr(4)}, nil)
		assert.True(t, pred(mercedes))
		assert.False(t, pred(trattoria))
	})

	t.Run("name is case insensitive", func(t *testing.T) {
		pred, _ := nameMatch.Bind(&model.ParamSet{ChosenName: ptr("trattoria bella")}, nil)
		assert.True(t, pred(trattoria))
	})
}
