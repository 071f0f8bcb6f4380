package service

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelrec/internal/model"
)

func restaurantSpec(levels ...Constraint) FilterSpec {
	return FilterSpec{Category: model.CategoryRestaurant, CaseType: model.CaseCheap, Levels: levels}
}

func TestCascade_AppliesLevelsInOrder(t *testing.T) {
	snap := testSnapshot()
	c := NewCascade(nil)

	params := &model.ParamSet{
		RatingMin: ptr(4.0),
		PriceMax:  ptr(800.0),
		Location:  ptr("mumbai"),
		Cuisine:   ptr("italian"),
	}
	spec := restaurantSpec(ratingFloor, priceCeiling, locationMatch, cuisineMatch)

	result := c.Run(snap.Items(model.CategoryRestaurant), spec, params)

	assert.False(t, result.Exhausted)
	assert.Equal(t, []string{"Trattoria Bella"}, names(result.Candidates))
	require.Len(t, result.Trace, 4)
	assert.Equal(t, model.LevelTrace{Level: 1, Constraint: "rating >=", Outcome: model.LevelApplied, Before: 7, After: 5}, result.Trace[0])
	assert.Equal(t, 3, result.Trace[1].After)
	assert.Equal(t, 1, result.Trace[3].After)
}

func TestCascade_RelaxesSecondaryLevels(t *testing.T) {
	snap := testSnapshot()
	c := NewCascade(nil)

	params := &model.ParamSet{Cuisine: ptr("chinese"), Location: ptr("xyzabad")}
	spec := restaurantSpec(cuisineMatch, ratingFloor, priceCeiling, locationMatch)

	result := c.Run(snap.Items(model.CategoryRestaurant), spec, params)

	assert.False(t, result.Exhausted)
	assert.ElementsMatch(t, []string{"Dragon Wok", "Golden Chopsticks"}, names(result.Candidates))
	assert.Equal(t, model.LevelUnbound, result.Trace[1].Outcome)
	assert.Equal(t, model.LevelUnbound, result.Trace[2].Outcome)
	assert.Equal(t, model.LevelRelaxed, result.Trace[3].Outcome)
	assert.Equal(t, 2, result.Trace[3].After)
}

func TestCascade_PrimaryLevelIsStrict(t *testing.T) {
	snap := testSnapshot()
	c := NewCascade(nil)

	params := &model.ParamSet{Cuisine: ptr("ethiopian"), RatingMin: ptr(4.0)}
	spec := restaurantSpec(cuisineMatch, ratingFloor)

	result := c.Run(snap.Items(model.CategoryRestaurant), spec, params)

	assert.True(t, result.Exhausted)
	assert.Empty(t, result.Candidates)
	require.Len(t, result.Trace, 1, "evaluation stops at the primary level")
	assert.Equal(t, model.LevelEmptied, result.Trace[0].Outcome)
}

func TestCascade_UnboundPrimaryIsSkipped(t *testing.T) {
	snap := testSnapshot()
	c := NewCascade(nil)

	params := &model.ParamSet{Cuisine: ptr("italian")}
	spec := restaurantSpec(priceCeiling, ratingFloor, locationMatch, cuisineMatch)

	result := c.Run(snap.Items(model.CategoryRestaurant), spec, params)

	assert.False(t, result.Exhausted)
	assert.ElementsMatch(t, []string{"Trattoria Bella", "Pasta Palace", "Olive Grove"}, names(result.Candidates))
	assert.Equal(t, model.LevelUnbound, result.Trace[0].Outcome)
	assert.Equal(t, model.LevelApplied, result.Trace[3].Outcome)
}

func TestCascade_EmptyCategory(t *testing.T) {
	c := NewCascade(nil)
	result := c.Run(nil, restaurantSpec(ratingFloor), &model.ParamSet{})

	assert.True(t, result.Exhausted)
	assert.Empty(t, result.Candidates)
	assert.Empty(t, result.Trace)
}

func TestCascade_VehicleTypeSynonyms(t *testing.T) {
	snap := testSnapshot()
	c := NewCascade(DefaultVocabulary().VehicleSynonyms)

	spec := FilterSpec{Category: model.CategoryVehicle, CaseType: model.CaseVehicleType, Levels: []Constraint{typeMatch}}

	result := c.Run(snap.Items(model.CategoryVehicle), spec, &model.ParamSet{VehicleType: ptr("bike")})
	assert.Equal(t, []string{"Royal Enfield Classic"}, names(result.Candidates))

	result = c.Run(snap.Items(model.CategoryVehicle), spec, &model.ParamSet{VehicleType: ptr("car")})
	assert.ElementsMatch(t,
		[]string{"Mercedes E-Class", "BMW X5", "Toyota Innova", "Audi A4", "Mini Cooper"},
		names(result.Candidates))
}

// randomRestaurants builds a reproducible random catalog
func randomRestaurants(f *gofakeit.Faker, n int) []model.Item {
	cuisines := []string{"italian", "chinese", "thai", "mughlai", "mexican"}
	localities := []string{"bandra", "juhu", "powai", "dadar", "thane"}

	items := make([]model.Item, 0, n)
	for i := 0; i < n; i++ {
		from := float64(f.IntRange(0, 1500))
		items = append(items, restaurant(
			fmt.Sprintf("%s %d", f.Company(), i),
			from,
			from+float64(f.IntRange(0, 2500)),
			float64(f.IntRange(10, 50))/10,
			f.RandomString(localities)+", mumbai",
			f.RandomString(cuisines),
		))
	}
	return items
}

func randomParams(f *gofakeit.Faker) *model.ParamSet {
	p := &model.ParamSet{}
	if f.Bool() {
		p.PriceMax = ptr(float64(f.IntRange(100, 4000)))
	}
	if f.Bool() {
		p.PriceMin = ptr(float64(f.IntRange(0, 2000)))
	}
	if f.Bool() {
		p.RatingMin = ptr(float64(f.IntRange(10, 50)) / 10)
	}
	if f.Bool() {
		p.RatingMax = ptr(float64(f.IntRange(10, 50)) / 10)
	}
	if f.Bool() {
		p.Location = ptr(f.RandomString([]string{"bandra", "juhu", "powai", "dadar", "thane", "colaba"}))
	}
	if f.Bool() {
		p.Cuisine = ptr(f.RandomString([]string{"italian", "chinese", "thai", "mughlai", "mexican", "greek"}))
	}
	return p
}

func TestCascade_Properties(t *testing.T) {
	f := gofakeit.New(42)
	c := NewCascade(nil)
	table, err := NewFilterTable()
	require.NoError(t, err)

	restaurantCases := []model.CaseType{
		model.CaseCheap, model.CaseExpensive, model.CaseBest, model.CaseWorst,
		model.CaseLocation, model.CaseCuisine, model.CasePriceQualityMix,
	}

	for i := 0; i < 200; i++ {
		items := randomRestaurants(f, f.IntRange(0, 30))
		params := randomParams(f)
		caseType := model.CaseType(f.RandomString(caseNames(restaurantCases)))
		spec, ok := table.Spec(model.CategoryRestaurant, caseType)
		require.True(t, ok)

		result := c.Run(items, spec, params)

		inInput := make(map[model.Item]bool, len(items))
		for _, item := range items {
			inInput[item] = true
		}
		for _, item := range result.Candidates {
			assert.True(t, inInput[item], "candidates come from the input")
		}

		if result.Exhausted {
			assert.Empty(t, result.Candidates)
			continue
		}
		assert.NotEmpty(t, result.Candidates, "a non-exhausted cascade never ends empty")

		for _, tr := range result.Trace {
			assert.LessOrEqual(t, tr.After, tr.Before, "levels only narrow")
			if tr.Outcome != model.LevelApplied {
				assert.Equal(t, tr.Before, tr.After, "skipped levels keep the set")
			}
		}

		// every applied level still holds for the final candidates
		for idx, tr := range result.Trace {
			if tr.Outcome != model.LevelApplied {
				continue
			}
			pred, bound := spec.Levels[idx].Bind(params, nil)
			require.True(t, bound)
			for _, item := range result.Candidates {
				assert.True(t, pred(item), "level %d violated by %s", tr.Level, item.DisplayName())
			}
		}

		again := c.Run(items, spec, params)
		assert.Equal(t, names(result.Candidates), names(again.Candidates), "evaluation is deterministic")
	}
}

func caseNames(cases []model.CaseType) []string {
	out := make([]string, len(cases))
	for i, c := range cases {
		out[i] = string(c)
	}
	return out
}
