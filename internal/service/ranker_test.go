package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"travelrec/internal/model"
)

func TestRanker_Rank(t *testing.T) {
	snap := testSnapshot()
	r := NewRanker(5, 1, 5)

	tests := []struct {
		name     string
		category model.Category
		caseType model.CaseType
		want     []string
	}{
		{
			name:     "cheap restaurants by range ceiling",
			category: model.CategoryRestaurant,
			caseType: model.CaseCheap,
			want:     []string{"Udupi Corner", "Dragon Wok", "Trattoria Bella", "Olive Grove", "Golden Chopsticks"},
		},
		{
			name:     "expensive hotels by price descending",
			category: model.CategoryHotel,
			caseType: model.CaseExpensive,
			want:     []string{"Sea View Grand", "Juhu Beach Resort", "Airport Business Hotel", "Borivali Inn", "Dadar Lodge"},
		},
		{
			name:     "best vehicles by rating",
			category: model.CategoryVehicle,
			caseType: model.CaseBest,
			want:     []string{"Mercedes E-Class", "BMW X5", "Audi A4", "Mini Cooper", "Toyota Innova"},
		},
		{
			name:     "worst hotels by rating ascending",
			category: model.CategoryHotel,
			caseType: model.CaseWorst,
			want:     []string{"Dadar Lodge", "Borivali Inn", "Airport Business Hotel", "Juhu Beach Resort", "Sea View Grand"},
		},
		{
			name:     "default ordering is rating first",
			category: model.CategoryRestaurant,
			caseType: model.CaseCuisine,
			want:     []string{"Sakura Sushi", "Trattoria Bella", "Udupi Corner", "Pasta Palace", "Dragon Wok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked := r.Rank(snap.Items(tt.category), tt.caseType)
			assert.Equal(t, tt.want, names(ranked))
		})
	}
}

func TestRanker_TieBreakByName(t *testing.T) {
	r := NewRanker(5, 1, 5)
	items := []model.Item{
		hotel("beta stay", 1000, 4.0, "juhu", "budget"),
		hotel("Alpha Stay", 1000, 4.0, "juhu", "budget"),
		hotel("alpha stay", 1000, 4.0, "juhu", "budget"),
	}

	ranked := r.Rank(items, model.CaseCheap)
	assert.Equal(t, []string{"Alpha Stay", "alpha stay", "beta stay"}, names(ranked))
}

func TestRanker_DoesNotReorderInput(t *testing.T) {
	snap := testSnapshot()
	r := NewRanker(2, 1, 5)
	items := snap.Items(model.CategoryHotel)
	before := names(items)

	ranked := r.Rank(items, model.CaseExpensive)

	assert.Len(t, ranked, 2)
	assert.Equal(t, before, names(items))
}

func TestRanker_Alternatives(t *testing.T) {
	snap := testSnapshot()
	restaurants := snap.Items(model.CategoryRestaurant)

	t.Run("none when enough results", func(t *testing.T) {
		r := NewRanker(5, 1, 5)
		intent := &model.Intent{Category: model.CategoryRestaurant, CaseType: model.CaseCuisine, Params: &model.ParamSet{}}
		assert.Nil(t, r.Alternatives(restaurants, restaurants[:1], intent))
	})

	t.Run("similar cuisines first", func(t *testing.T) {
		r := NewRanker(5, 1, 5)
		intent := &model.Intent{
			Category: model.CategoryRestaurant,
			CaseType: model.CaseCuisine,
			Params: &model.ParamSet{
				Cuisine:         ptr("korean"),
				SimilarCuisines: []string{"asian", "japanese", "chinese"},
			},
		}

		alts := r.Alternatives(restaurants, nil, intent)
		assert.Equal(t, []string{"Sakura Sushi", "Dragon Wok", "Golden Chopsticks", "Trattoria Bella", "Udupi Corner"}, alts)
	})

	t.Run("never repeats recommendations", func(t *testing.T) {
		r := NewRanker(5, 3, 10)
		intent := &model.Intent{Category: model.CategoryRestaurant, CaseType: model.CaseBest, Params: &model.ParamSet{}}
		ranked := r.Rank(restaurants[:2], model.CaseBest)

		alts := r.Alternatives(restaurants, ranked, intent)
		assert.Len(t, alts, len(restaurants)-len(ranked))
		for _, name := range names(ranked) {
			assert.NotContains(t, alts, name)
		}
	})

	t.Run("bounded by the maximum", func(t *testing.T) {
		r := NewRanker(5, 1, 2)
		intent := &model.Intent{Category: model.CategoryHotel, CaseType: model.CaseCheap, Params: &model.ParamSet{}}
		alts := r.Alternatives(snap.Items(model.CategoryHotel), nil, intent)
		assert.Equal(t, []string{"Dadar Lodge", "Borivali Inn"}, alts)
	})
}
