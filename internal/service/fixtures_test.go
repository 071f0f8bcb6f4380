package service

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"travelrec/internal/catalog"
	"travelrec/internal/config"
	"travelrec/internal/model"
)

func restaurant(name string, from, to, rating float64, address string, cuisines ...string) *model.Restaurant {
	return catalog.NormalizeRestaurant(&model.Restaurant{
		Name:           name,
		PriceRangeFrom: from,
		PriceRangeTo:   to,
		Rating:         rating,
		Address:        address,
		Cuisines:       model.NewStringSet(cuisines...),
	})
}

func hotel(name string, price, rating float64, location, category string, amenities ...string) *model.Hotel {
	return catalog.NormalizeHotel(&model.Hotel{
		Name:      name,
		Price:     price,
		Rating:    rating,
		Location:  location,
		Category:  category,
		Amenities: model.NewStringSet(amenities...),
	})
}

func vehicle(name, vtype string, perDay, rating float64, capacity int, pickup, dropOff string) *model.Vehicle {
	return catalog.NormalizeVehicle(&model.Vehicle{
		Name:             name,
		Type:             vtype,
		PricePerDay:      perDay,
		PricePerHour:     perDay / 8,
		Rating:           rating,
		Capacity:         capacity,
		PickupLocations:  catalog.SplitList(pickup),
		DropOffLocations: catalog.SplitList(dropOff),
	})
}

// testSnapshot is a small Mumbai catalog shared by the service tests
func testSnapshot() *catalog.Snapshot {
	restaurants := []*model.Restaurant{
		restaurant("Trattoria Bella", 300, 700, 4.5, "Colaba Causeway, Mumbai", "italian", "pizza"),
		restaurant("Pasta Palace", 500, 1500, 4.2, "Andheri West, Mumbai", "italian", "pasta"),
		restaurant("Olive Grove", 400, 750, 3.8, "Bandra, Mumbai", "italian", "mediterranean"),
		restaurant("Dragon Wok", 200, 600, 4.1, "Powai, Mumbai", "chinese"),
		restaurant("Golden Chopsticks", 300, 900, 3.9, "Dadar, Mumbai", "chinese", "asian"),
		restaurant("Sakura Sushi", 1500, 3000, 4.7, "Bandra, Mumbai", "japanese", "sushi"),
		restaurant("Udupi Corner", 100, 300, 4.3, "Matunga, Mumbai", "south indian", "vegetarian"),
	}
	hotels := []*model.Hotel{
		hotel("Sea View Grand", 12000, 4.8, "Colaba, Mumbai", "luxury", "pool", "wifi", "spa"),
		hotel("Borivali Inn", 2500, 3.9, "Borivali West, Mumbai", "budget", "wifi", "parking"),
		hotel("Airport Business Hotel", 6000, 4.2, "Andheri East, Mumbai", "business", "wifi", "gym", "business center"),
		hotel("Juhu Beach Resort", 9000, 4.4, "Juhu, Mumbai", "resort", "pool", "bar", "breakfast"),
		hotel("Dadar Lodge", 1500, 3.2, "Dadar, Mumbai", "budget", "wifi"),
	}
	vehicles := []*model.Vehicle{
		vehicle("Mercedes E-Class", "car", 8000, 4.7, 4, "Bandra, Andheri", "Andheri"),
		vehicle("BMW X5", "suv", 9500, 4.6, 5, "Juhu", "Juhu, Bandra"),
		vehicle("Toyota Innova", "car", 3500, 4.3, 7, "Dadar", "Thane"),
		vehicle("Audi A4", "car", 7000, 4.5, 4, "Powai", "Powai"),
		vehicle("Mini Cooper", "car", 6000, 4.4, 2, "Colaba", "Colaba"),
		vehicle("Honda Activa", "scooter", 500, 4.0, 2, "Borivali", "Borivali"),
		vehicle("Royal Enfield Classic", "motorcycle", 1200, 4.2, 2, "Thane", "Vashi"),
	}
	return catalog.NewSnapshot(restaurants, hotels, vehicles)
}

func testEngineConfig() config.EngineConfig {
	return config.EngineConfig{
		MaxResults:      5,
		MinResults:      1,
		MaxAlternatives: 5,
		Thresholds:      config.DefaultThresholds(),
	}
}

func newTestService(t *testing.T) *RecommendationService {
	t.Helper()
	svc, err := NewRecommendationService(testSnapshot(), DefaultVocabulary(), testEngineConfig(), zerolog.Nop())
	require.NoError(t, err)
	return svc
}

func names(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.DisplayName())
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
