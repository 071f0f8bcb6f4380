package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelrec/internal/model"
)

func newMockRepo(t *testing.T) (*CatalogRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewCatalogRepositoryFromDB(sqlx.NewDb(db, "sqlmock")), mock
}

func TestCatalogRepository_Load(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(selectRestaurants).WillReturnRows(
		sqlmock.NewRows([]string{"name", "price_range_from", "price_range_to", "rating", "review_count", "address", "cuisines", "phone"}).
			AddRow("Trattoria Roma", 300.0, 700.0, 4.5, int64(120), "Bandra West, Mumbai", "Italian, Pizza", "+91 22 1234").
			AddRow("Spice Route", nil, nil, nil, nil, nil, nil, nil),
	)
	mock.ExpectQuery(selectHotels).WillReturnRows(
		sqlmock.NewRows([]string{"name", "price", "rating", "location", "category", "amenities", "description"}).
			AddRow("Sea Breeze", 2500.0, 4.1, "Juhu, Mumbai", "Budget", "wifi, pool", "By the sea"),
	)
	mock.ExpectQuery(selectVehicles).WillReturnRows(
		sqlmock.NewRows([]string{"name", "type", "price_per_day", "price_per_hour", "rating", "passengers", "pickup_location", "drop_off_location", "preference"}).
			AddRow("Innova Crysta", "SUV", 4500.0, 300.0, 4.6, int64(7), "Andheri; Powai", "Andheri", "Luxury"),
	)

	snap, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	restaurants := snap.Items(model.CategoryRestaurant)
	require.Len(t, restaurants, 2)
	roma := restaurants[0].(*model.Restaurant)
	assert.Equal(t, "bandra west, mumbai", roma.Address)
	assert.True(t, roma.Cuisines.Has("italian"))
	assert.Equal(t, 120, roma.ReviewCount)

	spice := restaurants[1].(*model.Restaurant)
	assert.Equal(t, 0.0, spice.PriceRangeFrom)
	assert.Equal(t, 1000.0, spice.PriceRangeTo)
	assert.Empty(t, spice.Cuisines)

	hotel := snap.Items(model.CategoryHotel)[0].(*model.Hotel)
	assert.Equal(t, "budget", hotel.Category)
	assert.True(t, hotel.Amenities.Has("pool"))

	vehicle := snap.Items(model.CategoryVehicle)[0].(*model.Vehicle)
	assert.Equal(t, "suv", vehicle.Type)
	assert.Equal(t, 7, vehicle.Capacity)
	assert.Equal(t, []string{"andheri", "powai"}, vehicle.PickupLocations)
	assert.Equal(t, "luxury", vehicle.Preference)
}

func TestCatalogRepository_LoadQueryError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(selectRestaurants).WillReturnError(errors.New("relation \"restaurants\" does not exist"))

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query restaurants")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_SQLite(t *testing.T) {
	repo, err := NewCatalogRepository(DriverSQLite, ":memory:", 1, 1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	schema := []string{
		`CREATE TABLE restaurants (name TEXT, price_range_from REAL, price_range_to REAL, rating REAL,
			review_count INTEGER, address TEXT, cuisines TEXT, phone TEXT)`,
		`CREATE TABLE hotels (name TEXT, price REAL, rating REAL, location TEXT, category TEXT,
			amenities TEXT, description TEXT)`,
		`CREATE TABLE vehicles (name TEXT, type TEXT, price_per_day REAL, price_per_hour REAL, rating REAL,
			passengers INTEGER, pickup_location TEXT, drop_off_location TEXT, preference TEXT)`,
		`INSERT INTO restaurants VALUES ('Cafe Madras', 100, 400, 4.4, 900, 'Matunga, Mumbai', 'South Indian', NULL)`,
		`INSERT INTO hotels VALUES ('Hotel Sahil', 3200, 3.9, 'Mumbai Central', 'Business', 'WiFi', NULL)`,
		`INSERT INTO vehicles VALUES ('Pulsar 150', 'Bike', 700, 80, 4.0, 2, 'Dadar', 'Dadar', 'Budget')`,
	}
	for _, stmt := range schema {
		_, err := repo.db.Exec(stmt)
		require.NoError(t, err)
	}

	snap, err := repo.Load(context.Background())
	require.NoError(t, err)

	counts := snap.Counts()
	assert.Equal(t, 1, counts[model.CategoryRestaurant])
	assert.Equal(t, 1, counts[model.CategoryHotel])
	assert.Equal(t, 1, counts[model.CategoryVehicle])

	r := snap.Items(model.CategoryRestaurant)[0].(*model.Restaurant)
	assert.True(t, r.Cuisines.Has("south indian"))
	assert.Empty(t, r.Phone)
}
