package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"travelrec/internal/catalog"
	"travelrec/internal/model"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

const (
	selectRestaurants = `SELECT name, price_range_from, price_range_to, rating, review_count,
		address, cuisines, phone FROM restaurants ORDER BY name`
	selectHotels = `SELECT name, price, rating, location, category, amenities, description
		FROM hotels ORDER BY name`
	selectVehicles = `SELECT name, type, price_per_day, price_per_hour, rating, passengers,
		pickup_location, drop_off_location, preference FROM vehicles ORDER BY name`
)

// CatalogRepository reads the catalog tables once per load. It never writes.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository opens a connection for the given driver
func NewCatalogRepository(driver, dsn string, maxConn, maxIdleConn int) (*CatalogRepository, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return &CatalogRepository{db: db}, nil
}

// NewCatalogRepositoryFromDB wraps an existing handle
func NewCatalogRepositoryFromDB(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Close closes the database connection
func (r *CatalogRepository) Close() error {
	return r.db.Close()
}

type restaurantRow struct {
	Name           string          `db:"name"`
	PriceRangeFrom sql.NullFloat64 `db:"price_range_from"`
	PriceRangeTo   sql.NullFloat64 `db:"price_range_to"`
	Rating         sql.NullFloat64 `db:"rating"`
	ReviewCount    sql.NullInt64   `db:"review_count"`
	Address        sql.NullString  `db:"address"`
	Cuisines       sql.NullString  `db:"cuisines"`
	Phone          sql.NullString  `db:"phone"`
}

type hotelRow struct {
	Name        string          `db:"name"`
	Price       sql.NullFloat64 `db:"price"`
	Rating      sql.NullFloat64 `db:"rating"`
	Location    sql.NullString  `db:"location"`
	Category    sql.NullString  `db:"category"`
	Amenities   sql.NullString  `db:"amenities"`
	Description sql.NullString  `db:"description"`
}

type vehicleRow struct {
	Name            string          `db:"name"`
	Type            sql.NullString  `db:"type"`
	PricePerDay     sql.NullFloat64 `db:"price_per_day"`
	PricePerHour    sql.NullFloat64 `db:"price_per_hour"`
	Rating          sql.NullFloat64 `db:"rating"`
	Passengers      sql.NullInt64   `db:"passengers"`
	PickupLocation  sql.NullString  `db:"pickup_location"`
	DropOffLocation sql.NullString  `db:"drop_off_location"`
	Preference      sql.NullString  `db:"preference"`
}

// Load reads all three tables into a snapshot
func (r *CatalogRepository) Load(ctx context.Context) (*catalog.Snapshot, error) {
	restaurants, err := r.loadRestaurants(ctx)
	if err != nil {
		return nil, err
	}

	hotels, err := r.loadHotels(ctx)
	if err != nil {
		return nil, err
	}

	vehicles, err := r.loadVehicles(ctx)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("driver", r.db.DriverName()).
		Int("restaurants", len(restaurants)).
		Int("hotels", len(hotels)).
		Int("vehicles", len(vehicles)).
		Msg("Loaded SQL catalog")

	return catalog.NewSnapshot(restaurants, hotels, vehicles), nil
}

func (r *CatalogRepository) loadRestaurants(ctx context.Context) ([]*model.Restaurant, error) {
	var rows []restaurantRow
	if err := r.db.SelectContext(ctx, &rows, selectRestaurants); err != nil {
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}

	out := make([]*model.Restaurant, 0, len(rows))
	for _, row := range rows {
		out = append(out, catalog.NormalizeRestaurant(&model.Restaurant{
			Name:           row.Name,
			PriceRangeFrom: floatOr(row.PriceRangeFrom, catalog.DefaultPriceRangeFrom),
			PriceRangeTo:   floatOr(row.PriceRangeTo, catalog.DefaultPriceRangeTo),
			Rating:         floatOr(row.Rating, 0),
			ReviewCount:    int(row.ReviewCount.Int64),
			Address:        row.Address.String,
			Cuisines:       model.NewStringSet(catalog.SplitList(row.Cuisines.String)...),
			Phone:          row.Phone.String,
		}))
	}
	return out, nil
}

func (r *CatalogRepository) loadHotels(ctx context.Context) ([]*model.Hotel, error) {
	var rows []hotelRow
	if err := r.db.SelectContext(ctx, &rows, selectHotels); err != nil {
		return nil, fmt.Errorf("failed to query hotels: %w", err)
	}

	out := make([]*model.Hotel, 0, len(rows))
	for _, row := range rows {
		out = append(out, catalog.NormalizeHotel(&model.Hotel{
			Name:        row.Name,
			Price:       floatOr(row.Price, 0),
			Rating:      floatOr(row.Rating, 0),
			Location:    row.Location.String,
			Category:    row.Category.String,
			Amenities:   model.NewStringSet(catalog.SplitList(row.Amenities.String)...),
			Description: row.Description.String,
		}))
	}
	return out, nil
}

func (r *CatalogRepository) loadVehicles(ctx context.Context) ([]*model.Vehicle, error) {
	var rows []vehicleRow
	if err := r.db.SelectContext(ctx, &rows, selectVehicles); err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}

	out := make([]*model.Vehicle, 0, len(rows))
	for _, row := range rows {
		out = append(out, catalog.NormalizeVehicle(&model.Vehicle{
			Name:             row.Name,
			Type:             row.Type.String,
			PricePerDay:      floatOr(row.PricePerDay, 0),
			PricePerHour:     floatOr(row.PricePerHour, 0),
			Rating:           floatOr(row.Rating, 0),
			Capacity:         int(row.Passengers.Int64),
			PickupLocations:  catalog.SplitList(row.PickupLocation.String),
			DropOffLocations: catalog.SplitList(row.DropOffLocation.String),
			Preference:       row.Preference.String,
		}))
	}
	return out, nil
}

func floatOr(v sql.NullFloat64, def float64) float64 {
	if !v.Valid {
		return def
	}
	return v.Float64
}
