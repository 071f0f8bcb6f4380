package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"travelrec/internal/model"
)

// File names expected inside a CSV catalog directory
const (
	RestaurantsFile = "restaurants.csv"
	HotelsFile      = "hotels.csv"
	VehiclesFile    = "vehicles.csv"
)

// CSVSource loads the catalog from a directory of CSV exports
type CSVSource struct {
	Dir string
}

// NewCSVSource creates a CSV source rooted at dir
func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{Dir: dir}
}

// Load reads all three files. A missing or malformed file fails the whole load.
func (s *CSVSource) Load(ctx context.Context) (*Snapshot, error) {
	var (
		restaurants []*model.Restaurant
		hotels      []*model.Hotel
		vehicles    []*model.Vehicle
	)

	err := s.readFile(ctx, RestaurantsFile, []string{"name"}, func(row csvRow) {
		restaurants = append(restaurants, restaurantFromRow(row))
	})
	if err != nil {
		return nil, err
	}

	err = s.readFile(ctx, HotelsFile, []string{"name"}, func(row csvRow) {
		hotels = append(hotels, hotelFromRow(row))
	})
	if err != nil {
		return nil, err
	}

	err = s.readFile(ctx, VehiclesFile, []string{"name"}, func(row csvRow) {
		vehicles = append(vehicles, vehicleFromRow(row))
	})
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("dir", s.Dir).
		Int("restaurants", len(restaurants)).
		Int("hotels", len(hotels)).
		Int("vehicles", len(vehicles)).
		Msg("Loaded CSV catalog")

	return NewSnapshot(restaurants, hotels, vehicles), nil
}

func (s *CSVSource) readFile(ctx context.Context, name string, required []string, fn func(csvRow)) error {
	path := filepath.Join(s.Dir, name)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return readCSV(ctx, f, required, fn)
}

// readCSV streams rows from r to fn. Header names are matched
// case-insensitively and required columns must be present.
func readCSV(ctx context.Context, r io.Reader, required []string, fn func(csvRow)) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("missing required column %q", col)
		}
	}

	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		line++
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		row := csvRow{index: index, record: record}
		if strings.TrimSpace(row.get("name")) == "" {
			log.Debug().Int("line", line).Msg("Skipping row without name")
			continue
		}
		fn(row)
	}
}

type csvRow struct {
	index  map[string]int
	record []string
}

func (r csvRow) get(col string) string {
	i, ok := r.index[strings.ToLower(col)]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func (r csvRow) number(col string, def float64) float64 {
	if v, ok := ParseNumber(r.get(col)); ok {
		return v
	}
	return def
}

func restaurantFromRow(row csvRow) *model.Restaurant {
	return NormalizeRestaurant(&model.Restaurant{
		Name:           row.get("name"),
		PriceRangeFrom: row.number("price_range_from", DefaultPriceRangeFrom),
		PriceRangeTo:   row.number("price_range_to", DefaultPriceRangeTo),
		Rating:         row.number("rating", 0),
		ReviewCount:    int(row.number("review_count", 0)),
		Address:        row.get("address"),
		Cuisines:       model.NewStringSet(SplitList(row.get("cuisines"))...),
		Phone:          row.get("phone"),
	})
}

func hotelFromRow(row csvRow) *model.Hotel {
	return NormalizeHotel(&model.Hotel{
		Name:        row.get("name"),
		Price:       row.number("price", 0),
		Rating:      row.number("rating", 0),
		Location:    row.get("location"),
		Category:    row.get("category"),
		Amenities:   model.NewStringSet(SplitList(row.get("amenities"))...),
		Description: row.get("description"),
	})
}

func vehicleFromRow(row csvRow) *model.Vehicle {
	return NormalizeVehicle(&model.Vehicle{
		Name:             row.get("name"),
		PricePerDay:      row.number("pricePerDay", 0),
		PricePerHour:     row.number("pricePerHour", 0),
		Rating:           row.number("ratings", 0),
		Type:             row.get("type"),
		PickupLocations:  SplitList(row.get("pickupLocation")),
		DropOffLocations: SplitList(row.get("dropOffLocation")),
		Capacity:         int(row.number("passengers", 0)),
		Preference:       row.get("preference"),
	})
}
