// Package catalog holds the read-only reference data the engine queries.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
	"time"

	"travelrec/internal/model"
)

// ErrUnavailable is returned when the external data source cannot be loaded
var ErrUnavailable = errors.New("catalog unavailable")

// Source loads a catalog snapshot from an external data source
type Source interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// NamedItem is an entry of the direct-lookup name index
type NamedItem struct {
	Name     string // lower-cased display name
	Category model.Category
}

// Snapshot is an immutable in-memory catalog. It is safe for concurrent use
// because nothing mutates it after NewSnapshot returns; callers must treat the
// slices it hands out as read-only.
type Snapshot struct {
	items    map[model.Category][]model.Item
	names    []NamedItem
	version  string
	loadedAt time.Time
}

// NewSnapshot builds a snapshot from already-normalised records
func NewSnapshot(restaurants []*model.Restaurant, hotels []*model.Hotel, vehicles []*model.Vehicle) *Snapshot {
	s := &Snapshot{
		items:    make(map[model.Category][]model.Item, len(model.Categories)),
		loadedAt: time.Now(),
	}

	for _, r := range restaurants {
		s.items[model.CategoryRestaurant] = append(s.items[model.CategoryRestaurant], r)
	}
	for _, h := range hotels {
		s.items[model.CategoryHotel] = append(s.items[model.CategoryHotel], h)
	}
	for _, v := range vehicles {
		s.items[model.CategoryVehicle] = append(s.items[model.CategoryVehicle], v)
	}

	h := fnv.New64a()
	for _, c := range model.Categories {
		for _, item := range s.items[c] {
			name := strings.ToLower(strings.TrimSpace(item.DisplayName()))
			h.Write([]byte(string(c) + "\x00" + name + "\x00"))
			if len(name) > 3 {
				s.names = append(s.names, NamedItem{Name: name, Category: c})
			}
		}
	}
	s.version = strconv.FormatUint(h.Sum64(), 16)

	// Longest names first so "the oberoi mumbai" wins over "the oberoi"
	sort.SliceStable(s.names, func(i, j int) bool {
		return len(s.names[i].Name) > len(s.names[j].Name)
	})

	return s
}

// Items returns the items of one category in load order
func (s *Snapshot) Items(c model.Category) []model.Item {
	return s.items[c]
}

// Names returns the direct-lookup index, longest names first
func (s *Snapshot) Names() []NamedItem {
	return s.names
}

// Len returns the total number of items
func (s *Snapshot) Len() int {
	n := 0
	for _, items := range s.items {
		n += len(items)
	}
	return n
}

// Counts returns the number of items per category
func (s *Snapshot) Counts() map[model.Category]int {
	counts := make(map[model.Category]int, len(model.Categories))
	for _, c := range model.Categories {
		counts[c] = len(s.items[c])
	}
	return counts
}

// Version identifies the snapshot contents; it changes when names change
func (s *Snapshot) Version() string {
	return s.version
}

// LoadedAt returns when the snapshot was built
func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}

// Load loads a snapshot and wraps any failure in ErrUnavailable
func Load(ctx context.Context, src Source) (*Snapshot, error) {
	snap, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return snap, nil
}
