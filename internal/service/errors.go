package service

import (
	"errors"

	"travelrec/internal/catalog"
)

var (
	// ErrEmptyQuery is returned for a blank query. Boundaries reject these
	// before calling the engine.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrCategoryUndetermined means no restaurant, hotel or vehicle vocabulary
	// was found in the query
	ErrCategoryUndetermined = errors.New("could not determine what kind of place or vehicle the query is about")

	// ErrCatalogUnavailable is returned by every evaluation when the catalog
	// failed to load
	ErrCatalogUnavailable = catalog.ErrUnavailable
)

// ErrEngineFailed is reported when the out-of-process engine could not
// produce a result object
var ErrEngineFailed = errors.New("recommendation engine failed")
