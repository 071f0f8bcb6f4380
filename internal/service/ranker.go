package service

import (
	"sort"
	"strings"

	"travelrec/internal/model"
	"travelrec/internal/utils"
)

// Ranker orders candidates by the case type's sort key and builds the
// alternatives list
type Ranker struct {
	maxResults      int
	minResults      int
	maxAlternatives int
}

// NewRanker creates a new ranker with the given result bounds
func NewRanker(maxResults, minResults, maxAlternatives int) *Ranker {
	return &Ranker{
		maxResults:      maxResults,
		minResults:      minResults,
		maxAlternatives: maxAlternatives,
	}
}

// Rank sorts a copy of items and truncates it to the result limit
func (r *Ranker) Rank(items []model.Item, caseType model.CaseType) []model.Item {
	ranked := r.sorted(items, caseType)
	if len(ranked) > r.maxResults {
		ranked = ranked[:r.maxResults]
	}
	return ranked
}

// Alternatives returns display names from the whole category subset when
// ranked is shorter than the minimum. Names already recommended are never
// repeated. For restaurants, places serving a similar cuisine come first.
func (r *Ranker) Alternatives(categoryItems, ranked []model.Item, intent *model.Intent) []string {
	if len(ranked) >= r.minResults || r.maxAlternatives == 0 {
		return nil
	}

	seen := make(map[string]bool, len(ranked))
	for _, item := range ranked {
		seen[nameKey(item)] = true
	}

	pool := r.sorted(categoryItems, intent.CaseType)
	if intent.Category == model.CategoryRestaurant {
		pool = similarCuisinesFirst(pool, intent.Params)
	}

	var alternatives []string
	for _, item := range pool {
		key := nameKey(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		alternatives = append(alternatives, item.DisplayName())
		if len(alternatives) == r.maxAlternatives {
			break
		}
	}
	return alternatives
}

func (r *Ranker) sorted(items []model.Item, caseType model.CaseType) []model.Item {
	out := append([]model.Item(nil), items...)
	less := lessFor(caseType)
	sort.SliceStable(out, func(i, j int) bool {
		if c := less(out[i], out[j]); c != 0 {
			return c < 0
		}
		return byName(out[i], out[j]) < 0
	})
	return out
}

// comparator returns a negative number when a sorts before b, positive when
// after and zero when the key ties
type comparator func(a, b model.Item) int

func lessFor(caseType model.CaseType) comparator {
	switch caseType {
	case model.CaseCheap:
		return chain(ascending(upperPrice), descending(model.Rating))
	case model.CaseExpensive:
		return chain(descending(lowerPrice), descending(model.Rating))
	case model.CaseBest:
		return chain(descending(model.Rating), ascending(upperPrice))
	case model.CaseWorst:
		return chain(ascending(model.Rating), descending(upperPrice))
	default:
		return chain(descending(model.Rating), ascending(upperPrice))
	}
}

func chain(cs ...comparator) comparator {
	return func(a, b model.Item) int {
		for _, c := range cs {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return 0
	}
}

func ascending(key func(model.Item) float64) comparator {
	return func(a, b model.Item) int {
		ka, kb := key(a), key(b)
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		}
		return 0
	}
}

func descending(key func(model.Item) float64) comparator {
	asc := ascending(key)
	return func(a, b model.Item) int { return asc(b, a) }
}

func byName(a, b model.Item) int {
	if c := strings.Compare(nameKey(a), nameKey(b)); c != 0 {
		return c
	}
	return strings.Compare(a.DisplayName(), b.DisplayName())
}

func nameKey(item model.Item) string {
	return strings.ToLower(strings.TrimSpace(item.DisplayName()))
}

func similarCuisinesFirst(items []model.Item, p *model.ParamSet) []model.Item {
	if p == nil || len(p.SimilarCuisines) == 0 {
		return items
	}

	var similar, rest []model.Item
	for _, item := range items {
		r, ok := item.(*model.Restaurant)
		if ok && servesAny(r, p.SimilarCuisines) {
			similar = append(similar, item)
		} else {
			rest = append(rest, item)
		}
	}
	return append(similar, rest...)
}

func servesAny(r *model.Restaurant, cuisines []string) bool {
	for _, c := range cuisines {
		if servesCuisine(r, utils.WordPattern(c)) {
			return true
		}
	}
	return false
}
