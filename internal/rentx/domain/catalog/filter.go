package catalog

import (
	"math/rand"
	"strings"
	"time"

	"rentx/internal/rentx/domain/entities"
)

// DefaultSampleSize is how many products the no-filter browse view shows.
const DefaultSampleSize = 12

// Query carries the optional catalog filters. Category and Search may be
// combined: the search narrows within the category.
type Query struct {
	Category string
	Search   string
}

// IsEmpty reports whether the query applies no filters. A whitespace-only
// search term counts as no search.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Category) == "" && strings.TrimSpace(q.Search) == ""
}

// Filter returns the products matching the query. Booked products are always
// excluded. With no filters it returns a fresh random sample of up to
// DefaultSampleSize products drawn from rng; otherwise store order is
// preserved. An unmatched category yields an empty, non-nil slice.
func Filter(products []entities.Product, q Query, rng *rand.Rand) []entities.Product {
	rentable := make([]entities.Product, 0, len(products))
	for _, p := range products {
		if p.Availability == entities.AvailabilityBooked {
			continue
		}
		rentable = append(rentable, p)
	}

	if q.IsEmpty() {
		return sample(rentable, DefaultSampleSize, rng)
	}

	matched := rentable

	category := strings.TrimSpace(q.Category)
	if category != "" {
		matched = filterByCategory(matched, category)
	}

	search := strings.TrimSpace(q.Search)
	if search != "" {
		matched = filterByName(matched, search)
	}

	return matched
}

// filterByCategory matches canonical names case-insensitively; when that
// pass yields nothing it retries with a case-sensitive exact match on the
// raw stored value, recovering legacy rows with inconsistent casing.
func filterByCategory(products []entities.Product, category string) []entities.Product {
	matched := make([]entities.Product, 0, len(products))
	for _, p := range products {
		if CategoryMatches(p.Category, category) {
			matched = append(matched, p)
		}
	}
	if len(matched) > 0 {
		return matched
	}

	// A byte-equal category always satisfies CategoryMatches too, so this
	// pass adds rows only if canonical matching ever becomes stricter than
	// raw equality. Kept to preserve the historical two-pass contract.
	for _, p := range products {
		if p.Category == category {
			matched = append(matched, p)
		}
	}
	return matched
}

// filterByName does a case-insensitive substring match on the product name
// only, never on description or category.
func filterByName(products []entities.Product, term string) []entities.Product {
	needle := strings.ToLower(term)
	matched := make([]entities.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matched = append(matched, p)
		}
	}
	return matched
}

// sample draws up to n products without replacement. A nil rng falls back to
// a time-seeded source; tests inject a fixed seed for determinism.
func sample(products []entities.Product, n int, rng *rand.Rand) []entities.Product {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if n > len(products) {
		n = len(products)
	}

	picked := make([]entities.Product, 0, n)
	for _, idx := range rng.Perm(len(products))[:n] {
		picked = append(picked, products[idx])
	}
	return picked
}
