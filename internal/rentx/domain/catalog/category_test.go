package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rentx/internal/rentx/domain/catalog"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "synonym vehicle", raw: "vehicle", expected: catalog.CategoryVehicles},
		{name: "synonym cars", raw: "cars", expected: catalog.CategoryVehicles},
		{name: "synonym automotive", raw: "automotive", expected: catalog.CategoryVehicles},
		{name: "synonym bikes", raw: "bikes", expected: catalog.CategoryVehicles},
		{name: "synonym motorcycles", raw: "motorcycles", expected: catalog.CategoryVehicles},
		{name: "mixed-case synonym", raw: "Cars", expected: catalog.CategoryVehicles},
		{name: "canonical passes through", raw: "Electronics", expected: catalog.CategoryElectronics},
		{name: "free-form passes through", raw: "Oddities", expected: "Oddities"},
		{name: "whitespace trimmed", raw: "  Tools  ", expected: catalog.CategoryTools},
		{name: "empty stays empty", raw: "", expected: ""},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			assert.Equal(t, ttt.expected, catalog.Canonical(ttt.raw))
		})
	}
}

func TestCategoryMatches(t *testing.T) {
	tests := []struct {
		name      string
		stored    string
		requested string
		expected  bool
	}{
		{name: "exact", stored: "Tools", requested: "Tools", expected: true},
		{name: "case-insensitive", stored: "tools", requested: "TOOLS", expected: true},
		{name: "synonym to canonical", stored: "vehicle", requested: "Vehicles", expected: true},
		{name: "synonym to synonym", stored: "cars", requested: "bikes", expected: true},
		{name: "different categories", stored: "Tools", requested: "Sports", expected: false},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			assert.Equal(t, ttt.expected, catalog.CategoryMatches(ttt.stored, ttt.requested))
		})
	}
}
