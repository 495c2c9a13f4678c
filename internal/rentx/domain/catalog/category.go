// Package catalog implements the product catalog taxonomy and filter engine.
package catalog

import "strings"

// Canonical category names.
const (
	CategoryElectronics = "Electronics"
	CategoryVehicles    = "Vehicles"
	CategoryFurniture   = "Furniture"
	CategoryAppliances  = "Appliances"
	CategoryTools       = "Tools"
	CategorySports      = "Sports"
	CategoryClothing    = "Clothing"
	CategoryBooks       = "Books"
)

// synonyms maps lowercased legacy category spellings to their canonical
// name. Several historical spellings of "Vehicles" exist in old data.
var synonyms = map[string]string{
	"vehicle":     CategoryVehicles,
	"cars":        CategoryVehicles,
	"automotive":  CategoryVehicles,
	"bikes":       CategoryVehicles,
	"motorcycles": CategoryVehicles,
}

// Canonical resolves a raw category value to its canonical name. Unknown
// categories pass through trimmed, preserving free-form values.
func Canonical(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canonical, ok := synonyms[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// CategoryMatches reports whether a stored category satisfies a requested
// one, comparing canonical names case-insensitively.
func CategoryMatches(stored, requested string) bool {
	return strings.EqualFold(Canonical(stored), Canonical(requested))
}
