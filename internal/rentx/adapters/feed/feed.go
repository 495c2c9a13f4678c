// Package feed decodes external product feed documents. Two envelope shapes
// exist in the wild: the static-file variant wraps the collection in "data",
// the REST variant in "products". Decode accepts either.
package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"rentx/internal/rentx/domain/catalog"
	"rentx/internal/rentx/domain/entities"
)

// ErrUnknownEnvelope is returned when neither known envelope key is present.
var ErrUnknownEnvelope = errors.New("product feed has no data or products field")

type envelope struct {
	Data     []entities.Product `json:"data"`
	Products []entities.Product `json:"products"`
}

// Decode reads a product feed document and returns its products with
// categories normalized to the canonical taxonomy.
func Decode(r io.Reader) ([]entities.Product, error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding product feed: %w", err)
	}

	var products []entities.Product
	switch {
	case env.Data != nil:
		products = env.Data
	case env.Products != nil:
		products = env.Products
	default:
		return nil, ErrUnknownEnvelope
	}

	for i := range products {
		products[i].Category = catalog.Canonical(products[i].Category)
		if len(products[i].Images) == 0 {
			products[i].Images = []string{entities.PlaceholderImageURL}
		}
	}

	return products, nil
}
