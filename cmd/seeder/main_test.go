package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentx/internal/rentx/domain/entities"
)

func TestAttributeProducts(t *testing.T) {
	seller := &entities.User{ID: "7c2a1c52-0d5f-4ef6-9a41-2f8f3f1c9b10", Username: "warehouse"}

	t.Run("feed products get an owner and defaults", func(t *testing.T) {
		products := []entities.Product{
			{ID: 1, Name: "Cordless Drill", Category: "Tools", Location: "Austin, TX", Description: "18V drill", Price: 9},
		}

		valid, rejected := attributeProducts(products, seller)

		require.Empty(t, rejected)
		require.Len(t, valid, 1)
		assert.Equal(t, seller.ID, valid[0].SellerID)
		assert.Equal(t, "warehouse", valid[0].Seller)
		assert.Equal(t, 1, valid[0].MinRentalDays)
		assert.Equal(t, 30, valid[0].MaxRentalDays)
		assert.Equal(t, entities.AvailabilityAvailable, valid[0].Availability)
	})

	t.Run("feed seller name is kept when present", func(t *testing.T) {
		products := []entities.Product{
			{ID: 1, Name: "City Bike", Seller: "marta_rents", Category: "Vehicles", Location: "Denver, CO", Description: "Commuter bike", Price: 12},
		}

		valid, rejected := attributeProducts(products, seller)

		require.Empty(t, rejected)
		require.Len(t, valid, 1)
		assert.Equal(t, "marta_rents", valid[0].Seller)
		assert.Equal(t, seller.ID, valid[0].SellerID)
	})

	t.Run("invalid products are rejected, the rest survive", func(t *testing.T) {
		products := []entities.Product{
			{ID: 1, Name: "", Category: "Tools", Location: "Austin, TX", Description: "No name", Price: 5},
			{ID: 2, Name: "Projector", Category: "Electronics", Location: "Austin, TX", Description: "1080p", Price: 20},
		}

		valid, rejected := attributeProducts(products, seller)

		require.Len(t, valid, 1)
		assert.Equal(t, "Projector", valid[0].Name)

		require.Len(t, rejected, 1)
		assert.ErrorIs(t, rejected[0].Reason, entities.ErrValidation)
	})

	t.Run("empty feed yields empty results", func(t *testing.T) {
		valid, rejected := attributeProducts(nil, seller)

		assert.Empty(t, valid)
		assert.Empty(t, rejected)
	})
}
