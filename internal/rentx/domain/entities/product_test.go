package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentx/internal/rentx/domain/entities"
)

func validProduct() *entities.Product {
	return entities.NewProduct("seller-1", "Dana", "Tent", "Sports", "Boise, ID", "Four-person tent", 18)
}

func TestNewProductDefaults(t *testing.T) {
	p := validProduct()

	assert.Equal(t, entities.RatePerDay, p.RateUnit)
	assert.Equal(t, entities.ConditionUsed, p.Condition)
	assert.Equal(t, entities.AvailabilityAvailable, p.Availability)
	assert.Zero(t, p.Deposit)
	assert.Equal(t, 1, p.MinRentalDays)
	assert.Equal(t, 30, p.MaxRentalDays)
	assert.Equal(t, []string{entities.PlaceholderImageURL}, p.Images)
	assert.False(t, p.PostedAt.IsZero())
}

func TestProductValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(p *entities.Product)
		expected error
	}{
		{name: "valid", mutate: func(*entities.Product) {}, expected: nil},
		{name: "empty name", mutate: func(p *entities.Product) { p.Name = "" }, expected: entities.ErrNameRequired},
		{name: "zero price", mutate: func(p *entities.Product) { p.Price = 0 }, expected: entities.ErrPriceInvalid},
		{name: "negative price", mutate: func(p *entities.Product) { p.Price = -3 }, expected: entities.ErrPriceInvalid},
		{name: "empty location", mutate: func(p *entities.Product) { p.Location = "" }, expected: entities.ErrLocationRequired},
		{name: "empty description", mutate: func(p *entities.Product) { p.Description = "" }, expected: entities.ErrDescriptionRequired},
		{name: "negative deposit", mutate: func(p *entities.Product) { p.Deposit = -1 }, expected: entities.ErrDepositNegative},
		{name: "zero min rental days", mutate: func(p *entities.Product) { p.MinRentalDays = 0 }, expected: entities.ErrRentalDaysInvalid},
		{name: "max below min", mutate: func(p *entities.Product) { p.MinRentalDays = 10; p.MaxRentalDays = 5 }, expected: entities.ErrRentalDaysRange},
		{name: "unknown rate unit", mutate: func(p *entities.Product) { p.RateUnit = "per_hour" }, expected: entities.ErrInvalidRateUnit},
		{name: "unknown condition", mutate: func(p *entities.Product) { p.Condition = "Broken" }, expected: entities.ErrInvalidCondition},
		{name: "unknown availability", mutate: func(p *entities.Product) { p.Availability = "Lost" }, expected: entities.ErrInvalidAvailability},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			p := validProduct()
			ttt.mutate(p)

			err := p.Validate()
			if ttt.expected == nil {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.ErrorIs(t, err, ttt.expected)
				assert.ErrorIs(t, err, entities.ErrValidation)
			}
		})
	}
}

func TestProductApplyDefaults(t *testing.T) {
	p := &entities.Product{Name: "Ladder", Price: 4, Location: "Salem, OR", Description: "Sturdy"}
	p.ApplyDefaults()

	assert.Equal(t, entities.RatePerDay, p.RateUnit)
	assert.Equal(t, entities.ConditionUsed, p.Condition)
	assert.Equal(t, entities.AvailabilityAvailable, p.Availability)
	assert.Equal(t, 1, p.MinRentalDays)
	assert.Equal(t, 30, p.MaxRentalDays)
	assert.Equal(t, []string{entities.PlaceholderImageURL}, p.Images)
	require.NoError(t, p.Validate())
}

func TestProductApplyDefaultsKeepsSetFields(t *testing.T) {
	p := &entities.Product{
		Name: "Ladder", Price: 4, Location: "Salem, OR", Description: "Sturdy",
		Images: []string{"ladder.jpg"}, Condition: entities.ConditionNew, MinRentalDays: 2,
	}
	p.ApplyDefaults()

	assert.Equal(t, []string{"ladder.jpg"}, p.Images)
	assert.Equal(t, entities.ConditionNew, p.Condition)
	assert.Equal(t, 2, p.MinRentalDays)
}

func TestProductCity(t *testing.T) {
	tests := []struct {
		name     string
		location string
		expected string
	}{
		{name: "city and region", location: "Austin, TX", expected: "Austin"},
		{name: "city only", location: "Austin", expected: "Austin"},
		{name: "empty", location: "", expected: ""},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			p := entities.Product{Location: ttt.location}
			assert.Equal(t, ttt.expected, p.City())
		})
	}
}

func TestProductApplyPatch(t *testing.T) {
	p := validProduct()
	originalName := p.Name
	originalLocation := p.Location

	newPrice := 25.0
	newDescription := "Updated description"

	p.Apply(&entities.ProductPatch{
		Price:       &newPrice,
		Description: &newDescription,
	})

	assert.Equal(t, newPrice, p.Price)
	assert.Equal(t, newDescription, p.Description)
	assert.Equal(t, originalName, p.Name, "unpatched fields persist")
	assert.Equal(t, originalLocation, p.Location)
}
