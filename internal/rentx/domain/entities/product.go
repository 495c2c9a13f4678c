// Package entities defines the domain entities for the rentx service.
package entities

import (
	"errors"
	"fmt"
	"time"
)

// ErrValidation is the base error every listing validation failure wraps.
var ErrValidation = errors.New("validation error")

// Listing validation errors.
var (
	ErrNameRequired        = fmt.Errorf("%w: name is required", ErrValidation)
	ErrPriceInvalid        = fmt.Errorf("%w: price must be greater than zero", ErrValidation)
	ErrLocationRequired    = fmt.Errorf("%w: location is required", ErrValidation)
	ErrDescriptionRequired = fmt.Errorf("%w: description is required", ErrValidation)
	ErrDepositNegative     = fmt.Errorf("%w: deposit cannot be negative", ErrValidation)
	ErrRentalDaysInvalid   = fmt.Errorf("%w: min rental days must be at least 1", ErrValidation)
	ErrRentalDaysRange     = fmt.Errorf("%w: max rental days cannot be less than min rental days", ErrValidation)
	ErrInvalidRateUnit     = fmt.Errorf("%w: invalid rate unit", ErrValidation)
	ErrInvalidCondition    = fmt.Errorf("%w: invalid condition", ErrValidation)
	ErrInvalidAvailability = fmt.Errorf("%w: invalid availability", ErrValidation)
)

// Product lookup and persistence errors.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrVersionConflict = errors.New("product was modified concurrently")
)

// RateUnit is the billing period granularity for a product's price.
type RateUnit string

// Supported rate units.
const (
	RatePerDay   RateUnit = "per_day"
	RatePerWeek  RateUnit = "per_week"
	RatePerMonth RateUnit = "per_month"
)

// Condition describes the physical state of a listed product.
type Condition string

// Supported conditions.
const (
	ConditionNew         Condition = "New"
	ConditionUsed        Condition = "Used"
	ConditionRefurbished Condition = "Refurbished"
)

// Availability is the tri-state status controlling whether a product can be
// filtered into rentable results.
type Availability string

// Supported availability states.
const (
	AvailabilityAvailable    Availability = "Available"
	AvailabilityBooked       Availability = "Booked"
	AvailabilityNotAvailable Availability = "Not Available"
)

// Valid reports whether the availability is one of the supported states.
func (a Availability) Valid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityBooked, AvailabilityNotAvailable:
		return true
	}
	return false
}

// PlaceholderImageURL is synthesized for listings created without images.
const PlaceholderImageURL = "https://placehold.co/600x400?text=No+Image"

// Product represents a rentable listing.
type Product struct {
	ID            int64        `json:"id"`
	SellerID      string       `json:"seller_id"`
	Seller        string       `json:"seller"`
	Name          string       `json:"name"`
	Images        []string     `json:"images"`
	Price         float64      `json:"price"`
	RateUnit      RateUnit     `json:"rate_unit"`
	Category      string       `json:"category"`
	Location      string       `json:"location"`
	Condition     Condition    `json:"condition"`
	Availability  Availability `json:"availability"`
	Deposit       float64      `json:"deposit"`
	MinRentalDays int          `json:"min_rental_days"`
	MaxRentalDays int          `json:"max_rental_days"`
	Description   string       `json:"description"`
	PostedAt      time.Time    `json:"posted_at"`
	Version       int64        `json:"-"`
}

// NewProduct creates a listing with the historical field defaults and a
// placeholder image when none was supplied.
func NewProduct(sellerID, seller, name, category, location, description string, price float64) *Product {
	return &Product{
		SellerID:      sellerID,
		Seller:        seller,
		Name:          name,
		Images:        []string{PlaceholderImageURL},
		Price:         price,
		RateUnit:      RatePerDay,
		Category:      category,
		Location:      location,
		Condition:     ConditionUsed,
		Availability:  AvailabilityAvailable,
		Deposit:       0,
		MinRentalDays: 1,
		MaxRentalDays: 30,
		Description:   description,
		PostedAt:      time.Now(),
	}
}

// ApplyDefaults fills the zero-valued fields the way listings were
// historically created: daily rate, used condition, available, a 1-30 day
// rental window and a placeholder image.
func (p *Product) ApplyDefaults() {
	if len(p.Images) == 0 {
		p.Images = []string{PlaceholderImageURL}
	}
	if p.RateUnit == "" {
		p.RateUnit = RatePerDay
	}
	if p.Condition == "" {
		p.Condition = ConditionUsed
	}
	if p.Availability == "" {
		p.Availability = AvailabilityAvailable
	}
	if p.MinRentalDays == 0 {
		p.MinRentalDays = 1
	}
	if p.MaxRentalDays == 0 {
		p.MaxRentalDays = 30
	}
	if p.PostedAt.IsZero() {
		p.PostedAt = time.Now()
	}
}

// Validate checks the listing invariants. Violating input is rejected, never
// silently corrected.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.Price <= 0 {
		return ErrPriceInvalid
	}
	if p.Location == "" {
		return ErrLocationRequired
	}
	if p.Description == "" {
		return ErrDescriptionRequired
	}
	if p.Deposit < 0 {
		return ErrDepositNegative
	}
	if p.MinRentalDays < 1 {
		return ErrRentalDaysInvalid
	}
	if p.MaxRentalDays < p.MinRentalDays {
		return ErrRentalDaysRange
	}
	switch p.RateUnit {
	case RatePerDay, RatePerWeek, RatePerMonth:
	default:
		return ErrInvalidRateUnit
	}
	switch p.Condition {
	case ConditionNew, ConditionUsed, ConditionRefurbished:
	default:
		return ErrInvalidCondition
	}
	switch p.Availability {
	case AvailabilityAvailable, AvailabilityBooked, AvailabilityNotAvailable:
	default:
		return ErrInvalidAvailability
	}
	return nil
}

// City returns the substring before the first comma of the location, which is
// the semantically meaningful part of "City, Region".
func (p *Product) City() string {
	for i := 0; i < len(p.Location); i++ {
		if p.Location[i] == ',' {
			return p.Location[:i]
		}
	}
	return p.Location
}

// ProductPatch carries a whole-record merge update: set fields overwrite,
// nil fields persist.
type ProductPatch struct {
	Name          *string       `json:"name"`
	Images        *[]string     `json:"images"`
	Price         *float64      `json:"price"`
	RateUnit      *RateUnit     `json:"rate_unit"`
	Category      *string       `json:"category"`
	Location      *string       `json:"location"`
	Condition     *Condition    `json:"condition"`
	Availability  *Availability `json:"availability"`
	Deposit       *float64      `json:"deposit"`
	MinRentalDays *int          `json:"min_rental_days"`
	MaxRentalDays *int          `json:"max_rental_days"`
	Description   *string       `json:"description"`
}

// Apply merges the patch into the product.
func (p *Product) Apply(patch *ProductPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Images != nil {
		p.Images = *patch.Images
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.RateUnit != nil {
		p.RateUnit = *patch.RateUnit
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.Condition != nil {
		p.Condition = *patch.Condition
	}
	if patch.Availability != nil {
		p.Availability = *patch.Availability
	}
	if patch.Deposit != nil {
		p.Deposit = *patch.Deposit
	}
	if patch.MinRentalDays != nil {
		p.MinRentalDays = *patch.MinRentalDays
	}
	if patch.MaxRentalDays != nil {
		p.MaxRentalDays = *patch.MaxRentalDays
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
}
