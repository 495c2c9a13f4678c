package dto

import (
	"time"

	"rentx/internal/rentx/domain/entities"
)

// CreateProductRequest carries the data for creating a listing. Optional
// fields fall back to the listing defaults.
type CreateProductRequest struct {
	Name          string   `json:"name" validate:"required"`
	Images        []string `json:"images"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	RateUnit      string   `json:"rate_unit"`
	Category      string   `json:"category" validate:"required"`
	Location      string   `json:"location" validate:"required"`
	Condition     string   `json:"condition"`
	Deposit       float64  `json:"deposit"`
	MinRentalDays int      `json:"min_rental_days"`
	MaxRentalDays int      `json:"max_rental_days"`
	Description   string   `json:"description" validate:"required"`
}

// UpdateProductRequest carries a whole-record merge update for a listing.
type UpdateProductRequest = entities.ProductPatch

// SetAvailabilityRequest carries an availability transition.
type SetAvailabilityRequest struct {
	Availability string `json:"availability" validate:"required"`
}

// ProductResponse is the response shape of a single listing.
type ProductResponse struct {
	ID            int64     `json:"id"`
	SellerID      string    `json:"seller_id"`
	Seller        string    `json:"seller"`
	Name          string    `json:"name"`
	Images        []string  `json:"images"`
	Price         float64   `json:"price"`
	RateUnit      string    `json:"rate_unit"`
	Category      string    `json:"category"`
	Location      string    `json:"location"`
	Condition     string    `json:"condition"`
	Availability  string    `json:"availability"`
	Deposit       float64   `json:"deposit"`
	MinRentalDays int       `json:"min_rental_days"`
	MaxRentalDays int       `json:"max_rental_days"`
	Description   string    `json:"description"`
	PostedAt      time.Time `json:"posted_at"`
}

// ProductListResponse is the response shape of a listing collection.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
}

// PresignUploadRequest carries the data for presigning an image upload.
type PresignUploadRequest struct {
	FileName    string `json:"file_name" validate:"required"`
	ContentType string `json:"content_type" validate:"required"`
}

// PresignResponse carries a presigned URL and the object key it addresses.
type PresignResponse struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewProductResponse maps a domain product to its response shape.
func NewProductResponse(product *entities.Product) *ProductResponse {
	return &ProductResponse{
		ID:            product.ID,
		SellerID:      product.SellerID,
		Seller:        product.Seller,
		Name:          product.Name,
		Images:        product.Images,
		Price:         product.Price,
		RateUnit:      string(product.RateUnit),
		Category:      product.Category,
		Location:      product.Location,
		Condition:     string(product.Condition),
		Availability:  string(product.Availability),
		Deposit:       product.Deposit,
		MinRentalDays: product.MinRentalDays,
		MaxRentalDays: product.MaxRentalDays,
		Description:   product.Description,
		PostedAt:      product.PostedAt,
	}
}

// NewProductListResponse maps a product slice to its response shape.
func NewProductListResponse(products []entities.Product) *ProductListResponse {
	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *NewProductResponse(&products[i]))
	}
	return &ProductListResponse{
		Products: items,
		Total:    len(items),
	}
}

// ToProduct builds a domain product from the create request.
func (r *CreateProductRequest) ToProduct() *entities.Product {
	return &entities.Product{
		Name:          r.Name,
		Images:        r.Images,
		Price:         r.Price,
		RateUnit:      entities.RateUnit(r.RateUnit),
		Category:      r.Category,
		Location:      r.Location,
		Condition:     entities.Condition(r.Condition),
		Deposit:       r.Deposit,
		MinRentalDays: r.MinRentalDays,
		MaxRentalDays: r.MaxRentalDays,
		Description:   r.Description,
	}
}
