package dto

import (
	"time"

	"rentx/internal/rentx/domain/entities"
)

// UpdateProfileRequest carries a profile merge update restricted to the
// editable fields.
type UpdateProfileRequest = entities.ProfilePatch

// ProfileResponse is the response shape of a user profile with its
// recomputed completion percentage.
type ProfileResponse struct {
	ID                   string    `json:"id"`
	Username             string    `json:"username"`
	Email                string    `json:"email"`
	FirstName            string    `json:"firstName"`
	LastName             string    `json:"lastName"`
	PhoneNumber          string    `json:"phoneNumber"`
	Address              string    `json:"address"`
	City                 string    `json:"city"`
	State                string    `json:"state"`
	ZipCode              string    `json:"zipCode"`
	ProfilePhoto         string    `json:"profilePhoto"`
	DateOfBirth          string    `json:"dateOfBirth"`
	Occupation           string    `json:"occupation"`
	PreferredRentalType  string    `json:"preferredRentalType"`
	MaxBudget            float64   `json:"maxBudget"`
	IsVerified           bool      `json:"isVerified"`
	MemberSince          time.Time `json:"memberSince"`
	CompletionPercentage int       `json:"completionPercentage"`
}

// WishlistChangeResponse reports the outcome of a wishlist mutation.
// Changed is false when the operation was an idempotent no-op; Notice then
// explains it.
type WishlistChangeResponse struct {
	Changed bool   `json:"changed"`
	Count   int    `json:"count"`
	Notice  string `json:"notice,omitempty"`
}

// WishlistCountResponse carries the wishlist size.
type WishlistCountResponse struct {
	Count int `json:"count"`
}

// NewProfileResponse maps a user and completion percentage to the response
// shape.
func NewProfileResponse(user *entities.User, completion int) *ProfileResponse {
	return &ProfileResponse{
		ID:                   user.ID,
		Username:             user.Username,
		Email:                user.Email,
		FirstName:            user.FirstName,
		LastName:             user.LastName,
		PhoneNumber:          user.PhoneNumber,
		Address:              user.Address,
		City:                 user.City,
		State:                user.State,
		ZipCode:              user.ZipCode,
		ProfilePhoto:         user.ProfilePhoto,
		DateOfBirth:          user.DateOfBirth,
		Occupation:           user.Occupation,
		PreferredRentalType:  user.PreferredRentalType,
		MaxBudget:            user.MaxBudget,
		IsVerified:           user.IsVerified,
		MemberSince:          user.MemberSince,
		CompletionPercentage: completion,
	}
}
