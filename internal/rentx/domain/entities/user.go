package entities

import (
	"errors"
	"math"
	"time"
)

// User domain errors.
var (
	ErrEmptyUserID       = errors.New("user ID cannot be empty")
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrEmptyUsername     = errors.New("username cannot be empty")
	ErrPasswordTooShort  = errors.New("password must contain at least 8 characters")
	ErrPasswordTooWeak   = errors.New("password must contain at least one letter and one digit")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists with this email or username")
	ErrNotAuthenticated  = errors.New("not authenticated")
)

// User represents a registered account with its profile and wishlist.
type User struct {
	ID                  string    `json:"id"`
	Username            string    `json:"username"`
	Email               string    `json:"email"`
	PasswordHash        string    `json:"-"`
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	PhoneNumber         string    `json:"phoneNumber"`
	Address             string    `json:"address"`
	City                string    `json:"city"`
	State               string    `json:"state"`
	ZipCode             string    `json:"zipCode"`
	ProfilePhoto        string    `json:"profilePhoto"`
	DateOfBirth         string    `json:"dateOfBirth"`
	Occupation          string    `json:"occupation"`
	PreferredRentalType string    `json:"preferredRentalType"`
	MaxBudget           float64   `json:"maxBudget"`
	IsVerified          bool      `json:"isVerified"`
	MemberSince         time.Time `json:"memberSince"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// completionFieldCount is the fixed size of the profile completion checklist.
const completionFieldCount = 10

// CompletionPercentage computes how much of the fixed profile checklist is
// filled, as a round-half-up percentage in [0,100]. The checklist is exactly:
// username, email, password set, first name, last name, phone number,
// address, city, zip code, date of birth.
func (u *User) CompletionPercentage() int {
	checklist := []bool{
		u.Username != "",
		u.Email != "",
		u.PasswordHash != "",
		u.FirstName != "",
		u.LastName != "",
		u.PhoneNumber != "",
		u.Address != "",
		u.City != "",
		u.ZipCode != "",
		u.DateOfBirth != "",
	}

	filled := 0
	for _, ok := range checklist {
		if ok {
			filled++
		}
	}

	return int(math.Floor(float64(filled)/completionFieldCount*100 + 0.5))
}

// ProfilePatch carries a profile update restricted to the editable fields.
// Set fields overwrite, nil fields persist.
type ProfilePatch struct {
	FirstName           *string  `json:"firstName"`
	LastName            *string  `json:"lastName"`
	PhoneNumber         *string  `json:"phoneNumber"`
	Address             *string  `json:"address"`
	City                *string  `json:"city"`
	State               *string  `json:"state"`
	ZipCode             *string  `json:"zipCode"`
	ProfilePhoto        *string  `json:"profilePhoto"`
	DateOfBirth         *string  `json:"dateOfBirth"`
	Occupation          *string  `json:"occupation"`
	PreferredRentalType *string  `json:"preferredRentalType"`
	MaxBudget           *float64 `json:"maxBudget"`
}

// Apply merges the patch into the user. Identity and credential fields are
// not reachable from a profile update.
func (u *User) Apply(patch *ProfilePatch) {
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.PhoneNumber != nil {
		u.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Address != nil {
		u.Address = *patch.Address
	}
	if patch.City != nil {
		u.City = *patch.City
	}
	if patch.State != nil {
		u.State = *patch.State
	}
	if patch.ZipCode != nil {
		u.ZipCode = *patch.ZipCode
	}
	if patch.ProfilePhoto != nil {
		u.ProfilePhoto = *patch.ProfilePhoto
	}
	if patch.DateOfBirth != nil {
		u.DateOfBirth = *patch.DateOfBirth
	}
	if patch.Occupation != nil {
		u.Occupation = *patch.Occupation
	}
	if patch.PreferredRentalType != nil {
		u.PreferredRentalType = *patch.PreferredRentalType
	}
	if patch.MaxBudget != nil {
		u.MaxBudget = *patch.MaxBudget
	}
}
