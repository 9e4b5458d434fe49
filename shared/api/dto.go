package api

import "github.com/mesto-decin/parking-permits/shared/errors"

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Details []errors.FieldError `json:"details,omitempty"`
}

// PriceQuoteRequest asks for the total price of a zone selection for
// one billing period, judged against the applicant's home address.
type PriceQuoteRequest struct {
	Zones       []string `json:"zones,omitempty" validate:"omitempty,dive,zone"`
	Duration    string   `json:"duration" validate:"required,oneof=quarter year"`
	Street      string   `json:"street,omitempty"`
	City        string   `json:"city,omitempty"`
	HouseNumber string   `json:"houseNumber,omitempty"`
}

type PriceQuoteResponse struct {
	TotalPrice int `json:"totalPrice"`
}

// UpdateProfileRequest carries a partial profile edit; empty fields
// keep their stored value.
type UpdateProfileRequest struct {
	UserID      string `json:"userId,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Street      string `json:"street,omitempty"`
	City        string `json:"city,omitempty"`
	HouseNumber string `json:"houseNumber,omitempty"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

// ImportAssertionRequest carries a base64-encoded XML identity
// assertion to decode into the stored profile address.
type ImportAssertionRequest struct {
	Assertion string `json:"assertion" validate:"required"`
	Format    string `json:"format,omitempty" validate:"omitempty,oneof=eidas tradresa"`
}
