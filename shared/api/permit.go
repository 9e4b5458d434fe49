package api

import (
	"github.com/mesto-decin/parking-permits/shared/domain"
)

// Request DTOs

// CreatePermitRequest is the POST /permits body. Validation tags mirror
// the application form: dates and names are required, address and
// payment details are optional, zone names must come from the catalog.
type CreatePermitRequest struct {
	ValidFrom       string   `json:"validFrom" validate:"required"`
	ValidTo         string   `json:"validTo,omitempty"`
	Price           float64  `json:"price" validate:"required,gt=0"`
	Firstname       string   `json:"firstname" validate:"required"`
	Lastname        string   `json:"lastname" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	City            string   `json:"city,omitempty"`
	Street          string   `json:"street,omitempty"`
	HouseNumber     string   `json:"houseNumber,omitempty"`
	PermitDuration  string   `json:"permitDuration,omitempty" validate:"omitempty,oneof=quarter year"`
	PaymentMethod   string   `json:"paymentMethod,omitempty"`
	CarRegistration string   `json:"carRegistration,omitempty"`
	UserID          string   `json:"userId,omitempty"`
	Zones           []string `json:"zones,omitempty" validate:"omitempty,dive,zone"`
}

// ToApplication converts the request into the domain form handed to
// the permit service.
func (r *CreatePermitRequest) ToApplication() domain.PermitApplication {
	return domain.PermitApplication{
		ValidFrom:       r.ValidFrom,
		ValidTo:         r.ValidTo,
		Price:           r.Price,
		Firstname:       r.Firstname,
		Lastname:        r.Lastname,
		Email:           r.Email,
		City:            r.City,
		Street:          r.Street,
		HouseNumber:     r.HouseNumber,
		PermitDuration:  domain.Duration(r.PermitDuration),
		PaymentMethod:   r.PaymentMethod,
		CarRegistration: r.CarRegistration,
		UserID:          r.UserID,
		Zones:           r.Zones,
	}
}

// Response DTOs

type CreatePermitResponse struct {
	Message string `json:"message"`
	ID      int    `json:"id"`
}

type ZoneListResponse struct {
	Zones []domain.Zone `json:"zones"`
}
