package domain

import (
	"fmt"
	"time"
)

// Duration is the billing period of a permit.
type Duration string

const (
	DurationQuarter Duration = "quarter"
	DurationYear    Duration = "year"
)

func (d Duration) Valid() bool {
	return d == DurationQuarter || d == DurationYear
}

// AddTo returns the permit expiry for a permit starting at t.
func (d Duration) AddTo(t time.Time) (time.Time, error) {
	switch d {
	case DurationQuarter:
		return t.AddDate(0, 3, 0), nil
	case DurationYear:
		return t.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unknown permit duration %q", string(d))
	}
}

// PermitApplication is a permit request as submitted by a citizen.
// ValidFrom/ValidTo are kept as date strings because that is how the
// list store holds them; parsing happens where arithmetic is needed.
type PermitApplication struct {
	ValidFrom       string   `json:"validFrom"`
	ValidTo         string   `json:"validTo,omitempty"`
	Price           float64  `json:"price"`
	Firstname       string   `json:"firstname"`
	Lastname        string   `json:"lastname"`
	Email           string   `json:"email"`
	City            string   `json:"city,omitempty"`
	Street          string   `json:"street,omitempty"`
	HouseNumber     string   `json:"houseNumber,omitempty"`
	PermitDuration  Duration `json:"permitDuration,omitempty"`
	PaymentMethod   string   `json:"paymentMethod,omitempty"`
	CarRegistration string   `json:"carRegistration,omitempty"`
	UserID          string   `json:"userId,omitempty"`
	Zones           []string `json:"zones,omitempty"`
}

// Permit is a stored permit record. Read-only after creation;
// Status and VariableSymbol are assigned by the store.
type Permit struct {
	PermitApplication
	ID             int    `json:"id"`
	Status         string `json:"status,omitempty"`
	VariableSymbol string `json:"variableSymbol,omitempty"`
}

// dateLayouts are the accepted ValidFrom formats, most specific first.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDate parses a permit date string in any accepted layout.
func ParseDate(s string) (time.Time, string, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, layout, nil
		}
	}
	return time.Time{}, "", fmt.Errorf("invalid date %q", s)
}
