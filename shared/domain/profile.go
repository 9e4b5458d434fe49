package domain

// UserProfile is per-session citizen state used to prefill permit
// applications. Populated by manual edit or by decoding an identity
// assertion.
type UserProfile struct {
	UserID      string `json:"userId,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Street      string `json:"street,omitempty"`
	City        string `json:"city,omitempty"`
	HouseNumber string `json:"houseNumber,omitempty"`
	Email       string `json:"email,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

// Merge applies non-empty fields of update onto p, mirroring the
// partial-update semantics of the profile endpoint.
func (p *UserProfile) Merge(update UserProfile) {
	if update.UserID != "" {
		p.UserID = update.UserID
	}
	if update.FirstName != "" {
		p.FirstName = update.FirstName
	}
	if update.LastName != "" {
		p.LastName = update.LastName
	}
	if update.Street != "" {
		p.Street = update.Street
	}
	if update.City != "" {
		p.City = update.City
	}
	if update.HouseNumber != "" {
		p.HouseNumber = update.HouseNumber
	}
	if update.Email != "" {
		p.Email = update.Email
	}
	if update.DateOfBirth != "" {
		p.DateOfBirth = update.DateOfBirth
	}
}
