package zones

import (
	"fmt"

	"github.com/mesto-decin/parking-permits/shared/domain"
)

// ZoneNotFoundError reports a selected zone missing from the catalog.
type ZoneNotFoundError struct {
	Name string
}

func (e *ZoneNotFoundError) Error() string {
	return fmt.Sprintf("unknown zone %q", e.Name)
}

// InvalidDurationError reports an unset or unrecognized permit duration.
type InvalidDurationError struct {
	Duration domain.Duration
}

func (e *InvalidDurationError) Error() string {
	if e.Duration == "" {
		return "permit duration is not set"
	}
	return fmt.Sprintf("invalid permit duration %q", string(e.Duration))
}

// HomeAddress is the applicant's residence used for discount eligibility.
type HomeAddress struct {
	Street      string
	City        string
	HouseNumber string
}

// TotalPrice computes the price of a zone selection for one billing
// period. A zone contributes its discounted price when the home address
// qualifies, its standard price otherwise. Duplicate selections are
// deduplicated, so a zone is never billed twice.
func (c *Catalog) TotalPrice(selected []string, duration domain.Duration, home HomeAddress) (int, error) {
	if !duration.Valid() {
		return 0, &InvalidDurationError{Duration: duration}
	}

	total := 0
	seen := make(map[string]bool, len(selected))
	for _, name := range selected {
		if seen[name] {
			continue
		}
		seen[name] = true

		zone, ok := c.byName[name]
		if !ok {
			return 0, &ZoneNotFoundError{Name: name}
		}

		discounted := c.isHomeZone(zone, home)
		switch duration {
		case domain.DurationQuarter:
			if discounted {
				total += zone.PricePerQuarterWithDiscount
			} else {
				total += zone.PricePerQuarter
			}
		case domain.DurationYear:
			if discounted {
				total += zone.PricePerYearWithDiscount
			} else {
				total += zone.PricePerYear
			}
		}
	}
	return total, nil
}

// isHomeZone reports whether home qualifies for the zone discount:
// the street must appear in the zone's address list, the city must be
// the catalog home city, and the entry must either cover every house
// number or list this one. Empty address fields never match.
func (c *Catalog) isHomeZone(zone domain.Zone, home HomeAddress) bool {
	if home.Street == "" || home.City != c.homeCity {
		return false
	}
	for _, addr := range zone.Addresses {
		if addr.Street != home.Street {
			continue
		}
		if len(addr.Numbers) == 0 {
			return true
		}
		for _, n := range addr.Numbers {
			if n == home.HouseNumber {
				return true
			}
		}
	}
	return false
}
