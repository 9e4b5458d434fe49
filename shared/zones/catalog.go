// Package zones holds the static parking-zone catalog and the permit
// pricing rules driven by it.
package zones

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/mesto-decin/parking-permits/shared/domain"
)

// Catalog is the set of purchasable parking zones. Immutable after
// construction, safe for concurrent readers.
type Catalog struct {
	homeCity string
	zones    []domain.Zone
	byName   map[string]domain.Zone
}

type catalogFile struct {
	HomeCity string        `yaml:"home_city"`
	Zones    []domain.Zone `yaml:"zones"`
}

// New builds a catalog from zone data. Zone names must be unique.
func New(homeCity string, zs []domain.Zone) (*Catalog, error) {
	if homeCity == "" {
		return nil, fmt.Errorf("zone catalog: home city is required")
	}
	byName := make(map[string]domain.Zone, len(zs))
	for _, z := range zs {
		if z.Name == "" {
			return nil, fmt.Errorf("zone catalog: zone with empty name")
		}
		if _, dup := byName[z.Name]; dup {
			return nil, fmt.Errorf("zone catalog: duplicate zone %q", z.Name)
		}
		if z.PricePerYear <= 0 || z.PricePerQuarter <= 0 ||
			z.PricePerYearWithDiscount <= 0 || z.PricePerQuarterWithDiscount <= 0 {
			return nil, fmt.Errorf("zone catalog: zone %q has non-positive price", z.Name)
		}
		byName[z.Name] = z
	}
	return &Catalog{homeCity: homeCity, zones: zs, byName: byName}, nil
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("zone catalog: %w", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("zone catalog: %w", err)
	}
	return New(file.HomeCity, file.Zones)
}

// Default returns the built-in Děčín catalog.
func Default() *Catalog {
	c, err := New("Děčín", []domain.Zone{
		{
			Name:                        "Děčín",
			PricePerYear:                4000,
			PricePerQuarter:             1200,
			PricePerYearWithDiscount:    1500,
			PricePerQuarterWithDiscount: 500,
			Addresses: []domain.Address{
				{Street: "Zámecká", Numbers: []string{"1087"}},
				{Street: "Tyršova", Numbers: []string{}},
				{Street: "Karla Čapka", Numbers: []string{}},
				{Street: "Labská", Numbers: []string{}},
			},
		},
		{
			Name:                        "Podmokly",
			PricePerYear:                4000,
			PricePerQuarter:             1200,
			PricePerYearWithDiscount:    1500,
			PricePerQuarterWithDiscount: 500,
			Addresses: []domain.Address{
				{Street: "Teplická", Numbers: []string{"377/86", "376/84", "372/76", "832/74", "372/72", "370/70"}},
				{Street: "Chelčického", Numbers: []string{}},
				{Street: "Jeronýmova", Numbers: []string{}},
				{Street: "Máchovo náměstí", Numbers: []string{}},
				{Street: "Divišova", Numbers: []string{}},
				{Street: "Raisova", Numbers: []string{}},
				{Street: "Prokopa Holého", Numbers: []string{}},
			},
		},
	})
	if err != nil {
		panic(err) // built-in data, cannot fail
	}
	return c
}

// HomeCity is the city whose residents qualify for zone discounts.
func (c *Catalog) HomeCity() string {
	return c.homeCity
}

// Zones returns the catalog in declaration order.
func (c *Catalog) Zones() []domain.Zone {
	return c.zones
}

// Get looks up a zone by name.
func (c *Catalog) Get(name string) (domain.Zone, bool) {
	z, ok := c.byName[name]
	return z, ok
}

// Known reports whether name is a catalog zone.
func (c *Catalog) Known(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Names returns every zone name in declaration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.zones))
	for i, z := range c.zones {
		names[i] = z.Name
	}
	return names
}
