package domain

// Address is a street with the house numbers that qualify for the
// home-zone discount. An empty Numbers list means every house number
// on the street qualifies.
type Address struct {
	Street  string   `json:"street" yaml:"street"`
	Numbers []string `json:"numbers" yaml:"numbers"`
}

// Zone is a purchasable parking zone. Prices are CZK. Zones are static
// catalog data, immutable after process start.
type Zone struct {
	Name                        string    `json:"name" yaml:"name"`
	PricePerYear                int       `json:"pricePerYear" yaml:"price_per_year"`
	PricePerQuarter             int       `json:"pricePerQuarter" yaml:"price_per_quarter"`
	PricePerYearWithDiscount    int       `json:"pricePerYearWithDiscount" yaml:"price_per_year_with_discount"`
	PricePerQuarterWithDiscount int       `json:"pricePerQuarterWithDiscount" yaml:"price_per_quarter_with_discount"`
	Addresses                   []Address `json:"addresses" yaml:"addresses"`
}
