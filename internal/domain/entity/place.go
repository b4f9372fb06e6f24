package entity

// Place is a search result from the maps collaborator.
type Place struct {
	DestinationID string
	Name          string
	Latitude      float64
	Longitude     float64
	PriceLevel    *int
	OpeningHours  string
}

// PlaceDetails is the full detail record for a known destination id.
type PlaceDetails struct {
	DestinationID    string
	Name             string
	Latitude         float64
	Longitude        float64
	PriceLevel       *int
	OpeningHours     string
	FormattedAddress string
}

// priceLevelCosts maps the maps collaborator's 0-4 price level to an estimated
// cost in currency-neutral units (interpreted as VND by callers).
var priceLevelCosts = map[int]int64{
	0: 0,
	1: 50000,
	2: 150000,
	3: 300000,
	4: 500000,
}

// CostForPriceLevel converts a price level to an estimated cost. The second
// return is false for unknown levels.
func CostForPriceLevel(level int) (int64, bool) {
	c, ok := priceLevelCosts[level]
	return c, ok
}
