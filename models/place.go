package models

// LocationType classifies a place so we can pick category templates and map zoom
type LocationType string

const (
	LocationCity       LocationType = "city"
	LocationMuseum     LocationType = "museum"
	LocationBuilding   LocationType = "building"
	LocationMonument   LocationType = "monument"
	LocationNature     LocationType = "nature"
	LocationRestaurant LocationType = "restaurant"
	LocationDefault    LocationType = "default"
)

// Coordinates holds an approximate lat/lon pair as returned by the generator or geocoder
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lon float64 `json:"lon" bson:"lon"`
}

// Item is a single truth-or-lie statement within a category
type Item struct {
	Text     string `json:"text" bson:"text"`
	IsLie    bool   `json:"isLie" bson:"is_lie"`
	Feedback string `json:"feedback,omitempty" bson:"feedback,omitempty"`
}

// Category groups three items, two truths and one lie by construction contract.
// The contract is enforced by the prompt, not by code; downstream handling
// tolerates whatever shape the generator actually produced.
type Category struct {
	Name  string `json:"name" bson:"name"`
	Items []Item `json:"items" bson:"items"`
}

// PlaceContent is the parsed travel guide for one place. It is replaced
// wholesale on every navigation and never mutated after display, apart from
// the one-time emphasis-to-link transform applied before it is handed out.
type PlaceContent struct {
	Name        string       `json:"name"`
	Type        LocationType `json:"type,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Categories  []Category   `json:"categories"`
}

// MentionedPlace is a secondary place referenced in guide text that geocoding resolved
type MentionedPlace struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}
