package models

// BusinessStatusOperational is the provider value for an open, trading business.
// Records that omit business_status are treated as operational.
const BusinessStatusOperational = "OPERATIONAL"

// AddressPlaceholder is substituted when the provider omits an address.
const AddressPlaceholder = "Address not available"

// Coordinate represents a geographic point
type Coordinate struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// SearchRequest represents a prospect search submitted by the presentation layer.
// Categories are OR-combined: one nearby search is issued per category.
type SearchRequest struct {
	Categories     []string   `json:"categories" validate:"required,min=1,dive,required"`
	Center         Coordinate `json:"center"`
	RadiusMeters   int        `json:"radius_meters" validate:"required,gt=0"`
	MinReviewCount int        `json:"min_review_count" validate:"gte=0"`
	MaxReviewCount int        `json:"max_review_count" validate:"gte=0,gtefield=MinReviewCount"`
}

// OpeningHours carries the detail-lookup opening hours fields
type OpeningHours struct {
	OpenNow     bool     `json:"open_now"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

// Place is a normalized place record emitted by the aggregator.
// Phone, Website and OpeningHours are only populated for records that
// underwent a successful detail lookup (Enriched = true).
type Place struct {
	PlaceID        string        `json:"place_id"`
	Name           string        `json:"name"`
	Address        string        `json:"address"`
	Rating         float64       `json:"rating"`
	ReviewCount    int           `json:"review_count"`
	Categories     []string      `json:"categories,omitempty"`
	Latitude       float64       `json:"latitude"`
	Longitude      float64       `json:"longitude"`
	BusinessStatus string        `json:"business_status"`
	Phone          string        `json:"phone,omitempty"`
	Website        string        `json:"website,omitempty"`
	OpeningHours   *OpeningHours `json:"opening_hours,omitempty"`
	Enriched       bool          `json:"enriched"`
}

// SearchResult represents the outcome of one aggregation run
type SearchResult struct {
	SearchID     string   `json:"search_id"`
	Categories   []string `json:"categories"`
	TotalResults int      `json:"total_results"`
	Places       []Place  `json:"places"`
}

// Category describes one entry of the business-type taxonomy
type Category struct {
	Value string `json:"value" yaml:"value"` // provider type tag, e.g. "restaurant"
	Label string `json:"label" yaml:"label"`
	Group string `json:"group" yaml:"group"` // e.g. "food", "retail", "health"
}
