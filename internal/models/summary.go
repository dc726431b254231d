package models

// PlaceSummary is a raw place record as returned by the provider, before
// normalization. Optional provider fields stay pointers so the aggregator can
// distinguish "absent" from zero values when filtering.
type PlaceSummary struct {
	PlaceID        string
	Name           string
	Address        string
	Rating         *float64
	ReviewCount    *int
	Categories     []string
	BusinessStatus string // empty when the provider omitted it
	Location       *Coordinate
	Phone          string
	Website        string
	OpeningHours   *OpeningHours
}
