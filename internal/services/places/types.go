// Package places provides a client for the Google Places Web Service API.
// This package centralizes all places provider interactions for the application.
package places

import "fmt"

// Google Places API status codes
const (
	StatusOK             = "OK"
	StatusZeroResults    = "ZERO_RESULTS"
	StatusOverQueryLimit = "OVER_QUERY_LIMIT"
	StatusRequestDenied  = "REQUEST_DENIED"
	StatusInvalidRequest = "INVALID_REQUEST"
	StatusUnknownError   = "UNKNOWN_ERROR"
)

// NearbySearchResponse represents the Google Places Nearby Search API response
type NearbySearchResponse struct {
	HTMLAttributions []string      `json:"html_attributions"`
	Results          []PlaceResult `json:"results"`
	Status           string        `json:"status"`
	ErrorMessage     string        `json:"error_message,omitempty"`
	NextPageToken    string        `json:"next_page_token,omitempty"`
}

// DetailsResponse represents the Google Place Details API response
type DetailsResponse struct {
	HTMLAttributions []string     `json:"html_attributions"`
	Result           *PlaceResult `json:"result,omitempty"`
	Status           string       `json:"status"`
	ErrorMessage     string       `json:"error_message,omitempty"`
}

// PlaceResult represents a single place result from Google Places API.
// Rating and UserRatingsTotal are pointers: the API omits them entirely for
// places with no reviews, which downstream filtering must distinguish from 0.
type PlaceResult struct {
	BusinessStatus   string        `json:"business_status,omitempty"`
	FormattedAddress string        `json:"formatted_address,omitempty"`
	Vicinity         string        `json:"vicinity,omitempty"`
	Geometry         *Geometry     `json:"geometry,omitempty"`
	Name             string        `json:"name"`
	OpeningHours     *OpeningHours `json:"opening_hours,omitempty"`
	PlaceID          string        `json:"place_id"`
	Rating           *float64      `json:"rating,omitempty"`
	Types            []string      `json:"types,omitempty"`
	UserRatingsTotal *int          `json:"user_ratings_total,omitempty"`
	PhoneNumber      string        `json:"formatted_phone_number,omitempty"`
	Website          string        `json:"website,omitempty"`
}

// Geometry represents the geometry information of a place
type Geometry struct {
	Location *LatLng `json:"location,omitempty"`
	Viewport *Bounds `json:"viewport,omitempty"`
}

// LatLng represents a geographic coordinate
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds represents a geographic bounding box
type Bounds struct {
	Northeast *LatLng `json:"northeast,omitempty"`
	Southwest *LatLng `json:"southwest,omitempty"`
}

// OpeningHours represents the opening hours of a place
type OpeningHours struct {
	OpenNow     bool     `json:"open_now,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

// APIError represents a status-coded failure from the Places API
type APIError struct {
	Status   string
	Message  string
	Endpoint string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Places API error: %s - %s (endpoint: %s)", e.Status, e.Message, e.Endpoint)
}

// ErrNotInitialized is returned when the client is used without a resolvable
// API key.
type ErrNotInitialized struct {
	Reason string
}

func (e *ErrNotInitialized) Error() string {
	return fmt.Sprintf("places client not initialized: %s", e.Reason)
}
