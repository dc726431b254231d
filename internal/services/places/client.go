package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/prospect/internal/common"
	"github.com/ternarybob/prospect/internal/interfaces"
	"github.com/ternarybob/prospect/internal/models"
)

const (
	// DefaultBaseURL is the base URL for the Google Places Web Service API.
	DefaultBaseURL = "https://maps.googleapis.com/maps/api/place"

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 10

	// MaxRadiusMeters is the provider-imposed nearby search radius cap.
	MaxRadiusMeters = 50000
)

// detailFields is the fixed field set requested on detail lookups. Field
// scoping keeps detail calls in the cheaper billing tiers.
var detailFields = strings.Join([]string{
	"place_id",
	"name",
	"formatted_address",
	"rating",
	"user_ratings_total",
	"types",
	"geometry",
	"business_status",
	"formatted_phone_number",
	"website",
	"opening_hours",
}, ",")

// Client is a Google Places API client implementing interfaces.PlacesService
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
	maxRadius  int

	initOnce sync.Once
	initErr  error
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL (used by tests)
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRateLimit sets a custom rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewClient creates a new Places API client from configuration
func NewClient(config *common.PlacesAPIConfig, logger arbor.ILogger, opts ...ClientOption) interfaces.PlacesService {
	rateLimit := config.RateLimit
	if rateLimit <= 0 {
		rateLimit = DefaultRateLimit
	}
	maxRadius := config.MaxRadiusMeters
	if maxRadius <= 0 || maxRadius > MaxRadiusMeters {
		maxRadius = MaxRadiusMeters
	}

	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  config.APIKey,
		httpClient: &http.Client{
			Timeout: config.SearchTimeout,
		},
		logger:    logger,
		limiter:   rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
		maxRadius: maxRadius,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Init resolves the API key once. Concurrent first use initializes exactly
// once; subsequent calls return the recorded outcome.
func (c *Client) Init(ctx context.Context) error {
	c.initOnce.Do(func() {
		if c.apiKey == "" {
			c.initErr = &ErrNotInitialized{Reason: "no API key configured"}
			return
		}
		c.logger.Debug().Msg("Places client initialized")
	})
	return c.initErr
}

// NearbySearch performs a Google Places Nearby Search for one category
func (c *Client) NearbySearch(ctx context.Context, center models.Coordinate, radiusMeters int, category string) ([]models.PlaceSummary, error) {
	if err := c.Init(ctx); err != nil {
		return nil, err
	}

	if radiusMeters > c.maxRadius {
		radiusMeters = c.maxRadius
	}

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", center.Latitude, center.Longitude))
	params.Set("radius", fmt.Sprintf("%d", radiusMeters))
	params.Set("type", category)

	var apiResp NearbySearchResponse
	if err := c.get(ctx, "/nearbysearch/json", params, &apiResp); err != nil {
		return nil, err
	}

	if apiResp.Status != StatusOK && apiResp.Status != StatusZeroResults {
		return nil, &APIError{Status: apiResp.Status, Message: apiResp.ErrorMessage, Endpoint: "/nearbysearch/json"}
	}

	summaries := make([]models.PlaceSummary, 0, len(apiResp.Results))
	for _, result := range apiResp.Results {
		summaries = append(summaries, convertToSummary(result))
	}

	c.logger.Info().
		Str("category", category).
		Int("radius", radiusMeters).
		Int("results_count", len(summaries)).
		Str("status", apiResp.Status).
		Msg("Nearby search completed")

	return summaries, nil
}

// PlaceDetails performs a field-scoped Place Details lookup
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (*models.PlaceSummary, error) {
	if err := c.Init(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", detailFields)

	var apiResp DetailsResponse
	if err := c.get(ctx, "/details/json", params, &apiResp); err != nil {
		return nil, err
	}

	if apiResp.Status != StatusOK || apiResp.Result == nil {
		return nil, &APIError{Status: apiResp.Status, Message: apiResp.ErrorMessage, Endpoint: "/details/json"}
	}

	summary := convertToSummary(*apiResp.Result)

	c.logger.Debug().
		Str("place_id", placeID).
		Msg("Place details lookup completed")

	return &summary, nil
}

// get performs a rate-limited GET request against the Places API
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait aborted: %w", err)
	}

	params.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Redact API key in logs
	c.logger.Debug().
		Str("endpoint", path).
		Str("params", redactKey(params)).
		Msg("Calling Google Places API")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call Google Places API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{
			Status:   fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message:  http.StatusText(resp.StatusCode),
			Endpoint: path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode API response: %w", err)
	}

	return nil
}

func redactKey(params url.Values) string {
	redacted := url.Values{}
	for k, v := range params {
		if k == "key" {
			redacted.Set(k, "***REDACTED***")
			continue
		}
		redacted[k] = v
	}
	return redacted.Encode()
}

// convertToSummary maps an API wire record to the provider-neutral summary
func convertToSummary(result PlaceResult) models.PlaceSummary {
	summary := models.PlaceSummary{
		PlaceID:        result.PlaceID,
		Name:           result.Name,
		Address:        result.FormattedAddress,
		Rating:         result.Rating,
		ReviewCount:    result.UserRatingsTotal,
		Categories:     result.Types,
		BusinessStatus: result.BusinessStatus,
		Phone:          result.PhoneNumber,
		Website:        result.Website,
	}

	// Nearby search returns vicinity rather than formatted_address
	if summary.Address == "" {
		summary.Address = result.Vicinity
	}

	if result.Geometry != nil && result.Geometry.Location != nil {
		summary.Location = &models.Coordinate{
			Latitude:  result.Geometry.Location.Lat,
			Longitude: result.Geometry.Location.Lng,
		}
	}

	if result.OpeningHours != nil {
		summary.OpeningHours = &models.OpeningHours{
			OpenNow:     result.OpeningHours.OpenNow,
			WeekdayText: result.OpeningHours.WeekdayText,
		}
	}

	return summary
}

var _ interfaces.PlacesService = (*Client)(nil)
