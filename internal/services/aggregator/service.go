// Package aggregator implements the multi-category place search pipeline:
// fan-out one nearby search per category, merge, dedup by place identity,
// filter, bound, then enrich a prefix of the results with detail lookups.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/prospect/internal/common"
	"github.com/ternarybob/prospect/internal/interfaces"
	"github.com/ternarybob/prospect/internal/models"
)

var (
	// ErrInvalidRequest is returned before any provider call when the search
	// request fails validation.
	ErrInvalidRequest = errors.New("invalid search request")

	// ErrProviderUnavailable is returned when the places provider cannot be
	// initialized at all. Per-call provider failures are absorbed instead.
	ErrProviderUnavailable = errors.New("places provider unavailable")
)

// Service implements the AggregatorService interface
type Service struct {
	provider      interfaces.PlacesService
	catalog       interfaces.CatalogService
	eventService  interfaces.EventService
	logger        arbor.ILogger
	validate      *validator.Validate
	maxResults    int
	enrichLimit   int
	detailTimeout time.Duration
}

// NewService creates a new aggregator service. catalog and eventService may be
// nil; category validation and event publishing are skipped respectively.
func NewService(
	config *common.AggregatorConfig,
	placesConfig *common.PlacesAPIConfig,
	provider interfaces.PlacesService,
	catalog interfaces.CatalogService,
	eventService interfaces.EventService,
	logger arbor.ILogger,
) interfaces.AggregatorService {
	maxResults := config.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}
	enrichLimit := config.EnrichLimit
	if enrichLimit < 0 {
		enrichLimit = 0
	}
	detailTimeout := placesConfig.DetailTimeout
	if detailTimeout <= 0 {
		detailTimeout = 10 * time.Second
	}

	return &Service{
		provider:      provider,
		catalog:       catalog,
		eventService:  eventService,
		logger:        logger,
		validate:      validator.New(),
		maxResults:    maxResults,
		enrichLimit:   enrichLimit,
		detailTimeout: detailTimeout,
	}
}

// Search executes the full aggregation pipeline for one request
func (s *Service) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResult, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	// Provider readiness is a request-level failure, distinct from the
	// per-call failures absorbed below.
	if err := s.provider.Init(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	searchID := common.NewSearchID()

	s.logger.Info().
		Str("search_id", searchID).
		Strs("categories", req.Categories).
		Int("radius", req.RadiusMeters).
		Msg("Starting place search")

	s.publishEvent(ctx, interfaces.EventSearchStarted, map[string]interface{}{
		"search_id":  searchID,
		"categories": req.Categories,
	})

	partials := s.fanOut(ctx, searchID, req)
	merged := dedupe(partials)
	filtered := s.filter(merged, req)

	if len(filtered) > s.maxResults {
		filtered = filtered[:s.maxResults]
	}

	placeList := make([]models.Place, len(filtered))
	for i, summary := range filtered {
		placeList[i] = normalizePlace(summary)
	}

	enrichedCount := s.enrich(ctx, searchID, placeList)

	result := &models.SearchResult{
		SearchID:     searchID,
		Categories:   req.Categories,
		TotalResults: len(placeList),
		Places:       placeList,
	}

	s.publishEvent(ctx, interfaces.EventSearchCompleted, map[string]interface{}{
		"search_id":     searchID,
		"total_results": result.TotalResults,
		"enriched":      enrichedCount,
	})

	s.logger.Info().
		Str("search_id", searchID).
		Int("total_results", result.TotalResults).
		Int("enriched", enrichedCount).
		Msg("Place search completed")

	return result, nil
}

// validateRequest checks the request before any provider call is issued
func (s *Service) validateRequest(req *models.SearchRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidRequest)
	}

	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	if s.catalog != nil {
		for _, category := range req.Categories {
			if !s.catalog.IsValid(category) {
				return fmt.Errorf("%w: unknown category %q", ErrInvalidRequest, category)
			}
		}
	}

	return nil
}

// fanOut issues one nearby search per category concurrently and joins on all
// of them. A failed category yields an empty partial; it never aborts the
// join or the surviving categories.
func (s *Service) fanOut(ctx context.Context, searchID string, req *models.SearchRequest) [][]models.PlaceSummary {
	partials := make([][]models.PlaceSummary, len(req.Categories))

	var wg sync.WaitGroup
	for i, category := range req.Categories {
		wg.Add(1)
		go func(idx int, category string) {
			defer wg.Done()
			defer s.recoverCategory(category)

			results, err := s.provider.NearbySearch(ctx, req.Center, req.RadiusMeters, category)
			if err != nil {
				s.logger.Warn().
					Err(err).
					Str("search_id", searchID).
					Str("category", category).
					Msg("Nearby search failed, continuing with remaining categories")
				s.publishEvent(ctx, interfaces.EventCategorySearchFailed, map[string]interface{}{
					"search_id": searchID,
					"category":  category,
					"error":     err.Error(),
				})
				return
			}
			partials[idx] = results
		}(i, category)
	}
	wg.Wait()

	return partials
}

// dedupe concatenates partials in request order and drops later duplicates by
// place identity. First occurrence wins, so the merge order is deterministic
// for identical provider responses.
func dedupe(partials [][]models.PlaceSummary) []models.PlaceSummary {
	seen := make(map[string]struct{})
	merged := make([]models.PlaceSummary, 0)

	for _, partial := range partials {
		for _, summary := range partial {
			if summary.PlaceID != "" {
				if _, dup := seen[summary.PlaceID]; dup {
					continue
				}
				seen[summary.PlaceID] = struct{}{}
			}
			merged = append(merged, summary)
		}
	}

	return merged
}

// filter retains summaries that are usable downstream and satisfy the request
// bounds. Absent review counts and absent operational status pass: a provider
// omission must not exclude a place.
func (s *Service) filter(summaries []models.PlaceSummary, req *models.SearchRequest) []models.PlaceSummary {
	filtered := make([]models.PlaceSummary, 0, len(summaries))

	for _, summary := range summaries {
		if summary.PlaceID == "" || summary.Name == "" || summary.Location == nil {
			continue
		}
		if summary.ReviewCount != nil {
			if *summary.ReviewCount < req.MinReviewCount || *summary.ReviewCount > req.MaxReviewCount {
				continue
			}
		}
		if summary.BusinessStatus != "" && summary.BusinessStatus != models.BusinessStatusOperational {
			continue
		}
		filtered = append(filtered, summary)
	}

	return filtered
}

// enrich performs detail lookups for the leading enrichLimit places
// concurrently, each under its own timeout. A failed or timed-out lookup
// keeps the pre-enrichment record. Returns the number of enriched records.
func (s *Service) enrich(ctx context.Context, searchID string, placeList []models.Place) int {
	limit := s.enrichLimit
	if limit > len(placeList) {
		limit = len(placeList)
	}
	if limit == 0 {
		return 0
	}

	enriched := 0
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < limit; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer s.recoverCategory(placeList[idx].PlaceID)

			detailCtx, cancel := context.WithTimeout(ctx, s.detailTimeout)
			defer cancel()

			detail, err := s.provider.PlaceDetails(detailCtx, placeList[idx].PlaceID)
			if err != nil {
				s.logger.Warn().
					Err(err).
					Str("search_id", searchID).
					Str("place_id", placeList[idx].PlaceID).
					Msg("Detail lookup failed, keeping pre-enrichment record")
				return
			}

			placeList[idx] = mergeEnrichment(placeList[idx], detail)

			mu.Lock()
			enriched++
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	return enriched
}

// recoverCategory absorbs a panic from one pipeline task so the join barrier
// still completes for the others.
func (s *Service) recoverCategory(subject string) {
	if r := recover(); r != nil {
		buf := make([]byte, 4096)
		n := runtime.Stack(buf, false)
		s.logger.Error().
			Str("subject", subject).
			Str("panic", fmt.Sprintf("%v", r)).
			Str("stack", string(buf[:n])).
			Msg("Recovered from panic in search task")
	}
}

// publishEvent publishes an event via the event service
func (s *Service) publishEvent(ctx context.Context, eventType interfaces.EventType, data map[string]interface{}) {
	if s.eventService == nil {
		return
	}

	data["timestamp"] = time.Now().Format(time.RFC3339)
	event := interfaces.Event{
		Type:    eventType,
		Payload: data,
	}
	if err := s.eventService.Publish(ctx, event); err != nil {
		s.logger.Warn().
			Err(err).
			Str("event_type", string(eventType)).
			Msg("Failed to publish event")
	}
}

// normalizePlace converts a filtered raw summary into the output record.
// Location presence is guaranteed by the filter stage.
func normalizePlace(summary models.PlaceSummary) models.Place {
	place := models.Place{
		PlaceID:        summary.PlaceID,
		Name:           summary.Name,
		Address:        summary.Address,
		Categories:     summary.Categories,
		Latitude:       summary.Location.Latitude,
		Longitude:      summary.Location.Longitude,
		BusinessStatus: summary.BusinessStatus,
	}

	if place.Address == "" {
		place.Address = models.AddressPlaceholder
	}
	if summary.Rating != nil {
		place.Rating = *summary.Rating
	}
	if summary.ReviewCount != nil {
		place.ReviewCount = *summary.ReviewCount
	}
	if place.BusinessStatus == "" {
		place.BusinessStatus = models.BusinessStatusOperational
	}

	return place
}

// mergeEnrichment overlays detail-lookup fields onto the base record. Fields
// the detail response omits keep their pre-enrichment values.
func mergeEnrichment(base models.Place, detail *models.PlaceSummary) models.Place {
	enriched := base
	enriched.Enriched = true

	if detail.Name != "" {
		enriched.Name = detail.Name
	}
	if detail.Address != "" {
		enriched.Address = detail.Address
	}
	if detail.Rating != nil {
		enriched.Rating = *detail.Rating
	}
	if detail.ReviewCount != nil {
		enriched.ReviewCount = *detail.ReviewCount
	}
	if len(detail.Categories) > 0 {
		enriched.Categories = detail.Categories
	}
	if detail.Location != nil {
		enriched.Latitude = detail.Location.Latitude
		enriched.Longitude = detail.Location.Longitude
	}
	if detail.BusinessStatus != "" {
		enriched.BusinessStatus = detail.BusinessStatus
	}
	enriched.Phone = detail.Phone
	enriched.Website = detail.Website
	enriched.OpeningHours = detail.OpeningHours

	return enriched
}

var _ interfaces.AggregatorService = (*Service)(nil)
