package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/prospect/internal/common"
	"github.com/ternarybob/prospect/internal/models"
	"github.com/ternarybob/prospect/internal/services/aggregator"
)

type stubAggregator struct {
	result *models.SearchResult
	err    error

	gotRequest *models.SearchRequest
}

func (s *stubAggregator) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResult, error) {
	s.gotRequest = req
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

const searchBody = `{
	"categories": ["cafe", "restaurant"],
	"center": {"latitude": -33.86, "longitude": 151.2},
	"radius_meters": 5000
}`

func TestSearchHandler_Success(t *testing.T) {
	stub := &stubAggregator{
		result: &models.SearchResult{
			SearchID:     "srch_test",
			Categories:   []string{"cafe", "restaurant"},
			TotalResults: 1,
			Places:       []models.Place{{PlaceID: "p1", Name: "Corner Cafe"}},
		},
	}
	handler := NewSearchHandler(stub, common.GetLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(searchBody))
	rec := httptest.NewRecorder()
	handler.SearchHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	require.NotNil(t, stub.gotRequest)
	assert.Equal(t, []string{"cafe", "restaurant"}, stub.gotRequest.Categories)
	assert.Equal(t, 5000, stub.gotRequest.RadiusMeters)

	var result models.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "srch_test", result.SearchID)
	assert.Equal(t, 1, result.TotalResults)
	require.Len(t, result.Places, 1)
	assert.Equal(t, "p1", result.Places[0].PlaceID)
}

func TestSearchHandler_InvalidRequest(t *testing.T) {
	stub := &stubAggregator{err: aggregator.ErrInvalidRequest}
	handler := NewSearchHandler(stub, common.GetLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(searchBody))
	rec := httptest.NewRecorder()
	handler.SearchHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchHandler_WrappedInvalidRequest(t *testing.T) {
	wrapped := errors.Join(aggregator.ErrInvalidRequest, errors.New("categories: unknown category \"spaceport\""))
	stub := &stubAggregator{err: wrapped}
	handler := NewSearchHandler(stub, common.GetLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(searchBody))
	rec := httptest.NewRecorder()
	handler.SearchHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
	assert.Contains(t, body["error"], "spaceport")
}

func TestSearchHandler_ProviderUnavailable(t *testing.T) {
	stub := &stubAggregator{err: aggregator.ErrProviderUnavailable}
	handler := NewSearchHandler(stub, common.GetLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(searchBody))
	rec := httptest.NewRecorder()
	handler.SearchHandler(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSearchHandler_UnexpectedError(t *testing.T) {
	stub := &stubAggregator{err: errors.New("boom")}
	handler := NewSearchHandler(stub, common.GetLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(searchBody))
	rec := httptest.NewRecorder()
	handler.SearchHandler(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "search failed", body["error"], "internal errors are not echoed to clients")
}

func TestSearchHandler_MalformedBody(t *testing.T) {
	stub := &stubAggregator{}
	handler := NewSearchHandler(stub, common.GetLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.SearchHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, stub.gotRequest, "aggregator is not called for undecodable bodies")
}

func TestSearchHandler_MethodNotAllowed(t *testing.T) {
	stub := &stubAggregator{}
	handler := NewSearchHandler(stub, common.GetLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rec := httptest.NewRecorder()
	handler.SearchHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Nil(t, stub.gotRequest)
}
