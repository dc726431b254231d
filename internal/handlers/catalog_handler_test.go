package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/prospect/internal/common"
	"github.com/ternarybob/prospect/internal/models"
)

type stubCatalog struct {
	categories []models.Category
}

func (s *stubCatalog) Categories() []models.Category {
	return s.categories
}

func (s *stubCatalog) IsValid(value string) bool {
	for _, c := range s.categories {
		if c.Value == value {
			return true
		}
	}
	return false
}

func TestCatalogHandler_List(t *testing.T) {
	stub := &stubCatalog{categories: []models.Category{
		{Value: "cafe", Label: "Cafe", Group: "food"},
		{Value: "florist", Label: "Florist", Group: "retail"},
	}}
	handler := NewCatalogHandler(stub, common.GetLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rec := httptest.NewRecorder()
	handler.ListHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Total      int               `json:"total"`
		Categories []models.Category `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)
	require.Len(t, body.Categories, 2)
	assert.Equal(t, "cafe", body.Categories[0].Value)
	assert.Equal(t, "retail", body.Categories[1].Group)
}

func TestCatalogHandler_MethodNotAllowed(t *testing.T) {
	handler := NewCatalogHandler(&stubCatalog{}, common.GetLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/categories", nil)
	rec := httptest.NewRecorder()
	handler.ListHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
