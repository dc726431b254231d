package interfaces

import "github.com/ternarybob/prospect/internal/models"

// CatalogService provides the business-type taxonomy used to build searches
type CatalogService interface {
	// Categories returns the full taxonomy in catalog order
	Categories() []models.Category

	// IsValid reports whether value is a known category tag
	IsValid(value string) bool
}
