// Package catalog holds the business-type taxonomy used to build searches.
// The default taxonomy is embedded; deployments can override it with a YAML
// file via the [catalog] config table.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/ternarybob/arbor"
	"gopkg.in/yaml.v3"

	"github.com/ternarybob/prospect/internal/interfaces"
	"github.com/ternarybob/prospect/internal/models"
)

//go:embed categories.yaml
var defaultTaxonomy []byte

type taxonomyFile struct {
	Categories []models.Category `yaml:"categories"`
}

// Service implements the CatalogService interface
type Service struct {
	categories []models.Category
	byValue    map[string]models.Category
	logger     arbor.ILogger
}

// NewService loads the taxonomy from filePath, or the embedded default when
// filePath is empty.
func NewService(filePath string, logger arbor.ILogger) (interfaces.CatalogService, error) {
	data := defaultTaxonomy
	source := "embedded"

	if filePath != "" {
		fileData, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file %s: %w", filePath, err)
		}
		data = fileData
		source = filePath
	}

	var parsed taxonomyFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse catalog taxonomy (%s): %w", source, err)
	}

	if len(parsed.Categories) == 0 {
		return nil, fmt.Errorf("catalog taxonomy (%s) contains no categories", source)
	}

	byValue := make(map[string]models.Category, len(parsed.Categories))
	for _, category := range parsed.Categories {
		if category.Value == "" {
			return nil, fmt.Errorf("catalog taxonomy (%s) contains a category without a value", source)
		}
		byValue[category.Value] = category
	}

	logger.Info().
		Str("source", source).
		Int("categories", len(parsed.Categories)).
		Msg("Category catalog loaded")

	return &Service{
		categories: parsed.Categories,
		byValue:    byValue,
		logger:     logger,
	}, nil
}

// Categories returns the full taxonomy in catalog order
func (s *Service) Categories() []models.Category {
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// IsValid reports whether value is a known category tag
func (s *Service) IsValid(value string) bool {
	_, ok := s.byValue[value]
	return ok
}
