package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/prospect/internal/common"
)

func TestNewService_EmbeddedDefault(t *testing.T) {
	svc, err := NewService("", common.GetLogger())
	require.NoError(t, err)

	categories := svc.Categories()
	require.NotEmpty(t, categories)

	assert.True(t, svc.IsValid("restaurant"))
	assert.True(t, svc.IsValid("cafe"))
	assert.False(t, svc.IsValid("spaceport"))

	for _, category := range categories {
		assert.NotEmpty(t, category.Value)
		assert.NotEmpty(t, category.Label)
		assert.NotEmpty(t, category.Group)
	}
}

func TestNewService_FileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	content := `categories:
  - value: bakery
    label: Bakery
    group: food
  - value: florist
    label: Florist
    group: retail
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	svc, err := NewService(path, common.GetLogger())
	require.NoError(t, err)

	categories := svc.Categories()
	require.Len(t, categories, 2)
	assert.Equal(t, "bakery", categories[0].Value)
	assert.True(t, svc.IsValid("florist"))
	assert.False(t, svc.IsValid("restaurant"), "file override replaces the embedded taxonomy")
}

func TestNewService_MissingFile(t *testing.T) {
	_, err := NewService(filepath.Join(t.TempDir(), "nope.yaml"), common.GetLogger())
	require.Error(t, err)
}

func TestNewService_EmptyTaxonomy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: []\n"), 0644))

	_, err := NewService(path, common.GetLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no categories")
}

func TestNewService_CategoryWithoutValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	content := `categories:
  - label: Nameless
    group: food
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := NewService(path, common.GetLogger())
	require.Error(t, err)
}

func TestCategories_ReturnsCopy(t *testing.T) {
	svc, err := NewService("", common.GetLogger())
	require.NoError(t, err)

	first := svc.Categories()
	first[0].Value = "mutated"

	second := svc.Categories()
	assert.NotEqual(t, "mutated", second[0].Value)
}
