package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"memoboard/domain/core/entities"
)

// CatalogFile is the on-disk layout of a category catalog
type CatalogFile struct {
	Categories []entities.Category `yaml:"categories"`
}

// LoadCategoryCatalog reads a YAML catalog. An empty path yields the
// built-in catalog.
func LoadCategoryCatalog(path string) (entities.CategoryCatalog, error) {
	if path == "" {
		return entities.NewCategoryCatalog(entities.DefaultCategories()), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return entities.CategoryCatalog{}, fmt.Errorf("failed to open category catalog: %w", err)
	}
	defer f.Close()

	return ParseCategoryCatalog(f)
}

// ParseCategoryCatalog decodes a YAML catalog
func ParseCategoryCatalog(r io.Reader) (entities.CategoryCatalog, error) {
	var file CatalogFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return entities.CategoryCatalog{}, fmt.Errorf("failed to parse category catalog: %w", err)
	}

	for i, c := range file.Categories {
		if c.ID == "" {
			return entities.CategoryCatalog{}, fmt.Errorf("category %d has no id", i)
		}
		if c.Name == "" {
			file.Categories[i].Name = c.ID
		}
		if c.Color == "" {
			file.Categories[i].Color = entities.FallbackCategoryColor
		}
	}

	return entities.NewCategoryCatalog(file.Categories), nil
}
