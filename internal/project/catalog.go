package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/gridflow/internal/model"
)

// CatalogExt is the file extension used for saved catalogs.
const CatalogExt = ".gridcat"

// SaveCatalog writes a catalog to path as indented JSON.
func SaveCatalog(path string, catalog model.Catalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}

// LoadCatalog reads a catalog previously written by SaveCatalog.
func LoadCatalog(path string) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}
	var catalog model.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return model.Catalog{}, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	normalizeCatalog(&catalog)
	return catalog, nil
}

func normalizeCatalog(c *model.Catalog) {
	if c.Groups == nil {
		c.Groups = []model.Group{}
	}
	for i := range c.Groups {
		if c.Groups[i].Items == nil {
			c.Groups[i].Items = []model.Item{}
		}
	}
}
