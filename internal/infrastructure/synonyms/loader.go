package synonyms

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/macrolens/foodscore/internal/domain"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// File is the YAML layout of a synonym table:
//
//	nutrients:
//	  - category: Protein
//	    names: ["Protein"]
//	    ids: [1003]
type File struct {
	Nutrients []FileEntry `yaml:"nutrients"`
}

// FileEntry is one category of a synonym table file
type FileEntry struct {
	Category string   `yaml:"category"`
	Names    []string `yaml:"names"`
	IDs      []int    `yaml:"ids"`
}

// Load returns the table at path, or the built-in table when path is empty.
// Keys shared by several categories are logged; they resolve to the
// category listed first.
func Load(path string, logger *zap.Logger) (*domain.SynonymTable, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if path == "" {
		logger.Debug("using built-in synonym table")
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read synonym table %s: %w", path, err)
	}

	table, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for _, overlap := range table.Overlaps() {
		logger.Warn("synonym key listed under several categories, first one wins",
			zap.String("path", path), zap.String("key", overlap))
	}

	logger.Info("loaded synonym table", zap.String("path", path), zap.Int("categories", len(table.Entries())))
	return table, nil
}

// Parse builds a table from YAML, keeping the file's category order
func Parse(data []byte) (*domain.SynonymTable, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var file File
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", domain.ErrInvalidSynonymTable)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSynonymTable, err)
	}

	entries := make([]domain.SynonymEntry, 0, len(file.Nutrients))
	for _, e := range file.Nutrients {
		nutrient, err := domain.ParseCanonicalNutrient(e.Category)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSynonymTable, err)
		}
		entries = append(entries, domain.SynonymEntry{
			Nutrient: nutrient,
			Names:    e.Names,
			IDs:      e.IDs,
		})
	}

	return domain.NewSynonymTable(entries)
}
