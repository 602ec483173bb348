package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/macrolens/foodscore/internal/domain"
	"go.uber.org/zap"
)

// FileSource reads a Foundation Foods download from disk
type FileSource struct {
	path   string
	logger *zap.Logger
}

// NewFileSource creates a new file dataset source
func NewFileSource(path string, logger *zap.Logger) *FileSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSource{path: path, logger: logger}
}

// Name returns the source path
func (s *FileSource) Name() string {
	return s.path
}

// Load reads and decodes the file. A file that cannot be read is reported
// as ErrInputMissing.
func (s *FileSource) Load(ctx context.Context) (*domain.FoundationDataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInputMissing, s.path)
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInputMissing, s.path, err)
	}

	s.logger.Debug("read dataset", zap.String("path", s.path), zap.Int("bytes", len(data)))

	dataset, err := Decode(data, s.logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return dataset, nil
}

// FileWriter writes score records as an indented JSON array
type FileWriter struct {
	path string
}

// NewFileWriter creates a new file score writer
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// Write replaces the destination file with the encoded records. The file is
// written to a temporary sibling first and renamed into place.
func (w *FileWriter) Write(ctx context.Context, records []domain.FoodScoreRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(records)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOutputWrite, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(w.path), "."+filepath.Base(w.path)+"-*")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOutputWrite, err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", domain.ErrOutputWrite, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", domain.ErrOutputWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", domain.ErrOutputWrite, err)
	}
	if err := os.Rename(tmpName, w.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", domain.ErrOutputWrite, err)
	}

	return nil
}

// Encode serializes records with a four space indent. A nil slice encodes
// as an empty array.
func Encode(records []domain.FoodScoreRecord) ([]byte, error) {
	if records == nil {
		records = []domain.FoodScoreRecord{}
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
