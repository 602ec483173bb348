package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/macrolens/foodscore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileSource_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("reads and decodes the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "foundationDownload.json")
		require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0644))

		source := NewFileSource(path, zap.NewNop())
		dataset, err := source.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, dataset.Foods, 3)
		assert.Equal(t, path, source.Name())
	})

	t.Run("missing file", func(t *testing.T) {
		source := NewFileSource(filepath.Join(t.TempDir(), "foundationDownload.json"), nil)
		_, err := source.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrInputMissing)
	})

	t.Run("directory instead of file", func(t *testing.T) {
		source := NewFileSource(t.TempDir(), nil)
		_, err := source.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrInputMissing)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.json")
		require.NoError(t, os.WriteFile(path, []byte("   \n"), 0644))

		_, err := NewFileSource(path, nil).Load(ctx)
		assert.ErrorIs(t, err, domain.ErrInputEmpty)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{oops"), 0644))

		_, err := NewFileSource(path, nil).Load(ctx)
		assert.ErrorIs(t, err, domain.ErrInputMalformed)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewFileSource("unused.json", nil).Load(cancelled)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFileWriter_Write(t *testing.T) {
	ctx := context.Background()

	t.Run("writes indented records with stable field order", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "foods_data.json")
		records := []domain.FoodScoreRecord{
			{Food: "Hummus, commercial", TotalScore: 8.9, ProteinScore: 2.6, FiberScore: 9.4, SaturatedFatScore: -3.1},
		}

		require.NoError(t, NewFileWriter(path).Write(ctx, records))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, `[
    {
        "Food": "Hummus, commercial",
        "TotalScore": 8.9,
        "ProteinScore": 2.6,
        "FiberScore": 9.4,
        "SaturatedFatScore": -3.1
    }
]
`, string(data))

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temporary file should be renamed into place")
	})

	t.Run("overwrites existing output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "foods_data.json")
		require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

		require.NoError(t, NewFileWriter(path).Write(ctx, nil))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	})

	t.Run("fails with ErrOutputWrite for a missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "foods_data.json")
		err := NewFileWriter(path).Write(ctx, nil)
		assert.ErrorIs(t, err, domain.ErrOutputWrite)
	})
}

func TestEncode_Deterministic(t *testing.T) {
	records := []domain.FoodScoreRecord{
		{Food: "A", TotalScore: 1.5, ProteinScore: 1, FiberScore: 1, SaturatedFatScore: -0.5},
		{Food: "B"},
	}

	first, err := Encode(records)
	require.NoError(t, err)
	second, err := Encode(records)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
