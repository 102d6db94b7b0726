package analytics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSettings(t *testing.T) {
	path := writeSettings(t, `
top_n: 5
concentration_threshold: 65
ranking_dimensions:
  - product:3
  - type
`)

	settings, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultSettings().Title, settings.Title)
	assert.Equal(t, 5, settings.TopN)
	assert.Equal(t, 5, settings.ConcentrationTopK)
	assert.Equal(t, 65.0, settings.ConcentrationThreshold)

	specs, err := settings.Rankings()
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, DimItem.Name, specs[0].Dimension.Name)
	assert.Equal(t, 3, specs[0].N)
	assert.Equal(t, DimItemType.Name, specs[1].Dimension.Name)
	assert.Equal(t, 5, specs[1].N)
}

func TestLoadSettings_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"threshold out of range", "concentration_threshold: 150\n"},
		{"unknown ranking dimension", "ranking_dimensions: [warehouse]\n"},
		{"duplicate ranking dimension", "ranking_dimensions: [item, product:4]\n"},
		{"bad ranking length", "ranking_dimensions: [supplier:zero]\n"},
		{"unknown concentration dimension", "concentration_dimension: region\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadSettings(writeSettings(t, tc.content))
			assert.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestDefaultSettings_Valid(t *testing.T) {
	settings := DefaultSettings()
	require.NoError(t, settings.Validate())

	specs, err := settings.Rankings()
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, DimItem.Name, specs[0].Dimension.Name)
	assert.Equal(t, 15, specs[0].N)
	assert.Equal(t, DimSupplier.Name, specs[1].Dimension.Name)
	assert.Equal(t, 10, specs[1].N)
}
