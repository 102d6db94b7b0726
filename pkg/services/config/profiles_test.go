package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profiles = `
[local]
type = csv
path = ./Warehouse_and_Retail_Sales.csv

[warehouse]
type      = Snowflake
account   = xy12345.eu-west-1
user      = analyst
password  = secret
table     = retail.sales

[broken]
path = ./missing-type.csv

[empty]
`

func newRegistry(t *testing.T) Registry {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".salesatlascfg")
	require.NoError(t, os.WriteFile(path, []byte(profiles), 0o600))

	r, err := NewRegistry(path)
	require.NoError(t, err)
	return r
}

func TestRegistry_GetProfiles(t *testing.T) {
	r := newRegistry(t)

	names, err := r.GetProfiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"broken", "local", "warehouse"}, names)
}

func TestRegistry_GetProfile(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()

	t.Run("csv profile", func(t *testing.T) {
		p, err := r.GetProfile(ctx, "local")
		require.NoError(t, err)
		assert.Equal(t, domain.SourceTypeCSV, p.Type)
		assert.Equal(t, "./Warehouse_and_Retail_Sales.csv", p.Option("path"))
		assert.NotContains(t, p.Options, "type")
	})

	t.Run("type is case-insensitive", func(t *testing.T) {
		p, err := r.GetProfile(ctx, "warehouse")
		require.NoError(t, err)
		assert.Equal(t, domain.SourceTypeSnowflake, p.Type)
		assert.Equal(t, "retail.sales", p.Option("table"))
	})

	t.Run("missing type", func(t *testing.T) {
		_, err := r.GetProfile(ctx, "broken")
		assert.ErrorContains(t, err, `"type" is required`)
	})

	t.Run("unknown profile", func(t *testing.T) {
		_, err := r.GetProfile(ctx, "staging")
		assert.ErrorContains(t, err, "not found")
	})
}

func TestNewRegistry_MissingFile(t *testing.T) {
	_, err := NewRegistry(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(EnvConfigFile, "/etc/sales-atlas/profiles")
	assert.Equal(t, "/etc/sales-atlas/profiles", DefaultPath())

	t.Setenv(EnvConfigFile, "")
	assert.Equal(t, defaultConfigFile, filepath.Base(DefaultPath()))
}
