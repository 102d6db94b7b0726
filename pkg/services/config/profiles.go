package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

const (
	// EnvConfigFile overrides the default profile file location
	EnvConfigFile     = "SALES_ATLAS_CONFIG_FILE"
	defaultConfigFile = ".salesatlascfg"
	typeKey           = "type"
)

// Registry resolves named source profiles. Each ini section is a profile:
//
//	[warehouse]
//	type     = snowflake
//	account  = xy12345.eu-west-1
//	user     = analyst
//	password = ...
//	table    = retail.sales
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (domain.SourceProfile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", path, err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

// DefaultPath returns $SALES_ATLAS_CONFIG_FILE or ~/.salesatlascfg.
func DefaultPath() string {
	if path := os.Getenv(EnvConfigFile); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultConfigFile
	}
	return filepath.Join(home, defaultConfigFile)
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 && section.Name() != ini.DefaultSection {
			profiles = append(profiles, section.Name())
		}
	}
	sort.Strings(profiles)
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (domain.SourceProfile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil || name == ini.DefaultSection {
		return domain.SourceProfile{}, fmt.Errorf("profile %s not found", name)
	}

	sourceType := strings.ToLower(strings.TrimSpace(section.Key(typeKey).String()))
	if sourceType == "" {
		return domain.SourceProfile{}, fmt.Errorf("profile %s: %q is required", name, typeKey)
	}

	options := make(map[string]string, len(section.Keys()))
	for _, key := range section.Keys() {
		if key.Name() == typeKey {
			continue
		}
		options[key.Name()] = key.String()
	}

	return domain.SourceProfile{
		Name:    name,
		Type:    domain.SourceType(sourceType),
		Options: options,
	}, nil
}
