package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

const inlineProfile = "inline"

// Selection is a source choice as given on the command line: either a named
// profile from the profile file, or a source type with its location.
type Selection struct {
	Profile    string
	ConfigFile string
	Type       string
	Path       string
	Sheet      string
}

// Resolve turns a selection into a source profile. A named profile wins;
// Path and Sheet given alongside it override the profile's own options.
func Resolve(ctx context.Context, sel Selection) (domain.SourceProfile, error) {
	if sel.Profile != "" {
		path := sel.ConfigFile
		if path == "" {
			path = DefaultPath()
		}
		registry, err := NewRegistry(path)
		if err != nil {
			return domain.SourceProfile{}, err
		}
		profile, err := registry.GetProfile(ctx, sel.Profile)
		if err != nil {
			return domain.SourceProfile{}, err
		}
		if sel.Type != "" && domain.SourceType(strings.ToLower(sel.Type)) != profile.Type {
			return domain.SourceProfile{}, fmt.Errorf("profile %s is of type %s, not %s", sel.Profile, profile.Type, sel.Type)
		}
		setOption(profile, "path", sel.Path)
		setOption(profile, "sheet", sel.Sheet)
		return profile, nil
	}

	if sel.Type == "" {
		return domain.SourceProfile{}, fmt.Errorf("either a profile or a source type is required")
	}
	profile := domain.SourceProfile{
		Name:    inlineProfile,
		Type:    domain.SourceType(strings.ToLower(sel.Type)),
		Options: make(map[string]string),
	}
	setOption(profile, "path", sel.Path)
	setOption(profile, "sheet", sel.Sheet)
	return profile, nil
}

func setOption(profile domain.SourceProfile, key, value string) {
	if value != "" {
		profile.Options[key] = value
	}
}
