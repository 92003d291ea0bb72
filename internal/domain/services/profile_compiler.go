package services

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/buildprofile/buildprofile/internal/domain/entities"
	"github.com/buildprofile/buildprofile/internal/domain/values"
)

// ProfileCompiler turns a merged, validated candidate into an immutable
// ResolvedProfile.
//
// Compilation steps:
// 1. Decode the untyped candidate into the typed profile
// 2. Stamp the requested name and platform
//
// The candidate must already have passed schema validation; fields the
// schema does not know are dropped here.
type ProfileCompiler struct{}

// NewProfileCompiler creates a new profile compiler service.
func NewProfileCompiler() *ProfileCompiler {
	return &ProfileCompiler{}
}

// Compile decodes the candidate. The candidate is not modified.
func (c *ProfileCompiler) Compile(
	name string,
	platform values.Platform,
	candidate map[string]any,
) (*entities.ResolvedProfile, error) {
	if candidate == nil {
		return nil, fmt.Errorf("cannot compile nil candidate for profile %q", name)
	}

	resolved := &entities.ResolvedProfile{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  resolved,
		TagName: "mapstructure",
	})
	if err != nil {
		return nil, fmt.Errorf("creating decoder: %w", err)
	}

	if err := decoder.Decode(candidate); err != nil {
		return nil, fmt.Errorf("decoding build profile %q for %s: %w", name, platform, err)
	}

	resolved.Name = name
	resolved.Platform = platform
	return resolved, nil
}
