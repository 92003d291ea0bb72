// Package entities contains domain entities for the build profile domain.
// These are pure domain types with NO infrastructure dependencies.
package entities

import (
	"github.com/buildprofile/buildprofile/internal/domain/values"
)

// Field names recognised in a profile definition.
const (
	FieldExtends           = "extends"
	FieldDistribution      = "distribution"
	FieldCredentialsSource = "credentialsSource"
	FieldDevelopmentClient = "developmentClient"
	FieldNode              = "node"
	FieldEnv               = "env"
	FieldCache             = "cache"
	FieldBuildType         = "buildType"
)

// Cache sub-field names.
const (
	CacheFieldDisabled          = "disabled"
	CacheFieldKey               = "key"
	CacheFieldCacheDefaultPaths = "cacheDefaultPaths"
	CacheFieldCustomPaths       = "customPaths"
)

// ProfileDefinition is one named entry of the document's build section,
// exactly as written by the user.
//
// Field values are kept in their raw, untyped form: a definition may be
// partial or even wrong, and type checking only happens once the whole
// extends chain has been merged for a platform.
type ProfileDefinition struct {
	// Name is the key of the profile within the document.
	Name string

	// Extends is the name of the parent profile, empty for a root profile.
	Extends string

	// Fields holds the common (platform independent) fields.
	Fields map[string]any

	// Platforms holds the per-platform override field sets.
	Platforms map[values.Platform]map[string]any
}

// HasParent reports whether the profile extends another profile.
func (p *ProfileDefinition) HasParent() bool {
	return p.Extends != ""
}

// PlatformFields returns the overlay for the platform, or nil.
func (p *ProfileDefinition) PlatformFields(platform values.Platform) map[string]any {
	if p.Platforms == nil {
		return nil
	}
	return p.Platforms[platform]
}
