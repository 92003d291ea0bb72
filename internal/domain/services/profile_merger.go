package services

import (
	"github.com/buildprofile/buildprofile/internal/domain/entities"
	"github.com/buildprofile/buildprofile/internal/domain/values"
)

// MergePolicy describes how a field from a more specific level combines
// with the value accumulated from less specific levels.
type MergePolicy int

const (
	// MergeOverwrite replaces the accumulated value entirely.
	MergeOverwrite MergePolicy = iota

	// MergeMapKeys unions keys across levels; the later level wins per key.
	MergeMapKeys

	// MergeReplaceObject replaces the accumulated object entirely. Sub-fields
	// of a less specific object are never carried over.
	MergeReplaceObject
)

// fieldMergePolicies lists every field that does not use MergeOverwrite.
//
// env merges per key while cache is replaced as a whole object. The two look
// inconsistent but consumers of resolved profiles rely on the difference:
// setting cache.key in a child profile must not re-enable a cache the
// parent disabled. Do not unify them.
var fieldMergePolicies = map[string]MergePolicy{
	entities.FieldEnv:   MergeMapKeys,
	entities.FieldCache: MergeReplaceObject,
}

// PolicyFor returns the merge policy of a field.
func PolicyFor(field string) MergePolicy {
	if policy, ok := fieldMergePolicies[field]; ok {
		return policy
	}
	return MergeOverwrite
}

// ProfileMerger flattens an extends chain for one platform.
// This is a DOMAIN SERVICE because merge semantics are business rules.
//
// Merge Semantics:
//   - Pass 1 applies each level's common fields, root to leaf.
//   - Pass 2 applies each level's platform overlay, root to leaf, on top of
//     the merged common fields.
//   - Per-field policy comes from PolicyFor.
//   - A field explicitly set to null counts as not set at that level.
//   - extends and platform keys are never copied into the result.
//   - distribution and credentialsSource get their defaults when no level
//     set them.
//
// The result is an untyped candidate for schema validation; inputs are
// never mutated.
type ProfileMerger struct{}

// NewProfileMerger creates a new profile merger service.
func NewProfileMerger() *ProfileMerger {
	return &ProfileMerger{}
}

// Merge flattens the chain (root-most first) for the platform.
func (m *ProfileMerger) Merge(
	chain []*entities.ProfileDefinition,
	platform values.Platform,
) map[string]any {
	merged := make(map[string]any)

	for _, def := range chain {
		m.applyLevel(merged, def.Fields)
	}
	for _, def := range chain {
		m.applyLevel(merged, def.PlatformFields(platform))
	}

	m.applyDefaults(merged)
	return merged
}

// applyLevel merges one level's fields into dst (mutates dst).
func (m *ProfileMerger) applyLevel(dst, level map[string]any) {
	for key, value := range level {
		if isStructuralKey(key) || value == nil {
			continue
		}

		switch PolicyFor(key) {
		case MergeMapKeys:
			dst[key] = m.mergeMapKeys(dst[key], value)
		case MergeReplaceObject, MergeOverwrite:
			dst[key] = DeepCopyValue(value)
		}
	}
}

// mergeMapKeys unions two maps with overlay winning per key.
// A non-map overlay replaces the base unchanged so the schema validator
// reports it.
func (m *ProfileMerger) mergeMapKeys(base, overlay any) any {
	overlayMap, ok := overlay.(map[string]any)
	if !ok {
		return DeepCopyValue(overlay)
	}

	baseMap, _ := base.(map[string]any)
	result := make(map[string]any, len(baseMap)+len(overlayMap))
	for k, v := range baseMap {
		result[k] = v
	}
	for k, v := range overlayMap {
		if v == nil {
			continue
		}
		result[k] = DeepCopyValue(v)
	}
	return result
}

// applyDefaults fills fields no level of the chain defined.
func (m *ProfileMerger) applyDefaults(merged map[string]any) {
	if _, ok := merged[entities.FieldDistribution]; !ok {
		merged[entities.FieldDistribution] = string(values.DefaultDistribution)
	}
	if _, ok := merged[entities.FieldCredentialsSource]; !ok {
		merged[entities.FieldCredentialsSource] = string(values.DefaultCredentialsSource)
	}
}

// isStructuralKey reports keys that shape the document rather than the build.
func isStructuralKey(key string) bool {
	return key == entities.FieldExtends || values.IsPlatformKey(key)
}
