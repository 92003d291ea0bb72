package validation

import (
	"github.com/buildprofile/buildprofile/internal/domain/entities"
	"github.com/buildprofile/buildprofile/internal/domain/values"
)

// valueKind is the JSON kind a field must have.
type valueKind string

const (
	kindString    valueKind = "string"
	kindBool      valueKind = "boolean"
	kindStringMap valueKind = "stringMap"
	kindObject    valueKind = "object"
	kindStrings   valueKind = "stringList"
)

// formatSemver marks fields holding a MAJOR.MINOR.PATCH version.
const formatSemver = "semver"

// fieldRule declares the constraints of one profile field.
// Adding a field means adding a row here; the JSON schema and the error
// paths are derived from the table.
type fieldRule struct {
	Name string
	Kind valueKind

	// Enum lists the legal values. For platform-scoped fields the list
	// depends on the platform.
	Enum       func(values.Platform) []string
	Format     string
	Platform   bool
	Properties []fieldRule
}

func fixed(allowed []string) func(values.Platform) []string {
	return func(values.Platform) []string { return allowed }
}

var profileRules = []fieldRule{
	{Name: entities.FieldDistribution, Kind: kindString, Enum: fixed(values.Distributions())},
	{Name: entities.FieldCredentialsSource, Kind: kindString, Enum: fixed(values.CredentialsSources())},
	{Name: entities.FieldDevelopmentClient, Kind: kindBool},
	{Name: entities.FieldNode, Kind: kindString, Format: formatSemver},
	{Name: entities.FieldEnv, Kind: kindStringMap},
	{Name: entities.FieldCache, Kind: kindObject, Properties: []fieldRule{
		{Name: entities.CacheFieldDisabled, Kind: kindBool},
		{Name: entities.CacheFieldKey, Kind: kindString},
		{Name: entities.CacheFieldCacheDefaultPaths, Kind: kindBool},
		{Name: entities.CacheFieldCustomPaths, Kind: kindStrings},
	}},
	{Name: entities.FieldBuildType, Kind: kindString, Enum: values.Platform.BuildTypes, Platform: true},
}

// ruleFor finds the top-level rule of a field.
func ruleFor(name string) (fieldRule, bool) {
	for _, r := range profileRules {
		if r.Name == name {
			return r, true
		}
	}
	return fieldRule{}, false
}

// schemaFor renders the rule table as a JSON Schema document for platform.
// Unknown fields are allowed.
func schemaFor(platform values.Platform) map[string]any {
	return map[string]any{
		"$schema":    "https://json-schema.org/draft/2020-12/schema",
		"type":       "object",
		"properties": propertiesSchema(profileRules, platform),
	}
}

func propertiesSchema(rules []fieldRule, platform values.Platform) map[string]any {
	props := make(map[string]any, len(rules))
	for _, r := range rules {
		props[r.Name] = ruleSchema(r, platform)
	}
	return props
}

func ruleSchema(r fieldRule, platform values.Platform) map[string]any {
	// Enum alone also rejects values of the wrong type, so each bad value
	// yields exactly one violation.
	if r.Enum != nil {
		return map[string]any{"enum": r.Enum(platform)}
	}

	switch r.Kind {
	case kindBool:
		return map[string]any{"type": "boolean"}
	case kindStringMap:
		return map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "string"},
		}
	case kindStrings:
		return map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		}
	case kindObject:
		return map[string]any{
			"type":       "object",
			"properties": propertiesSchema(r.Properties, platform),
		}
	default:
		return map[string]any{"type": "string"}
	}
}
