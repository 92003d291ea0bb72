// Package validation checks merged build profiles against the profile schema.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	apperrors "github.com/buildprofile/buildprofile/internal/application/errors"
	"github.com/buildprofile/buildprofile/internal/domain/values"
)

// SchemaValidator validates merged profile candidates.
// One schema per platform is compiled up front; the validator is safe for
// concurrent use.
type SchemaValidator struct {
	schemas map[values.Platform]*jsonschema.Schema
}

// NewSchemaValidator compiles the profile schema for every platform.
func NewSchemaValidator() (*SchemaValidator, error) {
	v := &SchemaValidator{schemas: make(map[values.Platform]*jsonschema.Schema)}

	for _, platform := range values.AllPlatforms() {
		schema, err := compileSchema(platform)
		if err != nil {
			return nil, fmt.Errorf("failed to compile profile schema for %s: %w", platform, err)
		}
		v.schemas[platform] = schema
	}

	return v, nil
}

func compileSchema(platform values.Platform) (*jsonschema.Schema, error) {
	schemaBytes, err := json.Marshal(schemaFor(platform))
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("buildprofile-%s.json", platform)

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(url, bytes.NewReader(schemaBytes)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	return compiler.Compile(url)
}

// Validate returns every violation in candidate, ordered by field path.
func (v *SchemaValidator) Validate(
	candidate map[string]any,
	profileName string,
	platform values.Platform,
) []*apperrors.ValidationError {
	schema, ok := v.schemas[platform]
	if !ok {
		return []*apperrors.ValidationError{
			apperrors.NewValidationError("build."+profileName, apperrors.ConstraintEnum,
				fmt.Sprintf("unsupported platform %q", platform)),
		}
	}

	var errs []*apperrors.ValidationError

	if err := schema.Validate(candidate); err != nil {
		var schemaErr *jsonschema.ValidationError
		if !errors.As(err, &schemaErr) {
			return []*apperrors.ValidationError{
				apperrors.NewValidationError("build."+profileName, apperrors.ConstraintType, err.Error()),
			}
		}
		for _, leaf := range leafErrors(schemaErr) {
			errs = append(errs, convertSchemaError(leaf, candidate, profileName, platform))
		}
	}

	errs = append(errs, checkFormats(candidate, profileName, platform)...)

	slices.SortStableFunc(errs, func(a, b *apperrors.ValidationError) int {
		if c := strings.Compare(a.Field, b.Field); c != 0 {
			return c
		}
		return strings.Compare(a.Constraint, b.Constraint)
	})
	return errs
}

// Check returns nil or every violation as apperrors.ValidationErrors.
func (v *SchemaValidator) Check(candidate map[string]any, profileName string, platform values.Platform) error {
	errs := v.Validate(candidate, profileName, platform)
	if len(errs) == 0 {
		return nil
	}
	return apperrors.ValidationErrors(errs)
}

// leafErrors collects the innermost errors of a schema error tree.
func leafErrors(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		leaves = append(leaves, leafErrors(cause)...)
	}
	return leaves
}

// convertSchemaError maps a schema error onto a field path and a message
// phrased from the rule table.
func convertSchemaError(
	err *jsonschema.ValidationError,
	candidate map[string]any,
	profileName string,
	platform values.Platform,
) *apperrors.ValidationError {
	segments := pointerSegments(err.InstanceLocation)
	value, _ := lookup(candidate, segments)
	field := fieldPath(profileName, platform, segments)

	keyword := lastSegment(err.KeywordLocation)
	switch keyword {
	case "enum":
		allowed := enumFor(segments, platform)
		return &apperrors.ValidationError{
			Field:      field,
			Constraint: apperrors.ConstraintEnum,
			Message:    fmt.Sprintf("%s is not allowed, must be one of [%s]", describe(value), strings.Join(allowed, ", ")),
			Allowed:    allowed,
			Value:      value,
		}
	case "type":
		return &apperrors.ValidationError{
			Field:      field,
			Constraint: apperrors.ConstraintType,
			Message:    fmt.Sprintf("must be %s, got %s", expectedKind(segments), kindOf(value)),
			Value:      value,
		}
	default:
		return &apperrors.ValidationError{
			Field:      field,
			Constraint: keyword,
			Message:    err.Message,
			Value:      value,
		}
	}
}

// checkFormats runs format rules on values that already have the right type.
func checkFormats(candidate map[string]any, profileName string, platform values.Platform) []*apperrors.ValidationError {
	var errs []*apperrors.ValidationError
	for _, r := range profileRules {
		if r.Format != formatSemver {
			continue
		}
		s, ok := candidate[r.Name].(string)
		if !ok {
			continue
		}
		if err := checkNodeVersion(s); err != nil {
			errs = append(errs, &apperrors.ValidationError{
				Field:      fieldPath(profileName, platform, []string{r.Name}),
				Constraint: apperrors.ConstraintFormat,
				Message:    fmt.Sprintf("%q is not a valid version: %v", s, err),
				Value:      s,
			})
		}
	}
	return errs
}

// checkNodeVersion accepts MAJOR.MINOR.PATCH only. Node.js release
// versions carry no pre-release or build metadata.
func checkNodeVersion(s string) error {
	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return errors.New("expected MAJOR.MINOR.PATCH")
	}
	if v.Prerelease() != "" || v.Metadata() != "" {
		return errors.New("pre-release and build metadata are not allowed")
	}
	return nil
}

// fieldPath renders a dotted path. Platform-scoped fields are reported
// under the platform key.
func fieldPath(profileName string, platform values.Platform, segments []string) string {
	parts := []string{"build", profileName}
	if len(segments) > 0 {
		if r, ok := ruleFor(segments[0]); ok && r.Platform {
			parts = append(parts, string(platform))
		}
	}
	return strings.Join(append(parts, segments...), ".")
}

func enumFor(segments []string, platform values.Platform) []string {
	if len(segments) == 0 {
		return nil
	}
	r, ok := ruleFor(segments[0])
	if !ok || r.Enum == nil {
		return nil
	}
	return r.Enum(platform)
}

// expectedKind describes the kind the rule table requires at segments.
func expectedKind(segments []string) string {
	if len(segments) == 0 {
		return "an object"
	}
	r, ok := ruleFor(segments[0])
	if !ok {
		return "valid"
	}
	for _, seg := range segments[1:] {
		switch r.Kind {
		case kindStringMap, kindStrings:
			return "a string"
		case kindObject:
			sub, found := findRule(r.Properties, seg)
			if !found {
				return "valid"
			}
			r = sub
		}
	}
	switch r.Kind {
	case kindBool:
		return "a boolean"
	case kindStringMap:
		return "an object of strings"
	case kindObject:
		return "an object"
	case kindStrings:
		return "an array of strings"
	default:
		return "a string"
	}
}

func findRule(rules []fieldRule, name string) (fieldRule, bool) {
	for _, r := range rules {
		if r.Name == name {
			return r, true
		}
	}
	return fieldRule{}, false
}

// pointerSegments splits a JSON pointer such as "/cache/customPaths/0".
func pointerSegments(pointer string) []string {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return nil
	}
	segments := strings.Split(pointer, "/")
	for i, s := range segments {
		s = strings.ReplaceAll(s, "~1", "/")
		segments[i] = strings.ReplaceAll(s, "~0", "~")
	}
	return segments
}

func lastSegment(pointer string) string {
	segments := pointerSegments(pointer)
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

// lookup follows segments through nested objects and arrays.
func lookup(v any, segments []string) (any, bool) {
	for _, seg := range segments {
		switch t := v.(type) {
		case map[string]any:
			next, ok := t[seg]
			if !ok {
				return nil, false
			}
			v = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(t) {
				return nil, false
			}
			v = t[i]
		default:
			return nil, false
		}
	}
	return v, true
}

func describe(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return kindOf(v)
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, uint64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

