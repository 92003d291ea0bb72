// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"context"

	"github.com/buildprofile/buildprofile/internal/application/dto"
	apperrors "github.com/buildprofile/buildprofile/internal/application/errors"
	"github.com/buildprofile/buildprofile/internal/domain/entities"
	"github.com/buildprofile/buildprofile/internal/domain/values"
)

// DocumentLoader reads the configuration document of a project.
type DocumentLoader interface {
	// Load reads and parses the document under projectDir.
	Load(ctx context.Context, projectDir string) (*entities.ConfigDocument, error)
}

// SchemaValidator checks merged profile candidates.
type SchemaValidator interface {
	// Validate returns every violation, ordered by field path. Empty means valid.
	Validate(candidate map[string]any, profileName string, platform values.Platform) []*apperrors.ValidationError

	// Check returns nil or apperrors.ValidationErrors with every violation.
	Check(candidate map[string]any, profileName string, platform values.Platform) error
}

// ProfileRedactor masks secrets in resolved profiles before they are displayed.
type ProfileRedactor interface {
	RedactProfiles(profiles []*entities.ResolvedProfile) []*entities.ResolvedProfile
}

// ProfileFormatter writes resolved profiles and profile names.
type ProfileFormatter interface {
	FormatProfiles(profiles []*entities.ResolvedProfile) error
	FormatNames(names []string) error
}

// ReportFormatter writes validation reports.
type ReportFormatter interface {
	FormatReport(report *dto.ValidationReport) error
}

// FormatterOptions configures output formatters.
type FormatterOptions struct {
	// ConfigPath is the document the output refers to.
	ConfigPath string

	// Indent pretty-prints structured formats.
	Indent bool

	// EnableColor adds ANSI colors to table output.
	EnableColor bool
}
