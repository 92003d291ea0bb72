package output

import (
	"fmt"
	"io"
	"slices"

	"github.com/buildprofile/buildprofile/internal/application/ports"
)

// Format names.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatSARIF = "sarif"
)

// FormatterFactory creates profile and report formatters by name.
type FormatterFactory struct{}

// NewFormatterFactory creates a new formatter factory.
func NewFormatterFactory() *FormatterFactory {
	return &FormatterFactory{}
}

// CreateProfileFormatter returns a formatter for resolved profiles.
func (f *FormatterFactory) CreateProfileFormatter(
	format string,
	writer io.Writer,
	options ports.FormatterOptions,
) (ports.ProfileFormatter, error) {
	switch format {
	case FormatTable:
		return NewTableFormatter(writer, options.EnableColor), nil
	case FormatJSON:
		return NewJSONFormatter(writer, options.Indent), nil
	case FormatYAML:
		return NewYAMLFormatter(writer), nil
	default:
		return nil, fmt.Errorf(
			"unknown format: %s (supported: %v)",
			format, f.SupportedProfileFormats(),
		)
	}
}

// CreateReportFormatter returns a formatter for validation reports.
func (f *FormatterFactory) CreateReportFormatter(
	format string,
	writer io.Writer,
	options ports.FormatterOptions,
) (ports.ReportFormatter, error) {
	switch format {
	case FormatTable:
		return NewTableFormatter(writer, options.EnableColor), nil
	case FormatJSON:
		return NewJSONFormatter(writer, options.Indent), nil
	case FormatYAML:
		return NewYAMLFormatter(writer), nil
	case FormatSARIF:
		return NewSARIFFormatter(writer, options.ConfigPath), nil
	default:
		return nil, fmt.Errorf(
			"unknown format: %s (supported: %v)",
			format, f.SupportedReportFormats(),
		)
	}
}

// SupportedProfileFormats returns the formats resolve and list accept.
func (f *FormatterFactory) SupportedProfileFormats() []string {
	return []string{FormatTable, FormatJSON, FormatYAML}
}

// SupportedReportFormats returns the formats validate accepts.
func (f *FormatterFactory) SupportedReportFormats() []string {
	return append(f.SupportedProfileFormats(), FormatSARIF)
}

// IsSupported reports whether format is known to the factory.
func (f *FormatterFactory) IsSupported(format string) bool {
	return slices.Contains(f.SupportedReportFormats(), format)
}
