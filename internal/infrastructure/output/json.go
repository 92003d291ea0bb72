package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/buildprofile/buildprofile/internal/application/dto"
	"github.com/buildprofile/buildprofile/internal/domain/entities"
)

// JSONFormatter formats profiles and reports as JSON.
type JSONFormatter struct {
	writer io.Writer
	indent bool
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(w io.Writer, indent bool) *JSONFormatter {
	return &JSONFormatter{writer: w, indent: indent}
}

// FormatProfiles writes a single profile as an object and several as an array.
func (f *JSONFormatter) FormatProfiles(profiles []*entities.ResolvedProfile) error {
	docs := newProfileDocuments(profiles)
	if len(docs) == 1 {
		return f.encode(docs[0])
	}
	return f.encode(docs)
}

// FormatNames writes the names as an array.
func (f *JSONFormatter) FormatNames(names []string) error {
	if names == nil {
		names = []string{}
	}
	return f.encode(names)
}

// FormatReport writes the validation report.
func (f *JSONFormatter) FormatReport(report *dto.ValidationReport) error {
	return f.encode(newReportDocument(report))
}

func (f *JSONFormatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	if f.indent {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
