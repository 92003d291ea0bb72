package output

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/buildprofile/buildprofile/internal/application/dto"
	"github.com/buildprofile/buildprofile/internal/domain/entities"
)

// YAMLFormatter formats profiles and reports as YAML.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// FormatProfiles writes a single profile as a mapping and several as a sequence.
func (f *YAMLFormatter) FormatProfiles(profiles []*entities.ResolvedProfile) error {
	docs := newProfileDocuments(profiles)
	if len(docs) == 1 {
		return f.encode(docs[0])
	}
	return f.encode(docs)
}

// FormatNames writes the names as a sequence.
func (f *YAMLFormatter) FormatNames(names []string) error {
	if names == nil {
		names = []string{}
	}
	return f.encode(names)
}

// FormatReport writes the validation report.
func (f *YAMLFormatter) FormatReport(report *dto.ValidationReport) error {
	return f.encode(newReportDocument(report))
}

func (f *YAMLFormatter) encode(v any) error {
	encoder := yaml.NewEncoder(f.writer, yaml.Indent(2))

	if err := encoder.Encode(v); err != nil {
		return err
	}

	return encoder.Close()
}
