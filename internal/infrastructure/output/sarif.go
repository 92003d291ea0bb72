package output

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/buildprofile/buildprofile/internal/application/dto"
	"github.com/buildprofile/buildprofile/internal/version"
)

// SARIFFormatter formats validation reports as SARIF 2.1.0 JSON.
// Constraint kinds map to SARIF rules and each violation to a result
// located in the configuration document.
//
// Usage:
//
//	formatter := output.NewSARIFFormatter(os.Stdout, "buildprofile.json")
//	if err := formatter.FormatReport(report); err != nil {
//	    log.Fatal(err)
//	}
type SARIFFormatter struct {
	writer     io.Writer
	configPath string
}

// NewSARIFFormatter creates a new SARIF formatter.
// configPath is used as the artifact location of every result.
func NewSARIFFormatter(writer io.Writer, configPath string) *SARIFFormatter {
	return &SARIFFormatter{
		writer:     writer,
		configPath: configPath,
	}
}

// FormatReport writes the validation report as SARIF 2.1.0 JSON.
func (f *SARIFFormatter) FormatReport(report *dto.ValidationReport) error {
	sarifReport := sarif.NewReport()

	run := sarif.NewRunWithInformationURI("buildprofile", "https://github.com/buildprofile/buildprofile")
	toolVersion := version.Get().Version
	run.Tool.Driver.Version = &toolVersion

	mapper := newSARIFMapper(report, f.configPath)
	mapper.mapToRun(run)

	sarifReport.AddRun(run)

	if err := sarifReport.Write(f.writer); err != nil {
		return fmt.Errorf("failed to write SARIF output: %w", err)
	}

	_, err := f.writer.Write([]byte("\n"))
	return err
}
