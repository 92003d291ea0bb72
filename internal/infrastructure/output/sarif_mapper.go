package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/buildprofile/buildprofile/internal/application/dto"
	apperrors "github.com/buildprofile/buildprofile/internal/application/errors"
)

// ruleResolution covers failures that are not schema violations:
// unknown profiles, broken extends references and cycles.
const ruleResolution = "resolution"

var ruleDescriptions = map[string]string{
	apperrors.ConstraintType:   "Field value has the wrong type",
	apperrors.ConstraintEnum:   "Field value is not one of the allowed values",
	apperrors.ConstraintFormat: "Field value does not match the required format",
	ruleResolution:             "Build profile cannot be resolved",
}

var ruleOrder = []string{
	apperrors.ConstraintType,
	apperrors.ConstraintEnum,
	apperrors.ConstraintFormat,
	ruleResolution,
}

type sarifMapper struct {
	report     *dto.ValidationReport
	configPath string
	cwd        string
}

func newSARIFMapper(report *dto.ValidationReport, configPath string) *sarifMapper {
	cwd, _ := os.Getwd() // Best effort, ignore error
	return &sarifMapper{
		report:     report,
		configPath: configPath,
		cwd:        cwd,
	}
}

// mapToRun populates the SARIF run with rules, results, artifacts, and invocations.
func (m *sarifMapper) mapToRun(run *sarif.Run) {
	m.addRules(run)
	m.addResults(run)
	m.addArtifacts(run)
	m.addInvocation(run)
	m.addProperties(run)
}

// addRules declares one rule per constraint kind.
func (m *sarifMapper) addRules(run *sarif.Run) {
	for _, id := range ruleOrder {
		desc := ruleDescriptions[id]
		rule := sarif.NewReportingDescriptor().WithID(id)
		rule.WithName(id)
		rule.WithShortDescription(&sarif.MultiformatMessageString{
			Text: &desc,
		})
		rule.WithDefaultConfiguration(&sarif.ReportingConfiguration{
			Level: "error",
		})
		run.Tool.Driver.AddRule(rule)
	}
}

// addResults emits one result per violation, or one per problem when the
// problem is not a schema violation.
func (m *sarifMapper) addResults(run *sarif.Run) {
	for _, problem := range m.report.Problems {
		violations := problem.Violations()
		if len(violations) == 0 {
			result := m.newResult(ruleResolution, problem.Err.Error())
			result.WithProperties(m.problemProperties(problem, ""))
			run.AddResult(result)
			continue
		}

		for _, v := range violations {
			ruleID := v.Constraint
			if _, known := ruleDescriptions[ruleID]; !known {
				ruleID = apperrors.ConstraintType
			}
			result := m.newResult(ruleID, fmt.Sprintf("%s: %s", v.Field, v.Message))
			props := m.problemProperties(problem, v.Field)
			if len(v.Allowed) > 0 {
				props.Add("allowed", v.Allowed)
			}
			result.WithProperties(props)
			run.AddResult(result)
		}
	}
}

func (m *sarifMapper) newResult(ruleID, message string) *sarif.Result {
	result := sarif.NewRuleResult(ruleID)
	result.Level = "error"
	result.Kind = "fail"
	result.Message = sarif.NewTextMessage(message)
	if loc := m.location(); loc != nil {
		result.Locations = []*sarif.Location{loc}
	}
	return result
}

func (m *sarifMapper) problemProperties(problem dto.ProfileProblem, field string) *sarif.PropertyBag {
	props := sarif.NewPropertyBag()
	props.Add("profile", problem.Profile)
	props.Add("platform", problem.PlatformLabel())
	if field != "" {
		props.Add("field", field)
	}
	return props
}

func (m *sarifMapper) location() *sarif.Location {
	if m.configPath == "" {
		return nil
	}
	pLoc := sarif.NewPhysicalLocation().
		WithArtifactLocation(sarif.NewArtifactLocation().WithURI(m.normalizeURI(m.configPath)))
	return sarif.NewLocation().WithPhysicalLocation(pLoc)
}

// normalizeURI converts a file path to a SARIF-compliant URI.
func (m *sarifMapper) normalizeURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path) // Fallback to original
	}

	// Try to make relative to CWD
	if m.cwd != "" {
		if rel, err := filepath.Rel(m.cwd, abs); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}

	return "file://" + filepath.ToSlash(abs)
}

// addArtifacts registers the configuration document.
func (m *sarifMapper) addArtifacts(run *sarif.Run) {
	if m.configPath == "" {
		return
	}
	artifact := sarif.NewArtifact().
		WithLocation(sarif.NewArtifactLocation().WithURI(m.normalizeURI(m.configPath)))
	run.AddArtifact(artifact)
}

// addInvocation adds execution metadata to the run.
func (m *sarifMapper) addInvocation(run *sarif.Run) {
	invocation := sarif.NewInvocation()
	invocation.ExecutionSuccessful = ptrBool(true)

	if m.cwd != "" {
		cwd := "file://" + filepath.ToSlash(m.cwd)
		invocation.WorkingDirectory = sarif.NewArtifactLocation().WithURI(cwd)
	}

	run.AddInvocation(invocation)
}

// addProperties adds summary statistics to run properties.
func (m *sarifMapper) addProperties(run *sarif.Run) {
	props := sarif.NewPropertyBag()
	props.Add("checked", m.report.Checked)
	props.Add("problems", len(m.report.Problems))
	run.WithProperties(props)
}

func ptrBool(b bool) *bool {
	return &b
}
