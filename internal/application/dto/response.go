package dto

import (
	"errors"

	apperrors "github.com/buildprofile/buildprofile/internal/application/errors"
	"github.com/buildprofile/buildprofile/internal/domain/values"
)

// ProfileProblem is one failed resolution. Platform is empty when the
// failure does not depend on the platform, e.g. an extends cycle.
type ProfileProblem struct {
	Err      error
	Profile  string
	Platform values.Platform
}

// PlatformLabel names the platform the problem applies to.
func (p ProfileProblem) PlatformLabel() string {
	if p.Platform == "" {
		return "all"
	}
	return string(p.Platform)
}

// Violations returns the schema violations behind the problem, if any.
func (p ProfileProblem) Violations() []*apperrors.ValidationError {
	var all apperrors.ValidationErrors
	if errors.As(p.Err, &all) {
		return all
	}
	var single *apperrors.ValidationError
	if errors.As(p.Err, &single) {
		return []*apperrors.ValidationError{single}
	}
	return nil
}

// ValidationReport summarises validation of every profile for every platform.
type ValidationReport struct {
	// ConfigPath is the document location, set by the caller.
	ConfigPath string
	Problems   []ProfileProblem
	Checked    int
}

// HasProblems reports whether any resolution failed.
func (r *ValidationReport) HasProblems() bool {
	return len(r.Problems) > 0
}

// ProblemsFor returns the problems of one profile.
func (r *ValidationReport) ProblemsFor(profile string) []ProfileProblem {
	var out []ProfileProblem
	for _, p := range r.Problems {
		if p.Profile == profile {
			out = append(out, p)
		}
	}
	return out
}
