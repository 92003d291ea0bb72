// Package output provides formatters for resolved build profiles and
// validation reports.
package output

import (
	"github.com/buildprofile/buildprofile/internal/application/dto"
	"github.com/buildprofile/buildprofile/internal/domain/entities"
)

// profileDocument is the serialized form of a resolved profile.
type profileDocument struct {
	Name              string                  `json:"name" yaml:"name"`
	Platform          string                  `json:"platform" yaml:"platform"`
	Distribution      string                  `json:"distribution" yaml:"distribution"`
	CredentialsSource string                  `json:"credentialsSource" yaml:"credentialsSource"`
	DevelopmentClient *bool                   `json:"developmentClient,omitempty" yaml:"developmentClient,omitempty"`
	Node              *string                 `json:"node,omitempty" yaml:"node,omitempty"`
	BuildType         *string                 `json:"buildType,omitempty" yaml:"buildType,omitempty"`
	Env               map[string]string       `json:"env,omitempty" yaml:"env,omitempty"`
	Cache             *entities.CacheSettings `json:"cache,omitempty" yaml:"cache,omitempty"`
}

func newProfileDocuments(profiles []*entities.ResolvedProfile) []profileDocument {
	docs := make([]profileDocument, 0, len(profiles))
	for _, p := range profiles {
		docs = append(docs, profileDocument{
			Name:              p.Name,
			Platform:          string(p.Platform),
			Distribution:      string(p.Distribution),
			CredentialsSource: string(p.CredentialsSource),
			DevelopmentClient: p.DevelopmentClient,
			Node:              p.Node,
			BuildType:         p.BuildType,
			Env:               p.Env,
			Cache:             p.Cache,
		})
	}
	return docs
}

// reportDocument is the serialized form of a validation report.
type reportDocument struct {
	Config   string            `json:"config,omitempty" yaml:"config,omitempty"`
	Checked  int               `json:"checked" yaml:"checked"`
	Valid    bool              `json:"valid" yaml:"valid"`
	Problems []problemDocument `json:"problems" yaml:"problems"`
}

type problemDocument struct {
	Profile    string              `json:"profile" yaml:"profile"`
	Platform   string              `json:"platform" yaml:"platform"`
	Error      string              `json:"error" yaml:"error"`
	Violations []violationDocument `json:"violations,omitempty" yaml:"violations,omitempty"`
}

type violationDocument struct {
	Field      string   `json:"field" yaml:"field"`
	Constraint string   `json:"constraint" yaml:"constraint"`
	Message    string   `json:"message" yaml:"message"`
	Allowed    []string `json:"allowed,omitempty" yaml:"allowed,omitempty"`
}

func newReportDocument(report *dto.ValidationReport) reportDocument {
	doc := reportDocument{
		Config:   report.ConfigPath,
		Checked:  report.Checked,
		Valid:    !report.HasProblems(),
		Problems: make([]problemDocument, 0, len(report.Problems)),
	}

	for _, p := range report.Problems {
		pd := problemDocument{
			Profile:  p.Profile,
			Platform: p.PlatformLabel(),
			Error:    p.Err.Error(),
		}
		for _, v := range p.Violations() {
			pd.Violations = append(pd.Violations, violationDocument{
				Field:      v.Field,
				Constraint: v.Constraint,
				Message:    v.Message,
				Allowed:    v.Allowed,
			})
		}
		doc.Problems = append(doc.Problems, pd)
	}
	return doc
}
