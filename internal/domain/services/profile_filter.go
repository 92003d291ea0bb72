package services

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/buildprofile/buildprofile/internal/domain/entities"
)

// maxFilterNodes limits filter expression complexity.
const maxFilterNodes = 1000

// ProfileEnv defines the variables available during filter expression evaluation.
type ProfileEnv struct {
	Name              string            `expr:"name"`
	Platform          string            `expr:"platform"`
	Distribution      string            `expr:"distribution"`
	CredentialsSource string            `expr:"credentialsSource"`
	DevelopmentClient bool              `expr:"developmentClient"`
	Node              string            `expr:"node"`
	BuildType         string            `expr:"buildType"`
	Env               map[string]string `expr:"env"`
	CacheDisabled     bool              `expr:"cacheDisabled"`
}

// NewProfileEnv builds the evaluation environment for a resolved profile.
func NewProfileEnv(p *entities.ResolvedProfile) ProfileEnv {
	env := ProfileEnv{
		Name:              p.Name,
		Platform:          p.Platform.String(),
		Distribution:      string(p.Distribution),
		CredentialsSource: string(p.CredentialsSource),
		DevelopmentClient: p.IsDevelopmentClient(),
		Node:              p.NodeVersion(),
		BuildType:         p.BuildTypeOrEmpty(),
		Env:               p.Env,
	}
	if env.Env == nil {
		env.Env = map[string]string{}
	}
	if p.Cache != nil && p.Cache.Disabled != nil {
		env.CacheDisabled = *p.Cache.Disabled
	}
	return env
}

// ProfileFilter selects resolved profiles with an expr boolean expression,
// e.g. `distribution == "internal" && developmentClient`.
type ProfileFilter struct {
	expression string
	program    *vm.Program
}

// NewProfileFilter compiles the expression against ProfileEnv.
func NewProfileFilter(expression string) (*ProfileFilter, error) {
	program, err := expr.Compile(expression,
		expr.Env(ProfileEnv{}),
		expr.AsBool(),
		expr.MaxNodes(maxFilterNodes),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression %q: %w", expression, err)
	}
	return &ProfileFilter{expression: expression, program: program}, nil
}

// Matches evaluates the filter against a resolved profile.
func (f *ProfileFilter) Matches(p *entities.ResolvedProfile) (bool, error) {
	output, err := expr.Run(f.program, NewProfileEnv(p))
	if err != nil {
		return false, fmt.Errorf("filter expression error: %w", err)
	}

	result, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("filter expression did not return boolean: %v", output)
	}
	return result, nil
}

// String returns the source expression.
func (f *ProfileFilter) String() string {
	return f.expression
}
