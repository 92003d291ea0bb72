package entities

import (
	"github.com/buildprofile/buildprofile/internal/domain/values"
)

// ResolvedProfile is the flat result of resolving a profile for one
// platform: the extends chain and the platform overlay have been merged,
// defaults applied, and the result validated.
//
// Optional members are nil when no level of the chain set them.
type ResolvedProfile struct {
	Name     string          `json:"-" yaml:"-" mapstructure:"-"`
	Platform values.Platform `json:"-" yaml:"-" mapstructure:"-"`

	Distribution      values.Distribution      `json:"distribution" yaml:"distribution" mapstructure:"distribution"`
	CredentialsSource values.CredentialsSource `json:"credentialsSource" yaml:"credentialsSource" mapstructure:"credentialsSource"`
	DevelopmentClient *bool                    `json:"developmentClient,omitempty" yaml:"developmentClient,omitempty" mapstructure:"developmentClient"`
	Node              *string                  `json:"node,omitempty" yaml:"node,omitempty" mapstructure:"node"`
	BuildType         *string                  `json:"buildType,omitempty" yaml:"buildType,omitempty" mapstructure:"buildType"`
	Env               map[string]string        `json:"env,omitempty" yaml:"env,omitempty" mapstructure:"env"`
	Cache             *CacheSettings           `json:"cache,omitempty" yaml:"cache,omitempty" mapstructure:"cache"`
}

// CacheSettings configures build caching. Every member is optional.
type CacheSettings struct {
	Disabled          *bool    `json:"disabled,omitempty" yaml:"disabled,omitempty" mapstructure:"disabled"`
	Key               *string  `json:"key,omitempty" yaml:"key,omitempty" mapstructure:"key"`
	CacheDefaultPaths *bool    `json:"cacheDefaultPaths,omitempty" yaml:"cacheDefaultPaths,omitempty" mapstructure:"cacheDefaultPaths"`
	CustomPaths       []string `json:"customPaths,omitempty" yaml:"customPaths,omitempty" mapstructure:"customPaths"`
}

// IsDevelopmentClient reports whether developmentClient is set and true.
func (p *ResolvedProfile) IsDevelopmentClient() bool {
	return p.DevelopmentClient != nil && *p.DevelopmentClient
}

// NodeVersion returns the node version or "" when unset.
func (p *ResolvedProfile) NodeVersion() string {
	if p.Node == nil {
		return ""
	}
	return *p.Node
}

// BuildTypeOrEmpty returns the build type or "" when unset.
func (p *ResolvedProfile) BuildTypeOrEmpty() string {
	if p.BuildType == nil {
		return ""
	}
	return *p.BuildType
}
