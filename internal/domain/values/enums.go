package values

// Distribution controls how a build is distributed.
type Distribution string

const (
	DistributionStore    Distribution = "store"
	DistributionInternal Distribution = "internal"
)

// DefaultDistribution applies when no profile in the chain sets distribution.
const DefaultDistribution = DistributionStore

// Distributions lists the legal distribution values.
func Distributions() []string {
	return []string{string(DistributionStore), string(DistributionInternal)}
}

// CredentialsSource selects where signing credentials come from.
type CredentialsSource string

const (
	CredentialsSourceRemote CredentialsSource = "remote"
	CredentialsSourceLocal  CredentialsSource = "local"
)

// DefaultCredentialsSource applies when no profile in the chain sets credentialsSource.
const DefaultCredentialsSource = CredentialsSourceRemote

// CredentialsSources lists the legal credentialsSource values.
func CredentialsSources() []string {
	return []string{string(CredentialsSourceRemote), string(CredentialsSourceLocal)}
}

// BuildType is a platform-specific artifact kind.
type BuildType string

// Android build types.
const (
	BuildTypeAPK       BuildType = "apk"
	BuildTypeAppBundle BuildType = "app-bundle"
)

// iOS build types.
const (
	BuildTypeRelease           BuildType = "release"
	BuildTypeDevelopmentClient BuildType = "development-client"
)
