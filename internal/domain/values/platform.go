// Package values contains value objects for the build profile domain.
package values

import (
	"fmt"
	"strings"
)

// Platform is a build target platform. A profile's platform overlay
// (the "android" or "ios" sub-object) applies only when resolving for
// the matching platform.
type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
)

// AllPlatforms returns every supported platform in a stable order.
func AllPlatforms() []Platform {
	return []Platform{PlatformAndroid, PlatformIOS}
}

// ParsePlatform converts a user-supplied string into a Platform.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformAndroid:
		return PlatformAndroid, nil
	case PlatformIOS:
		return PlatformIOS, nil
	default:
		return "", fmt.Errorf("invalid platform: %q (valid: android, ios)", s)
	}
}

// ParsePlatforms expands a platform selector. "all" selects every platform.
func ParsePlatforms(s string) ([]Platform, error) {
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		return AllPlatforms(), nil
	}
	p, err := ParsePlatform(s)
	if err != nil {
		return nil, err
	}
	return []Platform{p}, nil
}

// IsPlatformKey reports whether a profile field name is a platform overlay key.
func IsPlatformKey(key string) bool {
	for _, p := range AllPlatforms() {
		if string(p) == key {
			return true
		}
	}
	return false
}

// String returns the string representation
func (p Platform) String() string {
	return string(p)
}

// BuildTypes returns the buildType values allowed for the platform.
// The sets are disjoint across platforms.
func (p Platform) BuildTypes() []string {
	switch p {
	case PlatformAndroid:
		return []string{string(BuildTypeAPK), string(BuildTypeAppBundle)}
	case PlatformIOS:
		return []string{string(BuildTypeRelease), string(BuildTypeDevelopmentClient)}
	default:
		return nil
	}
}
