// Package dto contains data transfer objects for application layer use cases.
package dto

import (
	"github.com/buildprofile/buildprofile/internal/domain/values"
)

// ResolveRequest selects a profile and the platforms to resolve it for.
type ResolveRequest struct {
	ProfileName string
	Platforms   []values.Platform
}

// ListRequest selects profile names, optionally filtered by an expression
// evaluated against each profile resolved for Platform.
type ListRequest struct {
	FilterExpression string
	Platform         values.Platform
}
