package services

import (
	"slices"

	"github.com/buildprofile/buildprofile/internal/domain/entities"
)

// InheritanceResolver computes extends chains.
//
// Inheritance is a graph of names, not pointers: each definition refers
// to its parent by name and the walk looks the name up in the document.
// Cycles are detected with a visited-name set, so the walk terminates on
// any finite document without a depth limit.
type InheritanceResolver struct{}

// NewInheritanceResolver creates a new inheritance resolver.
func NewInheritanceResolver() *InheritanceResolver {
	return &InheritanceResolver{}
}

// ResolveChain returns the ancestors of the named profile followed by the
// profile itself, root-most first.
func (r *InheritanceResolver) ResolveChain(
	doc *entities.ConfigDocument,
	name string,
) ([]*entities.ProfileDefinition, error) {
	current, ok := doc.Profile(name)
	if !ok {
		return nil, &entities.ProfileNotFoundError{Name: name, Known: doc.ProfileNames()}
	}

	visited := make(map[string]bool)
	var walk []string
	var chain []*entities.ProfileDefinition

	for {
		if visited[current.Name] {
			return nil, &entities.ExtendsCycleError{Cycle: cycleFrom(walk, current.Name)}
		}
		visited[current.Name] = true
		walk = append(walk, current.Name)
		chain = append(chain, current)

		if !current.HasParent() {
			break
		}

		parent, ok := doc.Profile(current.Extends)
		if !ok {
			return nil, &entities.ExtendsTargetMissingError{
				Profile: current.Name,
				Target:  current.Extends,
			}
		}
		current = parent
	}

	// Walked leaf to root.
	slices.Reverse(chain)
	return chain, nil
}

// cycleFrom cuts the walk at the first occurrence of the revisited name
// and closes the loop, e.g. [release a b] + a => [a b a].
func cycleFrom(walk []string, revisited string) []string {
	start := slices.Index(walk, revisited)
	if start < 0 {
		start = 0
	}
	cycle := make([]string, 0, len(walk)-start+1)
	cycle = append(cycle, walk[start:]...)
	return append(cycle, revisited)
}
