package entities

import (
	"fmt"
	"strings"
)

// ProfileNotFoundError indicates the requested profile is not declared.
type ProfileNotFoundError struct {
	Name  string
	Known []string
}

func (e *ProfileNotFoundError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("build profile %q not found: no build profiles are defined", e.Name)
	}
	return fmt.Sprintf(
		"build profile %q not found (available profiles: %s)",
		e.Name, strings.Join(e.Known, ", "),
	)
}

// ExtendsTargetMissingError indicates an extends reference to an undeclared profile.
type ExtendsTargetMissingError struct {
	Profile string // profile holding the reference
	Target  string // missing profile name
}

func (e *ExtendsTargetMissingError) Error() string {
	return fmt.Sprintf("build profile %q extends %q, which does not exist", e.Profile, e.Target)
}

// ExtendsCycleError indicates circular inheritance. Cycle lists the
// profile names in walk order, ending with the revisited name.
type ExtendsCycleError struct {
	Cycle []string
}

func (e *ExtendsCycleError) Error() string {
	return fmt.Sprintf("circular extends detected: %s", strings.Join(e.Cycle, " -> "))
}
