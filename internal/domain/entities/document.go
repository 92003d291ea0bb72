package entities

import (
	"sort"
)

// ConfigDocument is the parsed configuration of one project: the set of
// build profiles keyed by name. It is immutable once constructed.
type ConfigDocument struct {
	profiles map[string]*ProfileDefinition
}

// NewConfigDocument creates a document from profile definitions.
// Later definitions with a duplicate name replace earlier ones.
func NewConfigDocument(profiles ...*ProfileDefinition) *ConfigDocument {
	doc := &ConfigDocument{
		profiles: make(map[string]*ProfileDefinition, len(profiles)),
	}
	for _, p := range profiles {
		if p == nil {
			continue
		}
		doc.profiles[p.Name] = p
	}
	return doc
}

// Profile looks up a profile definition by name.
func (d *ConfigDocument) Profile(name string) (*ProfileDefinition, bool) {
	p, ok := d.profiles[name]
	return p, ok
}

// ProfileNames returns the names of all declared profiles, sorted so the
// result does not depend on declaration order.
func (d *ConfigDocument) ProfileNames() []string {
	names := make([]string, 0, len(d.profiles))
	for name := range d.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of declared profiles.
func (d *ConfigDocument) Len() int {
	return len(d.profiles)
}
