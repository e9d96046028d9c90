package ruleset

import (
	"sort"
	"strings"
)

// ClassRegistry provides case-insensitive lookup of classes by ID.
type ClassRegistry struct {
	classes map[string]*Class
}

// NewClassRegistry returns a registry holding classes.
//
// Precondition: every class must be non-nil with a non-empty ID.
// Postcondition: each class is retrievable via Class using any casing of its ID;
// if two classes share an ID, the last one wins.
func NewClassRegistry(classes []*Class) *ClassRegistry {
	r := &ClassRegistry{classes: make(map[string]*Class, len(classes))}
	for _, c := range classes {
		if c == nil || c.ID == "" {
			panic("ruleset.NewClassRegistry: precondition violated: class must be non-nil with a non-empty ID")
		}
		r.classes[strings.ToLower(c.ID)] = c
	}
	return r
}

// Class returns the class for id, matching case-insensitively.
//
// Postcondition: Returns the registered Class and true, or nil and false if not found.
func (r *ClassRegistry) Class(id string) (*Class, bool) {
	c, ok := r.classes[strings.ToLower(strings.TrimSpace(id))]
	return c, ok
}

// All returns every class ordered by Order, then ID.
func (r *ClassRegistry) All() []*Class {
	out := make([]*Class, 0, len(r.classes))
	for _, c := range r.classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Names returns the display names of every class in menu order.
func (r *ClassRegistry) Names() []string {
	all := r.All()
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.Name
	}
	return names
}
