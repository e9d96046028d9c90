package npc

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ErrUnknownEnemy is returned when an enemy type has no registered template.
var ErrUnknownEnemy = errors.New("unknown enemy type")

// Bestiary indexes enemy templates and spawns instances from them.
type Bestiary struct {
	templates map[string]*Template
	ordered   []*Template // by MinLevel ascending
}

// NewBestiary returns a Bestiary holding templates.
//
// Precondition: every template must be non-nil and valid.
// Postcondition: each template is retrievable case-insensitively by ID.
func NewBestiary(templates []*Template) *Bestiary {
	b := &Bestiary{templates: make(map[string]*Template, len(templates))}
	for _, t := range templates {
		if t == nil {
			panic("npc.NewBestiary: precondition violated: template must be non-nil")
		}
		b.templates[strings.ToLower(t.ID)] = t
	}
	for _, t := range b.templates {
		b.ordered = append(b.ordered, t)
	}
	sort.Slice(b.ordered, func(i, j int) bool {
		if b.ordered[i].MinLevel != b.ordered[j].MinLevel {
			return b.ordered[i].MinLevel < b.ordered[j].MinLevel
		}
		return b.ordered[i].ID < b.ordered[j].ID
	})
	return b
}

// Template returns the template for enemyType, matching case-insensitively.
func (b *Bestiary) Template(enemyType string) (*Template, bool) {
	t, ok := b.templates[strings.ToLower(strings.TrimSpace(enemyType))]
	return t, ok
}

// Len returns the number of registered templates.
func (b *Bestiary) Len() int { return len(b.templates) }

// Spawn creates a fresh enemy of the given type.
//
// Postcondition: Returns a full-health Instance with a unique ID, or ErrUnknownEnemy.
func (b *Bestiary) Spawn(enemyType string) (*Instance, error) {
	t, ok := b.Template(enemyType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnemy, enemyType)
	}
	return NewInstance(uuid.New().String(), t), nil
}

// ForLevel spawns the archetype whose level band covers level. When bands
// overlap the archetype with the highest MinLevel wins; when none covers the
// level, the toughest archetype below it is used.
//
// Postcondition: Returns an Instance, or ErrUnknownEnemy if the bestiary is empty
// or every archetype starts above level.
func (b *Bestiary) ForLevel(level int) (*Instance, error) {
	var pick, fallback *Template
	for _, t := range b.ordered {
		if t.CoversLevel(level) {
			pick = t
		}
		if t.MinLevel <= level {
			fallback = t
		}
	}
	if pick == nil {
		pick = fallback
	}
	if pick == nil {
		return nil, fmt.Errorf("%w: no enemy for level %d", ErrUnknownEnemy, level)
	}
	return NewInstance(uuid.New().String(), pick), nil
}
