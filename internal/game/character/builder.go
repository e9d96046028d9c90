package character

import (
	"errors"
	"strings"

	"github.com/cory-johannsen/quest-chronicles/internal/game/ruleset"
)

// ErrInvalidClass is returned when a character is built without a known class.
var ErrInvalidClass = errors.New("invalid character class")

// Build constructs a new level 1 Character from a name and class.
// Health starts full; experience is zero; inventory and quest logs are empty.
//
// Precondition: name must be non-empty; class must be non-nil; startingGold >= 0.
// Postcondition: Returns a Character ready for persistence, or a non-nil error.
func Build(name string, class *ruleset.Class, startingGold int) (*Character, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("character name must not be empty")
	}
	if class == nil {
		return nil, ErrInvalidClass
	}
	if startingGold < 0 {
		return nil, errors.New("starting gold must not be negative")
	}

	return &Character{
		Name:            name,
		Class:           class.ID,
		Level:           1,
		Gold:            startingGold,
		Health:          class.Health,
		MaxHealth:       class.Health,
		Strength:        class.Strength,
		Magic:           class.Magic,
		Inventory:       []string{},
		ActiveQuests:    []string{},
		CompletedQuests: []string{},
	}, nil
}
