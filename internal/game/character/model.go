// Package character defines the player character record and its pure operations.
package character

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Stat names understood by ApplyStatEffect.
const (
	StatHealth    = "health"
	StatMaxHealth = "max_health"
	StatStrength  = "strength"
	StatMagic     = "magic"
)

// StatEffect is a signed adjustment to one character stat, written "stat:value" in content files.
type StatEffect struct {
	Stat  string
	Value int
}

// String renders the effect in its "stat:value" content form.
func (e StatEffect) String() string {
	return fmt.Sprintf("%s:%d", e.Stat, e.Value)
}

// Negate returns the effect that undoes e.
func (e StatEffect) Negate() StatEffect {
	return StatEffect{Stat: e.Stat, Value: -e.Value}
}

// ParseStatEffect parses "stat:value", e.g. "strength:5".
//
// Postcondition: Returns the parsed effect, or an error if the separator is
// missing, the stat is empty, or the value is not an integer.
func ParseStatEffect(s string) (StatEffect, error) {
	stat, value, ok := strings.Cut(s, ":")
	if !ok {
		return StatEffect{}, fmt.Errorf("effect %q: missing ':' separator", s)
	}
	stat = strings.TrimSpace(stat)
	if stat == "" {
		return StatEffect{}, fmt.Errorf("effect %q: stat must not be empty", s)
	}
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return StatEffect{}, fmt.Errorf("effect %q: value must be an integer: %w", s, err)
	}
	return StatEffect{Stat: stat, Value: v}, nil
}

// EquippedItem is an item occupying an equipment slot together with the
// effect it applied when equipped, so unequipping reverses exactly that effect.
type EquippedItem struct {
	ItemID string
	Effect StatEffect
}

// Equipment holds the optional weapon and armor slots; nil means empty.
type Equipment struct {
	Weapon *EquippedItem
	Armor  *EquippedItem
}

// Character represents a player character's persistent state.
//
// Invariant: 0 <= Health <= MaxHealth; AbilityCooldown >= 0.
type Character struct {
	Name       string
	Class      string // class ID
	Level      int
	Experience int
	Gold       int

	Health    int
	MaxHealth int
	Strength  int
	Magic     int

	// AbilityCooldown is the number of turns until the class ability is usable again; 0 means ready.
	AbilityCooldown int

	Inventory       []string // item IDs, duplicates allowed
	ActiveQuests    []string
	CompletedQuests []string

	Equipment Equipment
}

// Validate checks every field invariant.
//
// Postcondition: Returns nil if the character is consistent, or an error listing every violation.
func (c *Character) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if c.Class == "" {
		errs = append(errs, errors.New("class must not be empty"))
	}
	if c.Level < 1 {
		errs = append(errs, fmt.Errorf("level must be >= 1, got %d", c.Level))
	}
	if c.MaxHealth < 1 {
		errs = append(errs, fmt.Errorf("max_health must be >= 1, got %d", c.MaxHealth))
	}
	if c.Health < 0 || c.Health > c.MaxHealth {
		errs = append(errs, fmt.Errorf("health must be in [0, %d], got %d", c.MaxHealth, c.Health))
	}
	if c.Strength < 0 {
		errs = append(errs, fmt.Errorf("strength must be >= 0, got %d", c.Strength))
	}
	if c.Magic < 0 {
		errs = append(errs, fmt.Errorf("magic must be >= 0, got %d", c.Magic))
	}
	if c.Experience < 0 {
		errs = append(errs, fmt.Errorf("experience must be >= 0, got %d", c.Experience))
	}
	if c.Gold < 0 {
		errs = append(errs, fmt.Errorf("gold must be >= 0, got %d", c.Gold))
	}
	if c.AbilityCooldown < 0 {
		errs = append(errs, fmt.Errorf("ability_cooldown must be >= 0, got %d", c.AbilityCooldown))
	}
	if len(errs) > 0 {
		return fmt.Errorf("character %q: %w", c.Name, errors.Join(errs...))
	}
	return nil
}
