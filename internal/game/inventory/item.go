// Package inventory implements item definitions, the character's carried
// item list, equipment slots and the shop.
package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/quest-chronicles/internal/game/character"
)

// Type constants for ItemDef.Type.
const (
	TypeWeapon     = "weapon"
	TypeArmor      = "armor"
	TypeConsumable = "consumable"
)

// validTypes is the set of valid ItemDef types.
var validTypes = map[string]bool{
	TypeWeapon:     true,
	TypeArmor:      true,
	TypeConsumable: true,
}

var (
	// ErrInventoryFull is returned when an item would exceed MaxItems.
	ErrInventoryFull = errors.New("inventory is full")
	// ErrItemNotFound is returned when an item is not carried or not defined.
	ErrItemNotFound = errors.New("item not found")
	// ErrInsufficientGold is returned when the character cannot afford a cost.
	ErrInsufficientGold = errors.New("not enough gold")
	// ErrInvalidItemType is returned when an item is used in a slot or action that does not accept its type.
	ErrInvalidItemType = errors.New("invalid item type")
	// ErrInvalidEffect is returned when an item effect is not "stat:value".
	ErrInvalidEffect = errors.New("invalid item effect")
)

// ItemDef defines the static properties of an item loaded from YAML.
type ItemDef struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Effect      string `yaml:"effect"`
	Cost        int    `yaml:"cost"`
	Description string `yaml:"description"`
}

// StatEffect parses the item's effect string.
//
// Postcondition: Returns the parsed effect, or an error wrapping ErrInvalidEffect.
func (d *ItemDef) StatEffect() (character.StatEffect, error) {
	e, err := character.ParseStatEffect(d.Effect)
	if err != nil {
		return character.StatEffect{}, fmt.Errorf("item %q: %w: %v", d.ID, ErrInvalidEffect, err)
	}
	return e, nil
}

// SellPrice is what the shop pays for the item: half its cost, rounded down.
func (d *ItemDef) SellPrice() int {
	return d.Cost / 2
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid; otherwise an error listing every violation.
func (d *ItemDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if !validTypes[d.Type] {
		errs = append(errs, fmt.Errorf("Type must be one of weapon, armor, consumable; got %q", d.Type))
	}
	if _, err := d.StatEffect(); err != nil {
		errs = append(errs, err)
	}
	if d.Cost < 0 {
		errs = append(errs, errors.New("Cost must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// LoadItems reads all *.yaml and *.yml files from dir, parses each as an
// ItemDef, validates it, and returns the collected slice.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid ItemDefs or the first encountered error.
func LoadItems(dir string) ([]*ItemDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadItems: cannot read directory %q: %w", dir, err)
	}

	var items []*ItemDef
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: cannot read file %q: %w", path, err)
		}
		var d ItemDef
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("LoadItems: cannot parse file %q: %w", path, err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("LoadItems: invalid item in %q: %w", path, err)
		}
		items = append(items, &d)
	}
	return items, nil
}
