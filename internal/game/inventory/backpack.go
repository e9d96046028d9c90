package inventory

import (
	"fmt"
	"slices"

	"github.com/cory-johannsen/quest-chronicles/internal/game/character"
)

// MaxItems is the number of items a character can carry.
const MaxItems = 20

// Add places one itemID into the character's inventory.
//
// Postcondition: on success len(c.Inventory) grows by one; returns
// ErrInventoryFull with the inventory unchanged when already at MaxItems.
func Add(c *character.Character, itemID string) error {
	if len(c.Inventory) >= MaxItems {
		return fmt.Errorf("adding %q: %w", itemID, ErrInventoryFull)
	}
	c.Inventory = append(c.Inventory, itemID)
	return nil
}

// Remove takes the first occurrence of itemID out of the inventory.
//
// Postcondition: returns ErrItemNotFound with the inventory unchanged if itemID is not carried.
func Remove(c *character.Character, itemID string) error {
	i := slices.Index(c.Inventory, itemID)
	if i < 0 {
		return fmt.Errorf("removing %q: %w", itemID, ErrItemNotFound)
	}
	c.Inventory = slices.Delete(c.Inventory, i, i+1)
	return nil
}

// Has reports whether the character carries at least one itemID.
func Has(c *character.Character, itemID string) bool {
	return slices.Contains(c.Inventory, itemID)
}

// Count returns how many copies of itemID are carried.
func Count(c *character.Character, itemID string) int {
	n := 0
	for _, id := range c.Inventory {
		if id == itemID {
			n++
		}
	}
	return n
}

// SpaceRemaining returns how many more items fit.
func SpaceRemaining(c *character.Character) int {
	return MaxItems - len(c.Inventory)
}

// Clear empties the inventory and returns what was removed.
func Clear(c *character.Character) []string {
	removed := c.Inventory
	c.Inventory = []string{}
	return removed
}

// Use consumes one carried consumable and applies its effect.
//
// Precondition: def must describe itemID.
// Postcondition: on success the effect is applied and one copy removed;
// on error the character is unchanged.
func Use(c *character.Character, def *ItemDef) (character.StatEffect, error) {
	if !Has(c, def.ID) {
		return character.StatEffect{}, fmt.Errorf("using %q: %w", def.ID, ErrItemNotFound)
	}
	if def.Type != TypeConsumable {
		return character.StatEffect{}, fmt.Errorf("using %q (%s): only consumables can be used: %w", def.ID, def.Type, ErrInvalidItemType)
	}
	effect, err := def.StatEffect()
	if err != nil {
		return character.StatEffect{}, err
	}
	c.ApplyStatEffect(effect)
	_ = Remove(c, def.ID)
	return effect, nil
}
