package inventory

import (
	"fmt"

	"github.com/cory-johannsen/quest-chronicles/internal/game/character"
)

// EquipWeapon moves a carried weapon into the weapon slot.
//
// Postcondition: on success returns the ID of the weapon it replaced ("" if
// the slot was empty); that weapon's effect is reversed and it is back in the
// inventory. On error the character is unchanged.
func EquipWeapon(c *character.Character, def *ItemDef) (string, error) {
	return equip(c, def, TypeWeapon, &c.Equipment.Weapon)
}

// EquipArmor moves a carried armor piece into the armor slot.
//
// Postcondition: as EquipWeapon, for the armor slot.
func EquipArmor(c *character.Character, def *ItemDef) (string, error) {
	return equip(c, def, TypeArmor, &c.Equipment.Armor)
}

// UnequipWeapon returns the equipped weapon to the inventory, reversing its effect.
//
// Postcondition: returns "" if nothing was equipped; ErrInventoryFull with the
// character unchanged when there is no room.
func UnequipWeapon(c *character.Character) (string, error) {
	return unequip(c, &c.Equipment.Weapon)
}

// UnequipArmor returns the equipped armor to the inventory, reversing its effect.
//
// Postcondition: as UnequipWeapon, for the armor slot.
func UnequipArmor(c *character.Character) (string, error) {
	return unequip(c, &c.Equipment.Armor)
}

func equip(c *character.Character, def *ItemDef, want string, slot **character.EquippedItem) (string, error) {
	if !Has(c, def.ID) {
		return "", fmt.Errorf("equipping %q: %w", def.ID, ErrItemNotFound)
	}
	if def.Type != want {
		return "", fmt.Errorf("equipping %q as %s: item is a %s: %w", def.ID, want, def.Type, ErrInvalidItemType)
	}
	effect, err := def.StatEffect()
	if err != nil {
		return "", err
	}

	// Taking the new item out first guarantees room for the old one.
	_ = Remove(c, def.ID)
	previous := ""
	if old := *slot; old != nil {
		c.ApplyStatEffect(old.Effect.Negate())
		c.Inventory = append(c.Inventory, old.ItemID)
		previous = old.ItemID
	}
	c.ApplyStatEffect(effect)
	*slot = &character.EquippedItem{ItemID: def.ID, Effect: effect}
	return previous, nil
}

func unequip(c *character.Character, slot **character.EquippedItem) (string, error) {
	old := *slot
	if old == nil {
		return "", nil
	}
	if len(c.Inventory) >= MaxItems {
		return "", fmt.Errorf("unequipping %q: %w", old.ItemID, ErrInventoryFull)
	}
	c.ApplyStatEffect(old.Effect.Negate())
	c.Inventory = append(c.Inventory, old.ItemID)
	*slot = nil
	return old.ItemID, nil
}
