package session

import (
	"fmt"

	"github.com/cory-johannsen/quest-chronicles/internal/game/character"
	"github.com/cory-johannsen/quest-chronicles/internal/game/inventory"
	"github.com/cory-johannsen/quest-chronicles/internal/game/quest"
)

// The item and quest operations below resolve IDs against the loaded content
// and delegate to the inventory and quest packages.

func (s *Session) item(id string) (*character.Character, *inventory.ItemDef, error) {
	c, err := s.require()
	if err != nil {
		return nil, nil, err
	}
	def, err := s.lib.Items.Lookup(id)
	if err != nil {
		return nil, nil, err
	}
	return c, def, nil
}

// UseItem consumes a carried consumable.
func (s *Session) UseItem(id string) (character.StatEffect, error) {
	c, def, err := s.item(id)
	if err != nil {
		return character.StatEffect{}, err
	}
	return inventory.Use(c, def)
}

// EquipWeapon equips a carried weapon, returning the ID it replaced.
func (s *Session) EquipWeapon(id string) (string, error) {
	c, def, err := s.item(id)
	if err != nil {
		return "", err
	}
	return inventory.EquipWeapon(c, def)
}

// EquipArmor equips a carried armor piece, returning the ID it replaced.
func (s *Session) EquipArmor(id string) (string, error) {
	c, def, err := s.item(id)
	if err != nil {
		return "", err
	}
	return inventory.EquipArmor(c, def)
}

// Unequip returns the item in the named slot ("weapon" or "armor") to the inventory.
func (s *Session) Unequip(slot string) (string, error) {
	c, err := s.require()
	if err != nil {
		return "", err
	}
	switch slot {
	case inventory.TypeWeapon:
		return inventory.UnequipWeapon(c)
	case inventory.TypeArmor:
		return inventory.UnequipArmor(c)
	default:
		return "", fmt.Errorf("unequipping slot %q: %w", slot, inventory.ErrInvalidItemType)
	}
}

// DropItem discards one carried item.
func (s *Session) DropItem(id string) error {
	c, err := s.require()
	if err != nil {
		return err
	}
	return inventory.Remove(c, id)
}

// Buy purchases an item from the shop.
func (s *Session) Buy(id string) error {
	c, def, err := s.item(id)
	if err != nil {
		return err
	}
	return inventory.Purchase(c, def)
}

// Sell sells a carried item back to the shop and returns the gold received.
func (s *Session) Sell(id string) (int, error) {
	c, def, err := s.item(id)
	if err != nil {
		return 0, err
	}
	return inventory.Sell(c, def)
}

// AcceptQuest starts a quest for the current character.
func (s *Session) AcceptQuest(id string) error {
	c, err := s.require()
	if err != nil {
		return err
	}
	return s.lib.Quests.Accept(c, id)
}

// CompleteQuest finishes an active quest and grants its rewards.
func (s *Session) CompleteQuest(id string) (quest.Reward, error) {
	c, err := s.require()
	if err != nil {
		return quest.Reward{}, err
	}
	return s.lib.Quests.Complete(c, id)
}

// AbandonQuest drops an active quest.
func (s *Session) AbandonQuest(id string) error {
	c, err := s.require()
	if err != nil {
		return err
	}
	return s.lib.Quests.Abandon(c, id)
}
