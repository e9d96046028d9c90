package inventory

import (
	"fmt"

	"github.com/cory-johannsen/quest-chronicles/internal/game/character"
)

// Purchase buys one def for its cost.
//
// Postcondition: on success Gold is reduced by def.Cost and the item is
// carried; on error (ErrInsufficientGold, ErrInventoryFull) nothing changes.
func Purchase(c *character.Character, def *ItemDef) error {
	if c.Gold < def.Cost {
		return fmt.Errorf("buying %q for %d gold with %d: %w", def.ID, def.Cost, c.Gold, ErrInsufficientGold)
	}
	if err := Add(c, def.ID); err != nil {
		return err
	}
	c.Gold -= def.Cost
	return nil
}

// Sell removes one carried def and pays its SellPrice.
//
// Postcondition: returns the gold received, or ErrItemNotFound with nothing changed.
func Sell(c *character.Character, def *ItemDef) (int, error) {
	if err := Remove(c, def.ID); err != nil {
		return 0, fmt.Errorf("selling: %w", err)
	}
	price := def.SellPrice()
	c.Gold += price
	return price, nil
}
