package character

import (
	"errors"
	"fmt"
)

// ErrCharacterDead is returned by operations that require a living character.
var ErrCharacterDead = errors.New("character is dead")

// ErrNegativeGold is returned when a gold adjustment would leave the purse below zero.
var ErrNegativeGold = errors.New("gold cannot go below 0")

// Level-up increments.
const (
	XPPerLevel        = 100
	MaxHealthPerLevel = 10
	StrengthPerLevel  = 2
	MagicPerLevel     = 2
)

// IsDead reports whether the character has no health left.
func (c *Character) IsDead() bool {
	return c.Health <= 0
}

// GainExperience adds xp and applies any level-ups it earns.
//
// Precondition: xp >= 0.
// Postcondition: Returns the number of levels gained, or ErrCharacterDead
// without modifying the character.
func (c *Character) GainExperience(xp int) (int, error) {
	if c.IsDead() {
		return 0, fmt.Errorf("gaining %d xp: %w", xp, ErrCharacterDead)
	}
	c.Experience += xp
	return c.CheckLevelUp(), nil
}

// CheckLevelUp converts banked experience into levels. Each level costs
// Level*100 experience and grants +10 max health, +2 strength, +2 magic
// and a full heal.
//
// Postcondition: Experience < Level*XPPerLevel; returns the number of levels gained.
func (c *Character) CheckLevelUp() int {
	gained := 0
	for c.Experience >= c.Level*XPPerLevel {
		c.Experience -= c.Level * XPPerLevel
		c.Level++
		c.MaxHealth += MaxHealthPerLevel
		c.Strength += StrengthPerLevel
		c.Magic += MagicPerLevel
		c.Health = c.MaxHealth
		gained++
	}
	return gained
}

// AddGold adds amount (which may be negative) to the purse.
//
// Postcondition: Returns the new total, or ErrNegativeGold with Gold unchanged.
func (c *Character) AddGold(amount int) (int, error) {
	total := c.Gold + amount
	if total < 0 {
		return c.Gold, fmt.Errorf("adjusting gold by %d: %w", amount, ErrNegativeGold)
	}
	c.Gold = total
	return c.Gold, nil
}

// Heal restores up to amount health without exceeding MaxHealth.
//
// Precondition: amount >= 0.
// Postcondition: Returns the health actually restored; Health <= MaxHealth.
func (c *Character) Heal(amount int) int {
	before := c.Health
	c.Health += amount
	if c.Health > c.MaxHealth {
		c.Health = c.MaxHealth
	}
	return c.Health - before
}

// TakeDamage reduces Health by amount, flooring at zero.
//
// Precondition: amount >= 0.
// Postcondition: Health >= 0.
func (c *Character) TakeDamage(amount int) {
	c.Health -= amount
	if c.Health < 0 {
		c.Health = 0
	}
}

// Revive restores the character to half of MaxHealth.
func (c *Character) Revive() {
	c.Health = c.MaxHealth / 2
}

// ApplyStatEffect applies e to the named stat. Unknown stats are ignored.
//
// Postcondition: 0 <= Health <= MaxHealth.
func (c *Character) ApplyStatEffect(e StatEffect) {
	switch e.Stat {
	case StatHealth:
		c.Health += e.Value
	case StatMaxHealth:
		c.MaxHealth += e.Value
	case StatStrength:
		c.Strength += e.Value
	case StatMagic:
		c.Magic += e.Value
	default:
		return
	}
	if c.Health > c.MaxHealth {
		c.Health = c.MaxHealth
	}
	if c.Health < 0 {
		c.Health = 0
	}
}
