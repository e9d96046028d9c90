package combat

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/quest-chronicles/internal/game/character"
	"github.com/cory-johannsen/quest-chronicles/internal/game/dice"
	"github.com/cory-johannsen/quest-chronicles/internal/game/npc"
)

const (
	// ClericHealAmount is the health restored by the cleric's Heal.
	ClericHealAmount = 30
	// CriticalChance is the percent chance a rogue's Critical Strike lands.
	CriticalChance = 50
)

// Ability is a class's special move.
type Ability struct {
	Name string
	// Cooldown is the value AbilityCooldown is set to after a successful use.
	Cooldown int
	// Heal marks abilities that restore the caster instead of hitting the enemy.
	Heal bool
	// resolve returns the damage (or healing) amount and whether it was a critical.
	resolve func(c *character.Character, e *npc.Instance, src dice.Source) (int, bool)
}

var abilities = map[string]Ability{
	"warrior": {
		Name:     "Power Strike",
		Cooldown: 2,
		resolve: func(c *character.Character, e *npc.Instance, _ dice.Source) (int, bool) {
			return Damage(c.Strength*2, e.Strength), false
		},
	},
	"mage": {
		Name:     "Fireball",
		Cooldown: 2,
		resolve: func(c *character.Character, e *npc.Instance, _ dice.Source) (int, bool) {
			return Damage(c.Magic*2, e.Strength), false
		},
	},
	"rogue": {
		Name:     "Critical Strike",
		Cooldown: 2,
		resolve: func(c *character.Character, e *npc.Instance, src dice.Source) (int, bool) {
			if dice.Chance(src, CriticalChance) {
				return Damage(c.Strength*3, e.Strength), true
			}
			return Damage(c.Strength, e.Strength), false
		},
	},
	"cleric": {
		Name:     "Heal",
		Cooldown: 2,
		Heal:     true,
		resolve: func(*character.Character, *npc.Instance, dice.Source) (int, bool) {
			return ClericHealAmount, false
		},
	},
}

var fallbackAbility = Ability{
	Name:     "Special Attack",
	Cooldown: 1,
	resolve: func(c *character.Character, e *npc.Instance, _ dice.Source) (int, bool) {
		return Damage(c.Strength, e.Strength), false
	},
}

// AbilityFor returns the ability of the given class, matched case-insensitively.
// Unrecognized classes get a plain special attack with a one-turn cooldown.
func AbilityFor(class string) Ability {
	if a, ok := abilities[strings.ToLower(strings.TrimSpace(class))]; ok {
		return a
	}
	return fallbackAbility
}

// AbilityOutcome describes a successful ability use.
type AbilityOutcome struct {
	Ability Ability
	// Amount is the damage dealt, or the health actually restored for a heal.
	Amount   int
	Critical bool
}

// UseAbility fires the character's class ability at the enemy.
//
// Precondition: c, e and src must be non-nil.
// Postcondition: If c.AbilityCooldown > 0, returns ErrAbilityOnCooldown and
// nothing is modified. Otherwise the effect is applied and c.AbilityCooldown
// is set to the ability's Cooldown.
func UseAbility(c *character.Character, e *npc.Instance, src dice.Source) (AbilityOutcome, error) {
	if c.AbilityCooldown > 0 {
		return AbilityOutcome{}, fmt.Errorf("%d turn(s) remaining: %w", c.AbilityCooldown, ErrAbilityOnCooldown)
	}
	a := AbilityFor(c.Class)
	amount, crit := a.resolve(c, e, src)
	if a.Heal {
		amount = c.Heal(amount)
	} else {
		e.TakeDamage(amount)
	}
	c.AbilityCooldown = a.Cooldown
	return AbilityOutcome{Ability: a, Amount: amount, Critical: crit}, nil
}
