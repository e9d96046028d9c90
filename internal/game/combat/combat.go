// Package combat implements the turn-based battle engine: one character
// against one enemy, resolved round by round until a winner emerges or the
// character escapes.
package combat

import (
	"errors"

	"github.com/cory-johannsen/quest-chronicles/internal/game/character"
)

var (
	// ErrCharacterDead is returned when a battle is started with a character
	// that has no health left. It is the same sentinel the character package
	// uses so callers can match either with errors.Is.
	ErrCharacterDead = character.ErrCharacterDead
	// ErrCombatNotActive is returned when a turn is requested after the battle resolved.
	ErrCombatNotActive = errors.New("combat is not active")
	// ErrAbilityOnCooldown is returned when the class ability is used before it is ready.
	ErrAbilityOnCooldown = errors.New("ability is on cooldown")
)

// Winner identifies how a battle resolved.
type Winner int

const (
	WinnerNone Winner = iota // battle still active
	WinnerPlayer
	WinnerEnemy
	WinnerEscaped
)

// String returns "player", "enemy", "escaped", or "none".
func (w Winner) String() string {
	switch w {
	case WinnerPlayer:
		return "player"
	case WinnerEnemy:
		return "enemy"
	case WinnerEscaped:
		return "escaped"
	default:
		return "none"
	}
}

// Result is the immutable outcome of a resolved battle.
//
// Invariant: XPGained and GoldGained are zero unless Winner == WinnerPlayer.
type Result struct {
	Winner     Winner
	XPGained   int
	GoldGained int
}

// Damage computes a hit of the given power against a defender.
//
// Precondition: power >= 0; defenderStrength >= 0.
// Postcondition: Returns max(1, power - defenderStrength/4).
func Damage(power, defenderStrength int) int {
	dmg := power - defenderStrength/4
	if dmg < 1 {
		return 1
	}
	return dmg
}

// Event records one resolved action.
type Event struct {
	Turn   int
	Actor  string
	Action string
	// Amount is the damage dealt, or health restored for a heal.
	Amount int
	Target string
	// TargetHealth is the target's health after the action.
	TargetHealth int
	Narrative    string
}
