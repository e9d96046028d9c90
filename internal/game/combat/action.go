package combat

import (
	"strings"

	"github.com/cory-johannsen/quest-chronicles/internal/game/dice"
)

// Action is what the player chooses to do on a turn.
// The zero value (ActionUnknown) resolves as a basic attack.
type Action int

const (
	ActionUnknown Action = iota
	ActionAttack
	ActionAbility
	ActionRun
)

// String returns "attack", "ability", "run", or "unknown".
func (a Action) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionAbility:
		return "ability"
	case ActionRun:
		return "run"
	default:
		return "unknown"
	}
}

// ParseAction maps player input to an Action. It accepts the action names and
// the menu numbers 1 to 3, ignoring case and surrounding space.
//
// Postcondition: Returns ActionUnknown for anything else.
func ParseAction(s string) Action {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "attack", "a":
		return ActionAttack
	case "2", "ability", "special":
		return ActionAbility
	case "3", "run", "flee", "escape":
		return ActionRun
	default:
		return ActionUnknown
	}
}

// ActionSource supplies the player's action for each turn.
type ActionSource interface {
	// NextAction is called exactly once per player turn.
	NextAction(b *Battle) Action
}

// AttackOnly always attacks. It is the default source.
type AttackOnly struct{}

// NextAction returns ActionAttack.
func (AttackOnly) NextAction(*Battle) Action { return ActionAttack }

// ScriptedActions replays a fixed queue of actions, one per turn, then
// attacks once the queue is exhausted.
type ScriptedActions struct {
	queue []Action
}

// NewScriptedActions returns a source that yields actions in order.
func NewScriptedActions(actions ...Action) *ScriptedActions {
	q := make([]Action, len(actions))
	copy(q, actions)
	return &ScriptedActions{queue: q}
}

// NextAction pops the head of the queue, or returns ActionAttack when empty.
func (s *ScriptedActions) NextAction(*Battle) Action {
	if len(s.queue) == 0 {
		return ActionAttack
	}
	a := s.queue[0]
	s.queue = s.queue[1:]
	return a
}

// Remaining returns how many scripted actions have not been consumed.
func (s *ScriptedActions) Remaining() int { return len(s.queue) }

// RandomActions picks attack, ability or run uniformly each turn.
type RandomActions struct {
	Src dice.Source
}

// NextAction draws one of the three actions from Src.
//
// Precondition: Src must be non-nil.
func (r RandomActions) NextAction(*Battle) Action {
	return Action(r.Src.Intn(3) + 1)
}
