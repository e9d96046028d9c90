package combat

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/quest-chronicles/internal/game/character"
	"github.com/cory-johannsen/quest-chronicles/internal/game/dice"
	"github.com/cory-johannsen/quest-chronicles/internal/game/npc"
)

// EscapeChance is the percent chance that a run action succeeds.
const EscapeChance = 50

// Option configures a Battle.
type Option func(*Battle)

// WithActionSource sets where player actions come from. Default: AttackOnly.
func WithActionSource(s ActionSource) Option {
	return func(b *Battle) { b.actions = s }
}

// WithSource sets the randomness source for escapes and critical strikes.
// Default: dice.NewCryptoSource().
func WithSource(src dice.Source) Option {
	return func(b *Battle) { b.src = src }
}

// WithLogger sets the structured logger. Default: zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(b *Battle) { b.logger = l }
}

// WithObserver registers a callback invoked with every Event as it happens.
func WithObserver(fn func(Event)) Option {
	return func(b *Battle) { b.observer = fn }
}

// Battle is a single encounter between one character and one enemy. It
// mutates both records in place and is discarded once resolved.
//
// A Battle is not safe for concurrent use.
type Battle struct {
	id       string
	char     *character.Character
	enemy    *npc.Instance
	actions  ActionSource
	src      dice.Source
	logger   *zap.Logger
	observer func(Event)

	turn   int
	active bool
	result Result
	events []Event
}

// NewBattle starts a battle between char and enemy.
//
// Precondition: char and enemy must be non-nil.
// Postcondition: Returns an active Battle at turn 0, or ErrCharacterDead when
// char.Health <= 0.
func NewBattle(char *character.Character, enemy *npc.Instance, opts ...Option) (*Battle, error) {
	if char == nil || enemy == nil {
		panic("combat.NewBattle: precondition violated: char and enemy must be non-nil")
	}
	if char.IsDead() {
		return nil, fmt.Errorf("starting battle for %q: %w", char.Name, ErrCharacterDead)
	}
	b := &Battle{
		id:      uuid.New().String(),
		char:    char,
		enemy:   enemy,
		actions: AttackOnly{},
		logger:  zap.NewNop(),
		active:  true,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.src == nil {
		b.src = dice.NewCryptoSource()
	}
	b.logger = b.logger.With(zap.String("battle_id", b.id))
	b.logger.Debug("battle started",
		zap.String("character", char.Name),
		zap.String("enemy", enemy.Name),
	)
	return b, nil
}

// ID returns the battle's correlation ID.
func (b *Battle) ID() string { return b.id }

// Character returns the fighting character.
func (b *Battle) Character() *character.Character { return b.char }

// Enemy returns the opposing enemy.
func (b *Battle) Enemy() *npc.Instance { return b.enemy }

// Turn returns the number of rounds started so far.
func (b *Battle) Turn() int { return b.turn }

// Active reports whether the battle is still unresolved.
func (b *Battle) Active() bool { return b.active }

// Result returns the outcome. Winner is WinnerNone while the battle is active.
func (b *Battle) Result() Result { return b.result }

// Events returns a copy of every event recorded so far.
func (b *Battle) Events() []Event {
	out := make([]Event, len(b.events))
	copy(out, b.events)
	return out
}

// Run plays rounds until the battle resolves.
//
// Postcondition: Returns the final Result, or ErrCombatNotActive if the battle
// had already resolved.
func (b *Battle) Run() (Result, error) {
	if !b.active {
		return Result{}, ErrCombatNotActive
	}
	for b.active {
		if err := b.Round(); err != nil {
			return Result{}, err
		}
	}
	return b.result, nil
}

// Round plays one full round: the player acts, then the enemy if the battle is
// still going, then the ability cooldown ticks down.
//
// Postcondition: Turn() has advanced by one; returns ErrCombatNotActive if the
// battle had already resolved.
func (b *Battle) Round() error {
	if !b.active {
		return ErrCombatNotActive
	}
	b.turn++
	if err := b.PlayerTurn(); err != nil {
		return err
	}
	if !b.active {
		return nil
	}
	if err := b.EnemyTurn(); err != nil {
		return err
	}
	if b.active && b.char.AbilityCooldown > 0 {
		b.char.AbilityCooldown--
	}
	return nil
}

// PlayerTurn resolves the player's action for the current turn.
//
// Postcondition: Returns ErrCombatNotActive if the battle has resolved;
// otherwise exactly one action was taken and CheckEnd was applied.
func (b *Battle) PlayerTurn() error {
	if !b.active {
		return ErrCombatNotActive
	}
	action := b.actions.NextAction(b)
	switch action {
	case ActionAttack:
		b.playerAttack("attack", "%s attacks %s for %d damage.")
	case ActionAbility:
		b.playerAbility()
	case ActionRun:
		if b.AttemptEscape() {
			return nil
		}
	default:
		b.playerAttack("attack", "%s hesitates, then lashes out at %s for %d damage.")
	}
	b.CheckEnd()
	return nil
}

// EnemyTurn resolves the enemy's basic attack against the character.
//
// Postcondition: Returns ErrCombatNotActive if the battle has resolved;
// otherwise the character took damage and CheckEnd was applied.
func (b *Battle) EnemyTurn() error {
	if !b.active {
		return ErrCombatNotActive
	}
	dmg := Damage(b.enemy.Strength, b.char.Strength)
	b.char.TakeDamage(dmg)
	b.emit(Event{
		Actor:        b.enemy.Name,
		Action:       "attack",
		Amount:       dmg,
		Target:       b.char.Name,
		TargetHealth: b.char.Health,
		Narrative:    fmt.Sprintf("%s attacks %s for %d damage.", b.enemy.Name, b.char.Name, dmg),
	})
	b.CheckEnd()
	return nil
}

// AttemptEscape makes one escape draw.
//
// Postcondition: On success the battle resolves as escaped with zero rewards
// and true is returned. On failure the battle is unchanged.
func (b *Battle) AttemptEscape() bool {
	if !b.active {
		return false
	}
	if !dice.Chance(b.src, EscapeChance) {
		b.emit(Event{
			Actor:     b.char.Name,
			Action:    "run",
			Narrative: fmt.Sprintf("%s tries to flee but %s blocks the way.", b.char.Name, b.enemy.Name),
		})
		return false
	}
	b.emit(Event{
		Actor:     b.char.Name,
		Action:    "run",
		Narrative: fmt.Sprintf("%s escapes from %s.", b.char.Name, b.enemy.Name),
	})
	b.resolve(Result{Winner: WinnerEscaped})
	return true
}

// CheckEnd resolves the battle if either side has fallen, granting rewards on
// a player victory.
//
// Postcondition: Returns true iff the battle is resolved.
func (b *Battle) CheckEnd() bool {
	if !b.active {
		return true
	}
	switch {
	case b.enemy.IsDead():
		b.char.Experience += b.enemy.XPReward
		b.char.Gold += b.enemy.GoldReward
		b.resolve(Result{
			Winner:     WinnerPlayer,
			XPGained:   b.enemy.XPReward,
			GoldGained: b.enemy.GoldReward,
		})
	case b.char.IsDead():
		b.resolve(Result{Winner: WinnerEnemy})
	}
	return !b.active
}

func (b *Battle) playerAttack(action, format string) {
	dmg := Damage(b.char.Strength, b.enemy.Strength)
	b.enemy.TakeDamage(dmg)
	b.emit(Event{
		Actor:        b.char.Name,
		Action:       action,
		Amount:       dmg,
		Target:       b.enemy.Name,
		TargetHealth: b.enemy.Health,
		Narrative:    fmt.Sprintf(format, b.char.Name, b.enemy.Name, dmg),
	})
}

func (b *Battle) playerAbility() {
	out, err := UseAbility(b.char, b.enemy, b.src)
	if errors.Is(err, ErrAbilityOnCooldown) {
		b.emit(Event{
			Actor:     b.char.Name,
			Action:    "ability",
			Narrative: fmt.Sprintf("%s's ability is not ready (%d turn(s) left).", b.char.Name, b.char.AbilityCooldown),
		})
		b.playerAttack("attack", "%s attacks %s for %d damage instead.")
		return
	}
	if out.Ability.Heal {
		b.emit(Event{
			Actor:        b.char.Name,
			Action:       out.Ability.Name,
			Amount:       out.Amount,
			Target:       b.char.Name,
			TargetHealth: b.char.Health,
			Narrative:    fmt.Sprintf("%s casts %s and recovers %d health.", b.char.Name, out.Ability.Name, out.Amount),
		})
		return
	}
	narrative := fmt.Sprintf("%s uses %s on %s for %d damage.", b.char.Name, out.Ability.Name, b.enemy.Name, out.Amount)
	if out.Critical {
		narrative += " Critical hit!"
	}
	b.emit(Event{
		Actor:        b.char.Name,
		Action:       out.Ability.Name,
		Amount:       out.Amount,
		Target:       b.enemy.Name,
		TargetHealth: b.enemy.Health,
		Narrative:    narrative,
	})
}

func (b *Battle) resolve(r Result) {
	b.active = false
	b.result = r
	b.logger.Debug("battle resolved",
		zap.Stringer("winner", r.Winner),
		zap.Int("turns", b.turn),
		zap.Int("xp_gained", r.XPGained),
		zap.Int("gold_gained", r.GoldGained),
	)
}

func (b *Battle) emit(e Event) {
	e.Turn = b.turn
	b.events = append(b.events, e)
	b.logger.Debug("battle event",
		zap.Int("turn", e.Turn),
		zap.String("actor", e.Actor),
		zap.String("action", e.Action),
		zap.Int("amount", e.Amount),
		zap.Int("target_health", e.TargetHealth),
	)
	if b.observer != nil {
		b.observer(e)
	}
}
