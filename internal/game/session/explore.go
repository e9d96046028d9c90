package session

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/quest-chronicles/internal/game/combat"
	"github.com/cory-johannsen/quest-chronicles/internal/game/inventory"
	"github.com/cory-johannsen/quest-chronicles/internal/game/npc"
)

// Encounter summarizes one exploration fight.
type Encounter struct {
	BattleID     string
	Enemy        *npc.Instance
	Result       combat.Result
	Turns        int
	LevelsGained int
}

// Explore meets an enemy suited to the character's level and fights it to a
// resolution. Victory rewards are applied by the battle; level-ups are applied here.
//
// Precondition: actions must be non-nil; observer may be nil.
// Postcondition: returns ErrNoCharacter, or combat.ErrCharacterDead if the
// character cannot fight.
func (s *Session) Explore(actions combat.ActionSource, observer func(combat.Event)) (Encounter, error) {
	c, err := s.require()
	if err != nil {
		return Encounter{}, err
	}
	enemy, err := s.lib.Bestiary.ForLevel(c.Level)
	if err != nil {
		return Encounter{}, err
	}
	opts := []combat.Option{
		combat.WithActionSource(actions),
		combat.WithSource(s.src),
		combat.WithLogger(s.logger),
	}
	if observer != nil {
		opts = append(opts, combat.WithObserver(observer))
	}
	b, err := combat.NewBattle(c, enemy, opts...)
	if err != nil {
		return Encounter{}, err
	}
	res, err := b.Run()
	if err != nil {
		return Encounter{}, err
	}

	enc := Encounter{BattleID: b.ID(), Enemy: enemy, Result: res, Turns: b.Turn()}
	if res.Winner == combat.WinnerPlayer {
		enc.LevelsGained = c.CheckLevelUp()
	}
	s.logger.Info("encounter finished",
		zap.String("battle_id", enc.BattleID),
		zap.String("character", c.Name),
		zap.String("enemy", enemy.Name),
		zap.Stringer("winner", res.Winner),
		zap.Int("turns", enc.Turns),
		zap.Int("levels_gained", enc.LevelsGained),
	)
	return enc, nil
}

// Revive brings a fallen character back at half health for the configured gold cost.
//
// Postcondition: returns ErrCharacterAlive if the character is not dead, or
// inventory.ErrInsufficientGold with nothing changed if it cannot pay.
func (s *Session) Revive() error {
	c, err := s.require()
	if err != nil {
		return err
	}
	if !c.IsDead() {
		return ErrCharacterAlive
	}
	cost := s.game.ReviveCost
	if c.Gold < cost {
		return fmt.Errorf("revive costs %d gold, %s has %d: %w", cost, c.Name, c.Gold, inventory.ErrInsufficientGold)
	}
	c.Gold -= cost
	c.Revive()
	s.logger.Info("character revived", zap.String("name", c.Name), zap.Int("cost", cost), zap.Int("health", c.Health))
	return nil
}
