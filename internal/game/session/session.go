// Package session holds one player's game: the current character, the loaded
// content, the save store and the randomness source. Menus drive the game
// exclusively through a Session.
package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/quest-chronicles/internal/config"
	"github.com/cory-johannsen/quest-chronicles/internal/content"
	"github.com/cory-johannsen/quest-chronicles/internal/game/character"
	"github.com/cory-johannsen/quest-chronicles/internal/game/dice"
)

var (
	// ErrNoCharacter is returned by operations that need a current character when none is loaded.
	ErrNoCharacter = errors.New("no character loaded")
	// ErrCharacterAlive is returned when reviving a character that is not dead.
	ErrCharacterAlive = errors.New("character is not dead")
)

// CharacterStore persists characters by name.
type CharacterStore interface {
	Save(ctx context.Context, c *character.Character) error
	Load(ctx context.Context, name string) (*character.Character, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}

// Session is a single-player game in progress. It is not safe for concurrent use.
type Session struct {
	lib    *content.Library
	store  CharacterStore
	src    dice.Source
	game   config.GameConfig
	logger *zap.Logger

	current *character.Character
}

// New returns a Session with no character loaded.
//
// Precondition: every argument must be non-nil.
func New(lib *content.Library, store CharacterStore, src dice.Source, game config.GameConfig, logger *zap.Logger) *Session {
	if lib == nil || store == nil || src == nil || logger == nil {
		panic("session.New: precondition violated: library, store, source and logger are required")
	}
	return &Session{lib: lib, store: store, src: src, game: game, logger: logger}
}

// Library returns the loaded content.
func (s *Session) Library() *content.Library { return s.lib }

// Config returns the game tunables.
func (s *Session) Config() config.GameConfig { return s.game }

// Character returns the current character, or nil.
func (s *Session) Character() *character.Character { return s.current }

// require returns the current character or ErrNoCharacter.
func (s *Session) require() (*character.Character, error) {
	if s.current == nil {
		return nil, ErrNoCharacter
	}
	return s.current, nil
}

// NewCharacter builds a level 1 character of the given class, makes it
// current and saves it.
//
// Postcondition: returns character.ErrInvalidClass (wrapped) for unknown classes.
func (s *Session) NewCharacter(ctx context.Context, name, classID string) (*character.Character, error) {
	class, ok := s.lib.Classes.Class(classID)
	if !ok {
		return nil, fmt.Errorf("class %q: %w", classID, character.ErrInvalidClass)
	}
	c, err := character.Build(name, class, s.game.StartingGold)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("saving new character: %w", err)
	}
	s.current = c
	s.logger.Info("character created", zap.String("name", c.Name), zap.String("class", c.Class))
	return c, nil
}

// LoadCharacter makes the saved character current.
func (s *Session) LoadCharacter(ctx context.Context, name string) (*character.Character, error) {
	c, err := s.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	s.current = c
	s.logger.Info("character loaded", zap.String("name", c.Name), zap.Int("level", c.Level))
	return c, nil
}

// SaveCharacter persists the current character.
func (s *Session) SaveCharacter(ctx context.Context) error {
	c, err := s.require()
	if err != nil {
		return err
	}
	return s.store.Save(ctx, c)
}

// ListSaves returns the names of saved characters.
func (s *Session) ListSaves(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}

// DeleteSave removes a saved character. Deleting the current character's save
// also unloads it.
func (s *Session) DeleteSave(ctx context.Context, name string) error {
	if err := s.store.Delete(ctx, name); err != nil {
		return err
	}
	if s.current != nil && s.current.Name == name {
		s.current = nil
	}
	return nil
}

// Close unloads the current character without saving.
func (s *Session) Close() {
	s.current = nil
}
