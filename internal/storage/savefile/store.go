package savefile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/quest-chronicles/internal/game/character"
)

// fileSuffix is appended to the character name to form the save file name.
const fileSuffix = "_save.txt"

// Store keeps one save file per character under a directory.
type Store struct {
	dir    string
	logger *zap.Logger
}

// NewStore returns a Store rooted at dir. The directory is created on first save.
//
// Precondition: dir must be non-empty; logger must be non-nil.
func NewStore(dir string, logger *zap.Logger) *Store {
	if dir == "" || logger == nil {
		panic("savefile.NewStore: precondition violated: dir and logger are required")
	}
	return &Store{dir: dir, logger: logger}
}

// Path returns the save file path for name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+fileSuffix)
}

// Save writes c, replacing any previous save for the same name. The file is
// written to a temporary name and renamed into place.
//
// Postcondition: Load(c.Name) returns an equal character, or an error is returned.
func (s *Store) Save(ctx context.Context, c *character.Character) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkName(c.Name); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("saving %q: %w: %w", c.Name, ErrInvalidSaveData, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating save dir %q: %w", s.dir, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".save-*")
	if err != nil {
		return fmt.Errorf("saving %q: %w", c.Name, err)
	}
	defer os.Remove(tmp.Name())
	if err := Encode(tmp, c); err != nil {
		tmp.Close()
		return fmt.Errorf("writing save for %q: %w", c.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing save for %q: %w", c.Name, err)
	}
	if err := os.Rename(tmp.Name(), s.Path(c.Name)); err != nil {
		return fmt.Errorf("saving %q: %w", c.Name, err)
	}
	s.logger.Debug("character saved", zap.String("name", c.Name), zap.String("path", s.Path(c.Name)))
	return nil
}

// Load reads the save for name.
//
// Postcondition: Returns the character, or an error wrapping
// ErrCharacterNotFound, ErrSaveFileCorrupted or ErrInvalidSaveData.
func (s *Store) Load(ctx context.Context, name string) (*character.Character, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkName(name); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %q: %w", name, ErrCharacterNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w: %v", name, ErrSaveFileCorrupted, err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", name, err)
	}
	s.logger.Debug("character loaded", zap.String("name", c.Name))
	return c, nil
}

// List returns the names of every saved character, sorted. A missing
// directory yields an empty list.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing saves in %q: %w", s.dir, err)
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(e.Name(), fileSuffix); ok && name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the save for name.
//
// Postcondition: returns ErrCharacterNotFound if no save exists.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkName(name); err != nil {
		return err
	}
	err := os.Remove(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting %q: %w", name, ErrCharacterNotFound)
	}
	if err != nil {
		return fmt.Errorf("deleting %q: %w", name, err)
	}
	s.logger.Info("character save deleted", zap.String("name", name))
	return nil
}

// checkName rejects names that cannot be used as a file name inside the save dir.
func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, "/\\\r\n") || name == "." || name == ".." {
		return fmt.Errorf("character name %q: %w", name, ErrInvalidSaveData)
	}
	return nil
}
