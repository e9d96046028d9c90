// Package content bundles the default game data (classes, enemies, items and
// quests) and writes it out to a content directory on first run.
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"
)

//go:embed defaults
var defaults embed.FS

const root = "defaults"

// Defaults returns the bundled content tree, rooted so that classes/, npcs/,
// items/ and quests/ are top-level directories.
func Defaults() fs.FS {
	sub, err := fs.Sub(defaults, root)
	if err != nil {
		panic("content.Defaults: embedded tree missing: " + err.Error())
	}
	return sub
}

// Materialize writes every bundled file that does not already exist under dir.
// Existing files are never overwritten, so local edits survive.
//
// Precondition: dir must be non-empty; logger must be non-nil.
// Postcondition: Returns the paths written (possibly none), or the first error.
func Materialize(dir string, logger *zap.Logger) ([]string, error) {
	if dir == "" {
		return nil, errors.New("content.Materialize: dir must not be empty")
	}
	var written []string
	err := fs.WalkDir(Defaults(), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if _, err := os.Stat(target); err == nil {
			return nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %q: %w", target, err)
		}
		data, err := fs.ReadFile(Defaults(), p)
		if err != nil {
			return fmt.Errorf("reading bundled %q: %w", path.Join(root, p), err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("writing %q: %w", target, err)
		}
		written = append(written, target)
		return nil
	})
	if err != nil {
		return written, fmt.Errorf("materializing content into %q: %w", dir, err)
	}
	if len(written) > 0 {
		logger.Info("default content written", zap.String("dir", dir), zap.Int("files", len(written)))
	}
	return written, nil
}
