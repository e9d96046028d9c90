package content

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/quest-chronicles/internal/config"
	"github.com/cory-johannsen/quest-chronicles/internal/game/inventory"
	"github.com/cory-johannsen/quest-chronicles/internal/game/npc"
	"github.com/cory-johannsen/quest-chronicles/internal/game/quest"
	"github.com/cory-johannsen/quest-chronicles/internal/game/ruleset"
)

// Library is the loaded static game data.
type Library struct {
	Classes  *ruleset.ClassRegistry
	Bestiary *npc.Bestiary
	Items    *inventory.Registry
	Quests   *quest.Book
}

// Load reads every content directory under cfg.Dir and cross-checks the result.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a Library with at least one class and one enemy and
// consistent quest prerequisites, or an error.
func Load(cfg config.ContentConfig, logger *zap.Logger) (*Library, error) {
	classes, err := ruleset.LoadClasses(cfg.ClassesDir())
	if err != nil {
		return nil, fmt.Errorf("loading classes: %w", err)
	}
	if len(classes) == 0 {
		return nil, errors.New("loading classes: no classes defined")
	}

	templates, err := npc.LoadTemplates(cfg.NPCsDir())
	if err != nil {
		return nil, fmt.Errorf("loading enemies: %w", err)
	}
	if len(templates) == 0 {
		return nil, errors.New("loading enemies: no enemies defined")
	}

	items, err := inventory.LoadItems(cfg.ItemsDir())
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	reg := inventory.NewRegistry()
	for _, it := range items {
		if err := reg.RegisterItem(it); err != nil {
			return nil, fmt.Errorf("loading items: %w", err)
		}
	}

	defs, err := quest.LoadQuests(cfg.QuestsDir())
	if err != nil {
		return nil, fmt.Errorf("loading quests: %w", err)
	}
	book := quest.NewBook(defs, logger)
	if err := book.ValidatePrerequisites(); err != nil {
		return nil, fmt.Errorf("loading quests: %w", err)
	}

	logger.Info("content loaded",
		zap.String("dir", cfg.Dir),
		zap.Int("classes", len(classes)),
		zap.Int("enemies", len(templates)),
		zap.Int("items", len(items)),
		zap.Int("quests", len(defs)),
	)
	return &Library{
		Classes:  ruleset.NewClassRegistry(classes),
		Bestiary: npc.NewBestiary(templates),
		Items:    reg,
		Quests:   book,
	}, nil
}
