package quest

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"go.uber.org/zap"

	"github.com/cory-johannsen/quest-chronicles/internal/game/character"
)

var (
	// ErrQuestNotFound is returned for quest IDs the book does not know.
	ErrQuestNotFound = errors.New("quest not found")
	// ErrRequirementsNotMet is returned when a prerequisite is missing or the quest is already active.
	ErrRequirementsNotMet = errors.New("quest requirements not met")
	// ErrAlreadyCompleted is returned when accepting a quest the character finished.
	ErrAlreadyCompleted = errors.New("quest already completed")
	// ErrQuestNotActive is returned when completing or abandoning a quest that is not active.
	ErrQuestNotActive = errors.New("quest is not active")
	// ErrInsufficientLevel is returned when the character is below the quest's required level.
	ErrInsufficientLevel = errors.New("character level too low")
)

// Reward is what completing a quest granted.
type Reward struct {
	Title        string
	XP           int
	Gold         int
	LevelsGained int
}

// Totals sums the rewards of completed quests.
type Totals struct {
	XP   int
	Gold int
}

// Book holds the quest definitions and applies quest bookkeeping to characters.
type Book struct {
	defs   map[string]*Def
	logger *zap.Logger
}

// NewBook indexes defs by ID.
//
// Precondition: every def must be non-nil; logger must be non-nil.
// Postcondition: each def is retrievable via Quest; if two defs share an ID the last one wins.
func NewBook(defs []*Def, logger *zap.Logger) *Book {
	if logger == nil {
		panic("quest.NewBook: precondition violated: logger must be non-nil")
	}
	b := &Book{defs: make(map[string]*Def, len(defs)), logger: logger}
	for _, d := range defs {
		if d == nil {
			panic("quest.NewBook: precondition violated: def must be non-nil")
		}
		b.defs[d.ID] = d
	}
	return b
}

// Quest returns the definition for id.
func (b *Book) Quest(id string) (*Def, error) {
	d, ok := b.defs[id]
	if !ok {
		return nil, fmt.Errorf("quest %q: %w", id, ErrQuestNotFound)
	}
	return d, nil
}

// All returns every quest ordered by required level, then ID.
func (b *Book) All() []*Def {
	out := make([]*Def, 0, len(b.defs))
	for _, d := range b.defs {
		out = append(out, d)
	}
	sortDefs(out)
	return out
}

// Accept adds the quest to the character's active list.
//
// Postcondition: on success id is in c.ActiveQuests; on error c is unchanged.
// Checks run in order: unknown quest, level, prerequisite, completed, active.
func (b *Book) Accept(c *character.Character, id string) error {
	d, err := b.Quest(id)
	if err != nil {
		return err
	}
	if c.Level < d.RequiredLevel {
		return fmt.Errorf("accepting %q at level %d (needs %d): %w", id, c.Level, d.RequiredLevel, ErrInsufficientLevel)
	}
	if d.HasPrerequisite() && !slices.Contains(c.CompletedQuests, d.Prerequisite) {
		return fmt.Errorf("accepting %q: must complete %q first: %w", id, d.Prerequisite, ErrRequirementsNotMet)
	}
	if slices.Contains(c.CompletedQuests, id) {
		return fmt.Errorf("accepting %q: %w", id, ErrAlreadyCompleted)
	}
	if slices.Contains(c.ActiveQuests, id) {
		return fmt.Errorf("accepting %q: already active: %w", id, ErrRequirementsNotMet)
	}
	c.ActiveQuests = append(c.ActiveQuests, id)
	b.logger.Debug("quest accepted", zap.String("character", c.Name), zap.String("quest", id))
	return nil
}

// Complete moves an active quest to the completed list and grants its rewards.
// Experience goes through GainExperience, so level-ups apply immediately.
//
// Postcondition: on success returns the granted Reward; on error c is unchanged.
func (b *Book) Complete(c *character.Character, id string) (Reward, error) {
	d, err := b.Quest(id)
	if err != nil {
		return Reward{}, err
	}
	i := slices.Index(c.ActiveQuests, id)
	if i < 0 {
		return Reward{}, fmt.Errorf("completing %q: %w", id, ErrQuestNotActive)
	}
	if c.IsDead() {
		return Reward{}, fmt.Errorf("completing %q: %w", id, character.ErrCharacterDead)
	}
	c.ActiveQuests = slices.Delete(c.ActiveQuests, i, i+1)
	c.CompletedQuests = append(c.CompletedQuests, id)

	levels, err := c.GainExperience(d.RewardXP)
	if err != nil {
		return Reward{}, err
	}
	if _, err := c.AddGold(d.RewardGold); err != nil {
		return Reward{}, err
	}
	b.logger.Info("quest completed",
		zap.String("character", c.Name),
		zap.String("quest", id),
		zap.Int("xp", d.RewardXP),
		zap.Int("gold", d.RewardGold),
		zap.Int("levels_gained", levels),
	)
	return Reward{Title: d.Title, XP: d.RewardXP, Gold: d.RewardGold, LevelsGained: levels}, nil
}

// Abandon drops an active quest without reward.
//
// Postcondition: returns ErrQuestNotActive with c unchanged if id is not active.
func (b *Book) Abandon(c *character.Character, id string) error {
	i := slices.Index(c.ActiveQuests, id)
	if i < 0 {
		return fmt.Errorf("abandoning %q: %w", id, ErrQuestNotActive)
	}
	c.ActiveQuests = slices.Delete(c.ActiveQuests, i, i+1)
	return nil
}

// Active returns the definitions of the character's active quests, in
// acceptance order. IDs the book does not know are skipped.
func (b *Book) Active(c *character.Character) []*Def {
	return b.lookupAll(c.ActiveQuests)
}

// Completed returns the definitions of the character's completed quests.
func (b *Book) Completed(c *character.Character) []*Def {
	return b.lookupAll(c.CompletedQuests)
}

// Available returns every quest CanAccept allows, ordered by required level, then ID.
func (b *Book) Available(c *character.Character) []*Def {
	var out []*Def
	for id, d := range b.defs {
		if b.CanAccept(c, id) {
			out = append(out, d)
		}
	}
	sortDefs(out)
	return out
}

// CanAccept reports whether Accept would succeed, without modifying c.
func (b *Book) CanAccept(c *character.Character, id string) bool {
	d, ok := b.defs[id]
	if !ok {
		return false
	}
	if slices.Contains(c.CompletedQuests, id) || slices.Contains(c.ActiveQuests, id) {
		return false
	}
	if c.Level < d.RequiredLevel {
		return false
	}
	return !d.HasPrerequisite() || slices.Contains(c.CompletedQuests, d.Prerequisite)
}

// IsActive reports whether id is in the character's active list.
func (b *Book) IsActive(c *character.Character, id string) bool {
	return slices.Contains(c.ActiveQuests, id)
}

// IsCompleted reports whether id is in the character's completed list.
func (b *Book) IsCompleted(c *character.Character, id string) bool {
	return slices.Contains(c.CompletedQuests, id)
}

// PrerequisiteChain returns the quest IDs that lead to id, root first, ending with id.
//
// Postcondition: returns ErrQuestNotFound if id or any link is unknown, and an
// error wrapping ErrRequirementsNotMet if the chain loops.
func (b *Book) PrerequisiteChain(id string) ([]string, error) {
	d, err := b.Quest(id)
	if err != nil {
		return nil, err
	}
	chain := []string{id}
	seen := map[string]bool{id: true}
	for d.HasPrerequisite() {
		next, ok := b.defs[d.Prerequisite]
		if !ok {
			return nil, fmt.Errorf("quest %q has invalid prerequisite %q: %w", d.ID, d.Prerequisite, ErrQuestNotFound)
		}
		if seen[next.ID] {
			return nil, fmt.Errorf("prerequisite cycle through %q: %w", next.ID, ErrRequirementsNotMet)
		}
		seen[next.ID] = true
		chain = append(chain, next.ID)
		d = next
	}
	slices.Reverse(chain)
	return chain, nil
}

// CompletionPercentage returns the share of known quests the character completed, 0 to 100.
func (b *Book) CompletionPercentage(c *character.Character) float64 {
	if len(b.defs) == 0 {
		return 0
	}
	return float64(len(b.Completed(c))) / float64(len(b.defs)) * 100
}

// TotalRewards sums the rewards of every completed quest the book knows.
func (b *Book) TotalRewards(c *character.Character) Totals {
	var t Totals
	for _, d := range b.Completed(c) {
		t.XP += d.RewardXP
		t.Gold += d.RewardGold
	}
	return t
}

// ByLevel returns quests whose required level is within [minLevel, maxLevel].
func (b *Book) ByLevel(minLevel, maxLevel int) []*Def {
	var out []*Def
	for _, d := range b.defs {
		if d.RequiredLevel >= minLevel && d.RequiredLevel <= maxLevel {
			out = append(out, d)
		}
	}
	sortDefs(out)
	return out
}

// ValidatePrerequisites checks every prerequisite references a known quest
// and that no chain loops.
//
// Postcondition: returns nil, or an error listing every broken quest.
func (b *Book) ValidatePrerequisites() error {
	var errs []error
	for _, d := range b.All() {
		if _, err := b.PrerequisiteChain(d.ID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *Book) lookupAll(ids []string) []*Def {
	out := make([]*Def, 0, len(ids))
	for _, id := range ids {
		if d, ok := b.defs[id]; ok {
			out = append(out, d)
		}
	}
	return out
}

func sortDefs(defs []*Def) {
	sort.Slice(defs, func(i, j int) bool {
		if defs[i].RequiredLevel != defs[j].RequiredLevel {
			return defs[i].RequiredLevel < defs[j].RequiredLevel
		}
		return defs[i].ID < defs[j].ID
	})
}
