// Package quest defines quests and tracks a character's progress through them.
package quest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// NoPrerequisite is the content marker for a quest without a prerequisite.
const NoPrerequisite = "NONE"

// Def is a quest definition loaded from YAML.
type Def struct {
	ID            string `yaml:"id"`
	Title         string `yaml:"title"`
	Description   string `yaml:"description"`
	RewardXP      int    `yaml:"reward_xp"`
	RewardGold    int    `yaml:"reward_gold"`
	RequiredLevel int    `yaml:"required_level"`
	Prerequisite  string `yaml:"prerequisite"`
}

// HasPrerequisite reports whether another quest must be completed first.
func (d *Def) HasPrerequisite() bool {
	p := strings.TrimSpace(d.Prerequisite)
	return p != "" && !strings.EqualFold(p, NoPrerequisite)
}

// Validate checks the definition's own fields. Prerequisite references are
// checked across the whole set by Book.ValidatePrerequisites.
//
// Postcondition: Returns nil iff ID and Title are set, rewards are >= 0 and
// RequiredLevel >= 1; otherwise an error listing every violation.
func (d *Def) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Title == "" {
		errs = append(errs, errors.New("title must not be empty"))
	}
	if d.RewardXP < 0 {
		errs = append(errs, fmt.Errorf("reward_xp must be >= 0, got %d", d.RewardXP))
	}
	if d.RewardGold < 0 {
		errs = append(errs, fmt.Errorf("reward_gold must be >= 0, got %d", d.RewardGold))
	}
	if d.RequiredLevel < 1 {
		errs = append(errs, fmt.Errorf("required_level must be >= 1, got %d", d.RequiredLevel))
	}
	if d.HasPrerequisite() && d.Prerequisite == d.ID {
		errs = append(errs, errors.New("quest cannot be its own prerequisite"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("quest %q: %w", d.ID, errors.Join(errs...))
	}
	return nil
}

// LoadQuests reads every *.yaml and *.yml file in dir. A file may hold a
// single quest or a YAML sequence of quests.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all validated quests, or an error on the first failure.
func LoadQuests(dir string) ([]*Def, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading quest dir %q: %w", dir, err)
	}

	var defs []*Def
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		parsed, err := parseQuests(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		defs = append(defs, parsed...)
	}
	return defs, nil
}

func parseQuests(data []byte) ([]*Def, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parsing quest YAML: %w", err)
	}
	var defs []*Def
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		if err := node.Decode(&defs); err != nil {
			return nil, fmt.Errorf("decoding quest list: %w", err)
		}
	} else {
		var d Def
		if err := node.Decode(&d); err != nil {
			return nil, fmt.Errorf("decoding quest: %w", err)
		}
		defs = []*Def{&d}
	}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}
	return defs, nil
}
