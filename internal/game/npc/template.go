// Package npc provides enemy archetype templates and the live enemy instances
// spawned from them.
package npc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Template defines a reusable enemy archetype loaded from YAML.
type Template struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Health      int    `yaml:"health"`
	Strength    int    `yaml:"strength"`
	Magic       int    `yaml:"magic"`
	XPReward    int    `yaml:"xp_reward"`
	GoldReward  int    `yaml:"gold_reward"`
	// MinLevel and MaxLevel bound the character levels this archetype is
	// encountered at. MaxLevel 0 means no upper bound.
	MinLevel int `yaml:"min_level"`
	MaxLevel int `yaml:"max_level"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, Health >= 1,
// Strength, Magic and both rewards are >= 0, MinLevel >= 1, and MaxLevel is
// 0 or >= MinLevel; returns an error on the first violation otherwise.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("npc template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("npc template %q: name must not be empty", t.ID)
	}
	if t.Health < 1 {
		return fmt.Errorf("npc template %q: health must be >= 1", t.ID)
	}
	if t.Strength < 0 || t.Magic < 0 {
		return fmt.Errorf("npc template %q: strength and magic must be >= 0", t.ID)
	}
	if t.XPReward < 0 || t.GoldReward < 0 {
		return fmt.Errorf("npc template %q: rewards must be >= 0", t.ID)
	}
	if t.MinLevel < 1 {
		return fmt.Errorf("npc template %q: min_level must be >= 1", t.ID)
	}
	if t.MaxLevel != 0 && t.MaxLevel < t.MinLevel {
		return fmt.Errorf("npc template %q: max_level %d is below min_level %d", t.ID, t.MaxLevel, t.MinLevel)
	}
	return nil
}

// CoversLevel reports whether a character of the given level meets this archetype.
func (t *Template) CoversLevel(level int) bool {
	if level < t.MinLevel {
		return false
	}
	return t.MaxLevel == 0 || level <= t.MaxLevel
}

// LoadTemplateFromBytes parses a single enemy template from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Template.
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading npc dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
