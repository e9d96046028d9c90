// Package ruleset defines the static character-class rules loaded from YAML.
package ruleset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Class defines a playable character class and its level 1 base stats.
//
// Precondition: ID and Name must be non-empty after loading.
type Class struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Order positions the class in menus; lower sorts first.
	Order    int `yaml:"order"`
	Health   int `yaml:"health"`
	Strength int `yaml:"strength"`
	Magic    int `yaml:"magic"`
	// Ability is the display name of the class special ability.
	Ability string `yaml:"ability"`
}

// Validate checks the class invariants.
//
// Postcondition: Returns nil iff ID and Name are set, Health >= 1, and
// Strength and Magic are >= 0; otherwise an error listing every violation.
func (c *Class) Validate() error {
	var errs []error
	if c.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if c.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if c.Health < 1 {
		errs = append(errs, fmt.Errorf("health must be >= 1, got %d", c.Health))
	}
	if c.Strength < 0 {
		errs = append(errs, fmt.Errorf("strength must be >= 0, got %d", c.Strength))
	}
	if c.Magic < 0 {
		errs = append(errs, fmt.Errorf("magic must be >= 0, got %d", c.Magic))
	}
	if len(errs) > 0 {
		return fmt.Errorf("class %q validation failed: %w", c.ID, errors.Join(errs...))
	}
	return nil
}

// LoadClasses reads all .yaml files in dir and parses each as a Class.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed, validated classes (may be empty slice) or a non-nil error.
func LoadClasses(dir string) ([]*Class, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	classes := make([]*Class, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var c Class
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parsing class file %s: %w", path, err)
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		classes = append(classes, &c)
	}
	return classes, nil
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}
