package ruleset

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// SpellList is a named set of spells a caster class draws from.
//
// Precondition: ID and Spells must be non-zero after loading.
type SpellList struct {
	ID     string   `yaml:"id"`
	Spells []string `yaml:"spells"`
}

// Validate checks that the SpellList satisfies its invariants.
// Precondition: l is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (l *SpellList) Validate() error {
	var errs []error
	if l.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if len(l.Spells) == 0 {
		errs = append(errs, errors.New("Spells must not be empty"))
	}
	seen := make(map[string]bool, len(l.Spells))
	for _, s := range l.Spells {
		if s == "" {
			errs = append(errs, errors.New("spell names must not be empty"))
			continue
		}
		if seen[s] {
			errs = append(errs, fmt.Errorf("duplicate spell %q", s))
		}
		seen[s] = true
	}
	if len(errs) > 0 {
		return fmt.Errorf("spell list %q validation failed: %v", l.ID, errs)
	}
	return nil
}

// loadSpellLists reads all .yaml files under dir in fsys and parses each as a
// SpellList.
//
// Postcondition: Returns all parsed, validated lists or a non-nil error.
func loadSpellLists(fsys fs.FS, dir string) ([]*SpellList, error) {
	files, err := yamlFiles(fsys, dir)
	if err != nil {
		return nil, err
	}
	lists := make([]*SpellList, 0, len(files))
	for _, path := range files {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var l SpellList
		if err := yaml.Unmarshal(data, &l); err != nil {
			return nil, fmt.Errorf("parsing spell list file %s: %w", path, err)
		}
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("invalid spell list in %s: %w", path, err)
		}
		lists = append(lists, &l)
	}
	return lists, nil
}
