package ruleset

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// LanguageCommon is the default tongue every character speaks.
const LanguageCommon = "common"

// Languages holds the two learnable language pools. The common pool covers
// the widely spoken tongues; the rare pool the esoteric ones.
type Languages struct {
	Common []string `yaml:"common"`
	Rare   []string `yaml:"rare"`
}

// Known reports whether name appears in either pool or is the default tongue.
func (l Languages) Known(name string) bool {
	if name == LanguageCommon {
		return true
	}
	for _, c := range l.Common {
		if c == name {
			return true
		}
	}
	for _, r := range l.Rare {
		if r == name {
			return true
		}
	}
	return false
}

// loadLanguages reads path in fsys and parses the language pools.
//
// Postcondition: Both pools are non-empty or a non-nil error is returned.
func loadLanguages(fsys fs.FS, path string) (Languages, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Languages{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var l Languages
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Languages{}, fmt.Errorf("parsing language file %s: %w", path, err)
	}
	if len(l.Common) == 0 || len(l.Rare) == 0 {
		return Languages{}, fmt.Errorf("language file %s: both pools must be non-empty", path)
	}
	return l, nil
}
