package ruleset

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// Weapon defines a purchasable weapon and its price in copper pieces.
//
// Precondition: Name must be non-empty and PriceCP non-negative after loading.
type Weapon struct {
	Name    string `yaml:"name"`
	PriceCP int    `yaml:"price_cp"`
}

// Validate checks that the Weapon satisfies its invariants.
// Precondition: w is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (w *Weapon) Validate() error {
	var errs []error
	if w.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if w.PriceCP < 0 {
		errs = append(errs, errors.New("PriceCP must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon %q validation failed: %v", w.Name, errs)
	}
	return nil
}

// weaponFile is the YAML structure for the single weapons content file.
type weaponFile struct {
	Weapons []*Weapon `yaml:"weapons"`
}

// loadWeapons reads path in fsys and parses the weapon price table.
//
// Postcondition: Returns all parsed, validated weapons or a non-nil error.
func loadWeapons(fsys fs.FS, path string) ([]*Weapon, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var f weaponFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing weapon file %s: %w", path, err)
	}
	if len(f.Weapons) == 0 {
		return nil, fmt.Errorf("weapon file %s: no weapons defined", path)
	}
	for _, w := range f.Weapons {
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("invalid weapon in %s: %w", path, err)
		}
	}
	return f.Weapons, nil
}
