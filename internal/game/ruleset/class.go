package ruleset

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// ClassKey identifies a character class.
type ClassKey string

const (
	// ClassThief is the sneak and lockpick.
	ClassThief ClassKey = "thief"
	// ClassFighter is the front-line combatant.
	ClassFighter ClassKey = "fighter"
	// ClassCleric channels a deity.
	ClassCleric ClassKey = "cleric"
	// ClassWizard studies arcane magic.
	ClassWizard ClassKey = "wizard"
	// ClassKnightOfStYdris is the demon-touched knight.
	ClassKnightOfStYdris ClassKey = "knight_of_st_ydris"
	// ClassWarlock serves a patron.
	ClassWarlock ClassKey = "warlock"
	// ClassWitch practices fey craft.
	ClassWitch ClassKey = "witch"
)

// Class defines a playable character class loaded from YAML.
//
// Precondition: ID, Name, HitDie, Ancestries, and WeaponPreferences must be
// non-zero after loading.
type Class struct {
	ID                ClassKey      `yaml:"id"`
	Name              string        `yaml:"name"`
	HitDie            string        `yaml:"hit_die"`
	Ancestries        []AncestryKey `yaml:"ancestries"`
	WeaponPreferences []string      `yaml:"weapon_preferences"`
	BuysShield        bool          `yaml:"buys_shield"`
	BuysLeatherArmor  bool          `yaml:"buys_leather_armor"`
	SpellList         string        `yaml:"spell_list"`
	SpellsKnown       int           `yaml:"spells_known"`
}

// Caster reports whether the class starts with a spell list.
func (c *Class) Caster() bool {
	return c.SpellsKnown > 0
}

// Validate checks that the Class satisfies its invariants.
// Precondition: c is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (c *Class) Validate() error {
	var errs []error
	if c.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if c.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if c.HitDie == "" {
		errs = append(errs, errors.New("HitDie must not be empty"))
	}
	if len(c.Ancestries) == 0 {
		errs = append(errs, errors.New("Ancestries must not be empty"))
	}
	if len(c.WeaponPreferences) == 0 {
		errs = append(errs, errors.New("WeaponPreferences must not be empty"))
	}
	if c.SpellsKnown < 0 {
		errs = append(errs, errors.New("SpellsKnown must not be negative"))
	}
	if c.SpellsKnown > 0 && c.SpellList == "" {
		errs = append(errs, errors.New("SpellList required when SpellsKnown > 0"))
	}
	if c.SpellsKnown == 0 && c.SpellList != "" {
		errs = append(errs, errors.New("SpellList set but SpellsKnown is 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("class %q validation failed: %v", c.ID, errs)
	}
	return nil
}

// loadClasses reads all .yaml files under dir in fsys and parses each as a Class.
//
// Postcondition: Returns all parsed, validated classes or a non-nil error.
func loadClasses(fsys fs.FS, dir string) ([]*Class, error) {
	files, err := yamlFiles(fsys, dir)
	if err != nil {
		return nil, err
	}
	classes := make([]*Class, 0, len(files))
	for _, path := range files {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var c Class
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parsing class file %s: %w", path, err)
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("invalid class in %s: %w", path, err)
		}
		classes = append(classes, &c)
	}
	return classes, nil
}
