package ruleset

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// AncestryKey identifies a character ancestry.
type AncestryKey string

const (
	// AncestryDwarf rolls hit dice with advantage.
	AncestryDwarf AncestryKey = "dwarf"
	// AncestryHuman gets an extra talent roll and an extra language.
	AncestryHuman AncestryKey = "human"
	// AncestryElf has farsight.
	AncestryElf AncestryKey = "elf"
	// AncestryHalfOrc is mighty in melee.
	AncestryHalfOrc AncestryKey = "half_orc"
	// AncestryGoblin cannot be surprised.
	AncestryGoblin AncestryKey = "goblin"
	// AncestryHalfling can vanish briefly.
	AncestryHalfling AncestryKey = "halfling"
)

// Ancestry defines a character ancestry loaded from YAML. The flag fields
// drive generation behavior so the generator carries no per-ancestry
// special cases beyond what the content declares.
//
// Precondition: ID, Name, Languages, and Names must be non-zero after loading.
type Ancestry struct {
	ID        AncestryKey `yaml:"id"`
	Name      string      `yaml:"name"`
	Languages []string    `yaml:"languages"`
	Names     []string    `yaml:"names"`
	// Talent is the ancestry talent line, if any.
	Talent string `yaml:"talent"`
	// TalentOverrides replaces Talent for specific classes (the elf's
	// farsight favors spellcasting for wizards and clerics).
	TalentOverrides map[ClassKey]string `yaml:"talent_overrides"`
	// ExtraTalentRoll grants a second 2d6 talent roll at creation.
	ExtraTalentRoll bool `yaml:"extra_talent_roll"`
	// HitDieAdvantage rolls the starting hit die twice and keeps the higher.
	HitDieAdvantage bool `yaml:"hit_die_advantage"`
	// BonusCommonLanguages is how many extra common-pool languages to learn.
	BonusCommonLanguages int `yaml:"bonus_common_languages"`
	// WeaponSwaps upgrades a purchased weapon to an ancestral favorite at the
	// same price (the dwarf trades a bastard sword for a greataxe).
	WeaponSwaps map[string]string `yaml:"weapon_swaps"`
}

// TalentFor returns the ancestry talent line for the given class, applying
// any per-class override. Returns "" when the ancestry grants no talent line.
func (a *Ancestry) TalentFor(class ClassKey) string {
	if t, ok := a.TalentOverrides[class]; ok {
		return t
	}
	return a.Talent
}

// SwapWeapon returns the ancestral replacement for weapon, or weapon itself
// when no swap applies.
func (a *Ancestry) SwapWeapon(weapon string) string {
	if swap, ok := a.WeaponSwaps[weapon]; ok {
		return swap
	}
	return weapon
}

// Validate checks that the Ancestry satisfies its invariants.
// Precondition: a is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (a *Ancestry) Validate() error {
	var errs []error
	if a.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if a.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if len(a.Languages) == 0 {
		errs = append(errs, errors.New("Languages must not be empty"))
	}
	if len(a.Names) == 0 {
		errs = append(errs, errors.New("Names must not be empty"))
	}
	if a.BonusCommonLanguages < 0 {
		errs = append(errs, errors.New("BonusCommonLanguages must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("ancestry %q validation failed: %v", a.ID, errs)
	}
	return nil
}

// loadAncestries reads all .yaml files under dir in fsys and parses each as
// an Ancestry.
//
// Postcondition: Returns all parsed, validated ancestries or a non-nil error.
func loadAncestries(fsys fs.FS, dir string) ([]*Ancestry, error) {
	files, err := yamlFiles(fsys, dir)
	if err != nil {
		return nil, err
	}
	ancestries := make([]*Ancestry, 0, len(files))
	for _, path := range files {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var a Ancestry
		if err := yaml.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("parsing ancestry file %s: %w", path, err)
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("invalid ancestry in %s: %w", path, err)
		}
		ancestries = append(ancestries, &a)
	}
	return ancestries, nil
}
