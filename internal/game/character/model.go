// Package character generates complete first-level adventurers: ability
// scores, class talents, spells, languages, hit points, and a shopping trip
// for starting gear.
package character

import "github.com/grimforge/shadowgen/internal/game/ruleset"

// Character is a fully generated first-level adventurer. It is complete on
// return from Generate and never mutated afterwards.
type Character struct {
	Name     string
	Ancestry string // ancestry display name, "half orc"
	Class    string // class display name, "knight of St. Ydris"
	ClassKey ruleset.ClassKey

	Scores    ruleset.AbilityScores
	HitPoints int

	Languages []string // sorted; always contains "common"
	Talents   []string // creation order; never contains duplicates
	Spells    []string // sorted; empty for classes without spells
	Gear      []string // acquisition order; the purse line is always last
}
