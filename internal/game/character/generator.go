package character

import (
	"errors"
	"fmt"
	"sort"

	"github.com/grimforge/shadowgen/internal/game/dice"
	"github.com/grimforge/shadowgen/internal/game/inventory"
	"github.com/grimforge/shadowgen/internal/game/ruleset"
	"go.uber.org/zap"
)

// ErrConstraintUnsatisfiable is returned when no class remains after applying
// the caller's exclusions.
var ErrConstraintUnsatisfiable = errors.New("class uniqueness constraint unsatisfiable")

const (
	statRollExpr   = "3d6"
	talentRollExpr = "2d6"

	// A fresh character rerolls all six scores until one reaches statFloor.
	// maxStatAttempts bounds the loop; six 3d6 scores all below 14 happens
	// roughly one run in six, so the bound is unreachable in practice.
	statFloor       = 14
	maxStatAttempts = 100
)

// Generator creates characters from catalog content and dice.
type Generator struct {
	catalog   *ruleset.Catalog
	roller    *dice.Roller
	outfitter *inventory.Outfitter
	logger    *zap.Logger
}

// NewGenerator creates a Generator.
//
// Precondition: catalog, roller, and logger must be non-nil.
func NewGenerator(catalog *ruleset.Catalog, roller *dice.Roller, logger *zap.Logger) *Generator {
	if catalog == nil {
		panic("character: NewGenerator requires a catalog")
	}
	if roller == nil {
		panic("character: NewGenerator requires a roller")
	}
	if logger == nil {
		panic("character: NewGenerator requires a logger")
	}
	return &Generator{
		catalog:   catalog,
		roller:    roller,
		outfitter: inventory.NewOutfitter(catalog, roller),
		logger:    logger,
	}
}

// ClassCount reports how many classes the generator draws from before any
// exclusions.
func (g *Generator) ClassCount() int {
	return g.catalog.ClassCount()
}

// Generate creates one character whose class is drawn uniformly from the
// catalog classes not present in excluded. A nil or empty map allows every
// class.
//
// Postcondition: returns a complete Character, or ErrConstraintUnsatisfiable
// (wrapped) when excluded covers the whole catalog, or an error if content
// proves unusable mid-generation.
func (g *Generator) Generate(excluded map[ruleset.ClassKey]bool) (*Character, error) {
	class, err := g.pickClass(excluded)
	if err != nil {
		return nil, err
	}

	scores, err := g.rollScores()
	if err != nil {
		return nil, fmt.Errorf("rolling ability scores: %w", err)
	}

	ancestry, err := g.pickAncestry(class)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("generating character",
		zap.String("class", string(class.ID)),
		zap.String("ancestry", string(ancestry.ID)),
	)

	b := newBuild(g.catalog, g.roller, class, ancestry, scores)
	if err := b.learnAncestryLanguages(); err != nil {
		return nil, fmt.Errorf("learning %s languages: %w", ancestry.ID, err)
	}
	if err := b.applyClassKit(); err != nil {
		return nil, fmt.Errorf("applying %s class kit: %w", class.ID, err)
	}
	b.applyAdvantageSpells()
	b.applyAncestryTalent()

	if err := uniqueTalents(b.talents); err != nil {
		return nil, fmt.Errorf("class %q: %w", class.ID, err)
	}

	hitPoints, err := g.rollHitPoints(class, ancestry, b.scores)
	if err != nil {
		return nil, fmt.Errorf("rolling hit points: %w", err)
	}

	purchase, err := g.outfitter.Outfit(class, ancestry, b.scores, b.carried)
	if err != nil {
		return nil, fmt.Errorf("outfitting %s: %w", class.ID, err)
	}
	gear := append(b.gear, purchase.Gear...)

	background, err := pickString(g.roller.Source(), g.catalog.Backgrounds())
	if err != nil {
		return nil, fmt.Errorf("picking background: %w", err)
	}
	b.talents = append(b.talents, background)

	name, err := pickString(g.roller.Source(), ancestry.Names)
	if err != nil {
		return nil, fmt.Errorf("naming %s: %w", ancestry.ID, err)
	}

	c := &Character{
		Name:      name,
		Ancestry:  ancestry.Name,
		Class:     class.Name,
		ClassKey:  class.ID,
		Scores:    b.scores,
		HitPoints: hitPoints,
		Languages: sortedKeys(b.languages),
		Talents:   b.talents,
		Spells:    sortedKeys(b.spells),
		Gear:      gear,
	}
	g.logger.Info("generated character",
		zap.String("name", c.Name),
		zap.String("class", string(c.ClassKey)),
		zap.String("ancestry", string(ancestry.ID)),
		zap.Int("hit_points", c.HitPoints),
		zap.Int("talents", len(c.Talents)),
	)
	return c, nil
}

// pickClass draws a class uniformly from the catalog minus excluded.
func (g *Generator) pickClass(excluded map[ruleset.ClassKey]bool) (*ruleset.Class, error) {
	candidates := g.catalog.EligibleClasses(excluded)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("all %d classes excluded: %w", g.catalog.ClassCount(), ErrConstraintUnsatisfiable)
	}
	return candidates[g.roller.Source().Intn(len(candidates))], nil
}

// pickAncestry draws an ancestry uniformly from the class pool.
func (g *Generator) pickAncestry(class *ruleset.Class) (*ruleset.Ancestry, error) {
	key := class.Ancestries[g.roller.Source().Intn(len(class.Ancestries))]
	ancestry, ok := g.catalog.Ancestry(key)
	if !ok {
		return nil, fmt.Errorf("class %q references unknown ancestry %q", class.ID, key)
	}
	return ancestry, nil
}

// rollScores rolls 3d6 for each of the six abilities, rerolling the whole set
// until at least one score reaches statFloor.
//
// Postcondition: every score lies in 3..18; after maxStatAttempts the final
// set stands regardless of the floor.
func (g *Generator) rollScores() (ruleset.AbilityScores, error) {
	var scores ruleset.AbilityScores
	for attempt := 0; attempt < maxStatAttempts; attempt++ {
		var rolled [6]int
		for i := range rolled {
			result, err := g.roller.RollExpr(statRollExpr)
			if err != nil {
				return ruleset.AbilityScores{}, err
			}
			rolled[i] = result.Total()
		}
		scores = ruleset.AbilityScores{
			Strength:     rolled[0],
			Dexterity:    rolled[1],
			Constitution: rolled[2],
			Intelligence: rolled[3],
			Wisdom:       rolled[4],
			Charisma:     rolled[5],
		}
		if scores.Highest() >= statFloor {
			return scores, nil
		}
		g.logger.Debug("rerolling ability scores", zap.Int("highest", scores.Highest()))
	}
	return scores, nil
}

// rollHitPoints rolls the class hit die, with advantage for ancestries that
// grant it, and adds the Constitution modifier.
//
// Postcondition: the result is at least 1.
func (g *Generator) rollHitPoints(class *ruleset.Class, ancestry *ruleset.Ancestry, scores ruleset.AbilityScores) (int, error) {
	expr, err := dice.Parse(class.HitDie)
	if err != nil {
		return 0, fmt.Errorf("class %q hit die: %w", class.ID, err)
	}
	var result dice.RollResult
	if ancestry.HitDieAdvantage {
		result, err = g.roller.RollAdvantage(expr)
	} else {
		result, err = g.roller.Roll(expr)
	}
	if err != nil {
		return 0, err
	}
	return max(1, result.Total()+ruleset.Modifier(scores.Constitution)), nil
}

// uniqueTalents rejects a talent list holding the same line twice.
func uniqueTalents(talents []string) error {
	seen := make(map[string]bool, len(talents))
	for _, t := range talents {
		if seen[t] {
			return fmt.Errorf("duplicate talent %q", t)
		}
		seen[t] = true
	}
	return nil
}

// pickString returns a uniform element of pool.
func pickString(src dice.Source, pool []string) (string, error) {
	if len(pool) == 0 {
		return "", errors.New("cannot pick from an empty pool")
	}
	return pool[src.Intn(len(pool))], nil
}

// pickExcluding returns a uniform element of pool not present in used.
func pickExcluding(src dice.Source, pool []string, used map[string]bool) (string, error) {
	candidates := make([]string, 0, len(pool))
	for _, s := range pool {
		if !used[s] {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("all %d pool entries already used", len(pool))
	}
	return candidates[src.Intn(len(candidates))], nil
}

// sampleDistinct returns n distinct elements of pool, each subset equally
// likely.
func sampleDistinct(src dice.Source, pool []string, n int) ([]string, error) {
	if n > len(pool) {
		return nil, fmt.Errorf("cannot sample %d distinct entries from a pool of %d", n, len(pool))
	}
	remaining := append([]string(nil), pool...)
	out := make([]string, 0, n)
	for len(out) < n {
		i := src.Intn(len(remaining))
		out = append(out, remaining[i])
		remaining = append(remaining[:i], remaining[i+1:]...)
	}
	return out, nil
}

// sortedKeys flattens a string set into a sorted slice.
func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
