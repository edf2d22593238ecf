package ruleset

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/grimforge/shadowgen/internal/game/dice"
)

//go:embed content
var contentFS embed.FS

// Catalog holds the complete, validated rule content. It is immutable after
// Load; accessors return copies of any slice a caller could mutate.
type Catalog struct {
	classes     map[ClassKey]*Class
	classOrder  []ClassKey
	ancestries  map[AncestryKey]*Ancestry
	spellLists  map[string]*SpellList
	weapons     map[string]*Weapon
	languages   Languages
	deities     map[Alignment][]string
	backgrounds []string
	magicItems  []string
	crawlingKit CrawlingKit
}

// Load parses and validates the embedded content into a Catalog.
//
// Postcondition: every cross-reference in the returned Catalog resolves; a
// dangling reference is reported here, never during generation.
func Load() (*Catalog, error) {
	return LoadFS(contentFS, "content")
}

// LoadFS parses and validates catalog content rooted at root in fsys. Exposed
// so tests can load synthetic content trees.
func LoadFS(fsys fs.FS, root string) (*Catalog, error) {
	classes, err := loadClasses(fsys, path.Join(root, "classes"))
	if err != nil {
		return nil, fmt.Errorf("loading classes: %w", err)
	}
	ancestries, err := loadAncestries(fsys, path.Join(root, "ancestries"))
	if err != nil {
		return nil, fmt.Errorf("loading ancestries: %w", err)
	}
	spellLists, err := loadSpellLists(fsys, path.Join(root, "spells"))
	if err != nil {
		return nil, fmt.Errorf("loading spell lists: %w", err)
	}
	weapons, err := loadWeapons(fsys, path.Join(root, "weapons.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading weapons: %w", err)
	}
	languages, err := loadLanguages(fsys, path.Join(root, "languages.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading languages: %w", err)
	}
	deities, err := loadDeities(fsys, path.Join(root, "deities.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading deities: %w", err)
	}
	backgrounds, err := loadBackgrounds(fsys, path.Join(root, "backgrounds.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading backgrounds: %w", err)
	}
	magicItems, err := loadMagicItems(fsys, path.Join(root, "magic_items.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading magic items: %w", err)
	}
	crawlingKit, err := loadCrawlingKit(fsys, path.Join(root, "crawling_kit.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading crawling kit: %w", err)
	}

	cat := &Catalog{
		classes:     make(map[ClassKey]*Class, len(classes)),
		ancestries:  make(map[AncestryKey]*Ancestry, len(ancestries)),
		spellLists:  make(map[string]*SpellList, len(spellLists)),
		weapons:     make(map[string]*Weapon, len(weapons)),
		languages:   languages,
		deities:     deities,
		backgrounds: backgrounds,
		magicItems:  magicItems,
		crawlingKit: crawlingKit,
	}
	for _, c := range classes {
		if _, exists := cat.classes[c.ID]; exists {
			return nil, fmt.Errorf("duplicate class ID %q", c.ID)
		}
		cat.classes[c.ID] = c
		cat.classOrder = append(cat.classOrder, c.ID)
	}
	sort.Slice(cat.classOrder, func(i, j int) bool { return cat.classOrder[i] < cat.classOrder[j] })
	for _, a := range ancestries {
		if _, exists := cat.ancestries[a.ID]; exists {
			return nil, fmt.Errorf("duplicate ancestry ID %q", a.ID)
		}
		cat.ancestries[a.ID] = a
	}
	for _, l := range spellLists {
		if _, exists := cat.spellLists[l.ID]; exists {
			return nil, fmt.Errorf("duplicate spell list ID %q", l.ID)
		}
		cat.spellLists[l.ID] = l
	}
	for _, w := range weapons {
		if _, exists := cat.weapons[w.Name]; exists {
			return nil, fmt.Errorf("duplicate weapon %q", w.Name)
		}
		cat.weapons[w.Name] = w
	}

	if err := cat.validateReferences(); err != nil {
		return nil, err
	}
	return cat, nil
}

// validateReferences cross-checks every reference between content tables.
func (c *Catalog) validateReferences() error {
	var problems []string

	for _, key := range c.classOrder {
		class := c.classes[key]
		if _, err := dice.Parse(class.HitDie); err != nil {
			problems = append(problems, fmt.Sprintf("class %q: bad hit die: %v", key, err))
		}
		for _, ak := range class.Ancestries {
			if _, ok := c.ancestries[ak]; !ok {
				problems = append(problems, fmt.Sprintf("class %q: unknown ancestry %q", key, ak))
			}
		}
		for _, wname := range class.WeaponPreferences {
			if _, ok := c.weapons[wname]; !ok {
				problems = append(problems, fmt.Sprintf("class %q: unknown weapon %q", key, wname))
			}
		}
		if class.SpellList != "" {
			list, ok := c.spellLists[class.SpellList]
			if !ok {
				problems = append(problems, fmt.Sprintf("class %q: unknown spell list %q", key, class.SpellList))
			} else if class.SpellsKnown > len(list.Spells) {
				problems = append(problems, fmt.Sprintf("class %q: SpellsKnown %d exceeds list size %d", key, class.SpellsKnown, len(list.Spells)))
			}
		}
	}

	for id, a := range c.ancestries {
		for _, lang := range a.Languages {
			if !c.languages.Known(lang) {
				problems = append(problems, fmt.Sprintf("ancestry %q: unknown language %q", id, lang))
			}
		}
		for class := range a.TalentOverrides {
			if _, ok := c.classes[class]; !ok {
				problems = append(problems, fmt.Sprintf("ancestry %q: talent override for unknown class %q", id, class))
			}
		}
		for from, to := range a.WeaponSwaps {
			if _, ok := c.weapons[from]; !ok {
				problems = append(problems, fmt.Sprintf("ancestry %q: weapon swap from unknown weapon %q", id, from))
			}
			if _, ok := c.weapons[to]; !ok {
				problems = append(problems, fmt.Sprintf("ancestry %q: weapon swap to unknown weapon %q", id, to))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("catalog validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Class returns the class for the given key.
//
// Postcondition: ok is true iff the key is in the catalog.
func (c *Catalog) Class(key ClassKey) (*Class, bool) {
	cl, ok := c.classes[key]
	return cl, ok
}

// Classes returns all classes in stable key order.
func (c *Catalog) Classes() []*Class {
	out := make([]*Class, 0, len(c.classOrder))
	for _, key := range c.classOrder {
		out = append(out, c.classes[key])
	}
	return out
}

// ClassCount returns the number of distinct classes.
func (c *Catalog) ClassCount() int {
	return len(c.classes)
}

// EligibleClasses returns the classes not present in excluded, in stable key
// order. The result may be empty.
func (c *Catalog) EligibleClasses(excluded map[ClassKey]bool) []*Class {
	out := make([]*Class, 0, len(c.classOrder))
	for _, key := range c.classOrder {
		if excluded[key] {
			continue
		}
		out = append(out, c.classes[key])
	}
	return out
}

// Ancestry returns the ancestry for the given key.
//
// Postcondition: ok is true iff the key is in the catalog.
func (c *Catalog) Ancestry(key AncestryKey) (*Ancestry, bool) {
	a, ok := c.ancestries[key]
	return a, ok
}

// AncestryCount returns the number of distinct ancestries.
func (c *Catalog) AncestryCount() int {
	return len(c.ancestries)
}

// SpellList returns the spell list with the given id.
//
// Postcondition: ok is true iff the id is in the catalog.
func (c *Catalog) SpellList(id string) (*SpellList, bool) {
	l, ok := c.spellLists[id]
	return l, ok
}

// Weapon returns the weapon with the given name.
//
// Postcondition: ok is true iff the name is in the catalog.
func (c *Catalog) Weapon(name string) (*Weapon, bool) {
	w, ok := c.weapons[name]
	return w, ok
}

// CommonLanguages returns a copy of the common language pool.
func (c *Catalog) CommonLanguages() []string {
	return append([]string(nil), c.languages.Common...)
}

// RareLanguages returns a copy of the rare language pool.
func (c *Catalog) RareLanguages() []string {
	return append([]string(nil), c.languages.Rare...)
}

// Deities returns a copy of the deity list for the given alignment.
func (c *Catalog) Deities(a Alignment) []string {
	return append([]string(nil), c.deities[a]...)
}

// Backgrounds returns a copy of the background table.
func (c *Catalog) Backgrounds() []string {
	return append([]string(nil), c.backgrounds...)
}

// MagicItems returns a copy of the magic item table.
func (c *Catalog) MagicItems() []string {
	return append([]string(nil), c.magicItems...)
}

// CrawlingKit returns the crawling kit definition with a copied item list.
func (c *Catalog) CrawlingKit() CrawlingKit {
	kit := c.crawlingKit
	kit.Items = append([]string(nil), c.crawlingKit.Items...)
	return kit
}

// yamlFiles lists the .yaml/.yml files directly under dir in fsys, in lexical
// order.
func yamlFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
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
			paths = append(paths, path.Join(dir, name))
		}
	}
	return paths, nil
}
