package ruleset

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// magicItemFile is the YAML structure for the magic item content file.
type magicItemFile struct {
	Items []string `yaml:"items"`
}

// loadMagicItems reads path in fsys and parses the magic item table.
//
// Postcondition: Returns a non-empty, duplicate-free table or a non-nil error.
func loadMagicItems(fsys fs.FS, path string) ([]string, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var f magicItemFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing magic item file %s: %w", path, err)
	}
	if len(f.Items) == 0 {
		return nil, fmt.Errorf("magic item file %s: no items defined", path)
	}
	seen := make(map[string]bool, len(f.Items))
	for _, item := range f.Items {
		if item == "" {
			return nil, fmt.Errorf("magic item file %s: empty item entry", path)
		}
		if seen[item] {
			return nil, fmt.Errorf("magic item file %s: duplicate item %q", path, item)
		}
		seen[item] = true
	}
	return f.Items, nil
}

// CrawlingKit is the standard dungeon kit every character buys into when they
// can afford it. The kit itself costs nothing; ThresholdCP is the wealth a
// character must hold to be outfitted with one.
type CrawlingKit struct {
	Items       []string `yaml:"items"`
	ThresholdCP int      `yaml:"threshold_cp"`
	Weight      int      `yaml:"weight"`
}

// loadCrawlingKit reads path in fsys and parses the crawling kit definition.
//
// Postcondition: Returns a kit with items and positive weight and threshold,
// or a non-nil error.
func loadCrawlingKit(fsys fs.FS, path string) (CrawlingKit, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return CrawlingKit{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var k CrawlingKit
	if err := yaml.Unmarshal(data, &k); err != nil {
		return CrawlingKit{}, fmt.Errorf("parsing crawling kit file %s: %w", path, err)
	}
	if len(k.Items) == 0 {
		return CrawlingKit{}, fmt.Errorf("crawling kit file %s: no items defined", path)
	}
	if k.ThresholdCP <= 0 {
		return CrawlingKit{}, fmt.Errorf("crawling kit file %s: threshold_cp must be positive", path)
	}
	if k.Weight <= 0 {
		return CrawlingKit{}, fmt.Errorf("crawling kit file %s: weight must be positive", path)
	}
	return k, nil
}
