package ruleset

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// backgroundFile is the YAML structure for the background content file.
type backgroundFile struct {
	Backgrounds []string `yaml:"backgrounds"`
}

// loadBackgrounds reads path in fsys and parses the background table. Each
// entry is a full talent line ("urchin: grew up in a bad part of a city").
//
// Postcondition: Returns a non-empty, duplicate-free table or a non-nil error.
func loadBackgrounds(fsys fs.FS, path string) ([]string, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var f backgroundFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing background file %s: %w", path, err)
	}
	if len(f.Backgrounds) == 0 {
		return nil, fmt.Errorf("background file %s: no backgrounds defined", path)
	}
	seen := make(map[string]bool, len(f.Backgrounds))
	for _, b := range f.Backgrounds {
		if b == "" {
			return nil, fmt.Errorf("background file %s: empty background entry", path)
		}
		if seen[b] {
			return nil, fmt.Errorf("background file %s: duplicate background %q", path, b)
		}
		seen[b] = true
	}
	return f.Backgrounds, nil
}
