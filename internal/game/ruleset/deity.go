package ruleset

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// Alignment is a cosmic allegiance a worshipper can hold.
type Alignment string

const (
	// AlignmentLawful favors order.
	AlignmentLawful Alignment = "lawful"
	// AlignmentNeutral favors balance.
	AlignmentNeutral Alignment = "neutral"
)

// Alignments lists the alignments a generated worshipper may roll, in roll
// order.
var Alignments = []Alignment{AlignmentLawful, AlignmentNeutral}

// deityFile is the YAML structure for the deity content file.
type deityFile struct {
	Alignments map[Alignment][]string `yaml:"alignments"`
}

// loadDeities reads path in fsys and parses the deity table keyed by
// alignment.
//
// Postcondition: Every alignment in Alignments has at least one deity, or a
// non-nil error is returned.
func loadDeities(fsys fs.FS, path string) (map[Alignment][]string, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var f deityFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing deity file %s: %w", path, err)
	}
	for _, a := range Alignments {
		if len(f.Alignments[a]) == 0 {
			return nil, fmt.Errorf("deity file %s: alignment %q has no deities", path, a)
		}
	}
	for a := range f.Alignments {
		known := false
		for _, k := range Alignments {
			if a == k {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("deity file %s: unknown alignment %q", path, a)
		}
	}
	return f.Alignments, nil
}
