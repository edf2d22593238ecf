// Package sheet renders generated characters as markdown character sheets.
package sheet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/grimforge/shadowgen/internal/game/character"
	"github.com/grimforge/shadowgen/internal/game/party"
	"github.com/grimforge/shadowgen/internal/game/ruleset"
)

// memberSeparator sits between party members: a horizontal rule with a blank
// line on each side.
const memberSeparator = "\n---\n\n"

// RenderCharacter formats one character as a markdown sheet.
//
// Postcondition: the output is deterministic for a given character and ends
// with exactly one newline.
func RenderCharacter(c *character.Character) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s, %s %s\n\n", c.Name, c.Ancestry, c.Class)
	fmt.Fprintf(&b, "HP: %d\n\n", c.HitPoints)

	b.WriteString("```\n")
	for _, line := range scoreLines(c.Scores) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("```\n")

	writeSection(&b, "Languages", c.Languages)
	writeSection(&b, "Talents", c.Talents)
	if len(c.Spells) > 0 {
		writeSection(&b, "Spells", c.Spells)
	}
	writeSection(&b, "Gear", c.Gear)

	return b.String()
}

// RenderParty formats every member in order, separated by horizontal rules.
func RenderParty(p *party.Party) string {
	sheets := make([]string, len(p.Members))
	for i, member := range p.Members {
		sheets[i] = RenderCharacter(member)
	}
	return strings.Join(sheets, memberSeparator)
}

// scoreLines lays out the six abilities in fixed order.
func scoreLines(s ruleset.AbilityScores) []string {
	rows := []struct {
		label string
		value int
	}{
		{"STR", s.Strength},
		{"DEX", s.Dexterity},
		{"CON", s.Constitution},
		{"INT", s.Intelligence},
		{"WIS", s.Wisdom},
		{"CHA", s.Charisma},
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%s: %s", row.label, formatScore(row.value)))
	}
	return lines
}

// formatScore aligns the signed modifier column: two spaces after a
// single-digit value, one after a double-digit value.
func formatScore(value int) string {
	pad := " "
	if value < 10 {
		pad = "  "
	}
	return fmt.Sprintf("%d%s%+d", value, pad, ruleset.Modifier(value))
}

// writeSection appends a sorted bullet list under a third-level heading.
func writeSection(b *strings.Builder, title string, items []string) {
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)

	fmt.Fprintf(b, "\n### %s\n\n", title)
	for _, item := range sorted {
		fmt.Fprintf(b, "* %s\n", item)
	}
}
