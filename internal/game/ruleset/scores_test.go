package ruleset_test

import (
	"testing"

	"github.com/grimforge/shadowgen/internal/game/ruleset"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// TestModifier_Table verifies the full score-to-modifier mapping.
func TestModifier_Table(t *testing.T) {
	cases := []struct {
		score int
		want  int
	}{
		{1, -4}, {2, -4}, {3, -4},
		{4, -3}, {5, -3},
		{6, -2}, {7, -2},
		{8, -1}, {9, -1},
		{10, 0}, {11, 0},
		{12, 1}, {13, 1},
		{14, 2}, {15, 2},
		{16, 3}, {17, 3},
		{18, 4}, {19, 4}, {20, 4}, {22, 4},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ruleset.Modifier(c.score), "Modifier(%d)", c.score)
	}
}

// TestModifier_Property verifies the modifier is bounded and non-decreasing,
// including scores a talent bump could push outside the rolled 3-18 range.
func TestModifier_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		score := rapid.IntRange(-1, 25).Draw(rt, "score")
		m := ruleset.Modifier(score)
		assert.GreaterOrEqual(rt, m, -4)
		assert.LessOrEqual(rt, m, 4)
		assert.GreaterOrEqual(rt, ruleset.Modifier(score+1), m,
			"modifier must be non-decreasing in score")
	})
}

// TestAbilityScores_Value covers the six-way accessor and its panic contract.
func TestAbilityScores_Value(t *testing.T) {
	s := ruleset.AbilityScores{
		Strength: 1, Dexterity: 2, Constitution: 3,
		Intelligence: 4, Wisdom: 5, Charisma: 6,
	}
	assert.Equal(t, 1, s.Value(ruleset.AbilityStrength))
	assert.Equal(t, 2, s.Value(ruleset.AbilityDexterity))
	assert.Equal(t, 3, s.Value(ruleset.AbilityConstitution))
	assert.Equal(t, 4, s.Value(ruleset.AbilityIntelligence))
	assert.Equal(t, 5, s.Value(ruleset.AbilityWisdom))
	assert.Equal(t, 6, s.Value(ruleset.AbilityCharisma))
	assert.Panics(t, func() { s.Value(ruleset.Ability("luck")) })
}

// TestAbilityScores_Highest verifies Highest over each field position.
func TestAbilityScores_Highest(t *testing.T) {
	s := ruleset.AbilityScores{Strength: 10, Dexterity: 10, Constitution: 17,
		Intelligence: 10, Wisdom: 10, Charisma: 10}
	assert.Equal(t, 17, s.Highest())
}

// TestAbilityScores_BestNonConstitution verifies Constitution is skipped and
// ties resolve in the documented order.
func TestAbilityScores_BestNonConstitution(t *testing.T) {
	s := ruleset.AbilityScores{Strength: 8, Dexterity: 12, Constitution: 18,
		Intelligence: 12, Wisdom: 9, Charisma: 7}
	a, v := s.BestNonConstitution()
	assert.Equal(t, ruleset.AbilityDexterity, a, "ties resolve toward the earlier ability")
	assert.Equal(t, 12, v)

	all := ruleset.AbilityScores{Strength: 11, Dexterity: 11, Constitution: 18,
		Intelligence: 11, Wisdom: 11, Charisma: 11}
	a, v = all.BestNonConstitution()
	assert.Equal(t, ruleset.AbilityStrength, a, "full tie resolves to Strength")
	assert.Equal(t, 11, v)
}

// TestAbilityScores_BestNonConstitution_Property: the result is never
// Constitution and never smaller than any non-Constitution score.
func TestAbilityScores_BestNonConstitution_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := ruleset.AbilityScores{
			Strength:     rapid.IntRange(3, 18).Draw(rt, "str"),
			Dexterity:    rapid.IntRange(3, 18).Draw(rt, "dex"),
			Constitution: rapid.IntRange(3, 18).Draw(rt, "con"),
			Intelligence: rapid.IntRange(3, 18).Draw(rt, "int"),
			Wisdom:       rapid.IntRange(3, 18).Draw(rt, "wis"),
			Charisma:     rapid.IntRange(3, 18).Draw(rt, "cha"),
		}
		a, v := s.BestNonConstitution()
		assert.NotEqual(rt, ruleset.AbilityConstitution, a)
		for _, other := range []ruleset.Ability{
			ruleset.AbilityStrength, ruleset.AbilityDexterity,
			ruleset.AbilityIntelligence, ruleset.AbilityWisdom, ruleset.AbilityCharisma,
		} {
			assert.GreaterOrEqual(rt, v, s.Value(other))
		}
	})
}
