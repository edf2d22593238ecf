// Package ruleset defines the content catalog for character generation:
// classes, ancestries, spell lists, weapons, languages, deities, backgrounds,
// and the ability-score rules. Content is authored in YAML, embedded in the
// binary, and validated into an immutable Catalog at load time.
package ruleset

// Ability identifies one of the six ability scores.
type Ability string

const (
	// AbilityStrength is raw physical power.
	AbilityStrength Ability = "strength"
	// AbilityDexterity is agility and reflexes.
	AbilityDexterity Ability = "dexterity"
	// AbilityConstitution is toughness and health.
	AbilityConstitution Ability = "constitution"
	// AbilityIntelligence is reasoning and memory.
	AbilityIntelligence Ability = "intelligence"
	// AbilityWisdom is perception and willpower.
	AbilityWisdom Ability = "wisdom"
	// AbilityCharisma is force of personality.
	AbilityCharisma Ability = "charisma"
)

// AbilityScores holds the six rolled ability values for one character.
//
// Invariant: rolled values are in [3, 18]; talent improvements may push a
// value past 18, and Modifier treats everything >= 18 as +4.
type AbilityScores struct {
	Strength     int
	Dexterity    int
	Constitution int
	Intelligence int
	Wisdom       int
	Charisma     int
}

// Modifier returns the fixed score-to-modifier mapping.
//
// Postcondition: result is in [-4, 4] and matches the table
// 1-3 → -4, 4-5 → -3, 6-7 → -2, 8-9 → -1, 10-11 → 0,
// 12-13 → +1, 14-15 → +2, 16-17 → +3, 18+ → +4.
func Modifier(score int) int {
	switch {
	case score <= 3:
		return -4
	case score <= 5:
		return -3
	case score <= 7:
		return -2
	case score <= 9:
		return -1
	case score <= 11:
		return 0
	case score <= 13:
		return 1
	case score <= 15:
		return 2
	case score <= 17:
		return 3
	default:
		return 4
	}
}

// Value returns the score for the given ability.
//
// Precondition: a is one of the six Ability constants.
func (s AbilityScores) Value(a Ability) int {
	switch a {
	case AbilityStrength:
		return s.Strength
	case AbilityDexterity:
		return s.Dexterity
	case AbilityConstitution:
		return s.Constitution
	case AbilityIntelligence:
		return s.Intelligence
	case AbilityWisdom:
		return s.Wisdom
	case AbilityCharisma:
		return s.Charisma
	default:
		panic("ruleset: Value called with unknown ability " + string(a))
	}
}

// Highest returns the largest of the six scores.
func (s AbilityScores) Highest() int {
	best := s.Strength
	for _, v := range []int{s.Dexterity, s.Constitution, s.Intelligence, s.Wisdom, s.Charisma} {
		if v > best {
			best = v
		}
	}
	return best
}

// BestNonConstitution returns the highest ability other than Constitution and
// its value. Ties resolve in the order Strength, Dexterity, Intelligence,
// Wisdom, Charisma.
func (s AbilityScores) BestNonConstitution() (Ability, int) {
	order := []Ability{AbilityStrength, AbilityDexterity, AbilityIntelligence, AbilityWisdom, AbilityCharisma}
	best := order[0]
	bestVal := s.Value(best)
	for _, a := range order[1:] {
		if s.Value(a) > bestVal {
			best = a
			bestVal = s.Value(a)
		}
	}
	return best, bestVal
}
