package dice_test

import (
	"testing"

	"github.com/grimforge/shadowgen/internal/game/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"
)

// TestRoll_BoundsProperty verifies that every roll total lies within the
// arithmetic bounds of its expression.
func TestRoll_BoundsProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 10).Draw(rt, "count")
		sides := rapid.IntRange(2, 20).Draw(rt, "sides")
		seed := rapid.Uint64().Draw(rt, "seed")

		expr := dice.Expression{Raw: "test", Count: count, Sides: sides}
		result, err := dice.Roll(expr, dice.NewSeededSource(seed))
		require.NoError(rt, err)

		assert.GreaterOrEqual(rt, result.Total(), count, "total below minimum")
		assert.LessOrEqual(rt, result.Total(), count*sides, "total above maximum")
		assert.Len(rt, result.Dice, count)
		for _, d := range result.Dice {
			assert.GreaterOrEqual(rt, d, 1)
			assert.LessOrEqual(rt, d, sides)
		}
	})
}

// TestRoll_KeepHighest verifies that kh keeps exactly the N highest dice.
func TestRoll_KeepHighest(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		src := dice.NewSeededSource(seed)

		expr := dice.MustParse("4d6kh3")
		result, err := dice.Roll(expr, src)
		require.NoError(rt, err)

		assert.Len(rt, result.Dice, 3, "kh3 must keep exactly 3 dice")
		assert.GreaterOrEqual(rt, result.Total(), 3)
		assert.LessOrEqual(rt, result.Total(), 18)
	})
}

// TestRollExpr_ParseError verifies the parse error propagates.
func TestRollExpr_ParseError(t *testing.T) {
	_, err := dice.RollExpr("bogus", dice.NewCryptoSource())
	assert.Error(t, err)
}

// TestRoller_Roll verifies logged rolling returns the same results a bare
// Roll would with the same source stream.
func TestRoller_Roll(t *testing.T) {
	seeded := dice.NewSeededSource(7)
	bare, err := dice.RollExpr("3d6", dice.NewSeededSource(7))
	require.NoError(t, err)

	roller := dice.NewLoggedRoller(seeded, zap.NewNop())
	logged, err := roller.RollExpr("3d6")
	require.NoError(t, err)

	assert.Equal(t, bare.Dice, logged.Dice, "logging must not change roll results")
}

// TestRoller_RollAdvantage verifies advantage keeps the higher of two totals
// and disadvantage the lower, for identical source streams.
func TestRoller_RollAdvantage(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		expr := dice.MustParse("1d6")

		first, err := dice.Roll(expr, dice.NewSeededSource(seed))
		require.NoError(rt, err)
		reference := dice.NewSeededSource(seed)
		_, err = dice.Roll(expr, reference)
		require.NoError(rt, err)
		second, err := dice.Roll(expr, reference)
		require.NoError(rt, err)

		adv, err := dice.NewLoggedRoller(dice.NewSeededSource(seed), zap.NewNop()).RollAdvantage(expr)
		require.NoError(rt, err)
		dis, err := dice.NewLoggedRoller(dice.NewSeededSource(seed), zap.NewNop()).RollDisadvantage(expr)
		require.NoError(rt, err)

		assert.Equal(rt, max(first.Total(), second.Total()), adv.Total(),
			"advantage must keep the higher total")
		assert.Equal(rt, min(first.Total(), second.Total()), dis.Total(),
			"disadvantage must keep the lower total")
	})
}

// TestRoller_AdvantageNeverWorse verifies the defining advantage property
// against a plain roll drawn from the same stream position.
func TestRoller_AdvantageNeverWorse(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		expr := dice.MustParse("1d8")

		plain, err := dice.Roll(expr, dice.NewSeededSource(seed))
		require.NoError(rt, err)

		adv, err := dice.NewLoggedRoller(dice.NewSeededSource(seed), zap.NewNop()).RollAdvantage(expr)
		require.NoError(rt, err)

		assert.GreaterOrEqual(rt, adv.Total(), plain.Total(),
			"advantage can never be worse than the first roll of the same stream")
	})
}
