package party_test

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/grimforge/shadowgen/internal/game/character"
	"github.com/grimforge/shadowgen/internal/game/dice"
	"github.com/grimforge/shadowgen/internal/game/party"
	"github.com/grimforge/shadowgen/internal/game/ruleset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"
)

func newTestBuilder(t require.TestingT, seed uint64) *party.Builder {
	cat, err := ruleset.Load()
	require.NoError(t, err)
	roller := dice.NewLoggedRoller(dice.NewSeededSource(seed), zap.NewNop())
	gen := character.NewGenerator(cat, roller, zap.NewNop())
	return party.NewBuilder(gen, zap.NewNop())
}

func TestBuild_FillsRequestedSize(t *testing.T) {
	p, err := newTestBuilder(t, 1).Build(4, false)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, p.ID)
	require.Len(t, p.Members, 4)
	for _, member := range p.Members {
		assert.NotEmpty(t, member.Name)
		assert.GreaterOrEqual(t, member.HitPoints, 1)
	}
}

func TestBuild_UniqueClassesAreDistinct(t *testing.T) {
	p, err := newTestBuilder(t, 3).Build(7, true)
	require.NoError(t, err)
	require.Len(t, p.Members, 7)

	seen := make(map[ruleset.ClassKey]bool, 7)
	for _, member := range p.Members {
		assert.False(t, seen[member.ClassKey], "class %s repeated", member.ClassKey)
		seen[member.ClassKey] = true
	}
}

func TestBuild_UniqueOversizedFails(t *testing.T) {
	p, err := newTestBuilder(t, 1).Build(8, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, character.ErrConstraintUnsatisfiable)
	assert.Nil(t, p, "a failed build must not produce a partial party")
}

func TestBuild_NonUniqueAllowsRepeats(t *testing.T) {
	p, err := newTestBuilder(t, 2).Build(10, false)
	require.NoError(t, err)
	assert.Len(t, p.Members, 10)
}

func TestBuild_RejectsNonPositiveSize(t *testing.T) {
	b := newTestBuilder(t, 1)
	for _, size := range []int{0, -3} {
		p, err := b.Build(size, false)
		require.Error(t, err)
		assert.Nil(t, p)
	}
}

func TestNewBuilder_RequiresDependencies(t *testing.T) {
	cat, err := ruleset.Load()
	require.NoError(t, err)
	gen := character.NewGenerator(cat, dice.NewLoggedRoller(dice.NewSeededSource(1), zap.NewNop()), zap.NewNop())

	assert.Panics(t, func() { party.NewBuilder(nil, zap.NewNop()) })
	assert.Panics(t, func() { party.NewBuilder(gen, nil) })
}

// Property: the members of a party depend only on the seed, the size, and the
// uniqueness flag. The party ID is fresh per build and excluded here.
func TestBuild_MembersAreSeedDeterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		size := rapid.IntRange(1, 7).Draw(rt, "size")
		unique := rapid.Bool().Draw(rt, "unique")

		first, err := newTestBuilder(rt, seed).Build(size, unique)
		if err != nil {
			rt.Fatal(err)
		}
		second, err := newTestBuilder(rt, seed).Build(size, unique)
		if err != nil {
			rt.Fatal(err)
		}

		if len(first.Members) != size {
			rt.Fatalf("expected %d members, got %d", size, len(first.Members))
		}
		for i := range first.Members {
			if !reflect.DeepEqual(first.Members[i], second.Members[i]) {
				rt.Fatalf("member %d differs between identically seeded builds", i)
			}
		}
		if unique {
			seen := make(map[ruleset.ClassKey]bool, size)
			for _, member := range first.Members {
				if seen[member.ClassKey] {
					rt.Fatalf("class %s repeated in a unique party", member.ClassKey)
				}
				seen[member.ClassKey] = true
			}
		}
	})
}
