// Package party assembles groups of freshly generated adventurers.
package party

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/grimforge/shadowgen/internal/game/character"
	"github.com/grimforge/shadowgen/internal/game/ruleset"
	"go.uber.org/zap"
)

// Party is an adventuring group produced by a single build.
type Party struct {
	ID      uuid.UUID
	Members []*character.Character
}

// Builder rolls parties through a shared character generator.
type Builder struct {
	gen    *character.Generator
	logger *zap.Logger
}

// NewBuilder creates a Builder.
//
// Precondition: gen and logger must be non-nil.
func NewBuilder(gen *character.Generator, logger *zap.Logger) *Builder {
	if gen == nil {
		panic("party: NewBuilder requires a generator")
	}
	if logger == nil {
		panic("party: NewBuilder requires a logger")
	}
	return &Builder{gen: gen, logger: logger}
}

// Build generates size characters in order. When unique is set, no two
// members share a class; the size is checked against the class count up
// front so a failed build produces no partial party.
//
// Postcondition: on success the party has exactly size members; on failure
// the party is nil.
func (b *Builder) Build(size int, unique bool) (*Party, error) {
	if size < 1 {
		return nil, fmt.Errorf("party size %d must be at least 1", size)
	}
	if classes := b.gen.ClassCount(); unique && size > classes {
		return nil, fmt.Errorf("unique party of %d exceeds the %d available classes: %w",
			size, classes, character.ErrConstraintUnsatisfiable)
	}

	p := &Party{ID: uuid.New()}
	excluded := make(map[ruleset.ClassKey]bool, size)
	for i := 0; i < size; i++ {
		member, err := b.gen.Generate(excluded)
		if err != nil {
			return nil, fmt.Errorf("generating member %d of %d: %w", i+1, size, err)
		}
		if unique {
			excluded[member.ClassKey] = true
		}
		b.logger.Debug("party member ready",
			zap.String("party_id", p.ID.String()),
			zap.Int("member", i+1),
			zap.String("name", member.Name),
			zap.String("class", string(member.ClassKey)),
		)
		p.Members = append(p.Members, member)
	}

	b.logger.Info("assembled party",
		zap.String("party_id", p.ID.String()),
		zap.Int("size", size),
		zap.Bool("unique_classes", unique),
	)
	return p, nil
}
