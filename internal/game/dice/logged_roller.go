package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged dice rolling.
// All rolls are logged at debug level with expression, dice values, modifier,
// and total, so a character sheet can be audited from the log alone.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Source exposes the underlying randomness source for uniform table picks
// that do not go through a dice expression.
func (r *Roller) Source() Source {
	return r.src
}

// Roll evaluates expr and logs the result at debug level.
//
// Precondition: expr must come from Parse.
// Postcondition: result logged; returns RollResult or error.
func (r *Roller) Roll(expr Expression) (RollResult, error) {
	result, err := Roll(expr, r.src)
	if err != nil {
		return RollResult{}, err
	}
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result, nil
}

// RollExpr parses expr and rolls it, logging the result.
//
// Precondition: expr must be a valid dice expression string.
// Postcondition: Returns a RollResult or a parse/roll error.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e)
}

// RollAdvantage evaluates expr twice and keeps the result with the higher
// total. Both candidate rolls are logged; the kept result is logged with the
// discarded total for auditability.
//
// Precondition: expr must come from Parse.
func (r *Roller) RollAdvantage(expr Expression) (RollResult, error) {
	return r.rollTwice(expr, true)
}

// RollDisadvantage evaluates expr twice and keeps the result with the lower
// total.
//
// Precondition: expr must come from Parse.
func (r *Roller) RollDisadvantage(expr Expression) (RollResult, error) {
	return r.rollTwice(expr, false)
}

func (r *Roller) rollTwice(expr Expression, keepHigher bool) (RollResult, error) {
	first, err := r.Roll(expr)
	if err != nil {
		return RollResult{}, err
	}
	second, err := r.Roll(expr)
	if err != nil {
		return RollResult{}, err
	}

	kept, discarded := first, second
	if keepHigher {
		if second.Total() > first.Total() {
			kept, discarded = second, first
		}
	} else if second.Total() < first.Total() {
		kept, discarded = second, first
	}
	mode := "advantage"
	if !keepHigher {
		mode = "disadvantage"
	}
	r.logger.Debug("dice roll resolved",
		zap.String("mode", mode),
		zap.String("expression", kept.Expression),
		zap.Int("kept", kept.Total()),
		zap.Int("discarded", discarded.Total()),
	)
	return kept, nil
}
