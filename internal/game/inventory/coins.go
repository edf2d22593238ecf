// Package inventory handles coin arithmetic and the starting-gear shopping
// trip that outfits a freshly generated character.
package inventory

import "fmt"

const (
	// CopperPerGold is the number of base-unit copper pieces in one gold piece.
	CopperPerGold = 100
	// CopperPerTenth is the number of copper pieces in a tenth of a gold piece.
	CopperPerTenth = 10
)

// Copper is a coin amount in base-unit copper pieces. Purses and price tables
// hold integer copper so purchase arithmetic never rounds.
type Copper int

// DecomposeGold converts a copper total into display tiers.
//
// Precondition: total >= 0.
// Postcondition: gold*100 + tenths*10 + coppers == int(total); 0 <= tenths < 10; 0 <= coppers < 10.
func DecomposeGold(total Copper) (gold, tenths, coppers int) {
	gold = int(total) / CopperPerGold
	remainder := int(total) % CopperPerGold
	tenths = remainder / CopperPerTenth
	coppers = remainder % CopperPerTenth
	return gold, tenths, coppers
}

// FormatGoldPieces returns the purse line for a character sheet: gold pieces
// with a single decimal place, "13.0 gold pieces".
//
// Precondition: total >= 0.
// Postcondition: copper below a tenth of a gold piece is truncated, never
// rounded up.
func FormatGoldPieces(total Copper) string {
	gold, tenths, _ := DecomposeGold(total)
	return fmt.Sprintf("%d.%d gold pieces", gold, tenths)
}
