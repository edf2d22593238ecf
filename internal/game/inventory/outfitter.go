package inventory

import (
	"fmt"

	"github.com/grimforge/shadowgen/internal/game/dice"
	"github.com/grimforge/shadowgen/internal/game/ruleset"
)

const (
	// startingGoldExpr is rolled once per character; the total is multiplied
	// by five gold pieces.
	startingGoldExpr = "2d6"
	startingGoldUnit = 5 * CopperPerGold

	shieldPriceCP  = 10 * CopperPerGold
	leatherPriceCP = 10 * CopperPerGold
)

// Purchase is the outcome of outfitting a character at the market.
type Purchase struct {
	// Gear holds the purchased item lines in purchase order, the purse line
	// last.
	Gear []string
	// Remaining is the coin left after all purchases.
	Remaining Copper
	// Weight is the total carried weight after purchases, in gear slots.
	Weight int
}

// Outfitter buys starting equipment following the class shopping rules:
// crawling kit when affordable, then the best affordable preferred weapon,
// then shield and leather armor for the classes that use them.
type Outfitter struct {
	catalog *ruleset.Catalog
	roller  *dice.Roller
}

// NewOutfitter creates an Outfitter backed by the given catalog and roller.
//
// Precondition: catalog and roller are non-nil.
func NewOutfitter(catalog *ruleset.Catalog, roller *dice.Roller) *Outfitter {
	if catalog == nil {
		panic("inventory: NewOutfitter requires a catalog")
	}
	if roller == nil {
		panic("inventory: NewOutfitter requires a roller")
	}
	return &Outfitter{catalog: catalog, roller: roller}
}

// Outfit rolls starting gold and buys equipment for a single character.
// carried is the gear weight already committed before shopping: a wizard's
// magic items count against slots, a cleric's holy symbol does not.
//
// Precondition: scores are the character's final ability scores; carried >= 0.
// Postcondition: the returned Purchase ends with the purse line; no purchase
// is made once Weight reaches the gear slot limit.
func (o *Outfitter) Outfit(class *ruleset.Class, ancestry *ruleset.Ancestry, scores ruleset.AbilityScores, carried int) (*Purchase, error) {
	roll, err := o.roller.RollExpr(startingGoldExpr)
	if err != nil {
		return nil, fmt.Errorf("rolling starting gold: %w", err)
	}
	purse := Copper(roll.Total() * startingGoldUnit)

	slots := max(10, scores.Strength)
	if class.ID == ruleset.ClassFighter {
		slots += ruleset.Modifier(scores.Constitution)
	}

	p := &Purchase{Weight: carried}

	// The crawling kit is free gear, gated on wealth rather than coin spent.
	kit := o.catalog.CrawlingKit()
	if purse >= Copper(kit.ThresholdCP) {
		p.Gear = append(p.Gear, kit.Items...)
		p.Weight += kit.Weight
	}

	weapon, price, err := o.bestAffordableWeapon(class, purse)
	if err != nil {
		return nil, err
	}
	if p.Weight < slots {
		if swapped := ancestry.SwapWeapon(weapon); swapped != weapon {
			w, ok := o.catalog.Weapon(swapped)
			if !ok {
				return nil, fmt.Errorf("ancestry %q swaps %q for unknown weapon %q", ancestry.ID, weapon, swapped)
			}
			weapon, price = swapped, Copper(w.PriceCP)
		}
		p.Gear = append(p.Gear, weapon)
		p.Weight++
		purse -= price
	}

	if class.BuysShield && purse >= shieldPriceCP && p.Weight < slots {
		p.Gear = append(p.Gear, "shield")
		p.Weight++
		purse -= shieldPriceCP
	}

	if class.BuysLeatherArmor && purse >= leatherPriceCP && p.Weight < slots {
		p.Gear = append(p.Gear, "leather armor")
		p.Weight++
		purse -= leatherPriceCP
	}

	p.Gear = append(p.Gear, FormatGoldPieces(purse))
	p.Remaining = purse
	return p, nil
}

// bestAffordableWeapon returns the first weapon in the class preference list
// priced within the purse.
//
// Postcondition: returns a non-empty weapon name or a non-nil error; every
// class preference list must bottom out in a weapon cheaper than the minimum
// possible starting gold.
func (o *Outfitter) bestAffordableWeapon(class *ruleset.Class, purse Copper) (string, Copper, error) {
	for _, name := range class.WeaponPreferences {
		w, ok := o.catalog.Weapon(name)
		if !ok {
			return "", 0, fmt.Errorf("class %q prefers unknown weapon %q", class.ID, name)
		}
		if Copper(w.PriceCP) <= purse {
			return name, Copper(w.PriceCP), nil
		}
	}
	return "", 0, fmt.Errorf("class %q cannot afford any preferred weapon with %s", class.ID, FormatGoldPieces(purse))
}
