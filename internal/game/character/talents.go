package character

import (
	"fmt"

	"github.com/grimforge/shadowgen/internal/game/dice"
	"github.com/grimforge/shadowgen/internal/game/ruleset"
)

// Languages granted by class rather than ancestry. Clerics learn one
// liturgical tongue they do not already speak; witches learn all three of
// theirs.
var (
	clericLanguages = []string{"primordial", "diabolic", "celestial"}
	witchLanguages  = []string{"diabolic", "primordial", "sylvan"}
)

// slimeImmunities are the damage immunities Mugdulblub can bestow.
var slimeImmunities = []string{"cold", "acid", "poison"}

// Warlock patrons, keyed off the best non-Constitution ability score.
const (
	patronMugdulblub = "Mugdulblub"
	patronAlmazzat   = "Almazzat"
	patronKytheros   = "Kytheros"
	patronShune      = "Shune the Vile"
	patronTitania    = "Titania"
	patronWillowman  = "The Willowman"
)

// build accumulates a character through the talent and language steps.
// Ability scores mutate as talent rolls land; every other field only grows.
type build struct {
	catalog  *ruleset.Catalog
	roller   *dice.Roller
	class    *ruleset.Class
	ancestry *ruleset.Ancestry

	scores    ruleset.AbilityScores
	languages map[string]bool
	talents   []string
	spells    map[string]bool
	advSpells []string // insertion order, one talent line each
	advSet    map[string]bool
	gear      []string
	carried   int // gear weight committed before shopping
}

func newBuild(catalog *ruleset.Catalog, roller *dice.Roller, class *ruleset.Class, ancestry *ruleset.Ancestry, scores ruleset.AbilityScores) *build {
	return &build{
		catalog:   catalog,
		roller:    roller,
		class:     class,
		ancestry:  ancestry,
		scores:    scores,
		languages: make(map[string]bool),
		spells:    make(map[string]bool),
		advSet:    make(map[string]bool),
	}
}

func (b *build) src() dice.Source {
	return b.roller.Source()
}

func (b *build) learn(language string) {
	b.languages[language] = true
}

// learnAncestryLanguages grants common, the ancestry tongues, and any bonus
// common-pool languages the ancestry rolls for.
func (b *build) learnAncestryLanguages() error {
	b.learn(ruleset.LanguageCommon)
	for _, lang := range b.ancestry.Languages {
		b.learn(lang)
	}
	for i := 0; i < b.ancestry.BonusCommonLanguages; i++ {
		lang, err := pickExcluding(b.src(), b.catalog.CommonLanguages(), b.languages)
		if err != nil {
			return err
		}
		b.learn(lang)
	}
	return nil
}

func (b *build) appendTalent(line string) {
	b.talents = append(b.talents, line)
}

// appendTalentOnce adds line unless an identical talent is already held.
func (b *build) appendTalentOnce(line string) {
	if !b.hasTalent(line) {
		b.appendTalent(line)
	}
}

func (b *build) hasTalent(line string) bool {
	for _, t := range b.talents {
		if t == line {
			return true
		}
	}
	return false
}

func (b *build) know(spell string) {
	b.spells[spell] = true
}

// knownSpells returns the spell set in sorted order so random picks over it
// stay reproducible under a seeded source.
func (b *build) knownSpells() []string {
	return sortedKeys(b.spells)
}

// fillSpells adds distinct spells from the class list until the class
// starting count is reached.
func (b *build) fillSpells() error {
	list, ok := b.catalog.SpellList(b.class.SpellList)
	if !ok {
		return fmt.Errorf("class %q references unknown spell list %q", b.class.ID, b.class.SpellList)
	}
	for len(b.spells) < b.class.SpellsKnown {
		spell, err := pickExcluding(b.src(), list.Spells, b.spells)
		if err != nil {
			return err
		}
		b.know(spell)
	}
	return nil
}

// learnSpellFrom adds one spell from the named list that is not yet known.
func (b *build) learnSpellFrom(listID string) error {
	list, ok := b.catalog.SpellList(listID)
	if !ok {
		return fmt.Errorf("unknown spell list %q", listID)
	}
	spell, err := pickExcluding(b.src(), list.Spells, b.spells)
	if err != nil {
		return err
	}
	b.know(spell)
	return nil
}

// grantAdvantage marks one known spell, not yet favored, for advantage.
func (b *build) grantAdvantage() error {
	spell, err := pickExcluding(b.src(), b.knownSpells(), b.advSet)
	if err != nil {
		return err
	}
	b.advSet[spell] = true
	b.advSpells = append(b.advSpells, spell)
	return nil
}

// applyAdvantageSpells converts each favored spell into a talent line.
func (b *build) applyAdvantageSpells() {
	for _, spell := range b.advSpells {
		b.appendTalent("advantage on casting " + spell)
	}
}

// applyAncestryTalent appends the ancestry talent, honoring any per-class
// override. Ancestries without a talent line contribute nothing.
func (b *build) applyAncestryTalent() {
	if t := b.ancestry.TalentFor(b.class.ID); t != "" {
		b.appendTalent(t)
	}
}

// add applies a delta to one ability score.
func (b *build) add(a ruleset.Ability, delta int) {
	switch a {
	case ruleset.AbilityStrength:
		b.scores.Strength += delta
	case ruleset.AbilityDexterity:
		b.scores.Dexterity += delta
	case ruleset.AbilityConstitution:
		b.scores.Constitution += delta
	case ruleset.AbilityIntelligence:
		b.scores.Intelligence += delta
	case ruleset.AbilityWisdom:
		b.scores.Wisdom += delta
	case ruleset.AbilityCharisma:
		b.scores.Charisma += delta
	}
}

// bumpFirst adds +2 to the first listed ability still below 18; the last
// entry takes the bump unconditionally.
func (b *build) bumpFirst(abilities ...ruleset.Ability) {
	for i, a := range abilities {
		if i == len(abilities)-1 || b.scores.Value(a) < 18 {
			b.add(a, 2)
			return
		}
	}
}

// talentRolls makes the character's 2d6 talent rolls: two for ancestries
// with the extra roll, one for everyone else. When rerollAll is non-nil and
// every roll of a multi-roll set satisfies it, the whole set is rerolled;
// the guard keeps one-per-character talents from doubling up.
func (b *build) talentRolls(rerollAll func(int) bool) ([]int, error) {
	count := 1
	if b.ancestry.ExtraTalentRoll {
		count = 2
	}
	for {
		rolls := make([]int, count)
		for i := range rolls {
			result, err := b.roller.RollExpr(talentRollExpr)
			if err != nil {
				return nil, err
			}
			rolls[i] = result.Total()
		}
		if count == 1 || rerollAll == nil {
			return rolls, nil
		}
		retry := true
		for _, r := range rolls {
			if !rerollAll(r) {
				retry = false
				break
			}
		}
		if !retry {
			return rolls, nil
		}
	}
}

// applyClassKit runs the class talent table: fixed talents, starting spells,
// class languages and gear, and the 2d6 talent rolls.
func (b *build) applyClassKit() error {
	switch b.class.ID {
	case ruleset.ClassCleric:
		return b.clericKit()
	case ruleset.ClassFighter:
		return b.fighterKit()
	case ruleset.ClassThief:
		return b.thiefKit()
	case ruleset.ClassWizard:
		return b.wizardKit()
	case ruleset.ClassKnightOfStYdris:
		return b.knightKit()
	case ruleset.ClassWarlock:
		return b.warlockKit()
	case ruleset.ClassWitch:
		return b.witchKit()
	default:
		return fmt.Errorf("class %q has no talent table", b.class.ID)
	}
}

func (b *build) clericKit() error {
	tongue, err := pickExcluding(b.src(), clericLanguages, b.languages)
	if err != nil {
		return err
	}
	b.learn(tongue)
	b.gear = append(b.gear, "holy symbol")

	b.know("turn undead")
	if err := b.fillSpells(); err != nil {
		return err
	}

	deity, err := b.pickDeity()
	if err != nil {
		return err
	}
	b.appendTalent("worshipper of " + deity)

	var spellcasting, melee int
	rolls, err := b.talentRolls(nil)
	if err != nil {
		return err
	}
	for _, r := range rolls {
		switch {
		case r == 2:
			if err := b.grantAdvantage(); err != nil {
				return err
			}
		case r <= 6:
			melee++
		case r <= 9:
			spellcasting++
		case r <= 11:
			b.bumpFirst(ruleset.AbilityWisdom, ruleset.AbilityStrength)
		default:
			spellcasting++
		}
	}
	if spellcasting > 0 {
		b.appendTalent(fmt.Sprintf("+%d to cleric spellcasting checks", spellcasting))
	}
	if melee > 0 {
		b.appendTalent(fmt.Sprintf("+%d to melee attacks", melee))
	}
	return nil
}

// pickDeity chooses an alignment uniformly, then a deity of that alignment.
func (b *build) pickDeity() (string, error) {
	alignment := ruleset.Alignments[b.src().Intn(len(ruleset.Alignments))]
	return pickString(b.src(), b.catalog.Deities(alignment))
}

func (b *build) fighterKit() error {
	b.appendTalent("hauler: add con mod, if positive to gear slots")
	b.appendTalent("weapon mastery: " + b.ancestry.SwapWeapon("bastard sword"))
	b.appendTalent("Grit: advantage on strength checks to overcome opposing force")

	var meleeAndRanged, armor int
	rolls, err := b.talentRolls(nil)
	if err != nil {
		return err
	}
	for _, r := range rolls {
		switch {
		case r == 2:
			if b.hasTalent("weapon mastery: longbow") {
				b.appendTalent("weapon mastery: greatsword")
			} else {
				b.appendTalent("weapon mastery: longbow")
			}
		case r <= 6:
			meleeAndRanged++
		case r <= 9:
			b.bumpFirst(ruleset.AbilityStrength, ruleset.AbilityConstitution, ruleset.AbilityDexterity)
		case r <= 11:
			armor++
		default:
			meleeAndRanged++
		}
	}
	if meleeAndRanged > 0 {
		b.appendTalent(fmt.Sprintf("+%d to melee and ranged attacks", meleeAndRanged))
	}
	if armor > 0 {
		b.appendTalent(fmt.Sprintf("+%d AC when wearing plate mail", armor))
	}
	return nil
}

func (b *build) thiefKit() error {
	b.appendTalent("backstab: on attack against unaware target, add 1+half-level damage dice")
	b.appendTalent("thievery: you always have thieves' tools, no gear slots needed")
	b.appendTalent("trained in climbing, sneaking, hiding, finding/disabling traps, delicate " +
		"work like picking pockets and locks (advantage on relevant checks)")

	var meleeAndRanged, backstab int
	// A double 2 would grant initiative advantage twice; reroll instead.
	rolls, err := b.talentRolls(func(r int) bool { return r == 2 })
	if err != nil {
		return err
	}
	for _, r := range rolls {
		switch {
		case r == 2:
			b.appendTalent("advantage on initiative rolls")
		case r <= 5:
			backstab++
		case r <= 9:
			b.bumpFirst(ruleset.AbilityDexterity, ruleset.AbilityCharisma, ruleset.AbilityConstitution)
		default:
			meleeAndRanged++
		}
	}
	if meleeAndRanged > 0 {
		b.appendTalent(fmt.Sprintf("+%d to melee and ranged attacks", meleeAndRanged))
	}
	if backstab > 0 {
		b.appendTalent(fmt.Sprintf("+%d to backstab damage dice", backstab))
	}
	return nil
}

func (b *build) wizardKit() error {
	common, err := sampleUnknown(b.src(), b.catalog.CommonLanguages(), b.languages, 2)
	if err != nil {
		return err
	}
	rare, err := sampleUnknown(b.src(), b.catalog.RareLanguages(), b.languages, 2)
	if err != nil {
		return err
	}
	for _, lang := range append(common, rare...) {
		b.learn(lang)
	}

	if err := b.fillSpells(); err != nil {
		return err
	}

	var spellcasting int
	rolls, err := b.talentRolls(nil)
	if err != nil {
		return err
	}
	for _, r := range rolls {
		switch {
		case r == 2:
			item, err := pickString(b.src(), b.catalog.MagicItems())
			if err != nil {
				return err
			}
			b.gear = append(b.gear, item)
			b.carried++
		case r <= 6 || r == 12:
			if b.scores.Intelligence < 18 {
				b.add(ruleset.AbilityIntelligence, 2)
			} else {
				spellcasting++
			}
		case r <= 9:
			if err := b.grantAdvantage(); err != nil {
				return err
			}
		default:
			if err := b.learnSpellFrom(b.class.SpellList); err != nil {
				return err
			}
		}
	}
	if spellcasting > 0 {
		b.appendTalent(fmt.Sprintf("+%d to wizard spellcasting checks", spellcasting))
	}
	return nil
}

func (b *build) knightKit() error {
	b.learn("diabolic")

	possession := 1
	var spellcasting, melee int
	rolls, err := b.talentRolls(nil)
	if err != nil {
		return err
	}
	for _, r := range rolls {
		switch {
		case r == 2 || r == 12:
			possession++
		case r <= 6:
			melee++
		case r <= 9:
			b.bumpFirst(ruleset.AbilityStrength, ruleset.AbilityConstitution, ruleset.AbilityDexterity)
		default:
			if b.scores.Charisma < 18 {
				b.add(ruleset.AbilityCharisma, 2)
			} else {
				spellcasting++
			}
		}
	}
	if spellcasting > 0 {
		b.appendTalent(fmt.Sprintf("+%d to witch spellcasting checks", spellcasting))
	}
	if melee > 0 {
		b.appendTalent(fmt.Sprintf("+%d to melee attacks", melee))
	}
	b.appendTalent(fmt.Sprintf("demonic possession: 3/day, gain a %d half-level bonus to damage rolls for 3 rounds", possession))
	return nil
}

func (b *build) witchKit() error {
	for _, lang := range witchLanguages {
		b.learn(lang)
	}
	b.appendTalent("familiar: you have a little buddy, it speaks common and you can cast spells through it")

	if err := b.fillSpells(); err != nil {
		return err
	}

	var spellcasting, teleport int
	rolls, err := b.talentRolls(nil)
	if err != nil {
		return err
	}
	for _, r := range rolls {
		switch {
		case r == 2:
			teleport++
		case r <= 7 || r == 12:
			if b.scores.Charisma < 18 {
				b.add(ruleset.AbilityCharisma, 2)
			} else {
				spellcasting++
			}
		case r <= 9:
			if err := b.grantAdvantage(); err != nil {
				return err
			}
		default:
			if err := b.learnSpellFrom(b.class.SpellList); err != nil {
				return err
			}
		}
	}
	if spellcasting > 0 {
		b.appendTalent(fmt.Sprintf("+%d to witch spellcasting checks", spellcasting))
	}
	if teleport > 0 {
		b.appendTalent(fmt.Sprintf("%d/day teleport to familiar's location", teleport))
	}
	return nil
}

// warlockKit resolves the patron from the best non-Constitution score, runs
// the patron talent table, then the bonuses every patron shares.
func (b *build) warlockKit() error {
	patron := b.patronName()
	b.appendTalent("warlock of " + patron)

	var melee, armor int
	var err error
	switch patron {
	case patronMugdulblub:
		err = b.mugdulblubRolls()
	case patronAlmazzat:
		melee, err = b.almazzatRolls()
	case patronKytheros:
		armor, err = b.kytherosRolls()
	case patronShune:
		err = b.shuneRolls()
	case patronTitania:
		err = b.titaniaRolls()
	case patronWillowman:
		melee, err = b.willowmanRolls()
	}
	if err != nil {
		return err
	}

	if melee > 0 {
		b.appendTalent(fmt.Sprintf("+%d to melee attacks", melee))
	}
	if armor > 0 {
		b.appendTalent(fmt.Sprintf("+%d to AC", armor))
	}
	return nil
}

// patronName maps the best non-Constitution score to a patron. A character
// below 10 in all five serves the slime god.
func (b *build) patronName() string {
	best, value := b.scores.BestNonConstitution()
	if value < 10 {
		return patronMugdulblub
	}
	switch best {
	case ruleset.AbilityStrength:
		return patronAlmazzat
	case ruleset.AbilityDexterity:
		return patronTitania
	case ruleset.AbilityIntelligence:
		return patronShune
	case ruleset.AbilityWisdom:
		return patronKytheros
	default:
		return patronWillowman
	}
}

func (b *build) mugdulblubRolls() error {
	var hitDice int
	rolls, err := b.talentRolls(nil)
	if err != nil {
		return err
	}
	for _, r := range rolls {
		switch {
		case r == 2:
			b.appendTalentOnce("1/day, turn into a crawling puddle of slime for 3 rounds")
		case r <= 7:
			hitDice += 2
		case r <= 9 || r == 12:
			b.bumpFirst(ruleset.AbilityConstitution, ruleset.AbilityDexterity)
		default:
			if err := b.grantImmunity(); err != nil {
				return err
			}
		}
	}
	if hitDice > 0 {
		b.appendTalent(fmt.Sprintf("Maximize %d hit dice rolls (prior or future)", hitDice))
	}
	return nil
}

// grantImmunity bestows a damage immunity the character does not yet hold.
func (b *build) grantImmunity() error {
	held := make(map[string]bool, len(slimeImmunities))
	for _, imm := range slimeImmunities {
		if b.hasTalent("immune to " + imm) {
			held[imm] = true
		}
	}
	imm, err := pickExcluding(b.src(), slimeImmunities, held)
	if err != nil {
		return err
	}
	b.appendTalent("immune to " + imm)
	return nil
}

func (b *build) almazzatRolls() (int, error) {
	var advantage, melee int
	// A double initiative talent cannot stand; reroll sets landing twice in
	// the 10-11 band.
	rolls, err := b.talentRolls(func(r int) bool { return r == 10 || r == 11 })
	if err != nil {
		return 0, err
	}
	for _, r := range rolls {
		switch {
		case r == 2:
			advantage++
		case r <= 7:
			melee++
		case r <= 9 || r == 12:
			if b.scores.Strength < 18 {
				b.add(ruleset.AbilityStrength, 2)
			} else {
				melee++
			}
		default:
			b.appendTalent("advantage on initiative rolls")
		}
	}
	if advantage > 0 {
		b.appendTalent(fmt.Sprintf("%d/day, gain advantage on melee attacks for 3 rounds", advantage))
	}
	return melee, nil
}

func (b *build) kytherosRolls() (int, error) {
	var rerolls, armor int
	rolls, err := b.talentRolls(func(r int) bool { return r == 10 || r == 11 })
	if err != nil {
		return 0, err
	}
	for _, r := range rolls {
		switch {
		case r == 2:
			rerolls++
		case r <= 7:
			armor++
		case r <= 9 || r == 12:
			b.bumpFirst(ruleset.AbilityWisdom, ruleset.AbilityDexterity, ruleset.AbilityStrength)
		default:
			b.appendTalent("3/day, add WIS bonus to any roll")
		}
	}
	if rerolls > 0 {
		b.appendTalent(fmt.Sprintf("%d/day, force GM to reroll", rerolls))
	}
	return armor, nil
}

func (b *build) shuneRolls() error {
	var xp, mind int
	rolls, err := b.talentRolls(nil)
	if err != nil {
		return err
	}
	for _, r := range rolls {
		switch {
		case r == 2:
			mind++
		case r <= 7 || r == 12:
			if err := b.learnSpellFrom("wizard"); err != nil {
				return err
			}
		case r <= 9:
			b.bumpFirst(ruleset.AbilityIntelligence, ruleset.AbilityDexterity)
		default:
			xp++
		}
	}
	if xp > 0 {
		b.appendTalent(fmt.Sprintf("+%d xp on learning a valuable secret", xp))
	}
	if mind > 0 {
		b.appendTalent(fmt.Sprintf("%d/day, read the mind of a creature you touch for 3 rounds", mind))
	}
	return nil
}

func (b *build) titaniaRolls() error {
	var ranged int
	rolls, err := b.talentRolls(func(r int) bool { return r == 10 || r == 11 })
	if err != nil {
		return err
	}
	for _, r := range rolls {
		switch {
		case r == 2:
			b.appendTalentOnce("1/day, hypnotize a 5 HD or less creature for 3 rounds")
		case r <= 7:
			if b.hasTalent("can use a longbow") {
				ranged++
			} else {
				b.appendTalent("can use a longbow")
			}
		case r <= 9 || r == 12:
			b.bumpFirst(ruleset.AbilityDexterity, ruleset.AbilityCharisma)
		default:
			b.appendTalent("hostile spells that target you are hard to cast")
		}
	}
	if ranged > 0 {
		b.appendTalent(fmt.Sprintf("+%d to ranged attack rolls", ranged))
	}
	return nil
}

func (b *build) willowmanRolls() (int, error) {
	var teleport, morale, melee int
	rolls, err := b.talentRolls(nil)
	if err != nil {
		return 0, err
	}
	for _, r := range rolls {
		switch {
		case r == 2:
			teleport++
		case r <= 7:
			melee++
		case r <= 9 || r == 12:
			b.bumpFirst(ruleset.AbilityStrength, ruleset.AbilityDexterity)
		default:
			morale++
		}
	}
	if teleport > 0 {
		b.appendTalent(fmt.Sprintf("%d/day, teleport to a far location you see as your move", teleport))
	}
	if morale > 0 {
		b.appendTalent(fmt.Sprintf("%d/day, force a close being to check morale, even if immune", morale))
	}
	return melee, nil
}

// sampleUnknown draws n distinct entries of pool that are absent from known.
func sampleUnknown(src dice.Source, pool []string, known map[string]bool, n int) ([]string, error) {
	candidates := make([]string, 0, len(pool))
	for _, s := range pool {
		if !known[s] {
			candidates = append(candidates, s)
		}
	}
	return sampleDistinct(src, candidates, n)
}
