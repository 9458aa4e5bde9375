package engine

// Booster identifies a character-specific upgrade picked after characters.
type Booster int

const (
	BoosterShadow Booster = iota
	BoosterSpeedy
	BoosterRegenerative
	BoosterZombieCorps
	BoosterAtlas
	BoosterStrong
	BoosterBackwards
	BoosterMoustachio
	BoosterNone
)

var boosterNames = map[Booster]string{
	BoosterShadow:       "Shadow",
	BoosterSpeedy:       "Speedy",
	BoosterRegenerative: "Regenerative",
	BoosterZombieCorps:  "Zombie Corps",
	BoosterAtlas:        "Atlas",
	BoosterStrong:       "Strong",
	BoosterBackwards:    "Backwards",
	BoosterMoustachio:   "Moustachio",
	BoosterNone:         "No Booster",
}

func (b Booster) String() string {
	if s, ok := boosterNames[b]; ok {
		return s
	}
	return "Unknown"
}

// Moves returns the two moves the booster grants.
func (b Booster) Moves() []Move {
	switch b {
	case BoosterShadow:
		return []Move{MoveShadowFireball, MoveShadowSlip}
	case BoosterSpeedy:
		return []Move{MoveRunInCircles, MoveLightningFastKarateChop}
	case BoosterRegenerative:
		return []Move{MoveRegenerate, MoveGravedigger}
	case BoosterZombieCorps:
		return []Move{MoveZombieCorps, MoveApocalypse}
	case BoosterAtlas:
		return []Move{MoveLightning, MoveEarthquake}
	case BoosterStrong:
		return []Move{MoveTwist, MoveBend}
	case BoosterBackwards:
		return []Move{MoveBackwardsMoustachio, MoveNoseOfTheTaunted}
	case BoosterMoustachio:
		return []Move{MoveMustacheMash, MoveBigHairyDeal}
	default:
		return nil
	}
}

// ReplaceMoves applies the booster's replacement rule, reusing moves' backing array.
// Strong swaps Smash for Strong Smash, appended at the end.
func (b Booster) ReplaceMoves(moves []Move) []Move {
	if b != BoosterStrong {
		return moves
	}
	out := moves[:0]
	for _, m := range moves {
		if m != MoveSmash {
			out = append(out, m)
		}
	}
	return append(out, MoveStrongSmash)
}

// ParseBooster resolves a booster name, ignoring case and whitespace.
// "none" is accepted for BoosterNone.
func ParseBooster(s string) (Booster, bool) {
	key := normalizeName(s)
	if key == "none" {
		return BoosterNone, true
	}
	for b, name := range boosterNames {
		if normalizeName(name) == key {
			return b, true
		}
	}
	return 0, false
}
