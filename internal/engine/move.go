package engine

// Move identifies one of the fixed catalogue of moves.
type Move int

const (
	MoveKick Move = iota
	MoveNinjaSword
	MoveNunchucks
	MoveShadowFireball
	MoveShadowSlip
	MoveRunInCircles
	MoveLightningFastKarateChop
	MoveRampage
	MoveMuscle
	MoveZap
	MoveRegenerate
	MoveGravedigger
	MoveZombieCorps
	MoveApocalypse
	MoveSamuraiSword
	MoveHelmet
	MoveSmash
	MoveStrongSmash
	MoveLightning
	MoveEarthquake
	MoveTwist
	MoveBend
	MoveJugglingKnives
	MoveAcidSpray
	MoveNose
	MoveBackwardsMoustachio
	MoveNoseOfTheTaunted
	MoveMustacheMash
	MoveBigHairyDeal

	moveCount = int(MoveBigHairyDeal) + 1
)

var moveNames = map[Move]string{
	MoveKick:                    "Kick",
	MoveNinjaSword:              "Ninja Sword",
	MoveNunchucks:               "Nunchucks",
	MoveShadowFireball:          "Shadow Fireball",
	MoveShadowSlip:              "Shadow Slip",
	MoveRunInCircles:            "Run In Circles",
	MoveLightningFastKarateChop: "Lightning Fast Karate Chop",
	MoveRampage:                 "Rampage",
	MoveMuscle:                  "Muscle",
	MoveZap:                     "Zap",
	MoveRegenerate:              "Regenerate",
	MoveGravedigger:             "Gravedigger",
	MoveZombieCorps:             "Zombie Corps",
	MoveApocalypse:              "Apocalypse",
	MoveSamuraiSword:            "Samurai Sword",
	MoveHelmet:                  "Helmet",
	MoveSmash:                   "Smash",
	MoveStrongSmash:             "Strong Smash",
	MoveLightning:               "Lightning",
	MoveEarthquake:              "Earthquake",
	MoveTwist:                   "Twist",
	MoveBend:                    "Bend",
	MoveJugglingKnives:          "Juggling Knives",
	MoveAcidSpray:               "Acid Spray",
	MoveNose:                    "Nose",
	MoveBackwardsMoustachio:     "Backwards Moustachio",
	MoveNoseOfTheTaunted:        "Nose Of The Taunted",
	MoveMustacheMash:            "Mustache Mash",
	MoveBigHairyDeal:            "Big Hairy Deal",
}

func (m Move) String() string {
	if s, ok := moveNames[m]; ok {
		return s
	}
	return "Unknown"
}

func (m Move) valid() bool {
	return m >= 0 && int(m) < moveCount
}

// PointsAgainst returns the points m scores against other (0 or 1).
func (m Move) PointsAgainst(other Move) int {
	if !m.valid() || !other.valid() {
		return 0
	}
	return int(moveOutcomes[int(other)*moveCount+int(m)])
}

// IsSingleUse reports whether the move never returns to its owner's queue.
func (m Move) IsSingleUse() bool {
	switch m {
	case MoveZap, MoveRegenerate, MoveAcidSpray:
		return true
	}
	return false
}

// IsDestructive reports whether using the move keeps every item spent in the
// same batch out of its queue.
func (m Move) IsDestructive() bool {
	switch m {
	case MoveZap, MoveAcidSpray:
		return true
	}
	return false
}

// AllMoves returns the catalogue in table order.
func AllMoves() []Move {
	moves := make([]Move, moveCount)
	for i := range moves {
		moves[i] = Move(i)
	}
	return moves
}

// ParseMove resolves a move name, ignoring case and whitespace.
func ParseMove(s string) (Move, bool) {
	key := normalizeName(s)
	for m, name := range moveNames {
		if normalizeName(name) == key {
			return m, true
		}
	}
	return 0, false
}
