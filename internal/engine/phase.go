package engine

// GamePhase identifies which player shape the game currently holds.
type GamePhase int

const (
	PhaseCharacter GamePhase = iota // players pick characters
	PhaseBooster                    // players pick boosters
	PhaseDequeue                    // players decide what leaves their queue
	PhaseAction                     // players pick actions, points are scored
	PhaseFinal                      // game over
)

var phaseNames = map[GamePhase]string{
	PhaseCharacter: "Character",
	PhaseBooster:   "Booster",
	PhaseDequeue:   "Dequeue",
	PhaseAction:    "Action",
	PhaseFinal:     "Final",
}

func (p GamePhase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "Unknown"
}
