package engine

// BatchChoice carries one choice per player for a single phase.
type BatchChoice struct {
	Phase          GamePhase       `json:"phase"`
	Characters     []Character     `json:"characters,omitempty"`
	Boosters       []Booster       `json:"boosters,omitempty"`
	DequeueChoices []DequeueChoice `json:"dequeue_choices,omitempty"`
	Actions        []Action        `json:"actions,omitempty"`
}

func CharacterBatch(c ...Character) BatchChoice {
	return BatchChoice{Phase: PhaseCharacter, Characters: c}
}

func BoosterBatch(b ...Booster) BatchChoice {
	return BatchChoice{Phase: PhaseBooster, Boosters: b}
}

func DequeueBatch(d ...DequeueChoice) BatchChoice {
	return BatchChoice{Phase: PhaseDequeue, DequeueChoices: d}
}

func ActionBatch(a ...Action) BatchChoice {
	return BatchChoice{Phase: PhaseAction, Actions: a}
}

// Len returns the number of choices for the batch's phase.
func (b BatchChoice) Len() int {
	switch b.Phase {
	case PhaseCharacter:
		return len(b.Characters)
	case PhaseBooster:
		return len(b.Boosters)
	case PhaseDequeue:
		return len(b.DequeueChoices)
	case PhaseAction:
		return len(b.Actions)
	default:
		return 0
	}
}

// BatchChoices holds every player's legal choices for the active phase.
// In PhaseFinal all slices are nil.
type BatchChoices struct {
	Phase          GamePhase         `json:"phase"`
	Characters     [][]Character     `json:"characters,omitempty"`
	Boosters       [][]Booster       `json:"boosters,omitempty"`
	DequeueChoices [][]DequeueChoice `json:"dequeue_choices,omitempty"`
	Actions        [][]Action        `json:"actions,omitempty"`
}
