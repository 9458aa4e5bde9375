package engine

// OutcomeType identifies what a resolved batch did.
type OutcomeType string

const (
	OutcomeCharactersRechoose OutcomeType = "characters_rechoose"
	OutcomeCharactersResolved OutcomeType = "characters_resolved"
	OutcomeBoostersResolved   OutcomeType = "boosters_resolved"
	OutcomeDequeueResolved    OutcomeType = "dequeue_resolved"
	OutcomeActionResolved     OutcomeType = "action_resolved"
	OutcomeGameOver           OutcomeType = "game_over"
)

// Outcome is returned by Game.Choose. Only the fields matching Type are set.
type Outcome struct {
	Type           OutcomeType          `json:"type"`
	Characters     []Character          `json:"characters,omitempty"` // rechoose: the clashing picks
	Headstarts     []CharacterHeadstart `json:"headstarts,omitempty"`
	Boosters       []Booster            `json:"boosters,omitempty"`
	DequeueChoices []DequeueChoice      `json:"dequeue_choices,omitempty"`
	Actions        []ActionResult       `json:"actions,omitempty"`
}

// GameOver reports whether the outcome ended the game.
func (o Outcome) GameOver() bool { return o.Type == OutcomeGameOver }

// CharacterHeadstart is a resolved character pick and the points it starts with.
type CharacterHeadstart struct {
	Character Character `json:"character"`
	Headstart int       `json:"headstart"`
}

// ActionResult is one player's resolved action.
type ActionResult struct {
	Action Action `json:"action"`
	// Points is the net change: points gained minus the threshold deduction.
	// It may be negative.
	Points int `json:"points"`
	// Total is the player's score after the change, floored at zero.
	Total int `json:"total"`
	// Destroyed items do not re-enter the queue.
	Destroyed bool `json:"destroyed"`
}
