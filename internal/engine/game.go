package engine

import (
	"errors"
	"fmt"
)

var (
	ErrWrongPhase    = errors.New("wrong phase for this choice")
	ErrPlayerCount   = errors.New("wrong number of choices")
	ErrIllegalChoice = errors.New("illegal choice")
	ErrInvalidConfig = errors.New("invalid config")
)

// Game is the phase state machine. Exactly one of the player slices is
// populated, matching phase. A Game is not safe for concurrent use.
type Game struct {
	config Config
	phase  GamePhase

	characterless []*CharacterlessPlayer
	boosterless   []*BoosterlessPlayer
	dequeueing    []*DequeueChoicelessPlayer
	actionless    []*ActionlessPlayer
	finished      []*FinishedPlayer
}

// NewGame creates a game in the Character phase.
func NewGame(config Config) (*Game, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	players := make([]*CharacterlessPlayer, config.PlayerCount)
	for i := range players {
		players[i] = NewCharacterlessPlayer(config)
	}
	return &Game{
		config:        config,
		phase:         PhaseCharacter,
		characterless: players,
	}, nil
}

func (g *Game) Phase() GamePhase { return g.phase }

// Choices returns every player's legal choices for the active phase.
func (g *Game) Choices() BatchChoices {
	bc := BatchChoices{Phase: g.phase}
	switch g.phase {
	case PhaseCharacter:
		bc.Characters = choicesOf[*CharacterlessPlayer, Character](g.characterless)
	case PhaseBooster:
		bc.Boosters = choicesOf[*BoosterlessPlayer, Booster](g.boosterless)
	case PhaseDequeue:
		bc.DequeueChoices = choicesOf[*DequeueChoicelessPlayer, DequeueChoice](g.dequeueing)
	case PhaseAction:
		bc.Actions = choicesOf[*ActionlessPlayer, Action](g.actionless)
	}
	return bc
}

// Choose validates the batch against every player and, only if all choices
// are legal, resolves it. A rejected batch leaves the game untouched.
func (g *Game) Choose(batch BatchChoice) (Outcome, error) {
	if batch.Phase != g.phase || g.phase == PhaseFinal {
		return Outcome{}, fmt.Errorf("%w: game is in %s phase, got %s choices", ErrWrongPhase, g.phase, batch.Phase)
	}
	if n := batch.Len(); n != g.config.PlayerCount {
		return Outcome{}, fmt.Errorf("%w: got %d, want %d", ErrPlayerCount, n, g.config.PlayerCount)
	}
	switch batch.Phase {
	case PhaseCharacter:
		return g.chooseCharacters(batch.Characters)
	case PhaseBooster:
		return g.chooseBoosters(batch.Boosters)
	case PhaseDequeue:
		return g.chooseDequeue(batch.DequeueChoices)
	default:
		return g.chooseActions(batch.Actions)
	}
}

func (g *Game) chooseCharacters(characters []Character) (Outcome, error) {
	if err := checkChoices(g.characterless, characters); err != nil {
		return Outcome{}, err
	}
	if hasDuplicates(characters) {
		for i, p := range g.characterless {
			if err := p.AddToStreak(characters[i]); err != nil {
				panic("engine: validated character rejected by streak: " + err.Error())
			}
		}
		return Outcome{
			Type:       OutcomeCharactersRechoose,
			Characters: append([]Character(nil), characters...),
		}, nil
	}

	headstarts := pointsOf(characters)
	out := Outcome{Type: OutcomeCharactersResolved}
	next := make([]*BoosterlessPlayer, len(characters))
	for i, p := range g.characterless {
		h := CharacterHeadstart{Character: characters[i], Headstart: headstarts[i]}
		out.Headstarts = append(out.Headstarts, h)
		next[i] = p.IntoBoosterless(h)
	}
	g.characterless = nil
	g.boosterless = next
	g.phase = PhaseBooster
	return out, nil
}

func (g *Game) chooseBoosters(boosters []Booster) (Outcome, error) {
	if err := checkChoices(g.boosterless, boosters); err != nil {
		return Outcome{}, err
	}
	next := make([]*DequeueChoicelessPlayer, len(boosters))
	for i, p := range g.boosterless {
		next[i] = p.IntoDequeueChoiceless(boosters[i])
	}
	g.boosterless = nil
	g.dequeueing = next
	g.phase = PhaseDequeue
	return Outcome{
		Type:     OutcomeBoostersResolved,
		Boosters: append([]Booster(nil), boosters...),
	}, nil
}

func (g *Game) chooseDequeue(choices []DequeueChoice) (Outcome, error) {
	if err := checkChoices(g.dequeueing, choices); err != nil {
		return Outcome{}, err
	}
	next := make([]*ActionlessPlayer, len(choices))
	for i, p := range g.dequeueing {
		next[i] = p.IntoActionless(choices[i])
	}
	g.dequeueing = nil
	g.actionless = next
	g.phase = PhaseAction
	return Outcome{
		Type:           OutcomeDequeueResolved,
		DequeueChoices: append([]DequeueChoice(nil), choices...),
	}, nil
}

func (g *Game) chooseActions(actions []Action) (Outcome, error) {
	if err := checkChoices(g.actionless, actions); err != nil {
		return Outcome{}, err
	}

	gained := pointsOf(actions)
	destroyed := whichDestroyed(actions)
	totals := make([]int, len(actions))
	for i, p := range g.actionless {
		totals[i] = p.points + gained[i]
	}
	deductions := g.config.Deductions(totals)

	results := make([]ActionResult, len(actions))
	won := false
	for i, p := range g.actionless {
		delta := gained[i] - deductions[i]
		results[i] = ActionResult{
			Action:    actions[i],
			Points:    delta,
			Total:     max(p.points+delta, 0),
			Destroyed: destroyed[i],
		}
		if results[i].Total == g.config.PointsToWin {
			won = true
		}
	}

	if won {
		next := make([]*FinishedPlayer, len(actions))
		for i, p := range g.actionless {
			next[i] = p.IntoFinished(results[i])
		}
		g.actionless = nil
		g.finished = next
		g.phase = PhaseFinal
		return Outcome{Type: OutcomeGameOver, Actions: results}, nil
	}

	next := make([]*DequeueChoicelessPlayer, len(actions))
	for i, p := range g.actionless {
		next[i] = p.IntoDequeueChoiceless(results[i])
	}
	g.actionless = nil
	g.dequeueing = next
	g.phase = PhaseDequeue
	return Outcome{Type: OutcomeActionResolved, Actions: results}, nil
}

// WinnerIndex returns the index of the player who reached the threshold.
// It reports false until the game is in the Final phase.
func (g *Game) WinnerIndex() (int, bool) {
	if g.phase != PhaseFinal {
		return 0, false
	}
	for i, p := range g.finished {
		if p.points >= g.config.PointsToWin {
			return i, true
		}
	}
	return 0, false
}

// FinishedPlayers returns the end-of-game players, or nil before the Final phase.
func (g *Game) FinishedPlayers() []*FinishedPlayer {
	if g.phase != PhaseFinal {
		return nil
	}
	return append([]*FinishedPlayer(nil), g.finished...)
}

type chooser[C comparable] interface {
	Choices() []C
}

func choicesOf[P chooser[C], C comparable](players []P) [][]C {
	out := make([][]C, len(players))
	for i, p := range players {
		out[i] = p.Choices()
	}
	return out
}

// checkChoices is the read-only legality pass run before any mutation.
func checkChoices[P chooser[C], C comparable](players []P, choices []C) error {
	for i, p := range players {
		if !contains(p.Choices(), choices[i]) {
			return fmt.Errorf("%w: player %d cannot choose %v", ErrIllegalChoice, i, choices[i])
		}
	}
	return nil
}
