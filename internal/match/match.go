package match

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"ninjazombie/internal/engine"
)

var (
	ErrUnknownPlayer    = errors.New("unknown player")
	ErrAlreadySubmitted = errors.New("choice already submitted this phase")
	ErrMissingChoice    = errors.New("submission has no choice for its phase")
)

// Submission is one player's choice for the active phase. Only the field
// matching Phase is read.
type Submission struct {
	Phase     engine.GamePhase      `json:"phase"`
	Character *engine.Character     `json:"character,omitempty"`
	Booster   *engine.Booster       `json:"booster,omitempty"`
	Dequeue   *engine.DequeueChoice `json:"dequeue,omitempty"`
	Action    *engine.Action        `json:"action,omitempty"`
}

func CharacterSubmission(c engine.Character) Submission {
	return Submission{Phase: engine.PhaseCharacter, Character: &c}
}

func BoosterSubmission(b engine.Booster) Submission {
	return Submission{Phase: engine.PhaseBooster, Booster: &b}
}

func DequeueSubmission(d engine.DequeueChoice) Submission {
	return Submission{Phase: engine.PhaseDequeue, Dequeue: &d}
}

func ActionSubmission(a engine.Action) Submission {
	return Submission{Phase: engine.PhaseAction, Action: &a}
}

// Choices is one player's legal options for the active phase.
type Choices struct {
	Phase      engine.GamePhase       `json:"phase"`
	Characters []engine.Character     `json:"characters,omitempty"`
	Boosters   []engine.Booster       `json:"boosters,omitempty"`
	Dequeue    []engine.DequeueChoice `json:"dequeue,omitempty"`
	Actions    []engine.Action        `json:"actions,omitempty"`
}

// Match binds a Game to player IDs and turns per-player submissions into
// batches. It is safe for concurrent use.
type Match struct {
	mu        sync.Mutex
	id        string
	players   []string
	index     map[string]int
	game      *engine.Game
	pending   map[int]Submission
	rounds    int
	startedAt time.Time
}

// New starts a match. Seat order follows playerIDs.
func New(playerIDs []string, cfg engine.Config) (*Match, error) {
	if len(playerIDs) != cfg.PlayerCount {
		return nil, fmt.Errorf("%w: %d players for a %d-player ruleset",
			engine.ErrPlayerCount, len(playerIDs), cfg.PlayerCount)
	}
	index := make(map[string]int, len(playerIDs))
	for i, id := range playerIDs {
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("duplicate player id %q", id)
		}
		index[id] = i
	}
	game, err := engine.NewGame(cfg)
	if err != nil {
		return nil, err
	}
	return &Match{
		id:        uuid.NewString(),
		players:   append([]string(nil), playerIDs...),
		index:     index,
		game:      game,
		pending:   make(map[int]Submission),
		startedAt: time.Now(),
	}, nil
}

func (m *Match) ID() string           { return m.id }
func (m *Match) StartedAt() time.Time { return m.startedAt }

// Players returns the player IDs in seat order.
func (m *Match) Players() []string {
	return append([]string(nil), m.players...)
}

func (m *Match) Phase() engine.GamePhase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.game.Phase()
}

// Rounds counts resolved Action phases.
func (m *Match) Rounds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rounds
}

func (m *Match) Scoreboard() engine.Scoreboard {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.game.Scoreboard()
}

// Winner returns the winning player's ID once the game is over.
func (m *Match) Winner() (string, int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.game.WinnerIndex()
	if !ok {
		return "", 0, false
	}
	return m.players[i], i, true
}

// Pending returns the IDs of players who still owe a choice this phase.
func (m *Match) Pending() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.game.Phase() == engine.PhaseFinal {
		return nil
	}
	var out []string
	for i, id := range m.players {
		if _, ok := m.pending[i]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// ChoicesFor returns the legal choices of playerID.
func (m *Match) ChoicesFor(playerID string) (Choices, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.index[playerID]
	if !ok {
		return Choices{}, fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}
	return m.choicesLocked(i), nil
}

func (m *Match) choicesLocked(i int) Choices {
	all := m.game.Choices()
	c := Choices{Phase: all.Phase}
	switch all.Phase {
	case engine.PhaseCharacter:
		c.Characters = all.Characters[i]
	case engine.PhaseBooster:
		c.Boosters = all.Boosters[i]
	case engine.PhaseDequeue:
		c.Dequeue = all.DequeueChoices[i]
	case engine.PhaseAction:
		c.Actions = all.Actions[i]
	}
	return c
}

// Submit records playerID's choice. When it completes the batch, the batch is
// resolved and done is true; otherwise the outcome is empty and done is false.
func (m *Match) Submit(playerID string, sub Submission) (out engine.Outcome, done bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.index[playerID]
	if !ok {
		return engine.Outcome{}, false, fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}
	phase := m.game.Phase()
	if phase == engine.PhaseFinal || sub.Phase != phase {
		return engine.Outcome{}, false, fmt.Errorf("%w: game is in %s phase, got %s choice",
			engine.ErrWrongPhase, phase, sub.Phase)
	}
	if _, ok := m.pending[i]; ok {
		return engine.Outcome{}, false, ErrAlreadySubmitted
	}
	if err := m.checkLocked(i, sub); err != nil {
		return engine.Outcome{}, false, err
	}

	m.pending[i] = sub
	if len(m.pending) < len(m.players) {
		return engine.Outcome{}, false, nil
	}

	batch := m.batchLocked()
	m.pending = make(map[int]Submission)
	out, err = m.game.Choose(batch)
	if err != nil {
		return engine.Outcome{}, false, err
	}
	if out.Type == engine.OutcomeActionResolved || out.GameOver() {
		m.rounds++
	}
	return out, true, nil
}

func (m *Match) checkLocked(i int, sub Submission) error {
	c := m.choicesLocked(i)
	var legal bool
	switch sub.Phase {
	case engine.PhaseCharacter:
		if sub.Character == nil {
			return ErrMissingChoice
		}
		legal = contains(c.Characters, *sub.Character)
	case engine.PhaseBooster:
		if sub.Booster == nil {
			return ErrMissingChoice
		}
		legal = contains(c.Boosters, *sub.Booster)
	case engine.PhaseDequeue:
		if sub.Dequeue == nil {
			return ErrMissingChoice
		}
		legal = contains(c.Dequeue, *sub.Dequeue)
	case engine.PhaseAction:
		if sub.Action == nil {
			return ErrMissingChoice
		}
		legal = contains(c.Actions, *sub.Action)
	}
	if !legal {
		return fmt.Errorf("%w: %s", engine.ErrIllegalChoice, m.players[i])
	}
	return nil
}

func (m *Match) batchLocked() engine.BatchChoice {
	n := len(m.players)
	switch m.game.Phase() {
	case engine.PhaseCharacter:
		picks := make([]engine.Character, n)
		for i, s := range m.pending {
			picks[i] = *s.Character
		}
		return engine.CharacterBatch(picks...)
	case engine.PhaseBooster:
		picks := make([]engine.Booster, n)
		for i, s := range m.pending {
			picks[i] = *s.Booster
		}
		return engine.BoosterBatch(picks...)
	case engine.PhaseDequeue:
		picks := make([]engine.DequeueChoice, n)
		for i, s := range m.pending {
			picks[i] = *s.Dequeue
		}
		return engine.DequeueBatch(picks...)
	default:
		picks := make([]engine.Action, n)
		for i, s := range m.pending {
			picks[i] = *s.Action
		}
		return engine.ActionBatch(picks...)
	}
}

func contains[T comparable](values []T, v T) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
