package protocol

import (
	"ninjazombie/internal/engine"
	"ninjazombie/internal/match"
)

// Message types: Server → Client
const (
	MsgLobbyUpdate = "lobby_update"
	MsgGameState   = "game_state"
	MsgChoices     = "choices"
	MsgOutcome     = "outcome"
	MsgGameOver    = "game_over"
	MsgError       = "error"
)

// Message types: Client → Server
const (
	MsgJoin      = "join"
	MsgReady     = "ready"
	MsgStartGame = "start_game"
	MsgSubmit    = "submit" // payload is a match.Submission
)

// LobbyUpdate is sent to all clients when lobby state changes.
type LobbyUpdate struct {
	GameID   string        `json:"game_id"`
	Players  []LobbyPlayer `json:"players"`
	Required int           `json:"required"`
	Started  bool          `json:"started"`
}

type LobbyPlayer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
}

// JoinMsg is sent by a player to join the game.
type JoinMsg struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// ReadyMsg is sent by a player to toggle ready state.
type ReadyMsg struct {
	Ready bool `json:"ready"`
}

// SubmitMsg carries a player's choice for the active phase.
type SubmitMsg = match.Submission

// GameState is the public view of a running match. Choices submitted for the
// current phase stay hidden until it resolves; only who still owes one shows.
type GameState struct {
	GameID     string            `json:"game_id"`
	MatchID    string            `json:"match_id"`
	Players    []LobbyPlayer     `json:"players"`
	Scoreboard engine.Scoreboard `json:"scoreboard"`
	Pending    []string          `json:"pending"`
	Rounds     int               `json:"rounds"`
}

// ChoicesMsg is sent to each player with their legal choices.
type ChoicesMsg = match.Choices

// OutcomeMsg is broadcast when a phase resolves.
type OutcomeMsg struct {
	Outcome engine.Outcome `json:"outcome"`
}

// GameOverMsg is broadcast once a player wins.
type GameOverMsg struct {
	WinnerID   string            `json:"winner_id"`
	WinnerName string            `json:"winner_name"`
	Seat       int               `json:"seat"`
	Scoreboard engine.Scoreboard `json:"scoreboard"`
	Rounds     int               `json:"rounds"`
}

// ErrorMsg is sent to a client on error.
type ErrorMsg struct {
	Message string `json:"message"`
}
