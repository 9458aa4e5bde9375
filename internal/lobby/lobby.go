package lobby

import (
	"errors"
	"sync"
)

var (
	ErrStarted   = errors.New("game already started")
	ErrFull      = errors.New("lobby is full")
	ErrNotReady  = errors.New("not all players ready")
	ErrNotEnough = errors.New("not enough players")
)

// PlayerInfo holds lobby-level player information.
type PlayerInfo struct {
	ID    string
	Name  string
	Ready bool
}

// Lobby gathers exactly the number of players a ruleset seats.
type Lobby struct {
	mu       sync.Mutex
	ID       string
	Players  []*PlayerInfo
	Required int
	Started  bool
}

// NewLobby creates a lobby that starts with required players.
func NewLobby(id string, required int) *Lobby {
	return &Lobby{
		ID:       id,
		Required: required,
	}
}

// Join adds a player to the lobby. Joining again with the same ID renames.
func (l *Lobby) Join(id, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.Players {
		if p.ID == id {
			p.Name = name
			return nil
		}
	}
	if l.Started {
		return ErrStarted
	}
	if len(l.Players) >= l.Required {
		return ErrFull
	}
	l.Players = append(l.Players, &PlayerInfo{ID: id, Name: name})
	return nil
}

// Leave removes a player from the lobby. Seats are fixed once started.
func (l *Lobby) Leave(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return
	}
	for i, p := range l.Players {
		if p.ID == id {
			l.Players = append(l.Players[:i], l.Players[i+1:]...)
			return
		}
	}
}

// SetReady toggles a player's ready state.
func (l *Lobby) SetReady(id string, ready bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.Players {
		if p.ID == id {
			p.Ready = ready
			return
		}
	}
}

// Has reports whether id holds a seat.
func (l *Lobby) Has(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.Players {
		if p.ID == id {
			return true
		}
	}
	return false
}

// CanStart returns true if every seat is filled and ready.
func (l *Lobby) CanStart() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.canStartLocked() == nil
}

func (l *Lobby) canStartLocked() error {
	if len(l.Players) < l.Required {
		return ErrNotEnough
	}
	for _, p := range l.Players {
		if !p.Ready {
			return ErrNotReady
		}
	}
	return nil
}

// Start marks the lobby as started.
func (l *Lobby) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return ErrStarted
	}
	if err := l.canStartLocked(); err != nil {
		return err
	}
	l.Started = true
	return nil
}

// IsStarted reports whether Start succeeded.
func (l *Lobby) IsStarted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Started
}

// GetPlayers returns a copy of the player list.
func (l *Lobby) GetPlayers() []PlayerInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]PlayerInfo, len(l.Players))
	for i, p := range l.Players {
		out[i] = *p
	}
	return out
}
