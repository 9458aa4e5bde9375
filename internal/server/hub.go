package server

import (
	"context"
	"encoding/json"
	"log"
	"slices"
	"sync"
	"time"

	"ninjazombie/internal/engine"
	"ninjazombie/internal/history"
	"ninjazombie/internal/lobby"
	"ninjazombie/internal/match"
	"ninjazombie/internal/protocol"
)

const recordTimeout = 5 * time.Second

// Hub manages WebSocket connections and the match for one game room.
// Everything except the client set is touched only from Run.
type Hub struct {
	mu         sync.Mutex
	gameID     string
	lobby      *lobby.Lobby
	ruleset    engine.Config
	history    *history.Store
	match      *match.Match
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	quit       chan struct{}
	stopOnce   sync.Once
}

// NewHub creates a hub. store may be nil, in which case finished matches are
// not recorded.
func NewHub(gameID string, lob *lobby.Lobby, ruleset engine.Config, store *history.Store) *Hub {
	return &Hub{
		gameID:     gameID,
		lobby:      lob,
		ruleset:    ruleset,
		history:    store,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan IncomingMessage, 256),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.sendLobbyUpdate()
			if h.match != nil {
				h.sendStateToClient(client)
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			reconnected := h.connectedLocked(client.PlayerID)
			h.mu.Unlock()
			if h.match == nil && client.PlayerID != "" && !reconnected {
				h.lobby.Leave(client.PlayerID)
				h.sendLobbyUpdate()
			}

		case msg := <-h.incoming:
			h.handleMessage(msg)

		case <-h.quit:
			return
		}
	}
}

// connectedLocked reports whether a registered client still speaks for
// playerID.
func (h *Hub) connectedLocked(playerID string) bool {
	for c := range h.clients {
		if c.PlayerID == playerID {
			return true
		}
	}
	return false
}

// Stop ends Run. Connected clients are left to time out.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	switch msg.Envelope.Type {
	case protocol.MsgJoin:
		h.handleJoin(msg)
	case protocol.MsgReady:
		h.handleReady(msg)
	case protocol.MsgStartGame:
		h.handleStartGame(msg)
	case protocol.MsgSubmit:
		h.handleSubmit(msg)
	default:
		h.sendError(msg.Client, "unknown message type: "+msg.Envelope.Type)
	}
}

func (h *Hub) handleJoin(msg IncomingMessage) {
	var join protocol.JoinMsg
	if err := msg.Envelope.Decode(&join); err != nil || join.PlayerID == "" {
		h.sendError(msg.Client, "invalid join message")
		return
	}
	if err := h.lobby.Join(join.PlayerID, join.Name); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	msg.Client.PlayerID = join.PlayerID
	h.sendLobbyUpdate()
	if h.match != nil {
		h.sendStateToClient(msg.Client)
	}
}

func (h *Hub) handleReady(msg IncomingMessage) {
	var ready protocol.ReadyMsg
	if err := msg.Envelope.Decode(&ready); err != nil {
		h.sendError(msg.Client, "invalid ready message")
		return
	}
	if !h.lobby.Has(msg.Client.PlayerID) {
		h.sendError(msg.Client, "join before getting ready")
		return
	}
	h.lobby.SetReady(msg.Client.PlayerID, ready.Ready)
	h.sendLobbyUpdate()
}

func (h *Hub) handleStartGame(msg IncomingMessage) {
	if err := h.lobby.Start(); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}

	players := h.lobby.GetPlayers()
	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	m, err := match.New(ids, h.ruleset)
	if err != nil {
		log.Printf("hub %s: start match: %v", h.gameID, err)
		h.sendError(msg.Client, err.Error())
		return
	}
	h.match = m
	log.Printf("hub %s: match %s started with %d players", h.gameID, m.ID(), len(ids))

	h.sendLobbyUpdate()
	h.broadcastState()
}

func (h *Hub) handleSubmit(msg IncomingMessage) {
	if h.match == nil {
		h.sendError(msg.Client, "game not started")
		return
	}
	var sub protocol.SubmitMsg
	if err := msg.Envelope.Decode(&sub); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}

	out, done, err := h.match.Submit(msg.Client.PlayerID, sub)
	if err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	if done {
		h.broadcastAll(protocol.MustEnvelope(protocol.MsgOutcome, protocol.OutcomeMsg{Outcome: out}))
		if out.GameOver() {
			h.finish()
		}
	}
	h.broadcastState()
}

// finish records the match and announces the winner.
func (h *Hub) finish() {
	winnerID, seat, ok := h.match.Winner()
	if !ok {
		return
	}
	sb := h.match.Scoreboard()
	h.record(seat, sb)

	h.broadcastAll(protocol.MustEnvelope(protocol.MsgGameOver, protocol.GameOverMsg{
		WinnerID:   winnerID,
		WinnerName: h.playerName(winnerID),
		Seat:       seat,
		Scoreboard: sb,
		Rounds:     h.match.Rounds(),
	}))
}

func (h *Hub) record(winner int, sb engine.Scoreboard) {
	if h.history == nil {
		return
	}
	ids := h.match.Players()
	rec := history.Record{
		MatchID:    h.match.ID(),
		StartedAt:  h.match.StartedAt(),
		FinishedAt: time.Now(),
		Rounds:     h.match.Rounds(),
		Winner:     winner,
	}
	for i, p := range sb.Players {
		pr := history.PlayerRecord{
			PlayerID: ids[i],
			Name:     h.playerName(ids[i]),
			Points:   p.Points,
		}
		if p.Character != nil {
			pr.Character = p.Character.String()
		}
		if p.Booster != nil {
			pr.Booster = p.Booster.String()
		}
		rec.Players = append(rec.Players, pr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := h.history.Record(ctx, rec); err != nil {
		log.Printf("hub %s: record match %s: %v", h.gameID, rec.MatchID, err)
	}
}

func (h *Hub) playerName(id string) string {
	for _, p := range h.lobby.GetPlayers() {
		if p.ID == id {
			return p.Name
		}
	}
	return ""
}

func (h *Hub) lobbyPlayers() []protocol.LobbyPlayer {
	players := h.lobby.GetPlayers()
	lps := make([]protocol.LobbyPlayer, len(players))
	for i, p := range players {
		lps[i] = protocol.LobbyPlayer{ID: p.ID, Name: p.Name, Ready: p.Ready}
	}
	return lps
}

func (h *Hub) broadcastState() {
	if h.match == nil {
		return
	}
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	for _, client := range clients {
		h.sendStateToClient(client)
	}
}

// sendStateToClient sends the public game state and, to a seated player who
// still owes a choice, that player's options.
func (h *Hub) sendStateToClient(client *Client) {
	if h.match == nil {
		return
	}
	pending := h.match.Pending()
	h.sendTo(client, protocol.MustEnvelope(protocol.MsgGameState, protocol.GameState{
		GameID:     h.gameID,
		MatchID:    h.match.ID(),
		Players:    h.lobbyPlayers(),
		Scoreboard: h.match.Scoreboard(),
		Pending:    pending,
		Rounds:     h.match.Rounds(),
	}))

	if client.Type != ClientPlayer || !slices.Contains(pending, client.PlayerID) {
		return
	}
	choices, err := h.match.ChoicesFor(client.PlayerID)
	if err != nil {
		return
	}
	h.sendTo(client, protocol.MustEnvelope(protocol.MsgChoices, choices))
}

func (h *Hub) sendLobbyUpdate() {
	env := protocol.MustEnvelope(protocol.MsgLobbyUpdate, protocol.LobbyUpdate{
		GameID:   h.gameID,
		Players:  h.lobbyPlayers(),
		Required: h.lobby.Required,
		Started:  h.lobby.IsStarted(),
	})
	h.broadcastAll(env)
}

func (h *Hub) broadcastAll(env protocol.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("broadcast marshal error: %v", err)
		return
	}
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			log.Printf("client %s buffer full", client.PlayerID)
		}
	}
}

func (h *Hub) sendError(client *Client, message string) {
	env := protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Message: message})
	h.sendTo(client, env)
}

// sendTo delivers env unless client has already been unregistered and its
// send channel closed.
func (h *Hub) sendTo(client *Client, env protocol.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[client] {
		client.SendEnvelope(env)
	}
}
