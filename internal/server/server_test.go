package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"

	"ninjazombie/internal/config"
	"ninjazombie/internal/engine"
	"ninjazombie/internal/history"
	"ninjazombie/internal/match"
	"ninjazombie/internal/protocol"
)

func newTestServer(t *testing.T, store *history.Store) *httptest.Server {
	t.Helper()
	settings := config.Default()
	settings.Ruleset.PointsToWin = 2
	static := fstest.MapFS{
		"web/static/index.html": {Data: []byte("<html>ninja zombie</html>")},
	}
	srv := New(settings, store, static)
	handler, err := srv.Handler()
	if err != nil {
		t.Fatalf("Handler: %v", err)
	}
	ts := httptest.NewServer(handler)
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
	})
	return ts
}

func createGame(t *testing.T, ts *httptest.Server, query string) string {
	t.Helper()
	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	resp, err := client.Get(ts.URL + "/api/create" + query)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("create: got status %d", resp.StatusCode)
	}
	loc := resp.Header.Get("Location")
	const prefix = "/tv.html?game="
	if !strings.HasPrefix(loc, prefix) {
		t.Fatalf("unexpected redirect %q", loc)
	}
	return strings.TrimPrefix(loc, prefix)
}

func dial(t *testing.T, ts *httptest.Server, gameID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?type=player&game=" + gameID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	if err := conn.WriteJSON(protocol.MustEnvelope(typ, payload)); err != nil {
		t.Fatalf("send %s: %v", typ, err)
	}
}

// readUntil skips messages until one of type typ arrives.
func readUntil(t *testing.T, conn *websocket.Conn, typ string, v any) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var env protocol.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			t.Fatalf("waiting for %s: %v", typ, err)
		}
		if env.Type == protocol.MsgError && typ != protocol.MsgError {
			t.Fatalf("waiting for %s: server error %s", typ, env.Payload)
		}
		if env.Type != typ {
			continue
		}
		if v != nil {
			if err := json.Unmarshal(env.Payload, v); err != nil {
				t.Fatalf("decode %s: %v", typ, err)
			}
		}
		return
	}
}

// waitLobby reads lobby updates until ok accepts one.
func waitLobby(t *testing.T, conn *websocket.Conn, ok func(protocol.LobbyUpdate) bool) {
	t.Helper()
	for {
		var lu protocol.LobbyUpdate
		readUntil(t, conn, protocol.MsgLobbyUpdate, &lu)
		if ok(lu) {
			return
		}
	}
}

func allReady(lu protocol.LobbyUpdate) bool {
	if len(lu.Players) != lu.Required {
		return false
	}
	for _, p := range lu.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}

func TestCreateRejectsBadPlayerCount(t *testing.T) {
	ts := newTestServer(t, nil)
	for _, q := range []string{"?players=9", "?players=x"} {
		resp, err := http.Get(ts.URL + "/api/create" + q)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: got status %d, want 400", q, resp.StatusCode)
		}
	}
}

func TestStaticAndPlayerID(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/player-id")
	if err != nil {
		t.Fatalf("player-id: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("player-id: got status %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/api/history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("history without a store: got status %d, want 404", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/ws?game=missing")
	if err != nil {
		t.Fatalf("ws: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown game: got status %d, want 404", resp.StatusCode)
	}
}

func TestPlayMatchOverWebSocket(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	ts := newTestServer(t, store)
	gameID := createGame(t, ts, "")

	alice := dial(t, ts, gameID)
	bob := dial(t, ts, gameID)

	send(t, alice, protocol.MsgJoin, protocol.JoinMsg{PlayerID: "alice", Name: "Alice"})
	waitLobby(t, alice, func(lu protocol.LobbyUpdate) bool { return len(lu.Players) == 1 })
	send(t, bob, protocol.MsgJoin, protocol.JoinMsg{PlayerID: "bob", Name: "Bob"})
	send(t, alice, protocol.MsgReady, protocol.ReadyMsg{Ready: true})
	send(t, bob, protocol.MsgReady, protocol.ReadyMsg{Ready: true})
	waitLobby(t, alice, allReady)

	send(t, alice, protocol.MsgStartGame, struct{}{})
	var choices match.Choices
	readUntil(t, alice, protocol.MsgChoices, &choices)
	if choices.Phase != engine.PhaseCharacter || len(choices.Characters) != 4 {
		t.Fatalf("opening choices: got %+v", choices)
	}

	steps := []struct {
		a, b match.Submission
		want engine.OutcomeType
	}{
		{
			match.CharacterSubmission(engine.CharacterNinja),
			match.CharacterSubmission(engine.CharacterSamurai),
			engine.OutcomeCharactersResolved,
		},
		{
			match.BoosterSubmission(engine.BoosterShadow),
			match.BoosterSubmission(engine.BoosterAtlas),
			engine.OutcomeBoostersResolved,
		},
		{
			match.DequeueSubmission(engine.Decline()),
			match.DequeueSubmission(engine.Decline()),
			engine.OutcomeDequeueResolved,
		},
		{
			match.ActionSubmission(engine.MoveAction(engine.MoveShadowFireball)),
			match.ActionSubmission(engine.MoveAction(engine.MoveLightning)),
			engine.OutcomeGameOver,
		},
	}
	for _, step := range steps {
		send(t, alice, protocol.MsgSubmit, step.a)
		send(t, bob, protocol.MsgSubmit, step.b)
		for _, conn := range []*websocket.Conn{alice, bob} {
			var msg protocol.OutcomeMsg
			readUntil(t, conn, protocol.MsgOutcome, &msg)
			if msg.Outcome.Type != step.want {
				t.Fatalf("outcome: got %s, want %s", msg.Outcome.Type, step.want)
			}
		}
	}

	var over protocol.GameOverMsg
	readUntil(t, bob, protocol.MsgGameOver, &over)
	if over.WinnerID != "alice" || over.WinnerName != "Alice" || over.Rounds != 1 {
		t.Errorf("game over: got %+v", over)
	}

	send(t, bob, protocol.MsgSubmit, match.DequeueSubmission(engine.Decline()))
	var e protocol.ErrorMsg
	readUntil(t, bob, protocol.MsgError, &e)

	resp, err := http.Get(ts.URL + "/api/history?limit=5")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	defer resp.Body.Close()
	var records []history.Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("history: got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.Winner != 0 || len(rec.Players) != 2 {
		t.Fatalf("record: got %+v", rec)
	}
	if rec.Players[0].Name != "Alice" || rec.Players[0].Character != "Ninja" || rec.Players[0].Points != 2 {
		t.Errorf("winner row: got %+v", rec.Players[0])
	}
	if rec.Players[1].Booster != "Atlas" {
		t.Errorf("loser row: got %+v", rec.Players[1])
	}
}
