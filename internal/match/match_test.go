package match_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"ninjazombie/internal/engine"
	"ninjazombie/internal/match"
)

func newTestMatch(t *testing.T) *match.Match {
	t.Helper()
	m, err := match.New([]string{"alice", "bob"}, engine.DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func submit(t *testing.T, m *match.Match, player string, sub match.Submission) (engine.Outcome, bool) {
	t.Helper()
	out, done, err := m.Submit(player, sub)
	if err != nil {
		t.Fatalf("Submit(%s, %s): %v", player, sub.Phase, err)
	}
	return out, done
}

func TestNewRejectsWrongPlayerCount(t *testing.T) {
	_, err := match.New([]string{"alice"}, engine.DefaultConfig())
	if !errors.Is(err, engine.ErrPlayerCount) {
		t.Fatalf("got %v, want ErrPlayerCount", err)
	}
	if _, err := match.New([]string{"alice", "alice"}, engine.DefaultConfig()); err == nil {
		t.Fatal("duplicate player ids should be rejected")
	}
}

func TestSubmitCollectsBatch(t *testing.T) {
	m := newTestMatch(t)
	if m.ID() == "" {
		t.Fatal("match should have an id")
	}

	_, done := submit(t, m, "bob", match.CharacterSubmission(engine.CharacterSamurai))
	if done {
		t.Fatal("batch resolved with one submission")
	}
	if got := m.Pending(); !reflect.DeepEqual(got, []string{"alice"}) {
		t.Fatalf("pending: got %v, want [alice]", got)
	}

	out, done := submit(t, m, "alice", match.CharacterSubmission(engine.CharacterNinja))
	if !done {
		t.Fatal("batch should resolve once everyone submitted")
	}
	if out.Type != engine.OutcomeCharactersResolved {
		t.Fatalf("expected characters_resolved, got %s", out.Type)
	}
	// Seat order, not submission order.
	if out.Headstarts[0].Character != engine.CharacterNinja || out.Headstarts[0].Headstart != 1 {
		t.Errorf("seat 0: got %+v, want Ninja with 1", out.Headstarts[0])
	}
	if m.Phase() != engine.PhaseBooster {
		t.Fatalf("expected Booster phase, got %s", m.Phase())
	}
	if got := m.Pending(); len(got) != 2 {
		t.Errorf("pending should reset for the new phase, got %v", got)
	}
}

func TestSubmitErrors(t *testing.T) {
	m := newTestMatch(t)

	if _, _, err := m.Submit("carol", match.CharacterSubmission(engine.CharacterNinja)); !errors.Is(err, match.ErrUnknownPlayer) {
		t.Errorf("unknown player: got %v", err)
	}
	if _, _, err := m.Submit("alice", match.BoosterSubmission(engine.BoosterShadow)); !errors.Is(err, engine.ErrWrongPhase) {
		t.Errorf("wrong phase: got %v", err)
	}
	if _, _, err := m.Submit("alice", match.Submission{Phase: engine.PhaseCharacter}); !errors.Is(err, match.ErrMissingChoice) {
		t.Errorf("empty submission: got %v", err)
	}

	submit(t, m, "alice", match.CharacterSubmission(engine.CharacterNinja))
	if _, _, err := m.Submit("alice", match.CharacterSubmission(engine.CharacterClown)); !errors.Is(err, match.ErrAlreadySubmitted) {
		t.Errorf("double submit: got %v", err)
	}
	submit(t, m, "bob", match.CharacterSubmission(engine.CharacterSamurai))

	if _, _, err := m.Submit("bob", match.BoosterSubmission(engine.BoosterShadow)); !errors.Is(err, engine.ErrIllegalChoice) {
		t.Errorf("illegal booster: got %v", err)
	}
}

func TestChoicesFor(t *testing.T) {
	m := newTestMatch(t)
	submit(t, m, "alice", match.CharacterSubmission(engine.CharacterClown))
	submit(t, m, "bob", match.CharacterSubmission(engine.CharacterZombie))

	c, err := m.ChoicesFor("bob")
	if err != nil {
		t.Fatalf("ChoicesFor: %v", err)
	}
	want := []engine.Booster{engine.BoosterRegenerative, engine.BoosterZombieCorps, engine.BoosterNone}
	if c.Phase != engine.PhaseBooster || !reflect.DeepEqual(c.Boosters, want) {
		t.Errorf("got %+v, want booster choices %v", c, want)
	}
	if _, err := m.ChoicesFor("carol"); !errors.Is(err, match.ErrUnknownPlayer) {
		t.Errorf("unknown player: got %v", err)
	}
}

func TestPlayToWinner(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.PointsToWin = 2
	m, err := match.New([]string{"alice", "bob"}, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	submit(t, m, "alice", match.CharacterSubmission(engine.CharacterNinja))
	submit(t, m, "bob", match.CharacterSubmission(engine.CharacterSamurai))
	submit(t, m, "alice", match.BoosterSubmission(engine.BoosterShadow))
	submit(t, m, "bob", match.BoosterSubmission(engine.BoosterAtlas))
	submit(t, m, "alice", match.DequeueSubmission(engine.Decline()))
	submit(t, m, "bob", match.DequeueSubmission(engine.Decline()))
	submit(t, m, "alice", match.ActionSubmission(engine.MoveAction(engine.MoveShadowFireball)))
	out, done := submit(t, m, "bob", match.ActionSubmission(engine.MoveAction(engine.MoveLightning)))

	if !done || !out.GameOver() {
		t.Fatalf("expected game over, got %s (done=%v)", out.Type, done)
	}
	if m.Rounds() != 1 {
		t.Errorf("rounds: got %d, want 1", m.Rounds())
	}
	id, seat, ok := m.Winner()
	if !ok || id != "alice" || seat != 0 {
		t.Errorf("winner: got (%s,%d,%v), want (alice,0,true)", id, seat, ok)
	}
	if m.Pending() != nil {
		t.Errorf("finished match should have nothing pending, got %v", m.Pending())
	}
	if _, _, err := m.Submit("alice", match.DequeueSubmission(engine.Decline())); !errors.Is(err, engine.ErrWrongPhase) {
		t.Errorf("submit after game over: got %v", err)
	}
}

func TestSubmissionJSON(t *testing.T) {
	var sub match.Submission
	raw := `{"phase":"Dequeue","dequeue":"drain_and_exit(Mirror)"}`
	if err := json.Unmarshal([]byte(raw), &sub); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sub.Phase != engine.PhaseDequeue || sub.Dequeue == nil || *sub.Dequeue != engine.DrainAndExit(engine.MirrorItem()) {
		t.Errorf("got %+v", sub)
	}
}
