package engine_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"ninjazombie/internal/engine"
)

func TestParseNames(t *testing.T) {
	if c, ok := engine.ParseCharacter("  ninja "); !ok || c != engine.CharacterNinja {
		t.Errorf("ParseCharacter: got (%v,%v)", c, ok)
	}
	if b, ok := engine.ParseBooster("none"); !ok || b != engine.BoosterNone {
		t.Errorf("ParseBooster(none): got (%v,%v)", b, ok)
	}
	if m, ok := engine.ParseMove("shadowfireball"); !ok || m != engine.MoveShadowFireball {
		t.Errorf("ParseMove: got (%v,%v)", m, ok)
	}
	if _, ok := engine.ParseMove("Fireball Of Doom"); ok {
		t.Error("ParseMove accepted an unknown move")
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in   string
		want engine.Action
	}{
		{"Kick", engine.MoveAction(engine.MoveKick)},
		{"Mirror(Shadow Fireball)", engine.MirrorAction(engine.MoveShadowFireball)},
		{"concede", engine.ConcedeAction()},
	}
	for _, tt := range tests {
		got, err := engine.ParseAction(tt.in)
		if err != nil {
			t.Errorf("ParseAction(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := engine.ParseAction("Mirror(Mirror)"); !errors.Is(err, engine.ErrUnknownName) {
		t.Errorf("mirror of mirror: got %v, want ErrUnknownName", err)
	}
}

func TestParseDequeueChoice(t *testing.T) {
	tests := []struct {
		in   string
		want engine.DequeueChoice
	}{
		{"decline", engine.Decline()},
		{"just_exit", engine.JustExit()},
		{"drain_and_exit(Mirror)", engine.DrainAndExit(engine.MirrorItem())},
		{"drain_and_exit(Zap)", engine.DrainAndExit(engine.MoveItem(engine.MoveZap))},
	}
	for _, tt := range tests {
		got, err := engine.ParseDequeueChoice(tt.in)
		if err != nil {
			t.Errorf("ParseDequeueChoice(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDequeueChoice(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if got.String() != tt.in {
			t.Errorf("String() = %q, want %q", got.String(), tt.in)
		}
	}
}

func TestBatchChoiceJSON(t *testing.T) {
	raw := `{"phase":"Action","actions":["Kick","Mirror(Lightning)","Concede"]}`
	var batch engine.BatchChoice
	if err := json.Unmarshal([]byte(raw), &batch); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := engine.ActionBatch(
		engine.MoveAction(engine.MoveKick),
		engine.MirrorAction(engine.MoveLightning),
		engine.ConcedeAction(),
	)
	if !reflect.DeepEqual(batch, want) {
		t.Fatalf("got %+v, want %+v", batch, want)
	}

	if err := json.Unmarshal([]byte(`{"phase":"Lunch"}`), &batch); err == nil {
		t.Error("unknown phase should fail to decode")
	}
}
