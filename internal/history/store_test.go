package history

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func record(id string, finished time.Time) Record {
	return Record{
		MatchID:    id,
		StartedAt:  finished.Add(-time.Minute),
		FinishedAt: finished,
		Rounds:     4,
		Winner:     1,
		Players: []PlayerRecord{
			{PlayerID: "a", Name: "Alice", Character: "Ninja", Booster: "Shadow", Points: 2},
			{PlayerID: "b", Name: "Bob", Character: "Clown", Booster: "No Booster", Points: 5},
		},
	}
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"m1", "m2", "m3"} {
		if err := s.Record(ctx, record(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Record(%s): %v", id, err)
		}
	}

	got, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].MatchID != "m3" || got[1].MatchID != "m2" {
		t.Errorf("order: got %s,%s, want m3,m2", got[0].MatchID, got[1].MatchID)
	}
	want := record("m3", base.Add(2*time.Hour))
	if !got[0].FinishedAt.Equal(want.FinishedAt) || got[0].Rounds != 4 || got[0].Winner != 1 {
		t.Errorf("match row: got %+v", got[0])
	}
	if !reflect.DeepEqual(got[0].Players, want.Players) {
		t.Errorf("players: got %+v, want %+v", got[0].Players, want.Players)
	}
}

func TestRecordIsAtomic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	if err := s.Record(ctx, record("dup", now)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Record(ctx, record("dup", now)); err == nil {
		t.Fatal("duplicate match id should fail")
	}

	got, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || len(got[0].Players) != 2 {
		t.Fatalf("got %+v, want one match with two players", got)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Record(context.Background(), record("kept", time.Now())); err != nil {
		t.Fatalf("Record: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.Recent(context.Background(), 5)
	if err != nil || len(got) != 1 || got[0].MatchID != "kept" {
		t.Fatalf("after reopen: got %+v, %v", got, err)
	}
}
