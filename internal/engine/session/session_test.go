package session

import (
	"errors"
	"testing"

	"github.com/dshills/calcstorm/internal/engine/buffer"
	"github.com/dshills/calcstorm/internal/engine/eval"
	"github.com/dshills/calcstorm/internal/engine/history"
)

func newTestSession() (*Session, *history.Store) {
	store := history.NewStore(0)
	return New(store, LoadExpression), store
}

func typeExpression(s *Session, fragments ...string) Snapshot {
	var snap Snapshot
	for _, f := range fragments {
		snap = s.Insert(f)
	}
	return snap
}

func TestCommitAppendsHistory(t *testing.T) {
	s, store := newTestSession()
	typeExpression(s, "8", " + ", "2")

	snap := s.Commit()
	if !snap.IsResultShown {
		t.Error("expected ResultShown after commit")
	}
	if snap.DisplayedResult != "10" {
		t.Errorf("expected displayed result 10, got %q", snap.DisplayedResult)
	}
	if snap.LastCommittedExpression != "8 + 2" {
		t.Errorf("expected last committed %q, got %q", "8 + 2", snap.LastCommittedExpression)
	}

	entries := store.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(entries))
	}
	if entries[0].Expression != "8 + 2" || entries[0].Result != "10" {
		t.Errorf("unexpected entry %+v", entries[0])
	}
}

func TestCommitEmptyIsNoop(t *testing.T) {
	s, store := newTestSession()

	snap := s.Commit()
	if snap.IsResultShown {
		t.Error("commit of empty buffer should stay in Editing")
	}
	if store.Len() != 0 {
		t.Errorf("history should be unchanged, got %d entries", store.Len())
	}
}

func TestCommitInvalidIsNoop(t *testing.T) {
	s, store := newTestSession()
	typeExpression(s, "7", " + ")

	snap := s.Commit()
	if snap.IsResultShown {
		t.Error("commit of invalid expression should stay in Editing")
	}
	if store.Len() != 0 {
		t.Errorf("history should be unchanged, got %d entries", store.Len())
	}
}

func TestCommitDivisionByZeroIsNoop(t *testing.T) {
	s, store := newTestSession()
	snap := typeExpression(s, "10", " / ", "0")

	if snap.Outcome.Kind != eval.KindError {
		t.Fatalf("expected error outcome, got %v", snap.Outcome.Kind)
	}

	snap = s.Commit()
	if snap.IsResultShown {
		t.Error("commit of undefined expression should stay in Editing")
	}
	if store.Len() != 0 {
		t.Errorf("history should be unchanged, got %d entries", store.Len())
	}
}

func TestRepeatedCommitIsNoop(t *testing.T) {
	s, store := newTestSession()
	typeExpression(s, "1", " + ", "1")

	s.Commit()
	s.Commit()

	if store.Len() != 1 {
		t.Errorf("repeated commit should not duplicate history, got %d entries", store.Len())
	}
}

func TestDigitAfterResultStartsFresh(t *testing.T) {
	s, _ := newTestSession()
	typeExpression(s, "8", " + ", "2")
	s.Commit()

	snap := s.Insert("5")
	if snap.ExpressionText != "5" {
		t.Errorf("expected fresh buffer %q, got %q", "5", snap.ExpressionText)
	}
	if snap.CursorPosition != 1 {
		t.Errorf("expected cursor 1, got %d", snap.CursorPosition)
	}
	if snap.IsResultShown {
		t.Error("editing should return to Editing state")
	}
	if snap.LastCommittedExpression != "" {
		t.Errorf("editing should clear last committed, got %q", snap.LastCommittedExpression)
	}
}

func TestSelectEntryLoadsExpression(t *testing.T) {
	s, _ := newTestSession()
	typeExpression(s, "8", " + ", "2")
	s.Commit()
	id := s.Entries()[0].ID

	s.Clear()
	snap, err := s.SelectEntry(id)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}

	if snap.ExpressionText != "8 + 2" {
		t.Errorf("expected expression restored, got %q", snap.ExpressionText)
	}
	if snap.CursorPosition != len("8 + 2") {
		t.Errorf("expected cursor at end, got %d", snap.CursorPosition)
	}
	if snap.IsResultShown {
		t.Error("resumed entry should be editable")
	}
	if snap.LastCommittedExpression != "" {
		t.Errorf("select should clear last committed, got %q", snap.LastCommittedExpression)
	}
}

func TestSelectEntryLoadsResultWhenConfigured(t *testing.T) {
	store := history.NewStore(0)
	s := New(store, LoadResult)
	typeExpression(s, "8", " + ", "2")
	s.Commit()
	id := s.Entries()[0].ID

	snap, err := s.SelectEntry(id)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if snap.ExpressionText != "10" {
		t.Errorf("expected bare result loaded, got %q", snap.ExpressionText)
	}
}

func TestSelectEntryUnknownID(t *testing.T) {
	s, _ := newTestSession()

	_, err := s.SelectEntry("missing")
	if !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestClearHistory(t *testing.T) {
	s, store := newTestSession()
	typeExpression(s, "1", " + ", "1")
	s.Commit()

	s.ClearHistory()
	if store.Len() != 0 {
		t.Errorf("expected empty history, got %d entries", store.Len())
	}
}

func TestMoveCursorDoesNotClearLastCommitted(t *testing.T) {
	s, _ := newTestSession()
	typeExpression(s, "1", " + ", "1")
	s.Commit()

	snap := s.MoveCursor(buffer.Left)
	if snap.LastCommittedExpression != "1 + 1" {
		t.Errorf("cursor motion should keep last committed, got %q", snap.LastCommittedExpression)
	}
}

func TestParseLoadMode(t *testing.T) {
	mode, err := ParseLoadMode("expression")
	if err != nil || mode != LoadExpression {
		t.Errorf("expected LoadExpression, got %v, %v", mode, err)
	}

	mode, err = ParseLoadMode("result")
	if err != nil || mode != LoadResult {
		t.Errorf("expected LoadResult, got %v, %v", mode, err)
	}

	if _, err := ParseLoadMode("bogus"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestSnapshotIsReadOnlyView(t *testing.T) {
	s, _ := newTestSession()
	typeExpression(s, "4", " × ", "2")

	snap := s.Snapshot()
	if snap.ExpressionText != "4 × 2" {
		t.Errorf("expected %q, got %q", "4 × 2", snap.ExpressionText)
	}
	if snap.DisplayedResult != "8" {
		t.Errorf("expected preview 8, got %q", snap.DisplayedResult)
	}

	// Snapshot must not mutate the session.
	again := s.Snapshot()
	if again != snap {
		t.Error("consecutive snapshots should be identical")
	}
}
