package history

import (
	"path/filepath"
	"testing"
	"time"
)

func TestAppendNewestFirst(t *testing.T) {
	s := NewStore(0)

	first := NewEntry("1 + 1", "2")
	second := NewEntry("2 + 2", "4")
	s.Append(first)
	s.Append(second)

	all := s.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(all))
	}
	if all[0].ID != second.ID {
		t.Error("newest entry should be first")
	}
	if all[1].ID != first.ID {
		t.Error("oldest entry should be last")
	}
}

func TestEntryFields(t *testing.T) {
	e := NewEntry("8 + 2", "10")

	if e.ID == "" {
		t.Error("entry should have an ID")
	}
	if e.Expression != "8 + 2" {
		t.Errorf("expected expression %q, got %q", "8 + 2", e.Expression)
	}
	if e.Result != "10" {
		t.Errorf("expected result %q, got %q", "10", e.Result)
	}
	if e.Timestamp.IsZero() {
		t.Error("entry should be timestamped")
	}
}

func TestEntryIDsUnique(t *testing.T) {
	a := NewEntry("1", "1")
	b := NewEntry("1", "1")

	if a.ID == b.ID {
		t.Error("entries should have distinct IDs")
	}
}

func TestClear(t *testing.T) {
	s := NewStore(0)
	s.Append(NewEntry("1 + 1", "2"))
	s.Clear()

	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d entries", s.Len())
	}
}

func TestFind(t *testing.T) {
	s := NewStore(0)
	e := NewEntry("1 + 1", "2")
	s.Append(e)

	got, ok := s.Find(e.ID)
	if !ok {
		t.Fatal("expected to find entry")
	}
	if got.Expression != e.Expression {
		t.Errorf("expected %q, got %q", e.Expression, got.Expression)
	}

	if _, ok := s.Find("no-such-id"); ok {
		t.Error("unknown ID should not be found")
	}
}

func TestMaxEntriesTrimsOldest(t *testing.T) {
	s := NewStore(2)

	oldest := NewEntry("1", "1")
	s.Append(oldest)
	s.Append(NewEntry("2", "2"))
	s.Append(NewEntry("3", "3"))

	if s.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", s.Len())
	}
	if _, ok := s.Find(oldest.ID); ok {
		t.Error("oldest entry should have been dropped")
	}
}

func TestSetMaxEntries(t *testing.T) {
	s := NewStore(0)
	for i := 0; i < 5; i++ {
		s.Append(NewEntry("1", "1"))
	}

	s.SetMaxEntries(3)
	if s.Len() != 3 {
		t.Errorf("expected 3 entries after shrink, got %d", s.Len())
	}
	if s.MaxEntries() != 3 {
		t.Errorf("expected limit 3, got %d", s.MaxEntries())
	}
}

func TestByDayGrouping(t *testing.T) {
	s := NewStore(0)

	today := time.Date(2026, 8, 26, 14, 0, 0, 0, time.Local)
	yesterday := today.AddDate(0, 0, -1)

	// Appended oldest first so the store holds newest first.
	s.Append(Entry{ID: "a", Expression: "1", Result: "1", Timestamp: yesterday})
	s.Append(Entry{ID: "b", Expression: "2", Result: "2", Timestamp: today.Add(-time.Hour)})
	s.Append(Entry{ID: "c", Expression: "3", Result: "3", Timestamp: today})

	groups := s.ByDay()
	if len(groups) != 2 {
		t.Fatalf("expected 2 day groups, got %d", len(groups))
	}

	if !groups[0].Day.Equal(dayOf(today)) {
		t.Errorf("newest day should come first, got %v", groups[0].Day)
	}
	if len(groups[0].Entries) != 2 {
		t.Fatalf("expected 2 entries today, got %d", len(groups[0].Entries))
	}
	if groups[0].Entries[0].ID != "c" {
		t.Error("newest entry should lead its group")
	}
	if len(groups[1].Entries) != 1 || groups[1].Entries[0].ID != "a" {
		t.Error("yesterday's group should hold the oldest entry")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")

	s := NewStore(0)
	s.Append(NewEntry("8 + 2", "10"))
	s.Append(NewEntry("10 / 4", "2.5"))

	if err := s.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded := NewStore(0)
	if err := loaded.Load(path); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	want := s.All()
	got := loaded.All()
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i].ID ||
			got[i].Expression != want[i].Expression ||
			got[i].Result != want[i].Result {
			t.Errorf("entry %d mismatch: got %+v, want %+v", i, got[i], want[i])
		}
		if !got[i].Timestamp.Equal(want[i].Timestamp) {
			t.Errorf("entry %d timestamp mismatch: got %v, want %v",
				i, got[i].Timestamp, want[i].Timestamp)
		}
	}
}

func TestLoadMissingFileIsNoop(t *testing.T) {
	s := NewStore(0)
	s.Append(NewEntry("1", "1"))

	err := s.Load(filepath.Join(t.TempDir(), "absent.jsonl"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("store should be untouched, got %d entries", s.Len())
	}
}
