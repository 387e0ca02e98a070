package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dshills/calcstorm/internal/engine/buffer"
	"github.com/dshills/calcstorm/internal/engine/eval"
	"github.com/dshills/calcstorm/internal/engine/history"
)

// ErrEntryNotFound is returned when a history ID does not resolve.
var ErrEntryNotFound = errors.New("history entry not found")

// LoadMode selects what resuming a history entry loads into the buffer.
type LoadMode uint8

const (
	// LoadExpression restores the committed expression for continued
	// editing. This is the default.
	LoadExpression LoadMode = iota
	// LoadResult loads the bare result as a fresh literal.
	LoadResult
)

// String returns the mode name.
func (m LoadMode) String() string {
	switch m {
	case LoadExpression:
		return "expression"
	case LoadResult:
		return "result"
	default:
		return "unknown"
	}
}

// ParseLoadMode parses a mode name as used in configuration.
func ParseLoadMode(s string) (LoadMode, error) {
	switch s {
	case "expression", "":
		return LoadExpression, nil
	case "result":
		return LoadResult, nil
	default:
		return LoadExpression, fmt.Errorf("invalid history load mode %q", s)
	}
}

// Snapshot is the read-only session view handed to the presentation
// layer after every call.
type Snapshot struct {
	ExpressionText          string
	CursorPosition          int
	IsResultShown           bool
	DisplayedResult         string
	LastCommittedExpression string
	Outcome                 eval.Outcome
}

// Session couples one expression buffer with commit semantics and a
// history store. All methods are safe for concurrent use; each call
// completes before the next mutation is accepted.
type Session struct {
	mu            sync.Mutex
	buf           *buffer.Buffer
	hist          *history.Store
	loadMode      LoadMode
	lastCommitted string
}

// New creates a session in the Editing state over the given history
// store.
func New(hist *history.Store, mode LoadMode) *Session {
	return &Session{
		buf:      buffer.New(),
		hist:     hist,
		loadMode: mode,
	}
}

// Snapshot returns the current session view without mutating anything.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(s.buf.State())
}

// Insert splices fragment at the cursor; see buffer.Insert for the
// start-fresh rule after a result.
func (s *Session) Insert(fragment string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastCommitted = ""
	return s.snapshotLocked(s.buf.Insert(fragment))
}

// DeleteBackward removes the character before the cursor.
func (s *Session) DeleteBackward() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastCommitted = ""
	return s.snapshotLocked(s.buf.DeleteBackward())
}

// MoveCursor steps the cursor without touching text or evaluation.
func (s *Session) MoveCursor(dir buffer.Direction) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(s.buf.MoveCursor(dir))
}

// SetCursor places the cursor, clamped to the text bounds.
func (s *Session) SetCursor(position int) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(s.buf.SetCursor(position))
}

// TogglePercent divides the number at the cursor by one hundred.
func (s *Session) TogglePercent() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastCommitted = ""
	return s.snapshotLocked(s.buf.TogglePercent())
}

// ToggleSign negates the number at the cursor.
func (s *Session) ToggleSign() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastCommitted = ""
	return s.snapshotLocked(s.buf.ToggleSign())
}

// Clear resets the buffer and returns to Editing.
func (s *Session) Clear() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastCommitted = ""
	return s.snapshotLocked(s.buf.Clear())
}

// Commit finalizes the current expression. When the live evaluation is
// a value and the trimmed expression is non-empty, a history entry is
// appended, the result is displayed, and the session moves to
// ResultShown. In every other case, including a repeated commit while a
// result is already shown, Commit is a silent no-op.
func (s *Session) Commit() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.buf.State()
	if st.ResultShown {
		return s.snapshotLocked(st)
	}
	if strings.TrimSpace(st.Text) == "" || !st.Outcome.IsValue() {
		return s.snapshotLocked(st)
	}

	s.hist.Append(history.NewEntry(st.Text, st.Outcome.Value))
	s.lastCommitted = st.Text

	return s.snapshotLocked(s.buf.ShowResult(st.Outcome.Value))
}

// SelectEntry resumes a history entry, loading its expression (or its
// result, per the session's load mode) into the buffer with the cursor
// at the end, and returns to Editing.
func (s *Session) SelectEntry(id string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.hist.Find(id)
	if !ok {
		return s.snapshotLocked(s.buf.State()), fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}

	text := entry.Expression
	if s.loadMode == LoadResult {
		text = entry.Result
	}
	s.lastCommitted = ""

	return s.snapshotLocked(s.buf.Load(text)), nil
}

// ClearHistory empties the history store.
func (s *Session) ClearHistory() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hist.Clear()
	return s.snapshotLocked(s.buf.State())
}

// Entries returns the session's history, newest first.
func (s *Session) Entries() []history.Entry {
	return s.hist.All()
}

// EntriesByDay returns the history grouped by calendar day.
func (s *Session) EntriesByDay() []history.DayGroup {
	return s.hist.ByDay()
}

// SetLoadMode changes what SelectEntry loads.
func (s *Session) SetLoadMode(mode LoadMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadMode = mode
}

// LoadMode returns the current load mode.
func (s *Session) LoadMode() LoadMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadMode
}

func (s *Session) snapshotLocked(st buffer.State) Snapshot {
	return Snapshot{
		ExpressionText:          st.Text,
		CursorPosition:          st.Cursor,
		IsResultShown:           st.ResultShown,
		DisplayedResult:         st.Preview,
		LastCommittedExpression: s.lastCommitted,
		Outcome:                 st.Outcome,
	}
}
