package history

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one committed calculation. Entries are immutable after
// creation.
type Entry struct {
	// ID uniquely identifies the entry.
	ID string

	// Expression is the exact committed expression text.
	Expression string

	// Result is the canonical decimal result string.
	Result string

	// Timestamp is when the commit happened.
	Timestamp time.Time
}

// NewEntry creates an entry for a committed calculation, stamped now.
func NewEntry(expression, result string) Entry {
	return Entry{
		ID:         uuid.NewString(),
		Expression: expression,
		Result:     result,
		Timestamp:  time.Now(),
	}
}

// DayGroup is a derived presentation view: all entries committed on one
// calendar day, newest first.
type DayGroup struct {
	// Day is midnight at the start of the calendar day, in the
	// entries' local time.
	Day time.Time

	// Entries holds the day's entries, newest first.
	Entries []Entry
}

// dayOf truncates t to the start of its calendar day.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
