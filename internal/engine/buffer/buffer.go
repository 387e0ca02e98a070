package buffer

import (
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/dshills/calcstorm/internal/engine/eval"
	"github.com/dshills/calcstorm/internal/engine/scan"
)

// Direction selects which way MoveCursor steps.
type Direction uint8

const (
	// Left moves the cursor one character toward the start.
	Left Direction = iota
	// Right moves the cursor one character toward the end.
	Right
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// State is an atomic snapshot of the buffer after a mutation.
type State struct {
	// Text is the expression exactly as typed.
	Text string

	// Cursor is the byte offset of the insertion point, always within
	// [0, len(Text)] and on a rune boundary.
	Cursor int

	// ResultShown is true only between a successful commit and the
	// next edit.
	ResultShown bool

	// Preview is the last known-good value, "0" before any input.
	Preview string

	// Outcome is the evaluation of the current text.
	Outcome eval.Outcome
}

// Buffer owns the mutable expression text and edit cursor.
// All methods are safe for concurrent use.
type Buffer struct {
	mu          sync.Mutex
	text        string
	cursor      int
	resultShown bool
	preview     string
	outcome     eval.Outcome
}

// New creates an empty buffer with an initial preview of "0".
func New() *Buffer {
	return &Buffer{preview: "0"}
}

// State returns the current buffer state without mutating it.
func (b *Buffer) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

// Insert splices fragment into the text at the cursor and advances the
// cursor past it. When a result is shown and the fragment is a single
// digit or decimal point, the buffer is replaced wholesale by the
// fragment, starting a new expression after the result.
func (b *Buffer) Insert(fragment string) State {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.resultShown && isNumericFragment(fragment) {
		b.text = fragment
		b.cursor = len(fragment)
	} else {
		b.text = b.text[:b.cursor] + fragment + b.text[b.cursor:]
		b.cursor += len(fragment)
	}
	b.resultShown = false
	b.reevaluateLocked()

	return b.stateLocked()
}

// DeleteBackward removes the character immediately before the cursor.
// At offset zero it is a no-op; while a result is shown it clears the
// buffer instead.
func (b *Buffer) DeleteBackward() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.resultShown {
		b.clearLocked()
		return b.stateLocked()
	}
	if b.cursor == 0 {
		return b.stateLocked()
	}

	_, size := utf8.DecodeLastRuneInString(b.text[:b.cursor])
	b.text = b.text[:b.cursor-size] + b.text[b.cursor:]
	b.cursor -= size
	b.reevaluateLocked()

	return b.stateLocked()
}

// MoveCursor steps the cursor one character in the given direction,
// clamped to the text bounds. Text and evaluation are untouched.
func (b *Buffer) MoveCursor(dir Direction) State {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch dir {
	case Left:
		if b.cursor > 0 {
			_, size := utf8.DecodeLastRuneInString(b.text[:b.cursor])
			b.cursor -= size
		}
	case Right:
		if b.cursor < len(b.text) {
			_, size := utf8.DecodeRuneInString(b.text[b.cursor:])
			b.cursor += size
		}
	}

	return b.stateLocked()
}

// SetCursor places the cursor at position, clamped to [0, len(text)]
// and snapped back to the nearest rune boundary.
func (b *Buffer) SetCursor(position int) State {
	b.mu.Lock()
	defer b.mu.Unlock()

	if position < 0 {
		position = 0
	}
	if position > len(b.text) {
		position = len(b.text)
	}
	for position > 0 && position < len(b.text) && !utf8.RuneStart(b.text[position]) {
		position--
	}
	b.cursor = position

	return b.stateLocked()
}

// TogglePercent replaces the number run at the cursor with its value
// divided by one hundred, formatted as a plain decimal string, and
// places the cursor after the replacement. With no run at the cursor,
// or a run that does not parse as a number, it is a no-op.
func (b *Buffer) TogglePercent() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	start, end, ok := scan.NumberAt(b.text, b.cursor)
	if !ok {
		return b.stateLocked()
	}
	v, err := strconv.ParseFloat(b.text[start:end], 64)
	if err != nil {
		return b.stateLocked()
	}

	repl := strconv.FormatFloat(v/100, 'f', -1, 64)
	b.text = b.text[:start] + repl + b.text[end:]
	b.cursor = start + len(repl)
	b.resultShown = false
	b.reevaluateLocked()

	return b.stateLocked()
}

// ToggleSign negates the number run at the cursor: a unary minus
// immediately preceding the run is stripped, otherwise a minus is
// inserted at the run start. A minus that subtracts (one with an
// operand on its left, as in "5-3") is left alone so the subtraction
// is not corrupted. The cursor lands at the end of the run. With no
// run at the cursor it is a no-op. Double application is the identity.
func (b *Buffer) ToggleSign() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	start, end, ok := scan.NumberAt(b.text, b.cursor)
	if !ok {
		return b.stateLocked()
	}

	if start > 0 && b.text[start-1] == '-' && isUnaryMinusAt(b.text, start-1) {
		b.text = b.text[:start-1] + b.text[start:]
		b.cursor = end - 1
	} else {
		b.text = b.text[:start] + "-" + b.text[start:]
		b.cursor = end + 1
	}
	b.resultShown = false
	b.reevaluateLocked()

	return b.stateLocked()
}

// Clear resets the buffer to its initial empty state.
func (b *Buffer) Clear() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clearLocked()
	return b.stateLocked()
}

// Load replaces the buffer content, placing the cursor at the end.
// Used when resuming a history entry.
func (b *Buffer) Load(text string) State {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.text = text
	b.cursor = len(text)
	b.resultShown = false
	b.reevaluateLocked()

	return b.stateLocked()
}

// ShowResult marks the buffer as displaying a committed result. The
// expression text is kept so editing can continue from it.
func (b *Buffer) ShowResult(result string) State {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.resultShown = true
	b.preview = result

	return b.stateLocked()
}

// reevaluateLocked re-derives the live preview. A value outcome
// replaces the preview; anything else retains the last good value.
func (b *Buffer) reevaluateLocked() {
	b.outcome = eval.Evaluate(b.text)
	if b.outcome.IsValue() {
		b.preview = b.outcome.Value
	}
}

func (b *Buffer) clearLocked() {
	b.text = ""
	b.cursor = 0
	b.resultShown = false
	b.preview = "0"
	b.outcome = eval.Empty
}

func (b *Buffer) stateLocked() State {
	return State{
		Text:        b.text,
		Cursor:      b.cursor,
		ResultShown: b.resultShown,
		Preview:     b.preview,
		Outcome:     b.outcome,
	}
}

// isUnaryMinusAt reports whether the minus at byte index i negates its
// operand rather than subtracts: at the start of the text, or with
// nothing but spaces, an operator, or an opening parenthesis on its
// left.
func isUnaryMinusAt(text string, i int) bool {
	left := text[:i]
	for len(left) > 0 {
		r, size := utf8.DecodeLastRuneInString(left)
		if r == ' ' {
			left = left[:len(left)-size]
			continue
		}
		switch r {
		case '(', '+', '-', '*', '/', eval.GlyphMultiply, eval.GlyphDivide:
			return true
		}
		return false
	}
	return true
}

// isNumericFragment reports whether fragment is a single digit or
// decimal point, the inserts that start a fresh expression after a
// result.
func isNumericFragment(fragment string) bool {
	if len(fragment) != 1 {
		return false
	}
	c := fragment[0]
	return c == '.' || (c >= '0' && c <= '9')
}
