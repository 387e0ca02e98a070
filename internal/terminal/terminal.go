// Package terminal is the tcell host for the calculator engine. It maps
// key presses to session operations and renders the session snapshot;
// the engine itself stays unaware of any terminal.
package terminal

import (
	"errors"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/calcstorm/internal/engine/buffer"
	"github.com/dshills/calcstorm/internal/engine/eval"
	"github.com/dshills/calcstorm/internal/engine/session"
)

// ErrQuit is returned from Run when the user asks to exit.
var ErrQuit = errors.New("quit")

// historyRows caps the on-screen history strip.
const historyRows = 8

// UI drives a calculator session on a tcell screen.
type UI struct {
	screen tcell.Screen
	sess   *session.Session
}

// New creates a UI over the given session.
func New(sess *session.Session) (*UI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &UI{screen: screen, sess: sess}, nil
}

// Init prepares the terminal screen.
func (u *UI) Init() error {
	if err := u.screen.Init(); err != nil {
		return err
	}
	u.screen.SetStyle(tcell.StyleDefault)
	return nil
}

// Shutdown restores the terminal.
func (u *UI) Shutdown() {
	u.screen.Fini()
}

// Run polls events until the user quits, redrawing after every session
// call. Returns ErrQuit on a normal exit.
func (u *UI) Run() error {
	u.draw(u.sess.Snapshot())

	for {
		ev := u.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			u.screen.Sync()
			u.draw(u.sess.Snapshot())
		case *tcell.EventKey:
			snap, quit := u.handleKey(ev)
			if quit {
				return ErrQuit
			}
			u.draw(snap)
		}
	}
}

// handleKey maps one key press to a session operation.
func (u *UI) handleKey(ev *tcell.EventKey) (session.Snapshot, bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return session.Snapshot{}, true
	case tcell.KeyLeft:
		return u.sess.MoveCursor(buffer.Left), false
	case tcell.KeyRight:
		return u.sess.MoveCursor(buffer.Right), false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return u.sess.DeleteBackward(), false
	case tcell.KeyEnter:
		return u.sess.Commit(), false
	case tcell.KeyRune:
		return u.handleRune(ev.Rune())
	}
	return u.sess.Snapshot(), false
}

func (u *UI) handleRune(r rune) (session.Snapshot, bool) {
	switch {
	case r >= '0' && r <= '9', r == '.':
		return u.sess.Insert(string(r)), false
	case r == '(' || r == ')':
		return u.sess.Insert(string(r)), false
	case r == '+':
		return u.insertOperator("+"), false
	case r == '-':
		return u.insertOperator("-"), false
	case r == '*':
		return u.insertOperator(string(eval.GlyphMultiply)), false
	case r == '/':
		return u.insertOperator(string(eval.GlyphDivide)), false
	case r == '=':
		return u.sess.Commit(), false
	case r == '%':
		return u.sess.TogglePercent(), false
	case r == 'n' || r == 's':
		return u.sess.ToggleSign(), false
	case r == 'c':
		return u.sess.Clear(), false
	case r == 'C':
		return u.sess.ClearHistory(), false
	case r == 'q':
		return session.Snapshot{}, true
	}
	return u.sess.Snapshot(), false
}

// insertOperator inserts op space-padded as a binary operator, or bare
// when the context calls for a unary minus or a leading operand.
func (u *UI) insertOperator(op string) session.Snapshot {
	if op == "-" && wantsUnaryMinus(u.sess.Snapshot()) {
		return u.sess.Insert("-")
	}
	return u.sess.Insert(" " + op + " ")
}

// wantsUnaryMinus reports whether a minus at the cursor would negate an
// operand rather than subtract: at the start of the expression or right
// after an opening parenthesis or another operator.
func wantsUnaryMinus(snap session.Snapshot) bool {
	text := snap.ExpressionText[:snap.CursorPosition]
	for len(text) > 0 {
		r, size := utf8.DecodeLastRuneInString(text)
		if r == ' ' {
			text = text[:len(text)-size]
			continue
		}
		switch r {
		case '(', '+', '-', '*', '/', '×', '÷':
			return true
		}
		return false
	}
	return true
}

// draw renders the snapshot: expression with hardware cursor, live
// preview, the committed expression when a result is shown, and a
// recent-history strip.
func (u *UI) draw(snap session.Snapshot) {
	u.screen.Clear()

	bold := tcell.StyleDefault.Bold(true)
	dim := tcell.StyleDefault.Dim(true)

	drawText(u.screen, 0, 0, dim, "calcstorm")

	exprText := snap.ExpressionText
	if exprText == "" && !snap.IsResultShown {
		drawText(u.screen, 2, 2, dim, "0")
	} else {
		drawText(u.screen, 2, 2, tcell.StyleDefault, exprText)
	}
	u.screen.ShowCursor(2+utf8.RuneCountInString(exprText[:snap.CursorPosition]), 2)

	resultStyle := tcell.StyleDefault
	if snap.IsResultShown {
		resultStyle = bold
	}
	if snap.Outcome.Kind == eval.KindError {
		drawText(u.screen, 2, 4, bold, "= Error")
	} else {
		drawText(u.screen, 2, 4, resultStyle, "= "+snap.DisplayedResult)
	}

	row := 6
	if snap.IsResultShown && snap.LastCommittedExpression != "" {
		drawText(u.screen, 2, row, dim, snap.LastCommittedExpression+" =")
		row += 2
	}

	for i, e := range u.sess.Entries() {
		if i >= historyRows {
			break
		}
		drawText(u.screen, 2, row+i, dim, e.Expression+" = "+e.Result)
	}

	_, height := u.screen.Size()
	help := "←/→ move  ⌫ delete  = commit  % percent  n ± sign  c clear  C clear history  q quit"
	drawText(u.screen, 0, height-1, dim, help)

	u.screen.Show()
}

// drawText writes s starting at (x, y), one cell per rune.
func drawText(screen tcell.Screen, x, y int, style tcell.Style, s string) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
