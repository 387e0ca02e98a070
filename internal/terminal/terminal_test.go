package terminal

import (
	"testing"

	"github.com/dshills/calcstorm/internal/engine/session"
)

func TestWantsUnaryMinus(t *testing.T) {
	cases := []struct {
		text   string
		cursor int
		want   bool
	}{
		{"", 0, true},
		{"5", 1, false},
		{"5 + ", 4, true},
		{"(", 1, true},
		{"(5", 2, false},
		{"6 × ", len("6 × "), true},
		{"5", 0, true},   // cursor before the operand
		{"12 ", 3, false}, // trailing space after a digit
	}

	for _, tc := range cases {
		snap := session.Snapshot{ExpressionText: tc.text, CursorPosition: tc.cursor}
		if got := wantsUnaryMinus(snap); got != tc.want {
			t.Errorf("wantsUnaryMinus(%q, %d) = %v, want %v", tc.text, tc.cursor, got, tc.want)
		}
	}
}
