// Package buffer provides the cursor-addressable expression buffer at
// the heart of the calculator engine.
//
// The buffer owns the expression text exactly as typed and an edit
// cursor clamped to [0, len(text)]. Every mutation re-derives a live
// preview value through the evaluator and returns the resulting State
// as one atomic transition; no partial update is ever observable.
//
// The preview retention policy matches the live-calculator feel: when
// an edit leaves the expression empty or momentarily malformed, the
// previously displayed value is kept rather than replaced. Only a
// commit surfaces hard failures.
//
// Basic usage:
//
//	buf := buffer.New()
//	buf.Insert("7")
//	buf.Insert(" + ")
//	st := buf.Insert("3")
//	// st.Text == "7 + 3", st.Preview == "10"
//
// All methods are safe for concurrent use. Each mutation, including its
// evaluation pass, completes under the buffer lock before the next is
// accepted, preserving single-writer discipline.
package buffer
