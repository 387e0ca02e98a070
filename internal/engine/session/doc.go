// Package session orchestrates the expression buffer, commit semantics,
// and the history store behind a single calculator session.
//
// A session is a two-state machine. It starts in Editing; a successful
// commit of a non-empty, well-formed expression moves it to ResultShown
// and appends a history entry. Any further edit, or resuming a history
// entry, moves it back to Editing. Committing an empty, malformed, or
// mathematically undefined expression is a silent no-op.
//
// Every operation returns a read-only Snapshot of the session, suitable
// for a presentation layer to render directly. The session renders
// nothing itself.
package session
