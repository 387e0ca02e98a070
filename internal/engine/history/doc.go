// Package history stores committed calculations.
//
// The store is an ordered, append-only list of entries, newest first,
// with a full clear as the only removal. Entries are immutable once
// appended and identified by UUID. A derived day-grouped view supports
// presentation; grouping is computed on read, never stored.
//
// The store can optionally round-trip through an append-only JSON Lines
// file, one {id, expression, result, timestamp} record per line, for
// hosts that persist history across runs.
package history
