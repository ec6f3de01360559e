// Package diagnostics implements spec.md §7's fatal error-reporting
// contract: a single diagnostic line naming the failing invariant and the
// entity that triggered it, plus an optional gzip-compressed snapshot of
// the state that led to it, for offline debugging.
package diagnostics
