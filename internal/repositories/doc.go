// Package repositories implements SQLite persistence for the local movie cache.
//
// The cache is advisory: it lets `flixctl movies list --cached` browse the
// catalog offline, but it never feeds favorites decisions or writes back to
// the server. Rows are keyed by the server's movie identifier and replaced
// wholesale on each save, so the cache mirrors the last fetch rather than
// accumulating history.
package repositories
