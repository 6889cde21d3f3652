// Package session holds the in-memory working set of subtitle segments for
// the editing surface and converts it to and from SRT.
//
// The store is a single mutable segment list guarded by a mutex. Every read
// returns a copy, so callers can render or export a snapshot while handlers
// keep mutating the live list.
package session
