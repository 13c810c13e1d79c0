// Package session owns the byte-stream transport to the panda service.
//
// Ownership boundary:
// - endpoint selection (tcp host:port or abstract socket name)
// - dial retry/backoff before the first byte
// - per-operation deadlines and context binding
// - exact read/write primitives and idempotent close
//
// A Transport carries no request ids, so exactly one command may be in
// flight on it at a time. Any timeout or close mid-frame leaves the stream
// at an unknown offset; the owner must discard the Transport and dial again.
package session
