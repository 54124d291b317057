// Package storage defines persistence for finished battles outside the
// battle core: battle summaries, narrated transcripts and AI decision logs.
//
// The core never imports this package. Callers collect narration and
// decisions through the battle's sink and logger interfaces and hand them to
// a store. A SQLite implementation lives in the sqlite subpackage.
//
// # Error Types
//
//   - ErrNotFound: a requested battle is missing.
//   - ErrAlreadyRecorded: a concluded battle summary cannot be rewritten.
//
// Validation failures carry the STORAGE_INVALID_RECORD code.
package storage
