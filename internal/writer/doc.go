// Package writer persists canonical records.
//
// Upserts are keyed on (isin, date): on conflict every non-key column is
// overwritten by the incoming value, including with NULLs. There is no
// keep-old-if-new-is-null merge: the incoming record is the truth for its
// date, and re-ingesting it is idempotent.
package writer
