// Package model defines the shared data types of the sync pipeline.
//
// Conventions:
//   - Nullable numerics are pointers. An absent or unparseable upstream value
//     stays nil all the way to the database; it is never coerced to zero.
//   - Dates are time.Time values at midnight, the time-of-day component is
//     not meaningful.
//   - ISINs are the primary instrument identity; the two-letter country
//     prefix encodes the issuing market.
package model
