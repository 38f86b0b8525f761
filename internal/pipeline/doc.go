// Package pipeline orchestrates one sync run.
//
// A run takes a registry snapshot, walks equities then indices strictly
// sequentially, routes each instrument to its adapter, normalizes and
// upserts successes, and isolates per-instrument failures: a failing
// instrument is logged, its denormalized change percentage is reset to
// zero, and the loop continues. Only a resource failure (the run's database
// session cannot be acquired or the registry cannot be read) aborts the run.
//
// A completed run notifies Success regardless of how many instruments
// failed; the Outcome still carries the failure count so a stricter policy
// later is a one-line change. Overlapping triggers collapse into the run
// already in flight.
package pipeline
