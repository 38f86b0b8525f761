// Package registry loads the per-run snapshot of tracked instruments.
//
// The snapshot is read once at run start and is immutable: instruments
// added or edited mid-run are picked up by the next run. Source routing is
// resolved here, once, from the ISIN country prefix and the presence of the
// Vienna web identifier. The pipeline never re-derives it per fetch.
package registry
