// Package vienna implements the client for the Vienna venue's CSV export.
//
// The venue has no history API; the only machine-readable surface is a CSV
// download behind a templated, locale-specific URL with percent-encoded
// MM/DD/YYYY range parameters. The export carries one header row and one
// data row for the latest session. Headers are normalized into lowerCamel
// keys ("Last Close" -> "lastClose", "Chg.%" -> "chgPct") so the normalizer
// can address fields by a stable vocabulary.
package vienna
