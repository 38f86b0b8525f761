package model

import "time"

// AssetClass distinguishes equities from indices.
type AssetClass string

const (
	ClassEquity AssetClass = "equity"
	ClassIndex  AssetClass = "index"
)

// Source identifies which upstream feeds an instrument. It is resolved once
// when the registry snapshot is loaded, never re-derived per fetch.
type Source int

const (
	// SourceNone marks instruments no adapter can serve, such as a Vienna
	// listing without a web identifier. The pipeline skips them.
	SourceNone Source = iota

	// SourceZagreb is the Zagreb JSON history API (HR ISINs).
	SourceZagreb

	// SourceLjubljana is the Ljubljana JSON history API (SI ISINs).
	SourceLjubljana

	// SourceVienna is the Vienna CSV export (AT equities with a web id).
	SourceVienna
)

func (s Source) String() string {
	switch s {
	case SourceZagreb:
		return "zagreb"
	case SourceLjubljana:
		return "ljubljana"
	case SourceVienna:
		return "vienna"
	default:
		return "none"
	}
}

// Instrument is one tracked equity or index.
type Instrument struct {
	ISIN   string     // Primary key (e.g. "SI0031102120")
	MIC    string     // Venue MIC (e.g. "XLJU")
	Symbol string     // Venue ticker symbol
	Class  AssetClass // equity or index
	WebID  *string    // Vienna web path identifier, nil elsewhere

	// Denormalized snapshot, kept in step by the upsert writer.
	LastPrice *float64 // Last price (equities) or value (indices)
	ChangePct *float64 // Change vs previous close, percent

	Source Source // Routing, resolved at registry load
}

// DailyPrice is the canonical end-of-day record for an equity.
// The pair (ISIN, Date) is unique; re-ingestion of the same date overwrites
// every field, last writer wins.
type DailyPrice struct {
	ISIN string
	Date time.Time

	TradingModelID   *string
	Open             *float64
	High             *float64
	Low              *float64
	Last             *float64
	VWAP             *float64
	ChangePct        *float64
	NumTrades        *int64
	Volume           *float64
	Turnover         *float64
	PriceCurrency    *string
	TurnoverCurrency *string
}

// IndexValue is the canonical end-of-day record for an index.
type IndexValue struct {
	ISIN string
	Date time.Time

	Open      *float64
	High      *float64
	Low       *float64
	Last      *float64
	ChangePct *float64
	Turnover  *float64
}
