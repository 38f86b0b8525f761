// Package normalize maps provider records into the canonical record schema.
//
// The history API already speaks the canonical vocabulary, so its mapping is
// a field-for-field copy. The Vienna export needs numeric coercion, currency
// and trading-model defaulting, and explicit nils for the fields the venue
// does not report.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mzidar/adriatic-eod/internal/model"
	"github.com/mzidar/adriatic-eod/internal/source/histapi"
	"github.com/mzidar/adriatic-eod/internal/source/vienna"
)

const (
	isoDateLayout    = "2006-01-02"
	exportDateLayout = "01/02/2006"

	// The Vienna venue reports neither currency nor trading model.
	viennaCurrency     = "EUR"
	viennaTradingModel = "CT"
)

// grouped matches values whose commas separate three-digit groups, the
// export's thousands notation ("1,234", "13,330").
var grouped = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)

// Float parses an export numeric value. A trailing "%" glyph is stripped; a
// comma between three-digit groups is a grouping separator ("1,234" -> 1234),
// any other comma is a decimal separator ("10,50" -> 10.5). Absent or
// unparseable values yield nil, never zero; a zero here would corrupt the
// denormalized snapshot downstream.
func Float(s string) *float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" {
		return nil
	}

	if grouped.MatchString(s) {
		s = strings.ReplaceAll(s, ",", "")
	} else {
		s = strings.Replace(s, ",", ".", 1)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// EquityFromHistory maps a security-history point to the canonical record.
func EquityFromHistory(r *histapi.SecurityRecord, inst model.Instrument) (model.DailyPrice, error) {
	date, err := time.Parse(isoDateLayout, r.Date)
	if err != nil {
		return model.DailyPrice{}, fmt.Errorf("parse record date %q: %w", r.Date, err)
	}

	return model.DailyPrice{
		ISIN:             inst.ISIN,
		Date:             date,
		TradingModelID:   r.TradingModelID,
		Open:             r.Open,
		High:             r.High,
		Low:              r.Low,
		Last:             r.Last,
		VWAP:             r.VWAP,
		ChangePct:        r.ChangePct,
		NumTrades:        r.NumTrades,
		Volume:           r.Volume,
		Turnover:         r.Turnover,
		PriceCurrency:    r.PriceCurrency,
		TurnoverCurrency: r.TurnoverCurrency,
	}, nil
}

// IndexFromHistory maps an index-history point to the canonical record.
func IndexFromHistory(r *histapi.IndexRecord, inst model.Instrument) (model.IndexValue, error) {
	date, err := time.Parse(isoDateLayout, r.Date)
	if err != nil {
		return model.IndexValue{}, fmt.Errorf("parse record date %q: %w", r.Date, err)
	}

	return model.IndexValue{
		ISIN:      inst.ISIN,
		Date:      date,
		Open:      r.Open,
		High:      r.High,
		Low:       r.Low,
		Last:      r.Last,
		ChangePct: r.ChangePct,
		Turnover:  r.Turnover,
	}, nil
}

// EquityFromExport maps a Vienna export row to the canonical record. The
// venue carries no currency, trading model, vwap or trade count: currencies
// default to EUR, the trading model to "CT", the rest stay nil. When the row
// carries no parseable date the run date is used.
func EquityFromExport(row vienna.Row, inst model.Instrument, runDate time.Time) model.DailyPrice {
	y, m, d := runDate.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if parsed, err := time.Parse(exportDateLayout, row["date"]); err == nil {
		date = parsed
	}

	tradingModel := viennaTradingModel
	priceCurrency := viennaCurrency
	turnoverCurrency := viennaCurrency

	return model.DailyPrice{
		ISIN:             inst.ISIN,
		Date:             date,
		TradingModelID:   &tradingModel,
		Open:             Float(row["open"]),
		High:             Float(row["high"]),
		Low:              Float(row["low"]),
		Last:             Float(row["lastClose"]),
		VWAP:             nil, // not reported by the venue
		ChangePct:        Float(row["chgPct"]),
		NumTrades:        nil, // not reported by the venue
		Volume:           Float(row["totalVolume1"]),
		Turnover:         Float(row["totalValue1"]),
		PriceCurrency:    &priceCurrency,
		TurnoverCurrency: &turnoverCurrency,
	}
}
