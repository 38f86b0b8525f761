package histapi

// SecurityRecord is one point of a security-history response.
type SecurityRecord struct {
	Date             string   `json:"date"`
	TradingModelID   *string  `json:"trading_model_id"`
	Open             *float64 `json:"open_price"`
	High             *float64 `json:"high_price"`
	Low              *float64 `json:"low_price"`
	Last             *float64 `json:"last_price"`
	VWAP             *float64 `json:"vwap_price"`
	ChangePct        *float64 `json:"change_prev_close_percentage"`
	NumTrades        *int64   `json:"num_trades"`
	Volume           *float64 `json:"volume"`
	Turnover         *float64 `json:"turnover"`
	PriceCurrency    *string  `json:"price_currency"`
	TurnoverCurrency *string  `json:"turnover_currency"`
}

// IndexRecord is one point of an index-history response.
type IndexRecord struct {
	Date      string   `json:"date"`
	Open      *float64 `json:"open_value"`
	High      *float64 `json:"high_value"`
	Low       *float64 `json:"low_value"`
	Last      *float64 `json:"last_value"`
	ChangePct *float64 `json:"change_prev_close_percentage"`
	Turnover  *float64 `json:"turnover"`
}

type securityHistoryResponse struct {
	History []SecurityRecord `json:"history"`
}

type indexHistoryResponse struct {
	History []IndexRecord `json:"history"`
}
