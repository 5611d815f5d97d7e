package collector

import (
	"context"
	"time"

	json "github.com/goccy/go-json"

	"TickerBoard/internal/model"
)

// RawRecord is one provider row reduced to the fields we keep. TradingDate is
// left undecoded because the provider sends either an ISO-8601 string or a
// millisecond epoch number. Missing prices decode as nil.
type RawRecord struct {
	TradingDate json.RawMessage `json:"tradingDate"`
	Open        *float64        `json:"open"`
	High        *float64        `json:"high"`
	Low         *float64        `json:"low"`
	Close       *float64        `json:"close"`
	Volume      *float64        `json:"volume"`
}

// Fetcher performs the provider request for daily rows between from and to.
// Errors are *model.Error values classified as TIMEOUT, NETWORK_ERROR or
// PARSE_ERROR. A successful request with no rows returns an empty slice.
type Fetcher interface {
	FetchDaily(ctx context.Context, ticker string, from, to time.Time) ([]RawRecord, error)
	Name() string
}

// Source produces a normalized series for a ticker from start onwards.
type Source interface {
	Acquire(ctx context.Context, ticker string, start time.Time) (model.Series, error)
}
