package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"TickerBoard/internal/model"
)

// DefaultLookbackDays is used when Acquire is called without a start date.
const DefaultLookbackDays = 365

// FetchCall records one MockFetcher request.
type FetchCall struct {
	Ticker string
	From   time.Time
	To     time.Time
}

// MockFetcher returns fixed rows for development and testing. With Records
// nil it generates one row per weekday between from and to around Price.
// Requests are appended to Calls unless DiscardCalls is set; read Calls only
// once concurrent fetches have finished.
type MockFetcher struct {
	Price        float64
	Records      []RawRecord
	Err          error
	DiscardCalls bool
	Calls        []FetchCall

	mu sync.Mutex
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDaily(_ context.Context, ticker string, from, to time.Time) ([]RawRecord, error) {
	if !m.DiscardCalls {
		m.mu.Lock()
		m.Calls = append(m.Calls, FetchCall{Ticker: ticker, From: from, To: to})
		m.mu.Unlock()
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Records != nil {
		return m.Records, nil
	}
	return generateMockRecords(m.Price, from, to), nil
}

func generateMockRecords(basePrice float64, from, to time.Time) []RawRecord {
	if basePrice <= 0 {
		basePrice = 100
	}
	var records []RawRecord
	i := 0
	for d := model.Day(from); !d.After(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		p := basePrice * (1 + float64(i%40-20)*0.002)
		o, h, l, c, v := p*0.998, p*1.006, p*0.994, p, float64(1_000_000+(i%7)*150_000)
		records = append(records, RawRecord{
			TradingDate: json.RawMessage(fmt.Sprintf("%d", d.UnixMilli())),
			Open:        &o,
			High:        &h,
			Low:         &l,
			Close:       &c,
			Volume:      &v,
		})
		i++
	}
	return records
}

// Collector turns provider rows into a normalized Series.
type Collector struct {
	Fetcher Fetcher
	Now     func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher, Now: time.Now}
}

// Acquire fetches daily bars for an already validated ticker from start up to
// now. A zero start means DefaultLookbackDays before now. It returns a
// non-empty Series on success, an empty Series when the provider has no rows,
// and a *model.Error of kind TIMEOUT, NETWORK_ERROR or PARSE_ERROR otherwise.
func (c *Collector) Acquire(ctx context.Context, ticker string, start time.Time) (model.Series, error) {
	now := c.Now()
	if start.IsZero() {
		start = now.AddDate(0, 0, -DefaultLookbackDays)
	}
	from := model.Day(start)

	records, err := c.Fetcher.FetchDaily(ctx, ticker, from, now)
	if err != nil {
		if model.KindOf(err) == "" {
			err = model.NewError(model.KindNetwork, ticker, err)
		}
		log.Warn().Err(err).Str("ticker", ticker).Str("source", c.Fetcher.Name()).Msg("fetch failed")
		return nil, err
	}

	series, err := Normalize(records)
	if err != nil {
		err = model.NewError(model.KindParse, ticker, fmt.Errorf("normalize: %w", err))
		log.Warn().Err(err).Str("ticker", ticker).Msg("normalize failed")
		return nil, err
	}

	log.Debug().
		Str("ticker", ticker).
		Str("from", from.Format(model.DateLayout)).
		Int("rows", len(records)).
		Int("bars", len(series)).
		Msg("series acquired")
	return series, nil
}
