package collector

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"TickerBoard/internal/model"
)

var errMissingDate = errors.New("missing trading date")

// isoLayouts are tried in order for timestamp strings.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// NormalizeDate turns a raw tradingDate value into its calendar day at 00:00
// UTC. A string containing 'T' is an ISO-8601 timestamp and keeps the day as
// written in its own offset. Numbers and numeric strings are millisecond Unix
// epochs read in UTC. A bare YYYY-MM-DD string is taken as the day itself.
func NormalizeDate(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, errMissingDate
	}

	if raw[0] != '"' {
		return parseEpochMillis(string(raw))
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, fmt.Errorf("decode date string: %w", err)
	}
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return time.Time{}, errMissingDate
	case strings.Contains(s, "T"):
		return parseISO(s)
	case len(s) == len(model.DateLayout) && s[4] == '-' && s[7] == '-':
		return model.ParseDay(s)
	default:
		return parseEpochMillis(s)
	}
}

func parseISO(s string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func parseEpochMillis(s string) (time.Time, error) {
	ms, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(ms) || math.IsInf(ms, 0) {
		return time.Time{}, fmt.Errorf("unrecognized epoch %q", s)
	}
	// float64(math.MaxInt64) rounds up to 2^63, so the upper bound is exclusive
	if ms < math.MinInt64 || ms >= math.MaxInt64 {
		return time.Time{}, fmt.Errorf("epoch %q out of range", s)
	}
	return model.Day(time.UnixMilli(int64(ms))), nil
}

// Normalize converts provider rows into a Series sorted by date. Rows without
// a close are skipped. When two rows share a date the one appearing later in
// the input wins. Missing open, high or low become NaN and a missing volume
// becomes zero.
func Normalize(records []RawRecord) (model.Series, error) {
	out := make(model.Series, 0, len(records))
	seen := make(map[int64]int, len(records))

	for i, r := range records {
		if r.Close == nil {
			log.Warn().Int("row", i).Msg("skipping row without close")
			continue
		}
		date, err := NormalizeDate(r.TradingDate)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		bar := model.Bar{
			Date:   date,
			Open:   valueOr(r.Open, math.NaN()),
			High:   valueOr(r.High, math.NaN()),
			Low:    valueOr(r.Low, math.NaN()),
			Close:  *r.Close,
			Volume: valueOr(r.Volume, 0),
		}
		if j, ok := seen[date.Unix()]; ok {
			out[j] = bar
			continue
		}
		seen[date.Unix()] = len(out)
		out = append(out, bar)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
