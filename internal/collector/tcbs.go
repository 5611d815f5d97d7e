package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"TickerBoard/internal/model"
)

// DefaultTCBSBaseURL is the public long-term bars endpoint.
const DefaultTCBSBaseURL = "https://apipubaws.tcbs.com.vn/stock-insight/v1/stock/bars-long-term"

// DefaultTimeout bounds a single provider request.
const DefaultTimeout = 30 * time.Second

// TCBSFetcher implements Fetcher against the TCBS stock-insight API.
type TCBSFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewTCBSFetcher creates a fetcher with optional proxy support. Zero values
// fall back to the public endpoint and DefaultTimeout.
func NewTCBSFetcher(baseURL, proxyURL string, timeout time.Duration) *TCBSFetcher {
	if baseURL == "" {
		baseURL = DefaultTCBSBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TCBSFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (f *TCBSFetcher) Name() string { return "tcbs" }

// tcbsResponse is the JSON envelope returned by bars-long-term. Row fields
// other than those in RawRecord are dropped during decoding.
type tcbsResponse struct {
	Ticker string      `json:"ticker"`
	Data   []RawRecord `json:"data"`
}

func (f *TCBSFetcher) FetchDaily(ctx context.Context, ticker string, from, to time.Time) ([]RawRecord, error) {
	q := url.Values{}
	q.Set("ticker", ticker)
	q.Set("type", "stock")
	q.Set("resolution", "D")
	q.Set("from", strconv.FormatInt(from.Unix(), 10))
	q.Set("to", strconv.FormatInt(to.Unix(), 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, model.NewError(model.KindNetwork, ticker, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, model.NewError(classifyTransport(err), ticker, fmt.Errorf("fetch bars: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, model.NewError(classifyTransport(err), ticker, fmt.Errorf("read body: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, model.NewError(model.KindNetwork, ticker,
			fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode, truncate(body, 256)))
	}

	var payload tcbsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, model.NewError(model.KindParse, ticker, fmt.Errorf("decode bars: %w", err))
	}
	if payload.Data == nil {
		return []RawRecord{}, nil
	}
	return payload.Data, nil
}

// classifyTransport separates timeouts from other transport failures.
func classifyTransport(err error) model.ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return model.KindTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return model.KindTimeout
	}
	return model.KindNetwork
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
