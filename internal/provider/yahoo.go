package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"SignalSentry/internal/model"
)

// YahooProvider implements PriceProvider and CalendarProvider using the
// Yahoo Finance public API.
type YahooProvider struct {
	Client *http.Client
}

// NewYahooProvider creates a provider with optional proxy support.
func NewYahooProvider(proxyURL string) *YahooProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooProvider{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// FetchDailyBars returns up to `days` daily bars in chronological order.
func (p *YahooProvider) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.PriceBar, error) {
	rng := "2y"
	if days <= 30 {
		rng = "1mo"
	} else if days <= 90 {
		rng = "3mo"
	} else if days <= 180 {
		rng = "6mo"
	} else if days <= 365 {
		rng = "1y"
	}

	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=%s",
		url.PathEscape(symbol), rng)

	body, err := p.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	return chartToBars(&chart, symbol, days)
}

// chartToBars validates the chart response and converts it to daily bars in
// chronological order, trimmed to the most recent `days`.
func chartToBars(chart *yahooChart, symbol string, days int) ([]model.PriceBar, error) {
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned for %s", symbol)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote data returned for %s", symbol)
	}
	quote := result.Indicators.Quote[0]
	n := len(result.Timestamp)
	if len(quote.Open) < n || len(quote.High) < n || len(quote.Low) < n ||
		len(quote.Close) < n || len(quote.Volume) < n {
		return nil, fmt.Errorf("yahoo: truncated quote data for %s", symbol)
	}
	bars := make([]model.PriceBar, 0, n)

	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.PriceBar{
			Date:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: int64(toFloat(quote.Volume[i])),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

// yahooSummary is the quoteSummary response with the calendarEvents module.
type yahooSummary struct {
	QuoteSummary struct {
		Result []struct {
			CalendarEvents struct {
				ExDividendDate *struct {
					Raw int64 `json:"raw"`
				} `json:"exDividendDate"`
				Earnings struct {
					EarningsDate []struct {
						Raw int64 `json:"raw"`
					} `json:"earningsDate"`
				} `json:"earnings"`
			} `json:"calendarEvents"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func (p *YahooProvider) fetchCalendarEvents(ctx context.Context, symbol string) (*yahooSummary, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s?modules=calendarEvents",
		url.PathEscape(symbol))
	body, err := p.get(ctx, u)
	if err != nil {
		return nil, err
	}
	var summary yahooSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("yahoo decode summary: %w", err)
	}
	if summary.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", summary.QuoteSummary.Error.Description)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no calendar data for %s", symbol)
	}
	return &summary, nil
}

// NextExDividendDate returns the upcoming ex-dividend date, if any.
func (p *YahooProvider) NextExDividendDate(ctx context.Context, symbol string) (time.Time, bool, error) {
	summary, err := p.fetchCalendarEvents(ctx, symbol)
	if err != nil {
		return time.Time{}, false, err
	}
	ex := summary.QuoteSummary.Result[0].CalendarEvents.ExDividendDate
	if ex == nil || ex.Raw == 0 {
		return time.Time{}, false, nil
	}
	return time.Unix(ex.Raw, 0), true, nil
}

// NextEarningsDate returns the upcoming earnings date, if any.
func (p *YahooProvider) NextEarningsDate(ctx context.Context, symbol string) (time.Time, bool, error) {
	summary, err := p.fetchCalendarEvents(ctx, symbol)
	if err != nil {
		return time.Time{}, false, err
	}
	dates := summary.QuoteSummary.Result[0].CalendarEvents.Earnings.EarningsDate
	if len(dates) == 0 || dates[0].Raw == 0 {
		return time.Time{}, false, nil
	}
	return time.Unix(dates[0].Raw, 0), true, nil
}

func (p *YahooProvider) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
