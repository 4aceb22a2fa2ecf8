package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"SeasonPulse/internal/domain/models"
	xhttp "SeasonPulse/pkg/http"
)

const chartBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

// Client fetches daily bars from the Yahoo Finance chart API.
type Client struct {
	http      *xhttp.Client
	userAgent string
}

// New creates a Yahoo market data client.
func New(timeout time.Duration, userAgent string) *Client {
	if userAgent == "" {
		userAgent = "Mozilla/5.0"
	}
	return &Client{
		http:      xhttp.NewClient(xhttp.WithTimeout(timeout)),
		userAgent: userAgent,
	}
}

// chartResponse is the response structure from the Yahoo chart API.
type chartResponse struct {
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
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// FetchDailyBars returns up to lookbackYears of daily bars for symbol,
// oldest first. An unknown symbol yields an empty slice with nil error;
// null bars (holidays) are skipped.
func (c *Client) FetchDailyBars(ctx context.Context, symbol string, lookbackYears int) ([]models.DailyBar, error) {
	now := time.Now().UTC()
	from := now.AddDate(-lookbackYears, 0, 0)

	var chart chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: "GET",
		URL:    chartBaseURL + url.PathEscape(symbol),
		Headers: map[string]string{
			"User-Agent": c.userAgent,
		},
		QueryParams: map[string]string{
			"interval": "1d",
			"period1":  strconv.FormatInt(from.Unix(), 10),
			"period2":  strconv.FormatInt(now.Unix(), 10),
		},
	}, &chart)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch %s: %w", symbol, err)
	}

	if chart.Chart.Error != nil {
		// Yahoo reports unknown symbols as an API error; treat as empty.
		if chart.Chart.Error.Code == "Not Found" {
			return nil, nil
		}
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, nil
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	quote := result.Indicators.Quote[0]

	bars := make([]models.DailyBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			break
		}
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		cl := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && cl == 0 {
			continue // null bar (holiday etc.)
		}
		var vol float64
		if i < len(quote.Volume) {
			vol = toFloat(quote.Volume[i])
		}
		bars = append(bars, models.DailyBar{
			Date:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  cl,
			Volume: vol,
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}
