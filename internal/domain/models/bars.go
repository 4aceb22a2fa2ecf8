package models

import (
	"time"

	"SeasonPulse/pkg/util"
)

// Date is a date-only value that serializes as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate truncates t to a UTC date-only value.
func NewDate(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + util.FormatDate(d.Time) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	t, err := util.ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) String() string { return util.FormatDate(d.Time) }

// DailyBar is one trading day of OHLCV data from the market data provider.
type DailyBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// WeeklyBar is one calendar week of OHLC data derived from daily bars.
// WeekStart is the calendar Monday labeling the week; Year and WeekNumber
// follow ISO-8601 week numbering of that Monday. The rolling fields are
// populated by the metrics pass and are zero until then.
type WeeklyBar struct {
	WeekStart  Date    `json:"week_start_date"`
	Year       int     `json:"year"`
	WeekNumber int     `json:"week_number"`
	Open       float64 `json:"open"`
	High       float64 `json:"high"`
	Low        float64 `json:"low"`
	Close      float64 `json:"close"`
	ReturnPct  float64 `json:"weekly_return_pct"`
	Volatility float64 `json:"volatility"`

	AvgWinPct    float64 `json:"avg_win_pct"`
	AvgLossPct   float64 `json:"avg_loss_pct"`
	ProfitFactor float64 `json:"profit_factor"`
	SharpeRatio  float64 `json:"sharpe_ratio"`
}

// WeekNumberStats aggregates weekly returns for one ISO week number
// across all years in the filtered sample.
type WeekNumberStats struct {
	WeekNumber    int     `json:"week_number"`
	SampleCount   int     `json:"count"`
	AvgReturn     float64 `json:"avg_return"`
	StdDev        float64 `json:"std_dev"`
	PctProfitable float64 `json:"pct_profitable"`
	ProfitFactor  float64 `json:"profit_factor"`
	SharpeRatio   float64 `json:"sharpe_ratio"`
}

// CurrentWeekInfo describes where "now" sits in the seasonal calendar.
type CurrentWeekInfo struct {
	CurrentWeek     int     `json:"current_week"`
	PriorWeekReturn float64 `json:"prior_week_return"`
}

// AnalyzeResult is the full analysis payload for one symbol.
type AnalyzeResult struct {
	Statistics  []WeekNumberStats `json:"statistics"`
	History     []WeeklyBar       `json:"history"`
	CurrentInfo CurrentWeekInfo   `json:"current_info"`
}

// SymbolMeta is a tracked symbol and its last refresh time.
type SymbolMeta struct {
	Symbol      string    `json:"symbol"`
	LastUpdated time.Time `json:"last_updated"`
}
