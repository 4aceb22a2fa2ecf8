package seasonality

import (
	"math"
	"testing"
	"time"

	"SeasonPulse/internal/domain/models"
	domrepo "SeasonPulse/internal/domain/repository"
)

// Three consecutive trading weeks: 100->105, 105->100, 100->108.
func threeWeekDaily(t *testing.T) []models.DailyBar {
	t.Helper()
	return []models.DailyBar{
		day(t, "2024-09-30", 100, 106, 99, 103),
		day(t, "2024-10-04", 103, 106, 102, 105),
		day(t, "2024-10-07", 105, 106, 99, 101),
		day(t, "2024-10-11", 101, 102, 99, 100),
		day(t, "2024-10-14", 100, 109, 99, 104),
		day(t, "2024-10-18", 104, 109, 103, 108),
	}
}

func TestEndToEndWeeklyReturns(t *testing.T) {
	bars := EnrichBars(BucketWeeks(threeWeekDaily(t)))
	if len(bars) != 3 {
		t.Fatalf("expected 3 weekly bars, got %d", len(bars))
	}
	want := []float64{5.0, -100.0 * 5 / 105, 8.0}
	for i, w := range want {
		if math.Abs(bars[i].ReturnPct-w) > 1e-9 {
			t.Errorf("week %d: expected return %.4f, got %.4f", i+1, w, bars[i].ReturnPct)
		}
	}
}

func TestEndToEndAfterUpExcludesWeekThree(t *testing.T) {
	// Week 3 follows a down week, so after_up must not contain it.
	bars := EnrichBars(BucketWeeks(threeWeekDaily(t)))
	stats := Aggregate(bars, domrepo.FilterAfterUp)
	week3 := bars[2].WeekNumber
	for _, s := range stats {
		if s.WeekNumber == week3 {
			t.Fatalf("after_up wrongly includes week %d", week3)
		}
	}
	// Week 2 follows an up week and must be present.
	found := false
	for _, s := range stats {
		if s.WeekNumber == bars[1].WeekNumber {
			found = true
		}
	}
	if !found {
		t.Fatalf("after_up missing week %d", bars[1].WeekNumber)
	}
}

func TestAssembleCurrentInfo(t *testing.T) {
	bars := EnrichBars(BucketWeeks(threeWeekDaily(t)))
	stats := Aggregate(bars, domrepo.FilterAll)
	now := time.Date(2024, 10, 23, 12, 0, 0, 0, time.UTC)

	res := Assemble(bars, stats, now)
	if res.CurrentInfo.CurrentWeek != 43 {
		t.Errorf("expected current week 43, got %d", res.CurrentInfo.CurrentWeek)
	}
	if math.Abs(res.CurrentInfo.PriorWeekReturn-8.0) > 1e-9 {
		t.Errorf("expected prior week return 8.0, got %v", res.CurrentInfo.PriorWeekReturn)
	}
	if len(res.History) != 3 {
		t.Errorf("expected 3 bars of current-year history, got %d", len(res.History))
	}
}

func TestAssembleHistoryFiltersByISOYear(t *testing.T) {
	bars := []models.WeeklyBar{
		{WeekStart: models.NewDate(time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)), Year: 2023, WeekNumber: 18, ReturnPct: 1},
		{WeekStart: models.NewDate(time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)), Year: 2024, WeekNumber: 19, ReturnPct: 2},
	}
	res := Assemble(bars, nil, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	if len(res.History) != 1 || res.History[0].Year != 2024 {
		t.Fatalf("expected only the 2024 bar in history, got %+v", res.History)
	}
}

func TestAssembleEmptySeries(t *testing.T) {
	res := Assemble(nil, nil, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	if res.CurrentInfo.PriorWeekReturn != 0 {
		t.Errorf("expected zero prior return for empty series, got %v", res.CurrentInfo.PriorWeekReturn)
	}
	if len(res.History) != 0 || len(res.Statistics) != 0 {
		t.Errorf("expected empty history and statistics")
	}
}

func TestAssembleSecondPassSanitization(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)
	bars := []models.WeeklyBar{{
		WeekStart: models.NewDate(time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)),
		Year:      2024, WeekNumber: 19,
		ReturnPct: inf, Volatility: nan, ProfitFactor: inf, SharpeRatio: nan,
	}}
	stats := []models.WeekNumberStats{{
		WeekNumber: 19, SampleCount: 1,
		AvgReturn: nan, StdDev: inf, PctProfitable: nan, ProfitFactor: inf, SharpeRatio: nan,
	}}
	res := Assemble(bars, stats, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	h := res.History[0]
	for _, v := range []float64{h.ReturnPct, h.Volatility, h.ProfitFactor, h.SharpeRatio} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite value survived history sanitization: %v", v)
		}
	}
	s := res.Statistics[0]
	for _, v := range []float64{s.AvgReturn, s.StdDev, s.PctProfitable, s.ProfitFactor, s.SharpeRatio} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite value survived stats sanitization: %v", v)
		}
	}
	// prior_week_return also passes through sanitization
	if math.IsInf(res.CurrentInfo.PriorWeekReturn, 0) {
		t.Fatal("prior week return not sanitized")
	}
}
