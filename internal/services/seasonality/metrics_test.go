package seasonality

import (
	"math"
	"testing"

	"SeasonPulse/internal/domain/models"
)

func barsWithReturns(returns []float64) []models.WeeklyBar {
	out := make([]models.WeeklyBar, len(returns))
	for i, r := range returns {
		out[i] = models.WeeklyBar{WeekNumber: i%52 + 1, ReturnPct: r}
	}
	return out
}

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRollingWindowBound(t *testing.T) {
	// 8 poisoned leading returns followed by 52 ones. At the last index
	// the window must cover exactly the trailing 52 bars, so the poison
	// never shows up in the average win.
	returns := make([]float64, 60)
	for i := 0; i < 8; i++ {
		returns[i] = 1000
	}
	for i := 8; i < 60; i++ {
		returns[i] = 1
	}
	enriched := EnrichBars(barsWithReturns(returns))
	last := enriched[59]
	if !almost(last.AvgWinPct, 1.0) {
		t.Fatalf("window leaked beyond 52 bars: avg win %v", last.AvgWinPct)
	}
}

func TestRollingMinPeriodsOne(t *testing.T) {
	enriched := EnrichBars(barsWithReturns([]float64{4}))
	if !almost(enriched[0].AvgWinPct, 4) {
		t.Errorf("expected avg win 4 from one-bar history, got %v", enriched[0].AvgWinPct)
	}
	if enriched[0].SharpeRatio != 0 {
		t.Errorf("expected sharpe 0 with a single sample, got %v", enriched[0].SharpeRatio)
	}
}

func TestAvgWinLoss(t *testing.T) {
	enriched := EnrichBars(barsWithReturns([]float64{10, -5}))
	b := enriched[1]
	if !almost(b.AvgWinPct, 5) {
		t.Errorf("expected avg win 5, got %v", b.AvgWinPct)
	}
	if !almost(b.AvgLossPct, 2.5) {
		t.Errorf("expected avg loss 2.5, got %v", b.AvgLossPct)
	}
	if !almost(b.ProfitFactor, 2) {
		t.Errorf("expected profit factor 2, got %v", b.ProfitFactor)
	}
}

func TestProfitFactorSentinel(t *testing.T) {
	// All wins: capped sentinel, never +Inf.
	enriched := EnrichBars(barsWithReturns([]float64{5, 3, 2}))
	pf := enriched[2].ProfitFactor
	if pf != ProfitFactorCap {
		t.Errorf("expected capped profit factor %v, got %v", ProfitFactorCap, pf)
	}
	// All zeros: 0.
	enriched = EnrichBars(barsWithReturns([]float64{0, 0, 0}))
	if enriched[2].ProfitFactor != 0 {
		t.Errorf("expected zero profit factor, got %v", enriched[2].ProfitFactor)
	}
}

func TestSharpeDegeneracy(t *testing.T) {
	// Zero variance yields 0, never NaN.
	enriched := EnrichBars(barsWithReturns([]float64{2, 2, 2, 2}))
	if got := enriched[3].SharpeRatio; got != 0 {
		t.Errorf("expected sharpe 0 for zero variance, got %v", got)
	}
}

func TestSharpeKnownValue(t *testing.T) {
	// Returns 1% and 3%: mean 0.02, sample std 0.0141421..., ratio
	// 1.41421 * sqrt(52).
	enriched := EnrichBars(barsWithReturns([]float64{1, 3}))
	want := 0.02 / math.Sqrt(0.0002) * math.Sqrt(52)
	if got := enriched[1].SharpeRatio; math.Abs(got-want) > 1e-9 {
		t.Errorf("expected sharpe %v, got %v", want, got)
	}
}

func TestEnrichedFieldsAlwaysFinite(t *testing.T) {
	cases := [][]float64{
		{},
		{0},
		{5, 3, 2},        // no losses
		{-1, -2, -3},     // no wins
		{0, 0, 0, 0, 0},  // zero variance
		{100, -100, 0.5}, // mixed
	}
	for _, returns := range cases {
		for _, b := range EnrichBars(barsWithReturns(returns)) {
			for name, v := range map[string]float64{
				"avg_win":       b.AvgWinPct,
				"avg_loss":      b.AvgLossPct,
				"profit_factor": b.ProfitFactor,
				"sharpe":        b.SharpeRatio,
			} {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("non-finite %s for returns %v: %v", name, returns, v)
				}
			}
		}
	}
}

func TestEnrichDoesNotMutateInput(t *testing.T) {
	in := barsWithReturns([]float64{1, 2})
	_ = EnrichBars(in)
	if in[0].AvgWinPct != 0 || in[1].SharpeRatio != 0 {
		t.Fatal("input slice was mutated")
	}
}
