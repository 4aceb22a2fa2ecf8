package seasonality

import (
	"math"
	"testing"

	"SeasonPulse/internal/domain/models"
	domrepo "SeasonPulse/internal/domain/repository"
)

// chronoBars builds a chronological series where entry i carries week
// number i+1, so filtered membership is visible in the stats table.
func chronoBars(returns []float64) []models.WeeklyBar {
	out := make([]models.WeeklyBar, len(returns))
	for i, r := range returns {
		out[i] = models.WeeklyBar{Year: 2024, WeekNumber: i + 1, ReturnPct: r}
	}
	return out
}

func weekNumbers(stats []models.WeekNumberStats) []int {
	out := make([]int, len(stats))
	for i, s := range stats {
		out[i] = s.WeekNumber
	}
	return out
}

func TestFilterAfterUpMembership(t *testing.T) {
	// Returns [+2, -1, +3, -4, +5]: only entries whose chronological
	// predecessor was positive survive, i.e. indexes 1 and 3 (weeks 2, 4).
	stats := Aggregate(chronoBars([]float64{2, -1, 3, -4, 5}), domrepo.FilterAfterUp)
	got := weekNumbers(stats)
	if len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Fatalf("expected weeks [2 4], got %v", got)
	}
}

func TestFilterAfterDownMembership(t *testing.T) {
	stats := Aggregate(chronoBars([]float64{2, -1, 3, -4, 5}), domrepo.FilterAfterDown)
	got := weekNumbers(stats)
	if len(got) != 2 || got[0] != 3 || got[1] != 5 {
		t.Fatalf("expected weeks [3 5], got %v", got)
	}
}

func TestFilterAllKeepsEverything(t *testing.T) {
	stats := Aggregate(chronoBars([]float64{2, -1, 3, -4, 5}), domrepo.FilterAll)
	if len(stats) != 5 {
		t.Fatalf("expected 5 groups, got %d", len(stats))
	}
	for _, s := range stats {
		if s.SampleCount != 1 {
			t.Errorf("week %d: expected count 1, got %d", s.WeekNumber, s.SampleCount)
		}
	}
}

func TestFilterZeroPriorExcludedByBoth(t *testing.T) {
	// A flat predecessor (return 0) satisfies neither condition.
	bars := chronoBars([]float64{0, 1})
	if stats := Aggregate(bars, domrepo.FilterAfterUp); len(stats) != 0 {
		t.Errorf("after_up: expected empty, got %v", weekNumbers(stats))
	}
	if stats := Aggregate(bars, domrepo.FilterAfterDown); len(stats) != 0 {
		t.Errorf("after_down: expected empty, got %v", weekNumbers(stats))
	}
}

func TestGroupStatsAcrossYears(t *testing.T) {
	bars := []models.WeeklyBar{
		{Year: 2022, WeekNumber: 10, ReturnPct: 10},
		{Year: 2023, WeekNumber: 10, ReturnPct: -5},
	}
	stats := Aggregate(bars, domrepo.FilterAll)
	if len(stats) != 1 {
		t.Fatalf("expected 1 group, got %d", len(stats))
	}
	s := stats[0]
	if s.SampleCount != 2 {
		t.Errorf("expected count 2, got %d", s.SampleCount)
	}
	if !almost(s.AvgReturn, 2.5) {
		t.Errorf("expected avg 2.5, got %v", s.AvgReturn)
	}
	if math.Abs(s.StdDev-10.606601717798213) > 1e-9 {
		t.Errorf("expected sample std 10.6066, got %v", s.StdDev)
	}
	if !almost(s.PctProfitable, 50) {
		t.Errorf("expected 50%% profitable, got %v", s.PctProfitable)
	}
	if !almost(s.ProfitFactor, 2) {
		t.Errorf("expected profit factor 2, got %v", s.ProfitFactor)
	}
}

func TestGroupProfitFactorSentinel(t *testing.T) {
	bars := []models.WeeklyBar{
		{Year: 2022, WeekNumber: 7, ReturnPct: 4},
		{Year: 2023, WeekNumber: 7, ReturnPct: 2},
	}
	stats := Aggregate(bars, domrepo.FilterAll)
	if stats[0].ProfitFactor != ProfitFactorCap {
		t.Errorf("expected sentinel %v, got %v", ProfitFactorCap, stats[0].ProfitFactor)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	if stats := Aggregate(nil, domrepo.FilterAll); len(stats) != 0 {
		t.Fatalf("expected no stats, got %d", len(stats))
	}
}

func TestStatsSortedByWeekNumber(t *testing.T) {
	bars := []models.WeeklyBar{
		{Year: 2024, WeekNumber: 30, ReturnPct: 1},
		{Year: 2024, WeekNumber: 2, ReturnPct: 1},
		{Year: 2024, WeekNumber: 15, ReturnPct: 1},
	}
	got := weekNumbers(Aggregate(bars, domrepo.FilterAll))
	if got[0] != 2 || got[1] != 15 || got[2] != 30 {
		t.Fatalf("stats not sorted: %v", got)
	}
}
