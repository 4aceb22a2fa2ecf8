package seasonality

import (
	"sort"

	"SeasonPulse/internal/domain/models"
	domrepo "SeasonPulse/internal/domain/repository"
)

// Aggregate groups weekly bars by ISO week number across all years and
// computes one-shot summary statistics per group.
//
// The filter conditions membership on the sign of the chronologically
// preceding bar's return. Predecessors are taken from the full input
// series before any filtering, so filtering never changes what counts as
// "preceding". The first bar has no predecessor and is excluded by both
// conditional modes. Week numbers empty after filtering are omitted.
func Aggregate(bars []models.WeeklyBar, mode domrepo.FilterMode) []models.WeekNumberStats {
	groups := make(map[int][]float64)
	for i, b := range bars {
		if mode != domrepo.FilterAll {
			if i == 0 {
				continue
			}
			prev := bars[i-1].ReturnPct
			if mode == domrepo.FilterAfterUp && prev <= 0 {
				continue
			}
			if mode == domrepo.FilterAfterDown && prev >= 0 {
				continue
			}
		}
		groups[b.WeekNumber] = append(groups[b.WeekNumber], b.ReturnPct)
	}

	weeks := make([]int, 0, len(groups))
	for w := range groups {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)

	out := make([]models.WeekNumberStats, 0, len(weeks))
	for _, w := range weeks {
		rs := groups[w]
		positive := 0
		for _, r := range rs {
			if r > 0 {
				positive++
			}
		}
		out = append(out, models.WeekNumberStats{
			WeekNumber:    w,
			SampleCount:   len(rs),
			AvgReturn:     Finite(mean(rs)),
			StdDev:        Finite(sampleStd(rs)),
			PctProfitable: Finite(float64(positive) / float64(len(rs)) * 100),
			ProfitFactor:  profitFactor(rs),
			SharpeRatio:   sharpeRatio(rs),
		})
	}
	return out
}
