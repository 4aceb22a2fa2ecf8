package seasonality

import "SeasonPulse/internal/domain/models"

// RollingWindow is the trailing bar count, inclusive of the current bar,
// used for the per-bar win/loss/profit-factor/Sharpe statistics.
const RollingWindow = 52

// EnrichBars fills the rolling statistics of each bar from the trailing
// window of weekly returns. Statistics at index i depend only on bars
// [max(0, i-51) .. i]; with fewer than 52 preceding bars whatever history
// exists is used. The input slice is not modified.
func EnrichBars(bars []models.WeeklyBar) []models.WeeklyBar {
	out := make([]models.WeeklyBar, len(bars))
	copy(out, bars)

	returns := make([]float64, len(bars))
	for i, b := range bars {
		returns[i] = b.ReturnPct
	}

	for i := range out {
		lo := i - RollingWindow + 1
		if lo < 0 {
			lo = 0
		}
		window := returns[lo : i+1]

		var win, loss float64
		for _, r := range window {
			if r > 0 {
				win += r
			} else if r < 0 {
				loss += -r
			}
		}
		n := float64(len(window))
		out[i].AvgWinPct = Finite(win / n)
		out[i].AvgLossPct = Finite(loss / n)
		out[i].ProfitFactor = profitFactor(window)
		out[i].SharpeRatio = sharpeRatio(window)
	}
	return out
}
