package seasonality

import (
	"time"

	"SeasonPulse/internal/domain/models"
	"SeasonPulse/pkg/util"
)

// Assemble packages the statistics table, the current ISO year's bars and
// the current-week pointer into one response. prior_week_return is the
// most recent bar's return (0 for an empty series); current_week is the
// ISO week number of now. A defensive second sanitization pass runs over
// every numeric field before the result leaves the core.
func Assemble(bars []models.WeeklyBar, stats []models.WeekNumberStats, now time.Time) models.AnalyzeResult {
	isoYear, isoWeek := util.ISOWeek(now)

	history := make([]models.WeeklyBar, 0, weeksPerYear)
	for _, b := range bars {
		if b.Year == isoYear {
			history = append(history, sanitizeBar(b))
		}
	}

	var prior float64
	if len(bars) > 0 {
		prior = Finite(bars[len(bars)-1].ReturnPct)
	}

	clean := make([]models.WeekNumberStats, len(stats))
	for i, s := range stats {
		clean[i] = sanitizeStats(s)
	}

	return models.AnalyzeResult{
		Statistics: clean,
		History:    history,
		CurrentInfo: models.CurrentWeekInfo{
			CurrentWeek:     isoWeek,
			PriorWeekReturn: prior,
		},
	}
}

func sanitizeBar(b models.WeeklyBar) models.WeeklyBar {
	b.Open = Finite(b.Open)
	b.High = Finite(b.High)
	b.Low = Finite(b.Low)
	b.Close = Finite(b.Close)
	b.ReturnPct = Finite(b.ReturnPct)
	b.Volatility = Finite(b.Volatility)
	b.AvgWinPct = Finite(b.AvgWinPct)
	b.AvgLossPct = Finite(b.AvgLossPct)
	b.ProfitFactor = Finite(b.ProfitFactor)
	b.SharpeRatio = Finite(b.SharpeRatio)
	return b
}

func sanitizeStats(s models.WeekNumberStats) models.WeekNumberStats {
	s.AvgReturn = Finite(s.AvgReturn)
	s.StdDev = Finite(s.StdDev)
	s.PctProfitable = Finite(s.PctProfitable)
	s.ProfitFactor = Finite(s.ProfitFactor)
	s.SharpeRatio = Finite(s.SharpeRatio)
	return s
}
