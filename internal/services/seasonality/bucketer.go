package seasonality

import (
	"math"
	"time"

	"SeasonPulse/internal/domain/models"
	"SeasonPulse/pkg/util"
)

// tradingDaysPerYear scales intra-week daily volatility to an annual figure.
const tradingDaysPerYear = 252

// BucketWeeks folds an ordered daily series into Monday-labeled weekly bars.
//
// Each bar is labeled by the calendar Monday of the week its trading days
// fall in, regardless of whether Monday itself traded. Weeks without a
// single trading day produce no bar. If the walk ever revisits a label
// (out-of-order input at series edges), the first bucket wins and the
// revisit is dropped, so week starts come out strictly increasing.
func BucketWeeks(daily []models.DailyBar) []models.WeeklyBar {
	out := make([]models.WeeklyBar, 0, len(daily)/4)
	seen := make(map[time.Time]struct{})

	var cur *weekAccum
	for _, d := range daily {
		if d.Open == 0 && d.Close == 0 {
			continue
		}
		label := util.WeekStart(d.Date)
		if cur != nil && label.Equal(cur.label) {
			cur.add(d)
			continue
		}
		if cur != nil {
			out = append(out, cur.bar())
		}
		if _, dup := seen[label]; dup {
			cur = nil
			continue
		}
		seen[label] = struct{}{}
		cur = newWeekAccum(label, d)
	}
	if cur != nil {
		out = append(out, cur.bar())
	}
	return out
}

type weekAccum struct {
	label  time.Time
	open   float64
	high   float64
	low    float64
	close  float64
	closes []float64
}

func newWeekAccum(label time.Time, d models.DailyBar) *weekAccum {
	return &weekAccum{
		label:  label,
		open:   d.Open,
		high:   d.High,
		low:    d.Low,
		close:  d.Close,
		closes: []float64{d.Close},
	}
}

func (w *weekAccum) add(d models.DailyBar) {
	if d.High > w.high {
		w.high = d.High
	}
	if d.Low < w.low {
		w.low = d.Low
	}
	w.close = d.Close
	w.closes = append(w.closes, d.Close)
}

func (w *weekAccum) bar() models.WeeklyBar {
	year, week := util.ISOWeek(w.label)
	var ret float64
	if w.open != 0 {
		ret = (w.close - w.open) / w.open * 100
	}
	return models.WeeklyBar{
		WeekStart:  models.NewDate(w.label),
		Year:       year,
		WeekNumber: week,
		Open:       w.open,
		High:       w.high,
		Low:        w.low,
		Close:      w.close,
		ReturnPct:  Finite(ret),
		Volatility: Finite(w.volatility()),
	}
}

// volatility annualizes the sample std-dev of intra-week daily percent
// changes. Weeks with fewer than three trading days report 0.
func (w *weekAccum) volatility() float64 {
	if len(w.closes) < 3 {
		return 0
	}
	changes := make([]float64, 0, len(w.closes)-1)
	for i := 1; i < len(w.closes); i++ {
		prev := w.closes[i-1]
		if prev == 0 {
			changes = append(changes, 0)
			continue
		}
		changes = append(changes, (w.closes[i]-prev)/prev*100)
	}
	return sampleStd(changes) * math.Sqrt(tradingDaysPerYear)
}
