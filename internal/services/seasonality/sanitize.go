package seasonality

import "math"

// ProfitFactorCap replaces an infinite profit factor (no losses in the
// sample but some wins) so transport never carries a non-finite number.
const ProfitFactorCap = 10.0

// Finite maps NaN and ±Inf to 0 so they never reach the transport layer.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStd is the Bessel-corrected standard deviation; 0 for n < 2.
func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	sum2 := 0.0
	for _, x := range xs {
		d := x - m
		sum2 += d * d
	}
	v := sum2 / float64(len(xs)-1)
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v)
}

// profitFactor is the ratio of average wins to average absolute losses
// over a percent-return sample, with the cap sentinel when losses are
// absent and 0 when wins are absent too.
func profitFactor(returnsPct []float64) float64 {
	if len(returnsPct) == 0 {
		return 0
	}
	var win, loss float64
	for _, r := range returnsPct {
		if r > 0 {
			win += r
		} else if r < 0 {
			loss += -r
		}
	}
	n := float64(len(returnsPct))
	avgWin, avgLoss := win/n, loss/n
	if avgLoss > 0 {
		return Finite(avgWin / avgLoss)
	}
	if avgWin > 0 {
		return ProfitFactorCap
	}
	return 0
}

// sharpeRatio annualizes mean over sample std-dev of weekly returns by
// √52, working in decimal returns. 0 when fewer than 2 samples or the
// sample has zero variance.
func sharpeRatio(returnsPct []float64) float64 {
	if len(returnsPct) < 2 {
		return 0
	}
	dec := make([]float64, len(returnsPct))
	for i, r := range returnsPct {
		dec[i] = r / 100
	}
	sd := sampleStd(dec)
	if sd == 0 {
		return 0
	}
	return Finite(mean(dec) / sd * math.Sqrt(weeksPerYear))
}

const weeksPerYear = 52
