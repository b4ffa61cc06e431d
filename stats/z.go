package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ZVal returns the two-tailed Z-value associated with a specific confidence
// interval. The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	area := (1 + (confidenceInterval / 100)) / 2
	zValue := dist.Quantile(area)
	return zValue
}

// WinRateInterval returns the normal-approximation confidence interval for
// a win rate of wins out of n trials, clamped to [0, 1].
func WinRateInterval(wins, n int, confidenceInterval float64) (float64, float64) {
	if n == 0 {
		return 0, 1
	}
	p := float64(wins) / float64(n)
	z := ZVal(confidenceInterval)
	half := z * math.Sqrt(p*(1-p)/float64(n))
	return math.Max(0, p-half), math.Min(1, p+half)
}
