package stats

import (
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []int
		mean   float64
		stdev  float64
		max    float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638, 23},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891, 124},
		{[]int{1}, 1, 0, 1},
		{[]int{}, 0, 0, 0},
		{[]int{1, 1}, 1, 0, 1},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.Push(float64(score))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.True(FuzzyEqual(s.Max(), c.max))
	}
}

func TestWinRateInterval(t *testing.T) {
	is := is.New(t)

	lo, hi := WinRateInterval(50, 100, 95)
	is.True(lo > 0.38 && lo < 0.45)
	is.True(hi > 0.55 && hi < 0.62)

	lo, hi = WinRateInterval(0, 0, 95)
	is.Equal(lo, 0.0)
	is.Equal(hi, 1.0)

	lo, hi = WinRateInterval(100, 100, 95)
	is.True(lo <= 1.0)
	is.Equal(hi, 1.0)
}
