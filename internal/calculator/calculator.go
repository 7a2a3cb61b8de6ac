// Package calculator computes full-series technical indicators over a
// daily close series. Every function returns a series with the same
// length as its input; entries before the indicator's lookback window is
// satisfied are NaN.
package calculator

import (
	"errors"
	"math"
)

// ErrInsufficientHistory indicates the close series is shorter than the
// indicator's required window. The caller must widen the date range.
var ErrInsufficientHistory = errors.New("insufficient history")

func nanSeries(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}
