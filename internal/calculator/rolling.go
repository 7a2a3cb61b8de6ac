package calculator

import (
	"errors"
	"fmt"
	"math"
)

// RollingMean computes the trailing mean of closes over period bars.
// Defined from index period-1.
func RollingMean(closes []float64, period int) ([]float64, error) {
	return SMA(closes, period)
}

// RollingStd computes the trailing sample standard deviation of closes
// over period bars. Defined from index period-1.
func RollingStd(closes []float64, period int) ([]float64, error) {
	if period <= 1 {
		return nil, errors.New("period must be greater than 1")
	}
	if len(closes) < period {
		return nil, fmt.Errorf("%w: RollingStd(%d) needs %d bars, have %d", ErrInsufficientHistory, period, period, len(closes))
	}

	out := nanSeries(len(closes))
	for i := period - 1; i < len(closes); i++ {
		mean := 0.0
		for j := i - period + 1; j <= i; j++ {
			mean += closes[j]
		}
		mean /= float64(period)

		ss := 0.0
		for j := i - period + 1; j <= i; j++ {
			d := closes[j] - mean
			ss += d * d
		}
		out[i] = math.Sqrt(ss / float64(period-1))
	}
	return out, nil
}
