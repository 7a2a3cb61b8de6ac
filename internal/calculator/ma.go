package calculator

import (
	"errors"
	"fmt"
)

// SMA computes the simple moving average of closes over the trailing
// period. Defined from index period-1.
func SMA(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(closes) < period {
		return nil, fmt.Errorf("%w: SMA(%d) needs %d bars, have %d", ErrInsufficientHistory, period, period, len(closes))
	}

	out := nanSeries(len(closes))
	sum := 0.0
	for i, c := range closes {
		sum += c
		if i >= period {
			sum -= closes[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out, nil
}

// EMA computes the exponential moving average of closes. The value at
// index period-1 is seeded with SMA(period); later values follow the
// recurrence with weight 2/(period+1).
func EMA(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(closes) < period {
		return nil, fmt.Errorf("%w: EMA(%d) needs %d bars, have %d", ErrInsufficientHistory, period, period, len(closes))
	}

	out := nanSeries(len(closes))
	alpha := 2.0 / float64(period+1)

	seed := 0.0
	for i := 0; i < period; i++ {
		seed += closes[i]
	}
	out[period-1] = seed / float64(period)

	for i := period; i < len(closes); i++ {
		out[i] = alpha*closes[i] + (1-alpha)*out[i-1]
	}
	return out, nil
}
