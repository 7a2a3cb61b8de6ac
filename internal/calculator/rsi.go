package calculator

import (
	"errors"
	"fmt"
)

// RSI computes the relative strength index over the trailing period
// close-to-close changes, using simple averages of gains and losses.
// Defined from index period (the first index with period trailing
// changes). RSI is 100 when the average loss over the window is zero.
func RSI(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(closes) < period+1 {
		return nil, fmt.Errorf("%w: RSI(%d) needs %d bars, have %d", ErrInsufficientHistory, period, period+1, len(closes))
	}

	out := nanSeries(len(closes))
	gainSum, lossSum := 0.0, 0.0

	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gainSum += change
		} else {
			lossSum -= change
		}
		// Drop the change that fell out of the trailing window.
		if i > period {
			old := closes[i-period] - closes[i-period-1]
			if old > 0 {
				gainSum -= old
			} else {
				lossSum += old
			}
		}
		if i < period {
			continue
		}

		avgGain := gainSum / float64(period)
		avgLoss := lossSum / float64(period)
		if avgLoss == 0 {
			out[i] = 100.0
			continue
		}
		rs := avgGain / avgLoss
		out[i] = 100.0 - 100.0/(1.0+rs)
	}
	return out, nil
}
