package calculator

import (
	"errors"
	"fmt"
)

// MACD computes EMA(fast) - EMA(slow) and its signal line, an
// EMA(signal) of the MACD itself. The MACD is defined from index slow-1;
// the signal line from index slow+signal-2 (seeded with the mean of the
// first signal defined MACD values).
func MACD(closes []float64, fast, slow, signal int) (macd, signalLine []float64, err error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return nil, nil, errors.New("periods must be positive")
	}
	if fast >= slow {
		return nil, nil, errors.New("fast period must be shorter than slow period")
	}
	need := slow + signal - 1
	if len(closes) < need {
		return nil, nil, fmt.Errorf("%w: MACD(%d,%d,%d) needs %d bars, have %d",
			ErrInsufficientHistory, fast, slow, signal, need, len(closes))
	}

	emaFast, err := EMA(closes, fast)
	if err != nil {
		return nil, nil, err
	}
	emaSlow, err := EMA(closes, slow)
	if err != nil {
		return nil, nil, err
	}

	macd = nanSeries(len(closes))
	for i := slow - 1; i < len(closes); i++ {
		macd[i] = emaFast[i] - emaSlow[i]
	}

	signalLine = nanSeries(len(closes))
	alpha := 2.0 / float64(signal+1)
	seedEnd := slow - 1 + signal // one past the first signal defined MACD values

	seed := 0.0
	for i := slow - 1; i < seedEnd; i++ {
		seed += macd[i]
	}
	signalLine[seedEnd-1] = seed / float64(signal)

	for i := seedEnd; i < len(closes); i++ {
		signalLine[i] = alpha*macd[i] + (1-alpha)*signalLine[i-1]
	}
	return macd, signalLine, nil
}
