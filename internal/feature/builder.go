// Package feature assembles indicator series, lagged prices, and derived
// returns into one aligned feature matrix with next-day close labels.
package feature

import (
	"errors"
	"fmt"
	"time"

	"StockSeer/internal/calculator"
	"StockSeer/internal/model"
)

// Config holds the indicator windows and lag depth for feature building.
type Config struct {
	SMAWindow  int
	EMAWindow  int
	MACDFast   int
	MACDSlow   int
	MACDSignal int
	RSIWindow  int
	RollWindow int
	LagDepth   int
}

// DefaultConfig returns the standard window set.
func DefaultConfig() Config {
	return Config{
		SMAWindow:  50,
		EMAWindow:  26,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
		RSIWindow:  14,
		RollWindow: 10,
		LagDepth:   5,
	}
}

// MaxLookback returns the first index at which every feature column is
// defined. Rows before it are dropped.
func (c Config) MaxLookback() int {
	lb := c.SMAWindow - 1
	for _, v := range []int{
		c.EMAWindow - 1,
		c.MACDSlow + c.MACDSignal - 2,
		c.RSIWindow,
		c.RollWindow - 1,
		c.LagDepth + 1, // lagged return L needs a close at t-L-1
	} {
		if v > lb {
			lb = v
		}
	}
	return lb
}

// MinBars returns the minimum input length that yields at least one
// labeled row plus the reserved inference row.
func (c Config) MinBars() int { return c.MaxLookback() + 2 }

// Columns returns the fixed feature column order.
func (c Config) Columns() []string {
	cols := []string{
		"close",
		fmt.Sprintf("sma_%d", c.SMAWindow),
		fmt.Sprintf("ema_%d", c.EMAWindow),
		"macd",
		"macd_signal",
		fmt.Sprintf("rsi_%d", c.RSIWindow),
		"daily_return",
		fmt.Sprintf("roll_mean_%d", c.RollWindow),
		fmt.Sprintf("roll_std_%d", c.RollWindow),
	}
	for lag := 1; lag <= c.LagDepth; lag++ {
		cols = append(cols, fmt.Sprintf("close_lag_%d", lag))
	}
	for lag := 1; lag <= c.LagDepth; lag++ {
		cols = append(cols, fmt.Sprintf("return_lag_%d", lag))
	}
	return cols
}

// Set is the aligned feature matrix. Rows and Labels cover every date
// with full history except the most recent one; Latest is the reserved
// unlabeled row for live inference.
type Set struct {
	Columns    []string
	Rows       [][]float64
	Labels     []float64 // next-day close for each row
	Dates      []time.Time
	Latest     []float64
	LatestDate time.Time
}

// Build converts bars into a feature Set. It fails with
// calculator.ErrInsufficientHistory when no labeled row survives
// trimming.
func Build(bars []model.Bar, cfg Config) (*Set, error) {
	if cfg.LagDepth < 1 {
		return nil, errors.New("lag depth must be at least 1")
	}
	n := len(bars)
	closes := model.Closes(bars)

	sma, err := calculator.SMA(closes, cfg.SMAWindow)
	if err != nil {
		return nil, err
	}
	ema, err := calculator.EMA(closes, cfg.EMAWindow)
	if err != nil {
		return nil, err
	}
	macd, macdSignal, err := calculator.MACD(closes, cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal)
	if err != nil {
		return nil, err
	}
	rsi, err := calculator.RSI(closes, cfg.RSIWindow)
	if err != nil {
		return nil, err
	}
	rollMean, err := calculator.RollingMean(closes, cfg.RollWindow)
	if err != nil {
		return nil, err
	}
	rollStd, err := calculator.RollingStd(closes, cfg.RollWindow)
	if err != nil {
		return nil, err
	}

	returns := make([]float64, n)
	for i := 1; i < n; i++ {
		returns[i] = closes[i]/closes[i-1] - 1
	}

	first := cfg.MaxLookback()
	if n-first < 2 {
		return nil, fmt.Errorf("%w: need at least %d bars for one training row, have %d",
			calculator.ErrInsufficientHistory, cfg.MinBars(), n)
	}

	set := &Set{Columns: cfg.Columns()}
	for t := first; t < n; t++ {
		row := make([]float64, 0, len(set.Columns))
		row = append(row,
			closes[t], sma[t], ema[t], macd[t], macdSignal[t], rsi[t],
			returns[t], rollMean[t], rollStd[t],
		)
		for lag := 1; lag <= cfg.LagDepth; lag++ {
			row = append(row, closes[t-lag])
		}
		for lag := 1; lag <= cfg.LagDepth; lag++ {
			row = append(row, returns[t-lag])
		}

		if t == n-1 {
			// Most recent date has no known next close; reserve for inference.
			set.Latest = row
			set.LatestDate = bars[t].Date
			break
		}
		set.Rows = append(set.Rows, row)
		set.Labels = append(set.Labels, closes[t+1])
		set.Dates = append(set.Dates, bars[t].Date)
	}
	return set, nil
}
