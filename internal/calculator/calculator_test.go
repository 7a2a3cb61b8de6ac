package calculator

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func linearCloses(base, slope float64, n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = base + slope*float64(i)
	}
	return closes
}

func TestSMA_DefinedBoundary(t *testing.T) {
	closes := linearCloses(10, 1, 20)
	for _, period := range []int{2, 5, 10} {
		sma, err := SMA(closes, period)
		if err != nil {
			t.Fatalf("SMA(%d): %v", period, err)
		}
		if len(sma) != len(closes) {
			t.Fatalf("SMA(%d): length %d, want %d", period, len(sma), len(closes))
		}
		for i := 0; i < period-1; i++ {
			if !math.IsNaN(sma[i]) {
				t.Errorf("SMA(%d)[%d] = %v, want NaN", period, i, sma[i])
			}
		}
		for i := period - 1; i < len(sma); i++ {
			if math.IsNaN(sma[i]) {
				t.Errorf("SMA(%d)[%d] is NaN, want defined", period, i)
			}
		}
	}
}

func TestSMA_Values(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}
	sma, err := SMA(closes, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{2, 3, 4}
	for i, w := range want {
		if !almostEqual(sma[i+2], w, 1e-12) {
			t.Errorf("SMA(3)[%d] = %v, want %v", i+2, sma[i+2], w)
		}
	}
}

func TestSMA_InsufficientHistory(t *testing.T) {
	if _, err := SMA(linearCloses(10, 1, 4), 5); !errors.Is(err, ErrInsufficientHistory) {
		t.Fatalf("expected ErrInsufficientHistory, got %v", err)
	}
}

func TestEMA_SeedEqualsSMA(t *testing.T) {
	closes := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8}
	for _, period := range []int{3, 5, 8} {
		sma, err := SMA(closes, period)
		if err != nil {
			t.Fatal(err)
		}
		ema, err := EMA(closes, period)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < period-1; i++ {
			if !math.IsNaN(ema[i]) {
				t.Errorf("EMA(%d)[%d] = %v, want NaN", period, i, ema[i])
			}
		}
		if !almostEqual(ema[period-1], sma[period-1], 1e-12) {
			t.Errorf("EMA(%d) seed %v != SMA %v", period, ema[period-1], sma[period-1])
		}
	}
}

func TestEMA_Recurrence(t *testing.T) {
	closes := []float64{2, 4, 6, 10}
	ema, err := EMA(closes, 3)
	if err != nil {
		t.Fatal(err)
	}
	// seed = (2+4+6)/3 = 4; alpha = 0.5; next = 0.5*10 + 0.5*4 = 7
	if !almostEqual(ema[3], 7, 1e-12) {
		t.Errorf("EMA[3] = %v, want 7", ema[3])
	}
}

func TestMACD_DefinedBoundaries(t *testing.T) {
	closes := linearCloses(100, 0.5, 60)
	macd, signal, err := MACD(closes, 12, 26, 9)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(macd[24]) || math.IsNaN(macd[25]) {
		t.Errorf("MACD should first be defined at index 25")
	}
	if !math.IsNaN(signal[32]) || math.IsNaN(signal[33]) {
		t.Errorf("signal line should first be defined at index 33")
	}
}

func TestMACD_LinearTrendIsPositive(t *testing.T) {
	closes := linearCloses(100, 1, 60)
	macd, _, err := MACD(closes, 12, 26, 9)
	if err != nil {
		t.Fatal(err)
	}
	// Rising prices: fast EMA sits above slow EMA.
	if macd[59] <= 0 {
		t.Errorf("MACD on an uptrend = %v, want > 0", macd[59])
	}
}

func TestRSI_Bounds(t *testing.T) {
	closes := []float64{44, 44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10, 45.42,
		45.84, 46.08, 45.89, 46.03, 45.61, 46.28, 46.28, 46.00, 46.03, 46.41, 46.22}
	rsi, err := RSI(closes, 14)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range rsi {
		if i < 14 {
			if !math.IsNaN(v) {
				t.Errorf("RSI[%d] = %v, want NaN", i, v)
			}
			continue
		}
		if v < 0 || v > 100 {
			t.Errorf("RSI[%d] = %v, out of [0, 100]", i, v)
		}
	}
}

func TestRSI_AllGainsIs100(t *testing.T) {
	closes := linearCloses(10, 1, 20)
	rsi, err := RSI(closes, 14)
	if err != nil {
		t.Fatal(err)
	}
	for i := 14; i < len(rsi); i++ {
		if rsi[i] != 100 {
			t.Errorf("RSI[%d] = %v on pure gains, want 100", i, rsi[i])
		}
	}
}

func TestRSI_AllLossesIsZero(t *testing.T) {
	closes := linearCloses(100, -1, 20)
	rsi, err := RSI(closes, 14)
	if err != nil {
		t.Fatal(err)
	}
	for i := 14; i < len(rsi); i++ {
		if rsi[i] != 0 {
			t.Errorf("RSI[%d] = %v on pure losses, want 0", i, rsi[i])
		}
	}
}

func TestRSI_InsufficientHistory(t *testing.T) {
	if _, err := RSI(linearCloses(10, 1, 14), 14); !errors.Is(err, ErrInsufficientHistory) {
		t.Fatalf("expected ErrInsufficientHistory, got %v", err)
	}
}

func TestRollingStd_ConstantWindow(t *testing.T) {
	closes := []float64{5, 5, 5, 5, 5, 5}
	std, err := RollingStd(closes, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := 2; i < len(std); i++ {
		if std[i] != 0 {
			t.Errorf("RollingStd[%d] = %v on constant series, want 0", i, std[i])
		}
	}
}

func TestRollingStd_Sample(t *testing.T) {
	closes := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	std, err := RollingStd(closes, 8)
	if err != nil {
		t.Fatal(err)
	}
	// Sample std (n-1 denominator) of the classic example set.
	want := math.Sqrt(32.0 / 7.0)
	if !almostEqual(std[7], want, 1e-12) {
		t.Errorf("RollingStd[7] = %v, want %v", std[7], want)
	}
}
