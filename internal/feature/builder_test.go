package feature

import (
	"errors"
	"math"
	"testing"
	"time"

	"StockSeer/internal/calculator"
	"StockSeer/internal/collector"
)

func TestBuild_RowShapeAndCount(t *testing.T) {
	cfg := DefaultConfig()
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := collector.GenerateTrendBars(100, 0.5, 120, start)

	set, err := Build(bars, cfg)
	if err != nil {
		t.Fatal(err)
	}

	wantCols := len(cfg.Columns())
	if len(set.Columns) != wantCols {
		t.Fatalf("got %d columns, want %d", len(set.Columns), wantCols)
	}
	for i, row := range set.Rows {
		if len(row) != wantCols {
			t.Fatalf("row %d has %d features, want %d", i, len(row), wantCols)
		}
		for j, v := range row {
			if math.IsNaN(v) {
				t.Fatalf("row %d column %s is NaN", i, set.Columns[j])
			}
		}
	}

	wantRows := len(bars) - cfg.MaxLookback() - 1
	if len(set.Rows) != wantRows {
		t.Errorf("got %d labeled rows, want %d", len(set.Rows), wantRows)
	}
	if len(set.Labels) != len(set.Rows) {
		t.Errorf("labels (%d) and rows (%d) out of step", len(set.Labels), len(set.Rows))
	}
	if len(set.Latest) != wantCols {
		t.Errorf("inference row has %d features, want %d", len(set.Latest), wantCols)
	}
	if !set.LatestDate.Equal(bars[len(bars)-1].Date) {
		t.Errorf("inference row date %v, want %v", set.LatestDate, bars[len(bars)-1].Date)
	}
}

func TestBuild_LabelsAreNextClose(t *testing.T) {
	cfg := DefaultConfig()
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := collector.GenerateTrendBars(100, 0.5, 80, start)

	set, err := Build(bars, cfg)
	if err != nil {
		t.Fatal(err)
	}
	first := cfg.MaxLookback()
	for i := range set.Labels {
		want := bars[first+i+1].Close
		if set.Labels[i] != want {
			t.Fatalf("label %d = %v, want next close %v", i, set.Labels[i], want)
		}
	}
}

func TestBuild_LagsUseOnlyPastCloses(t *testing.T) {
	cfg := DefaultConfig()
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := collector.GenerateTrendBars(100, 0.5, 80, start)

	set, err := Build(bars, cfg)
	if err != nil {
		t.Fatal(err)
	}
	first := cfg.MaxLookback()
	// close is column 0; close_lag_k sits at 9+k-1.
	for i, row := range set.Rows {
		t0 := first + i
		if row[0] != bars[t0].Close {
			t.Fatalf("row %d close = %v, want %v", i, row[0], bars[t0].Close)
		}
		for lag := 1; lag <= cfg.LagDepth; lag++ {
			got := row[9+lag-1]
			want := bars[t0-lag].Close
			if got != want {
				t.Fatalf("row %d close_lag_%d = %v, want %v", i, lag, got, want)
			}
		}
	}
}

func TestBuild_MinimumHistoryBoundary(t *testing.T) {
	cfg := DefaultConfig()
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	maxWindow := cfg.MaxLookback() + 1

	// Exactly maxWindow bars: all indicators defined on the last bar but
	// no labeled row remains.
	bars := collector.GenerateTrendBars(100, 0.5, maxWindow, start)
	if _, err := Build(bars, cfg); !errors.Is(err, calculator.ErrInsufficientHistory) {
		t.Fatalf("%d bars: expected ErrInsufficientHistory, got %v", maxWindow, err)
	}

	// One more bar: exactly one labeled row plus the inference row.
	bars = collector.GenerateTrendBars(100, 0.5, maxWindow+1, start)
	set, err := Build(bars, cfg)
	if err != nil {
		t.Fatalf("%d bars: %v", maxWindow+1, err)
	}
	if len(set.Rows) != 1 {
		t.Errorf("got %d labeled rows, want 1", len(set.Rows))
	}
	if set.Latest == nil {
		t.Error("missing reserved inference row")
	}
}

func TestBuild_FarTooFewBars(t *testing.T) {
	cfg := DefaultConfig()
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := collector.GenerateTrendBars(100, 0.5, 20, start)
	if _, err := Build(bars, cfg); !errors.Is(err, calculator.ErrInsufficientHistory) {
		t.Fatalf("expected ErrInsufficientHistory, got %v", err)
	}
}

func TestConfig_MaxLookbackDefaults(t *testing.T) {
	cfg := DefaultConfig()
	// SMA(50) dominates: defined from index 49.
	if got := cfg.MaxLookback(); got != 49 {
		t.Errorf("MaxLookback = %d, want 49", got)
	}
	if got := cfg.MinBars(); got != 51 {
		t.Errorf("MinBars = %d, want 51", got)
	}
}

func TestConfig_ColumnsOrderIsStable(t *testing.T) {
	cfg := DefaultConfig()
	a := cfg.Columns()
	b := cfg.Columns()
	if len(a) != 9+2*cfg.LagDepth {
		t.Fatalf("got %d columns, want %d", len(a), 9+2*cfg.LagDepth)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("column order not stable at %d: %s vs %s", i, a[i], b[i])
		}
	}
}
