package forecast

import (
	"strings"
	"testing"
	"time"

	"StockSeer/internal/dataset"
)

func TestFromScaled_PctMove(t *testing.T) {
	// Identity label scaler: prediction already in price units.
	labels := &dataset.LabelScaler{Mean: 0, Scale: 1}
	lastDate := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC) // Wednesday

	f := FromScaled(182.92, labels, 177.58, lastDate)
	if f.PredictedClose != 182.92 {
		t.Fatalf("predicted close = %v, want 182.92", f.PredictedClose)
	}
	if got := FormatPctChange(f.PctChange); got != "+3.01%" {
		t.Errorf("pct move = %s, want +3.01%%", got)
	}
	if !f.TargetDate.Equal(time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("target date = %v, want next day", f.TargetDate)
	}
}

func TestFromScaled_InverseTransform(t *testing.T) {
	labels := &dataset.LabelScaler{Mean: 150, Scale: 10}
	f := FromScaled(0.5, labels, 150, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC))
	if f.PredictedClose != 155 {
		t.Errorf("predicted close = %v, want 155", f.PredictedClose)
	}
}

func TestFormatPctChange_Signed(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{3.007, "+3.01%"},
		{-2.499, "-2.50%"},
		{0, "+0.00%"},
	}
	for _, tt := range tests {
		if got := FormatPctChange(tt.pct); got != tt.want {
			t.Errorf("FormatPctChange(%v) = %s, want %s", tt.pct, got, tt.want)
		}
	}
}

func TestNextTradingDay(t *testing.T) {
	tests := []struct {
		last time.Time
		want time.Time
	}{
		// Friday -> Monday
		{time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)},
		// Saturday -> Monday
		{time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)},
		// Tuesday -> Wednesday
		{time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := NextTradingDay(tt.last); !got.Equal(tt.want) {
			t.Errorf("NextTradingDay(%v) = %v, want %v", tt.last.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestFormat_ContainsRoundedValues(t *testing.T) {
	labels := &dataset.LabelScaler{Mean: 0, Scale: 1}
	f := FromScaled(182.92, labels, 177.58, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC))
	out := Format(f, 0.1234)
	for _, want := range []string{"182.92", "+3.01%", "177.58", "up", "0.1234"} {
		if !strings.Contains(out, want) {
			t.Errorf("formatted report missing %q:\n%s", want, out)
		}
	}

	down := FromScaled(170.00, labels, 177.58, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC))
	if !strings.Contains(Format(down, 0.1), "down") {
		t.Error("expected a down move to be reported as down")
	}
}
