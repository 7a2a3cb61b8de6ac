package collector

import (
	"fmt"
	"time"

	"StockSeer/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars []model.Bar
	Err  error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(symbol string, start, end time.Time) ([]model.Bar, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Bars) == 0 {
		return nil, fmt.Errorf("%w: mock has no bars for %s", ErrDataUnavailable, symbol)
	}
	return m.Bars, nil
}

// GenerateTrendBars produces count synthetic weekday bars starting at
// start, with close = base + slope*i and zero noise.
func GenerateTrendBars(base, slope float64, count int, start time.Time) []model.Bar {
	bars := make([]model.Bar, 0, count)
	d := start
	for i := 0; i < count; i++ {
		for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			d = d.AddDate(0, 0, 1)
		}
		c := base + slope*float64(i)
		bars = append(bars, model.Bar{
			Date:   d,
			Open:   c * 0.999,
			High:   c * 1.005,
			Low:    c * 0.995,
			Close:  c,
			Volume: 1000000,
		})
		d = d.AddDate(0, 0, 1)
	}
	return bars
}
