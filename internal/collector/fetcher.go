package collector

import (
	"errors"
	"time"

	"StockSeer/internal/model"
)

// ErrDataUnavailable indicates the upstream source could not supply bars
// for the requested ticker and range. The pipeline never retries it.
var ErrDataUnavailable = errors.New("market data unavailable")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchDailyBars(symbol string, start, end time.Time) ([]model.Bar, error)
	Name() string
}
