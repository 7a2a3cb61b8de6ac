// Package forecast turns a scaled model output back into an
// interpretable next-day price forecast.
package forecast

import (
	"time"

	"StockSeer/internal/dataset"
	"StockSeer/internal/model"
)

// FromScaled inverse-transforms a scaled prediction and computes the
// signed percentage move versus the last known close. The target date is
// the next trading day after the last bar.
func FromScaled(scaledPred float64, labels *dataset.LabelScaler, lastClose float64, lastDate time.Time) model.Forecast {
	pred := labels.Inverse(scaledPred)
	return model.Forecast{
		PredictedClose: pred,
		LastClose:      lastClose,
		PctChange:      (pred - lastClose) / lastClose * 100,
		TargetDate:     NextTradingDay(lastDate),
	}
}

// NextTradingDay returns the first weekday after d. Exchange holidays
// are not modeled.
func NextTradingDay(d time.Time) time.Time {
	next := d.AddDate(0, 0, 1)
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
