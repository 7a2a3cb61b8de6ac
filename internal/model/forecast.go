package model

import "time"

// Forecast is the final output of one prediction run.
type Forecast struct {
	PredictedClose float64
	LastClose      float64
	PctChange      float64 // signed percentage move vs. last close
	TargetDate     time.Time
}
