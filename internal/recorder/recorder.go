package recorder

import "time"

// RunRecord holds everything worth persisting about one forecast run.
type RunRecord struct {
	Ticker         string
	Start          time.Time
	End            time.Time
	Bars           int
	FeatureRows    int
	TestMSE        float64
	LastClose      float64
	PredictedClose float64
	PctChange      float64
	TargetDate     time.Time
}

// Recorder persists forecast runs for later analysis.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	Close() error
}
