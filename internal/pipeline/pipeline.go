// Package pipeline runs one full forecast: fetch bars, build features,
// split and scale, train, evaluate, and predict the next close. Each
// run constructs fresh data and a fresh model; nothing is shared across
// runs.
package pipeline

import (
	"fmt"
	"log"
	"time"

	"StockSeer/internal/collector"
	"StockSeer/internal/dataset"
	"StockSeer/internal/feature"
	"StockSeer/internal/forecast"
	"StockSeer/internal/model"
	"StockSeer/internal/predictor"
	"StockSeer/internal/recorder"
)

// Config holds everything one run needs.
type Config struct {
	Ticker     string
	Start      time.Time
	End        time.Time
	Feature    feature.Config
	SplitRatio float64
	Epochs     int
	BatchSize  int
	Predictor  predictor.Config
}

// Result is the outcome of one successful run.
type Result struct {
	Forecast    model.Forecast
	TestMSE     float64 // price units, on the held-out partition
	ScaledMSE   float64 // diagnostic, in scaled label space
	Bars        int
	FeatureRows int
}

// Pipeline wires the fetcher and recorder into the run sequence.
type Pipeline struct {
	Fetcher  collector.Fetcher
	Recorder recorder.Recorder
}

// New creates a Pipeline.
func New(fetcher collector.Fetcher, rec recorder.Recorder) *Pipeline {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Pipeline{Fetcher: fetcher, Recorder: rec}
}

// Run executes the full pipeline for one ticker and date range.
func (p *Pipeline) Run(cfg Config) (*Result, error) {
	bars, err := p.Fetcher.FetchDailyBars(cfg.Ticker, cfg.Start, cfg.End)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}
	log.Printf("[INFO] fetched %d daily bars for %s", len(bars), cfg.Ticker)

	set, err := feature.Build(bars, cfg.Feature)
	if err != nil {
		return nil, fmt.Errorf("build features: %w", err)
	}
	log.Printf("[INFO] built %d feature rows (%d columns)", len(set.Rows), len(set.Columns))

	split, err := dataset.SplitChronological(set.Rows, set.Labels, cfg.SplitRatio)
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}

	// Scalers are fit on the train partition only, then applied to the
	// test partition and the live inference row.
	var featScaler dataset.StandardScaler
	if err := featScaler.Fit(split.TrainX); err != nil {
		return nil, fmt.Errorf("fit feature scaler: %w", err)
	}
	trainX := featScaler.Transform(split.TrainX)
	testX := featScaler.Transform(split.TestX)
	latest := featScaler.TransformRow(set.Latest)

	var labelScaler dataset.LabelScaler
	if err := labelScaler.Fit(split.TrainY); err != nil {
		return nil, fmt.Errorf("fit label scaler: %w", err)
	}
	trainY := labelScaler.Transform(split.TrainY)
	testY := labelScaler.Transform(split.TestY)

	net := predictor.New(cfg.Predictor)
	if err := net.TrainWithValidation(trainX, trainY, testX, testY, cfg.Epochs, cfg.BatchSize); err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}

	scaledMSE, err := net.Evaluate(testX, testY)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}

	priceMSE, err := p.priceMSE(net, &labelScaler, testX, split.TestY)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	log.Printf("[INFO] test MSE: %.6f scaled, %.4f price units", scaledMSE, priceMSE)

	scaledPred, err := net.PredictOne(latest)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	lastClose := bars[len(bars)-1].Close
	fc := forecast.FromScaled(scaledPred, &labelScaler, lastClose, set.LatestDate)
	log.Printf("[INFO] forecast for %s: close %.2f (%s vs last close %.2f)",
		fc.TargetDate.Format("2006-01-02"), fc.PredictedClose,
		forecast.FormatPctChange(fc.PctChange), lastClose)

	res := &Result{
		Forecast:    fc,
		TestMSE:     priceMSE,
		ScaledMSE:   scaledMSE,
		Bars:        len(bars),
		FeatureRows: len(set.Rows),
	}

	if err := p.Recorder.RecordRun(&recorder.RunRecord{
		Ticker:         cfg.Ticker,
		Start:          cfg.Start,
		End:            cfg.End,
		Bars:           res.Bars,
		FeatureRows:    res.FeatureRows,
		TestMSE:        res.TestMSE,
		LastClose:      fc.LastClose,
		PredictedClose: fc.PredictedClose,
		PctChange:      fc.PctChange,
		TargetDate:     fc.TargetDate,
	}); err != nil {
		log.Printf("[WARN] record run: %v", err)
	}
	return res, nil
}

// priceMSE inverse-transforms test predictions and measures MSE against
// the raw labels in price units.
func (p *Pipeline) priceMSE(net *predictor.Network, labels *dataset.LabelScaler, testX [][]float64, rawY []float64) (float64, error) {
	sum := 0.0
	for i, row := range testX {
		scaled, err := net.PredictOne(row)
		if err != nil {
			return 0, err
		}
		d := labels.Inverse(scaled) - rawY[i]
		sum += d * d
	}
	return sum / float64(len(testX)), nil
}
