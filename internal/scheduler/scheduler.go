// Package scheduler re-runs the forecast pipeline on a cron schedule
// (watch mode). Each firing is an independent run against a window that
// slides forward to the current day.
package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"StockSeer/internal/forecast"
	"StockSeer/internal/pipeline"
)

// Scheduler manages the recurring forecast task.
type Scheduler struct {
	Cron     *cron.Cron
	Pipeline *pipeline.Pipeline
	Cfg      pipeline.Config

	// SlideWindow moves the end date to now on every firing, keeping
	// the training window the same length.
	SlideWindow bool
}

// NewScheduler creates a Scheduler around one pipeline configuration.
func NewScheduler(p *pipeline.Pipeline, cfg pipeline.Config) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Pipeline: p,
		Cfg:      cfg,
	}
}

// Register adds the forecast task under the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.forecastTask); err != nil {
		return fmt.Errorf("register forecast task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the forecast task immediately (for manual trigger).
func (s *Scheduler) RunNow() {
	s.forecastTask()
}

func (s *Scheduler) forecastTask() {
	cfg := s.Cfg
	if s.SlideWindow {
		span := cfg.End.Sub(cfg.Start)
		cfg.End = time.Now()
		cfg.Start = cfg.End.Add(-span)
	}

	log.Printf("[INFO] running scheduled forecast for %s", cfg.Ticker)
	res, err := s.Pipeline.Run(cfg)
	if err != nil {
		log.Printf("[ERROR] scheduled forecast: %v", err)
		return
	}
	fmt.Println(forecast.Format(res.Forecast, res.TestMSE))
}
