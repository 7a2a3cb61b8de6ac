package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"StockSeer/internal/collector"
	"StockSeer/internal/config"
	"StockSeer/internal/dateutil"
	"StockSeer/internal/feature"
	"StockSeer/internal/forecast"
	"StockSeer/internal/pipeline"
	"StockSeer/internal/predictor"
	"StockSeer/internal/recorder"
	"StockSeer/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Load .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}

	cfgPath := flag.String("config", "configs/config.yaml", "path to YAML config")
	ticker := flag.String("ticker", "", "stock ticker symbol")
	start := flag.String("start", "", "start date (YYYY-MM-DD)")
	end := flag.String("end", "", "end date (YYYY-MM-DD) or +N days after start")
	watch := flag.Bool("watch", false, "keep running and re-forecast on the configured cron schedule")
	mock := flag.Bool("mock", false, "use synthetic data instead of Yahoo Finance")
	flag.Parse()

	if v := os.Getenv("CONFIG_PATH"); v != "" && *cfgPath == "configs/config.yaml" {
		*cfgPath = v
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Flags override config; anything still missing is prompted.
	if *ticker != "" {
		cfg.Ticker = *ticker
	}
	if *start != "" {
		cfg.StartDate = *start
	}
	if *end != "" {
		cfg.EndDate = *end
	}
	in := bufio.NewReader(os.Stdin)
	if cfg.Ticker == "" {
		cfg.Ticker = promptLine(in, "Enter the stock ticker symbol: ")
	}
	if cfg.StartDate == "" {
		cfg.StartDate = promptLine(in, "Enter the start date (YYYY-MM-DD): ")
	}
	if cfg.EndDate == "" {
		cfg.EndDate = promptLine(in, "Enter the end date (YYYY-MM-DD or +N days): ")
	}

	startDate, err := dateutil.ParseDate(cfg.StartDate)
	if err != nil {
		log.Fatalf("[FATAL] start date: %v", err)
	}
	endDate, err := dateutil.ResolveEnd(startDate, cfg.EndDate)
	if err != nil {
		log.Fatalf("[FATAL] end date: %v", err)
	}

	// Optional log file tee
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Printf("[WARN] open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stderr, f))
		}
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if *mock {
		fetcher = &collector.MockFetcher{Bars: collector.GenerateTrendBars(100, 0.1, 400, startDate)}
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	p := pipeline.New(fetcher, rec)
	runCfg := pipeline.Config{
		Ticker: cfg.Ticker,
		Start:  startDate,
		End:    endDate,
		Feature: feature.Config{
			SMAWindow:  cfg.Features.SMAWindow,
			EMAWindow:  cfg.Features.EMAWindow,
			MACDFast:   cfg.Features.MACDFast,
			MACDSlow:   cfg.Features.MACDSlow,
			MACDSignal: cfg.Features.MACDSignal,
			RSIWindow:  cfg.Features.RSIWindow,
			RollWindow: cfg.Features.RollWindow,
			LagDepth:   cfg.Features.LagDepth,
		},
		SplitRatio: cfg.Training.SplitRatio,
		Epochs:     cfg.Training.Epochs,
		BatchSize:  cfg.Training.BatchSize,
		Predictor: predictor.Config{
			Hidden:       cfg.Training.Hidden,
			LearningRate: cfg.Training.LearningRate,
			Patience:     cfg.Training.Patience,
			Seed:         cfg.Training.Seed,
		},
	}

	if *watch {
		sched := scheduler.NewScheduler(p, runCfg)
		sched.SlideWindow = true
		if err := sched.Register(cfg.Schedule.ForecastCron); err != nil {
			log.Fatalf("[FATAL] register cron task: %v", err)
		}
		sched.Start()
		defer sched.Stop()

		if os.Getenv("RUN_ON_START") == "true" {
			log.Println("[INFO] RUN_ON_START enabled, forecasting now")
			go sched.RunNow()
		}
		log.Println("[INFO] StockSeer watching. Press Ctrl+C to stop.")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("[INFO] shutdown signal received, stopping...")
		return
	}

	res, err := p.Run(runCfg)
	if err != nil {
		log.Fatalf("[FATAL] pipeline: %v", err)
	}
	fmt.Println(forecast.Format(res.Forecast, res.TestMSE))
}

func promptLine(in *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, err := in.ReadString('\n')
	if err != nil {
		log.Fatalf("[FATAL] read input: %v", err)
	}
	return strings.TrimSpace(line)
}
