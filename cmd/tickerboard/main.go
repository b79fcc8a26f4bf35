package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/SujalPatel1904/tickerboard/internal/collector"
	"github.com/SujalPatel1904/tickerboard/internal/config"
	"github.com/SujalPatel1904/tickerboard/internal/logging"
	"github.com/SujalPatel1904/tickerboard/internal/recorder"
	"github.com/SujalPatel1904/tickerboard/internal/refresh"
	"github.com/SujalPatel1904/tickerboard/internal/scheduler"
	"github.com/SujalPatel1904/tickerboard/internal/server"
)

func main() {
	godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("config validation: %v", err)
	}

	logging.Setup(cfg)
	runID := uuid.NewString()
	logrus.Infof("tickerboard starting, run %s", runID)

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	logrus.Infof("data source: %s, symbol %s (%s/%s)",
		fetcher.Name(), cfg.DataSource.Symbol, cfg.DataSource.Period, cfg.DataSource.Interval)

	col := collector.NewCollector(fetcher, cfg.DataSource.Symbol, cfg.DataSource.Period, cfg.DataSource.Interval)
	handler := refresh.NewHandler(col, cfg.Chart.OverlayWindow)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			logrus.Warnf("init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Init web server
	srv := server.New(cfg.Server.Addr, cfg.Server.AllowOrigins, server.Info{
		RunID:      runID,
		Symbol:     cfg.DataSource.Symbol,
		DataSource: fetcher.Name(),
		StartedAt:  time.Now(),
	})

	// Init scheduler
	sched := scheduler.NewScheduler(handler, srv, recorder.NewSink(cfg.DataSource.Symbol, rec))
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		logrus.Fatalf("register refresh task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	go func() {
		if err := srv.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server: %v", err)
		}
	}()

	if cfg.Schedule.RunOnStart || os.Getenv("RUN_ON_START") == "true" {
		logrus.Info("RUN_ON_START enabled, refreshing now")
		go sched.RunNow()
	}

	logrus.Info("tickerboard is running. Press Ctrl+C to stop.")
	<-ctx.Done()

	logrus.Info("shutdown signal received, stopping...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("server shutdown: %v", err)
	}
	logrus.Info("tickerboard stopped")
}
