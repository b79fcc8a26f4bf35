package scheduler

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/SujalPatel1904/tickerboard/internal/model"
	"github.com/SujalPatel1904/tickerboard/internal/refresh"
)

// Sink receives the result of each refresh tick.
type Sink interface {
	Publish(model.Update)
}

// Scheduler fires the refresh handler on a fixed cron schedule and fans
// the resulting update out to every sink. A tick that fires while the
// previous fetch is still in flight is skipped, not queued.
type Scheduler struct {
	Cron    *cron.Cron
	Handler *refresh.Handler
	Sinks   []Sink

	tick atomic.Int64
}

// NewScheduler creates a Scheduler for the given handler and sinks.
func NewScheduler(handler *refresh.Handler, sinks ...Sink) *Scheduler {
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(logrus.StandardLogger()))),
		),
		Handler: handler,
		Sinks:   sinks,
	}
}

// Register adds the refresh job under the given cron spec
// (e.g. "@every 1m").
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.runTick); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logrus.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	logrus.Info("scheduler stopped")
}

// RunNow executes one refresh immediately (for RUN_ON_START and manual
// triggers).
func (s *Scheduler) RunNow() {
	s.runTick()
}

// Ticks returns the number of refreshes executed so far.
func (s *Scheduler) Ticks() int64 {
	return s.tick.Load()
}

func (s *Scheduler) runTick() {
	tick := s.tick.Add(1)
	chart, status := s.Handler.OnTick(tick)

	update := model.Update{
		Tick:        tick,
		Chart:       chart,
		Status:      status,
		GeneratedAt: time.Now(),
	}
	for _, sink := range s.Sinks {
		sink.Publish(update)
	}
}
