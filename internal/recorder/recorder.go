package recorder

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SujalPatel1904/tickerboard/internal/model"
)

// RefreshEvent summarizes the outcome of one refresh tick. The fetched
// series itself is ephemeral; only this summary is persisted.
type RefreshEvent struct {
	Tick          int64
	Symbol        string
	Rows          int
	LatestPrice   float64
	LatestBarTime time.Time
	Status        string
	Empty         bool
}

// Recorder persists refresh history for later inspection.
type Recorder interface {
	RecordRefresh(evt *RefreshEvent) error
	Close() error
}

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRefresh(_ *RefreshEvent) error { return nil }
func (n *NoopRecorder) Close() error                        { return nil }

// Sink adapts a Recorder to the scheduler's fan-out, deriving the event
// summary from each update.
type Sink struct {
	Symbol   string
	Recorder Recorder
}

// NewSink creates a scheduler sink writing to rec.
func NewSink(symbol string, rec Recorder) *Sink {
	return &Sink{Symbol: symbol, Recorder: rec}
}

// Publish records the update, logging instead of propagating failures so
// a broken database never stalls the refresh loop.
func (s *Sink) Publish(update model.Update) {
	evt := &RefreshEvent{
		Tick:   update.Tick,
		Symbol: s.Symbol,
		Status: update.Status,
		Empty:  true,
	}
	if len(update.Chart.Series) > 0 {
		points := update.Chart.Series[0].Points
		evt.Rows = len(points)
		if len(points) > 0 {
			last := points[len(points)-1]
			evt.LatestPrice = last.Value
			evt.LatestBarTime = last.Time
			evt.Empty = false
		}
	}
	if err := s.Recorder.RecordRefresh(evt); err != nil {
		logrus.Errorf("record refresh: %v", err)
	}
}
