package collector

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SujalPatel1904/tickerboard/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars []model.OHLCV
	Err  error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(_, _, _ string) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Bars, nil
}

// Collector wraps a Fetcher with the total fetch contract: one fresh
// request per call, and an empty series instead of an error when the
// provider fails or returns nothing. No retry, no backoff, no caching.
type Collector struct {
	Fetcher  Fetcher
	Symbol   string
	Period   string
	Interval string
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol, period, interval string) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol, Period: period, Interval: interval}
}

// Snapshot fetches the current price series. Provider errors and empty
// responses are logged and collapsed into an empty series; the returned
// value is always usable.
func (c *Collector) Snapshot() model.PriceSeries {
	series := model.PriceSeries{
		Symbol:    c.Symbol,
		Period:    c.Period,
		Interval:  c.Interval,
		FetchedAt: time.Now(),
	}

	bars, err := c.Fetcher.FetchSeries(c.Symbol, c.Period, c.Interval)
	if err != nil {
		logrus.Warnf("fetch %s (%s/%s) failed: %v", c.Symbol, c.Period, c.Interval, err)
		return series
	}
	if len(bars) == 0 {
		logrus.Warnf("fetch %s (%s/%s): provider returned no bars", c.Symbol, c.Period, c.Interval)
		return series
	}

	series.Bars = bars
	return series
}
