package collector

import "github.com/SujalPatel1904/tickerboard/internal/model"

// Fetcher defines the interface for fetching a historical price series.
// Period and interval are provider-defined strings passed through
// unvalidated (e.g. "1d", "1m").
type Fetcher interface {
	FetchSeries(symbol, period, interval string) ([]model.OHLCV, error)
	Name() string
}
