package calculator

import "errors"

// ErrNotEnoughData is returned when the input is shorter than the window.
var ErrNotEnoughData = errors.New("not enough data for SMA calculation")

// SMA computes the simple moving average of the last window prices.
func SMA(prices []float64, window int) (float64, error) {
	if window <= 0 {
		return 0, errors.New("window must be positive")
	}
	if len(prices) < window {
		return 0, ErrNotEnoughData
	}
	sum := 0.0
	for i := len(prices) - window; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(window), nil
}

// RollingSMA computes the simple moving average at every position where a
// full window is available. The result has len(prices)-window+1 values,
// aligned so that result[i] covers prices[i : i+window].
func RollingSMA(prices []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	if len(prices) < window {
		return nil, ErrNotEnoughData
	}
	out := make([]float64, 0, len(prices)-window+1)
	sum := 0.0
	for i, p := range prices {
		sum += p
		if i >= window {
			sum -= prices[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out, nil
}
