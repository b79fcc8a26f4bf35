package refresh

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/SujalPatel1904/tickerboard/internal/collector"
	"github.com/SujalPatel1904/tickerboard/internal/model"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func barsAt(closes []float64, start time.Time, step time.Duration) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   start.Add(time.Duration(i) * step),
			Open:   c,
			High:   c + 0.5,
			Low:    c - 0.5,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func newTestHandler(fetcher collector.Fetcher, overlay int) *Handler {
	col := collector.NewCollector(fetcher, "AAPL", "1d", "1m")
	h := NewHandler(col, overlay)
	h.Now = fixedClock(time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC))
	return h
}

func TestOnTick_StatusAndSeries(t *testing.T) {
	open := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	closes := []float64{100.00, 100.50, 99.75}
	h := newTestHandler(&collector.MockFetcher{Bars: barsAt(closes, open, time.Minute)}, 0)

	chart, status := h.OnTick(1)

	want := fmt.Sprintf("Last updated: %s | Latest Price: $99.75", open.Add(2*time.Minute).Format("2006-01-02 15:04:05"))
	if status != want {
		t.Errorf("status: got %q, want %q", status, want)
	}

	if len(chart.Series) != 1 {
		t.Fatalf("expected 1 series, got %d", len(chart.Series))
	}
	points := chart.Series[0].Points
	if len(points) != len(closes) {
		t.Fatalf("expected %d points, got %d", len(closes), len(points))
	}
	for i, p := range points {
		if p.Value != closes[i] {
			t.Errorf("point %d: got %.2f, want %.2f", i, p.Value, closes[i])
		}
		if i > 0 && !points[i-1].Time.Before(p.Time) {
			t.Errorf("points not timestamp-ascending at %d", i)
		}
	}
	if chart.Annotation != "" {
		t.Errorf("unexpected annotation on populated chart: %q", chart.Annotation)
	}
}

func TestOnTick_SeriesLengthMatchesRows(t *testing.T) {
	open := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	for _, n := range []int{1, 5, 390} {
		closes := make([]float64, n)
		for i := range closes {
			closes[i] = 100 + float64(i)*0.01
		}
		h := newTestHandler(&collector.MockFetcher{Bars: barsAt(closes, open, time.Minute)}, 0)
		chart, _ := h.OnTick(1)
		if len(chart.Series) != 1 || len(chart.Series[0].Points) != n {
			t.Errorf("n=%d: expected %d points, got %d series", n, n, len(chart.Series))
		}
	}
}

func TestOnTick_FetchError(t *testing.T) {
	h := newTestHandler(&collector.MockFetcher{Err: errors.New("connection refused")}, 0)

	chart, status := h.OnTick(1)

	if len(chart.Series) != 0 {
		t.Errorf("expected zero series, got %d", len(chart.Series))
	}
	if chart.Annotation != "No data to display" {
		t.Errorf("annotation: got %q", chart.Annotation)
	}
	if !strings.Contains(status, "No recent data") {
		t.Errorf("status should contain %q, got %q", "No recent data", status)
	}
	if !strings.Contains(status, "2025-06-02 10:00:00") {
		t.Errorf("status should carry the check time, got %q", status)
	}
}

func TestOnTick_EmptyResponse(t *testing.T) {
	h := newTestHandler(&collector.MockFetcher{Bars: nil}, 0)

	chart, status := h.OnTick(42)
	if len(chart.Series) != 0 {
		t.Errorf("expected zero series, got %d", len(chart.Series))
	}
	if !strings.Contains(status, "market may be closed") {
		t.Errorf("status should explain the gap, got %q", status)
	}
}

func TestOnTick_TwoDecimalPrice(t *testing.T) {
	open := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	h := newTestHandler(&collector.MockFetcher{Bars: barsAt([]float64{172.3456}, open, time.Minute)}, 0)

	_, status := h.OnTick(1)
	if !strings.Contains(status, "$172.35") {
		t.Errorf("price should be formatted to two decimals, got %q", status)
	}
}

func TestOnTick_Idempotent(t *testing.T) {
	open := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	h := newTestHandler(&collector.MockFetcher{Bars: barsAt([]float64{100, 101, 102}, open, time.Minute)}, 3)

	chart1, status1 := h.OnTick(1)
	chart2, status2 := h.OnTick(2)

	if !reflect.DeepEqual(chart1, chart2) {
		t.Error("charts differ between ticks with fixed provider state")
	}
	if status1 != status2 {
		t.Errorf("statuses differ: %q vs %q", status1, status2)
	}
}

func TestOnTick_OverlaySeries(t *testing.T) {
	open := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	closes := []float64{100, 102, 104, 106}
	h := newTestHandler(&collector.MockFetcher{Bars: barsAt(closes, open, time.Minute)}, 2)

	chart, _ := h.OnTick(1)
	if len(chart.Series) != 2 {
		t.Fatalf("expected price + overlay series, got %d", len(chart.Series))
	}
	overlay := chart.Series[1]
	if overlay.Name != "SMA(2)" {
		t.Errorf("overlay name: got %q", overlay.Name)
	}
	wantValues := []float64{101, 103, 105}
	if len(overlay.Points) != len(wantValues) {
		t.Fatalf("overlay points: got %d, want %d", len(overlay.Points), len(wantValues))
	}
	for i, p := range overlay.Points {
		if p.Value != wantValues[i] {
			t.Errorf("overlay point %d: got %.2f, want %.2f", i, p.Value, wantValues[i])
		}
		if !p.Time.Equal(open.Add(time.Duration(i+1) * time.Minute)) {
			t.Errorf("overlay point %d aligned wrong: %v", i, p.Time)
		}
	}
}

func TestOnTick_OverlayTooShort(t *testing.T) {
	open := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	h := newTestHandler(&collector.MockFetcher{Bars: barsAt([]float64{100, 101}, open, time.Minute)}, 20)

	chart, _ := h.OnTick(1)
	if len(chart.Series) != 1 {
		t.Errorf("overlay should be dropped when the window doesn't fit, got %d series", len(chart.Series))
	}
}
