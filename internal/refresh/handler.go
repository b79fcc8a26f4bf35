package refresh

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SujalPatel1904/tickerboard/internal/calculator"
	"github.com/SujalPatel1904/tickerboard/internal/collector"
	"github.com/SujalPatel1904/tickerboard/internal/model"
)

const timeLayout = "2006-01-02 15:04:05"

// Handler turns one tick of the refresh timer into a chart description
// and a status line. It holds no state across invocations: given fixed
// provider output, OnTick always produces the same result.
type Handler struct {
	Collector     *collector.Collector
	OverlayWindow int              // moving-average overlay, 0 disables
	Now           func() time.Time // injectable clock
}

// NewHandler creates a Handler with the real clock.
func NewHandler(col *collector.Collector, overlayWindow int) *Handler {
	return &Handler{Collector: col, OverlayWindow: overlayWindow, Now: time.Now}
}

// OnTick fetches the current series and derives the chart and status
// line. It is total: no error is returned and none can escape, because
// the collector collapses every failure into an empty series.
func (h *Handler) OnTick(tick int64) (model.ChartDescription, string) {
	logrus.Debugf("refresh tick %d", tick)

	series := h.Collector.Snapshot()
	if series.Empty() {
		return h.emptyChart(series), h.emptyStatus()
	}
	return h.chart(series), h.status(series)
}

func (h *Handler) chart(series model.PriceSeries) model.ChartDescription {
	points := make([]model.ChartPoint, len(series.Bars))
	for i, b := range series.Bars {
		points[i] = model.ChartPoint{Time: b.Time, Value: b.Close}
	}

	desc := model.ChartDescription{
		Title:       fmt.Sprintf("%s Live Price", series.Symbol),
		XAxisLabel:  "Time",
		YAxisLabel:  "Price (USD)",
		HoverFormat: "$%.2f",
		Series: []model.ChartSeries{
			{Name: series.Symbol, Points: points},
		},
	}

	if h.OverlayWindow > 1 {
		if overlay := overlaySeries(series, h.OverlayWindow); overlay != nil {
			desc.Series = append(desc.Series, *overlay)
		}
	}
	return desc
}

// overlaySeries builds the moving-average line, aligned to the bar at
// the end of each window. Returns nil when the series is too short.
func overlaySeries(series model.PriceSeries, window int) *model.ChartSeries {
	values, err := calculator.RollingSMA(series.Closes(), window)
	if err != nil {
		return nil
	}
	points := make([]model.ChartPoint, len(values))
	for i, v := range values {
		points[i] = model.ChartPoint{Time: series.Bars[i+window-1].Time, Value: v}
	}
	return &model.ChartSeries{
		Name:   fmt.Sprintf("SMA(%d)", window),
		Points: points,
	}
}

func (h *Handler) status(series model.PriceSeries) string {
	last, _ := series.Latest()
	return fmt.Sprintf("Last updated: %s | Latest Price: $%.2f",
		last.Time.Format(timeLayout), last.Close)
}

func (h *Handler) emptyChart(series model.PriceSeries) model.ChartDescription {
	return model.ChartDescription{
		Title:      fmt.Sprintf("%s Live Price", series.Symbol),
		XAxisLabel: "Time",
		YAxisLabel: "Price (USD)",
		Annotation: "No data to display",
	}
}

func (h *Handler) emptyStatus() string {
	return fmt.Sprintf("No recent data as of %s (market may be closed)",
		h.Now().Format(timeLayout))
}
