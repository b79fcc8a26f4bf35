package model

import "time"

// ChartPoint is one (timestamp, value) pair of a line series.
type ChartPoint struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// ChartSeries is a named line series.
type ChartSeries struct {
	Name   string       `json:"name"`
	Points []ChartPoint `json:"points"`
}

// ChartDescription is the declarative chart layout consumed by the web
// page: zero or more line series plus display metadata. It is derived
// 1:1 from a PriceSeries and carries no state of its own.
type ChartDescription struct {
	Title       string        `json:"title"`
	XAxisLabel  string        `json:"x_axis_label"`
	YAxisLabel  string        `json:"y_axis_label"`
	HoverFormat string        `json:"hover_format,omitempty"`
	Annotation  string        `json:"annotation,omitempty"`
	Series      []ChartSeries `json:"series"`
}

// Update is the per-tick envelope handed to every sink: the chart, the
// status line, and when they were generated.
type Update struct {
	Tick        int64            `json:"tick"`
	Chart       ChartDescription `json:"chart"`
	Status      string           `json:"status"`
	GeneratedAt time.Time        `json:"generated_at"`
}
