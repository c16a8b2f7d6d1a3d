package model

import "time"

// Snapshot is the merged dashboard state handed to renderers: the latest
// normalized data for all three resources plus per-resource loading and
// fallback markers. Renderers receive copies and never mutate the store.
type Snapshot struct {
	Station Station `json:"station"`
	Epoch   uint64  `json:"epoch"`

	Alerts  []Alert       `json:"alerts"`
	Trains  []TrainRow    `json:"trains"`
	Metrics []MetricEntry `json:"metrics"`

	LoadingAlerts  bool `json:"loadingAlerts"`
	LoadingTrains  bool `json:"loadingTrains"`
	LoadingMetrics bool `json:"loadingMetrics"`

	AlertsFallback  bool `json:"alertsFallback"`
	TrainsFallback  bool `json:"trainsFallback"`
	MetricsFallback bool `json:"metricsFallback"`

	// Degraded is set when all three resources sit on fallback data for the
	// same fetch cycle, which usually means the telemetry source is down.
	Degraded  bool      `json:"degraded"`
	LastError string    `json:"lastError,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Loading reports whether any resource fetch is still outstanding.
func (s Snapshot) Loading() bool {
	return s.LoadingAlerts || s.LoadingTrains || s.LoadingMetrics
}
