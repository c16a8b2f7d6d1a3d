package feed

import (
	"github.com/railscope/stationboard/model"
	"github.com/railscope/stationboard/normalize"
)

// Static fallback data substituted whenever a resource cannot be fetched.
// The catalog is pre-validated: every value renders as-is without further
// normalization, so the board always shows something coherent while the
// source is unreachable. Each call returns a fresh copy; callers own the
// slices they get.

// FallbackAlerts returns the default alert list.
func FallbackAlerts() []model.Alert {
	return []model.Alert{
		{Message: "Live alert feed unavailable; showing last known advisories", Level: model.LevelWarning},
		{Message: "Signalling maintenance window 02:00-04:00", Level: model.LevelInfo},
	}
}

// FallbackTrains returns the default schedule board.
func FallbackTrains() []model.TrainRow {
	return []model.TrainRow{
		{Name: "12301 Howrah Rajdhani", Scheduled: "10:05", Arrival: "10:05", Departure: "10:15", Platform: "1", Status: model.StatusUnknown},
		{Name: "12259 Sealdah Duronto", Scheduled: "11:20", Arrival: "11:20", Departure: "11:28", Platform: "4", Status: model.StatusUnknown},
		{Name: "12002 Shatabdi Express", Scheduled: "12:40", Arrival: "12:40", Departure: "12:52", Platform: "2", Status: model.StatusUnknown},
	}
}

// FallbackMetrics returns the default metrics panel with placeholder values.
func FallbackMetrics() []model.MetricEntry {
	return []model.MetricEntry{
		{Key: "throughput_trains_per_hr", Label: "Throughput (trains/hr)", Value: normalize.Dash, Progress: -1},
		{Key: "avg_delay_minutes", Label: "Avg Delay (min)", Value: normalize.Dash, Progress: -1},
		{Key: "platform_utilization_pct", Label: "Platform Utilization", Value: normalize.Dash, Progress: -1},
		{Key: "punctuality_pct", Label: "Punctuality", Value: normalize.Dash, Progress: -1},
	}
}
