package normalize

import (
	"reflect"
	"testing"

	"github.com/railscope/stationboard/model"
)

func TestMetricEntryOf(t *testing.T) {
	tests := []struct {
		name string
		key  string
		v    any
		want model.MetricEntry
	}{
		{
			"percentage string derives progress",
			"punctuality", "92%",
			model.MetricEntry{Key: "punctuality", Label: "punctuality", Value: "92%", Progress: 92},
		},
		{
			"canonical pct key formats numeric as percent",
			"punctuality_pct", float64(91.2),
			model.MetricEntry{Key: "punctuality_pct", Label: "Punctuality", Value: "91.2%", Progress: 91},
		},
		{
			"plain number stays scalar",
			"avg_delay_minutes", float64(4.5),
			model.MetricEntry{Key: "avg_delay_minutes", Label: "Avg Delay (min)", Value: "4.5", Progress: -1},
		},
		{
			"unknown key shown verbatim",
			"freight_dwell", "18 min",
			model.MetricEntry{Key: "freight_dwell", Label: "freight_dwell", Value: "18 min", Progress: -1},
		},
		{
			"nested value serialized, not dropped",
			"breakdown", map[string]any{"express": float64(4)},
			model.MetricEntry{Key: "breakdown", Label: "breakdown", Value: `{"express":4}`, Progress: -1},
		},
		{
			"nil value renders dash",
			"punctuality_pct", nil,
			model.MetricEntry{Key: "punctuality_pct", Label: "Punctuality", Value: Dash, Progress: -1},
		},
		{
			"over-100 percentage clamps",
			"load", "240%",
			model.MetricEntry{Key: "load", Label: "load", Value: "240%", Progress: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MetricEntryOf(tt.key, tt.v); got != tt.want {
				t.Errorf("MetricEntryOf(%q, %v) = %+v, want %+v", tt.key, tt.v, got, tt.want)
			}
		})
	}
}

func TestMetricsOrdering(t *testing.T) {
	raw := map[string]any{
		"zebra_count":              float64(1),
		"punctuality_pct":          float64(88),
		"throughput_trains_per_hr": float64(6.2),
		"alpha_index":              "low",
	}
	got := Metrics(raw)
	keys := make([]string, len(got))
	for i, e := range got {
		keys[i] = e.Key
	}
	want := []string{"throughput_trains_per_hr", "punctuality_pct", "alpha_index", "zebra_count"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("Metrics order = %v, want %v", keys, want)
	}
}

func TestMetricsIdempotentValues(t *testing.T) {
	// A normalized value fed back through normalization must not change:
	// no double percent suffixes, no re-serialization.
	raw := map[string]any{
		"punctuality_pct": float64(91.2),
		"breakdown":       map[string]any{"express": float64(4)},
	}
	once := Metrics(raw)
	for _, e := range once {
		again := MetricEntryOf(e.Key, e.Value)
		if again.Value != e.Value || again.Progress != e.Progress {
			t.Errorf("metric %q not idempotent: %+v -> %+v", e.Key, e, again)
		}
	}
}

func TestProgressOf(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"92%", 92},
		{"91.6%", 92},
		{"0%", 0},
		{"240%", 100},
		{"18 min", -1},
		{"%", -1},
		{"", -1},
		{Dash, -1},
		{"utilization 73% of slots", 73},
	}
	for _, tt := range tests {
		if got := ProgressOf(tt.value); got != tt.want {
			t.Errorf("ProgressOf(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}
