package normalize

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/railscope/stationboard/model"
)

// metricLabels maps the telemetry backend's canonical metric keys to board
// labels. Keys outside this table are shown verbatim.
var metricLabels = map[string]string{
	"throughput_trains_per_hr": "Throughput (trains/hr)",
	"avg_delay_minutes":        "Avg Delay (min)",
	"platform_utilization_pct": "Platform Utilization",
	"punctuality_pct":          "Punctuality",
}

// metricOrder fixes the display order of the canonical metrics; everything
// else follows alphabetically.
var metricOrder = []string{
	"throughput_trains_per_hr",
	"avg_delay_minutes",
	"platform_utilization_pct",
	"punctuality_pct",
}

// Metrics converts a raw metrics map into ordered display entries. Scalar
// values become strings, structured values are serialized flat rather than
// dropped, and nothing here can fail.
func Metrics(raw map[string]any) []model.MetricEntry {
	out := make([]model.MetricEntry, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, key := range metricOrder {
		if v, ok := raw[key]; ok {
			out = append(out, MetricEntryOf(key, v))
			seen[key] = true
		}
	}
	rest := make([]string, 0, len(raw))
	for key := range raw {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		out = append(out, MetricEntryOf(key, raw[key]))
	}
	return out
}

// MetricEntryOf normalizes a single metric key/value pair.
func MetricEntryOf(key string, v any) model.MetricEntry {
	label := metricLabels[key]
	if label == "" {
		label = key
	}
	value := metricValue(key, v)
	return model.MetricEntry{
		Key:      key,
		Label:    label,
		Value:    value,
		Progress: ProgressOf(value),
	}
}

// metricValue renders a metric value as a flat display string. Numeric
// values for canonical percentage keys pick up a "%" suffix so they drive
// the progress indicator.
func metricValue(key string, v any) string {
	switch t := v.(type) {
	case nil:
		return Dash
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return Dash
		}
		return s
	case float64:
		s := strconv.FormatFloat(t, 'f', -1, 64)
		if strings.HasSuffix(key, "_pct") {
			s += "%"
		}
		return s
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		s := t.String()
		if strings.HasSuffix(key, "_pct") {
			s += "%"
		}
		return s
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return Dash
		}
		return string(b)
	}
}

// ProgressOf derives a bounded 0-100 progress value from a percentage
// embedded in a display string, or -1 when the string carries none.
func ProgressOf(value string) int {
	idx := strings.IndexByte(value, '%')
	if idx <= 0 {
		return -1
	}
	start := idx
	for start > 0 {
		c := value[start-1]
		if (c >= '0' && c <= '9') || c == '.' {
			start--
			continue
		}
		break
	}
	if start == idx {
		return -1
	}
	f, err := strconv.ParseFloat(value[start:idx], 64)
	if err != nil {
		return -1
	}
	if f < 0 {
		f = 0
	}
	if f > 100 {
		f = 100
	}
	return int(math.Round(f))
}
