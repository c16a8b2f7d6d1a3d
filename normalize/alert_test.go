package normalize

import (
	"testing"

	"github.com/railscope/stationboard/model"
)

func TestAlertMalformedStringsKeepRawMessage(t *testing.T) {
	cases := []string{
		"Track circuit failure near platform 4",
		"{broken json",
		"]]]]",
		"92",
		"Signal failure: {code: 7}",
	}

	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			got := Alert(raw)
			if got.Message != raw {
				t.Errorf("Alert(%q).Message = %q, want raw input", raw, got.Message)
			}
			if got.Level != model.LevelUnknown {
				t.Errorf("Alert(%q).Level = %v, want unknown", raw, got.Level)
			}
		})
	}
}

func TestAlertStructured(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want model.Alert
	}{
		{
			"object with all fields",
			map[string]any{"message": "Fog advisory", "level": "warning", "timestamp": "2026-01-12T06:30:00Z"},
			model.Alert{Message: "Fog advisory", Level: model.LevelWarning, Timestamp: "2026-01-12T06:30:00Z"},
		},
		{
			"json-encoded object string",
			`{"message":"Platform change for 12301","level":"info"}`,
			model.Alert{Message: "Platform change for 12301", Level: model.LevelInfo},
		},
		{
			"critical maps to error",
			map[string]any{"message": "Derailment drill", "level": "critical"},
			model.Alert{Message: "Derailment drill", Level: model.LevelError},
		},
		{
			"unknown level bucket",
			map[string]any{"message": "hm", "level": "purple"},
			model.Alert{Message: "hm", Level: model.LevelUnknown},
		},
		{
			"missing message gets placeholder",
			map[string]any{"level": "info"},
			model.Alert{Message: placeholderMessage, Level: model.LevelInfo},
		},
		{
			"invalid timestamp renders empty",
			map[string]any{"message": "x", "timestamp": "not-a-date"},
			model.Alert{Message: "x", Level: model.LevelUnknown},
		},
		{
			"naive timestamp normalized to RFC3339",
			map[string]any{"message": "x", "timestamp": "2026-01-12T06:30:00"},
			model.Alert{Message: "x", Level: model.LevelUnknown, Timestamp: "2026-01-12T06:30:00Z"},
		},
		{
			"empty string input",
			"",
			model.Alert{Message: placeholderMessage, Level: model.LevelUnknown},
		},
		{
			"nil input",
			nil,
			model.Alert{Message: placeholderMessage, Level: model.LevelUnknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Alert(tt.raw); got != tt.want {
				t.Errorf("Alert(%v) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestAlertIdempotent(t *testing.T) {
	inputs := []any{
		"plain text alert",
		map[string]any{"message": "Fog advisory", "level": "warning", "timestamp": "2026-01-12T06:30:00+05:30"},
		`{"message":"ok","level":"info"}`,
	}
	for _, raw := range inputs {
		once := Alert(raw)
		twice := Alert(once)
		if once != twice {
			t.Errorf("Alert not idempotent: %+v != %+v", once, twice)
		}
	}
}
