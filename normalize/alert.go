package normalize

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/railscope/stationboard/model"
)

// placeholderMessage replaces an empty alert message so the board never
// renders a blank row.
const placeholderMessage = "No details provided"

// alertTimeFormats are the timestamp layouts the source has been seen to
// emit: RFC3339 with and without offset, plus a bare date.
var alertTimeFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Alert converts one raw alert payload into a display-safe model.Alert.
// The input may be a plain string, a JSON-encoded object string, or a
// decoded object. A string that fails to parse as JSON becomes the alert
// message verbatim.
func Alert(raw any) model.Alert {
	switch t := raw.(type) {
	case model.Alert:
		return t
	case string:
		var obj map[string]any
		if err := json.Unmarshal([]byte(t), &obj); err == nil {
			return alertFromMap(obj)
		}
		msg := t
		if strings.TrimSpace(msg) == "" {
			msg = placeholderMessage
		}
		return model.Alert{Message: msg, Level: model.LevelUnknown}
	case map[string]any:
		return alertFromMap(t)
	default:
		msg := strings.TrimSpace(fmt.Sprintf("%v", t))
		if msg == "" || raw == nil {
			msg = placeholderMessage
		}
		return model.Alert{Message: msg, Level: model.LevelUnknown}
	}
}

func alertFromMap(obj map[string]any) model.Alert {
	msg := displayString(obj["message"])
	if msg == Dash {
		msg = placeholderMessage
	}
	return model.Alert{
		Message:   msg,
		Level:     AlertLevelOf(obj["level"]),
		Timestamp: Timestamp(obj["timestamp"]),
	}
}

// AlertLevelOf buckets a raw level value. Anything unrecognized lands in
// the unknown bucket rather than inheriting another level's styling.
func AlertLevelOf(v any) model.AlertLevel {
	s, _ := v.(string)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return model.LevelInfo
	case "warning", "warn":
		return model.LevelWarning
	case "error", "critical", "crit":
		return model.LevelError
	}
	return model.LevelUnknown
}

// Timestamp renders a raw timestamp value as RFC3339, or "" when the value
// is absent or unparseable. An invalid date must never surface as a broken
// artifact on the board.
func Timestamp(v any) string {
	s, _ := v.(string)
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range alertTimeFormats {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.Format(time.RFC3339)
		}
	}
	return ""
}
