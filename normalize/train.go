package normalize

import (
	"strings"

	"github.com/railscope/stationboard/model"
)

// TrainRow converts one raw schedule entry into a display-safe model.TrainRow.
// The train name comes from "name" or "train_id", whichever is present and
// non-empty first; every other display field coerces to a string with a
// dash placeholder.
func TrainRow(raw any) model.TrainRow {
	switch t := raw.(type) {
	case model.TrainRow:
		return t
	case map[string]any:
		name := displayString(t["name"])
		if name == Dash {
			name = displayString(t["train_id"])
		}
		return model.TrainRow{
			Name:      name,
			Scheduled: displayString(t["scheduled"]),
			Arrival:   displayString(t["arrival"]),
			Departure: displayString(t["departure"]),
			Platform:  displayString(t["platform"]),
			Status:    TrainStatusOf(t["status"]),
		}
	default:
		return model.TrainRow{
			Name:      Dash,
			Scheduled: Dash,
			Arrival:   Dash,
			Departure: Dash,
			Platform:  Dash,
			Status:    model.StatusUnknown,
		}
	}
}

// TrainStatusOf buckets a raw status value. Matching is case-insensitive
// and ignores spaces, underscores, and hyphens, so "On Time", "on_time"
// and "ontime" all land in the same bucket. Unmatched values go to the
// neutral unknown bucket.
func TrainStatusOf(v any) model.TrainStatus {
	s, _ := v.(string)
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-':
			return -1
		}
		return r
	}, s)
	switch s {
	case "ontime":
		return model.StatusOnTime
	case "delayed", "late":
		return model.StatusDelayed
	case "cancelled", "canceled":
		return model.StatusCancelled
	case "early":
		return model.StatusEarly
	}
	return model.StatusUnknown
}
