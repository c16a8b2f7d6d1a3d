package model

// MetricEntry is one station performance metric ready for display.
// Value is always a flat string; structured source values are serialized,
// never stored nested. Progress is a 0-100 bound derived from a percentage
// embedded in Value, or -1 when the value has no percentage form.
type MetricEntry struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Value    string `json:"value"`
	Progress int    `json:"progress"`
}
