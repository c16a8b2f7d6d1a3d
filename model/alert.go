package model

// AlertLevel classifies an alert for display styling.
type AlertLevel int

const (
	LevelUnknown AlertLevel = iota
	LevelInfo
	LevelWarning
	LevelError
)

func (l AlertLevel) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	}
	return "unknown"
}

// MarshalJSON emits the level as its display string so web renderers
// never see bare enum ordinals.
func (l AlertLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// Alert is one operational advisory for the selected station.
// Message is never empty after normalization; Timestamp is RFC3339 or
// empty when the source supplied none (or an unparseable one).
type Alert struct {
	Message   string     `json:"message"`
	Level     AlertLevel `json:"level"`
	Timestamp string     `json:"timestamp,omitempty"`
}
