package model

// TrainStatus buckets a train's running state for display styling.
type TrainStatus int

const (
	StatusUnknown TrainStatus = iota
	StatusOnTime
	StatusDelayed
	StatusCancelled
	StatusEarly
)

func (s TrainStatus) String() string {
	switch s {
	case StatusOnTime:
		return "on_time"
	case StatusDelayed:
		return "delayed"
	case StatusCancelled:
		return "cancelled"
	case StatusEarly:
		return "early"
	}
	return "unknown"
}

// MarshalJSON emits the status as its display string.
func (s TrainStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// TrainRow is one line of the station schedule board. All display fields
// hold a "-" placeholder rather than an empty string when the source had
// nothing for them.
type TrainRow struct {
	Name      string      `json:"name"`
	Scheduled string      `json:"scheduled"`
	Arrival   string      `json:"arrival"`
	Departure string      `json:"departure"`
	Platform  string      `json:"platform"`
	Status    TrainStatus `json:"status"`
}
