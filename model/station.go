package model

// Station identifies one railway station from the fixed operator set.
// All three telemetry resources are scoped to the selected station.
type Station string

// Stations lists the stations the dashboard can be scoped to.
var Stations = []Station{
	"New Delhi",
	"Kanpur Central",
	"Lucknow",
	"Varanasi Junction",
	"Howrah Junction",
	"Mumbai CSMT",
}

// DefaultStation is selected at startup before the operator picks one.
const DefaultStation Station = "New Delhi"

// ValidStation reports whether s is in the fixed station set.
func ValidStation(s Station) bool {
	for _, st := range Stations {
		if st == s {
			return true
		}
	}
	return false
}

// StationIndex returns the position of s in Stations, or -1.
func StationIndex(s Station) int {
	for i, st := range Stations {
		if st == s {
			return i
		}
	}
	return -1
}
