package feed

import (
	"testing"

	"github.com/railscope/stationboard/normalize"
)

// The fallback catalog is a contract: it must render without any further
// normalization, so feeding it back through the normalizer must be a no-op.
func TestFallbackIsPreValidated(t *testing.T) {
	for i, a := range FallbackAlerts() {
		if got := normalize.Alert(a); got != a {
			t.Errorf("fallback alert %d changes under normalization: %+v -> %+v", i, a, got)
		}
		if a.Message == "" {
			t.Errorf("fallback alert %d has empty message", i)
		}
	}
	for i, row := range FallbackTrains() {
		if got := normalize.TrainRow(row); got != row {
			t.Errorf("fallback train %d changes under normalization: %+v -> %+v", i, row, got)
		}
	}
	for i, m := range FallbackMetrics() {
		if got := normalize.MetricEntryOf(m.Key, m.Value); got != m {
			t.Errorf("fallback metric %d changes under normalization: %+v -> %+v", i, m, got)
		}
	}
}

func TestFallbackReturnsFreshCopies(t *testing.T) {
	a := FallbackAlerts()
	a[0].Message = "mutated"
	if FallbackAlerts()[0].Message == "mutated" {
		t.Fatal("FallbackAlerts shares state between calls")
	}
}
