package engine

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/railscope/stationboard/feed"
	"github.com/railscope/stationboard/model"
)

// stubSource lets each test script the remote API per resource.
type stubSource struct {
	alertsFn   func(ctx context.Context, station model.Station) ([]model.Alert, error)
	scheduleFn func(ctx context.Context, station model.Station) ([]model.TrainRow, error)
	metricsFn  func(ctx context.Context, station model.Station) ([]model.MetricEntry, error)
}

func (s *stubSource) Alerts(ctx context.Context, station model.Station) ([]model.Alert, error) {
	if s.alertsFn == nil {
		return []model.Alert{}, nil
	}
	return s.alertsFn(ctx, station)
}

func (s *stubSource) Schedule(ctx context.Context, station model.Station) ([]model.TrainRow, error) {
	if s.scheduleFn == nil {
		return []model.TrainRow{}, nil
	}
	return s.scheduleFn(ctx, station)
}

func (s *stubSource) Metrics(ctx context.Context, station model.Station) ([]model.MetricEntry, error) {
	if s.metricsFn == nil {
		return []model.MetricEntry{}, nil
	}
	return s.metricsFn(ctx, station)
}

func trainsFor(station model.Station) []model.TrainRow {
	return []model.TrainRow{{
		Name: fmt.Sprintf("local service at %s", station), Scheduled: "09:00",
		Arrival: "09:00", Departure: "09:05", Platform: "1", Status: model.StatusOnTime,
	}}
}

// waitSnapshot drains store notifications until cond holds or the test
// times out.
func waitSnapshot(t *testing.T, ch <-chan model.Snapshot, what string, cond func(model.Snapshot) bool) model.Snapshot {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap := <-ch:
			if cond(snap) {
				return snap
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", what)
		}
	}
}

// A slow schedule response for the previously selected station must not
// overwrite data already merged for the newly selected one.
func TestStaleEpochResultDiscarded(t *testing.T) {
	release := make(chan struct{})
	src := &stubSource{
		scheduleFn: func(ctx context.Context, station model.Station) ([]model.TrainRow, error) {
			if station == "Kanpur Central" {
				<-release
			}
			return trainsFor(station), nil
		},
	}
	store := NewStore()
	sub, cancel := store.Subscribe()
	defer cancel()

	sched := NewScheduler(src, store, time.Hour)
	defer sched.Dispose()
	sched.Start("Kanpur Central")

	// Switch away while the Kanpur schedule fetch is still outstanding.
	sched.SelectStation("Lucknow")
	waitSnapshot(t, sub, "Lucknow trains", func(s model.Snapshot) bool {
		return len(s.Trains) == 1 && s.Trains[0].Name == "local service at Lucknow"
	})

	// Let the stale Kanpur fetch finish; its completion must only clear the
	// loading flag, never the data.
	close(release)
	waitSnapshot(t, sub, "stale completion", func(s model.Snapshot) bool {
		return !s.LoadingTrains
	})
	time.Sleep(50 * time.Millisecond) // let the stale goroutine fully settle

	final := store.Snapshot()
	if got := final.Trains[0].Name; got != "local service at Lucknow" {
		t.Fatalf("stale Kanpur result overwrote store: trains = %q", got)
	}
	if final.Station != "Lucknow" {
		t.Fatalf("station = %q, want Lucknow", final.Station)
	}
}

// A failing alerts endpoint substitutes the fallback catalog exactly and
// still lowers the loading flag.
func TestFetchFailureUsesFallback(t *testing.T) {
	src := &stubSource{
		alertsFn: func(ctx context.Context, station model.Station) ([]model.Alert, error) {
			return nil, errors.New("unexpected status 500")
		},
	}
	store := NewStore()
	sub, cancel := store.Subscribe()
	defer cancel()

	sched := NewScheduler(src, store, time.Hour)
	defer sched.Dispose()
	sched.Start(model.DefaultStation)

	snap := waitSnapshot(t, sub, "cycle completion", func(s model.Snapshot) bool {
		return !s.Loading()
	})

	if !snap.AlertsFallback {
		t.Error("AlertsFallback not set")
	}
	if snap.LoadingAlerts {
		t.Error("LoadingAlerts still set after fallback")
	}
	if !reflect.DeepEqual(snap.Alerts, feed.FallbackAlerts()) {
		t.Errorf("alerts = %+v, want fallback catalog", snap.Alerts)
	}
	if snap.Degraded {
		t.Error("degraded flag set with only one resource on fallback")
	}
}

// All three resources on fallback raises the degraded flag; the next fully
// successful cycle clears it.
func TestDegradedSetAndCleared(t *testing.T) {
	var failing atomic.Bool
	failing.Store(true)
	fail := func() error {
		if failing.Load() {
			return errors.New("connection refused")
		}
		return nil
	}
	src := &stubSource{
		alertsFn: func(ctx context.Context, station model.Station) ([]model.Alert, error) {
			return []model.Alert{{Message: "ok", Level: model.LevelInfo}}, fail()
		},
		scheduleFn: func(ctx context.Context, station model.Station) ([]model.TrainRow, error) {
			return trainsFor(station), fail()
		},
		metricsFn: func(ctx context.Context, station model.Station) ([]model.MetricEntry, error) {
			return []model.MetricEntry{}, fail()
		},
	}
	store := NewStore()
	sub, cancel := store.Subscribe()
	defer cancel()

	sched := NewScheduler(src, store, time.Hour)
	defer sched.Dispose()
	sched.Start(model.DefaultStation)

	snap := waitSnapshot(t, sub, "degraded cycle", func(s model.Snapshot) bool {
		return !s.Loading()
	})
	if !snap.Degraded || snap.LastError == "" {
		t.Fatalf("expected degraded snapshot, got %+v", snap)
	}

	failing.Store(false)
	sched.Refresh()
	snap = waitSnapshot(t, sub, "recovery cycle", func(s model.Snapshot) bool {
		return !s.Loading() && !s.Degraded
	})
	if snap.LastError != "" {
		t.Errorf("LastError not cleared on recovery: %q", snap.LastError)
	}
	if snap.AlertsFallback || snap.TrainsFallback || snap.MetricsFallback {
		t.Errorf("fallback markers not cleared: %+v", snap)
	}
}

// Dispose stops the timer: no new epoch, no further fetches.
func TestDisposeStopsPolling(t *testing.T) {
	var calls atomic.Int64
	src := &stubSource{
		metricsFn: func(ctx context.Context, station model.Station) ([]model.MetricEntry, error) {
			calls.Add(1)
			return []model.MetricEntry{}, nil
		},
	}
	store := NewStore()
	sched := NewScheduler(src, store, time.Second)
	sched.Start(model.DefaultStation)

	// First epoch fires immediately.
	waitFor(t, func() bool { return calls.Load() >= 1 })
	sched.Dispose()
	before := calls.Load()

	// Well past where the next tick would have fired.
	time.Sleep(1500 * time.Millisecond)
	if after := calls.Load(); after != before {
		t.Fatalf("fetches after dispose: %d -> %d", before, after)
	}

	// Disposed scheduler ignores further control calls.
	sched.Refresh()
	sched.SelectStation("Lucknow")
	time.Sleep(50 * time.Millisecond)
	if after := calls.Load(); after != before {
		t.Fatal("control calls after dispose issued fetches")
	}
}

// An in-flight fetch at dispose time completes but only clears its loading
// flag.
func TestDisposeDiscardsInFlight(t *testing.T) {
	release := make(chan struct{})
	src := &stubSource{
		scheduleFn: func(ctx context.Context, station model.Station) ([]model.TrainRow, error) {
			<-release
			return trainsFor(station), nil
		},
	}
	store := NewStore()
	sub, cancel := store.Subscribe()
	defer cancel()

	sched := NewScheduler(src, store, time.Hour)
	sched.Start(model.DefaultStation)
	sched.Dispose()

	close(release)
	waitSnapshot(t, sub, "post-dispose completion", func(s model.Snapshot) bool {
		return !s.LoadingTrains
	})
	if got := store.Snapshot().Trains; len(got) != 0 {
		t.Fatalf("post-dispose result written to store: %+v", got)
	}
}

func TestLoadingFlagsLifecycle(t *testing.T) {
	release := make(chan struct{})
	gate := func(ctx context.Context) {
		select {
		case <-release:
		case <-ctx.Done():
		}
	}
	src := &stubSource{
		alertsFn: func(ctx context.Context, station model.Station) ([]model.Alert, error) {
			gate(ctx)
			return []model.Alert{}, nil
		},
		scheduleFn: func(ctx context.Context, station model.Station) ([]model.TrainRow, error) {
			gate(ctx)
			return []model.TrainRow{}, nil
		},
		metricsFn: func(ctx context.Context, station model.Station) ([]model.MetricEntry, error) {
			gate(ctx)
			return []model.MetricEntry{}, nil
		},
	}
	store := NewStore()
	sub, cancel := store.Subscribe()
	defer cancel()

	sched := NewScheduler(src, store, time.Hour)
	defer sched.Dispose()
	sched.Start(model.DefaultStation)

	snap := waitSnapshot(t, sub, "loading flags up", func(s model.Snapshot) bool {
		return s.LoadingAlerts && s.LoadingTrains && s.LoadingMetrics
	})
	if snap.Epoch != 1 {
		t.Errorf("first epoch = %d, want 1", snap.Epoch)
	}

	close(release)
	waitSnapshot(t, sub, "loading flags down", func(s model.Snapshot) bool {
		return !s.Loading()
	})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never met")
}
