// Package engine is the station telemetry synchronization layer: an
// epoch-tagged polling scheduler, three resource fetchers that degrade to
// fallback data, and the store holding the merged dashboard snapshot.
package engine

import (
	"sync"
	"time"

	"github.com/railscope/stationboard/model"
)

// Resource identifies one of the three independently polled feeds.
type Resource int

const (
	ResourceAlerts Resource = iota
	ResourceSchedule
	ResourceMetrics
)

func (r Resource) String() string {
	switch r {
	case ResourceAlerts:
		return "alerts"
	case ResourceSchedule:
		return "schedule"
	case ResourceMetrics:
		return "metrics"
	}
	return "unknown"
}

// Store owns the merged dashboard snapshot. Data writes come only from the
// scheduler's fetch completions under the current epoch; reads hand out
// copies so renderers can never corrupt shared state.
type Store struct {
	mu      sync.RWMutex
	snap    model.Snapshot
	subs    map[int]chan model.Snapshot
	nextSub int

	// cycle accounting for the degraded flag
	merged   int
	fellBack int
}

// NewStore creates a store with an empty snapshot.
func NewStore() *Store {
	return &Store{
		snap: model.Snapshot{
			Alerts:  []model.Alert{},
			Trains:  []model.TrainRow{},
			Metrics: []model.MetricEntry{},
		},
		subs: make(map[int]chan model.Snapshot),
	}
}

// Snapshot returns a copy of the current dashboard state.
func (st *Store) Snapshot() model.Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return cloneSnapshot(st.snap)
}

// Subscribe returns a channel that receives a snapshot copy after every
// store mutation, plus a cancel func. Slow subscribers lose intermediate
// updates rather than blocking the write path.
func (st *Store) Subscribe() (<-chan model.Snapshot, func()) {
	st.mu.Lock()
	defer st.mu.Unlock()
	id := st.nextSub
	st.nextSub++
	ch := make(chan model.Snapshot, 16)
	st.subs[id] = ch
	cancel := func() {
		st.mu.Lock()
		defer st.mu.Unlock()
		if sub, ok := st.subs[id]; ok {
			delete(st.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// BeginCycle marks the start of a new fetch epoch: all three loading flags
// go up and the cycle accounting resets. Existing data stays on the board
// until the new results replace it.
func (st *Store) BeginCycle(station model.Station, epoch uint64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.snap.Station = station
	st.snap.Epoch = epoch
	st.snap.LoadingAlerts = true
	st.snap.LoadingTrains = true
	st.snap.LoadingMetrics = true
	st.merged = 0
	st.fellBack = 0
	st.notifyLocked()
}

// SetAlerts merges an alerts completion for the current epoch.
func (st *Store) SetAlerts(alerts []model.Alert, fallback bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.snap.Alerts = alerts
	st.snap.AlertsFallback = fallback
	st.snap.LoadingAlerts = false
	st.finishMergeLocked(fallback)
}

// SetTrains merges a schedule completion for the current epoch.
func (st *Store) SetTrains(trains []model.TrainRow, fallback bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.snap.Trains = trains
	st.snap.TrainsFallback = fallback
	st.snap.LoadingTrains = false
	st.finishMergeLocked(fallback)
}

// SetMetrics merges a metrics completion for the current epoch.
func (st *Store) SetMetrics(metrics []model.MetricEntry, fallback bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.snap.Metrics = metrics
	st.snap.MetricsFallback = fallback
	st.snap.LoadingMetrics = false
	st.finishMergeLocked(fallback)
}

// ClearLoading drops a resource's loading flag without touching its data.
// Used for completions discarded as stale: the flag transition is
// unconditional so a superseded fetch can never leave a stuck spinner.
func (st *Store) ClearLoading(r Resource) {
	st.mu.Lock()
	defer st.mu.Unlock()
	switch r {
	case ResourceAlerts:
		st.snap.LoadingAlerts = false
	case ResourceSchedule:
		st.snap.LoadingTrains = false
	case ResourceMetrics:
		st.snap.LoadingMetrics = false
	}
	st.notifyLocked()
}

// finishMergeLocked updates cycle accounting after a merge. When all three
// resources of one epoch have landed: every one on fallback raises the
// degraded flag; a fully successful cycle clears it; mixed cycles leave it
// unchanged.
func (st *Store) finishMergeLocked(fallback bool) {
	st.merged++
	if fallback {
		st.fellBack++
	}
	if st.merged == 3 {
		switch st.fellBack {
		case 3:
			st.snap.Degraded = true
			st.snap.LastError = "telemetry source unreachable; showing fallback data"
		case 0:
			st.snap.Degraded = false
			st.snap.LastError = ""
		}
	}
	st.snap.UpdatedAt = time.Now()
	st.notifyLocked()
}

func (st *Store) notifyLocked() {
	snap := cloneSnapshot(st.snap)
	for _, sub := range st.subs {
		select {
		case sub <- snap:
		default:
		}
	}
}

func cloneSnapshot(s model.Snapshot) model.Snapshot {
	out := s
	out.Alerts = append([]model.Alert(nil), s.Alerts...)
	out.Trains = append([]model.TrainRow(nil), s.Trains...)
	out.Metrics = append([]model.MetricEntry(nil), s.Metrics...)
	return out
}
