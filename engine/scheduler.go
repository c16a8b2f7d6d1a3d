package engine

import (
	"context"
	"sync"
	"time"

	"github.com/railscope/stationboard/model"
)

const (
	// DefaultInterval is the polling cadence when none is configured.
	DefaultInterval = 30 * time.Second

	// fetchTimeout bounds one epoch's fetches; a timeout degrades to
	// fallback via the fetch wrappers.
	fetchTimeout = 10 * time.Second
)

type schedState int

const (
	stateIdle schedState = iota
	statePolling
	stateDisposed
)

// Scheduler owns the polling cadence and the epoch counter. One epoch is
// one set of three concurrent fetches for one station; each timer tick and
// each station change starts a new epoch. A completion is merged into the
// store only while its epoch is still current, which keeps a slow response
// for a previously selected station from clobbering newer data.
type Scheduler struct {
	mu       sync.Mutex
	source   Source
	store    *Store
	interval time.Duration

	state   schedState
	epoch   uint64
	station model.Station
	ticker  *time.Ticker
	done    chan struct{}
}

// NewScheduler creates a scheduler polling source into store. Intervals
// below one second are raised to the default.
func NewScheduler(source Source, store *Store, interval time.Duration) *Scheduler {
	if interval < time.Second {
		interval = DefaultInterval
	}
	return &Scheduler{
		source:   source,
		store:    store,
		interval: interval,
	}
}

// Start selects the initial station, fires the first fetch epoch
// immediately, and arms the polling timer. Calling Start twice is a no-op.
func (s *Scheduler) Start(station model.Station) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateIdle {
		return
	}
	s.state = statePolling
	s.station = station
	s.ticker = time.NewTicker(s.interval)
	s.done = make(chan struct{})
	go s.loop()
	s.beginEpochLocked()
}

func (s *Scheduler) loop() {
	for {
		select {
		case <-s.ticker.C:
			s.mu.Lock()
			if s.state == statePolling {
				s.beginEpochLocked()
			}
			s.mu.Unlock()
		case <-s.done:
			return
		}
	}
}

// SelectStation switches the dashboard scope. The current epoch is
// superseded immediately; in-flight fetches for the old station complete
// but their results are discarded by epoch comparison.
func (s *Scheduler) SelectStation(station model.Station) {
	if !model.ValidStation(station) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != statePolling {
		return
	}
	s.station = station
	s.beginEpochLocked()
}

// Refresh forces a new fetch epoch for the current station.
func (s *Scheduler) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != statePolling {
		return
	}
	s.beginEpochLocked()
}

// Station returns the currently selected station.
func (s *Scheduler) Station() model.Station {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.station
}

// Dispose stops the timer permanently; no further epochs are created.
// Cancellation is soft: in-flight fetches run to completion but land in a
// superseded epoch, so they can only clear loading flags, never write data.
func (s *Scheduler) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == stateDisposed {
		return
	}
	if s.state == statePolling {
		s.ticker.Stop()
		close(s.done)
		// Supersede anything still in flight.
		s.epoch++
	}
	s.state = stateDisposed
}

// beginEpochLocked starts a new fetch epoch for the current station. The
// three resources are fetched concurrently and merge independently, in
// whatever order they complete.
func (s *Scheduler) beginEpochLocked() {
	s.epoch++
	epoch, station := s.epoch, s.station
	s.store.BeginCycle(station, epoch)

	go s.run(epoch, ResourceAlerts, station)
	go s.run(epoch, ResourceSchedule, station)
	go s.run(epoch, ResourceMetrics, station)
}

// run performs one resource fetch and merges or discards the result. The
// epoch check and the store write happen under the scheduler lock, so a
// stale completion can never interleave past a newer one.
func (s *Scheduler) run(epoch uint64, r Resource, station model.Station) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	var (
		alerts   []model.Alert
		trains   []model.TrainRow
		metrics  []model.MetricEntry
		fallback bool
	)
	switch r {
	case ResourceAlerts:
		alerts, fallback = s.fetchAlerts(ctx, station)
	case ResourceSchedule:
		trains, fallback = s.fetchSchedule(ctx, station)
	case ResourceMetrics:
		metrics, fallback = s.fetchMetrics(ctx, station)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		// Stale result: the data is discarded, but the loading flag still
		// transitions so the board never shows a stuck spinner.
		s.store.ClearLoading(r)
		return
	}
	switch r {
	case ResourceAlerts:
		s.store.SetAlerts(alerts, fallback)
	case ResourceSchedule:
		s.store.SetTrains(trains, fallback)
	case ResourceMetrics:
		s.store.SetMetrics(metrics, fallback)
	}
}
