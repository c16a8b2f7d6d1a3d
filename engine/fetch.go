package engine

import (
	"context"
	"log"

	"github.com/railscope/stationboard/feed"
	"github.com/railscope/stationboard/model"
)

// Source is the remote telemetry API the scheduler polls. *feed.Client is
// the production implementation; tests substitute their own.
type Source interface {
	Alerts(ctx context.Context, station model.Station) ([]model.Alert, error)
	Schedule(ctx context.Context, station model.Station) ([]model.TrainRow, error)
	Metrics(ctx context.Context, station model.Station) ([]model.MetricEntry, error)
}

// The fetch wrappers below are the per-resource fetchers: one round trip
// each, with every failure (transport, bad shape, timeout) collapsed into
// the fallback catalog. They never return an error; the bool reports
// whether fallback data was substituted.

func (s *Scheduler) fetchAlerts(ctx context.Context, station model.Station) ([]model.Alert, bool) {
	alerts, err := s.source.Alerts(ctx, station)
	if err != nil {
		log.Printf("stationboard: alerts fetch failed for %s: %v", station, err)
		return feed.FallbackAlerts(), true
	}
	return alerts, false
}

func (s *Scheduler) fetchSchedule(ctx context.Context, station model.Station) ([]model.TrainRow, bool) {
	trains, err := s.source.Schedule(ctx, station)
	if err != nil {
		log.Printf("stationboard: schedule fetch failed for %s: %v", station, err)
		return feed.FallbackTrains(), true
	}
	return trains, false
}

func (s *Scheduler) fetchMetrics(ctx context.Context, station model.Station) ([]model.MetricEntry, bool) {
	metrics, err := s.source.Metrics(ctx, station)
	if err != nil {
		log.Printf("stationboard: metrics fetch failed for %s: %v", station, err)
		return feed.FallbackMetrics(), true
	}
	return metrics, false
}
