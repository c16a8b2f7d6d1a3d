package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/railscope/stationboard/engine"
	"github.com/railscope/stationboard/model"
	"github.com/railscope/stationboard/server"
)

// runServe runs the HTTP/WebSocket API server until SIGINT/SIGTERM.
func runServe(sched *engine.Scheduler, store *engine.Store, station model.Station, opts Options) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched.Start(station)
	defer sched.Dispose()

	srv := server.New(store, sched, opts.ListenAddr)

	log.Printf("stationboard: serving API on %s", opts.ListenAddr)
	log.Printf("stationboard: polling %s every %s", opts.Endpoint, opts.Interval)

	return srv.Run(ctx)
}
