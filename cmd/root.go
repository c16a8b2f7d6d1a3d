package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/railscope/stationboard/config"
	"github.com/railscope/stationboard/engine"
	"github.com/railscope/stationboard/feed"
	"github.com/railscope/stationboard/model"
	"github.com/railscope/stationboard/ui"
)

// Version is set at build time via ldflags.
var Version = "0.3.0"

// Options holds CLI configuration.
type Options struct {
	Station    string
	Endpoint   string
	Interval   time.Duration
	WatchMode  bool
	WatchCount int
	JSONMode   bool
	ServeMode  bool
	ListenAddr string
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `stationboard v%s - live railway station telemetry board

Usage:
  stationboard [OPTIONS] [INTERVAL]

Modes:
  (default)         Interactive TUI (bubbletea, fullscreen)
  -watch            CLI output mode, prints to terminal with auto-refresh
  -json             Wait for one complete fetch cycle, print JSON, exit
  -serve            HTTP/WebSocket API server (no TUI)
  -version          Print version and exit

Options:
  -station NAME     Station to monitor (default from config)
  -endpoint URL     Telemetry endpoint base URL (default: %s)
  -interval N       Polling interval in seconds (default: %d)
  -count N          Number of iterations for -watch mode (0 = infinite)
  -addr ADDR        Listen address for -serve mode (default: %s)

Positional:
  INTERVAL          First positional arg sets interval: stationboard 5

Examples:
  stationboard                              TUI, default station
  stationboard -station "Howrah Junction"   TUI, chosen station
  stationboard 10                           TUI, 10s polling
  stationboard -watch -count 3              Three CLI refreshes, then exit
  stationboard -json | jq '.metrics'
  stationboard -serve -addr :8090
  stationboard -version
`, Version, config.Default().Endpoint, config.Default().IntervalSec, config.Default().ListenAddr)
}

// Run parses flags and starts the application.
func Run() error {
	cfg := config.Load()

	var opts Options
	var intervalSec int
	var showVersion bool

	flag.StringVar(&opts.Station, "station", cfg.DefaultStation, "Station to monitor")
	flag.StringVar(&opts.Endpoint, "endpoint", cfg.Endpoint, "Telemetry endpoint base URL")
	flag.IntVar(&intervalSec, "interval", cfg.IntervalSec, "Polling interval in seconds")
	flag.BoolVar(&opts.WatchMode, "watch", false, "CLI output mode (no TUI, prints to terminal)")
	flag.IntVar(&opts.WatchCount, "count", 0, "Number of iterations for -watch (0=infinite)")
	flag.BoolVar(&opts.JSONMode, "json", false, "Print one complete snapshot as JSON and exit")
	flag.BoolVar(&opts.ServeMode, "serve", false, "Run the HTTP/WebSocket API server")
	flag.StringVar(&opts.ListenAddr, "addr", cfg.ListenAddr, "Listen address for -serve mode")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")

	flag.Usage = printUsage
	flag.Parse()

	if showVersion {
		fmt.Printf("stationboard v%s\n", Version)
		return nil
	}

	// Support positional arg for interval: `stationboard 5` = `stationboard -interval 5`
	if args := flag.Args(); len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			intervalSec = n
		}
	}
	opts.Interval = time.Duration(intervalSec) * time.Second

	station := model.Station(opts.Station)
	if !model.ValidStation(station) {
		names := make([]string, len(model.Stations))
		for i, s := range model.Stations {
			names[i] = string(s)
		}
		fmt.Fprintf(os.Stderr, "Error: unknown station %q\n", opts.Station)
		fmt.Fprintf(os.Stderr, "Valid stations: %s\n\n", strings.Join(names, ", "))
		printUsage()
		os.Exit(1)
	}

	store := engine.NewStore()
	source := feed.NewClient(opts.Endpoint)
	sched := engine.NewScheduler(source, store, opts.Interval)

	if opts.ServeMode {
		return runServe(sched, store, station, opts)
	}

	if opts.JSONMode {
		return runJSON(sched, store, station)
	}

	if opts.WatchMode {
		return runWatch(sched, store, station, opts)
	}

	sched.Start(station)
	defer sched.Dispose()

	p := tea.NewProgram(ui.NewModel(sched, store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// runJSON waits for one complete fetch cycle and prints the snapshot.
func runJSON(sched *engine.Scheduler, store *engine.Store, station model.Station) error {
	sub, cancel := store.Subscribe()
	defer cancel()

	sched.Start(station)
	defer sched.Dispose()

	deadline := time.After(30 * time.Second)
	for {
		select {
		case snap := <-sub:
			if snap.Loading() {
				continue
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		case <-deadline:
			return fmt.Errorf("timed out waiting for a complete fetch cycle")
		}
	}
}
