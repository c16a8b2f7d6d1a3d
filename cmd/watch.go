package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/railscope/stationboard/engine"
	"github.com/railscope/stationboard/model"
)

// ANSI color/style codes for -watch output.
const (
	R = "\033[0m" // reset
	B = "\033[1m" // bold
	D = "\033[2m" // dim

	FRed = "\033[31m"
	FYel = "\033[33m"
	FCyn = "\033[36m"

	FBRed = "\033[91m"
	FBGrn = "\033[92m"
	FBYel = "\033[93m"
	FBWht = "\033[97m"

	BBlu = "\033[44m"
)

func hr() string {
	return D + strings.Repeat("─", 78) + R
}

func levelTag(l model.AlertLevel) string {
	switch l {
	case model.LevelError:
		return B + FBRed + "[error]" + R
	case model.LevelWarning:
		return FBYel + "[warning]" + R
	case model.LevelInfo:
		return FBGrn + "[info]" + R
	}
	return D + "[unknown]" + R
}

func statusTag(s model.TrainStatus) string {
	switch s {
	case model.StatusOnTime, model.StatusEarly:
		return FBGrn + s.String() + R
	case model.StatusDelayed:
		return FBYel + s.String() + R
	case model.StatusCancelled:
		return B + FBRed + s.String() + R
	}
	return D + s.String() + R
}

// runWatch prints the board to the terminal on every polling interval.
func runWatch(sched *engine.Scheduler, store *engine.Store, station model.Station, opts Options) error {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	sub, cancel := store.Subscribe()
	defer cancel()

	sched.Start(station)
	defer sched.Dispose()

	iteration := 0
	for {
		select {
		case <-sig:
			fmt.Printf("\n%sStopped.%s\n", D, R)
			return nil
		case snap := <-sub:
			if snap.Loading() {
				continue
			}
			iteration++

			fmt.Print("\033[2J\033[H")

			ts := snap.UpdatedAt.Format("15:04:05")
			iter := fmt.Sprintf("#%d", iteration)
			if opts.WatchCount > 0 {
				iter = fmt.Sprintf("#%d/%d", iteration, opts.WatchCount)
			}
			fmt.Printf(" %s%s stationboard v%s %s  %s  %s%s%s  %s%s%s  %s\n",
				B, BBlu+FBWht, Version, R,
				B+ts+R,
				FCyn, snap.Station, R,
				D, opts.Interval, R,
				D+iter+R)
			fmt.Println(hr())

			if snap.Degraded {
				fmt.Printf(" %s%sTELEMETRY SOURCE UNREACHABLE: showing fallback data%s\n", B, FBRed, R)
				fmt.Println(hr())
			}

			watchAlerts(snap)
			watchSchedule(snap)
			watchMetrics(snap)

			fmt.Println(hr())
			fmt.Printf(" %sCtrl+C%s to quit", B, R)
			if opts.WatchCount > 0 {
				fmt.Printf("  %s(%d of %d)%s", D, iteration, opts.WatchCount, R)
			}
			fmt.Println()

			if opts.WatchCount > 0 && iteration >= opts.WatchCount {
				return nil
			}
		}
	}
}

func watchAlerts(snap model.Snapshot) {
	header := B + "Alerts" + R
	if snap.AlertsFallback {
		header += "  " + FYel + "(fallback)" + R
	}
	fmt.Printf(" %s\n", header)
	if len(snap.Alerts) == 0 {
		fmt.Printf("   %sNo active alerts%s\n", D, R)
	}
	for _, a := range snap.Alerts {
		line := fmt.Sprintf("   %s %s", levelTag(a.Level), a.Message)
		if a.Timestamp != "" {
			if t, err := time.Parse(time.RFC3339, a.Timestamp); err == nil {
				line += fmt.Sprintf("  %s%s%s", D, t.Format("15:04"), R)
			}
		}
		fmt.Println(line)
	}
	fmt.Println()
}

func watchSchedule(snap model.Snapshot) {
	header := B + "Schedule" + R
	if snap.TrainsFallback {
		header += "  " + FYel + "(fallback)" + R
	}
	fmt.Printf(" %s\n", header)
	if len(snap.Trains) == 0 {
		fmt.Printf("   %sNo trains for this station%s\n", D, R)
		fmt.Println()
		return
	}
	fmt.Printf("   %s%-28s %-10s %-10s %-10s %-9s %s%s\n",
		D, "Train", "Scheduled", "Arrival", "Departure", "Platform", "Status", R)
	for _, tr := range snap.Trains {
		fmt.Printf("   %-28s %-10s %-10s %-10s %-9s %s\n",
			tr.Name, tr.Scheduled, tr.Arrival, tr.Departure, tr.Platform, statusTag(tr.Status))
	}
	fmt.Println()
}

func watchMetrics(snap model.Snapshot) {
	header := B + "Performance" + R
	if snap.MetricsFallback {
		header += "  " + FYel + "(fallback)" + R
	}
	fmt.Printf(" %s\n", header)
	if len(snap.Metrics) == 0 {
		fmt.Printf("   %sNo metrics reported%s\n", D, R)
	}
	for _, e := range snap.Metrics {
		line := fmt.Sprintf("   %-24s %8s", e.Label, e.Value)
		if e.Progress >= 0 {
			line += "  " + watchBar(e.Progress)
		}
		fmt.Println(line)
	}
	fmt.Println()
}

func watchBar(pct int) string {
	const width = 20
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	color := FBGrn
	switch {
	case pct < 50:
		color = FBRed
	case pct < 80:
		color = FBYel
	}
	return color + bar + R
}
