package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/railscope/stationboard/engine"
	"github.com/railscope/stationboard/model"
)

// refreshEvery is the UI redraw cadence; the data itself refreshes on the
// scheduler's polling interval.
const refreshEvery = time.Second

type tickMsg time.Time

// Model is the bubbletea model for the station board.
type Model struct {
	sched *engine.Scheduler
	store *engine.Store

	width  int
	height int

	snap model.Snapshot

	trains table.Model
	spin   spinner.Model

	paused   bool
	showHelp bool
}

// NewModel creates the TUI model over a started scheduler.
func NewModel(sched *engine.Scheduler, store *engine.Store) Model {
	cols := []table.Column{
		{Title: "Train", Width: 28},
		{Title: "Scheduled", Width: 10},
		{Title: "Arrival", Width: 10},
		{Title: "Departure", Width: 10},
		{Title: "Platform", Width: 9},
		{Title: "Status", Width: 10},
	}
	t := table.New(
		table.WithColumns(cols),
		table.WithHeight(8),
		table.WithFocused(false),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Bold(true).Foreground(colorCyan).BorderForeground(colorGray)
	ts.Selected = selectedStyle
	t.SetStyles(ts)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = dimStyle

	return Model{
		sched:  sched,
		store:  store,
		snap:   store.Snapshot(),
		trains: t,
		spin:   sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.spin.Tick)
}

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tickMsg:
		if !m.paused {
			m.snap = m.store.Snapshot()
			m.trains.SetRows(trainRows(m.snap.Trains))
		}
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.sched.Dispose()
			return m, tea.Quit
		case "left", "h":
			m.cycleStation(-1)
		case "right", "l":
			m.cycleStation(1)
		case "1", "2", "3", "4", "5", "6":
			idx := int(msg.String()[0] - '1')
			if idx < len(model.Stations) {
				m.sched.SelectStation(model.Stations[idx])
			}
		case "r":
			m.sched.Refresh()
		case " ", "p":
			m.paused = !m.paused
		case "?":
			m.showHelp = !m.showHelp
		}
		return m, nil
	}
	return m, nil
}

// cycleStation moves the selection left or right through the fixed set.
func (m *Model) cycleStation(dir int) {
	idx := model.StationIndex(m.sched.Station())
	if idx < 0 {
		idx = 0
	}
	n := len(model.Stations)
	m.sched.SelectStation(model.Stations[(idx+dir+n)%n])
}

func trainRows(trains []model.TrainRow) []table.Row {
	rows := make([]table.Row, 0, len(trains))
	for _, tr := range trains {
		rows = append(rows, table.Row{
			tr.Name, tr.Scheduled, tr.Arrival, tr.Departure, tr.Platform,
			statusStyle(tr.Status).Render(statusLabel(tr.Status)),
		})
	}
	return rows
}
