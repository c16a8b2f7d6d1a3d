package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/railscope/stationboard/model"
)

const barWidth = 20

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if m.snap.Degraded {
		b.WriteString(critStyle.Render(" TELEMETRY SOURCE UNREACHABLE: showing fallback data "))
		b.WriteString("\n")
	}
	b.WriteString(m.renderAlerts())
	b.WriteString("\n")
	b.WriteString(m.renderSchedule())
	b.WriteString("\n")
	b.WriteString(m.renderMetrics())
	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.renderHelp())
	} else {
		b.WriteString(m.renderStatusBar())
	}
	return b.String()
}

func (m Model) renderHeader() string {
	var parts []string
	for i, st := range model.Stations {
		name := fmt.Sprintf("%d:%s", i+1, st)
		if st == m.snap.Station {
			parts = append(parts, selectedStyle.Render(" "+name+" "))
		} else {
			parts = append(parts, dimStyle.Render(" "+name+" "))
		}
	}
	title := titleStyle.Render("stationboard")
	return title + "  " + strings.Join(parts, "")
}

func (m Model) renderAlerts() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Alerts"))
	if m.snap.LoadingAlerts {
		b.WriteString("  " + m.spin.View() + dimStyle.Render("fetching"))
	}
	if m.snap.AlertsFallback {
		b.WriteString("  " + fallbackStyle.Render("fallback"))
	}
	b.WriteString("\n")

	if len(m.snap.Alerts) == 0 {
		b.WriteString(dimStyle.Render("No active alerts"))
	}
	for _, a := range m.snap.Alerts {
		line := levelStyle(a.Level).Render("["+a.Level.String()+"]") + " " + valueStyle.Render(a.Message)
		if a.Timestamp != "" {
			if ts, err := time.Parse(time.RFC3339, a.Timestamp); err == nil {
				line += dimStyle.Render("  " + ts.Format("15:04"))
			}
		}
		b.WriteString(line + "\n")
	}
	return m.panel().Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderSchedule() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Schedule"))
	if m.snap.LoadingTrains {
		b.WriteString("  " + m.spin.View() + dimStyle.Render("fetching"))
	}
	if m.snap.TrainsFallback {
		b.WriteString("  " + fallbackStyle.Render("fallback"))
	}
	b.WriteString("\n")
	if len(m.snap.Trains) == 0 {
		b.WriteString(dimStyle.Render("No trains for this station"))
	} else {
		b.WriteString(m.trains.View())
	}
	return m.panel().Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderMetrics() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Performance"))
	if m.snap.LoadingMetrics {
		b.WriteString("  " + m.spin.View() + dimStyle.Render("fetching"))
	}
	if m.snap.MetricsFallback {
		b.WriteString("  " + fallbackStyle.Render("fallback"))
	}
	b.WriteString("\n")

	if len(m.snap.Metrics) == 0 {
		b.WriteString(dimStyle.Render("No metrics reported"))
	}
	for _, e := range m.snap.Metrics {
		line := labelStyle.Render(fmt.Sprintf("%-24s", e.Label)) + " " + valueStyle.Render(fmt.Sprintf("%8s", e.Value))
		if e.Progress >= 0 {
			line += "  " + renderBar(e.Progress, barWidth)
		}
		b.WriteString(line + "\n")
	}
	return m.panel().Render(strings.TrimRight(b.String(), "\n"))
}

// renderBar draws a bounded progress bar for a 0-100 value.
func renderBar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := okStyle
	switch {
	case pct < 50:
		style = critStyle
	case pct < 80:
		style = warnStyle
	}
	return style.Render(bar)
}

func (m Model) renderStatusBar() string {
	updated := "never"
	if !m.snap.UpdatedAt.IsZero() {
		updated = m.snap.UpdatedAt.Format("15:04:05")
	}
	parts := []string{
		labelStyle.Render("station ") + valueStyle.Render(string(m.snap.Station)),
		labelStyle.Render("updated ") + valueStyle.Render(updated),
	}
	if m.paused {
		parts = append(parts, orangeStyle.Render("PAUSED"))
	}
	parts = append(parts, helpStyle.Render("? help  q quit"))
	return helpStyle.Render(strings.Join(parts, "  "))
}

func (m Model) renderHelp() string {
	rows := []string{
		"left/right, h/l   switch station",
		"1-6               jump to station",
		"r                 refresh now",
		"space, p          pause redraw",
		"?                 toggle help",
		"q                 quit",
	}
	return helpStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) panel() lipgloss.Style {
	style := panelStyle
	if m.snap.Degraded {
		style = degradedPanelStyle
	}
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}
	return style
}
