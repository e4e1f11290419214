package chart

import (
	"fmt"
	"strings"
	"time"

	"github.com/sherine-k/infection/pkg/simulation"
	"github.com/sherine-k/infection/pkg/stats"
)

const (
	chartWidth  = 80
	chartHeight = 20
)

// Generator generates ASCII charts
type Generator struct {
	width  int
	height int
}

// NewGenerator creates a new chart generator
func NewGenerator() *Generator {
	return &Generator{
		width:  chartWidth,
		height: chartHeight,
	}
}

// GeneratePopulationChart generates an ASCII chart of the live population
// over time, stacked as infected, immune and healthy
func (g *Generator) GeneratePopulationChart(timePoints []simulation.TimePoint, target int) string {
	if len(timePoints) == 0 {
		return "No data to display"
	}

	var sb strings.Builder

	// Header
	sb.WriteString("\n")
	sb.WriteString("Population Over Time\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	maxRemaining := target
	for _, tp := range timePoints {
		if tp.Remaining > maxRemaining {
			maxRemaining = tp.Remaining
		}
	}
	if maxRemaining == 0 {
		maxRemaining = 1
	}

	// Each row stands for perRow persons so the chart keeps its height
	perRow := (maxRemaining + g.height - 1) / g.height
	rows := (maxRemaining + perRow - 1) / perRow
	columns := g.width - 6

	for row := rows; row >= 1; row-- {
		level := row * perRow

		// Y-axis label
		sb.WriteString(fmt.Sprintf("%3d |", level))

		// Plot data points across time
		for x := 0; x < len(timePoints) && x < columns; x++ {
			tp := timePoints[pointIndex(x, columns, len(timePoints))]

			switch {
			case tp.Infected >= level:
				sb.WriteString("█")
			case tp.Infected+tp.Immune >= level:
				sb.WriteString("▒")
			case tp.Remaining >= level:
				sb.WriteString("░")
			default:
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	// X-axis
	sb.WriteString("    +")
	sb.WriteString(strings.Repeat("-", columns))
	sb.WriteString("\n")

	// X-axis labels, one mark every 10 simulated seconds
	totalDuration := timePoints[len(timePoints)-1].Time - timePoints[0].Time
	labelLine := make([]rune, columns)
	for i := range labelLine {
		labelLine[i] = ' '
	}

	for mark := time.Duration(0); mark <= totalDuration; mark += 10 * time.Second {
		position := 0
		if totalDuration > 0 {
			position = int(float64(mark) / float64(totalDuration) * float64(columns))
		}

		marker := FormatDuration(mark)
		if position+len(marker) <= columns {
			for i, ch := range marker {
				labelLine[position+i] = ch
			}
		}

		if totalDuration == 0 {
			break
		}
	}

	sb.WriteString("    ")
	sb.WriteString(string(labelLine))
	sb.WriteString("\n")

	// Legend
	sb.WriteString("\n")
	sb.WriteString("Legend:\n")
	sb.WriteString(fmt.Sprintf("  Live persons (target %d, %d per row):\n", target, perRow))
	sb.WriteString("    █ - Infected\n")
	sb.WriteString("    ▒ - Immune\n")
	sb.WriteString("    ░ - Healthy and susceptible\n")
	sb.WriteString("\n")

	return sb.String()
}

// pointIndex maps a chart column to a time point
func pointIndex(x, columns, points int) int {
	idx := int(float64(x) / float64(columns) * float64(points-1))
	if points <= columns {
		idx = x
	}
	if idx >= points {
		idx = points - 1
	}
	return idx
}

// GenerateEventSummary generates a summary of events
func (g *Generator) GenerateEventSummary(events []simulation.Event) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Event Summary\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	// Group events by type
	eventsByType := make(map[simulation.EventType]int)
	for _, event := range events {
		eventsByType[event.Type]++
	}

	sb.WriteString(fmt.Sprintf("Total Events: %d\n", len(events)))
	sb.WriteString(fmt.Sprintf("  - Spawned: %d\n", eventsByType[simulation.EventTypeSpawned]))
	sb.WriteString(fmt.Sprintf("  - Exited: %d\n", eventsByType[simulation.EventTypeExited]))
	sb.WriteString(fmt.Sprintf("  - Infected: %d\n", eventsByType[simulation.EventTypeInfected]))
	sb.WriteString(fmt.Sprintf("  - Recovered: %d\n", eventsByType[simulation.EventTypeRecovered]))
	sb.WriteString("\n")

	return sb.String()
}

// GenerateStats generates the snapshot statistics block
func (g *Generator) GenerateStats(s stats.Stats) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Snapshot Statistics\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Total: %d\n", s.Total))
	sb.WriteString(fmt.Sprintf("  - Healthy: %d\n", s.Healthy))
	sb.WriteString(fmt.Sprintf("  - Infected: %d\n", s.Infected))
	sb.WriteString(fmt.Sprintf("  - Immune: %d\n", s.Immune))
	sb.WriteString(fmt.Sprintf("  - Exited: %d\n", s.Exited))
	sb.WriteString("\n")

	return sb.String()
}

// GenerateCompositionBar renders a single bar splitting a snapshot into
// its categories
func (g *Generator) GenerateCompositionBar(s stats.Stats) string {
	if s.Total == 0 {
		return "No data to display"
	}

	columns := g.width - 2
	segments := []struct {
		count int
		ch    string
	}{
		{s.Infected, "█"},
		{s.Immune, "▒"},
		{s.Healthy, "░"},
	}

	var sb strings.Builder
	sb.WriteString("[")
	used := 0
	for _, seg := range segments {
		n := seg.count * columns / s.Total
		sb.WriteString(strings.Repeat(seg.ch, n))
		used += n
	}
	sb.WriteString(strings.Repeat(" ", columns-used))
	sb.WriteString("]\n")

	return sb.String()
}

// GenerateDetailedTimeline generates a detailed timeline of events
func (g *Generator) GenerateDetailedTimeline(events []simulation.Event, limit int) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Detailed Timeline")
	if limit > 0 && limit < len(events) {
		sb.WriteString(fmt.Sprintf(" (showing first %d events)", limit))
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	displayCount := len(events)
	if limit > 0 && limit < displayCount {
		displayCount = limit
	}

	for i := 0; i < displayCount; i++ {
		event := events[i]

		typeIcon := " "
		switch event.Type {
		case simulation.EventTypeSpawned:
			typeIcon = "+"
		case simulation.EventTypeExited:
			typeIcon = "-"
		case simulation.EventTypeInfected:
			typeIcon = "!"
		case simulation.EventTypeRecovered:
			typeIcon = "R"
		}

		sb.WriteString(fmt.Sprintf("[%7.2fs] %s %s\n",
			event.Time.Seconds(),
			typeIcon,
			event.Message))
	}

	if limit > 0 && limit < len(events) {
		sb.WriteString(fmt.Sprintf("\n... and %d more events\n", len(events)-limit))
	}

	sb.WriteString("\n")

	return sb.String()
}

// FormatDuration formats a duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
