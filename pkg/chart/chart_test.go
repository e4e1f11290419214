package chart

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sherine-k/infection/pkg/simulation"
	"github.com/sherine-k/infection/pkg/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePoints() []simulation.TimePoint {
	var points []simulation.TimePoint
	for i := 0; i <= 60; i++ {
		points = append(points, simulation.TimePoint{
			Time: time.Duration(i) * time.Second,
			Population: stats.Population{
				Remaining: 50,
				Total:     50 + i,
				Infected:  5 + i/10,
				Immune:    i / 6,
				Healthy:   45 - i/10 - i/6,
				Exited:    i,
			},
		})
	}
	return points
}

func TestGeneratePopulationChart(t *testing.T) {
	g := NewGenerator()

	out := g.GeneratePopulationChart(timePoints(), 50)
	assert.Contains(t, out, "Population Over Time")
	assert.Contains(t, out, "█")
	assert.Contains(t, out, "▒")
	assert.Contains(t, out, "░")
	assert.Contains(t, out, "0s")
	assert.Contains(t, out, "50s")

	// rows are capped at the chart height
	rows := strings.Count(out, " |")
	assert.LessOrEqual(t, rows, chartHeight)

	assert.Equal(t, "No data to display", g.GeneratePopulationChart(nil, 50))
}

func TestGenerateEventSummaryAndTimeline(t *testing.T) {
	g := NewGenerator()
	events := []simulation.Event{
		{Time: time.Second, Type: simulation.EventTypeSpawned, PersonID: 1, Message: "Person 1 entered"},
		{Time: 2 * time.Second, Type: simulation.EventTypeInfected, PersonID: 1, SourceID: 2, Message: "Person 1 infected by person 2"},
		{Time: 3 * time.Second, Type: simulation.EventTypeExited, PersonID: 1, Message: "Person 1 left"},
	}

	summary := g.GenerateEventSummary(events)
	assert.Contains(t, summary, "Total Events: 3")
	assert.Contains(t, summary, "Infected: 1")
	assert.Contains(t, summary, "Recovered: 0")

	timeline := g.GenerateDetailedTimeline(events, 2)
	assert.Contains(t, timeline, "showing first 2 events")
	assert.Contains(t, timeline, "! Person 1 infected by person 2")
	assert.Contains(t, timeline, "... and 1 more events")
}

func TestGenerateStats(t *testing.T) {
	g := NewGenerator()
	s := stats.Stats{Total: 10, Healthy: 4, Infected: 3, Immune: 2, Exited: 1}

	out := g.GenerateStats(s)
	assert.Contains(t, out, "Total: 10")
	assert.Contains(t, out, "Exited: 1")

	bar := g.GenerateCompositionBar(s)
	assert.Equal(t, chartWidth+1, len([]rune(bar)))
	assert.Equal(t, "No data to display", g.GenerateCompositionBar(stats.Stats{}))
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewGenerator().RenderPNG(&buf, timePoints()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	assert.Error(t, NewGenerator().RenderPNG(&buf, timePoints()[:1]))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "5s", FormatDuration(5*time.Second))
	assert.Equal(t, "1m30s", FormatDuration(90*time.Second))
	assert.Equal(t, "2h5m", FormatDuration(125*time.Minute))
}
