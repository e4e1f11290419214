package chart

import (
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/sherine-k/infection/pkg/simulation"
)

const (
	pngWidth  = 1024
	pngHeight = 400
)

// RenderPNG draws the population curves as a PNG image
func (g *Generator) RenderPNG(w io.Writer, timePoints []simulation.TimePoint) error {
	if len(timePoints) < 2 {
		return fmt.Errorf("not enough data to render the chart: %d time points", len(timePoints))
	}

	xs := make([]float64, len(timePoints))
	healthy := make([]float64, len(timePoints))
	infected := make([]float64, len(timePoints))
	immune := make([]float64, len(timePoints))
	exited := make([]float64, len(timePoints))

	for i, tp := range timePoints {
		xs[i] = tp.Time.Seconds()
		healthy[i] = float64(tp.Healthy)
		infected[i] = float64(tp.Infected)
		immune[i] = float64(tp.Immune)
		exited[i] = float64(tp.Exited)
	}

	graph := gochart.Chart{
		Width:  pngWidth,
		Height: pngHeight,
		XAxis: gochart.XAxis{
			Name:  "time (s)",
			Style: gochart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: gochart.YAxis{
			Name:  "persons",
			Style: gochart.Style{FontSize: 10.0},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    "Healthy",
				XValues: xs,
				YValues: healthy,
				Style:   gochart.Style{StrokeColor: gochart.ColorGreen, StrokeWidth: 3.0},
			},
			gochart.ContinuousSeries{
				Name:    "Infected",
				XValues: xs,
				YValues: infected,
				Style:   gochart.Style{StrokeColor: gochart.ColorRed, StrokeWidth: 3.0},
			},
			gochart.ContinuousSeries{
				Name:    "Immune",
				XValues: xs,
				YValues: immune,
				Style:   gochart.Style{StrokeColor: drawing.Color{R: 230, G: 190, B: 0, A: 255}, StrokeWidth: 3.0},
			},
			gochart.ContinuousSeries{
				Name:    "Exited",
				XValues: xs,
				YValues: exited,
				Style:   gochart.Style{StrokeColor: drawing.Color{R: 128, G: 128, B: 128, A: 255}, StrokeWidth: 2.0},
			},
		},
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}

	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	return nil
}
