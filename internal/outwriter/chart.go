package outwriter

import (
	"errors"
	"image/color"
	"io"

	"github.com/huangsam/outrank/schema"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Chart dimensions.
const (
	chartHeight   = 4 * vg.Inch
	minChartWidth = 4 * vg.Inch
	barWidth      = 24 // points
)

var (
	chartBarColor  = color.RGBA{R: 46, G: 134, B: 171, A: 255}
	chartLineColor = color.RGBA{R: 30, G: 30, B: 30, A: 255}
)

// writeNetFlowChart renders the net flow of every ranked alternative as a PNG bar chart.
func writeNetFlowChart(w io.Writer, results []schema.AlternativeResult) error {
	if len(results) == 0 {
		return errors.New("nothing to chart")
	}
	p, err := netFlowPlot(results)
	if err != nil {
		return err
	}

	width := max(minChartWidth, vg.Length(len(results))*2*barWidth+vg.Inch)
	writer, err := p.WriterTo(width, chartHeight, "png")
	if err != nil {
		return err
	}
	_, err = writer.WriteTo(w)
	return err
}

func netFlowPlot(results []schema.AlternativeResult) (*plot.Plot, error) {
	values := make(plotter.Values, len(results))
	names := make([]string, len(results))
	for i, r := range results {
		values[i] = r.NetFlow
		names[i] = r.Name
	}

	p := plot.New()
	p.Title.Text = "PROMETHEE II net flows"
	p.Y.Label.Text = "Net flow"
	p.Y.Min = -1
	p.Y.Max = 1

	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return nil, err
	}
	bars.Color = chartBarColor
	bars.LineStyle.Color = chartLineColor

	zero, err := plotter.NewLine(plotter.XYs{{X: -0.5, Y: 0}, {X: float64(len(results)) - 0.5, Y: 0}})
	if err != nil {
		return nil, err
	}
	zero.Color = chartLineColor

	p.Add(plotter.NewGrid(), bars, zero)
	p.NominalX(names...)
	return p, nil
}
