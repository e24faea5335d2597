package figure

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	pngWidth  = 1000
	pngHeight = 560
)

// palette is the qualitative colour cycle used for slices and series.
var palette = []drawing.Color{
	drawing.ColorFromHex("636EFA"),
	drawing.ColorFromHex("EF553B"),
	drawing.ColorFromHex("00CC96"),
	drawing.ColorFromHex("AB63FA"),
	drawing.ColorFromHex("FFA15A"),
	drawing.ColorFromHex("19D3F3"),
	drawing.ColorFromHex("FF6692"),
	drawing.ColorFromHex("B6E880"),
	drawing.ColorFromHex("FF97FF"),
	drawing.ColorFromHex("FECB52"),
}

func colorAt(i int) drawing.Color { return palette[i%len(palette)] }

// RenderPiePNG draws p as a PNG image. Zero-valued slices are not drawn;
// a pie with nothing left returns ErrEmpty.
func RenderPiePNG(w io.Writer, p Pie) error {
	values := make([]chart.Value, 0, len(p.Slices))
	for i, s := range p.Slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%s)", s.Label, FormatValue(s.Value)),
			Value: s.Value,
			Style: chart.Style{FillColor: colorAt(i), StrokeColor: drawing.ColorWhite},
		})
	}
	if len(values) == 0 {
		return ErrEmpty
	}

	pc := chart.PieChart{
		Title:      p.Title,
		TitleStyle: chart.Style{FontSize: 16, FontColor: drawing.ColorBlack},
		Width:      pngWidth,
		Height:     pngHeight,
		Values:     values,
	}
	if err := pc.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("figure: render pie: %w", err)
	}
	return nil
}

// RenderScatterPNG draws s as a PNG image with one dot colour per series.
// A scatter without points returns ErrEmpty.
func RenderScatterPNG(w io.Writer, s Scatter) error {
	if s.Len() == 0 {
		return ErrEmpty
	}

	lo, hi := s.XMin, s.XMax
	if hi <= lo {
		lo, hi = lo-1, hi+1
	}

	graph := chart.Chart{
		Title:      s.Title,
		TitleStyle: chart.Style{FontSize: 16, FontColor: drawing.ColorBlack},
		Width:      pngWidth,
		Height:     pngHeight,
		Background: chart.Style{Padding: chart.Box{Top: 60, Left: 30, Right: 30, Bottom: 40}},
		XAxis: chart.XAxis{
			Name:  s.XLabel,
			Style: chart.Style{FontSize: 11},
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		YAxis: chart.YAxis{
			Name:  s.YLabel,
			Style: chart.Style{FontSize: 11},
			Range: &chart.ContinuousRange{Min: -0.25, Max: 1.25},
			Ticks: []chart.Tick{{Value: 0, Label: "0"}, {Value: 1, Label: "1"}},
		},
	}

	for i, ser := range s.Series {
		if len(ser.Points) == 0 {
			continue
		}
		xs := make([]float64, len(ser.Points))
		ys := make([]float64, len(ser.Points))
		for j, p := range ser.Points {
			xs[j], ys[j] = p.X, p.Y
		}
		c := colorAt(i)
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name: ser.Name,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				StrokeColor: c,
				DotWidth:    5,
				DotColor:    c,
			},
			XValues: xs,
			YValues: ys,
		})
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("figure: render scatter: %w", err)
	}
	return nil
}
