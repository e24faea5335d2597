package figure

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const (
	chartWidth  = "900px"
	chartHeight = "450px"
)

// PieChart builds the go-echarts pie for p.
func PieChart(id string, p Pie) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: p.Title,
			ChartID:   id,
			Theme:     types.ThemeWesteros,
			Width:     chartWidth,
			Height:    chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: p.Title, Left: "center"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "item", Formatter: "{b}: {c} ({d}%)"}),
		charts.WithLegendOpts(opts.Legend{Show: true, Orient: "vertical", Left: "left"}),
	)

	data := make([]opts.PieData, 0, len(p.Slices))
	for _, s := range p.Slices {
		data = append(data, opts.PieData{Name: s.Label, Value: s.Value})
	}
	pie.AddSeries(p.Title, data,
		charts.WithLabelOpts(opts.Label{Show: true, Formatter: "{b}: {d}%"}),
	)
	return pie
}

// ScatterChart builds the go-echarts scatter for s, one series per group.
func ScatterChart(id string, s Scatter) *charts.Scatter {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: s.Title,
			ChartID:   id,
			Theme:     types.ThemeWesteros,
			Width:     chartWidth,
			Height:    chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: s.Title, Left: "center"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "item", Formatter: "{a}: {c}"}),
		charts.WithLegendOpts(opts.Legend{Show: true, Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: s.XLabel, Type: "value", Min: s.XMin, Max: s.XMax}),
		charts.WithYAxisOpts(opts.YAxis{Name: s.YLabel, Type: "value", Min: -0.25, Max: 1.25, SplitNumber: 1}),
	)

	for _, ser := range s.Series {
		data := make([]opts.ScatterData, 0, len(ser.Points))
		for _, p := range ser.Points {
			data = append(data, opts.ScatterData{
				Name:       p.Site,
				Value:      []interface{}{p.X, p.Y},
				SymbolSize: 10,
			})
		}
		sc.AddSeries(ser.Name, data)
	}
	return sc
}

// PieGraph converts p into the JSON value of a graph component.
func PieGraph(id string, p Pie) Graph {
	pie := PieChart(id, p)
	pie.Validate()
	return Graph{Kind: KindPie, Title: p.Title, Option: pie.JSON()}
}

// ScatterGraph converts s into the JSON value of a graph component.
func ScatterGraph(id string, s Scatter) Graph {
	sc := ScatterChart(id, s)
	sc.Validate()
	return Graph{Kind: KindScatter, Title: s.Title, Option: sc.JSON()}
}

// RenderPieHTML writes a standalone HTML page showing p.
func RenderPieHTML(w io.Writer, id string, p Pie) error {
	return PieChart(id, p).Render(w)
}

// RenderScatterHTML writes a standalone HTML page showing s.
func RenderScatterHTML(w io.Writer, id string, s Scatter) error {
	return ScatterChart(id, s).Render(w)
}
