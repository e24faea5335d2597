// Package figure holds the chart specifications produced by the dashboard
// callbacks and renders them for the browser.
//
// Pie and Scatter are plain data: titles, slices, points grouped by series.
// PieGraph and ScatterGraph convert a figure into an ECharts option object
// using go-echarts, which the page script hands to echarts.setOption.
// RenderPieHTML and RenderScatterHTML write standalone go-echarts pages;
// RenderPiePNG and RenderScatterPNG draw static images with go-chart for the
// export endpoints.
package figure
