package figure

import (
	"encoding/json"
	"errors"
	"sort"
	"strconv"
)

// ErrEmpty is returned by the static renderers when there is nothing to draw.
var ErrEmpty = errors.New("figure: nothing to plot")

// Kind names the chart type of a figure on the wire.
type Kind string

const (
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
)

// Slice is one pie sector.
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Pie is a titled set of slices, in display order.
type Pie struct {
	Title  string  `json:"title"`
	Slices []Slice `json:"slices"`
}

// Total returns the sum of all slice values.
func (p Pie) Total() float64 {
	var sum float64
	for _, s := range p.Slices {
		sum += s.Value
	}
	return sum
}

// Point is one scatter marker.
type Point struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Site string  `json:"site"`
}

// Series is a named, single-colour group of points.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Scatter is a titled set of point series over a value x axis.
type Scatter struct {
	Title  string   `json:"title"`
	XLabel string   `json:"x_label"`
	YLabel string   `json:"y_label"`
	XMin   float64  `json:"x_min"`
	XMax   float64  `json:"x_max"`
	Series []Series `json:"series"`
}

// Len returns the number of points across all series.
func (s Scatter) Len() int {
	n := 0
	for _, ser := range s.Series {
		n += len(ser.Points)
	}
	return n
}

// Graph is the value returned for a chart component's figure property.
type Graph struct {
	Kind   Kind                   `json:"kind"`
	Title  string                 `json:"title"`
	Option map[string]interface{} `json:"option"`
}

// Marks maps slider positions to tick labels.
type Marks map[float64]string

// Keys returns the mark positions in ascending order.
func (m Marks) Keys() []float64 {
	keys := make([]float64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Float64s(keys)
	return keys
}

// MarshalJSON encodes marks as an object keyed by the position's decimal
// text, which is the form the slider widget expects.
func (m Marks) MarshalJSON() ([]byte, error) {
	obj := make(map[string]string, len(m))
	for k, v := range m {
		obj[FormatValue(k)] = v
	}
	return json.Marshal(obj)
}

// FormatValue renders a payload value the way tick labels show it:
// integral values without a fractional part.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
