package handlers

import (
	"strconv"

	"github.com/launchdash/launchdash/pkg/types"
	"github.com/launchdash/launchdash/server/internal/dataset"
	"github.com/launchdash/launchdash/server/internal/figure"
)

const (
	allSitesPieTitle = "Total Success Launches By Site"
	siteTitlePrefix  = "Total Success Launches for Site "
	scatterTitle     = "Correlation between Payload and Success"
	scatterXLabel    = dataset.ColPayload
	scatterYLabel    = dataset.ColClass
)

// Handlers owns the dataset the callbacks read from.
type Handlers struct {
	ds *dataset.Dataset
}

// New returns Handlers bound to ds.
func New(ds *dataset.Dataset) *Handlers {
	return &Handlers{ds: ds}
}

// SuccessPie builds the pie for the dropdown selection.
//
// For All there is one slice per site holding that site's success count;
// sites without a success get no slice. For a named site there are exactly
// two slices, classes "0" and "1", holding record counts; a site absent from
// the dataset yields a pie with no slices.
func (h *Handlers) SuccessPie(site types.Site) figure.Pie {
	name, named := site.Name()
	if !named {
		return h.successBySite()
	}

	p := figure.Pie{Title: siteTitlePrefix + name, Slices: []figure.Slice{}}
	if !h.ds.HasSite(name) {
		return p
	}
	var counts [2]float64
	for _, r := range h.ds.AtSite(name) {
		if r.Class == types.ClassSuccess {
			counts[1]++
		} else {
			counts[0]++
		}
	}
	p.Slices = append(p.Slices,
		figure.Slice{Label: strconv.Itoa(types.ClassFailure), Value: counts[0]},
		figure.Slice{Label: strconv.Itoa(types.ClassSuccess), Value: counts[1]},
	)
	return p
}

func (h *Handlers) successBySite() figure.Pie {
	sums := make(map[string]float64)
	for _, r := range h.ds.Records() {
		sums[r.Site] += float64(r.Class)
	}
	p := figure.Pie{Title: allSitesPieTitle, Slices: []figure.Slice{}}
	for _, s := range h.ds.Sites() {
		if sums[s] == 0 {
			continue
		}
		p.Slices = append(p.Slices, figure.Slice{Label: s, Value: sums[s]})
	}
	return p
}

// SliderMarks labels the fixed reference points and the current selection
// ends with their own values. An end that lands on a fixed point replaces
// its label with an identical one.
func SliderMarks(fixed []float64, sel types.PayloadRange) figure.Marks {
	m := make(figure.Marks, len(fixed)+2)
	for _, v := range fixed {
		m[v] = figure.FormatValue(v)
	}
	m[sel.Low] = figure.FormatValue(sel.Low)
	m[sel.High] = figure.FormatValue(sel.High)
	return m
}

// PayloadScatter builds the scatter of payload mass against class for the
// records inside rng (inclusive), restricted to the named site if any.
// Points are grouped into one series per booster version category, in
// first-appearance order.
func (h *Handlers) PayloadScatter(site types.Site, rng types.PayloadRange) figure.Scatter {
	sc := figure.Scatter{
		Title:  scatterTitle,
		XLabel: scatterXLabel,
		YLabel: scatterYLabel,
		XMin:   rng.Low,
		XMax:   rng.High,
		Series: []figure.Series{},
	}
	if name, ok := site.Name(); ok {
		sc.Title = scatterTitle + " for Site " + name
	}

	index := make(map[string]int)
	for _, r := range h.ds.Filter(site, rng) {
		i, ok := index[r.BoosterCategory]
		if !ok {
			i = len(sc.Series)
			index[r.BoosterCategory] = i
			sc.Series = append(sc.Series, figure.Series{Name: r.BoosterCategory})
		}
		sc.Series[i].Points = append(sc.Series[i].Points, figure.Point{
			X:    r.PayloadKg,
			Y:    float64(r.Class),
			Site: r.Site,
		})
	}
	return sc
}
