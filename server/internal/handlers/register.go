package handlers

import (
	"context"
	"fmt"

	"github.com/launchdash/launchdash/pkg/types"
	"github.com/launchdash/launchdash/server/internal/callback"
	"github.com/launchdash/launchdash/server/internal/figure"
	"github.com/launchdash/launchdash/server/internal/view"
)

var (
	siteValue    = callback.Dependency{ID: view.SiteDropdownID, Property: "value"}
	payloadValue = callback.Dependency{ID: view.PayloadSliderID, Property: "value"}
	pieFigure    = callback.Dependency{ID: view.PieChartID, Property: "figure"}
	sliderMarks  = callback.Dependency{ID: view.PayloadSliderID, Property: "marks"}
	scatterFig   = callback.Dependency{ID: view.ScatterChartID, Property: "figure"}
)

// Register wires the three dashboard callbacks into reg. marks are the fixed
// slider reference points.
func (h *Handlers) Register(reg *callback.Registry, marks []float64) error {
	cbs := []callback.Callback{
		{
			Output: pieFigure,
			Inputs: []callback.Dependency{siteValue},
			Fn: func(_ context.Context, in callback.Values) (interface{}, error) {
				var site types.Site
				if err := in.Decode(siteValue, &site); err != nil {
					return nil, err
				}
				return figure.PieGraph(view.PieChartID, h.SuccessPie(site)), nil
			},
		},
		{
			Output: sliderMarks,
			Inputs: []callback.Dependency{payloadValue},
			Fn: func(_ context.Context, in callback.Values) (interface{}, error) {
				var rng types.PayloadRange
				if err := in.Decode(payloadValue, &rng); err != nil {
					return nil, err
				}
				return SliderMarks(marks, rng), nil
			},
		},
		{
			Output: scatterFig,
			Inputs: []callback.Dependency{siteValue, payloadValue},
			Fn: func(_ context.Context, in callback.Values) (interface{}, error) {
				var (
					site types.Site
					rng  types.PayloadRange
				)
				if err := in.Decode(siteValue, &site); err != nil {
					return nil, err
				}
				if err := in.Decode(payloadValue, &rng); err != nil {
					return nil, err
				}
				return figure.ScatterGraph(view.ScatterChartID, h.PayloadScatter(site, rng)), nil
			},
		},
	}
	for _, cb := range cbs {
		if err := reg.Register(cb); err != nil {
			return fmt.Errorf("handlers: %w", err)
		}
	}
	return nil
}
