package view

import (
	"github.com/launchdash/launchdash/pkg/types"
	"github.com/launchdash/launchdash/server/internal/config"
	"github.com/launchdash/launchdash/server/internal/dataset"
)

// Component ids referenced by the callbacks.
const (
	SiteDropdownID  = "site-dropdown"
	PieChartID      = "success-pie-chart"
	PayloadSliderID = "payload-slider"
	ScatterChartID  = "success-payload-scatter-chart"
)

// Component is one node of the layout tree.
type Component struct {
	Type     string                 `json:"type"`
	ID       string                 `json:"id,omitempty"`
	Text     string                 `json:"text,omitempty"`
	Props    map[string]interface{} `json:"props,omitempty"`
	Children []Component            `json:"children,omitempty"`
}

// Option is one dropdown entry.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SiteOptions returns "All Sites" followed by one option per site.
func SiteOptions(sites []string) []Option {
	out := make([]Option, 0, len(sites)+1)
	out = append(out, Option{Label: "All Sites", Value: types.AllSitesValue})
	for _, s := range sites {
		out = append(out, Option{Label: s, Value: s})
	}
	return out
}

// Layout declares the page.
func Layout(ui config.UIConfig, ds *dataset.Dataset) Component {
	bounds := ds.Bounds()
	return Component{
		Type: "div",
		Children: []Component{
			{
				Type: "h1",
				Text: ui.Title,
				Props: map[string]interface{}{
					"style": map[string]interface{}{"textAlign": "center", "color": "#503D36", "font-size": 40},
				},
			},
			{
				Type: "dropdown",
				ID:   SiteDropdownID,
				Props: map[string]interface{}{
					"options":     SiteOptions(ds.Sites()),
					"value":       types.AllSitesValue,
					"placeholder": "Select a Launch Site",
					"searchable":  true,
				},
			},
			{Type: "br"},
			{Type: "div", Children: []Component{{Type: "graph", ID: PieChartID}}},
			{Type: "br"},
			{Type: "p", Text: "Payload range (Kg):"},
			{
				Type: "rangeslider",
				ID:   PayloadSliderID,
				Props: map[string]interface{}{
					"min":   ui.Slider.Min,
					"max":   ui.Slider.Max,
					"step":  ui.Slider.Step,
					"value": bounds,
				},
			},
			{Type: "div", Children: []Component{{Type: "graph", ID: ScatterChartID}}},
		},
	}
}

// Find returns the first component with the given id.
func (c Component) Find(id string) (Component, bool) {
	if c.ID == id {
		return c, true
	}
	for _, ch := range c.Children {
		if got, ok := ch.Find(id); ok {
			return got, true
		}
	}
	return Component{}, false
}
