// Package view declares the dashboard's static component tree and renders
// the HTML shell that hosts it.
//
// Layout(ui, ds) returns the tree sent once to the browser: title, site
// dropdown (All Sites + one option per site), pie chart placeholder, payload
// range slider seeded with the dataset bounds, and scatter chart placeholder.
// Page writes the HTML document; its script builds the controls from the
// layout JSON and requests callback outputs whenever a watched value changes.
package view
