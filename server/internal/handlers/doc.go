// Package handlers implements the dashboard's reactive callbacks as pure
// functions of the immutable dataset and their inputs:
//
//	SuccessPie(site)            - success counts per site, or class split for one site
//	SliderMarks(fixed, range)   - tick labels for the payload slider
//	PayloadScatter(site, range) - payload vs. class points, grouped by booster category
//
// Register binds them to component properties in a callback.Registry.
package handlers
