// Package types defines the shared value types of launchdash: the launch
// Record, the Site selection (All | Named) and the inclusive PayloadRange
// chosen on the slider. These are the canonical in-memory representations,
// separate from the JSON wire format exchanged with the browser.
package types
