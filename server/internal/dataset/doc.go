// Package dataset loads the launch record file into an immutable Dataset.
//
// Load(path) sniffs the file with mimetype (only text files are accepted),
// parses it with gota's CSV reader using fixed column types, and derives the
// values that seed the UI once: the integer-truncated min/max payload and
// the site names in first-appearance order. Columns other than the four
// required ones are dropped.
//
// A Dataset is never mutated after construction, so its query methods
// (Filter, AtSite) are safe for concurrent use without locking.
package dataset
