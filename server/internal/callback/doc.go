// Package callback maps component outputs to the pure functions that
// compute them.
//
// A Callback declares one Output dependency (component id + property), the
// Input dependencies it watches, and Fn. Registry.Dispatch takes a Request
// carrying the current input values, checks every declared input is present,
// runs Fn and returns the output value. Errors wrapping ErrBadRequest are the
// caller's fault (unknown output, missing or malformed input); anything else
// is a callback failure.
package callback
