// Package metrics keeps the server's own counters and gauges and exposes
// them in the Prometheus text format on /metrics.
//
// Families:
//
//	launchdash_callback_invocations_total{output}
//	launchdash_callback_errors_total{output}
//	launchdash_http_requests_total{path,code}
//	launchdash_dataset_records
//	launchdash_ws_clients
package metrics
