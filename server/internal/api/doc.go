// Package api implements the HTTP surface of the launchdash server.
//
// New(deps) returns an http.Handler that serves:
//
//	GET  /                         - dashboard page
//	GET  /api/v1/layout            - component tree (view.Component)
//	GET  /api/v1/callbacks         - callback wiring ([]callback.Wiring)
//	POST /api/v1/update            - run one callback (callback.Request → callback.Response)
//	GET  /api/v1/dataset           - record count, payload bounds, sites
//	GET  /api/v1/charts/pie.png    - ?site=
//	GET  /api/v1/charts/scatter.png - ?site=&low=&high=
//	GET  /api/v1/charts/pie.html   - standalone ECharts page, same parameters
//	GET  /api/v1/charts/scatter.html
//	GET  /api/v1/health            - liveness and counts
//	GET  /metrics                  - Prometheus text exposition
//	GET  /ws/callbacks             - callback stream (when a socket is given)
//
// All JSON endpoints respond with Content-Type: application/json and errors
// as {"error": "..."}. A method other than the one listed gets 405. Malformed
// callback requests get 400; a failing callback gets 500.
//
// Every response carries an X-Request-Id header and is logged and counted.
// With auth mode apikey every route except / and /api/v1/health requires the
// key. With compression enabled, clients accepting br get brotli bodies.
package api
