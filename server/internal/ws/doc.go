// Package ws serves the dashboard's callback stream over WebSocket.
//
// A client connects to /ws/callbacks and receives a session event:
//
//	{"event": "session", "id": "<uuid>"}
//
// It then sends callback requests tagged with its own id:
//
//	{"id": "7", "output": "success-pie-chart.figure", "inputs": [...]}
//
// Each request is dispatched in arrival order and answered with either
//
//	{"event": "callback", "id": "7", "data": {"output": ..., "value": ...}}
//	{"event": "error", "id": "7", "code": 400, "error": "..."}
//
// The hub sends ping frames to detect dead peers, drops clients whose send
// buffer fills up, and closes every connection when Run's context ends.
package ws
