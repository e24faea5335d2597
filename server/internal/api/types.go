package api

// DatasetResponse is the payload for GET /api/v1/dataset.
type DatasetResponse struct {
	Records    int      `json:"records"`
	MinPayload int      `json:"min_payload"`
	MaxPayload int      `json:"max_payload"`
	Sites      []string `json:"sites"`
	Columns    []string `json:"columns"`
}

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Records   int    `json:"records"`
	Callbacks int    `json:"callbacks"`
	WSClients int    `json:"ws_clients"`
	Uptime    string `json:"uptime"`
}

type errorResponse struct {
	Error string `json:"error"`
}
