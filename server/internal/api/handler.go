package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/launchdash/launchdash/pkg/types"
	"github.com/launchdash/launchdash/server/internal/auth"
	"github.com/launchdash/launchdash/server/internal/callback"
	"github.com/launchdash/launchdash/server/internal/config"
	"github.com/launchdash/launchdash/server/internal/dataset"
	"github.com/launchdash/launchdash/server/internal/figure"
	"github.com/launchdash/launchdash/server/internal/handlers"
	"github.com/launchdash/launchdash/server/internal/metrics"
	"github.com/launchdash/launchdash/server/internal/view"
)

// maxBodyBytes bounds a POST /api/v1/update body.
const maxBodyBytes = 1 << 20

// Routes that skip API key checks.
var openPaths = []string{"/", "/api/v1/health"}

// Callbacks runs and lists the registered callbacks.
type Callbacks interface {
	Dispatch(ctx context.Context, req callback.Request) (callback.Response, error)
	Wiring() []callback.Wiring
}

// Socket is the websocket endpoint mounted at /ws/callbacks.
type Socket interface {
	http.Handler
	Count() int
}

// Deps are the collaborators the API serves from. Socket and Metrics are
// optional.
type Deps struct {
	Config    *config.Config
	Dataset   *dataset.Dataset
	Handlers  *handlers.Handlers
	Callbacks Callbacks
	Metrics   *metrics.Metrics
	Socket    Socket
}

// Handler is the HTTP handler for every route of the server.
type Handler struct {
	cfg     *config.Config
	ds      *dataset.Dataset
	h       *handlers.Handlers
	cb      Callbacks
	metrics *metrics.Metrics
	socket  Socket

	mux     *http.ServeMux
	root    http.Handler
	now     func() time.Time
	started time.Time
}

// New creates a Handler wired to d and registers all routes.
func New(d Deps) *Handler {
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}
	h := &Handler{
		cfg:     d.Config,
		ds:      d.Dataset,
		h:       d.Handlers,
		cb:      d.Callbacks,
		metrics: d.Metrics,
		socket:  d.Socket,
		mux:     http.NewServeMux(),
		now:     time.Now,
	}
	h.started = h.now()

	h.mux.HandleFunc("/", h.index)
	h.mux.HandleFunc("/api/v1/layout", h.layout)
	h.mux.HandleFunc("/api/v1/callbacks", h.callbacks)
	h.mux.HandleFunc("/api/v1/update", h.update)
	h.mux.HandleFunc("/api/v1/dataset", h.dataset)
	h.mux.HandleFunc("/api/v1/charts/", h.charts) // subtree - extracts {name}
	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.Handle("/metrics", h.metrics.Handler())
	if h.socket != nil {
		h.mux.Handle("/ws/callbacks", h.socket)
	}

	var root http.Handler = h.mux
	if h.cfg.Server.Compression {
		root = compress(root)
	}
	a := h.cfg.Server.Auth
	root = auth.APIKey(a.Mode, a.EffectiveHeader(), a.Key(), openPaths...)(root)
	root = h.observe(root)
	h.root = requestID(root)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.root.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// index returns GET / - the dashboard page.
func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		jsonErr(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var buf bytes.Buffer
	if err := view.Page(&buf, h.cfg.UI.Title, h.cfg.Server.PrettyHTML); err != nil {
		h.internalErr(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}

// layout returns GET /api/v1/layout - the component tree.
func (h *Handler) layout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, view.Layout(h.cfg.UI, h.ds))
}

// callbacks returns GET /api/v1/callbacks - output ← inputs wiring.
func (h *Handler) callbacks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, h.cb.Wiring())
}

// update handles POST /api/v1/update - runs one callback.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req callback.Request
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.cb.Dispatch(r.Context(), req)
	if err != nil {
		if errors.Is(err, callback.ErrBadRequest) {
			jsonErr(w, http.StatusBadRequest, err.Error())
			return
		}
		h.internalErr(w, r, err)
		return
	}
	jsonResp(w, http.StatusOK, resp)
}

// dataset returns GET /api/v1/dataset - a summary of the loaded records.
func (h *Handler) dataset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, DatasetResponse{
		Records:    h.ds.Len(),
		MinPayload: h.ds.MinPayload(),
		MaxPayload: h.ds.MaxPayload(),
		Sites:      h.ds.Sites(),
		Columns:    h.ds.Columns(),
	})
}

// charts returns GET /api/v1/charts/{name} - pie or scatter as PNG or as a
// standalone HTML page.
func (h *Handler) charts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	site, rng, err := h.chartQuery(r)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	switch strings.TrimPrefix(r.URL.Path, "/api/v1/charts/") {
	case "pie.png":
		err = figure.RenderPiePNG(&buf, h.h.SuccessPie(site))
	case "scatter.png":
		err = figure.RenderScatterPNG(&buf, h.h.PayloadScatter(site, rng))
	case "pie.html":
		err = figure.RenderPieHTML(&buf, view.PieChartID, h.h.SuccessPie(site))
	case "scatter.html":
		err = figure.RenderScatterHTML(&buf, view.ScatterChartID, h.h.PayloadScatter(site, rng))
	default:
		jsonErr(w, http.StatusNotFound, "chart not found")
		return
	}
	if errors.Is(err, figure.ErrEmpty) {
		jsonErr(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		h.internalErr(w, r, err)
		return
	}

	w.Header().Set("Content-Type", mimetype.Detect(buf.Bytes()).String())
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}

// health returns GET /api/v1/health.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	resp := HealthResponse{
		Status:    "ok",
		Records:   h.ds.Len(),
		Callbacks: len(h.cb.Wiring()),
		Uptime:    h.now().Sub(h.started).Round(time.Second).String(),
	}
	if h.socket != nil {
		resp.WSClients = h.socket.Count()
	}
	jsonResp(w, http.StatusOK, resp)
}

// --- helpers ----------------------------------------------------------------

// chartQuery reads ?site=&low=&high=. A missing site means all sites and a
// missing bound falls back to the dataset's payload bounds.
func (h *Handler) chartQuery(r *http.Request) (types.Site, types.PayloadRange, error) {
	q := r.URL.Query()
	site := types.AllSites()
	if v := q.Get("site"); v != "" {
		site = types.ParseSite(v)
	}
	rng := h.ds.Bounds()
	for _, p := range []struct {
		name string
		dst  *float64
	}{{"low", &rng.Low}, {"high", &rng.High}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return site, rng, fmt.Errorf("invalid %s %q: want a number", p.name, v)
		}
		*p.dst = f
	}
	return site, rng, nil
}

func (h *Handler) internalErr(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed", "path", r.URL.Path, "request_id", RequestID(r.Context()), "err", err)
	jsonErr(w, http.StatusInternalServerError, err.Error())
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
