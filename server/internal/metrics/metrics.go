package metrics

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Family names.
const (
	CallbackInvocations = "launchdash_callback_invocations_total"
	CallbackErrors      = "launchdash_callback_errors_total"
	HTTPRequests        = "launchdash_http_requests_total"
	DatasetRecords      = "launchdash_dataset_records"
	WSClients           = "launchdash_ws_clients"
)

type requestKey struct {
	path string
	code int
}

type gaugeFunc struct {
	name string
	help string
	fn   func() float64
}

// Metrics is safe for concurrent use.
type Metrics struct {
	mu          sync.Mutex
	invocations map[string]float64
	errors      map[string]float64
	requests    map[requestKey]float64
	gauges      []gaugeFunc
}

// New returns an empty Metrics.
func New() *Metrics {
	return &Metrics{
		invocations: make(map[string]float64),
		errors:      make(map[string]float64),
		requests:    make(map[requestKey]float64),
	}
}

// ObserveCallback counts one callback run. Its signature matches
// callback.Observer so it can be passed to Registry.Observe directly.
func (m *Metrics) ObserveCallback(output string, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invocations[output]++
	if err != nil {
		m.errors[output]++
	}
}

// ObserveRequest counts one HTTP response. path should be the route
// pattern, not the raw URL, to keep the label set bounded.
func (m *Metrics) ObserveRequest(path string, code int) {
	m.mu.Lock()
	m.requests[requestKey{path: path, code: code}]++
	m.mu.Unlock()
}

// GaugeFunc registers a gauge whose value is read from fn at gather time.
func (m *Metrics) GaugeFunc(name, help string, fn func() float64) {
	m.mu.Lock()
	m.gauges = append(m.gauges, gaugeFunc{name: name, help: help, fn: fn})
	m.mu.Unlock()
}

// Gather snapshots every family that has at least one sample, sorted by
// name.
func (m *Metrics) Gather() []*dto.MetricFamily {
	m.mu.Lock()
	fams := []*dto.MetricFamily{
		counterFamily(CallbackInvocations, "Callback dispatches that reached a handler.", "output", m.invocations),
		counterFamily(CallbackErrors, "Callback dispatches whose handler returned an error.", "output", m.errors),
		m.requestFamily(),
	}
	gauges := append([]gaugeFunc(nil), m.gauges...)
	m.mu.Unlock()

	for _, g := range gauges {
		fams = append(fams, &dto.MetricFamily{
			Name:   strPtr(g.name),
			Help:   strPtr(g.help),
			Type:   dto.MetricType_GAUGE.Enum(),
			Metric: []*dto.Metric{{Gauge: &dto.Gauge{Value: floatPtr(g.fn())}}},
		})
	}
	out := fams[:0]
	for _, mf := range fams {
		// The text encoder rejects families without samples.
		if len(mf.Metric) > 0 {
			out = append(out, mf)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GetName() < out[j].GetName() })
	return out
}

// Write encodes every family to w in the given exposition format.
func (m *Metrics) Write(w io.Writer, format expfmt.Format) error {
	enc := expfmt.NewEncoder(w, format)
	for _, mf := range m.Gather() {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("metrics: encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// Handler serves the text exposition format.
func (m *Metrics) Handler() http.Handler {
	format := expfmt.NewFormat(expfmt.TypeTextPlain)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", string(format))
		if err := m.Write(w, format); err != nil {
			slog.Warn("metrics write failed", "err", err)
		}
	})
}

// --- family builders (callers hold m.mu) ---

func counterFamily(name, help, label string, vals map[string]float64) *dto.MetricFamily {
	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	mf := &dto.MetricFamily{Name: strPtr(name), Help: strPtr(help), Type: dto.MetricType_COUNTER.Enum()}
	for _, k := range keys {
		mf.Metric = append(mf.Metric, &dto.Metric{
			Label:   []*dto.LabelPair{{Name: strPtr(label), Value: strPtr(k)}},
			Counter: &dto.Counter{Value: floatPtr(vals[k])},
		})
	}
	return mf
}

func (m *Metrics) requestFamily() *dto.MetricFamily {
	keys := make([]requestKey, 0, len(m.requests))
	for k := range m.requests {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].path != keys[j].path {
			return keys[i].path < keys[j].path
		}
		return keys[i].code < keys[j].code
	})

	mf := &dto.MetricFamily{
		Name: strPtr(HTTPRequests),
		Help: strPtr("HTTP responses by route and status code."),
		Type: dto.MetricType_COUNTER.Enum(),
	}
	for _, k := range keys {
		mf.Metric = append(mf.Metric, &dto.Metric{
			Label: []*dto.LabelPair{
				{Name: strPtr("code"), Value: strPtr(strconv.Itoa(k.code))},
				{Name: strPtr("path"), Value: strPtr(k.path)},
			},
			Counter: &dto.Counter{Value: floatPtr(m.requests[k])},
		})
	}
	return mf
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
