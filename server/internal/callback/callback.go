package callback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// ErrBadRequest marks errors caused by the request rather than the callback.
var ErrBadRequest = errors.New("bad callback request")

// Dependency names one property of one component, e.g. site-dropdown.value.
type Dependency struct {
	ID       string `json:"id"`
	Property string `json:"property"`
}

// String returns "id.property".
func (d Dependency) String() string { return d.ID + "." + d.Property }

// ParseDependency parses "id.property". The property is everything after
// the last dot so component ids may themselves contain dots.
func ParseDependency(s string) (Dependency, error) {
	i := strings.LastIndex(s, ".")
	if i <= 0 || i == len(s)-1 {
		return Dependency{}, fmt.Errorf("%w: dependency %q: want id.property", ErrBadRequest, s)
	}
	return Dependency{ID: s[:i], Property: s[i+1:]}, nil
}

// Values holds the raw JSON input values of one invocation.
type Values map[Dependency]json.RawMessage

// Decode unmarshals the value of dep into dst.
func (v Values) Decode(dep Dependency, dst interface{}) error {
	raw, ok := v[dep]
	if !ok {
		return fmt.Errorf("%w: missing input %s", ErrBadRequest, dep)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: input %s: %v", ErrBadRequest, dep, err)
	}
	return nil
}

// Func computes an output value from the declared inputs.
type Func func(ctx context.Context, in Values) (interface{}, error)

// Callback binds an output to its inputs and compute function.
type Callback struct {
	Output Dependency
	Inputs []Dependency
	Fn     Func
}

// InputValue is one input as sent by the client.
type InputValue struct {
	ID       string          `json:"id"`
	Property string          `json:"property"`
	Value    json.RawMessage `json:"value"`
}

// Request asks for one output to be recomputed.
type Request struct {
	Output string       `json:"output"`
	Inputs []InputValue `json:"inputs"`
}

// Response carries the recomputed output value.
type Response struct {
	Output string      `json:"output"`
	Value  interface{} `json:"value"`
}

// Wiring describes one registration, as listed by Registry.Wiring.
type Wiring struct {
	Output string   `json:"output"`
	Inputs []string `json:"inputs"`
}

// Observer is notified after every dispatch that reached a callback.
type Observer func(output string, elapsed time.Duration, err error)

// Registry holds callbacks keyed by output. Registration normally happens
// once at startup; Dispatch is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	callbacks map[Dependency]Callback
	observers []Observer
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{callbacks: make(map[Dependency]Callback)}
}

// Register adds cb. An output can only be computed by one callback.
func (r *Registry) Register(cb Callback) error {
	if cb.Fn == nil {
		return fmt.Errorf("callback %s: nil func", cb.Output)
	}
	if len(cb.Inputs) == 0 {
		return fmt.Errorf("callback %s: no inputs", cb.Output)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.callbacks[cb.Output]; dup {
		return fmt.Errorf("callback %s: output already registered", cb.Output)
	}
	r.callbacks[cb.Output] = cb
	return nil
}

// Observe adds fn to the observers called after each dispatch.
func (r *Registry) Observe(fn Observer) {
	r.mu.Lock()
	r.observers = append(r.observers, fn)
	r.mu.Unlock()
}

// Wiring lists every registration sorted by output.
func (r *Registry) Wiring() []Wiring {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Wiring, 0, len(r.callbacks))
	for dep, cb := range r.callbacks {
		w := Wiring{Output: dep.String(), Inputs: make([]string, 0, len(cb.Inputs))}
		for _, in := range cb.Inputs {
			w.Inputs = append(w.Inputs, in.String())
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Output < out[j].Output })
	return out
}

// Dispatch runs the callback registered for req.Output.
func (r *Registry) Dispatch(ctx context.Context, req Request) (Response, error) {
	out, err := ParseDependency(req.Output)
	if err != nil {
		return Response{}, err
	}

	r.mu.RLock()
	cb, ok := r.callbacks[out]
	observers := r.observers
	r.mu.RUnlock()
	if !ok {
		return Response{}, fmt.Errorf("%w: unknown output %s", ErrBadRequest, out)
	}

	in := make(Values, len(req.Inputs))
	for _, v := range req.Inputs {
		in[Dependency{ID: v.ID, Property: v.Property}] = v.Value
	}
	for _, dep := range cb.Inputs {
		if _, ok := in[dep]; !ok {
			return Response{}, fmt.Errorf("%w: %s needs input %s", ErrBadRequest, out, dep)
		}
	}

	start := time.Now()
	val, err := cb.Fn(ctx, in)
	elapsed := time.Since(start)
	for _, obs := range observers {
		obs(req.Output, elapsed, err)
	}
	if err != nil {
		return Response{}, fmt.Errorf("callback %s: %w", out, err)
	}
	return Response{Output: req.Output, Value: val}, nil
}
