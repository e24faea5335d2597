package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func serve(h http.Handler, target, header, key string) int {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if key != "" {
		req.Header.Set(header, key)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestAPIKey_ModeNone_PassesThrough(t *testing.T) {
	h := APIKey("none", "x-api-key", "secret")(okHandler)
	if got := serve(h, "/api/v1/layout", "", ""); got != http.StatusOK {
		t.Errorf("status: got %d, want 200", got)
	}
}

func TestAPIKey_EmptyKey_PassesThrough(t *testing.T) {
	h := APIKey("apikey", "x-api-key", "")(okHandler)
	if got := serve(h, "/api/v1/layout", "", ""); got != http.StatusOK {
		t.Errorf("status: got %d, want 200", got)
	}
}

func TestAPIKey_Header(t *testing.T) {
	h := APIKey("apikey", "x-api-key", "secret")(okHandler)

	cases := []struct {
		name string
		key  string
		want int
	}{
		{"correct", "secret", http.StatusOK},
		{"wrong", "nope", http.StatusUnauthorized},
		{"missing", "", http.StatusUnauthorized},
		{"prefix", "secre", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		if got := serve(h, "/api/v1/layout", "x-api-key", tc.key); got != tc.want {
			t.Errorf("%s: status: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestAPIKey_CustomHeader(t *testing.T) {
	h := APIKey("apikey", "authorization-token", "secret")(okHandler)
	if got := serve(h, "/api/v1/layout", "authorization-token", "secret"); got != http.StatusOK {
		t.Errorf("custom header: got %d, want 200", got)
	}
	if got := serve(h, "/api/v1/layout", "x-api-key", "secret"); got != http.StatusUnauthorized {
		t.Errorf("default header: got %d, want 401", got)
	}
}

func TestAPIKey_QueryParam(t *testing.T) {
	h := APIKey("apikey", "x-api-key", "secret")(okHandler)
	if got := serve(h, "/ws/callbacks?api_key=secret", "", ""); got != http.StatusOK {
		t.Errorf("query key: got %d, want 200", got)
	}
	if got := serve(h, "/ws/callbacks?api_key=bad", "", ""); got != http.StatusUnauthorized {
		t.Errorf("bad query key: got %d, want 401", got)
	}
}

func TestAPIKey_OpenPaths(t *testing.T) {
	h := APIKey("apikey", "x-api-key", "secret", "/", "/api/v1/health")(okHandler)
	for _, p := range []string{"/", "/api/v1/health"} {
		if got := serve(h, p, "", ""); got != http.StatusOK {
			t.Errorf("%s: got %d, want 200", p, got)
		}
	}
	if got := serve(h, "/metrics", "", ""); got != http.StatusUnauthorized {
		t.Errorf("/metrics: got %d, want 401", got)
	}
}

func TestAPIKey_UnauthorizedBody(t *testing.T) {
	h := APIKey("apikey", "x-api-key", "secret")(okHandler)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/layout", nil))
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}
	if body := rec.Body.String(); body != "{\"error\":\"invalid api key\"}\n" {
		t.Errorf("body: got %q", body)
	}
}
