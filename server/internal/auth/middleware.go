package auth

import (
	"crypto/subtle"
	"net/http"
)

// QueryParam is the query parameter accepted in place of the header.
const QueryParam = "api_key"

// APIKey returns middleware enforcing API key authentication.
//
// Behaviour:
//   - If mode != "apikey" or key == "", all requests are allowed.
//   - Requests whose path is in open are allowed.
//   - Otherwise the key is read from header, then from the api_key query
//     parameter. A missing or incorrect key gets 401 with a JSON error body.
func APIKey(mode, header, key string, open ...string) func(http.Handler) http.Handler {
	exempt := make(map[string]bool, len(open))
	for _, p := range open {
		exempt[p] = true
	}
	return func(next http.Handler) http.Handler {
		if mode != "apikey" || key == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if exempt[r.URL.Path] || valid(presented(r, header), key) {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("WWW-Authenticate", `APIKey header="`+header+`"`)
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid api key"}` + "\n"))
		})
	}
}

func presented(r *http.Request, header string) string {
	if v := r.Header.Get(header); v != "" {
		return v
	}
	return r.URL.Query().Get(QueryParam)
}

func valid(got, want string) bool {
	if got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
