// Package auth provides API key middleware for the launchdash HTTP server.
//
// APIKey(mode, header, key, open...) wraps an http.Handler. When mode is
// "apikey" and key is set, a request must carry the key either in the named
// header or in the api_key query parameter (browsers cannot set headers on a
// websocket upgrade). Paths listed in open are always allowed.
//
// When mode != "apikey" or key == "", every request passes through, which
// is the local development setup.
package auth
