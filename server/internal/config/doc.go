// Package config loads the launchdash configuration from a YAML file.
//
// Config fields:
//   - Server.Host, Server.HTTPPort - listen address (default 127.0.0.1:8050)
//   - Server.Auth                  - "apikey" or "none"; key resolved from KeyEnv
//   - Server.Compression           - brotli responses (default on)
//   - Server.PrettyHTML            - format the index page with gohtml
//   - Data.Path                    - launch record CSV (default spacex_launch_dash.csv)
//   - UI.Title, UI.Slider, UI.Marks - static view settings
//   - Log.Level, Log.Format        - slog level and handler
//
// Load(path) applies defaults before unmarshalling, then the LAUNCHDASH_*
// environment overrides, then validates. Watch(ctx, path, onChange) reloads
// the file on change using fsnotify.
package config
