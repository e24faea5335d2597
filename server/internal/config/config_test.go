package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	p := writeConfig(t, `log:
  level: info
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTPPort != DefaultHTTPPort {
		t.Errorf("http_port: got %d, want %d", cfg.Server.HTTPPort, DefaultHTTPPort)
	}
	if cfg.Server.Addr() != "127.0.0.1:8050" {
		t.Errorf("Addr: got %q, want 127.0.0.1:8050", cfg.Server.Addr())
	}
	if cfg.Data.Path != DefaultDataPath {
		t.Errorf("data.path: got %q, want %q", cfg.Data.Path, DefaultDataPath)
	}
	if cfg.UI.Slider.Max != DefaultSliderMax || cfg.UI.Slider.Step != DefaultSliderStep {
		t.Errorf("slider: got %+v", cfg.UI.Slider)
	}
	if len(cfg.UI.Marks) != 5 {
		t.Errorf("marks: got %v, want 5 fixed marks", cfg.UI.Marks)
	}
	if !cfg.Server.Compression {
		t.Error("compression: got false, want true by default")
	}
}

func TestLoad_Full(t *testing.T) {
	p := writeConfig(t, `server:
  host: 0.0.0.0
  http_port: 9000
  compression: false
  pretty_html: true
  auth:
    mode: apikey
    key_env: DASH_KEY
    header: x-dash-key
data:
  path: /srv/launches.csv
ui:
  title: Launches
  slider:
    min: 0
    max: 20000
    step: 500
  marks: [0, 10000, 20000]
log:
  level: debug
  format: text
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:9000" {
		t.Errorf("Addr: got %q, want 0.0.0.0:9000", cfg.Server.Addr())
	}
	if cfg.Server.Compression {
		t.Error("compression: got true, want false")
	}
	if !cfg.Server.PrettyHTML {
		t.Error("pretty_html: got false, want true")
	}
	if cfg.Server.Auth.EffectiveHeader() != "x-dash-key" {
		t.Errorf("header: got %q, want x-dash-key", cfg.Server.Auth.EffectiveHeader())
	}
	if cfg.Data.Path != "/srv/launches.csv" {
		t.Errorf("data.path: got %q", cfg.Data.Path)
	}
	if cfg.UI.Slider.Max != 20000 || cfg.UI.Slider.Step != 500 {
		t.Errorf("slider: got %+v", cfg.UI.Slider)
	}
	if len(cfg.UI.Marks) != 3 {
		t.Errorf("marks: got %v, want 3", cfg.UI.Marks)
	}
	if cfg.Log.SlogLevel() != slog.LevelDebug {
		t.Errorf("level: got %v, want debug", cfg.Log.SlogLevel())
	}
}

func TestLoad_DefaultHeader(t *testing.T) {
	p := writeConfig(t, `server:
  auth:
    mode: apikey
    key_env: K
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if h := cfg.Server.Auth.EffectiveHeader(); h != "x-api-key" {
		t.Errorf("EffectiveHeader: got %q, want x-api-key", h)
	}
}

func TestLoad_KeyEnvResolution(t *testing.T) {
	t.Setenv("TEST_DASH_KEY", "supersecret")
	p := writeConfig(t, `server:
  auth:
    mode: apikey
    key_env: TEST_DASH_KEY
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if k := cfg.Server.Auth.Key(); k != "supersecret" {
		t.Errorf("Key(): got %q, want supersecret", k)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LAUNCHDASH_PORT", "8123")
	t.Setenv("LAUNCHDASH_DATA_PATH", "/tmp/other.csv")
	t.Setenv("LAUNCHDASH_LOG_LEVEL", "warn")
	p := writeConfig(t, `server:
  http_port: 9000
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTPPort != 8123 {
		t.Errorf("http_port: got %d, want 8123", cfg.Server.HTTPPort)
	}
	if cfg.Data.Path != "/tmp/other.csv" {
		t.Errorf("data.path: got %q, want /tmp/other.csv", cfg.Data.Path)
	}
	if cfg.Log.SlogLevel() != slog.LevelWarn {
		t.Errorf("level: got %v, want warn", cfg.Log.SlogLevel())
	}
}

func TestLoadDefault(t *testing.T) {
	t.Setenv("LAUNCHDASH_HOST", "0.0.0.0")
	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("host: got %q, want 0.0.0.0", cfg.Server.Host)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"auth mode":   "server:\n  auth:\n    mode: oauth2\n",
		"port":        "server:\n  http_port: 70000\n",
		"slider step": "ui:\n  slider:\n    step: 0\n",
		"slider span": "ui:\n  slider:\n    min: 10\n    max: 10\n",
		"log level":   "log:\n  level: loud\n",
		"log format":  "log:\n  format: xml\n",
		"data path":   "data:\n  path: \"\"\n",
		"yaml":        "server: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug, "INFO": slog.LevelInfo, "": slog.LevelInfo,
		"warning": slog.LevelWarn, "error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseLevel(%q): got %v, want %v", in, got, want)
		}
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	p := writeConfig(t, "log:\n  level: info\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 4)
	errc := make(chan error, 1)
	go func() {
		errc <- Watch(ctx, p, func(c *Config) {
			select {
			case got <- c:
			default:
			}
		})
	}()

	// Give the watcher time to register before writing.
	deadline := time.After(3 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case c := <-got:
			// A truncate can surface as its own write event with an empty file.
			if c.Log.Level != "debug" {
				continue
			}
			cancel()
			if err := <-errc; err != nil {
				t.Errorf("Watch: %v", err)
			}
			return
		case <-tick.C:
			if err := os.WriteFile(p, []byte("log:\n  level: debug\n"), 0o600); err != nil {
				t.Fatalf("rewrite config: %v", err)
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}

func TestWatch_MissingFile(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"), func(*Config) {})
	if err == nil {
		t.Error("expected error watching a missing file")
	}
}
