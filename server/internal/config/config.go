package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default values for the dashboard configuration.
const (
	DefaultHost       = "127.0.0.1"
	DefaultHTTPPort   = 8050
	DefaultDataPath   = "spacex_launch_dash.csv"
	DefaultTitle      = "SpaceX Launch Records Dashboard"
	DefaultSliderMin  = 0
	DefaultSliderMax  = 10000
	DefaultSliderStep = 100
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "json"
)

// DefaultMarks are the fixed reference points labelled on the payload slider.
var DefaultMarks = []float64{0, 2500, 5000, 7500, 10000}

// Config is the full configuration tree parsed from the YAML file.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Data   DataConfig   `yaml:"data"`
	UI     UIConfig     `yaml:"ui"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	// Host is the interface the HTTP server binds to (default 127.0.0.1).
	Host string `yaml:"host"`

	// HTTPPort is the port for the page, REST API and websocket (default 8050).
	HTTPPort int `yaml:"http_port"`

	// Auth configures API key checks on the API and websocket routes.
	Auth AuthConfig `yaml:"auth"`

	// Compression enables brotli-encoded responses for clients that accept br.
	Compression bool `yaml:"compression"`

	// PrettyHTML formats the index page before it is served.
	PrettyHTML bool `yaml:"pretty_html"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.HTTPPort)
}

// AuthConfig controls client authentication.
type AuthConfig struct {
	// Mode is one of: apikey | none.
	Mode string `yaml:"mode"`

	// KeyEnv is the name of the environment variable that holds the expected API key.
	KeyEnv string `yaml:"key_env"`

	// Header is the HTTP header to read the key from. Defaults to "x-api-key".
	Header string `yaml:"header"`
}

// Key returns the expected API key resolved from the environment.
func (a AuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// EffectiveHeader returns the configured header name, or the default "x-api-key".
func (a AuthConfig) EffectiveHeader() string {
	if a.Header != "" {
		return a.Header
	}
	return "x-api-key"
}

// DataConfig locates the launch record file.
type DataConfig struct {
	Path string `yaml:"path"`
}

// UIConfig holds the static view settings.
type UIConfig struct {
	Title  string       `yaml:"title"`
	Slider SliderConfig `yaml:"slider"`

	// Marks are the fixed payload values always labelled on the slider.
	Marks []float64 `yaml:"marks"`
}

// SliderConfig bounds the payload range control.
type SliderConfig struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// LogConfig selects the slog handler and level.
type LogConfig struct {
	// Level is one of: debug | info | warn | error.
	Level string `yaml:"level"`

	// Format is one of: json | text.
	Format string `yaml:"format"`
}

// SlogLevel converts Level to a slog.Level. Unknown levels map to info;
// validate rejects them before this is reached.
func (l LogConfig) SlogLevel() slog.Level {
	lvl, err := ParseLevel(l.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// ParseLevel parses a case-insensitive level name.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q: want debug|info|warn|error", s)
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return defaults()
}

// Load reads and parses the config file at path. Missing fields are filled
// with defaults, then environment overrides are applied, then the result is
// validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	return finish(cfg)
}

// LoadDefault returns the defaults with environment overrides applied.
func LoadDefault() (*Config, error) {
	return finish(defaults())
}

func finish(cfg *Config) (*Config, error) {
	if err := applyEnv(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	marks := make([]float64, len(DefaultMarks))
	copy(marks, DefaultMarks)
	return &Config{
		Server: ServerConfig{
			Host:        DefaultHost,
			HTTPPort:    DefaultHTTPPort,
			Compression: true,
		},
		Data: DataConfig{Path: DefaultDataPath},
		UI: UIConfig{
			Title: DefaultTitle,
			Slider: SliderConfig{
				Min:  DefaultSliderMin,
				Max:  DefaultSliderMax,
				Step: DefaultSliderStep,
			},
			Marks: marks,
		},
		Log: LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d is out of range [1, 65535]", cfg.Server.HTTPPort)
	}
	switch cfg.Server.Auth.Mode {
	case "apikey", "none", "":
	default:
		return fmt.Errorf("server.auth.mode %q unknown: want apikey|none", cfg.Server.Auth.Mode)
	}
	if cfg.Data.Path == "" {
		return fmt.Errorf("data.path must not be empty")
	}
	s := cfg.UI.Slider
	if s.Step <= 0 {
		return fmt.Errorf("ui.slider.step must be positive, got %v", s.Step)
	}
	if s.Min >= s.Max {
		return fmt.Errorf("ui.slider.min %v must be below ui.slider.max %v", s.Min, s.Max)
	}
	if _, err := ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch cfg.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format %q unknown: want json|text", cfg.Log.Format)
	}
	return nil
}
