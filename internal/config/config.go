package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/imdario/mergo"

	"github.com/vango-dev/domkit/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "domkit.json"

	// DefaultPort is the default preview server port.
	DefaultPort = 7070

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultIndent is the indent used for pretty output.
	DefaultIndent = "  "

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = "30s"
)

// Config represents the complete domkit.json configuration.
type Config struct {
	// Server contains preview server configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Render contains output configuration for rendered HTML.
	Render RenderConfig `json:"render,omitempty"`

	// Request contains defaults for outgoing requests.
	Request RequestConfig `json:"request,omitempty"`

	// Style contains the inline style properties known to the prefix probe.
	Style StyleConfig `json:"style,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains preview server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// Metrics exposes /metrics and records request metrics.
	Metrics bool `json:"metrics,omitempty"`

	// Tracing wraps requests in OpenTelemetry spans.
	Tracing bool `json:"tracing,omitempty"`
}

// RenderConfig contains HTML output settings.
type RenderConfig struct {
	// Pretty indents element children on their own lines.
	Pretty bool `json:"pretty,omitempty"`

	// Indent is the indent unit used when Pretty is set.
	Indent string `json:"indent,omitempty"`
}

// RequestConfig contains outgoing request settings.
type RequestConfig struct {
	// Timeout is a duration string such as "10s".
	Timeout string `json:"timeout,omitempty"`

	// ParseJSON decodes every response body as JSON.
	ParseJSON bool `json:"parseJSON,omitempty"`
}

// StyleConfig contains inline style settings.
type StyleConfig struct {
	// Properties lists the style properties the document supports,
	// including vendor-prefixed names such as "WebkitTransform".
	Properties []string `json:"properties,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Render: RenderConfig{
			Indent: DefaultIndent,
		},
		Request: RequestConfig{
			Timeout: DefaultTimeout,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for domkit.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E121").
				WithDetail("No domkit.json found in " + filepath.Dir(path)).
				WithSuggestion("Create domkit.json or run without a config file to use defaults")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse domkit.json: " + err.Error()).
			WithSuggestion("Check that domkit.json is valid JSON")
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	cfg.configPath = path

	return cfg, nil
}

// LoadOrDefault loads domkit.json from dir, falling back to New() when
// the file does not exist.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if errors.HasCode(err, "E121") {
		return New(), nil
	}
	return cfg, err
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() error {
	if err := mergo.Merge(c, New()); err != nil {
		return errors.New("E120").Wrap(err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E122").
			WithDetail("server.port must be between 0 and 65535")
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New("E122").
			WithDetail("log.level must be one of debug, info, warn, error").
			WithSuggestion(`Use "level": "info"`)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return errors.New("E122").
			WithDetail("log.format must be text or json")
	}
	if c.Request.Timeout != "" {
		d, err := time.ParseDuration(c.Request.Timeout)
		if err != nil || d < 0 {
			return errors.New("E122").
				WithDetail("request.timeout must be a duration such as \"10s\"")
		}
	}
	if strings.Trim(c.Render.Indent, " \t") != "" {
		return errors.New("E122").
			WithDetail("render.indent may only contain spaces and tabs")
	}
	return nil
}

// Address returns the listen address of the preview server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// URL returns the base URL of the preview server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// RequestTimeout returns the parsed request timeout, zero when unset or
// invalid.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Request.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// LogLevel returns the slog level for Log.Level, info when unknown.
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

// JSONLogs reports whether logs should be written as JSON.
func (c *Config) JSONLogs() bool {
	return strings.EqualFold(c.Log.Format, "json")
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing domkit.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E121").
				WithDetail("No domkit.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}
