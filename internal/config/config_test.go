package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vango-dev/domkit/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Render.Indent != DefaultIndent {
		t.Errorf("Render.Indent = %q, want %q", cfg.Render.Indent, DefaultIndent)
	}
	if cfg.Request.Timeout != DefaultTimeout {
		t.Errorf("Request.Timeout = %q, want %q", cfg.Request.Timeout, DefaultTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Test loading non-existent config
	_, err := Load(tmpDir)
	if !errors.HasCode(err, "E121") {
		t.Errorf("Load(missing) = %v, want E121", err)
	}

	configJSON := `{
  "server": {
    "port": 8080,
    "metrics": true
  },
  "render": {
    "pretty": true
  },
  "style": {
    "properties": ["WebkitTransform", "transition"]
  },
  "log": {
    "level": "debug"
  }
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	want := &Config{
		Server:  ServerConfig{Host: DefaultHost, Port: 8080, Metrics: true},
		Render:  RenderConfig{Pretty: true, Indent: DefaultIndent},
		Request: RequestConfig{Timeout: DefaultTimeout},
		Style:   StyleConfig{Properties: []string{"WebkitTransform", "transition"}},
		Log:     LogConfig{Level: "debug", Format: "text"},
	}
	if diff := cmp.Diff(want, cfg, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
	if cfg.Path() != filepath.Join(tmpDir, ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), tmpDir)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(`{"server":`), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(tmpDir)
	if !errors.HasCode(err, "E120") {
		t.Errorf("Load(invalid) = %v, want E120", err)
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOrDefault error: %v", err)
	}
	if diff := cmp.Diff(New(), cfg, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	if err := cfg.Save(); err == nil {
		t.Error("Save() without a path should fail")
	}

	cfg.Server.Port = 9000
	cfg.Log.Format = "json"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if loaded.Server.Port != 9000 || !loaded.JSONLogs() {
		t.Errorf("reloaded config = %+v", loaded)
	}

	loaded.Server.Port = 9001
	if err := loaded.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	again, _ := LoadFile(path)
	if again.Server.Port != 9001 {
		t.Errorf("Port after Save = %d, want 9001", again.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"negative port", func(c *Config) { c.Server.Port = -1 }, true},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"warning level", func(c *Config) { c.Log.Level = "WARNING" }, false},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"bad timeout", func(c *Config) { c.Request.Timeout = "soon" }, true},
		{"negative timeout", func(c *Config) { c.Request.Timeout = "-1s" }, true},
		{"empty timeout", func(c *Config) { c.Request.Timeout = "" }, false},
		{"tab indent", func(c *Config) { c.Render.Indent = "\t" }, false},
		{"bad indent", func(c *Config) { c.Render.Indent = "--" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.HasCode(err, "E122") {
				t.Errorf("Validate() code = %v, want E122", err)
			}
		})
	}
}

func TestHelpers(t *testing.T) {
	cfg := New()
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8181
	cfg.Request.Timeout = "1500ms"
	cfg.Log.Level = "error"

	if got := cfg.Address(); got != "0.0.0.0:8181" {
		t.Errorf("Address() = %q", got)
	}
	if got := cfg.URL(); got != "http://0.0.0.0:8181" {
		t.Errorf("URL() = %q", got)
	}
	if got := cfg.RequestTimeout(); got != 1500*time.Millisecond {
		t.Errorf("RequestTimeout() = %v", got)
	}
	if got := cfg.LogLevel(); got != slog.LevelError {
		t.Errorf("LogLevel() = %v", got)
	}
	if cfg.JSONLogs() {
		t.Error("JSONLogs() = true for text format")
	}

	cfg.Request.Timeout = "never"
	if got := cfg.RequestTimeout(); got != 0 {
		t.Errorf("RequestTimeout(invalid) = %v, want 0", got)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ConfigFileName), []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindProjectRoot() = %q, want %q", got, want)
	}
	if !Exists(root) || Exists(nested) {
		t.Error("Exists() mismatch")
	}
}
