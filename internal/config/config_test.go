package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SHOPCARTS_URL", "")
	t.Setenv("SHOPCARTS_TIMEOUT", "")
	t.Setenv("CARTCONSOLE_DEBUG", "")
	t.Setenv("CARTCONSOLE_LOG_LEVEL", "")
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Service.BaseURL != "http://localhost:8080" {
		t.Errorf("unexpected base url %q", cfg.Service.BaseURL)
	}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Errorf("unexpected timeout %v", cfg.RequestTimeout())
	}
	if cfg.Logging.DebugMode {
		t.Error("debug mode must default off")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if cfg.Service.BaseURL != Default().Service.BaseURL {
		t.Errorf("unexpected base url %q", cfg.Service.BaseURL)
	}
}

func TestLoadFileValues(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
service:
  base_url: http://carts.internal:9090
  timeout: 5s
logging:
  debug_mode: true
  level: debug
  categories:
    api: false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Service.BaseURL != "http://carts.internal:9090" {
		t.Errorf("unexpected base url %q", cfg.Service.BaseURL)
	}
	if cfg.RequestTimeout() != 5*time.Second {
		t.Errorf("unexpected timeout %v", cfg.RequestTimeout())
	}
	if !cfg.Logging.DebugMode || cfg.Logging.Level != "debug" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
	if enabled, ok := cfg.Logging.Categories["api"]; !ok || enabled {
		t.Errorf("api category should be disabled: %+v", cfg.Logging.Categories)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
service:
  base_url: http://carts.internal:9090
`)
	t.Setenv("SHOPCARTS_URL", "http://override:8080")
	t.Setenv("SHOPCARTS_TIMEOUT", "2s")
	t.Setenv("CARTCONSOLE_DEBUG", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Service.BaseURL != "http://override:8080" {
		t.Errorf("env must win over file: %q", cfg.Service.BaseURL)
	}
	if cfg.RequestTimeout() != 2*time.Second {
		t.Errorf("unexpected timeout %v", cfg.RequestTimeout())
	}
	if !cfg.Logging.DebugMode {
		t.Error("CARTCONSOLE_DEBUG must enable debug mode")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "service: [not a map")
	if _, err := Load(path); err == nil {
		t.Fatal("malformed yaml must be an error")
	}
}

func TestRequestTimeoutFallback(t *testing.T) {
	cfg := Default()
	for _, bad := range []string{"", "soon", "-5s"} {
		cfg.Service.Timeout = bad
		if cfg.RequestTimeout() != 30*time.Second {
			t.Errorf("timeout %q must fall back to 30s, got %v", bad, cfg.RequestTimeout())
		}
	}
}
