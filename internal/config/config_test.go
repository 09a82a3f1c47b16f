package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `server:
  port: "9090"
redis:
  addr: "localhost:6379"
  ttl: "30s"
banks:
  dir: "/srv/banks"
metrics:
  enabled: false
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.BanksDir() != "/srv/banks" {
		t.Fatalf("unexpected banks dir %q", cfg.BanksDir())
	}
	if cfg.MetricsEnabled() {
		t.Fatalf("expected metrics disabled")
	}
	if got := TTLDuration(cfg.Redis.TTL, time.Minute); got != 30*time.Second {
		t.Fatalf("expected 30s, got %v", got)
	}
}

func TestDefaults(t *testing.T) {
	var cfg Config
	if cfg.BanksDir() != "data/banks" {
		t.Fatalf("unexpected default banks dir %q", cfg.BanksDir())
	}
	if !cfg.MetricsEnabled() {
		t.Fatalf("expected metrics enabled by default")
	}
	if got := TTLDuration("", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback, got %v", got)
	}
	if got := TTLDuration("soon", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback for invalid duration, got %v", got)
	}
}

func TestShippedConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "config.yaml"))
	if err != nil {
		t.Fatalf("load shipped config: %v", err)
	}
	if cfg.Server.Port == "" {
		t.Fatalf("expected shipped port")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
