package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppliesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.toml")
	body := `
[server]
bind_address = "127.0.0.1:9090"

[engine]
default_player_hp = 7
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.BindAddress != "127.0.0.1:9090" {
		t.Errorf("bind address = %q, want override", cfg.Server.BindAddress)
	}
	if cfg.Engine.DefaultPlayerHP != 7 {
		t.Errorf("default player hp = %d, want 7", cfg.Engine.DefaultPlayerHP)
	}
	if cfg.Engine.ClassicBagSize != 88 {
		t.Errorf("classic bag size = %d, want default 88 preserved", cfg.Engine.ClassicBagSize)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("logging level = %q, want default info preserved", cfg.Logging.Level)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
