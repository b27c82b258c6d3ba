package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	os.WriteFile(path, []byte(`{"listen_address":":9090","artifact_directory":"/data"}`), 0o644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddress != ":9090" {
		t.Errorf("want listen address :9090, got %q", cfg.ListenAddress)
	}
	if cfg.ArtifactDirectory != "/data" {
		t.Errorf("want artifact directory /data, got %q", cfg.ArtifactDirectory)
	}
	if cfg.PathPrefix != "/ham/HamClock" {
		t.Errorf("want default path prefix preserved, got %q", cfg.PathPrefix)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	os.WriteFile(path, []byte(`{"listen_address":":9090"}`), 0o644)

	t.Setenv("HAMCLOCKD_LISTEN_ADDRESS", ":7070")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddress != ":7070" {
		t.Errorf("want env override :7070, got %q", cfg.ListenAddress)
	}
}

func TestLoadWithNoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddress != ":9086" {
		t.Errorf("want default listen address, got %q", cfg.ListenAddress)
	}
}
