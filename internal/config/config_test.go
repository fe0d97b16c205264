package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultMatchesLegacyLiterals(t *testing.T) {
	cfg := Default()

	if cfg.Port != 8443 {
		t.Errorf("Port = %d, want 8443", cfg.Port)
	}
	if cfg.Passphrase != "123456" {
		t.Errorf("Passphrase = %q, want the legacy literal", cfg.Passphrase)
	}
	if cfg.LogCap != 100 {
		t.Errorf("LogCap = %d, want 100", cfg.LogCap)
	}
	if cfg.MaxConns <= 0 {
		t.Errorf("MaxConns = %d, want a positive cap", cfg.MaxConns)
	}
	if cfg.IdleTimeout <= 0 {
		t.Errorf("IdleTimeout = %v, want a positive timeout", cfg.IdleTimeout)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 8443 {
		t.Errorf("Port = %d, want default 8443", cfg.Port)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	in := Default()
	in.Port = 9443
	in.InterfaceName = "eth0"
	in.IdleTimeout = 30 * time.Second
	in.Advertise = false

	if err := in.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if out.Port != 9443 {
		t.Errorf("Port = %d, want 9443", out.Port)
	}
	if out.InterfaceName != "eth0" {
		t.Errorf("InterfaceName = %q, want eth0", out.InterfaceName)
	}
	if out.IdleTimeout != 30*time.Second {
		t.Errorf("IdleTimeout = %v, want 30s", out.IdleTimeout)
	}
	if out.Advertise {
		t.Error("Advertise = true, want false")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("port: 9000\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.LogCap != 100 {
		t.Errorf("LogCap = %d, want default 100 for a field absent from the file", cfg.LogCap)
	}
}
