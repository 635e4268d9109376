package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load or create: %v", err)
	}
	if cfg.Storage != StorageFile {
		t.Fatalf("unexpected default storage: %q", cfg.Storage)
	}
	if cfg.DesktopNotifications {
		t.Fatal("desktop notifications must default off")
	}
	if cfg.Keys.Quit != "q" || cfg.Keys.Toggle != " " {
		t.Fatalf("unexpected default keymap: %+v", cfg.Keys)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
}

func TestLoadOrCreateReadsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "storage = \"sqlite\"\ndesktop_notifications = true\n\n[keys]\nquit = \"x\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage != StorageSQLite || !cfg.DesktopNotifications {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Keys.Quit != "x" {
		t.Fatalf("keymap override lost: %+v", cfg.Keys)
	}
	if cfg.DataDir == "" {
		t.Fatal("expected data dir defaulted to config dir")
	}
}

func TestLoadOrCreateRejectsUnknownStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("storage = \"cloud\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadOrCreate(path); err == nil {
		t.Fatal("expected validation error for unknown storage backend")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load or create: %v", err)
	}
	cfg.DesktopNotifications = true
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !got.DesktopNotifications {
		t.Fatal("toggle not persisted")
	}
}
