package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *cfg != *Default() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "source_dir = \"saves\"\npasses = 2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.SourceDir != "saves" || cfg.Passes != 2 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.OutputDir != "output" || cfg.CardTemplate != "card.json" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"zero passes": "passes = 0\n",
		"bad pattern": "pattern = \"[\"\n",
		"bad toml":    "passes = \n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if _, err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *cfg != *Default() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestGetConfigFilePathUsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := GetConfigFilePath(); got != filepath.Join("/tmp/xdg", "deckhand", "config.toml") {
		t.Fatalf("GetConfigFilePath = %s", got)
	}
}
