package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Width != 1280 || cfg.Height != 720 {
		t.Errorf("default canvas %dx%d, want 1280x720", cfg.Width, cfg.Height)
	}
	if cfg.FPS != 30 {
		t.Errorf("default FPS %d, want 30", cfg.FPS)
	}
	if cfg.HistoryDepth != 0 {
		t.Errorf("default history depth %d, want 0 (auto)", cfg.HistoryDepth)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	data := "width: 1920\nheight: 1080\nhistory_depth: 200\nbackground: \"#222222\"\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Width != 1920 || cfg.Height != 1080 {
		t.Errorf("canvas %dx%d, want 1920x1080", cfg.Width, cfg.Height)
	}
	if cfg.HistoryDepth != 200 {
		t.Errorf("history depth %d, want 200", cfg.HistoryDepth)
	}
	// Untouched keys keep their defaults.
	if cfg.FPS != 30 {
		t.Errorf("FPS %d, want default 30", cfg.FPS)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/config.yaml"); err == nil {
		t.Fatal("LoadFile accepted a missing file")
	}
}
