package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseYAML(t *testing.T) {
	doc := []byte(`
analysis:
  sampling_rate: 360
  interpolation: linear
  transform: godsp
storage:
  sqlite:
    path: /var/lib/cardiorhythm/reports.db
rest:
  http_port: 9090
`)

	cfg, err := ParseYAML(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Analysis.SamplingRate != 360 {
		t.Errorf("expected sampling rate 360, got %v", cfg.Analysis.SamplingRate)
	}
	if cfg.Analysis.ResamplingRate != DefaultResamplingRate {
		t.Errorf("expected default resampling rate, got %v", cfg.Analysis.ResamplingRate)
	}
	if cfg.Analysis.Window != "hamming" {
		t.Errorf("expected default window hamming, got %q", cfg.Analysis.Window)
	}
	if cfg.Analysis.Transform != "godsp" {
		t.Errorf("expected transform godsp, got %q", cfg.Analysis.Transform)
	}
	if cfg.Storage.SQLite == nil || cfg.Storage.SQLite.Path != "/var/lib/cardiorhythm/reports.db" {
		t.Errorf("unexpected sqlite config: %+v", cfg.Storage.SQLite)
	}
	if cfg.REST == nil || cfg.REST.HTTPPort != 9090 || cfg.REST.ListenAddr != DefaultListenAddr {
		t.Errorf("unexpected rest config: %+v", cfg.REST)
	}
}

func TestParseYAMLRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "negative sampling rate", doc: "analysis:\n  sampling_rate: -1\n"},
		{name: "unknown window", doc: "analysis:\n  window: blackman\n"},
		{name: "unknown interpolation", doc: "analysis:\n  interpolation: akima\n"},
		{name: "unknown field", doc: "analysis:\n  sample_rate: 250\n"},
		{name: "empty sqlite path", doc: "storage:\n  sqlite:\n    path: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseYAML([]byte(tt.doc)); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestYAMLProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("analysis:\n  resampling_rate: 8\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewYAMLProvider(path).LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Analysis.ResamplingRate != 8 || cfg.Analysis.SamplingRate != DefaultSamplingRate {
		t.Errorf("unexpected analysis config: %+v", cfg.Analysis)
	}
	if cfg.REST != nil {
		t.Errorf("rest should stay disabled when not configured")
	}

	if _, err := NewYAMLProvider(filepath.Join(t.TempDir(), "missing.yaml")).LoadConfig(); err == nil {
		t.Errorf("expected error for missing file")
	}
}
