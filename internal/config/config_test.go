package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Descriptor != "morgan2" || cfg.Metric != "tanimoto" || cfg.Threshold != 0.7 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "molnet.yaml")
	body := []byte("descriptor: maccs\nmetric: dice\nthreshold: 0.4\nworkers: 8\ninput: mols.csv\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Descriptor != "maccs" || cfg.Metric != "dice" || cfg.Threshold != 0.4 || cfg.Workers != 8 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	// Untouched keys keep their defaults.
	if cfg.Output != "molnet.graph" || cfg.TverskyAlpha != 1 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	if cfg.Input != "mols.csv" {
		t.Fatalf("input not applied: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("threshold: [not a number"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}
