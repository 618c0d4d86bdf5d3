// Package config loads the molnet CLI configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors the recognized build options plus the CLI's I/O paths.
// Unknown descriptor or metric names are not validated here; the
// network builder rejects them at construction.
type Config struct {
	// Descriptor is the fingerprint kind ("morgan2", "maccs", ...).
	Descriptor string `yaml:"descriptor"`
	// Metric is the similarity metric ("tanimoto", "tversky", ...).
	Metric string `yaml:"metric"`
	// Threshold is the exclusive similarity cutoff for edge creation.
	Threshold float64 `yaml:"threshold"`
	// TverskyAlpha / TverskyBeta weight the Tversky metric; every other
	// metric ignores them.
	TverskyAlpha float64 `yaml:"tversky_alpha"`
	TverskyBeta  float64 `yaml:"tversky_beta"`
	// Workers bounds build parallelism (1 = sequential).
	Workers int `yaml:"workers"`

	// Input is a CSV of "smiles,label" rows; Output is the snapshot path.
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

// Default returns the classic molecular-network settings.
func Default() Config {
	return Config{
		Descriptor:   "morgan2",
		Metric:       "tanimoto",
		Threshold:    0.7,
		TverskyAlpha: 1,
		TverskyBeta:  1,
		Workers:      1,
		Output:       "molnet.graph",
	}
}

// Load reads a YAML file over the defaults. A missing file is an error;
// call Default directly when no config file is in play.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}
