package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/chemnet/molnet/internal/config"
	"github.com/chemnet/molnet/pkg/fingerprint"
	"github.com/chemnet/molnet/pkg/network"
	"github.com/chemnet/molnet/pkg/similarity"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (optional)")
	descriptor := flag.String("descriptor", "", "Fingerprint kind (e.g. morgan2, maccs)")
	metric := flag.String("metric", "", "Similarity metric (e.g. tanimoto, dice)")
	threshold := flag.Float64("threshold", -1, "Exclusive similarity cutoff for edges")
	workers := flag.Int("workers", 0, "Worker goroutines for the build (1 = sequential)")
	input := flag.String("input", "", "CSV file of smiles,label rows")
	output := flag.String("output", "", "Destination file for the network snapshot")
	flag.Parse()

	if err := run(*configPath, *descriptor, *metric, *threshold, *workers, *input, *output); err != nil {
		slog.Error("build failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, descriptor, metric string, threshold float64, workers int, input, output string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	// Flags override the file.
	if descriptor != "" {
		cfg.Descriptor = descriptor
	}
	if metric != "" {
		cfg.Metric = metric
	}
	if threshold >= 0 {
		cfg.Threshold = threshold
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if input != "" {
		cfg.Input = input
	}
	if output != "" {
		cfg.Output = output
	}
	if cfg.Input == "" {
		return fmt.Errorf("no input file given (use -input or the config file)")
	}

	runID := uuid.NewString()[:8]
	log := slog.With("run", runID)

	smilesList, labels, err := readInput(cfg.Input)
	if err != nil {
		return err
	}
	log.Info("input loaded", "file", cfg.Input, "molecules", len(smilesList))

	builder, err := network.NewBuilder(network.Options{
		Descriptor: fingerprint.DescriptorKind(cfg.Descriptor),
		Metric:     similarity.Metric(cfg.Metric),
		Params:     similarity.Params{Alpha: cfg.TverskyAlpha, Beta: cfg.TverskyBeta},
		Threshold:  cfg.Threshold,
		Workers:    cfg.Workers,
	})
	if err != nil {
		return err
	}

	net, err := builder.Build(smilesList, labels)
	if err != nil {
		return err
	}
	log.Info("network built",
		"descriptor", cfg.Descriptor,
		"metric", cfg.Metric,
		"threshold", cfg.Threshold,
		"nodes", net.NumNodes(),
		"edges", net.NumEdges(),
	)

	if err := builder.SaveNetwork(cfg.Output); err != nil {
		return err
	}
	log.Info("network saved", "file", cfg.Output)
	return nil
}

// readInput parses a two-column CSV: smiles,label. A header row whose
// first field is literally "smiles" is skipped.
func readInput(path string) (smiles, labels []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	for k, row := range rows {
		if k == 0 && row[0] == "smiles" {
			continue
		}
		smiles = append(smiles, row[0])
		labels = append(labels, row[1])
	}
	return smiles, labels, nil
}
