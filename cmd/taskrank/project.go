package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/taskrank/taskrank/internal/logging"
	"github.com/taskrank/taskrank/pkg/config"
	"github.com/taskrank/taskrank/pkg/scoring"
)

// project is the resolved per-invocation setup shared by every command.
type project struct {
	root   string
	cfg    *config.Config
	logger *slog.Logger
}

func openProject(projectDir string) (*project, error) {
	root, err := resolveProject(projectDir)
	if err != nil {
		return nil, err
	}

	config.LoadEnvFile()
	cfg, err := loadConfig(root)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  logging.Format(cfg.Log.Format),
		Service: "taskrank",
	})
	return &project{root: root, cfg: cfg, logger: logger}, nil
}

func resolveProject(projectDir string) (string, error) {
	if projectDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
		projectDir = wd
	}
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return "", fmt.Errorf("resolving project path: %w", err)
	}
	return abs, nil
}

func loadConfig(root string) (*config.Config, error) {
	cfgFile := config.FindConfigFile(root)
	if cfgFile == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(cfgFile)
}

// newEngine builds an engine from the project's scoring settings.
func (p *project) newEngine() (*scoring.Engine, error) {
	reg, err := p.cfg.Registry()
	if err != nil {
		return nil, err
	}
	return scoring.NewEngine(
		scoring.WithRegistry(reg),
		scoring.WithDimensions(scoring.DimensionsFromParams(p.cfg.Scoring.Params())...),
		scoring.WithLogger(p.logger),
	), nil
}

// parseWeightFlags turns repeated key=value flags into a weight map.
func parseWeightFlags(vals []string) (map[string]float64, error) {
	weights := make(map[string]float64, len(vals))
	for _, v := range vals {
		key, raw, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("invalid weight %q: expected key=value", v)
		}
		key = strings.TrimSpace(key)
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q: %w", v, err)
		}
		weights[key] = f
	}
	if unknown := scoring.UnknownWeightKeys(weights); len(unknown) > 0 {
		return nil, fmt.Errorf("unknown weight keys %v (want %s)", unknown, strings.Join(scoring.WeightKeys, ", "))
	}
	return weights, nil
}

// mergeWeights layers weight maps; later layers win per key.
func mergeWeights(layers ...map[string]float64) map[string]float64 {
	merged := map[string]float64{}
	for _, layer := range layers {
		for k, v := range layer {
			merged[k] = v
		}
	}
	return merged
}

// parseNow parses the --now flag. Empty means use the clock.
func parseNow(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: expected RFC3339", raw)
	}
	return t.UTC(), nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
