// Package config handles loading and managing taskrank configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/taskrank/taskrank/pkg/scoring"
)

// Feedback backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
)

// Config is the top-level configuration for taskrank.
type Config struct {
	Scoring  ScoringConfig  `yaml:"scoring"`
	Feedback FeedbackConfig `yaml:"feedback"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// ScoringConfig controls scoring behavior.
type ScoringConfig struct {
	Strategy   string                     `yaml:"strategy"`
	Weights    map[string]float64         `yaml:"weights"`    // merged into every run
	Strategies map[string]scoring.Weights `yaml:"strategies"` // extra named presets
	Urgency    UrgencyConfig              `yaml:"urgency"`
	Effort     EffortConfig               `yaml:"effort"`
	Importance ImportanceConfig           `yaml:"importance"`
	Dependency DependencyConfig           `yaml:"dependency"`
}

// UrgencyConfig tunes the urgency dimension.
type UrgencyConfig struct {
	FarHorizonDays        float64 `yaml:"far_horizon_days"`
	Floor                 float64 `yaml:"floor"`
	OverdueFloor          float64 `yaml:"overdue_floor"`
	OverdueSaturationDays float64 `yaml:"overdue_saturation_days"`
}

// EffortConfig tunes the effort dimension.
type EffortConfig struct {
	QuickWinHours    float64 `yaml:"quick_win_hours"`
	LargeEffortHours float64 `yaml:"large_effort_hours"`
	Floor            float64 `yaml:"floor"`
}

// ImportanceConfig tunes the importance dimension.
type ImportanceConfig struct {
	HighThreshold float64 `yaml:"high_threshold"`
	LowThreshold  float64 `yaml:"low_threshold"`
}

// DependencyConfig tunes the dependency pressure dimension.
type DependencyConfig struct {
	Base         float64 `yaml:"base"`
	PerDependent float64 `yaml:"per_dependent"`
	MaxBonus     float64 `yaml:"max_bonus"`
	PerBlocker   float64 `yaml:"per_blocker"`
}

// FeedbackConfig selects where feedback counters are kept.
type FeedbackConfig struct {
	Backend     string `yaml:"backend"`
	DatabaseURL string `yaml:"database_url"`
	RedisURL    string `yaml:"redis_url"`
	SQLitePath  string `yaml:"sqlite_path"` // default: FeedbackDBPath of the project
}

// StorageConfig controls where analysis results are archived.
type StorageConfig struct {
	Archive string `yaml:"archive"` // directory, s3://bucket/prefix or gs://bucket/prefix
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	p := scoring.DefaultParams()
	return &Config{
		Scoring: ScoringConfig{
			Strategy:   scoring.DefaultStrategy,
			Weights:    map[string]float64{},
			Strategies: map[string]scoring.Weights{},
			Urgency: UrgencyConfig{
				FarHorizonDays:        p.UrgencyFarHorizonDays,
				Floor:                 p.UrgencyFloor,
				OverdueFloor:          p.UrgencyOverdueFloor,
				OverdueSaturationDays: p.UrgencyOverdueSaturationDays,
			},
			Effort: EffortConfig{
				QuickWinHours:    p.EffortQuickWinHours,
				LargeEffortHours: p.EffortLargeEffortHours,
				Floor:            p.EffortFloor,
			},
			Importance: ImportanceConfig{
				HighThreshold: p.ImportanceHighThreshold,
				LowThreshold:  p.ImportanceLowThreshold,
			},
			Dependency: DependencyConfig{
				Base:         p.DependencyBase,
				PerDependent: p.DependencyPerDependent,
				MaxBonus:     p.DependencyMaxBonus,
				PerBlocker:   p.DependencyPerBlocker,
			},
		},
		Feedback: FeedbackConfig{Backend: BackendSQLite},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// LoadEnvFile loads a .env file from the working directory into the process
// environment if one exists. Variables already set are not overridden.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// ApplyEnv overlays environment variables onto cfg.
func (c *Config) ApplyEnv() {
	c.Feedback.Backend = getEnv("TASKRANK_FEEDBACK_BACKEND", c.Feedback.Backend)
	c.Feedback.DatabaseURL = getEnv("DATABASE_URL", c.Feedback.DatabaseURL)
	c.Feedback.RedisURL = getEnv("REDIS_URL", c.Feedback.RedisURL)
	c.Feedback.SQLitePath = getEnv("TASKRANK_SQLITE_PATH", c.Feedback.SQLitePath)
	c.Storage.Archive = getEnv("TASKRANK_ARCHIVE", c.Storage.Archive)
	c.Log.Level = getEnv("TASKRANK_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("TASKRANK_LOG_FORMAT", c.Log.Format)
}

// Validate checks the configuration for values the engine cannot use.
func (c *Config) Validate() error {
	switch c.Feedback.Backend {
	case BackendMemory, BackendSQLite:
	case BackendPostgres:
		if c.Feedback.DatabaseURL == "" {
			return fmt.Errorf("feedback backend %q requires database_url", c.Feedback.Backend)
		}
	case BackendRedis:
		if c.Feedback.RedisURL == "" {
			return fmt.Errorf("feedback backend %q requires redis_url", c.Feedback.Backend)
		}
	default:
		return fmt.Errorf("unknown feedback backend %q", c.Feedback.Backend)
	}

	s := c.Scoring
	positive := []struct {
		name string
		v    float64
	}{
		{"scoring.urgency.far_horizon_days", s.Urgency.FarHorizonDays},
		{"scoring.urgency.overdue_saturation_days", s.Urgency.OverdueSaturationDays},
		{"scoring.effort.quick_win_hours", s.Effort.QuickWinHours},
		{"scoring.effort.large_effort_hours", s.Effort.LargeEffortHours},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%s must be positive, got %g", p.name, p.v)
		}
	}
	if s.Effort.LargeEffortHours <= s.Effort.QuickWinHours {
		return fmt.Errorf("scoring.effort.large_effort_hours must exceed quick_win_hours")
	}
	if s.Urgency.Floor > s.Urgency.OverdueFloor {
		return fmt.Errorf("scoring.urgency.floor must not exceed overdue_floor")
	}
	if _, err := c.Registry(); err != nil {
		return err
	}
	if unknown := scoring.UnknownWeightKeys(s.Weights); len(unknown) > 0 {
		return fmt.Errorf("scoring.weights: unknown keys %v", unknown)
	}
	return nil
}

// Params converts the dimension settings into scoring parameters.
func (s ScoringConfig) Params() scoring.Params {
	return scoring.Params{
		UrgencyFarHorizonDays:        s.Urgency.FarHorizonDays,
		UrgencyFloor:                 s.Urgency.Floor,
		UrgencyOverdueFloor:          s.Urgency.OverdueFloor,
		UrgencyOverdueSaturationDays: s.Urgency.OverdueSaturationDays,
		EffortQuickWinHours:          s.Effort.QuickWinHours,
		EffortLargeEffortHours:       s.Effort.LargeEffortHours,
		EffortFloor:                  s.Effort.Floor,
		ImportanceHighThreshold:      s.Importance.HighThreshold,
		ImportanceLowThreshold:       s.Importance.LowThreshold,
		DependencyBase:               s.Dependency.Base,
		DependencyPerDependent:       s.Dependency.PerDependent,
		DependencyMaxBonus:           s.Dependency.MaxBonus,
		DependencyPerBlocker:         s.Dependency.PerBlocker,
	}
}

// Registry builds the strategy registry with any configured presets.
func (c *Config) Registry() (*scoring.Registry, error) {
	reg, err := scoring.NewRegistry(c.Scoring.Strategies)
	if err != nil {
		return nil, fmt.Errorf("scoring.strategies: %w", err)
	}
	return reg, nil
}

// FindConfigFile looks for .taskrank/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".taskrank", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// CacheDir returns the cache directory for a given project path.
// Uses ~/.cache/taskrank/<project-slug>/ to avoid polluting the project.
func CacheDir(projectPath string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "taskrank", projectSlug(projectPath))
}

// ResultDir returns the saved analysis directory for a project.
func ResultDir(projectPath string) string {
	return filepath.Join(CacheDir(projectPath), "results")
}

// FeedbackDBPath returns the default SQLite feedback database for a project.
func FeedbackDBPath(projectPath string) string {
	return filepath.Join(CacheDir(projectPath), "feedback.db")
}

// projectSlug creates a filesystem-safe identifier from a project path.
// Uses the last two path components (e.g., "user_myproject" from "/home/user/myproject").
func projectSlug(projectPath string) string {
	abs, err := filepath.Abs(projectPath)
	if err != nil {
		abs = projectPath
	}
	dir := filepath.Base(filepath.Dir(abs))
	base := filepath.Base(abs)
	return dir + "_" + base
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
