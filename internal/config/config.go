package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yumyai/prophagestat/internal/util"
	"github.com/yumyai/prophagestat/pkg/model"
)

const (
	defaultDataDir     = "./data"
	defaultPredictions = "prophage_regions/concatenated_predictions_summary.csv"
	defaultReferences  = "refseq_masher/refseq_concatenated.tsv"
	defaultAddr        = "0.0.0.0:8080"
)

// Config holds application configuration
type Config struct {
	DataDir     string `yaml:"data_dir"`
	Predictions string `yaml:"predictions"`
	References  string `yaml:"references"`

	GenomeSuffix string             `yaml:"genome_suffix"`
	Tools        []string           `yaml:"tools"`
	Sources      []model.SourceRule `yaml:"sources"`

	Interval struct {
		Low   float64 `yaml:"low"`
		High  float64 `yaml:"high"`
		Sigma float64 `yaml:"sigma"`
	} `yaml:"interval"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	LogLevel string `yaml:"log_level"`
}

// Load reads the YAML file at path (skipped when path is empty), applies
// environment overrides, then fills defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer file.Close()

		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("PROPHAGE_DATA"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("PROPHAGE_PREDICTIONS"); v != "" {
		c.Predictions = v
	}
	if v := os.Getenv("PROPHAGE_REFERENCES"); v != "" {
		c.References = v
	}
	if v := os.Getenv("PROPHAGE_TOOLS"); v != "" {
		c.Tools = splitList(v)
	}
	if v := os.Getenv("PROPHAGE_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("PROPHAGE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("PROPHAGE_GENOME_SUFFIX"); v != "" {
		c.GenomeSuffix = v
	}
	if v := os.Getenv("PROPHAGE_SIGMA"); v != "" {
		k, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("PROPHAGE_SIGMA: %w", err)
		}
		c.Interval.Sigma = k
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.DataDir == "" {
		c.DataDir = defaultDataDir
	}
	if c.Predictions == "" {
		c.Predictions = defaultPredictions
	}
	if c.References == "" {
		c.References = defaultReferences
	}
	if c.GenomeSuffix == "" {
		c.GenomeSuffix = model.DefaultGenomeSuffix
	}
	if len(c.Tools) == 0 {
		c.Tools = append([]string(nil), model.DefaultTools...)
	}
	if len(c.Sources) == 0 {
		c.Sources = append([]model.SourceRule(nil), model.DefaultSourceRules...)
	}
	if c.Interval.Low == 0 && c.Interval.High == 0 {
		c.Interval.Low = 0.025
		c.Interval.High = 0.975
	}
	if c.Interval.Sigma == 0 {
		c.Interval.Sigma = 2
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) Validate() error {
	if !(c.Interval.Low >= 0 && c.Interval.Low < c.Interval.High && c.Interval.High <= 1) {
		return fmt.Errorf("interval [%v, %v]: %w", c.Interval.Low, c.Interval.High, model.ErrInvalidQuantile)
	}
	if c.Interval.Sigma <= 0 {
		return fmt.Errorf("interval sigma must be positive, got %v", c.Interval.Sigma)
	}
	return nil
}

// PredictionsPath resolves the predictions file against DataDir.
func (c *Config) PredictionsPath() string {
	return c.resolve(c.Predictions)
}

// ReferencesPath resolves the reference file, or returns "" when it does not
// exist since the closest-match join is optional.
func (c *Config) ReferencesPath() string {
	p := c.resolve(c.References)
	if !util.FileExists(p) {
		return ""
	}
	return p
}

func (c *Config) DatasetOptions() model.DatasetOptions {
	return model.DatasetOptions{
		PredictionsPath: c.PredictionsPath(),
		ReferencesPath:  c.ReferencesPath(),
		GenomeSuffix:    c.GenomeSuffix,
		Tools:           c.Tools,
		SourceRules:     c.Sources,
	}
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.DataDir, p)
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
