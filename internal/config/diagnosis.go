package config

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/diagnosis.yaml
var defaultDiagnosisYAML []byte

const (
	defaultMaxTokens     = 1024
	defaultExcerptLength = 500
)

// LoadDiagnosisConfig reads the file named by DIAGNOSIS_CONFIG_PATH, or the
// embedded default document when the variable is unset.
func LoadDiagnosisConfig() (*Config, error) {
	path := os.Getenv("DIAGNOSIS_CONFIG_PATH")
	if path == "" {
		return ParseDiagnosisConfig(defaultDiagnosisYAML)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return ParseDiagnosisConfig(data)
}

// ParseDiagnosisConfig decodes a YAML document, applies defaults and validates it.
func ParseDiagnosisConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	d := &cfg.Diagnosis
	if d.Model.MaxTokens == 0 {
		d.Model.MaxTokens = defaultMaxTokens
	}
	if d.ExcerptLength == 0 {
		d.ExcerptLength = defaultExcerptLength
	}
	if d.DefaultCategory == "" {
		d.DefaultCategory = "general"
	}
}

func (c *Config) Validate() error {
	d := c.Diagnosis

	if strings.TrimSpace(d.SystemPrompt) == "" {
		return fmt.Errorf("missing system_prompt")
	}
	if d.Model.MaxTokens < 0 {
		return fmt.Errorf("negative max_tokens: %d", d.Model.MaxTokens)
	}
	if d.Model.Temperature < 0.0 || d.Model.Temperature > 1.0 {
		return fmt.Errorf("invalid temperature %f, expected [0.0, 1.0]", d.Model.Temperature)
	}
	if d.ExcerptLength < 0 {
		return fmt.Errorf("negative excerpt_length: %d", d.ExcerptLength)
	}
	if len(d.Categories) > 0 && !slices.Contains(d.Categories, d.DefaultCategory) {
		return fmt.Errorf("default_category %q is not one of the configured categories", d.DefaultCategory)
	}

	return nil
}
