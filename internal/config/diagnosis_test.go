package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDiagnosisConfig_Embedded(t *testing.T) {
	t.Setenv("DIAGNOSIS_CONFIG_PATH", "")

	cfg, err := LoadDiagnosisConfig()
	if err != nil {
		t.Fatalf("LoadDiagnosisConfig() failed: %v", err)
	}

	d := cfg.Diagnosis
	if d.Model.MaxTokens != 1024 {
		t.Errorf("Expected max_tokens=1024, got %d", d.Model.MaxTokens)
	}
	if d.ExcerptLength != 500 {
		t.Errorf("Expected excerpt_length=500, got %d", d.ExcerptLength)
	}
	if !strings.Contains(d.SystemPrompt, "valid JSON only") {
		t.Error("Expected system prompt to constrain output to JSON")
	}
	if d.UserPromptPrefix != "Diagnose this home repair issue: " {
		t.Errorf("Unexpected user prompt prefix %q", d.UserPromptPrefix)
	}
	if len(d.Categories) != 6 {
		t.Errorf("Expected 6 categories, got %d", len(d.Categories))
	}
	if d.DefaultCategory != "general" {
		t.Errorf("Expected default category 'general', got %q", d.DefaultCategory)
	}
}

func TestLoadDiagnosisConfig_FromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "diagnosis.yaml")

	configContent := `diagnosis:
  system_prompt: "Reply with JSON."
  model:
    max_tokens: 512
    temperature: 0.2
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	t.Setenv("DIAGNOSIS_CONFIG_PATH", configPath)

	cfg, err := LoadDiagnosisConfig()
	if err != nil {
		t.Fatalf("LoadDiagnosisConfig() failed: %v", err)
	}

	if cfg.Diagnosis.Model.MaxTokens != 512 {
		t.Errorf("Expected max_tokens=512, got %d", cfg.Diagnosis.Model.MaxTokens)
	}
	if cfg.Diagnosis.Model.Temperature != 0.2 {
		t.Errorf("Expected temperature=0.2, got %f", cfg.Diagnosis.Model.Temperature)
	}
	// defaults applied
	if cfg.Diagnosis.ExcerptLength != 500 {
		t.Errorf("Expected default excerpt_length=500, got %d", cfg.Diagnosis.ExcerptLength)
	}
	if cfg.Diagnosis.DefaultCategory != "general" {
		t.Errorf("Expected default category 'general', got %q", cfg.Diagnosis.DefaultCategory)
	}
}

func TestLoadDiagnosisConfig_FileNotFound(t *testing.T) {
	t.Setenv("DIAGNOSIS_CONFIG_PATH", "/nonexistent/path/diagnosis.yaml")

	_, err := LoadDiagnosisConfig()
	if err == nil {
		t.Fatal("Expected error for nonexistent config file")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("Expected 'failed to read config file' error, got: %v", err)
	}
}

func TestParseDiagnosisConfig_InvalidYAML(t *testing.T) {
	_, err := ParseDiagnosisConfig([]byte("diagnosis:\n  system_prompt: [unclosed\n"))
	if err == nil {
		t.Fatal("Expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse YAML") {
		t.Errorf("Expected 'failed to parse YAML' error, got: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       DiagnosisConfig
		expectErr string
	}{
		{
			name:      "missing system prompt",
			cfg:       DiagnosisConfig{Model: ModelConfig{MaxTokens: 10}},
			expectErr: "missing system_prompt",
		},
		{
			name:      "negative max tokens",
			cfg:       DiagnosisConfig{SystemPrompt: "x", Model: ModelConfig{MaxTokens: -1}},
			expectErr: "negative max_tokens",
		},
		{
			name:      "temperature too high",
			cfg:       DiagnosisConfig{SystemPrompt: "x", Model: ModelConfig{Temperature: 1.5}},
			expectErr: "invalid temperature",
		},
		{
			name:      "negative temperature",
			cfg:       DiagnosisConfig{SystemPrompt: "x", Model: ModelConfig{Temperature: -0.1}},
			expectErr: "invalid temperature",
		},
		{
			name: "default category outside vocabulary",
			cfg: DiagnosisConfig{
				SystemPrompt:    "x",
				Categories:      []string{"plumbing"},
				DefaultCategory: "general",
			},
			expectErr: "default_category",
		},
		{
			name: "valid",
			cfg: DiagnosisConfig{
				SystemPrompt:    "x",
				Model:           ModelConfig{MaxTokens: 10, Temperature: 0.5},
				Categories:      []string{"general"},
				DefaultCategory: "general",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Diagnosis: tt.cfg}
			err := cfg.Validate()

			if tt.expectErr == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("Expected error containing %q", tt.expectErr)
			}
			if !strings.Contains(err.Error(), tt.expectErr) {
				t.Errorf("Expected %q error, got: %v", tt.expectErr, err)
			}
		})
	}
}
