package config

// Config is the root of the diagnosis YAML document
type Config struct {
	Diagnosis DiagnosisConfig `yaml:"diagnosis"`
}

// DiagnosisConfig holds the prompt and the reply handling parameters
type DiagnosisConfig struct {
	SystemPrompt     string      `yaml:"system_prompt"`
	UserPromptPrefix string      `yaml:"user_prompt_prefix"`
	Model            ModelConfig `yaml:"model"`
	ExcerptLength    int         `yaml:"excerpt_length"`
	Difficulties     []string    `yaml:"difficulties"`
	Categories       []string    `yaml:"categories"`
	DefaultCategory  string      `yaml:"default_category"`
}

// ModelConfig holds the per-call model parameters
type ModelConfig struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}
