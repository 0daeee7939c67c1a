package diagnosis

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/povarna/generative-ai-agents/fix-agent/internal/models"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Matches the first fenced block. The optional tag is either "json" or any
// word followed by a line break.
var codeFence = regexp.MustCompile("(?s)```(?:json\\b|[A-Za-z0-9_+-]+[ \\t]*\\r?\\n)?\\s*(.*?)\\s*```")

// StripCodeFence returns the content of the first fenced code block, or the
// trimmed text when there is none. Text that already is valid JSON is
// returned trimmed even if a string inside it contains backticks.
func StripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if json.Valid([]byte(trimmed)) {
		return trimmed
	}
	if match := codeFence.FindStringSubmatch(trimmed); match != nil {
		return strings.TrimSpace(match[1])
	}
	return trimmed
}

var resultSchemaDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":          map[string]any{"type": "string"},
		"difficulty":     map[string]any{"type": "string"},
		"estimated_time": map[string]any{"type": "string"},
		"tools": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"steps": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"category": map[string]any{"type": []any{"string", "null"}},
	},
	"required": []any{"title", "difficulty", "estimated_time", "tools", "steps"},
}

const resultSchemaURL = "schema://diagnosis-result.json"

// Parser turns raw model text into a validated DiagnosisResult.
type Parser struct {
	schema          *jsonschema.Schema
	excerptLength   int
	defaultCategory models.Category
}

func NewParser(excerptLength int, defaultCategory string) (*Parser, error) {
	schema, err := compileResultSchema()
	if err != nil {
		return nil, err
	}

	return &Parser{
		schema:          schema,
		excerptLength:   excerptLength,
		defaultCategory: models.Category(defaultCategory),
	}, nil
}

func compileResultSchema() (*jsonschema.Schema, error) {
	// The compiler wants plain decoded JSON values, not Go maps of typed slices.
	defBytes, err := json.Marshal(resultSchemaDefinition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(resultSchemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(resultSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
}

// Parse strips a code fence, decodes the JSON object and validates its shape.
func (p *Parser) Parse(raw string) (*models.DiagnosisResult, error) {
	content := StripCodeFence(raw)

	var parsed any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, &UpstreamFormatError{
			Kind:    FormatKindUnparseable,
			Excerpt: Excerpt(raw, p.excerptLength),
			Err:     fmt.Errorf("invalid JSON: %w", err),
		}
	}

	if err := p.schema.Validate(parsed); err != nil {
		return nil, &UpstreamFormatError{
			Kind: FormatKindSchema,
			Err:  fmt.Errorf("schema validation failed: %w", err),
		}
	}

	var result models.DiagnosisResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, &UpstreamFormatError{
			Kind: FormatKindSchema,
			Err:  fmt.Errorf("decode diagnosis: %w", err),
		}
	}

	if result.Category == "" {
		result.Category = p.defaultCategory
	}

	return &result, nil
}

// Excerpt returns at most limit runes of s.
func Excerpt(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
