package diagnosis

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/povarna/generative-ai-agents/fix-agent/internal/models"
)

const leakyFaucetJSON = `{"title":"Leaky Faucet","difficulty":"Easy","estimated_time":"15-30 minutes","tools":["wrench","plumber's tape"],"steps":["Turn off water supply","Remove handle","Replace washer","Reassemble"],"category":"plumbing"}`

func leakyFaucet() *models.DiagnosisResult {
	return &models.DiagnosisResult{
		Title:         "Leaky Faucet",
		Difficulty:    models.DifficultyEasy,
		EstimatedTime: "15-30 minutes",
		Tools:         []string{"wrench", "plumber's tape"},
		Steps:         []string{"Turn off water supply", "Remove handle", "Replace washer", "Reassemble"},
		Category:      models.CategoryPlumbing,
	}
}

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	parser, err := NewParser(500, "general")
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	return parser
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no fence",
			input: `{"key": "value"}`,
			want:  `{"key": "value"}`,
		},
		{
			name:  "json fence",
			input: "```json\n{\"key\": \"value\"}\n```",
			want:  `{"key": "value"}`,
		},
		{
			name:  "bare fence",
			input: "```\n{\"key\": \"value\"}\n```",
			want:  `{"key": "value"}`,
		},
		{
			name:  "json tag without newline",
			input: "```json {\"key\": \"value\"}```",
			want:  `{"key": "value"}`,
		},
		{
			name:  "other language tag",
			input: "```javascript\n{\"key\": \"value\"}\n```",
			want:  `{"key": "value"}`,
		},
		{
			name:  "preamble before fence",
			input: "Here is the diagnosis:\n```json\n{\"key\": \"value\"}\n```\nGood luck!",
			want:  `{"key": "value"}`,
		},
		{
			name:  "surrounding whitespace",
			input: "  \n{\"key\": \"value\"}\n  ",
			want:  `{"key": "value"}`,
		},
		{
			name:  "uppercase tag with CRLF line endings",
			input: "```JSON\r\n{\"key\": \"value\"}\r\n```",
			want:  `{"key": "value"}`,
		},
		{
			name:  "json tag with CRLF line endings",
			input: "```json\r\n{\"key\": \"value\"}\r\n```",
			want:  `{"key": "value"}`,
		},
		{
			name:  "valid json with backticks inside a string",
			input: "{\"steps\": [\"run ```make``` now\"]}",
			want:  "{\"steps\": [\"run ```make``` now\"]}",
		},
		{
			name:  "unclosed fence is left alone",
			input: "```json\n{\"key\": \"value\"",
			want:  "```json\n{\"key\": \"value\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripCodeFence(tt.input)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if again := StripCodeFence(got); again != got {
				t.Errorf("stripping is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestParser_Parse_Success(t *testing.T) {
	parser := newTestParser(t)

	inputs := map[string]string{
		"plain":       leakyFaucetJSON,
		"json fence":  "```json\n" + leakyFaucetJSON + "\n```",
		"bare fence":  "```\n" + leakyFaucetJSON + "\n```",
		"extra field": strings.Replace(leakyFaucetJSON, `"title"`, `"confidence":"high","title"`, 1),
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			result, err := parser.Parse(input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(result, leakyFaucet()) {
				t.Errorf("expected %+v, got %+v", leakyFaucet(), result)
			}
		})
	}
}

func TestParser_Parse_DefaultCategory(t *testing.T) {
	parser := newTestParser(t)

	inputs := map[string]string{
		"missing": `{"title":"Squeaky Door","difficulty":"Easy","estimated_time":"10 minutes","tools":["oil"],"steps":["Lift pin","Oil hinge","Reinsert pin","Test"]}`,
		"null":    `{"title":"Squeaky Door","difficulty":"Easy","estimated_time":"10 minutes","tools":["oil"],"steps":["Lift pin","Oil hinge","Reinsert pin","Test"],"category":null}`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			result, err := parser.Parse(input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Category != models.CategoryGeneral {
				t.Errorf("expected default category 'general', got %q", result.Category)
			}
		})
	}
}

func TestParser_Parse_BackticksInsideValidJSON(t *testing.T) {
	parser := newTestParser(t)

	input := `{"title":"Clogged Drain","difficulty":"Easy","estimated_time":"20 minutes","tools":["plunger"],"steps":["run ` + "```make```" + ` now","Plunge the drain"],"category":"plumbing"}`
	result, err := parser.Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"run ```make``` now", "Plunge the drain"}
	if !reflect.DeepEqual(result.Steps, want) {
		t.Errorf("expected steps %q, got %q", want, result.Steps)
	}
}

func TestParser_Parse_CRLFFence(t *testing.T) {
	parser := newTestParser(t)

	input := "```JSON\r\n" + leakyFaucetJSON + "\r\n```"
	result, err := parser.Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(result, leakyFaucet()) {
		t.Errorf("expected %+v, got %+v", leakyFaucet(), result)
	}
}

func TestParser_Parse_Unparseable(t *testing.T) {
	parser := newTestParser(t)

	_, err := parser.Parse("not json at all")

	var formatErr *UpstreamFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected UpstreamFormatError, got %T (%v)", err, err)
	}
	if formatErr.Kind != FormatKindUnparseable {
		t.Errorf("expected unparseable kind, got %s", formatErr.Kind)
	}
	if !strings.Contains(err.Error(), "Failed to parse AI response") {
		t.Errorf("expected parse failure message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "not json at all") {
		t.Errorf("expected raw reply in message, got %q", err.Error())
	}
}

func TestParser_Parse_ExcerptIsBounded(t *testing.T) {
	parser, err := NewParser(20, "general")
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}

	raw := "this reply is not json and it goes on " + strings.Repeat("and on ", 200)
	_, err = parser.Parse(raw)

	var formatErr *UpstreamFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected UpstreamFormatError, got %T", err)
	}
	if formatErr.Excerpt != raw[:20] {
		t.Errorf("expected excerpt %q, got %q", raw[:20], formatErr.Excerpt)
	}
	if strings.Contains(err.Error(), raw[:21]) {
		t.Error("message must not contain more than the excerpt")
	}
}

func TestParser_Parse_SchemaMismatch(t *testing.T) {
	parser := newTestParser(t)

	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "missing steps",
			input: `{"title":"Leaky Faucet","difficulty":"Easy","estimated_time":"15 minutes","tools":["wrench"]}`,
		},
		{
			name:  "missing title",
			input: `{"difficulty":"Easy","estimated_time":"15 minutes","tools":["wrench"],"steps":["a"]}`,
		},
		{
			name:  "tools not an array",
			input: `{"title":"x","difficulty":"Easy","estimated_time":"15 minutes","tools":"wrench","steps":["a"]}`,
		},
		{
			name:  "steps with non-string item",
			input: `{"title":"x","difficulty":"Easy","estimated_time":"15 minutes","tools":["wrench"],"steps":[1,2]}`,
		},
		{
			name:  "json array instead of object",
			input: `["not", "an", "object"]`,
		},
		{
			name:  "category with wrong type",
			input: `{"title":"x","difficulty":"Easy","estimated_time":"15 minutes","tools":["wrench"],"steps":["a"],"category":7}`,
		},
		{
			name:  "json string",
			input: `"not json at all"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parser.Parse(tt.input)
			if result != nil {
				t.Errorf("expected no result, got %+v", result)
			}

			var formatErr *UpstreamFormatError
			if !errors.As(err, &formatErr) {
				t.Fatalf("expected UpstreamFormatError, got %T (%v)", err, err)
			}
			if formatErr.Kind != FormatKindSchema {
				t.Errorf("expected schema kind, got %s", formatErr.Kind)
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{"shorter than limit", "abc", 10, "abc"},
		{"exact limit", "abcde", 5, "abcde"},
		{"truncated", "abcdef", 3, "abc"},
		{"multibyte runes kept whole", "héllo wörld", 4, "héll"},
		{"zero limit", "abc", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Excerpt(tt.input, tt.limit); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
