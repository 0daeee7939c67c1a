package mcpadapter

import (
	"context"
	"errors"
	"testing"

	"github.com/povarna/generative-ai-agents/fix-agent/internal/diagnosis"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/models"
)

type stubDiagnoser struct {
	got    models.DiagnosisRequest
	result *models.DiagnosisResult
	err    error
}

func (s *stubDiagnoser) Diagnose(_ context.Context, req models.DiagnosisRequest) (*models.DiagnosisResult, error) {
	s.got = req
	return s.result, s.err
}

func TestDiagnoseHandler_Success(t *testing.T) {
	stub := &stubDiagnoser{result: &models.DiagnosisResult{
		Title:      "Leaky Faucet",
		Difficulty: models.DifficultyEasy,
		Tools:      []string{"wrench"},
		Steps:      []string{"Replace washer"},
		Category:   models.CategoryPlumbing,
	}}

	handler := NewDiagnoseHandler(stub)
	_, out, err := handler(context.Background(), nil, DiagnoseInput{
		Description: "leaky faucet under the sink",
		ImageURL:    "https://example.com/faucet.jpg",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Title != "Leaky Faucet" || out.Category != models.CategoryPlumbing {
		t.Errorf("unexpected output %+v", out)
	}
	if stub.got.Description != "leaky faucet under the sink" || stub.got.ImageURL != "https://example.com/faucet.jpg" {
		t.Errorf("input not forwarded, got %+v", stub.got)
	}
}

func TestDiagnoseHandler_Error(t *testing.T) {
	stub := &stubDiagnoser{err: &diagnosis.UpstreamServiceError{Err: errors.New("overloaded")}}

	handler := NewDiagnoseHandler(stub)
	_, _, err := handler(context.Background(), nil, DiagnoseInput{Description: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "AI service error: overloaded" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
