package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/models"
)

// DiagnoseInput is the MCP tool input schema (matches HTTP API field names).
type DiagnoseInput struct {
	Description    string `json:"description" jsonschema:"free-text description of the home repair problem"`
	ImageBase64    string `json:"image_base64,omitempty" jsonschema:"optional base64 encoded photo of the problem"`
	ImageMediaType string `json:"image_media_type,omitempty" jsonschema:"media type of image_base64, e.g. image/jpeg"`
	ImageURL       string `json:"image_url,omitempty" jsonschema:"optional public URL of a photo of the problem"`
}

type Diagnoser interface {
	Diagnose(ctx context.Context, req models.DiagnosisRequest) (*models.DiagnosisResult, error)
}

// NewDiagnoseHandler returns a tool handler that uses the given service.
// Pass the returned function to mcp.AddTool.
func NewDiagnoseHandler(svc Diagnoser) func(context.Context, *mcp.CallToolRequest, DiagnoseInput) (*mcp.CallToolResult, models.DiagnosisResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DiagnoseInput) (*mcp.CallToolResult, models.DiagnosisResult, error) {
		return DiagnoseResponse(ctx, svc, input)
	}
}

// DiagnoseResponse runs one diagnosis. A returned error is reported to the
// client as a tool error carrying the same message as the HTTP detail.
func DiagnoseResponse(ctx context.Context, svc Diagnoser, input DiagnoseInput) (*mcp.CallToolResult, models.DiagnosisResult, error) {
	result, err := svc.Diagnose(ctx, input.toRequest())
	if err != nil {
		return nil, models.DiagnosisResult{}, err
	}
	return nil, *result, nil
}

func (in DiagnoseInput) toRequest() models.DiagnosisRequest {
	return models.DiagnosisRequest{
		Description:    in.Description,
		ImageBase64:    in.ImageBase64,
		ImageMediaType: in.ImageMediaType,
		ImageURL:       in.ImageURL,
	}
}
