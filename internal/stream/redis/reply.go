package redis

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/povarna/generative-ai-agents/fix-agent/internal/diagnosis"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/models"
)

// Reply is published once per request message. Status and Detail match what
// the HTTP endpoint would have answered.
type Reply struct {
	RequestID string                  `json:"request_id"`
	Status    int                     `json:"status"`
	Result    *models.DiagnosisResult `json:"result,omitempty"`
	Detail    string                  `json:"detail,omitempty"`
}

func NewReply(requestID string, result *models.DiagnosisResult, err error) Reply {
	if err != nil {
		return Reply{
			RequestID: requestID,
			Status:    diagnosis.StatusCode(err),
			Detail:    err.Error(),
		}
	}

	return Reply{
		RequestID: requestID,
		Status:    http.StatusOK,
		Result:    result,
	}
}

func badRequestReply(requestID string, err error) Reply {
	return Reply{
		RequestID: requestID,
		Status:    http.StatusBadRequest,
		Detail:    err.Error(),
	}
}

// Values is the stream entry for r: request_id and status as plain fields,
// the full reply as JSON under payload.
func (r Reply) Values() (map[string]any, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reply: %w", err)
	}

	return map[string]any{
		"request_id": r.RequestID,
		"status":     r.Status,
		"payload":    string(payload),
	}, nil
}

func DecodeReply(values map[string]any) (Reply, error) {
	var reply Reply

	payload, ok := values["payload"].(string)
	if !ok {
		return reply, fmt.Errorf("missing payload field")
	}
	if err := json.Unmarshal([]byte(payload), &reply); err != nil {
		return reply, fmt.Errorf("failed to decode reply: %w", err)
	}
	return reply, nil
}

func decodeRequest(values map[string]any) (models.DiagnosisRequest, error) {
	var req models.DiagnosisRequest

	payload, ok := values["payload"].(string)
	if !ok {
		return req, fmt.Errorf("missing payload field")
	}
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return req, fmt.Errorf("invalid request payload: %w", err)
	}
	return req, nil
}
