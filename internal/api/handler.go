package api

//go:generate mockgen -source=handler.go -destination=mocks/mock_diagnoser.go -package=mocks

import (
	"context"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/diagnosis"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/models"
	"github.com/rs/zerolog"
)

type Diagnoser interface {
	Diagnose(ctx context.Context, req models.DiagnosisRequest) (*models.DiagnosisResult, error)
	CheckConfigured() error
}

type Handler struct {
	diagnoser Diagnoser
	logger    *zerolog.Logger
}

func NewHandler(diagnoser Diagnoser, logger *zerolog.Logger) *Handler {
	return &Handler{
		diagnoser: diagnoser,
		logger:    logger,
	}
}

// POST /diagnose
// Body: DiagnosisRequest
// Returns: DiagnosisResult
func (h *Handler) Diagnose(req *restful.Request, resp *restful.Response) {
	// A missing credential fails the same way whatever the body holds.
	if err := h.diagnoser.CheckConfigured(); err != nil {
		h.logger.Error().Err(err).Msg("Diagnosis service is not configured")
		middleware.HandleError(resp, err, diagnosis.StatusCode(err))
		return
	}

	if req.Request.Header.Get(restful.HEADER_ContentType) == "" {
		req.Request.Header.Set(restful.HEADER_ContentType, restful.MIME_JSON)
	}

	var diagnosisRequest models.DiagnosisRequest
	if err := req.ReadEntity(&diagnosisRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	requestID := middleware.RequestID(req)
	image := diagnosisRequest.Image()
	event := h.logger.Info().
		Str("request_id", requestID).
		Int("description_length", len(diagnosisRequest.Description))
	if image != nil {
		event = event.Str("image", string(image.Kind))
	}
	event.Msg("Start diagnosis")

	result, err := h.diagnoser.Diagnose(req.Request.Context(), diagnosisRequest)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("request_id", requestID).
			Msg("Diagnosis failed")
		middleware.HandleError(resp, err, diagnosis.StatusCode(err))
		return
	}

	h.logger.Info().
		Str("request_id", requestID).
		Str("title", result.Title).
		Str("category", string(result.Category)).
		Msg("Diagnosis complete")

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// Health handler GET /health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, models.HealthResponse{Status: "ok"})
}
