package middleware

import (
	"encoding/json"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func HandleError(resp *restful.Response, err error, status int) {
	if writeErr := resp.WriteHeaderAndEntity(status, ErrorResponse{Detail: err.Error()}); writeErr != nil {
		log.Error().Err(writeErr).Int("status", status).Msg("Failed to write error response")
	}
}

// ServiceErrorHandler writes route selection failures (404, 405, 415) as an
// ErrorResponse. No route matched, so the body is encoded directly instead
// of going through content negotiation.
func ServiceErrorHandler(serviceErr restful.ServiceError, req *restful.Request, resp *restful.Response) {
	for header, values := range serviceErr.Header {
		for _, value := range values {
			resp.Header().Add(header, value)
		}
	}

	resp.Header().Set(restful.HEADER_ContentType, restful.MIME_JSON)
	resp.WriteHeader(serviceErr.Code)
	if err := json.NewEncoder(resp).Encode(ErrorResponse{Detail: serviceErr.Message}); err != nil {
		log.Error().Err(err).Int("status", serviceErr.Code).Msg("Failed to write error response")
	}
}
