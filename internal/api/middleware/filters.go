package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/google/uuid"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/diagnosis"
	"github.com/rs/zerolog/log"
)

const RequestIDHeader = "X-Request-ID"

// RequestIDAttribute is the request attribute holding the request ID.
const RequestIDAttribute = "request_id"

// Logger tags each request with an ID and logs method, path, status and duration.
func Logger(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	requestID := req.HeaderParameter(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.SetAttribute(RequestIDAttribute, requestID)
	resp.AddHeader(RequestIDHeader, requestID)

	start := time.Now()
	chain.ProcessFilter(req, resp)

	status := resp.StatusCode()
	event := log.Info()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	} else if status >= http.StatusBadRequest {
		event = log.Warn()
	}

	event.
		Str("request_id", requestID).
		Str("method", req.Request.Method).
		Str("path", req.Request.URL.Path).
		Int("status", status).
		Dur("duration", time.Since(start)).
		Msg("Request handled")
}

// RecoverPanic turns a handler panic into a 500 with an "Unexpected error" detail.
func RecoverPanic(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("path", req.Request.URL.Path).
				Bytes("stack", debug.Stack()).
				Msg("Recovered from panic")
			HandleError(resp, &diagnosis.InternalError{Err: fmt.Errorf("%v", r)}, http.StatusInternalServerError)
		}
	}()

	chain.ProcessFilter(req, resp)
}

// RequestID returns the ID assigned by Logger, or "" when the filter did not run.
func RequestID(req *restful.Request) string {
	id, _ := req.Attribute(RequestIDAttribute).(string)
	return id
}
