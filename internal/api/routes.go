package api

import (
	"net/http"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("/health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(models.HealthResponse{}).
			Returns(200, "OK", models.HealthResponse{}))

	ws.
		Route(ws.POST("/diagnose").
			To(handler.Diagnose).
			// clients that omit Content-Type still get a JSON body decoded
			AllowedMethodsWithoutContentType([]string{http.MethodPost}).
			Doc("Diagnose a home repair issue").
			Metadata(restfulspec.KeyOpenAPITags, []string{"diagnose"}).
			Reads(models.DiagnosisRequest{}).
			Writes(models.DiagnosisResult{}).
			Returns(200, "OK", models.DiagnosisResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}).
			Returns(415, "Unsupported Media Type", middleware.ErrorResponse{}).
			Returns(502, "Bad Gateway", middleware.ErrorResponse{}))

	container.Add(ws)
	container.ServiceErrorHandler(middleware.ServiceErrorHandler)
}

// RegisterOpenAPI serves the document for every web service registered so far.
func RegisterOpenAPI(container *restful.Container) {
	config := restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(),
		APIPath:                       "/openapi.json",
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}
	container.Add(restfulspec.NewOpenAPIService(config))
}

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "Fix Agent API",
			Description: "Home repair diagnosis backed by an LLM",
			Version:     "1.0.0",
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "health", Description: "Health checks"}},
		{TagProps: spec.TagProps{Name: "diagnose", Description: "Repair diagnosis"}},
	}
}
