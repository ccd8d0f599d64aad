package http

import (
	"net/http"

	"github.com/MKhiriev/go-klokku-bridge/internal/logger"
	"github.com/MKhiriev/go-klokku-bridge/internal/utils"
	"github.com/MKhiriev/go-klokku-bridge/models"
)

// Dependencies is what the handler serves. History and Metrics may be nil.
type Dependencies struct {
	Coordinator Coordinator
	Selector    Selector
	History     History
	Metrics     http.Handler
	BuildInfo   models.AppBuildInfo
}

type Handler struct {
	coordinator Coordinator
	selector    Selector
	history     History
	metrics     http.Handler
	buildInfo   models.AppBuildInfo

	traceIDs *utils.UUIDGenerator
	logger   *logger.Logger
}

func NewHandler(deps Dependencies, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		coordinator: deps.Coordinator,
		selector:    deps.Selector,
		history:     deps.History,
		metrics:     deps.Metrics,
		buildInfo:   deps.BuildInfo,
		traceIDs:    utils.NewUUIDGenerator(),
		logger:      logger,
	}
}
