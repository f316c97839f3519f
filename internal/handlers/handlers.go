// Package handlers provides HTTP request handlers
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"spacescope/internal/assistant"
	"spacescope/internal/clients"
	"spacescope/internal/domain"
	"spacescope/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler holds all service dependencies
type Handler struct {
	Feeds    *services.FeedService
	Sessions *services.SessionService
	logger   *zap.Logger
}

// NewHandler creates a new handler with services
func NewHandler(feeds *services.FeedService, sessions *services.SessionService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Feeds:    feeds,
		Sessions: sessions,
		logger:   logger,
	}
}

// Health handles health check requests
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, domain.Health{
		Status: "ok",
		Now:    time.Now().UTC(),
	})
}

// GetApod handles requests for the Astronomy Picture of the Day
func (h *Handler) GetApod(c *gin.Context) {
	apod, err := h.Feeds.PictureOfDay(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.SuccessResponse(apod))
}

// GetSpaceWeather handles requests for DONKI notifications
func (h *Handler) GetSpaceWeather(c *gin.Context) {
	notes := h.Feeds.SpaceWeather(c.Request.Context())
	c.JSON(http.StatusOK, domain.SuccessResponse(map[string]interface{}{
		"notifications": notes,
	}))
}

// GetNeo handles requests for near-Earth objects
func (h *Handler) GetNeo(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			c.JSON(http.StatusBadRequest, domain.ErrorResponse("INVALID_DATE", "date must be YYYY-MM-DD"))
			return
		}
	} else {
		date = h.Feeds.Today()
	}

	neos := h.Feeds.NearEarthObjects(c.Request.Context(), date)
	c.JSON(http.StatusOK, domain.SuccessResponse(map[string]interface{}{
		"date":               date,
		"near_earth_objects": neos,
	}))
}

// GetAtmosphere handles requests for local sky conditions. Missing or
// unparsable coordinates are treated as an unavailable location.
func (h *Handler) GetAtmosphere(c *gin.Context) {
	var locator services.Locator = services.NoLocation{}
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr == nil && lonErr == nil {
		locator = services.FixedLocator{Lat: lat, Lon: lon}
	}

	atm, ok := h.Feeds.LocalAtmosphere(c.Request.Context(), locator)
	if !ok {
		c.JSON(http.StatusOK, domain.SuccessResponse(map[string]interface{}{
			"available": false,
		}))
		return
	}
	c.JSON(http.StatusOK, domain.SuccessResponse(map[string]interface{}{
		"available":   true,
		"atmosphere":  atm,
		"clear_skies": atm.ClearSkies(),
	}))
}

// GetArchive handles requests for the latest archived feed snapshot
func (h *Handler) GetArchive(c *gin.Context) {
	source := c.Param("kind")
	snap, err := h.Feeds.Archived(c.Request.Context(), source)
	if err != nil {
		h.fail(c, err)
		return
	}

	if snap == nil {
		c.JSON(http.StatusOK, domain.SuccessResponse(map[string]interface{}{
			"source":  source,
			"message": "no data",
		}))
		return
	}

	c.JSON(http.StatusOK, domain.SuccessResponse(snap))
}

// RefreshFeeds handles archive refresh requests
func (h *Handler) RefreshFeeds(c *gin.Context) {
	sourcesStr := c.DefaultQuery("src", "apod,neo,donki")
	sources := strings.Split(sourcesStr, ",")
	for i := range sources {
		sources[i] = strings.TrimSpace(sources[i])
	}

	refreshed := h.Feeds.Refresh(c.Request.Context(), sources)
	c.JSON(http.StatusOK, domain.SuccessResponse(map[string]interface{}{
		"refreshed": refreshed,
	}))
}

// GetDashboard handles landing page requests
func (h *Handler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, domain.SuccessResponse(h.Feeds.Dashboard(c.Request.Context())))
}

// ListEvents handles curated event requests
func (h *Handler) ListEvents(c *gin.Context) {
	events := domain.FilterEvents(c.DefaultQuery("status", "All"))
	c.JSON(http.StatusOK, domain.SuccessResponse(map[string]interface{}{
		"events": events,
	}))
}

// ListMissions handles mission timeline requests
func (h *Handler) ListMissions(c *gin.Context) {
	c.JSON(http.StatusOK, domain.SuccessResponse(map[string]interface{}{
		"missions": domain.Missions(),
	}))
}

// fail maps err to a status code and the error envelope
func (h *Handler) fail(c *gin.Context, err error) {
	var feedErr *clients.FeedError
	switch {
	case errors.Is(err, domain.ErrUpgradeRequired):
		c.JSON(http.StatusPaymentRequired, domain.ErrorResponse("UPGRADE_REQUIRED", err.Error()))
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, domain.ErrorResponse("SESSION_NOT_FOUND", err.Error()))
	case errors.Is(err, assistant.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, domain.ErrorResponse("EMPTY_MESSAGE", err.Error()))
	case errors.Is(err, assistant.ErrBusy):
		c.JSON(http.StatusConflict, domain.ErrorResponse("BUSY", err.Error()))
	case errors.Is(err, services.ErrArchiveDisabled):
		c.JSON(http.StatusServiceUnavailable, domain.ErrorResponse("ARCHIVE_DISABLED", err.Error()))
	case errors.As(err, &feedErr):
		c.JSON(http.StatusBadGateway, domain.ErrorResponse("UPSTREAM_ERROR", err.Error()))
	default:
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, domain.ErrorResponse("INTERNAL", err.Error()))
	}
}

// SetupRoutes configures all routes
func SetupRoutes(r *gin.Engine, h *Handler) {
	// Health check
	r.GET("/health", h.Health)

	api := r.Group("/api")

	// Feed endpoints
	api.GET("/feeds/apod", h.GetApod)
	api.GET("/feeds/space-weather", h.GetSpaceWeather)
	api.GET("/feeds/neo", h.GetNeo)
	api.GET("/feeds/atmosphere", h.GetAtmosphere)
	api.GET("/feeds/:kind/archive", h.GetArchive)
	api.POST("/feeds/refresh", h.RefreshFeeds)
	api.GET("/dashboard", h.GetDashboard)

	// Catalog endpoints
	api.GET("/events", h.ListEvents)
	api.GET("/missions", h.ListMissions)

	// Session endpoints
	api.POST("/sessions", h.CreateSession)
	api.DELETE("/sessions/:id", h.DeleteSession)
	api.PUT("/sessions/:id/entitlement", h.SetEntitlement)
	api.GET("/sessions/:id/chat", h.GetChat)
	api.POST("/sessions/:id/chat", h.PostChat)
	api.POST("/sessions/:id/missions/:missionId/analysis", h.AnalyzeMission)
	api.GET("/sessions/:id/missions/:missionId/analysis", h.GetMissionAnalysis)
	api.DELETE("/sessions/:id/missions/:missionId/analysis", h.CloseMissionAnalysis)
	api.POST("/sessions/:id/weather/analysis", h.AnalyzeWeather)
	api.GET("/sessions/:id/weather/analysis", h.GetWeatherAnalysis)
	api.DELETE("/sessions/:id/weather/analysis", h.CloseWeatherAnalysis)
	api.GET("/sessions/:id/interests", h.ListInterests)
	api.POST("/sessions/:id/interests/:entityId", h.ToggleInterest)
	api.POST("/sessions/:id/share/:entityId", h.Share)
}
