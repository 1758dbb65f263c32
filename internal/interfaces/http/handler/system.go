package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shoprank/backend/internal/domain/integration"
	"github.com/shoprank/backend/internal/interfaces/http/dto"
	"github.com/shoprank/backend/internal/interfaces/http/router"
)

// PlatformStatus reports, per platform, whether credentials are currently configured
type PlatformStatus func() map[integration.PlatformCode]bool

// SystemHandler handles health and diagnostics endpoints
type SystemHandler struct {
	BaseHandler
	service   string
	version   string
	startTime time.Time
	platforms PlatformStatus
}

// NewSystemHandler creates a new SystemHandler. platforms may be nil.
func NewSystemHandler(service, version string, platforms PlatformStatus, opts ...HandlerOption) *SystemHandler {
	h := &SystemHandler{
		BaseHandler: newBaseHandler(opts),
		service:     service,
		version:     version,
		platforms:   platforms,
	}
	h.startTime = h.Now()
	return h
}

// Routes returns /health and the /system group
func (h *SystemHandler) Routes() []router.RouteRegistrar {
	health := router.NewDomainGroup("health", "")
	health.GET("/health", h.Health)

	system := router.NewDomainGroup("system", "/system")
	system.GET("/info", h.GetSystemInfo)
	system.GET("/ping", h.Ping)

	return []router.RouteRegistrar{health, system}
}

// Health reports liveness and which platforms have credentials.
// Missing credentials degrade the status but never fail the health check.
func (h *SystemHandler) Health(c *gin.Context) {
	resp := dto.HealthResponse{
		Status:    "healthy",
		Service:   h.service,
		Version:   h.version,
		Uptime:    h.Now().Sub(h.startTime).Round(time.Second).String(),
		Platforms: make(map[string]bool),
		Timestamp: dto.Timestamp(h.Now()),
	}
	if h.platforms != nil {
		for platform, configured := range h.platforms() {
			resp.Platforms[platform.String()] = configured
			if !configured {
				resp.Status = "degraded"
			}
		}
	}
	c.JSON(http.StatusOK, resp)
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// GetSystemInfo returns build and runtime information
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	c.JSON(http.StatusOK, SystemInfoResponse{
		Name:      h.service,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    h.Now().Sub(h.startTime).Round(time.Second).String(),
	})
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Ping is a trivial responsiveness check
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{
		Message:   "pong",
		Timestamp: dto.Timestamp(h.Now()),
	})
}
