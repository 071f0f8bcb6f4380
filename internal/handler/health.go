package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelrec/internal/catalog"
)

// BuildInfo identifies the running binary
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// HealthHandler reports liveness, build info and catalog status
type HealthHandler struct {
	service  string
	build    BuildInfo
	snapshot *catalog.Snapshot
}

// NewHealthHandler creates a new health handler. snapshot is nil when the
// catalog failed to load.
func NewHealthHandler(service string, build BuildInfo, snapshot *catalog.Snapshot) *HealthHandler {
	return &HealthHandler{
		service:  service,
		build:    build,
		snapshot: snapshot,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	body := gin.H{
		"status":     "healthy",
		"service":    h.service,
		"version":    h.build.Version,
		"build_time": h.build.BuildTime,
		"git_commit": h.build.GitCommit,
	}

	if h.snapshot == nil {
		body["status"] = "degraded"
		body["catalog"] = gin.H{"available": false}
	} else {
		body["catalog"] = gin.H{
			"available": true,
			"version":   h.snapshot.Version(),
			"loaded_at": h.snapshot.LoadedAt(),
			"items":     h.snapshot.Counts(),
		}
	}

	c.JSON(http.StatusOK, body)
}

// Version handles GET /version
func (h *HealthHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":    h.build.Version,
		"build_time": h.build.BuildTime,
		"git_commit": h.build.GitCommit,
	})
}
