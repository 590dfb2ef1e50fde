package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/vidwatch/internal/monitor"
)

// SetupRoutes configures the dashboard API routes.
func SetupRoutes(router *gin.Engine, handler *Handler, metrics http.Handler) {
	router.GET("/healthz", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	v1 := router.Group("/api/v1")
	{
		videos := v1.Group("/videos")
		{
			videos.GET("", handler.ListVideos)    // GET /api/v1/videos
			videos.GET("/:id", handler.GetVideo)  // GET /api/v1/videos/:id
		}

		reports := v1.Group("/reports")
		{
			reports.GET("", handler.ListReports)       // GET /api/v1/reports
			reports.GET("/:date", handler.GetReport)   // GET /api/v1/reports/:date
		}

		v1.GET("/stats", handler.GetStats) // GET /api/v1/stats
	}
}

// SetupOpsRoutes configures the scheduler's operational surface: liveness,
// metrics, and the current cycle status.
func SetupOpsRoutes(router *gin.Engine, mon *monitor.Monitor, metrics http.Handler) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}
	router.GET("/status", func(c *gin.Context) {
		resp := StatusResponse{State: string(mon.State())}
		if last := mon.LastCycle(); last != nil {
			resp.LastCycle = &CycleStatus{
				ID:           last.ID,
				StartedAt:    last.StartedAt.Format(time.RFC3339),
				FinishedAt:   last.FinishedAt.Format(time.RFC3339),
				Sources:      last.Sources,
				Fetched:      last.Fetched,
				Stored:       last.Stored,
				Duplicates:   last.Duplicates,
				Irrelevant:   last.Irrelevant,
				SourceErrors: len(last.SourceErrors),
			}
		}
		c.JSON(http.StatusOK, resp)
	})
}
