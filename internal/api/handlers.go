package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/vidwatch/internal/domain"
	"github.com/jonesrussell/vidwatch/internal/logger"
	"github.com/jonesrussell/vidwatch/internal/report"
	"github.com/jonesrussell/vidwatch/internal/store"
)

const (
	defaultVideoLimit  = 50
	maxVideoLimit      = 200
	defaultWindowDays  = 7
	maxWindowDays      = 90
	dateParamLayout    = "2006-01-02"
	defaultReadyWindow = 2 * time.Second
)

// Reader is the subset of the record store the dashboard reads from.
type Reader interface {
	Get(ctx context.Context, id string) (*domain.Video, error)
	Query(ctx context.Context, filter domain.VideoFilter) ([]*domain.Video, error)
	DailyReport(ctx context.Context, date string) (*domain.DailyReport, error)
	ListDailyReports(ctx context.Context) ([]*domain.DailyReport, error)
	Ping(ctx context.Context) error
}

// Handler handles HTTP requests for the dashboard API
type Handler struct {
	reader Reader
	logger logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(reader Reader, log logger.Logger) *Handler {
	return &Handler{reader: reader, logger: log}
}

// ListVideos handles GET /api/v1/videos
func (h *Handler) ListVideos(c *gin.Context) {
	filter, err := parseVideoFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	videos, err := h.reader.Query(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("video query failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	c.JSON(http.StatusOK, VideoListResponse{Videos: videos, Total: len(videos)})
}

// GetVideo handles GET /api/v1/videos/:id
func (h *Handler) GetVideo(c *gin.Context) {
	id := c.Param("id")

	video, err := h.reader.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "video not found"})
			return
		}
		h.logger.Error("video lookup failed", logger.String("video_id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}

	c.JSON(http.StatusOK, video)
}

// ListReports handles GET /api/v1/reports
func (h *Handler) ListReports(c *gin.Context) {
	reports, err := h.reader.ListDailyReports(c.Request.Context())
	if err != nil {
		h.logger.Error("report list failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	c.JSON(http.StatusOK, ReportListResponse{Reports: reports, Total: len(reports)})
}

// GetReport handles GET /api/v1/reports/:date
func (h *Handler) GetReport(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse(dateParamLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	rep, err := h.reader.DailyReport(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no report for " + date})
			return
		}
		h.logger.Error("report lookup failed", logger.String("date", date), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}

	c.JSON(http.StatusOK, rep)
}

// GetStats handles GET /api/v1/stats
func (h *Handler) GetStats(c *gin.Context) {
	days, err := intQuery(c, "days", defaultWindowDays, 1, maxWindowDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	videos, err := h.reader.Query(c.Request.Context(), domain.VideoFilter{LookbackDays: days})
	if err != nil {
		h.logger.Error("stats query failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	c.JSON(http.StatusOK, report.Stats(videos, days))
}

// HealthCheck handles GET /healthz
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ReadyCheck handles GET /ready. Ready means the record store answers.
func (h *Handler) ReadyCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultReadyWindow)
	defer cancel()

	if err := h.reader.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func parseVideoFilter(c *gin.Context) (domain.VideoFilter, error) {
	limit, err := intQuery(c, "limit", defaultVideoLimit, 1, maxVideoLimit)
	if err != nil {
		return domain.VideoFilter{}, err
	}
	minScore, err := intQuery(c, "min_score", 0, 0, 100)
	if err != nil {
		return domain.VideoFilter{}, err
	}
	days, err := intQuery(c, "days", 0, 0, maxWindowDays)
	if err != nil {
		return domain.VideoFilter{}, err
	}

	return domain.VideoFilter{
		Category:     c.Query("category"),
		MinScore:     minScore,
		Search:       c.Query("search"),
		LookbackDays: days,
		Limit:        limit,
	}, nil
}

func intQuery(c *gin.Context, name string, def, min, max int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min || n > max {
		return 0, errors.New(name + " must be an integer between " +
			strconv.Itoa(min) + " and " + strconv.Itoa(max))
	}
	return n, nil
}
