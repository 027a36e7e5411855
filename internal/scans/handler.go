package scans

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"conveyorhub/internal/live"
	"conveyorhub/internal/manifest"
	"conveyorhub/internal/metrics"
	"conveyorhub/pkg/models"
)

const recordedAtLayout = "2006-01-02T15:04:05"

type Handler struct {
	Repo        *Repo
	Manifest    *manifest.Repo
	Hub         *live.Hub
	RecentScans int
}

func NewHandler(repo *Repo, manifestRepo *manifest.Repo, hub *live.Hub, recentScans int) *Handler {
	if recentScans <= 0 {
		recentScans = 10
	}
	return &Handler{Repo: repo, Manifest: manifestRepo, Hub: hub, RecentScans: recentScans}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("/latest", h.latest)
	rg.GET("/overview", h.overview)
}

// order_number and clp_number arrive as JSON numbers from the line software
// but as strings from some handheld scanners, so they bind loosely and are
// coerced below. Pointers distinguish a missing field from a zero value;
// zero is a legal sentinel scan.
type createReq struct {
	RecordedDateTime *string `json:"recorded_date_time"`
	OrderNumber      any     `json:"order_number"`
	ClpNumber        any     `json:"clp_number"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if req.RecordedDateTime == nil || req.OrderNumber == nil || req.ClpNumber == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recorded_date_time, order_number and clp_number are required"})
		return
	}

	recordedAt := strings.TrimSpace(*req.RecordedDateTime)
	if _, err := time.Parse(recordedAtLayout, recordedAt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recorded_date_time must be YYYY-MM-DDTHH:MM:SS"})
		return
	}

	orderNumber, err := coerceInt64(req.OrderNumber)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_number must be an integer"})
		return
	}
	clpNumber, err := coerceInt64(req.ClpNumber)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "clp_number must be an integer"})
		return
	}

	rec, err := h.Repo.Classify(c.Request.Context(), recordedAt, orderNumber, clpNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	metrics.ScansIngested.WithLabelValues(rec.View().Status).Inc()

	h.broadcast(c, rec)

	c.JSON(http.StatusCreated, gin.H{"message": "Report created successfully"})
}

// broadcast pushes the latest-10 window and the day's overview. Failures
// here are logged and swallowed: the scan is already persisted and the
// ingestion response must not depend on dashboard delivery.
func (h *Handler) broadcast(c *gin.Context, rec models.ScanRecord) {
	ctx := c.Request.Context()

	latest, err := h.Repo.Latest(ctx, h.RecentScans)
	if err != nil {
		log.Printf("recent-scans broadcast skipped: %v", err)
	} else {
		views := make([]models.ScanView, 0, len(latest))
		for _, r := range latest {
			views = append(views, r.View())
		}
		h.Hub.Broadcast(live.TopicRecentScans, views)
		metrics.BroadcastsSent.WithLabelValues(live.TopicRecentScans).Inc()
	}

	day := rec.RecordedAt[:len("2006-01-02")]
	ov, err := h.Repo.DayOverview(ctx, day)
	if err != nil {
		log.Printf("daily-overview broadcast skipped: %v", err)
		return
	}

	expected, err := h.Manifest.ExpectedCount(ctx)
	if err != nil {
		log.Printf("expected count unavailable: %v", err)
	}
	ov.ExpectedCount = expected

	h.Hub.Broadcast(live.TopicDailyOverview, ov)
	metrics.BroadcastsSent.WithLabelValues(live.TopicDailyOverview).Inc()
}

func (h *Handler) latest(c *gin.Context) {
	limit := parseInt(c.Query("limit"), h.RecentScans)
	if limit <= 0 {
		limit = h.RecentScans
	}
	if limit > 100 {
		limit = 100
	}

	latest, err := h.Repo.Latest(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	views := make([]models.ScanView, 0, len(latest))
	for _, r := range latest {
		views = append(views, r.View())
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handler) overview(c *gin.Context) {
	day := strings.TrimSpace(c.Query("date"))
	if _, err := time.Parse("2006-01-02", day); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	ov, err := h.Repo.DayOverview(c.Request.Context(), day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "overview failed"})
		return
	}

	expected, err := h.Manifest.ExpectedCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "overview failed"})
		return
	}
	ov.ExpectedCount = expected

	c.JSON(http.StatusOK, ov)
}

func coerceInt64(v any) (int64, error) {
	switch n := v.(type) {
	case float64:
		i := int64(n)
		if float64(i) != n {
			return 0, strconv.ErrSyntax
		}
		return i, nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(n), 10, 64)
	default:
		return 0, strconv.ErrSyntax
	}
}

func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
