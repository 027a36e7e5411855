package reconcile

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"conveyorhub/internal/manifest"
	"conveyorhub/internal/metrics"
	"conveyorhub/internal/scans"
)

type Handler struct {
	Scans    *scans.Repo
	Manifest *manifest.Repo
}

func NewHandler(scanRepo *scans.Repo, manifestRepo *manifest.Repo) *Handler {
	return &Handler{Scans: scanRepo, Manifest: manifestRepo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/compare", h.compare)
}

func (h *Handler) compare(c *gin.Context) {
	ctx := c.Request.Context()

	expected, err := h.Manifest.Pairs(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "manifest read failed"})
		return
	}

	actual, err := h.Scans.AllPairs(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "scan read failed"})
		return
	}

	// a run over an empty manifest is still a run
	metrics.ReconcileRuns.Inc()

	missing, err := FindMissing(expected, actual)
	if err != nil {
		if errors.Is(err, ErrNoExpectedData) {
			c.JSON(http.StatusOK, gin.H{"message": "No expected data available"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "compare failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"missing_records": missing})
}
