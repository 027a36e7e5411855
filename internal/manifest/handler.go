package manifest

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"conveyorhub/internal/metrics"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.upload)
	rg.GET("/count", h.count)
}

func (h *Handler) upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot open uploaded file"})
		return
	}
	defer f.Close()

	res, err := ParseCSV(f)
	if err != nil {
		if errors.Is(err, ErrMissingColumns) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrMissingColumns.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot parse uploaded file"})
		return
	}

	if err := h.Repo.Replace(c.Request.Context(), res.Pairs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "manifest replace failed"})
		return
	}
	metrics.ManifestReplaces.Inc()

	loadID := uuid.NewString()
	log.Printf("manifest %s loaded from %s: %d rows, %d skipped", loadID, file.Filename, res.TotalRows, len(res.SkippedRows))

	resp := gin.H{
		"message":    "Expected data uploaded successfully",
		"load_id":    loadID,
		"total_rows": res.TotalRows,
	}
	if len(res.SkippedRows) > 0 {
		resp["skipped_rows"] = res.SkippedRows
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) count(c *gin.Context) {
	count, err := h.Repo.ExpectedCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"expected_count": count})
}
