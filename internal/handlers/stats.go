package handlers

import (
	"errors"
	"net/http"

	"shortly/internal/services"

	"github.com/gin-gonic/gin"
)

const recentLimit = 5

// GetStats handles GET /api/stats.
func (h *Handler) GetStats(c *gin.Context) {
	totals, err := h.stats.Totals(baseURL(c))
	if err != nil {
		h.logger.Error("Failed to aggregate stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalLinks":  totals.TotalLinks,
		"totalClicks": totals.TotalClicks,
		"savedChars":  totals.TotalSavedChars,
	})
}

// GetRecent handles GET /api/recent.
func (h *Handler) GetRecent(c *gin.Context) {
	recent, err := h.stats.Recent(baseURL(c), recentLimit)
	if err != nil {
		h.logger.Error("Failed to list recent links", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, recent)
}

// GetURLDetails handles GET /api/url/:short_code.
func (h *Handler) GetURLDetails(c *gin.Context) {
	shortCode := c.Param("short_code")

	details, err := h.stats.Details(baseURL(c), shortCode)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "URL not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to load link details", "short_code", shortCode, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, details)
}
