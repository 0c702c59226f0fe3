package handlers

import (
	"errors"
	"net/http"

	"shortly/internal/services"

	"github.com/gin-gonic/gin"
)

// RedirectToURL handles GET /:short_code, the visitor-facing hot path.
func (h *Handler) RedirectToURL(c *gin.Context) {
	shortCode := c.Param("short_code")

	link, err := h.redirects.Resolve(c.Request.Context(), shortCode, services.Visit{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
	})
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "URL not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to resolve short code", "short_code", shortCode, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.Redirect(http.StatusFound, link.OriginalURL)
}
