package handlers

import (
	"errors"
	"net/http"

	"shortly/internal/services"

	"github.com/gin-gonic/gin"
)

type ShortenRequest struct {
	OriginalURL string `json:"originalUrl"`
}

// ShortenURL handles POST /api/shorten.
func (h *Handler) ShortenURL(c *gin.Context) {
	var req ShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	link, err := h.shortener.Shorten(req.OriginalURL)
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
			return
		}
		if errors.Is(err, services.ErrExhausted) {
			h.logger.Error("Short code space exhausted", "attempts", h.cfg.MaxGenerationAttempts)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate unique short code"})
			return
		}
		h.logger.Error("Failed to create short URL", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"originalUrl": link.OriginalURL,
		"shortCode":   link.ShortCode,
		"shortUrl":    baseURL(c) + "/" + link.ShortCode,
		"createdAt":   link.CreatedAt,
	})
}
