package handlers

import (
	"errors"
	"net/http"

	"shortly/internal/services"

	"github.com/gin-gonic/gin"
)

// GetQRCode handles GET /api/qr/:short_code. Renders PNG by default, SVG with
// ?format=svg.
func (h *Handler) GetQRCode(c *gin.Context) {
	shortCode := c.Param("short_code")

	details, err := h.stats.Details(baseURL(c), shortCode)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "URL not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to load link for QR", "short_code", shortCode, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	opts := services.QROptions{
		Content: details.ShortURL,
		Size:    256,
		FgColor: c.Query("fg"),
		BgColor: c.Query("bg"),
	}

	if c.Query("format") == "svg" {
		svg, err := h.qr.GenerateSVG(opts)
		if err != nil {
			h.logger.Error("Failed to render QR SVG", "short_code", shortCode, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
		return
	}

	data, err := h.qr.GeneratePNG(opts)
	if err != nil {
		h.logger.Error("Failed to render QR PNG", "short_code", shortCode, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}
