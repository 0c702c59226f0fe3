package handlers

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter(staticDir string) *gin.Engine {
	r := gin.Default()

	r.Use(h.RequestID())

	api := r.Group("/api")
	{
		api.POST("/shorten", h.ShortenURL)
		api.GET("/stats", h.GetStats)
		api.GET("/recent", h.GetRecent)
		api.GET("/url/:short_code", h.GetURLDetails)
		api.GET("/qr/:short_code", h.GetQRCode)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":    "OK",
				"timestamp": time.Now().Format(time.RFC3339),
			})
		})
	}

	if staticDir != "" {
		r.StaticFile("/", filepath.Join(staticDir, "index.html"))
	}

	// Catch-all Redirect
	r.GET("/:short_code", h.RedirectToURL)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})

	return r
}
