package handlers

import (
	"log/slog"

	"shortly/internal/config"
	"shortly/internal/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	cfg       config.Config
	logger    *slog.Logger
	shortener *services.ShortenerService
	redirects *services.RedirectService
	stats     *services.StatsService
	qr        *services.QRService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	shortener *services.ShortenerService,
	redirects *services.RedirectService,
	stats *services.StatsService,
	qr *services.QRService,
) *Handler {
	return &Handler{
		cfg:       cfg,
		logger:    logger,
		shortener: shortener,
		redirects: redirects,
		stats:     stats,
		qr:        qr,
	}
}

// baseURL rebuilds "<scheme>://<host>" from the request itself, so short URLs
// follow whatever name the service is reached under.
func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}
