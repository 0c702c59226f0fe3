package handlers

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"shortly/internal/config"
	"shortly/internal/models"
	"shortly/internal/repository"
	"shortly/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestHandler(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Link{}, &models.AccessEvent{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		ShortCodeAlphabet:     "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789",
		ShortCodeLength:       6,
		MaxGenerationAttempts: 5,
	}

	repo := repository.NewLinkRepository(db)
	analytics := services.NewAnalyticsService(repo, logger)
	ctx, cancel := context.WithCancel(context.Background())
	go analytics.Start(ctx)
	t.Cleanup(cancel)

	shortener := services.NewShortenerService(repo, cfg, logger)
	redirects := services.NewRedirectService(repo, nil, analytics, logger)
	stats := services.NewStatsService(repo, logger)
	qr := services.NewQRService()

	return NewHandler(cfg, logger, shortener, redirects, stats, qr), db
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter("")
}
