package services

import (
	"log/slog"
	"os"
	"strings"
	"testing"

	"shortly/internal/config"
	"shortly/internal/models"
	"shortly/internal/repository"
	"shortly/pkg/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Link{}, &models.AccessEvent{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func testConfig() config.Config {
	return config.Config{
		ShortCodeAlphabet:     "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789",
		ShortCodeLength:       6,
		MaxGenerationAttempts: 5,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestShorten(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewLinkRepository(db)
	cfg := testConfig()
	service := NewShortenerService(repo, cfg, testLogger())

	t.Run("Creates Link", func(t *testing.T) {
		link, err := service.Shorten("https://example.com/page")
		assert.NoError(t, err)
		assert.Len(t, link.ShortCode, cfg.ShortCodeLength)
		for _, c := range link.ShortCode {
			assert.True(t, strings.ContainsRune(cfg.ShortCodeAlphabet, c))
		}
		assert.Equal(t, "https://example.com/page", link.OriginalURL)
		assert.EqualValues(t, 0, link.Clicks)
		assert.False(t, link.CreatedAt.IsZero())
	})

	t.Run("Codes Are Distinct", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 20; i++ {
			link, err := service.Shorten("https://example.com/distinct")
			assert.NoError(t, err)
			assert.False(t, seen[link.ShortCode], "code %s repeated", link.ShortCode)
			seen[link.ShortCode] = true
		}
	})

	t.Run("Empty URL", func(t *testing.T) {
		_, err := service.Shorten("")
		assert.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Equal(t, "URL is required", err.Error())

		_, err = service.Shorten("   ")
		assert.True(t, IsValidation(err))
	})

	t.Run("Invalid URL", func(t *testing.T) {
		_, err := service.Shorten("not-a-url")
		assert.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Equal(t, "Invalid URL format", err.Error())
	})

	t.Run("Collision Retry", func(t *testing.T) {
		db.Create(&models.Link{ShortCode: "COLLIDE", OriginalURL: "https://a.com"})

		calls := 0
		service.codeGenerator = func(string, int) (string, error) {
			calls++
			if calls == 1 {
				return "COLLIDE", nil
			}
			return "UNIQUE", nil
		}
		defer func() { service.codeGenerator = utils.GenerateShortCode }()

		link, err := service.Shorten("https://b.com")
		assert.NoError(t, err)
		assert.Equal(t, "UNIQUE", link.ShortCode)
		assert.Equal(t, 2, calls)
	})

	t.Run("Exhaustion After Max Attempts", func(t *testing.T) {
		db.Create(&models.Link{ShortCode: "STUCK", OriginalURL: "https://a.com"})

		calls := 0
		service.codeGenerator = func(string, int) (string, error) {
			calls++
			return "STUCK", nil
		}
		defer func() { service.codeGenerator = utils.GenerateShortCode }()

		_, err := service.Shorten("https://c.com")
		assert.ErrorIs(t, err, ErrExhausted)
		assert.Equal(t, cfg.MaxGenerationAttempts, calls)
	})

	t.Run("Generator Failure", func(t *testing.T) {
		service.codeGenerator = func(string, int) (string, error) {
			return "", assert.AnError
		}
		defer func() { service.codeGenerator = utils.GenerateShortCode }()

		_, err := service.Shorten("https://d.com")
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("DB Error", func(t *testing.T) {
		dbErr := setupTestDB(t)
		dbErr.Migrator().DropTable(&models.Link{})
		serviceErr := NewShortenerService(repository.NewLinkRepository(dbErr), cfg, testLogger())

		_, err := serviceErr.Shorten("https://e.com")
		assert.Error(t, err)
		assert.False(t, IsValidation(err))
	})
}
