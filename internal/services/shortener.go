package services

import (
	"errors"
	"log/slog"
	"strings"

	"shortly/internal/config"
	"shortly/internal/models"
	"shortly/internal/repository"
	"shortly/pkg/utils"
)

type ShortenerService struct {
	repo          *repository.LinkRepository
	cfg           config.Config
	logger        *slog.Logger
	codeGenerator func(alphabet string, length int) (string, error)
}

func NewShortenerService(repo *repository.LinkRepository, cfg config.Config, logger *slog.Logger) *ShortenerService {
	return &ShortenerService{
		repo:          repo,
		cfg:           cfg,
		logger:        logger,
		codeGenerator: utils.GenerateShortCode,
	}
}

// Shorten validates the URL, finds a free code and persists the mapping.
// The exists pre-check only filters candidates; the store's unique index
// decides. A duplicate-key loss at insert time gets one full retry before the
// error surfaces.
func (s *ShortenerService) Shorten(originalURL string) (*models.Link, error) {
	if strings.TrimSpace(originalURL) == "" {
		return nil, &ValidationError{Reason: "URL is required"}
	}
	if !utils.IsValidURL(originalURL) {
		return nil, &ValidationError{Reason: "Invalid URL format"}
	}

	link, err := s.create(originalURL)
	if errors.Is(err, repository.ErrDuplicateCode) {
		s.logger.Warn("Insert lost uniqueness race, retrying", "url_length", len(originalURL))
		link, err = s.create(originalURL)
	}
	if errors.Is(err, repository.ErrDuplicateCode) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return link, nil
}

func (s *ShortenerService) create(originalURL string) (*models.Link, error) {
	code, err := s.pickCode()
	if err != nil {
		return nil, err
	}
	return s.repo.Insert(code, originalURL)
}

func (s *ShortenerService) pickCode() (string, error) {
	for attempt := 0; attempt < s.cfg.MaxGenerationAttempts; attempt++ {
		code, err := s.codeGenerator(s.cfg.ShortCodeAlphabet, s.cfg.ShortCodeLength)
		if err != nil {
			return "", err
		}
		taken, err := s.repo.Exists(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
		s.logger.Debug("Short code collision", "attempt", attempt+1)
	}
	return "", ErrExhausted
}
