package services

import (
	"errors"
	"log/slog"
	"time"

	"shortly/internal/models"
	"shortly/internal/repository"

	"gorm.io/gorm"
)

// LinkSummary is the reporting view of one link.
type LinkSummary struct {
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"original_url"`
	ShortURL    string    `json:"shortUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	Clicks      int64     `json:"clicks"`
}

// LinkDetails adds access info; LastAccessed is null until the first visit.
type LinkDetails struct {
	LinkSummary
	LastAccessed *time.Time `json:"lastAccessed"`
}

// StatsService is a read-only fan-out over the link store.
type StatsService struct {
	repo   *repository.LinkRepository
	logger *slog.Logger
}

func NewStatsService(repo *repository.LinkRepository, logger *slog.Logger) *StatsService {
	return &StatsService{repo: repo, logger: logger}
}

func (s *StatsService) Totals(baseURL string) (repository.Totals, error) {
	return s.repo.Aggregate(baseURL)
}

func (s *StatsService) Recent(baseURL string, limit int) ([]LinkSummary, error) {
	links, err := s.repo.ListRecent(limit)
	if err != nil {
		return nil, err
	}
	summaries := make([]LinkSummary, 0, len(links))
	for _, link := range links {
		summaries = append(summaries, summarize(&link, baseURL))
	}
	return summaries, nil
}

func (s *StatsService) Details(baseURL string, code string) (*LinkDetails, error) {
	link, err := s.repo.Get(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &LinkDetails{
		LinkSummary:  summarize(link, baseURL),
		LastAccessed: link.LastAccessedAt,
	}, nil
}

func summarize(link *models.Link, baseURL string) LinkSummary {
	return LinkSummary{
		ShortCode:   link.ShortCode,
		OriginalURL: link.OriginalURL,
		ShortURL:    baseURL + "/" + link.ShortCode,
		CreatedAt:   link.CreatedAt,
		Clicks:      link.Clicks,
	}
}
