package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"shortly/internal/models"
	"shortly/internal/repository"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const cacheTTL = 10 * time.Minute

// Visit is what the transport layer knows about the caller.
type Visit struct {
	IPAddress string
	UserAgent string
	Referrer  string
}

// cachedLink holds only the immutable fields of a mapping. Counters are never
// served from cache.
type cachedLink struct {
	ID          uint   `json:"id"`
	OriginalURL string `json:"original_url"`
}

type RedirectService struct {
	repo      *repository.LinkRepository
	rdb       *redis.Client
	analytics *AnalyticsService
	logger    *slog.Logger
}

// NewRedirectService wires the redirect path. rdb may be nil, in which case
// every lookup goes to the store.
func NewRedirectService(repo *repository.LinkRepository, rdb *redis.Client, analytics *AnalyticsService, logger *slog.Logger) *RedirectService {
	return &RedirectService{
		repo:      repo,
		rdb:       rdb,
		analytics: analytics,
		logger:    logger,
	}
}

// Resolve maps a code to its link, counts the visit and queues an access
// event. The counter update and the analytics write belong to the same visit,
// but only the counter is allowed to fail the operation.
func (s *RedirectService) Resolve(ctx context.Context, code string, visit Visit) (*models.Link, error) {
	// 1. Resolve the immutable mapping, cache-aside.
	if s.fromCache(ctx, code) == nil {
		link, err := s.repo.Get(code)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		s.fillCache(ctx, link)
	}

	// 2. Count the visit atomically in the store.
	link, err := s.repo.IncrementAndTouch(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Stale cache entry for a deleted row.
		s.invalidate(ctx, code)
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// 3. Analytics, fire-and-forget.
	s.analytics.Record(models.AccessEvent{
		LinkID:     link.ID,
		IPAddress:  visit.IPAddress,
		UserAgent:  visit.UserAgent,
		Referrer:   visit.Referrer,
		AccessedAt: time.Now(),
	})

	return link, nil
}

func (s *RedirectService) fromCache(ctx context.Context, code string) *cachedLink {
	if s.rdb == nil {
		return nil
	}
	val, err := s.rdb.Get(ctx, "link:"+code).Result()
	if err != nil {
		return nil
	}
	var cached cachedLink
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return nil
	}
	return &cached
}

func (s *RedirectService) fillCache(ctx context.Context, link *models.Link) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(cachedLink{ID: link.ID, OriginalURL: link.OriginalURL})
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, "link:"+link.ShortCode, data, cacheTTL).Err(); err != nil {
		s.logger.Debug("Cache write failed", "short_code", link.ShortCode, "error", err)
	}
}

func (s *RedirectService) invalidate(ctx context.Context, code string) {
	if s.rdb == nil {
		return
	}
	s.rdb.Del(ctx, "link:"+code)
}
