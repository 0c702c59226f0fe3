package services

import (
	"context"
	"log/slog"

	"shortly/internal/models"
	"shortly/internal/repository"

	"github.com/mssola/user_agent"
)

// AnalyticsService persists access events off the request path. Recording is
// best-effort: a full queue or a failed insert is logged and the visitor's
// redirect is never blocked.
type AnalyticsService struct {
	repo   *repository.LinkRepository
	logger *slog.Logger
	events chan models.AccessEvent
}

func NewAnalyticsService(repo *repository.LinkRepository, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{
		repo:   repo,
		logger: logger,
		events: make(chan models.AccessEvent, 1000),
	}
}

func (s *AnalyticsService) Start(ctx context.Context) {
	s.logger.Info("Analytics worker starting")
	for {
		select {
		case event := <-s.events:
			s.enrich(&event)
			if err := s.repo.RecordEvent(&event); err != nil {
				s.logger.Error("Failed to record access event", "link_id", event.LinkID, "error", err)
			}
		case <-ctx.Done():
			s.logger.Info("Analytics worker stopping")
			return
		}
	}
}

// Record queues one event without blocking.
func (s *AnalyticsService) Record(event models.AccessEvent) {
	select {
	case s.events <- event:
		// Sent
	default:
		s.logger.Warn("Analytics channel full, dropping access event", "link_id", event.LinkID)
	}
}

func (s *AnalyticsService) enrich(event *models.AccessEvent) {
	ua := user_agent.New(event.UserAgent)
	browserName, browserVer := ua.Browser()
	event.Browser = browserName + " " + browserVer
	event.OS = ua.OS()

	if ua.Mobile() {
		event.DeviceType = "Mobile"
	} else if ua.Bot() {
		event.DeviceType = "Bot"
	} else {
		event.DeviceType = "Desktop"
	}

	if event.Referrer == "" {
		event.Referrer = "Direct"
	}

	// Mask IP for Privacy (GDPR)
	event.IPAddress = maskIP(event.IPAddress)
}

func maskIP(ip string) string {
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == '.' {
			return ip[:i] + ".0"
		}
		if ip[i] == ':' {
			return "IPv6 (Masked)"
		}
	}
	return ip
}
