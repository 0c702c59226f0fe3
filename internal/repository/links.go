package repository

import (
	"errors"
	"strings"
	"time"

	"shortly/internal/models"

	"gorm.io/gorm"
)

// ErrDuplicateCode reports a unique-index violation on links.short_code.
var ErrDuplicateCode = errors.New("short code already exists")

// Totals is the aggregate view over all links.
type Totals struct {
	TotalLinks      int64
	TotalClicks     int64
	TotalSavedChars int64
}

// LinkRepository is the durable store for Link and AccessEvent records.
type LinkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

func (r *LinkRepository) Exists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Link{}).Where("short_code = ?", code).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert creates a new mapping. The unique index on short_code is the final
// authority: a lost race between a pre-check and this insert comes back as
// ErrDuplicateCode.
func (r *LinkRepository) Insert(code string, originalURL string) (*models.Link, error) {
	link := models.Link{
		ShortCode:   code,
		OriginalURL: originalURL,
		CreatedAt:   time.Now(),
	}
	if err := r.db.Create(&link).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, ErrDuplicateCode
		}
		return nil, err
	}
	return &link, nil
}

// IncrementAndTouch bumps clicks and sets last_accessed_at in a single UPDATE
// with a SQL expression, so concurrent visits to the same code never lose
// counts. Returns gorm.ErrRecordNotFound for unknown codes.
func (r *LinkRepository) IncrementAndTouch(code string) (*models.Link, error) {
	now := time.Now()
	res := r.db.Model(&models.Link{}).Where("short_code = ?", code).UpdateColumns(map[string]interface{}{
		"clicks":           gorm.Expr("clicks + 1"),
		"last_accessed_at": now,
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.Get(code)
}

func (r *LinkRepository) Get(code string) (*models.Link, error) {
	var link models.Link
	if err := r.db.Where("short_code = ?", code).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// ListRecent returns up to limit links, newest first, insertion order breaking
// created_at ties.
func (r *LinkRepository) ListRecent(limit int) ([]models.Link, error) {
	var links []models.Link
	err := r.db.Order("created_at DESC, id DESC").Limit(limit).Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

// Aggregate computes totals over all links. Saved characters are floored per
// link before summing, so one link whose short URL is longer than its target
// cannot offset the savings of the others. baseURL is "<scheme>://<host>"; the
// full short URL adds a slash and the code.
func (r *LinkRepository) Aggregate(baseURL string) (Totals, error) {
	overhead := len(baseURL) + 1

	var row struct {
		Links  int64
		Clicks int64
		Saved  int64
	}
	err := r.db.Model(&models.Link{}).
		Select(`COUNT(*) AS links,
			COALESCE(SUM(clicks), 0) AS clicks,
			COALESCE(SUM(CASE
				WHEN LENGTH(original_url) > LENGTH(short_code) + ?
				THEN LENGTH(original_url) - LENGTH(short_code) - ?
				ELSE 0
			END), 0) AS saved`, overhead, overhead).
		Scan(&row).Error
	if err != nil {
		return Totals{}, err
	}

	return Totals{
		TotalLinks:      row.Links,
		TotalClicks:     row.Clicks,
		TotalSavedChars: row.Saved,
	}, nil
}

// RecordEvent appends one access event. Used by the analytics worker only.
func (r *LinkRepository) RecordEvent(event *models.AccessEvent) error {
	return r.db.Create(event).Error
}

func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Driver messages for dialects without error translation.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
