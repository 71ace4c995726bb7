package services

import (
	"time"

	"github.com/teccodex/chronicler/pkg/internal/database"
	"github.com/teccodex/chronicler/pkg/internal/models"
)

// ListRecentCryptoEvents returns the most recently published crypto events,
// newest first. The limit mirrors the front page loop: five by default,
// capped to keep the unpaginated response bounded.
func ListRecentCryptoEvents(limit int) ([]models.Content, error) {
	if limit <= 0 {
		limit = 5
	}
	if limit > 100 {
		limit = 100
	}

	tx := FilterContentWithType(database.C, models.ContentTypeCryptoEvent)
	tx = FilterContentPublished(tx)
	tx = FilterContentWithPublishedAt(tx, time.Now())

	items := make([]models.Content, 0, limit)
	if err := tx.
		Preload("Terms").
		Preload("Thumbnail").
		Order("published_at DESC, id ASC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return items, err
	}

	return items, nil
}
