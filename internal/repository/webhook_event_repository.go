package repository

import (
	"errors"

	"github.com/creatorrank/creatorrank-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WebhookEventRepository struct {
	db *gorm.DB
}

func NewWebhookEventRepository(db *gorm.DB) *WebhookEventRepository {
	return &WebhookEventRepository{
		db: db,
	}
}

// Claim records a Stripe event id and reports whether this is the first time
// we have seen it. Stripe delivers at least once, so a false return means the
// event was already applied and must be skipped.
func (r *WebhookEventRepository) Claim(eventID string, eventType string) (bool, error) {
	record := models.WebhookEventRecord{
		StripeEventID: eventID,
		Type:          eventType,
	}
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Release drops a claim so a redelivery of the event is processed again.
// Called when dispatch fails after the claim was taken; without it a
// transient failure would swallow the event for good.
func (r *WebhookEventRepository) Release(eventID string) error {
	return r.db.Where("stripe_event_id = ?", eventID).
		Delete(&models.WebhookEventRecord{}).Error
}
