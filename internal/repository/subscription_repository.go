package repository

import (
	"github.com/creatorrank/creatorrank-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{
		db: db,
	}
}

func (r *SubscriptionRepository) GetByUserID(userID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("user_id = ?", userID).First(&sub).Error
	return &sub, err
}

func (r *SubscriptionRepository) GetByStripeSubscriptionID(stripeSubID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("stripe_subscription_id = ?", stripeSubID).First(&sub).Error
	return &sub, err
}

// Upsert writes the row for a user; one subscription per user is all the
// product sells. Webhook events arrive in no guaranteed order and each one
// carries a different subset of the fields, so zero-valued optional columns
// are left out of the update set instead of clobbering what an earlier event
// already wrote.
func (r *SubscriptionRepository) Upsert(sub *models.Subscription) error {
	columns := []string{"status", "updated_at"}
	if sub.Plan != "" {
		columns = append(columns, "plan")
	}
	if sub.StripeSessionID != "" {
		columns = append(columns, "stripe_session_id")
	}
	if sub.StripeSubscriptionID != "" {
		columns = append(columns, "stripe_subscription_id")
	}
	if !sub.CurrentPeriodEnd.IsZero() {
		columns = append(columns, "current_period_end")
	}

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(sub).Error
}
