package models

import "time"

const (
	SubscriptionStatusPending  = "pending"
	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"
)

// Subscription is the billing state we keep per user. Stripe owns the truth;
// rows here are only ever updated from verified webhook events, except for the
// initial pending row written when a checkout session is created.
type Subscription struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	UserID               string    `json:"user_id" gorm:"uniqueIndex;not null"`
	Plan                 string    `json:"plan" gorm:"not null"`
	Status               string    `json:"status" gorm:"not null;default:'pending'"`
	StripeSessionID      string    `json:"stripe_session_id"`
	StripeSubscriptionID string    `json:"stripe_subscription_id"`
	CurrentPeriodEnd     time.Time `json:"current_period_end"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// WebhookEventRecord marks a Stripe event id as processed. Stripe delivers
// at least once; the unique index is what keeps redeliveries from
// double-applying a transition.
type WebhookEventRecord struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	StripeEventID string    `json:"stripe_event_id" gorm:"uniqueIndex;not null"`
	Type          string    `json:"type" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
}
