package service

import (
	"time"

	"github.com/creatorrank/creatorrank-backend/internal/models"
)

type SubscriptionService struct {
	subscriptions SubscriptionStore
}

func NewSubscriptionService(subscriptions SubscriptionStore) *SubscriptionService {
	return &SubscriptionService{
		subscriptions: subscriptions,
	}
}

// GetSubscriptionStatus reads the persisted state for a user. The userId is
// opaque here; identity lives with the external auth provider.
func (s *SubscriptionService) GetSubscriptionStatus(userID string) (*models.SubscriptionStatusResponse, error) {
	sub, err := s.subscriptions.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	resp := &models.SubscriptionStatusResponse{
		UserID: sub.UserID,
		Status: sub.Status,
		Plan:   sub.Plan,
	}
	if !sub.CurrentPeriodEnd.IsZero() {
		resp.CurrentPeriodEnd = sub.CurrentPeriodEnd.UTC().Format(time.RFC3339)
	}
	return resp, nil
}
