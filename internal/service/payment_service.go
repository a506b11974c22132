package service

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/creatorrank/creatorrank-backend/internal/models"
	"github.com/creatorrank/creatorrank-backend/internal/plans"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"
)

// PaymentsGateway is the narrow seam to the payments provider. The Stripe
// implementation lives in pkg/payment; tests use stubs.
type PaymentsGateway interface {
	CreateSubscriptionSession(customerEmail string, priceID string, metadata map[string]string) (*stripe.CheckoutSession, error)
	VerifyEvent(payload []byte, signatureHeader string) (stripe.Event, error)
}

type SubscriptionStore interface {
	GetByUserID(userID string) (*models.Subscription, error)
	GetByStripeSubscriptionID(stripeSubID string) (*models.Subscription, error)
	// Upsert writes the row for a user. Zero-valued optional fields (plan,
	// session/subscription ids, period end) leave existing column values in
	// place, so events arriving in any order never erase each other's data.
	Upsert(sub *models.Subscription) error
}

type WebhookEventStore interface {
	Claim(eventID string, eventType string) (bool, error)
	Release(eventID string) error
}

type ConfirmationSender interface {
	SendSubscriptionConfirmation(email string, planName string) error
}

type PaymentService struct {
	gateway       PaymentsGateway
	catalog       *plans.Catalog
	subscriptions SubscriptionStore
	webhookEvents WebhookEventStore
	email         ConfirmationSender
	logger        *zap.Logger
}

func NewPaymentService(
	gateway PaymentsGateway,
	catalog *plans.Catalog,
	subscriptions SubscriptionStore,
	webhookEvents WebhookEventStore,
	email ConfirmationSender,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		gateway:       gateway,
		catalog:       catalog,
		subscriptions: subscriptions,
		webhookEvents: webhookEvents,
		email:         email,
		logger:        logger,
	}
}

// CreateCheckoutSession validates the request, resolves the plan to a Stripe
// price and opens a hosted checkout session. Validation runs strictly before
// the gateway call. The provider call is never retried here: session creation
// is not safe to repeat blindly, a retry is the caller's decision.
func (s *PaymentService) CreateCheckoutSession(plan string, userID string, email string) (string, error) {
	if strings.TrimSpace(plan) == "" || strings.TrimSpace(userID) == "" || strings.TrimSpace(email) == "" {
		return "", ErrMissingFields
	}

	def, err := s.catalog.Resolve(models.PlanID(plan))
	if err != nil {
		if errors.Is(err, plans.ErrUnknownPlan) {
			return "", ErrInvalidPlan
		}
		return "", err
	}

	// The plan is valid but the deployment is missing its price id. This is
	// an operator problem, not a client one.
	if def.StripePriceID == "" {
		return "", ErrPriceNotConfigured
	}

	session, err := s.gateway.CreateSubscriptionSession(email, def.StripePriceID, map[string]string{
		"userId": userID,
		"plan":   plan,
	})
	if err != nil {
		s.logger.Error("stripe checkout session creation failed",
			zap.String("plan", plan),
			zap.String("user_id", userID),
			zap.Error(err))
		return "", err
	}

	// Pending row so the dashboard can show an in-flight purchase. Webhooks
	// remain the only authority for active/canceled: an active subscriber
	// opening another checkout must not have their row downgraded by a
	// client-driven action. Losing this write only loses the pending hint,
	// so the session is still returned.
	if existing, err := s.subscriptions.GetByUserID(userID); err == nil &&
		existing.Status == models.SubscriptionStatusActive {
		s.logger.Info("active subscription exists, not recording pending state",
			zap.String("user_id", userID),
			zap.String("session_id", session.ID))
	} else {
		pending := &models.Subscription{
			UserID:          userID,
			Plan:            plan,
			Status:          models.SubscriptionStatusPending,
			StripeSessionID: session.ID,
		}
		if err := s.subscriptions.Upsert(pending); err != nil {
			s.logger.Warn("could not record pending subscription",
				zap.String("user_id", userID),
				zap.Error(err))
		}
	}

	s.logger.Info("checkout session created",
		zap.String("session_id", session.ID),
		zap.String("plan", plan),
		zap.String("user_id", userID))

	return session.ID, nil
}

// VerifyWebhook checks the provider signature over the raw request body.
func (s *PaymentService) VerifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error) {
	return s.gateway.VerifyEvent(payload, signatureHeader)
}

// HandleWebhookEvent applies a verified event to the subscription store.
// Unknown event types are logged and ignored: Stripe adds types over time and
// the receiver has to stay forward compatible. Redeliveries of an already
// applied event id are skipped.
func (s *PaymentService) HandleWebhookEvent(event stripe.Event) error {
	first, err := s.webhookEvents.Claim(event.ID, string(event.Type))
	if err != nil {
		return err
	}
	if !first {
		s.logger.Info("webhook event already processed, skipping",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)))
		return nil
	}

	var dispatchErr error
	switch string(event.Type) {
	case "checkout.session.completed":
		dispatchErr = s.handleCheckoutCompleted(event)

	case "customer.subscription.created", "customer.subscription.updated":
		dispatchErr = s.handleSubscriptionChanged(event)

	case "customer.subscription.deleted":
		dispatchErr = s.handleSubscriptionDeleted(event)

	default:
		s.logger.Info("unhandled webhook event type",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)))
	}

	if dispatchErr != nil {
		// Give the claim back so Stripe's redelivery gets another run.
		// Holding it would turn a transient store failure into a
		// permanently lost event.
		if relErr := s.webhookEvents.Release(event.ID); relErr != nil {
			s.logger.Error("could not release webhook event claim",
				zap.String("event_id", event.ID),
				zap.Error(relErr))
		}
		return dispatchErr
	}
	return nil
}

func (s *PaymentService) handleCheckoutCompleted(event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return err
	}

	userID := session.Metadata["userId"]
	plan := session.Metadata["plan"]
	if userID == "" {
		s.logger.Warn("checkout.session.completed without userId metadata",
			zap.String("session_id", session.ID))
		return nil
	}

	sub := &models.Subscription{
		UserID:          userID,
		Plan:            plan,
		Status:          models.SubscriptionStatusActive,
		StripeSessionID: session.ID,
	}
	if session.Subscription != nil {
		sub.StripeSubscriptionID = session.Subscription.ID
	}
	if err := s.subscriptions.Upsert(sub); err != nil {
		return err
	}

	s.logger.Info("payment successful",
		zap.String("user_id", userID),
		zap.String("plan", plan),
		zap.String("session_id", session.ID))

	if s.email != nil && session.CustomerEmail != "" {
		if err := s.email.SendSubscriptionConfirmation(session.CustomerEmail, plan); err != nil {
			s.logger.Warn("could not send confirmation email",
				zap.String("user_id", userID),
				zap.Error(err))
		}
	}
	return nil
}

func (s *PaymentService) handleSubscriptionChanged(event stripe.Event) error {
	var subscription stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &subscription); err != nil {
		return err
	}

	userID := subscription.Metadata["userId"]
	if userID == "" {
		s.logger.Warn("subscription event without userId metadata",
			zap.String("subscription_id", subscription.ID),
			zap.String("type", string(event.Type)))
		return nil
	}

	sub := &models.Subscription{
		UserID:               userID,
		Plan:                 subscription.Metadata["plan"],
		Status:               subscriptionStatus(subscription.Status),
		StripeSubscriptionID: subscription.ID,
	}
	if subscription.CurrentPeriodEnd > 0 {
		sub.CurrentPeriodEnd = time.Unix(subscription.CurrentPeriodEnd, 0)
	}
	if err := s.subscriptions.Upsert(sub); err != nil {
		return err
	}

	s.logger.Info("subscription state updated",
		zap.String("user_id", userID),
		zap.String("subscription_id", subscription.ID),
		zap.String("status", sub.Status))
	return nil
}

func (s *PaymentService) handleSubscriptionDeleted(event stripe.Event) error {
	var subscription stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &subscription); err != nil {
		return err
	}

	userID := subscription.Metadata["userId"]
	if userID == "" {
		// Fall back to the stored subscription id for rows created before
		// metadata was attached.
		existing, err := s.subscriptions.GetByStripeSubscriptionID(subscription.ID)
		if err != nil {
			s.logger.Warn("canceled subscription has no matching row",
				zap.String("subscription_id", subscription.ID))
			return nil
		}
		userID = existing.UserID
	}

	sub := &models.Subscription{
		UserID:               userID,
		Plan:                 subscription.Metadata["plan"],
		Status:               models.SubscriptionStatusCanceled,
		StripeSubscriptionID: subscription.ID,
	}
	if subscription.CurrentPeriodEnd > 0 {
		sub.CurrentPeriodEnd = time.Unix(subscription.CurrentPeriodEnd, 0)
	}
	if err := s.subscriptions.Upsert(sub); err != nil {
		return err
	}

	s.logger.Info("subscription canceled",
		zap.String("user_id", userID),
		zap.String("subscription_id", subscription.ID))
	return nil
}

// subscriptionStatus folds Stripe's status vocabulary into the three states
// the product tracks.
func subscriptionStatus(status stripe.SubscriptionStatus) string {
	switch status {
	case stripe.SubscriptionStatusCanceled,
		stripe.SubscriptionStatusUnpaid,
		stripe.SubscriptionStatusIncompleteExpired:
		return models.SubscriptionStatusCanceled
	case stripe.SubscriptionStatusIncomplete:
		return models.SubscriptionStatusPending
	default:
		return models.SubscriptionStatusActive
	}
}
