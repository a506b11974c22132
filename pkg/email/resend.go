package email

import (
	"fmt"

	"github.com/creatorrank/creatorrank-backend/internal/config"
	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.Logger
}

// NewEmailService returns nil when no API key is configured; callers treat a
// nil sender as "email disabled" and the relay keeps working without it.
func NewEmailService(cfg config.EmailConfig, logger *zap.Logger) *EmailService {
	if cfg.APIKey == "" {
		logger.Info("RESEND_API_KEY not set, confirmation emails disabled")
		return nil
	}
	return &EmailService{
		client:   resend.NewClient(cfg.APIKey),
		from:     cfg.FromAddress,
		fromName: cfg.FromName,
		logger:   logger,
	}
}

func (s *EmailService) SendSubscriptionConfirmation(email string, planName string) error {
	html := fmt.Sprintf(
		"<h2>Your %s plan is active</h2>"+
			"<p>Thanks for subscribing to CreatorRank. Your %s features are unlocked "+
			"and your dashboard is ready.</p>",
		planName, planName)

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Your CreatorRank subscription is active",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Warn("failed to send confirmation email",
			zap.String("to", email),
			zap.Error(err))
		return err
	}

	s.logger.Info("confirmation email sent",
		zap.String("to", email),
		zap.String("resend_id", resp.Id))
	return nil
}
