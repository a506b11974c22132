package handler

import (
	"errors"

	"github.com/creatorrank/creatorrank-backend/internal/models"
	"github.com/creatorrank/creatorrank-backend/internal/service"
	"github.com/creatorrank/creatorrank-backend/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
	validator      *utils.Validator
	logger         *zap.Logger
}

func NewPaymentHandler(paymentService *service.PaymentService, validator *utils.Validator, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		validator:      validator,
		logger:         logger,
	}
}

func (h *PaymentHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	var req models.CreateCheckoutSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: service.ErrMissingFields.Error(),
		})
	}

	if err := h.validator.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Tag() == "required" {
					return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
						Error: service.ErrMissingFields.Error(),
					})
				}
			}
		}
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid email address",
		})
	}

	sessionID, err := h.paymentService.CreateCheckoutSession(req.Plan, req.UserID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields), errors.Is(err, service.ErrInvalidPlan):
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: err.Error()})
		case errors.Is(err, service.ErrPriceNotConfigured):
			// Deployment problem, not a client one. Worth an operator alert.
			h.logger.Error("checkout misconfiguration", zap.String("plan", req.Plan), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: err.Error()})
		}
	}

	return c.JSON(models.CheckoutSessionResponse{ID: sessionID})
}

// HandleStripeWebhook verifies the signature over the raw body before
// anything else touches it. After verification the event is always
// acknowledged, even if dispatch fails, so Stripe does not redeliver forever;
// the idempotency ledger makes a redelivery after a transient failure safe.
func (h *PaymentHandler) HandleStripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signatureHeader := c.Get("stripe-signature")

	event, err := h.paymentService.VerifyWebhook(payload, signatureHeader)
	if err != nil {
		h.logger.Warn("webhook signature verification failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).SendString("Webhook Error: " + err.Error())
	}

	if err := h.paymentService.HandleWebhookEvent(event); err != nil {
		h.logger.Error("webhook dispatch failed",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.Error(err))
	}

	return c.JSON(models.WebhookAck{Received: true})
}
