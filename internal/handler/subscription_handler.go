package handler

import (
	"errors"

	"github.com/creatorrank/creatorrank-backend/internal/models"
	"github.com/creatorrank/creatorrank-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

func (h *SubscriptionHandler) GetSubscriptionStatus(c *fiber.Ctx) error {
	userID := c.Params("userId")

	status, err := h.subscriptionService.GetSubscriptionStatus(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "no subscription"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(status)
}
