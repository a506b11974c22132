package handler

import (
	"github.com/creatorrank/creatorrank-backend/internal/plans"
	"github.com/gofiber/fiber/v2"
)

type PlanHandler struct {
	catalog *plans.Catalog
}

func NewPlanHandler(catalog *plans.Catalog) *PlanHandler {
	return &PlanHandler{
		catalog: catalog,
	}
}

func (h *PlanHandler) GetAllPlans(c *fiber.Ctx) error {
	return c.JSON(h.catalog.All())
}
