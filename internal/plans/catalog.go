package plans

import (
	"errors"

	"github.com/creatorrank/creatorrank-backend/internal/config"
	"github.com/creatorrank/creatorrank-backend/internal/models"
)

var ErrUnknownPlan = errors.New("unknown plan")

// Catalog maps plan ids to Stripe price ids plus the display metadata the
// pricing page shows. Read-only after NewCatalog.
type Catalog struct {
	plans map[models.PlanID]models.Plan
	order []models.PlanID
}

func NewCatalog(cfg config.StripeConfig) *Catalog {
	defs := []models.Plan{
		{
			ID:            models.PlanBasic,
			StripePriceID: cfg.BasicPriceID,
			DisplayName:   "Basic",
			Price:         9.99,
			BillingPeriod: "month",
			Features: []string{
				"3 profile analyses per month",
				"Basic insights and recommendations",
				"Email support",
				"Standard leaderboard access",
			},
		},
		{
			ID:            models.PlanPro,
			StripePriceID: cfg.ProPriceID,
			DisplayName:   "Pro",
			Price:         19.99,
			BillingPeriod: "month",
			Features: []string{
				"Unlimited profile analyses",
				"Advanced AI insights",
				"Competitor analysis",
				"Growth predictions",
				"Priority support",
				"Custom reporting",
				"API access",
			},
		},
		{
			ID:            models.PlanElite,
			StripePriceID: cfg.ElitePriceID,
			DisplayName:   "Elite",
			Price:         39.99,
			BillingPeriod: "month",
			Features: []string{
				"Everything in Pro",
				"Brand collaboration finder",
				"Revenue optimization tips",
				"Personal account manager",
				"Advanced analytics dashboard",
				"White-label reports",
			},
		},
	}

	c := &Catalog{plans: make(map[models.PlanID]models.Plan, len(defs))}
	for _, p := range defs {
		c.plans[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	return c
}

// Resolve never falls back to another plan: an id outside the enum is the
// caller's error, full stop.
func (c *Catalog) Resolve(id models.PlanID) (models.Plan, error) {
	p, ok := c.plans[id]
	if !ok {
		return models.Plan{}, ErrUnknownPlan
	}
	return p, nil
}

func (c *Catalog) All() []models.Plan {
	out := make([]models.Plan, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.plans[id])
	}
	return out
}
