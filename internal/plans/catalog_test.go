package plans

import (
	"testing"

	"github.com/creatorrank/creatorrank-backend/internal/config"
	"github.com/creatorrank/creatorrank-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStripeConfig() config.StripeConfig {
	return config.StripeConfig{
		BasicPriceID: "price_basic",
		ProPriceID:   "price_pro",
		ElitePriceID: "price_elite",
	}
}

func TestCatalogResolve(t *testing.T) {
	c := NewCatalog(testStripeConfig())

	plan, err := c.Resolve(models.PlanPro)
	require.NoError(t, err)
	assert.Equal(t, "price_pro", plan.StripePriceID)
	assert.Equal(t, "Pro", plan.DisplayName)
	assert.Equal(t, "month", plan.BillingPeriod)
}

func TestCatalogResolveUnknownPlan(t *testing.T) {
	c := NewCatalog(testStripeConfig())

	_, err := c.Resolve(models.PlanID("PREMIUM"))
	assert.ErrorIs(t, err, ErrUnknownPlan)
}

func TestCatalogResolveKeepsEmptyPriceID(t *testing.T) {
	// A known plan with no configured price id still resolves; the service
	// is the one that turns the empty price id into a configuration error.
	c := NewCatalog(config.StripeConfig{ProPriceID: "price_pro"})

	plan, err := c.Resolve(models.PlanElite)
	require.NoError(t, err)
	assert.Empty(t, plan.StripePriceID)
}

func TestCatalogAllOrdered(t *testing.T) {
	c := NewCatalog(testStripeConfig())

	all := c.All()
	require.Len(t, all, 3)
	assert.Equal(t, models.PlanBasic, all[0].ID)
	assert.Equal(t, models.PlanPro, all[1].ID)
	assert.Equal(t, models.PlanElite, all[2].ID)
}
