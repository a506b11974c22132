package models

type PlanID string

const (
	PlanBasic PlanID = "BASIC"
	PlanPro   PlanID = "PRO"
	PlanElite PlanID = "ELITE"
)

// Plan is a subscription tier. The catalog is built once at startup from
// configuration and never mutated afterwards.
type Plan struct {
	ID            PlanID   `json:"id"`
	StripePriceID string   `json:"-"`
	DisplayName   string   `json:"name"`
	Price         float64  `json:"price"`
	BillingPeriod string   `json:"period"`
	Features      []string `json:"features"`
}
