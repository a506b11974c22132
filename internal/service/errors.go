package service

import "errors"

// Sentinel errors carry the exact client-facing messages. Handlers pick the
// status code with errors.Is; anything else from the checkout path is an
// upstream failure from Stripe and is passed through as a 500.
var (
	ErrMissingFields      = errors.New("Missing required fields: plan, userId, email")
	ErrInvalidPlan        = errors.New("Invalid plan. Must be BASIC, PRO, or ELITE")
	ErrPriceNotConfigured = errors.New("Price ID not configured for this plan")
)
