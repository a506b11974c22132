package models

type CreateCheckoutSessionRequest struct {
	Plan   string `json:"plan" validate:"required"`
	UserID string `json:"userId" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
}

type CheckoutSessionResponse struct {
	ID string `json:"id"`
}

type SubscriptionStatusResponse struct {
	UserID           string `json:"userId"`
	Status           string `json:"status"`
	Plan             string `json:"plan"`
	CurrentPeriodEnd string `json:"currentPeriodEnd"`
}
