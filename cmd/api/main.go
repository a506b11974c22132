package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/creatorrank/creatorrank-backend/internal/config"
	"github.com/creatorrank/creatorrank-backend/internal/handler"
	"github.com/creatorrank/creatorrank-backend/internal/models"
	"github.com/creatorrank/creatorrank-backend/internal/plans"
	"github.com/creatorrank/creatorrank-backend/internal/repository"
	"github.com/creatorrank/creatorrank-backend/internal/service"
	"github.com/creatorrank/creatorrank-backend/pkg/database"
	"github.com/creatorrank/creatorrank-backend/pkg/email"
	"github.com/creatorrank/creatorrank-backend/pkg/logger"
	"github.com/creatorrank/creatorrank-backend/pkg/payment"
	"github.com/creatorrank/creatorrank-backend/pkg/utils"
)

func main() {
	// .env is optional outside local development
	_ = godotenv.Load()

	log := logger.New()
	defer log.Sync()

	cfg := config.LoadConfig()
	if cfg.Stripe.SecretKey == "" {
		log.Fatal("STRIPE_SECRET_KEY is not set")
	}
	if cfg.Stripe.WebhookSecret == "" {
		log.Warn("STRIPE_WEBHOOK_SECRET is not set, webhook verification will reject everything")
	}

	db := database.NewDatabase(cfg.DatabaseURL)

	// Plan catalog is fixed at boot from the configured price ids
	catalog := plans.NewCatalog(cfg.Stripe)

	// Repositories
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)

	// Stripe gateway
	stripeGateway := payment.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, cfg.ClientURL)

	// Email service (nil when RESEND_API_KEY is missing)
	var confirmations service.ConfirmationSender
	if emailService := email.NewEmailService(cfg.Email, log); emailService != nil {
		confirmations = emailService
	}

	// Services
	paymentService := service.NewPaymentService(
		stripeGateway,
		catalog,
		subscriptionRepo,
		webhookEventRepo,
		confirmations,
		log,
	)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo)

	validator := utils.NewValidator()

	// Handlers
	paymentHandler := handler.NewPaymentHandler(paymentService, validator, log)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	planHandler := handler.NewPlanHandler(catalog)

	// Router
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(fiberlogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	// Stripe posts here with the signed raw body, outside the /api group
	app.Post("/webhook", paymentHandler.HandleStripeWebhook)

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(models.HealthResponse{
			Status:  "OK",
			Message: "Server is running",
		})
	})

	api.Post("/create-checkout-session", paymentHandler.CreateCheckoutSession)
	api.Get("/subscription/:userId", subscriptionHandler.GetSubscriptionStatus)
	api.Get("/plans", planHandler.GetAllPlans)

	log.Info("starting server", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
