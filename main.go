package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/solidario/pagosbackend/config"
	"github.com/solidario/pagosbackend/database"
	"github.com/solidario/pagosbackend/gateway"
	"github.com/solidario/pagosbackend/handlers"
	"github.com/solidario/pagosbackend/mailer"
	"github.com/solidario/pagosbackend/repository"
	"github.com/solidario/pagosbackend/services"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	db, err := database.InitGormDB(cfg.DatabaseDSN(), cfg.UsesPostgres())
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database: %v", err)
	}

	registrantRepo := repository.NewGormRegistrantRepository(db)
	paymentRepo := repository.NewGormPaymentRepository(db)

	gatewayClient := gateway.NewClient(cfg.MPBaseURL, cfg.MPAccessToken)
	notifier := mailer.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	builder := services.NewPreferenceBuilder(cfg)

	subscriptionSvc := services.NewSubscriptionService(registrantRepo, gatewayClient, builder, notifier)
	webhookSvc := services.NewWebhookService(paymentRepo, gatewayClient, cfg.WebhookVerify)

	if cfg.MPWebhookSecret == "" {
		log.Println("Warning: MP_WEBHOOK_SECRET not set, webhook signatures will not be validated")
	}

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{cfg.FrontURL, "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	paymentHandler := handlers.NewPaymentHandler(gatewayClient, builder, subscriptionSvc)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionSvc)
	webhookHandler := handlers.NewWebhookHandler(webhookSvc, cfg.MPWebhookSecret)
	reportHandler := handlers.NewReportHandler(db)

	handlers.RegisterRoutes(r, paymentHandler, subscriptionHandler, webhookHandler, reportHandler)

	addr := ":" + cfg.Port
	log.Printf("Starting server in %s mode on %s", cfg.AppEnv, addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("FATAL: Server error: %v", err)
	}
}
