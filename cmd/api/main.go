package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/adapters/cache"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/adapters/handler"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/adapters/messaging"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/adapters/metrics"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/adapters/middleware"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/adapters/repository"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/config"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/services"
)

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	repo := repository.NewSQLRepository(db)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	log.Println("Connected to Redis successfully")

	// Notifications are best effort, so the API starts without the broker.
	var publisher ports.NotificationPublisher
	broker, err := messaging.NewRabbitMQBroker(cfg.RabbitMQURL, cfg.NotificationQueueName)
	if err != nil {
		log.Printf("notification broker unavailable, enquiries will not be forwarded: %v", err)
	} else {
		defer broker.Close()
		publisher = broker
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(registry)

	formatter := domain.NewFormatter(cfg.ContactNumber)

	registrationService := services.NewRegistrationService(repo, publisher, formatter, recorder, services.RegistrationConfig{
		WhatsAppNumber:      cfg.WhatsAppNumber,
		NotificationTimeout: cfg.NotificationTimeout,
	})
	wizardService := services.NewWizardService(cache.NewDraftStore(redisClient, cfg.WizardDraftTTL), registrationService, recorder)
	termsService := services.NewTermsService(repo)
	catalogService := services.NewCatalogService(repo)
	popupService := services.NewPopupService(cache.NewSeenStateStore(redisClient))
	chatbotService := services.NewChatbotService(cfg.ContactNumber)
	adminService := services.NewAdminService(repo, formatter, cfg.WhatsAppNumber)

	var brokerStatus handler.BrokerStatus
	if broker != nil {
		brokerStatus = broker
	}

	router := handler.NewRouter(handler.Handlers{
		Health: handler.NewHealthHandler(db, func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}, brokerStatus),
		Registration: handler.NewRegistrationHandler(registrationService),
		Wizard:       handler.NewWizardHandler(wizardService),
		Terms:        handler.NewTermsHandler(termsService),
		Catalog:      handler.NewCatalogHandler(catalogService),
		Engagement:   handler.NewEngagementHandler(popupService, chatbotService),
		Admin:        handler.NewAdminHandler(adminService),
		Metrics:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}, middleware.NewAuthMiddleware(cfg.JWTPublicKey), cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Could not start server: %s\n", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	registrationService.Wait()
}
