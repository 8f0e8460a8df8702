package main

import (
	"context"
	"errors"
	"log"
	netHttp "net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"wiredleaf-api/auth"
	"wiredleaf-api/config"
	"wiredleaf-api/db"
	"wiredleaf-api/http"
	"wiredleaf-api/http/handlers"
	"wiredleaf-api/http/middleware"
	"wiredleaf-api/logger"
	"wiredleaf-api/services"
	"wiredleaf-api/services/kafka"
	"wiredleaf-api/store"
)

func main() {
	// Determine project root by searching upward for go.mod
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal("Error getting current working directory:", err)
	}
	if root := findProjectRoot(cwd); root != "" {
		if err := os.Chdir(root); err != nil {
			log.Fatal("Error changing to project root:", err)
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	logger.Default().SetLevel(logger.ParseLevel(cfg.LogLevel))
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := db.InitDB(ctx, cfg)
	if err != nil {
		logger.Fatal("Error initializing database: %v", err)
	}
	defer conn.Close()
	st := store.New(conn)

	smtp := services.NewSMTPMailer(cfg)
	var (
		mailer    services.Mailer = smtp
		publisher services.Publisher
		events    *services.Events
		producer  *kafka.Producer
		consumer  *kafka.Consumer
	)

	// Kafka is optional: without brokers emails go straight to SMTP.
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		producer = kafka.NewProducer(brokers)
		publisher = producer
		mailer = services.NewQueueMailer(producer, cfg.KafkaEmailTopic)
		events = services.NewEvents(producer, cfg.KafkaEventsTopic)

		consumer = kafka.NewConsumer(brokers, cfg.KafkaEmailTopic, cfg.KafkaGroupID, st)
		consumer.Handle(services.EmailSendEvent, services.EmailEventHandler(smtp))
		go func() {
			if err := consumer.Run(ctx); err != nil {
				logger.Error("Email consumer stopped: %v", err)
			}
		}()
	} else {
		logger.Warn("KAFKA_BROKERS not set, sending email synchronously via SMTP")
	}

	notifier := services.NewNotifier(mailer, cfg.AdminEmail)
	links := services.NewMeetingLinks(cfg.MeetingLinkBase)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)

	h := handlers.New(handlers.Deps{
		Consultations: services.NewConsultationService(st, notifier, events, links),
		Meetings:      services.NewMeetingService(st, events, links),
		Users:         services.NewUserService(st),
		Dashboard:     services.NewDashboardService(st),
		Contact:       services.NewContactService(st, notifier),
		Auth:          services.NewAuthService(st, tokens, notifier),
		Notifier:      notifier,
		DLQ:           services.NewDLQService(st, publisher),
		DB:            st,
	})

	srv := &netHttp.Server{
		Addr: cfg.HTTPAddr,
		Handler: http.NewRouter(h, http.RouterConfig{
			CORSOrigin: cfg.CORSOrigin,
			Tokens:     tokens,
			Limiter:    middleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst),
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("Server starting on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, netHttp.ErrServerClosed) {
			logger.Fatal("HTTP server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received, draining requests...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error: %v", err)
	}

	events.Wait()
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Error("Error closing Kafka consumer: %v", err)
		}
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("Error closing Kafka producer: %v", err)
		}
	}
	logger.Info("Server shutdown complete")
}

// findProjectRoot walks up from start and returns the first directory containing go.mod
func findProjectRoot(start string) string {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir || strings.HasSuffix(dir, ":\\") || parent == "" {
			break
		}
		dir = parent
	}
	return ""
}
