package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/riasat97/instrument-learning-academy-server/internal/auth"
	"github.com/riasat97/instrument-learning-academy-server/internal/config"
	"github.com/riasat97/instrument-learning-academy-server/internal/database"
	"github.com/riasat97/instrument-learning-academy-server/internal/handlers"
	"github.com/riasat97/instrument-learning-academy-server/internal/middleware"
	"github.com/riasat97/instrument-learning-academy-server/internal/payments"
	"github.com/riasat97/instrument-learning-academy-server/internal/routes"
	"github.com/riasat97/instrument-learning-academy-server/internal/store"
	"github.com/riasat97/instrument-learning-academy-server/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("Failed to disconnect from MongoDB: %v", err)
		}
	}()

	db := client.Database(cfg.DatabaseName)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	mongoStore := store.NewMongo(client, cfg.DatabaseName)
	tokens := auth.NewTokenService(cfg.TokenSecret, cfg.TokenTTL)
	gateway := payments.NewStripeGateway(cfg.StripeSecret)
	mailer := utils.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	mw := middleware.New(tokens, mongoStore.Users)
	router := routes.SetupRouter(mw, routes.Handlers{
		Tokens:         handlers.NewTokenHandler(tokens),
		Users:          handlers.NewUserHandler(mongoStore.Users),
		Classes:        handlers.NewClassHandler(mongoStore.Classes, mailer),
		StudentClasses: handlers.NewStudentClassHandler(mongoStore.Enrollments, mongoStore.Classes),
		Payments:       handlers.NewPaymentHandler(gateway, mongoStore, mongoStore.Payments),
		Stats:          handlers.NewStatsHandler(mongoStore.Users, mongoStore.Classes, mongoStore.Enrollments, mongoStore.Payments),
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: c.Handler(router),
	}

	go func() {
		log.Printf("ILA is running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Print("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
