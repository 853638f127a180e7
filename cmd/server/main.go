package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/farmacia-chavarria/backend/internal/config"
	"github.com/farmacia-chavarria/backend/internal/handlers"
	"github.com/farmacia-chavarria/backend/internal/logging"
	"github.com/farmacia-chavarria/backend/internal/mailer"
	"github.com/farmacia-chavarria/backend/internal/mykafka"
	"github.com/farmacia-chavarria/backend/internal/token"
	httpserver "github.com/farmacia-chavarria/backend/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	var producer handlers.EventPublisher
	if configuration.KAFKA_ADDRESS != "" {
		p, err := mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
		if err != nil {
			log.Fatal(err)
		}
		defer p.Close()
		producer = p
	} else {
		logger.Warn("kafka address not configured, events disabled")
	}

	issuer := &token.Issuer{
		Secret:        []byte(configuration.JWT_SECRET),
		TokenIssuer:   configuration.JWT_ISSUER,
		Audience:      configuration.JWT_AUDIENCE,
		ExpireMinutes: configuration.JWT_EXPIRE_MINUTES,
	}

	smtp := &mailer.SMTPMailer{
		Host:     configuration.SMTP_HOST,
		Port:     configuration.SMTP_PORT,
		Sender:   configuration.SMTP_SENDER,
		Password: configuration.SMTP_PASSWORD,
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), logging.Middleware(logger))

	deps := httpserver.Deps{
		DB:                     db,
		AuthHandler:            &handlers.AuthHandler{DB: db, Tokens: issuer, Mailer: smtp, Rand: rng},
		CategoryHandler:        &handlers.CategoryHandler{DB: db},
		LaboratoryHandler:      &handlers.LaboratoryHandler{DB: db},
		SupplierHandler:        &handlers.SupplierHandler{DB: db},
		ProductHandler:         &handlers.ProductHandler{DB: db, Producer: producer},
		ExpiringProductHandler: &handlers.ExpiringProductHandler{DB: db},
		InvoiceHandler:         &handlers.InvoiceHandler{DB: db, Producer: producer},
		InvoiceLineHandler:     &handlers.InvoiceLineHandler{DB: db},
		PurchaseHandler:        &handlers.PurchaseHandler{DB: db},
		PurchaseLineHandler:    &handlers.PurchaseLineHandler{DB: db},
		InventoryHandler:       &handlers.InventoryHandler{DB: db, Producer: producer},
		UserHandler:            &handlers.UserHandler{DB: db},
		ReportsHandler:         &handlers.ReportsHandler{DB: db},
		DashboardHandler:       &handlers.DashboardHandler{DB: db, Rand: rng},
	}

	httpserver.Register(e, &deps)

	port := configuration.HTTP_PORT
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	log.Println("shutdown complete")
}
