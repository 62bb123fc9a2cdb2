package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/estudiosur/site-backend/internal/config"
	"github.com/estudiosur/site-backend/internal/handler"
	"github.com/estudiosur/site-backend/internal/logging"
	"github.com/estudiosur/site-backend/internal/ratelimit"
	"github.com/estudiosur/site-backend/internal/repository"
	"github.com/estudiosur/site-backend/internal/service"
	"github.com/estudiosur/site-backend/internal/telemetry"
	"github.com/estudiosur/site-backend/pkg/github"
	"github.com/estudiosur/site-backend/pkg/resend"
)

const version = "1.2.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logging.Setup(cfg.Server.LogLevel)

	shutdownTracer, err := telemetry.InitTracer("site-backend")
	if err != nil {
		logging.Fatal("failed to initialize telemetry", "error", err)
	}

	pool, err := repository.NewPool(context.Background(), cfg.Database.URL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	submissionRepo := repository.NewPgSubmissionRepository(pool)
	emailClient := resend.NewClient(cfg.Email.APIKey, cfg.Email.From, cfg.Email.To)
	dispatcher := github.NewClient(cfg.GitHub.Token, cfg.GitHub.Repo, cfg.Server.Environment)
	limiter := ratelimit.New(cfg.RateLimit.Max, time.Duration(cfg.RateLimit.Window)*time.Second)
	contactService := service.NewContactService(emailClient, submissionRepo)

	h := handler.New(pool, cfg.Server.CORSOrigin, cfg.Server.Environment, version)
	contactHandler := handler.NewContactHandler(contactService, limiter, cfg.IsDevelopment())
	webhookHandler := handler.NewWebhookHandler(cfg.Webhook.Secret, dispatcher)
	adminHandler := handler.NewAdminHandler(submissionRepo, cfg.Admin.Token)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("POST /api/contact", contactHandler.Submit)
	mux.HandleFunc("POST /webhook/sanity", webhookHandler.Receive)
	mux.HandleFunc("GET /api/admin/submissions", adminHandler.List)
	mux.HandleFunc("PATCH /api/admin/submissions/{id}/status", adminHandler.UpdateStatus)

	// CORS sits outermost so preflight requests short-circuit before logging.
	chain := h.CORS(handler.SecurityHeaders(handler.RequestID(handler.RequestLogger(mux))))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      otelhttp.NewHandler(chain, "site-backend"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "environment", cfg.Server.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	if err := shutdownTracer(ctx); err != nil {
		slog.Error("tracer shutdown error", "error", err)
	}
}
