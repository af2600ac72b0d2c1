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

	"github.com/joho/godotenv"

	"github.com/ehsanhossain/VentureFlow-sub000/pkg/monitoring"
	v1 "github.com/ehsanhossain/VentureFlow-sub000/v1"
	v1handlers "github.com/ehsanhossain/VentureFlow-sub000/v1/handlers"
	v1middleware "github.com/ehsanhossain/VentureFlow-sub000/v1/middleware"
)

func main() {
	// Load .env file if it exists (optional - fails silently if not found)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	slog.SetDefault(logger)

	slog.Info("Starting VentureFlow API server initialization")

	// Initialize telemetry
	shutdownTelemetry, err := monitoring.Setup(context.Background(), monitoring.Config{
		ServiceName: "ventureflow-api",
	})
	if err != nil {
		slog.Error("Failed to initialize telemetry", "error", err)
		os.Exit(1)
	}

	// Initialize GORM database connection
	dbConfig := v1.NewDatabaseConfig()
	gormDB, err := v1.ConnectGormDB(dbConfig)
	if err != nil {
		slog.Error("Failed to connect to GORM database", "error", err)
		os.Exit(1)
	}

	// Initialize V1 handlers
	v1Handler := v1handlers.NewV1Handler(gormDB)

	// Setup routes
	mux := http.NewServeMux()
	v1Handler.SetupV1Routes(mux)

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","service":"ventureflow-api","timestamp":"%s"}`, time.Now().Format(time.RFC3339))
	})

	// Prometheus metrics endpoint
	mux.Handle("/metrics", monitoring.Handler())

	// JWT authentication for everything except health/metrics
	jwtAuth := v1middleware.NewJWTAuthMiddleware(v1middleware.JWTAuthConfig{
		JWKSURL:          os.Getenv("JWT_JWKS_URL"),
		ExpectedIssuer:   os.Getenv("JWT_ISSUER"),
		ExpectedAudience: os.Getenv("JWT_AUDIENCE"),
		OrgName:          os.Getenv("JWT_ORG_NAME"),
	})

	// Middleware chain: CORS -> metrics -> auth -> routes
	handler := v1middleware.CORSMiddleware()(monitoring.HTTPMetricsMiddleware(jwtAuth.AuthenticateJWT(mux)))

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	addr := ":" + port
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("VentureFlow API server starting", "port", port, "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Failed to start API server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down VentureFlow API server...")

	// Create a deadline to wait for
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if err := shutdownTelemetry(ctx); err != nil {
		slog.Warn("Telemetry shutdown failed", "error", err)
	}

	slog.Info("VentureFlow API server exited")
}
