package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/demandify-media/caller-voice-service/internal/config"
	"github.com/demandify-media/caller-voice-service/internal/handler"
	"github.com/demandify-media/caller-voice-service/pkg/logger"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Server represents the caller voice service server
type Server struct {
	config         *config.CallerServiceConfig
	router         *mux.Router
	handlerManager *handler.HandlerManager
}

// NewServer creates a new caller voice service server
func NewServer(cfg *config.CallerServiceConfig) *Server {
	// Initialize zap logger and redirect stdlib log to it
	if _, err := logger.Init(os.Getenv("LOG_ENV")); err != nil {
		logger.Base().Error("Failed to initialize zap logger, falling back to std log")
	}

	// Create router
	router := mux.NewRouter()

	// Initialize handler manager - it will create all services internally
	handlerManager, err := handler.NewHandlerManager(cfg)
	if err != nil {
		logger.Base().Error("Failed to initialize handler manager", zap.Error(err))
		return nil
	}

	// Setup all routes through handler manager
	handlerManager.SetupAllRoutes(router)

	return &Server{
		config:         cfg,
		router:         router,
		handlerManager: handlerManager,
	}
}

// Start starts the caller voice service server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.config.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Base().Info("Starting server", zap.String("addr", addr))
	return server.ListenAndServe()
}

// LoadConfigFromEnv loads caller voice service configuration from environment
func LoadConfigFromEnv() *config.CallerServiceConfig {
	return &config.CallerServiceConfig{
		Port: getEnvOrDefault("PORT", "8080"),

		// Instance identifier for multi-pod monitoring and routing
		InstanceID: getDynamicInstanceID(),

		LeadsCSVPath: getEnvOrDefault("LEADS_CSV_PATH", "leads.csv"),
		SecretKey:    getEnvOrDefault("SECRET_KEY", ""),

		// LiveKit configuration
		LiveKitEnabled:   getEnvAsBoolOrDefault("LIVEKIT_ENABLED", false),
		LiveKitServerURL: getEnvOrDefault("LIVEKIT_SERVER_URL", ""),
		LiveKitAPIKey:    getEnvOrDefault("LIVEKIT_API_KEY", ""),
		LiveKitAPISecret: getEnvOrDefault("LIVEKIT_API_SECRET", ""),

		// Redis configuration for the vendor asset cache
		RedisHost:     getEnvOrDefault("REDIS_HOST", ""),
		RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),

		// Token endpoint rate limiting
		TokenRateLimitPerSecond: getEnvAsFloatOrDefault("TOKEN_RATE_LIMIT_PER_SECOND", 5),
		TokenRateLimitBurst:     getEnvAsIntOrDefault("TOKEN_RATE_LIMIT_BURST", 10),

		EnableCORS: getEnvAsBoolOrDefault("ENABLE_CORS", true),
	}
}

// getEnvOrDefault gets environment variable or returns default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault gets environment variable as int or returns default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault gets environment variable as float64 or returns default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault gets environment variable as bool or returns default
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getDynamicInstanceID generates a unique identifier for this service instance.
// It uses the system hostname (pod name in K8s) when available and falls back
// to a timestamp-based ID.
func getDynamicInstanceID() string {
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		return hostname
	}
	return fmt.Sprintf("caller-voice-%d", time.Now().UnixNano())
}

func main() {
	// Load .env file for local development if it exists.
	// This will not override environment variables set by Helm/Docker.
	if err := godotenv.Load(); err != nil {
		log.Printf("Info: .env file not found or skipped (expected in production): %v", err)
	}
	defer logger.Sync()

	cfg := LoadConfigFromEnv()

	server := NewServer(cfg)
	if server == nil {
		log.Fatal("Failed to create server")
	}
	logger.Base().Info("Server initialized",
		zap.String("port", cfg.Port),
		zap.String("instance_id", cfg.InstanceID))

	if err := server.Start(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
