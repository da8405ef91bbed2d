package handler

import (
	"context"
	"net/http"

	"github.com/demandify-media/caller-voice-service/internal/adapters/livekit"
	"github.com/demandify-media/caller-voice-service/internal/cache"
	"github.com/demandify-media/caller-voice-service/internal/campaign"
	"github.com/demandify-media/caller-voice-service/internal/config"
	"github.com/demandify-media/caller-voice-service/internal/leads"
	"github.com/demandify-media/caller-voice-service/internal/repository"
	"github.com/demandify-media/caller-voice-service/internal/services/call"
	"github.com/demandify-media/caller-voice-service/pkg/logger"
	"github.com/demandify-media/caller-voice-service/pkg/redis"
	"go.uber.org/zap"

	"github.com/gorilla/mux"
)

// HandlerManager manages all handlers and their initialization
type HandlerManager struct {
	config    *config.CallerServiceConfig
	service   *call.CallerService
	campaigns *campaign.Registry
	loader    *leads.Loader
	repo      repository.CallRecordRepository

	vendorCache *cache.VendorCache

	// LiveKit integration (optional, only initialized if enabled)
	livekitRoomManager *livekit.RoomManager
}

// NewHandlerManager creates and initializes all handlers and services
func NewHandlerManager(cfg *config.CallerServiceConfig) (*HandlerManager, error) {
	campaigns := campaign.NewRegistry()
	loader := leads.NewLoader(cfg.LeadsCSVPath)

	// Initialize database connection. Without DB_HOST the repository falls
	// back to an in-memory store, so persistence never blocks startup.
	repo, err := repository.NewCallRecordRepositoryFromEnv()
	if err != nil {
		logger.Base().Error("failed to connect to database", zap.Error(err))
		return nil, err
	}

	// Initialize Redis for the vendor asset cache. The service keeps
	// running without it; the cache just stops surviving restarts.
	var redisSvc redis.RedisServiceInterface
	if cfg.RedisHost != "" {
		redisConfig := &redis.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       0,
		}
		svc, err := redis.NewRedisService(redisConfig)
		if err != nil {
			logger.Base().Warn("failed to initialize redis service, vendor cache is in-process only", zap.Error(err))
		} else {
			redisSvc = svc
			logger.Base().Info("redis vendor cache initialized", zap.String("host", cfg.RedisHost))
		}
	}
	vendorCache := cache.NewVendorCache(redisSvc, cache.DefaultVendorTTL)

	// Initialize LiveKit room manager (only if enabled)
	var livekitRoomManager *livekit.RoomManager
	if cfg.LiveKitEnabled && cfg.LiveKitServerURL != "" {
		livekitConfig, err := livekit.NewLiveKitConfig(
			cfg.LiveKitServerURL,
			cfg.LiveKitAPIKey,
			cfg.LiveKitAPISecret,
		)
		if err != nil {
			logger.Base().Warn("failed to create livekit config, disabled", zap.Error(err))
		} else {
			livekitRoomManager, err = livekit.NewRoomManager(livekitConfig)
			if err != nil {
				logger.Base().Warn("failed to initialize livekit room manager, disabled", zap.Error(err))
			}
		}
	} else {
		logger.Base().Info("livekit integration disabled",
			zap.Bool("livekit_enabled", cfg.LiveKitEnabled),
			zap.String("livekit_url", cfg.LiveKitServerURL),
		)
	}

	var rooms call.RoomConnector
	if livekitRoomManager != nil {
		rooms = livekitRoomManager
	}
	service := call.NewCallerService(campaigns, loader, rooms, repo)

	if livekitRoomManager != nil {
		// Finished rooms flow back into the call slot so records get
		// persisted and auto-next can fire.
		livekitRoomManager.SetOnSessionEnded(service.HandleSessionEnded)
		go livekitRoomManager.StartCleanupRoutine(context.Background())
		logger.Base().Info("livekit integration initialized")
	}

	// Push periodic status snapshots to websocket subscribers.
	go service.StartWatcher(context.Background())

	// Mirror snapshots onto Redis so other instances and ops tooling can
	// follow this pod's call slot.
	if redisSvc != nil {
		go service.StartStatusPublisher(context.Background(), redisSvc, cfg.InstanceID)
	}

	return &HandlerManager{
		config:             cfg,
		service:            service,
		campaigns:          campaigns,
		loader:             loader,
		repo:               repo,
		vendorCache:        vendorCache,
		livekitRoomManager: livekitRoomManager,
	}, nil
}

// SetupAllRoutes sets up all routes with middleware
func (hm *HandlerManager) SetupAllRoutes(router *mux.Router) {
	// Apply global middleware
	if hm.config.EnableCORS {
		router.Use(CORSMiddleware)
	}
	router.Use(GlobalLoggingMiddleware)

	// Setup dashboard API routes
	hm.SetupAPIRoutes(router)

	// Setup static file routes and console pages
	hm.SetupStaticRoutes(router)

	// Setup vendor asset proxy routes
	hm.SetupVendorRoutes(router)

	logger.Base().Info("all application routes registered")
}

// SetupAPIRoutes sets up the dashboard API routes and middleware
func (hm *HandlerManager) SetupAPIRoutes(router *mux.Router) {
	// Create API subrouter with middleware
	apiRouter := router.PathPrefix("/api").Subrouter()

	// Apply middleware to all API routes
	apiRouter.Use(LoggingMiddleware)
	apiRouter.Use(ValidationMiddleware)
	// Note: API key middleware is NOT applied here - API calls should work without authentication
	// API key is only used for frontend page access

	dashboardHandler := NewDashboardHandler(hm.service, hm.campaigns, hm.loader, hm.repo)
	dashboardHandler.SetupDashboardRoutes(apiRouter)

	reportHandler := NewReportHandler(hm.repo)
	reportHandler.SetupReportRoutes(apiRouter)

	// Token and browser-join routes (only if LiveKit is enabled). The token
	// route lives on the API subrouter so the /api prefix matches it.
	if hm.livekitRoomManager != nil {
		livekitHandler := NewLiveKitHandler(hm.livekitRoomManager, hm.service,
			hm.config.TokenRateLimitPerSecond, hm.config.TokenRateLimitBurst)
		livekitHandler.SetupLiveKitRoutes(router, apiRouter)
		logger.Base().Info("livekit routes registered")
	}

	// Setup CORS middleware for all API routes
	router.PathPrefix("/api/").HandlerFunc(handleCORS).Methods("OPTIONS")

	logger.Base().Info("dashboard api routes registered (no api key required)")
}

// SetupStaticRoutes sets up static file routes and the console pages
func (hm *HandlerManager) SetupStaticRoutes(router *mux.Router) {
	staticHandler := NewStaticHandler("static")

	// Setup static assets first (CSS, JS, images - no authentication needed)
	staticHandler.SetupStaticAssetsOnly(router)

	// Apply API key middleware to frontend pages only (not to static assets or API calls)
	if secretKey := hm.config.SecretKey; secretKey != "" {
		protect := APIKeyMiddleware(secretKey)
		router.HandleFunc("/", protect(http.HandlerFunc(staticHandler.serveDashboard)).ServeHTTP).Methods("GET")
		router.HandleFunc("/dashboard", protect(http.HandlerFunc(staticHandler.serveDashboard)).ServeHTTP).Methods("GET")
		logger.Base().Info("frontend pages protected with api key middleware")
	} else {
		// If no SECRET_KEY, register pages without middleware (for development)
		router.HandleFunc("/", staticHandler.serveDashboard).Methods("GET")
		router.HandleFunc("/dashboard", staticHandler.serveDashboard).Methods("GET")
		logger.Base().Info("frontend pages registered without api key (development mode)")
	}

	// The browser call page is opened by prospects, so it is never behind
	// the console key.
	router.HandleFunc("/browser/call", staticHandler.serveBrowserCall).Methods("GET")

	logger.Base().Info("static file routes registered")
}

// SetupVendorRoutes sets up the CDN proxy for the LiveKit browser client
func (hm *HandlerManager) SetupVendorRoutes(router *mux.Router) {
	vendorHandler := NewVendorHandler(hm.vendorCache)
	vendorHandler.SetupVendorRoutes(router)

	logger.Base().Info("vendor asset routes registered")
}

// GetService returns the caller service
func (hm *HandlerManager) GetService() *call.CallerService {
	return hm.service
}

// GetRepo returns the call record repository
func (hm *HandlerManager) GetRepo() repository.CallRecordRepository {
	return hm.repo
}

// handleCORS handles CORS preflight requests for API routes
func handleCORS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, HEAD, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.WriteHeader(http.StatusOK)
}
