package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/rmagur1203/filehost/internal/api/http"
	"github.com/rmagur1203/filehost/internal/api/middleware"
	"github.com/rmagur1203/filehost/internal/infrastructure/config"
	"github.com/rmagur1203/filehost/internal/infrastructure/logging"
	"github.com/rmagur1203/filehost/internal/infrastructure/monitoring"
	"github.com/rmagur1203/filehost/internal/vfs"
)

// Server wraps the HTTP server and dependencies.
type Server struct {
	router  *gin.Engine
	storage *vfs.Storage
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new server instance.
func NewServer(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing filehost server",
		zap.String("port", cfg.Server.Port),
		zap.String("storage_root", cfg.Storage.Root),
		zap.Int64("quota_bytes", cfg.Storage.QuotaBytes),
	)

	metrics := monitoring.NewMetrics()

	storage := vfs.New(vfs.Config{
		Root:       cfg.Storage.Root,
		QuotaBytes: cfg.Storage.QuotaBytes,
	}, logger.Logger)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(monitoring.Middleware(metrics))
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORS.AllowOrigins
	}
	router.Use(middleware.CORS(corsCfg))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(storage, metrics, logger)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authn := middleware.HeaderAuthenticator{Header: cfg.Auth.TenantHeader}
	api := router.Group("/api", middleware.Auth(authn))

	// Virtual filesystem
	api.GET("/fs/*path", handlers.GetNode)
	api.PUT("/fs/*path", handlers.WriteFile)
	api.POST("/fs/*path", handlers.CreateDirectory)
	api.DELETE("/fs/*path", handlers.DeleteNode)

	// Node operations
	api.POST("/rename", handlers.RenameNode)
	api.GET("/stat/*path", handlers.StatNode)
	api.GET("/search", handlers.Search)
	api.GET("/usage", handlers.Usage)

	logger.Info("Server initialized successfully")

	return &Server{
		router:  router,
		storage: storage,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")
	s.logger.Sync()
	return nil
}
