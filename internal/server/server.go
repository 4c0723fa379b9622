package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/minhland/adhub/internal/channel"
	"github.com/minhland/adhub/internal/config"
	"github.com/minhland/adhub/internal/service"
	"github.com/minhland/adhub/internal/sheet"
)

// RecordStore is the record CRUD surface the handlers talk to.
type RecordStore interface {
	Append(ctx context.Context, fields map[string]string) (int, error)
	Get(ctx context.Context, position int) (map[string]string, error)
	ListByEmail(ctx context.Context, email string) ([]sheet.PositionedRecord, error)
	Update(ctx context.Context, position int, fields map[string]string, entered bool) error
	Delete(ctx context.Context, position int) error
}

// PublishService fans a publish request out to the requested channels.
type PublishService interface {
	Publish(ctx context.Context, req *service.PublishRequest) (*service.PublishResponse, error)
}

// GenerateService produces ad copy from listing fields.
type GenerateService interface {
	Generate(ctx context.Context, req service.GenerateRequest) (string, error)
}

type Server struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Router *gin.Engine
	Logger *zap.Logger
	Server *http.Server

	// Services
	Records   RecordStore
	Publisher PublishService
	Generator GenerateService
	Audit     service.AuditRecorder
}

func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	// Set gin mode
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	db, err := service.NewDatabase(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize audit store
	redisClient, err := service.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	audit := service.NewRedisAuditRecorder(redisClient, logger)

	// Initialize record store over the listing sheet
	sheetClient, err := sheet.NewClient(&cfg.Sheet, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheet client: %w", err)
	}
	store := sheet.NewStore(sheetClient, cfg.Sheet.SheetName, logger)

	// Channel clients
	article := channel.NewArticleClient(&cfg.Zalo, logger)
	message := channel.NewMessageClient(&cfg.Zalo, logger)
	feed := channel.NewFeedClient(&cfg.Facebook, logger)
	website := channel.NewWebsiteStore(db, logger)

	publisher := service.NewPublisherService(store, audit, article, message, feed, website, logger)
	generator := service.NewGeneratorService(&cfg.Generator, logger)

	// Create router
	router := gin.New()

	// Create server
	srv := &Server{
		Config:    cfg,
		DB:        db,
		Redis:     redisClient,
		Router:    router,
		Logger:    logger,
		Records:   store,
		Publisher: publisher,
		Generator: generator,
		Audit:     audit,
	}

	// Setup middleware and routes
	srv.setupMiddleware()
	srv.setupRoutes()

	return srv, nil
}

func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.Router.Use(gin.Recovery())

	// Logger middleware
	s.Router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	// CORS middleware
	s.Router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
}

func (s *Server) setupRoutes() {
	// Health check
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})

	// API routes
	api := s.Router.Group("/api/v1")
	{
		// Record CRUD over the listing sheet
		api.GET("/records", s.handleListRecords)
		api.POST("/records", s.handleCreateRecord)
		api.PUT("/records", s.handleUpdateRecord)
		api.DELETE("/records", s.handleDeleteRecord)

		// Publishing
		api.POST("/publish", s.handlePublish)
		api.POST("/generate", s.handleGenerate)
		api.GET("/audit/:recordId", s.handleListAudit)
	}
}

func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.Port)

	s.Server = &http.Server{
		Addr:    addr,
		Handler: s.Router,
	}

	s.Logger.Info("Starting HTTP server", zap.String("addr", addr))

	if s.Config.Server.CertFile != "" && s.Config.Server.KeyFile != "" {
		return s.Server.ListenAndServeTLS(s.Config.Server.CertFile, s.Config.Server.KeyFile)
	}

	return s.Server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.Logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}

	if s.Server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return s.Server.Shutdown(shutdownCtx)
}
