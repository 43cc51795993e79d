package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"storefront/backend/internal/config"
	"storefront/backend/internal/handler"
	"storefront/backend/internal/metrics"
	"storefront/backend/internal/repository"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	// Registers the generated OpenAPI document with swag.
	_ "storefront/backend/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	requestIDHeader = "X-Request-ID"
	shutdownTimeout = 10 * time.Second
)

// Server wires the catalog handlers into a gin engine.
type Server struct {
	cfg     *config.Config
	log     *zap.Logger
	router  *gin.Engine
	metrics *metrics.Metrics
}

// New builds the HTTP server around the given repositories.
func New(cfg *config.Config, log *zap.Logger, categories repository.CategoryRepository, tags repository.TagRepository) *Server {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	s := &Server{
		cfg:     cfg,
		log:     log,
		router:  gin.New(),
		metrics: metrics.New(),
	}

	s.router.Use(requestID())
	s.router.Use(ginzap.Ginzap(log, time.RFC3339, true))
	s.router.Use(ginzap.RecoveryWithZap(log, true))
	s.router.Use(s.metrics.Middleware())
	s.router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	s.registerRoutes(
		handler.NewCategoryHandler(categories, log),
		handler.NewTagHandler(tags, log),
	)
	return s
}

func (s *Server) registerRoutes(categories *handler.CategoryHandler, tags *handler.TagHandler) {
	// Swagger route
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := s.router.Group("/api")
	categories.Register(api)
	tags.Register(api)
}

// Router returns the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ServerAddress,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Server is running", zap.String("addr", s.cfg.ServerAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// requestID propagates X-Request-ID or assigns a fresh one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(handler.RequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
