// Package api provides the HTTP API server for the WordNet browser.
// It uses the Echo framework to serve the hypermedia REST endpoints; every
// response body is a Mason document built by internal/hypermedia.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"evalgo.org/wnbrowser/internal/config"
	"evalgo.org/wnbrowser/internal/storage"
	"evalgo.org/wnbrowser/internal/version"
)

// Page sizes of the identifier-ordered collections.
const (
	synsetPageSize = 50
	imagePageSize  = 30
)

// Namespace advertised in every document.
const (
	namespace         = "wnbrowser"
	linkRelationsHref = "/wnbrowser/link-relations/"
	synsetProfile     = "/profiles/synset/"
	imageProfile      = "/profiles/image/"
)

// Server represents the wnbrowser API server.
type Server struct {
	echo    *echo.Echo
	storage *storage.Storage
	config  *config.Config
}

// New creates a new API server instance.
func New(cfg *config.Config, store *storage.Storage) *Server {
	e := echo.New()

	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Server.Debug

	e.HTTPErrorHandler = HTTPErrorHandler

	server := &Server{
		echo:    e,
		storage: store,
		config:  cfg,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures Echo middleware.
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${time_rfc3339}] ${status} ${method} ${uri} (${latency_human})\n",
	}))

	s.echo.Use(middleware.Recover())

	s.echo.Use(middleware.RequestID())

	if len(s.config.Security.AllowedOrigins) > 0 {
		s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.config.Security.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	if s.config.Security.RateLimit > 0 {
		s.echo.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(
			rate.Limit(s.config.Security.RateLimit),
		)))
	}

	s.echo.Use(ValidateContentType)
}

// setupRoutes configures API routes.
func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)

	// Plain-text hypermedia metadata routes
	s.echo.GET(linkRelationsHref, s.linkRelations)
	s.echo.GET("/profiles/:profile/", s.profile)

	api := s.echo.Group("/api")

	api.GET("/", s.entryPoint)

	api.GET("/synsets/", s.getSynsetCollection)
	api.POST("/synsets/", s.postSynsetCollection)
	api.GET("/synsets/:wnid/", s.getSynsetItem)
	api.PUT("/synsets/:wnid/", s.putSynsetItem)
	api.DELETE("/synsets/:wnid/", s.deleteSynsetItem)

	api.GET("/synsets/:wnid/hyponyms/", s.getHyponymCollection)
	api.POST("/synsets/:wnid/hyponyms/", s.postHyponymCollection)
	api.GET("/synsets/:wnid/hyponyms/:hyponymWnid/", s.getHyponymItem)
	api.DELETE("/synsets/:wnid/hyponyms/:hyponymWnid/", s.deleteHyponymItem)

	api.GET("/synsets/:wnid/images/", s.getSynsetImageCollection)
	api.POST("/synsets/:wnid/images/", s.postSynsetImageCollection)
	api.GET("/synsets/:wnid/images/:imid/", s.getImageItem)
	api.PUT("/synsets/:wnid/images/:imid/", s.putImageItem)
	api.DELETE("/synsets/:wnid/images/:imid/", s.deleteImageItem)

	api.GET("/images/", s.getImageCollection)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	fmt.Printf("Starting wnbrowser API server\n")
	fmt.Printf("   Address:  http://%s\n", addr)
	fmt.Printf("   Database: %s\n", s.config.Database.Path)
	fmt.Printf("   Debug:    %v\n", s.config.Server.Debug)
	fmt.Println()

	s.echo.Server.ReadTimeout = s.config.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.WriteTimeout

	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	fmt.Println("\nShutting down wnbrowser API server...")

	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	if err := s.storage.Close(); err != nil {
		return fmt.Errorf("error closing storage: %w", err)
	}

	return nil
}

// healthCheck handles health check requests.
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "wnbrowser",
		"version": version.Get().Version,
	})
}

// linkRelations serves the namespace target as plain text.
func (s *Server) linkRelations(c echo.Context) error {
	return c.String(http.StatusOK, "link relations")
}

// profile serves entity profiles as plain text.
func (s *Server) profile(c echo.Context) error {
	return c.String(http.StatusOK, fmt.Sprintf("%s profile", c.Param("profile")))
}

// ServeHTTP allows Server to implement http.Handler for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}
