// Package service implements the REST API of the fan site. One Server
// instance owns the store adapters and translates HTTP requests into store
// calls: parse and validate the input, run the operation under a bounded
// timeout, and map the outcome onto a response.
package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gitlab.com/f1hub/f1hub-service/internal/config"
	"gitlab.com/f1hub/f1hub-service/internal/store"
)

// Server holds the configuration and the store adapters of all resources.
// The adapters are injected once at startup; handlers never reach for global
// connection state.
type Server struct {
	cfg          config.Config
	log          *zap.Logger
	drivers      store.Drivers
	constructors store.Constructors
	contacts     store.Contacts
	catalog      []SearchItem
}

// New builds a server around the given store adapters.
func New(cfg config.Config, log *zap.Logger, drivers store.Drivers, constructors store.Constructors, contacts store.Contacts) *Server {
	return &Server{
		cfg:          cfg,
		log:          log,
		drivers:      drivers,
		constructors: constructors,
		contacts:     contacts,
		catalog:      defaultCatalog,
	}
}

// Router initializes the REST API router and registers all endpoints. In
// production mode gin's console logging is replaced with structured request
// logging; the recovery middleware stays on in both modes so that no panic
// escapes a handler boundary.
func (s *Server) Router() *gin.Engine {
	var router *gin.Engine
	if s.cfg.Production {
		gin.SetMode(gin.ReleaseMode)
		router = gin.New()
		router.Use(gin.Recovery(), s.requestLogger())
	} else {
		router = gin.Default()
	}
	router.Use(requestID())

	router.GET("/", s.index)
	router.GET("/hello", s.hello)
	router.GET("/sum", s.sum)
	router.GET("/user/:id", s.user)
	router.GET("/status", s.status)
	router.POST("/send-data", s.createContact)

	api := router.Group("/api")
	api.GET("/drivers", s.findDrivers)
	api.POST("/drivers", s.createDriver)
	api.GET("/drivers/:id", s.findDriverByID)
	api.PUT("/drivers/:id", s.updateDriverByID)
	api.DELETE("/drivers/:id", s.deleteDriverByID)

	api.GET("/constructors", s.findConstructors)
	api.POST("/constructors", s.createConstructor)
	api.GET("/constructors/:id", s.findConstructorByID)
	api.PUT("/constructors/:id", s.updateConstructorByID)
	api.DELETE("/constructors/:id", s.deleteConstructorByID)

	api.GET("/contacts", s.findContacts)
	api.POST("/contacts", s.createContact)
	api.GET("/contacts/:id", s.findContactByID)
	api.DELETE("/contacts/:id", s.deleteContactByID)

	api.GET("/search", s.search)

	router.NoRoute(s.notFound)
	return router
}

// storeContext bounds a store call with the configured timeout. A stalled
// database must not stall the request indefinitely.
func (s *Server) storeContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), s.cfg.StoreTimeout)
}

// storeError converts a store failure into the matching HTTP response. Only
// missing records are the caller's concern; everything else is logged and
// reported as an opaque server error.
func (s *Server) storeError(c *gin.Context, resource string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
	case errors.Is(err, store.ErrTimeout):
		s.log.Error("store timeout",
			zap.String("resource", resource),
			zap.String("request_id", c.GetString("request_id")))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "store timeout"})
	default:
		s.log.Error("store failure",
			zap.String("resource", resource),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "database error"})
	}
}

// notFound answers unmatched routes. API clients get a structured error body;
// everything else gets a plain page.
func (s *Server) notFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
		return
	}
	c.String(http.StatusNotFound, "404 - Page not found")
}

// requestID tags every request with an id that is echoed in the response and
// attached to log entries.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

// requestLogger writes one structured log line per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")))
	}
}
