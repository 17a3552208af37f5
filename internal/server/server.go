// Package server exposes the analytics pipeline and admin operations over
// HTTP. Derived views are recomputed synchronously per request; nothing is
// cached or persisted here.
package server

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/nult2003/marketing-intelligence/internal/analytics"
	"github.com/nult2003/marketing-intelligence/internal/configsync"
	"github.com/nult2003/marketing-intelligence/internal/observability"
	"github.com/nult2003/marketing-intelligence/internal/storage"
)

// Options configures the HTTP server.
type Options struct {
	Engine      *analytics.Engine
	NewsStore   storage.NewsStore
	TrendStore  storage.TrendStore
	Subscribers storage.SubscriberStore
	Reconciler  *configsync.Reconciler
	TriggerRun  func() // out-of-band ingestion cycle hook
	Logger      *log.Logger
}

// Server holds handler dependencies.
type Server struct {
	engine      *analytics.Engine
	newsStore   storage.NewsStore
	trendStore  storage.TrendStore
	subscribers storage.SubscriberStore
	reconciler  *configsync.Reconciler
	triggerRun  func()
	logger      *log.Logger
}

// New creates the server.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		engine:      opts.Engine,
		newsStore:   opts.NewsStore,
		trendStore:  opts.TrendStore,
		subscribers: opts.Subscribers,
		reconciler:  opts.Reconciler,
		triggerRun:  opts.TriggerRun,
		logger:      logger,
	}
}

// Router builds the gin router with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(observability.Handler()))

	api := r.Group("/api")
	{
		api.GET("/news", s.getNews)
		api.GET("/trends", s.getTrends)
		api.GET("/analytics", s.getAnalytics)

		admin := api.Group("/admin")
		{
			admin.GET("/config", s.getConfig)
			admin.POST("/config", s.updateConfig)
			admin.POST("/trigger-crawl", s.triggerCrawl)
			admin.GET("/users", s.listSubscribers)
			admin.POST("/users", s.enrollSubscriber)
			admin.PATCH("/users/:id/toggle-alerts", s.toggleSubscriberAlerts)
			admin.DELETE("/users/:id", s.deleteSubscriber)
		}
	}

	return r
}
