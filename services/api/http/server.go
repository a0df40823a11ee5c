package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seoul-urban-lab/transit-vitality/services/api/analytics"
	"github.com/seoul-urban-lab/transit-vitality/services/api/config"
)

// Analytics is the metric surface the handlers serve. *analytics.Service
// satisfies it; tests inject stubs.
type Analytics interface {
	Status(ctx context.Context) analytics.Status
	VitalityIndex(ctx context.Context) []analytics.VitalityRecord
	GrowthProjection(ctx context.Context) []analytics.GrowthRecord
	StationDetail(ctx context.Context, code string) (*analytics.StationDetail, error)
	Stations(ctx context.Context) []analytics.StationListing
	HourlyRhythm(ctx context.Context) []analytics.RhythmRecord
	ActiveZoneRanking(ctx context.Context) []analytics.ActiveZoneRecord
	Timelapse(ctx context.Context) []analytics.TimelapseRecord
	ClusteringFeatures(ctx context.Context) []analytics.ClusterFeatureRecord
	ClusterSegments(ctx context.Context) []analytics.ClusterSegmentRecord
}

// Server bundles router and dependencies for the REST API.
type Server struct {
	cfg    config.Config
	svc    Analytics
	engine *gin.Engine
}

// New constructs a server with routes and middleware.
func New(cfg config.Config, svc Analytics) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(gin.Logger())
	engine.Use(corsMiddleware())

	if cfg.BearerToken != "" {
		engine.Use(bearerAuthMiddleware(cfg.BearerToken))
	}

	server := &Server{cfg: cfg, svc: svc, engine: engine}
	server.registerRoutes()
	return server
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.engine.GET("/status", s.handleStatus)
	s.engine.GET("/meta/stations", s.handleStations)
	s.engine.GET("/station/detail/:code", s.handleStationDetail)

	analysis := s.engine.Group("/analysis")
	{
		analysis.GET("/vitality", s.handleVitality)
		analysis.GET("/prediction", s.handlePrediction)
		analysis.GET("/timelapse", s.handleTimelapse)
		analysis.GET("/clustering", s.handleClustering)
		analysis.GET("/clustering/segments", s.handleClusterSegments)
		analysis.GET("/trend/rhythm", s.handleRhythm)
		analysis.GET("/trend/rank-daytime-active", s.handleActiveZone)
	}
}

func bearerAuthMiddleware(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token != expected {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
