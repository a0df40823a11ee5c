package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seoul-urban-lab/transit-vitality/services/api/analytics"
)

// Analytical queries aggregate full tables; give them a longer leash than
// the point lookups.
const (
	lookupTimeout   = 10 * time.Second
	analysisTimeout = 30 * time.Second
)

func (s *Server) handleStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), lookupTimeout)
	defer cancel()

	c.JSON(http.StatusOK, s.svc.Status(ctx))
}

func (s *Server) handleVitality(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), analysisTimeout)
	defer cancel()

	c.JSON(http.StatusOK, s.svc.VitalityIndex(ctx))
}

func (s *Server) handlePrediction(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), analysisTimeout)
	defer cancel()

	c.JSON(http.StatusOK, s.svc.GrowthProjection(ctx))
}

func (s *Server) handleStations(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), lookupTimeout)
	defer cancel()

	c.JSON(http.StatusOK, s.svc.Stations(ctx))
}

func (s *Server) handleStationDetail(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "station code is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), lookupTimeout)
	defer cancel()

	detail, err := s.svc.StationDetail(ctx, code)
	switch {
	case errors.Is(err, analytics.ErrStationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no data for station code " + code})
	case err != nil:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
	default:
		c.JSON(http.StatusOK, detail)
	}
}

func (s *Server) handleRhythm(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), analysisTimeout)
	defer cancel()

	c.JSON(http.StatusOK, s.svc.HourlyRhythm(ctx))
}

func (s *Server) handleActiveZone(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), analysisTimeout)
	defer cancel()

	c.JSON(http.StatusOK, s.svc.ActiveZoneRanking(ctx))
}

func (s *Server) handleTimelapse(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), analysisTimeout)
	defer cancel()

	c.JSON(http.StatusOK, s.svc.Timelapse(ctx))
}

func (s *Server) handleClustering(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), analysisTimeout)
	defer cancel()

	c.JSON(http.StatusOK, s.svc.ClusteringFeatures(ctx))
}

func (s *Server) handleClusterSegments(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), analysisTimeout)
	defer cancel()

	c.JSON(http.StatusOK, s.svc.ClusterSegments(ctx))
}
