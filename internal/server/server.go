package server

import (
	"context"
	"net/http"
	"time"

	"github.com/agenthands/providers/internal/config"
	"github.com/agenthands/providers/internal/core"
	"github.com/agenthands/providers/internal/core/model"
	"github.com/agenthands/providers/internal/driver"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const healthTimeout = 5 * time.Second

type Server struct {
	Providers *core.ProviderService
	Driver    driver.GraphDriver
	Config    *config.Config
	logger    *zap.Logger
}

func NewServer(cfg *config.Config, d driver.GraphDriver, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		Providers: core.NewProviderService(d, logger),
		Driver:    d,
		Config:    cfg,
		logger:    logger,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(s.logger), RequestMetrics())

	r.GET("/providers/:id", s.GetProviders)
	r.GET("/v2/providers/:id", s.GetProviders)
	r.GET("/v1/providers/:id", s.GetProvidersV1)

	r.GET("/healthz", s.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type PageQuery struct {
	Skip  *int `form:"skip" binding:"omitempty,min=0"`
	Limit *int `form:"limit" binding:"omitempty,min=0"`
}

func (s *Server) bindPage(c *gin.Context) (model.Page, bool) {
	var q PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid skip or limit: " + err.Error()})
		return model.Page{}, false
	}

	page := model.Page{Skip: 0, Limit: s.Config.Pagination.DefaultLimit}
	if q.Skip != nil {
		page.Skip = *q.Skip
	}
	if q.Limit != nil {
		page.Limit = *q.Limit
	}
	return page, true
}

// GetProviders serves the multi-filter contract: `type` may repeat.
func (s *Server) GetProviders(c *gin.Context) {
	page, ok := s.bindPage(c)
	if !ok {
		return
	}

	fs := model.ParseRelations(c.QueryArray("type"))
	rows, err := s.Providers.Lookup(c.Request.Context(), c.Param("id"), fs, page)
	if err != nil {
		s.logger.Error("Failed to look up provider", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up provider"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// GetProvidersV1 serves the single-filter contract: any `type` value, even
// an empty one, joins products.
func (s *Server) GetProvidersV1(c *gin.Context) {
	page, ok := s.bindPage(c)
	if !ok {
		return
	}

	_, includeProducts := c.GetQuery("type")
	rows, err := s.Providers.LookupV1(c.Request.Context(), c.Param("id"), includeProducts, page)
	if err != nil {
		s.logger.Error("Failed to look up provider", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up provider"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (s *Server) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := s.Driver.VerifyConnectivity(ctx); err != nil {
		s.logger.Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
