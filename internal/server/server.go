// Package server wires the HTTP surface: quote calculation plus read-only
// reference catalogs.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/smallbiznis/tripquote/internal/agecoefficient"
	"github.com/smallbiznis/tripquote/internal/bundle"
	"github.com/smallbiznis/tripquote/internal/clock"
	"github.com/smallbiznis/tripquote/internal/config"
	"github.com/smallbiznis/tripquote/internal/country"
	countrydomain "github.com/smallbiznis/tripquote/internal/country/domain"
	"github.com/smallbiznis/tripquote/internal/coveragelevel"
	coveragedomain "github.com/smallbiznis/tripquote/internal/coveragelevel/domain"
	"github.com/smallbiznis/tripquote/internal/discount"
	"github.com/smallbiznis/tripquote/internal/durationcoefficient"
	"github.com/smallbiznis/tripquote/internal/observability"
	obslogger "github.com/smallbiznis/tripquote/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/tripquote/internal/observability/metrics"
	obstracing "github.com/smallbiznis/tripquote/internal/observability/tracing"
	"github.com/smallbiznis/tripquote/internal/promo"
	"github.com/smallbiznis/tripquote/internal/quote"
	quotedomain "github.com/smallbiznis/tripquote/internal/quote/domain"
	"github.com/smallbiznis/tripquote/internal/ratelimit"
	"github.com/smallbiznis/tripquote/internal/risktype"
	riskdomain "github.com/smallbiznis/tripquote/internal/risktype/domain"
)

var Module = fx.Module("http.server",
	config.Module,
	clock.Module,
	country.Module,
	coveragelevel.Module,
	risktype.Module,
	agecoefficient.Module,
	durationcoefficient.Module,
	bundle.Module,
	promo.Module,
	discount.Module,
	quote.Module,
	ratelimit.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB
	genID  *snowflake.Node
	clock  clock.Clock

	quoteSvc     quotedomain.Service
	countryRepo  countrydomain.Repository
	coverageRepo coveragedomain.Repository
	riskRepo     riskdomain.Repository
	quoteLimiter *ratelimit.QuoteLimiter
}

type ServerParams struct {
	fx.In

	Gin   *gin.Engine
	Cfg   config.Config
	DB    *gorm.DB
	GenID *snowflake.Node
	Clock clock.Clock

	QuoteSvc     quotedomain.Service
	CountryRepo  countrydomain.Repository
	CoverageRepo coveragedomain.Repository
	RiskRepo     riskdomain.Repository
	QuoteLimiter *ratelimit.QuoteLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		genID:        p.GenID,
		clock:        p.Clock,
		quoteSvc:     p.QuoteSvc,
		countryRepo:  p.CountryRepo,
		coverageRepo: p.CoverageRepo,
		riskRepo:     p.RiskRepo,
		quoteLimiter: p.QuoteLimiter,
	}

	s.registerAPIRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	v1 := s.engine.Group("/v1")

	v1.POST("/quotes", s.quoteRateLimit(), s.CalculateQuote)

	ref := v1.Group("/reference")
	ref.GET("/countries", s.ListCountries)
	ref.GET("/coverage-levels", s.ListCoverageLevels)
	ref.GET("/risk-types", s.ListRiskTypes)
}
