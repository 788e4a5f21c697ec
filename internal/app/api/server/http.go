package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/homedeco/marketplace/internal/app/api/handlers"
	mw "github.com/homedeco/marketplace/internal/app/api/middleware"
	"github.com/homedeco/marketplace/internal/app/service/account"
	"github.com/homedeco/marketplace/internal/app/service/booking"
	"github.com/homedeco/marketplace/internal/app/service/catalog"
	"github.com/homedeco/marketplace/internal/app/service/decorator"
	"github.com/homedeco/marketplace/internal/app/service/payment"
	cfgpkg "github.com/homedeco/marketplace/pkg/config"
	metrics "github.com/homedeco/marketplace/pkg/metrics"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

type registerRoutesParams struct {
	fx.In

	Engine    *gin.Engine
	Log       *zap.SugaredLogger
	Cfg       *cfgpkg.Config
	Verifier  mw.IdentityVerifier
	Accounts  *account.Service
	Bookings  *booking.Service
	Payments  *payment.Service
	Decorator *decorator.Service
	Catalog   *catalog.Service
}

func registerRoutes(p registerRoutesParams) {
	r := p.Engine
	log := p.Log

	// Prometheus metrics
	if p.Cfg != nil && p.Cfg.MetricsAddr != "" {
		prom := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return c.Request.URL.Path
			},
			Logger: log,
		})
		prom.SetListenAddress(p.Cfg.MetricsAddr)
		prom.Use(r)

		log.Infow("metrics started", "addr", p.Cfg.MetricsAddr)
	}

	root := r.Group("/")
	root.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(root)

	// Public group: no credential required
	pub := r.Group("/api/v1")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())

	// Identity-checked group: caller email resolved by the verifier
	auth := r.Group("/api/v1")
	auth.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(), mw.Identity(p.Verifier))

	// Admin group: identity check plus stored-role check
	adm := r.Group("/api/v1")
	adm.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(), mw.Identity(p.Verifier), mw.RequireAdmin(p.Accounts))

	handlers.RegisterCatalogRoutes(pub, adm, p.Catalog, log)
	handlers.RegisterDecoratorRoutes(pub, auth, adm, p.Decorator, log)
	handlers.RegisterBookingRoutes(auth, adm, p.Bookings, log)
	handlers.RegisterPaymentRoutes(auth, p.Payments, log)
	handlers.RegisterAccountRoutes(auth, adm, p.Accounts, log)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
