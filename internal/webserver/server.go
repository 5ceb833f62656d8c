package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	elog "github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	echoSwagger "github.com/swaggo/echo-swagger"
	_ "github.com/talkincode/plantstore/docs"
	"github.com/talkincode/plantstore/internal/app"
	"go.uber.org/zap"
)

// AppContextKey is the echo context key holding the app.AppContext.
const AppContextKey = "appctx"

// Server wraps the echo instance serving the plant API.
type Server struct {
	root     *echo.Echo
	appCtx   app.AppContext
	registry *prometheus.Registry
}

// NewServer builds the echo instance with the shared middleware stack.
func NewServer(appCtx app.AppContext) *Server {
	cfg := appCtx.Config()
	s := &Server{
		root:     echo.New(),
		appCtx:   appCtx,
		registry: prometheus.NewRegistry(),
	}

	e := s.root
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(elog.OFF)
	e.Validator = NewValidator()
	e.JSONSerializer = newJSONSerializer(cfg.System.Debug)
	e.HTTPErrorHandler = s.httpErrorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			zap.L().Error("panic recovered",
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.ByteString("stack", stack))
			return err
		},
	}))
	e.Use(requestLogger())
	e.Use(middleware.CORS())
	if cfg.Web.BodyLimit != "" {
		e.Use(middleware.BodyLimit(cfg.Web.BodyLimit))
	}
	if cfg.Web.Metrics {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "plantstore",
			Registerer: s.registry,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: s.registry,
		}))
	}
	if cfg.Web.Swagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppContextKey, s.appCtx)
			return next(c)
		}
	})
	return s
}

// Echo exposes the underlying echo instance (used in tests).
func (s *Server) Echo() *echo.Echo {
	return s.root
}

func (s *Server) GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.root.GET(path, h, m...)
}

func (s *Server) POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.root.POST(path, h, m...)
}

func (s *Server) PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.root.PATCH(path, h, m...)
}

func (s *Server) DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.root.DELETE(path, h, m...)
}

// ServeHTTP lets the server be mounted in httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.root.ServeHTTP(w, r)
}

// Listen blocks serving HTTP until Shutdown is called.
func (s *Server) Listen() error {
	cfg := s.appCtx.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.S().Infof("Starting web server at %s", addr)
	err := s.root.Start(addr)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	timeout := time.Duration(s.appCtx.Config().Web.ShutdownTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	zap.S().Info("Shutting down web server")
	return s.root.Shutdown(ctx)
}
