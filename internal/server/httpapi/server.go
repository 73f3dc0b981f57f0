// Package httpapi exposes the catalog and the credential store over HTTP
// (echo, JSON bodies). Mutating routes sit behind RequireAccess; every error
// body has the shape {"message": "..."}.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/dogcatalog/internal/logging"
	"github.com/dmitrijs2005/dogcatalog/internal/server/access"
	"github.com/dmitrijs2005/dogcatalog/internal/server/models"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

type DogService interface {
	List(ctx context.Context) ([]models.Dog, error)
	GetByID(ctx context.Context, id string) (*models.Dog, error)
	GetByName(ctx context.Context, name string) (*models.Dog, error)
	Create(ctx context.Context, fields models.DogFields) (*models.Dog, error)
	Update(ctx context.Context, id string, fields models.DogFields) (*models.Dog, error)
	Delete(ctx context.Context, id string) error
}

// ImageResolver turns a stored image reference into a URL to redirect to.
type ImageResolver interface {
	ResolveImage(ctx context.Context, image string) (string, error)
}

// Params wires a Server. Images may be nil, in which case image links
// always answer 404. Registry defaults to a fresh registry.
type Params struct {
	Address         string
	Logger          logging.Logger
	Users           UserService
	Dogs            DogService
	Images          ImageResolver
	Policy          access.Policy
	PolicyName      string
	ShutdownTimeout time.Duration

	// RegisterConflictStatus is the status for a taken username:
	// http.StatusConflict or http.StatusInternalServerError.
	RegisterConflictStatus int

	Registry *prometheus.Registry
}

type Server struct {
	address         string
	echo            *echo.Echo
	logger          logging.Logger
	users           UserService
	dogs            DogService
	images          ImageResolver
	conflictStatus  int
	shutdownTimeout time.Duration
}

func NewServer(p Params) (*Server, error) {
	logger := p.Logger
	if logger == nil {
		logger = logging.NopLogger{}
	}

	reg := p.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics, err := NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	if err := access.RegisterMetrics(reg); err != nil {
		return nil, err
	}

	conflictStatus := p.RegisterConflictStatus
	if conflictStatus == 0 {
		conflictStatus = http.StatusInternalServerError
	}

	s := &Server{
		address:         p.Address,
		echo:            echo.New(),
		logger:          logger.With("module", "http_server"),
		users:           p.Users,
		dogs:            p.Dogs,
		images:          p.Images,
		conflictStatus:  conflictStatus,
		shutdownTimeout: p.ShutdownTimeout,
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(metrics.Middleware())
	e.Use(s.requestLogger())

	e.GET("/", s.hello)
	e.POST("/register", s.register)
	e.POST("/login", s.login)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	e.GET("/dogs", s.listDogs)
	e.GET("/dogs/:id", s.getDog)
	e.GET("/dogs/:id/image", s.dogImage)

	guard := RequireAccess(p.Policy, p.PolicyName)
	e.POST("/dogs", s.createDog, guard)
	e.PUT("/dogs/:id", s.updateDog, guard)
	e.DELETE("/dogs/:id", s.deleteDog, guard)

	return s, nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	s.echo.Listener = listen

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx := context.Background()
		if s.shutdownTimeout > 0 {
			var cancel context.CancelFunc
			shutdownCtx, cancel = context.WithTimeout(shutdownCtx, s.shutdownTimeout)
			defer cancel()
		}
		stopped <- s.echo.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := s.echo.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-stopped
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
			}
			if v.Error != nil {
				args = append(args, "error", v.Error)
				s.logger.Warn(c.Request().Context(), "request", args...)
				return nil
			}
			s.logger.Info(c.Request().Context(), "request", args...)
			return nil
		},
	})
}
