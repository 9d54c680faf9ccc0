package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/class"
	"github.com/trezcool/ujumbe/core/file"
	"github.com/trezcool/ujumbe/core/message"
	"github.com/trezcool/ujumbe/core/notification"
	"github.com/trezcool/ujumbe/core/setting"
	"github.com/trezcool/ujumbe/core/suggest"
	"github.com/trezcool/ujumbe/core/user"
)

type (
	Deps struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		UserSvc         user.Service
		ClassSvc        class.Service
		MessageSvc      message.Service
		NotificationSvc notification.Service
		SettingSvc      setting.Service
		FileSvc         file.Service
		SuggestSvc      suggest.Service

		// Ping checks the storage backing the services; optional.
		Ping func(ctx context.Context) error
	}

	Server struct {
		deps     Deps
		app      *echo.Echo
		metrics  *metrics
		shutdown chan os.Signal
		errors   chan error
	}
)

func NewServer(deps Deps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		metrics:  newMetrics(),
		shutdown: make(chan os.Signal, 1),
		errors:   make(chan error, 1),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Server.ReadTimeout = conf.Server.ReadTimeout
	s.app.Server.WriteTimeout = conf.Server.WriteTimeout

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	s.app.Use(s.metrics.middleware)
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	if conf.Server.BodyLimit != "" {
		s.app.Use(middleware.BodyLimit(conf.Server.BodyLimit))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug && !conf.TestMode

	s.app.GET("/", s.home)
	s.app.GET("/health", s.health)
	s.app.GET("/metrics", echo.WrapHandler(s.metrics.handler()))

	v1 := s.app.Group("/v1")
	auth := chain(
		middleware.JWTWithConfig(newJWTConfig(conf)),
		contextUserMiddleware(s.deps.UserSvc),
	)

	registerUserAPI(v1, auth, s.deps)
	registerClassAPI(v1, auth, s.deps)
	registerMessageAPI(v1, auth, s.deps)
	registerNotificationAPI(v1, auth, s.deps)
	registerSettingAPI(v1, auth, s.deps)
	registerFileAPI(v1, auth, s.deps)
	registerSuggestAPI(v1, auth, s.deps)
}

// Start listens on the configured host; listening errors are sent to Errors.
func (s *Server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	if err := s.app.Start(s.deps.Conf.Server.Host); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

// signalShutdown asks the owner of the server to stop it gracefully.
func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+" API!")
}

func (s *Server) health(ctx echo.Context) error {
	if s.deps.Ping != nil {
		if err := s.deps.Ping(ctx.Request().Context()); err != nil {
			s.deps.Logger.Error("health check failed", errors.Wrap(err, "pinging storage"))
			return ctx.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable"})
		}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"status": "ok", "build": s.deps.Conf.Build})
}

func chain(mws ...echo.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}
