package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/coursedesk/coursedesk/apps/api/echo/handlers"
	"github.com/coursedesk/coursedesk/core"
	"github.com/coursedesk/coursedesk/core/record"
)

type (
	Options struct {
		Addr           string
		Conf           *core.Config
		Logger         core.Logger
		DisableReqLogs bool

		// Services holds one CRUD service per record kind; the students
		// service additionally backs the login endpoint.
		Services []*record.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// Preflights are skipped here so the registered OPTIONS routes answer
	// them with a 200 instead of the middleware's 204.
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		Skipper:      func(ctx echo.Context) bool { return ctx.Request().Method == http.MethodOptions },
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, func() { _ = s.Stop(context.Background()) })
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	for _, svc := range s.opts.Services {
		handlers.RegisterResourceAPI(v1, svc)
		if svc.Schema().Name == record.Students.Name {
			handlers.RegisterAuthAPI(v1, svc, conf)
		}
	}
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Addr))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Coursedesk API!")
}
