// Package httpapi exposes the application services over HTTP using echo.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	slogecho "github.com/samber/slog-echo"

	"github.com/dmitrijs2005/keepsake/internal/common"
	"github.com/dmitrijs2005/keepsake/internal/logging"
	"github.com/dmitrijs2005/keepsake/internal/server/auth"
	"github.com/dmitrijs2005/keepsake/internal/server/services"
)

// Args carries the dependencies for NewServer.
type Args struct {
	Addr        string
	Slog        *slog.Logger
	Logger      logging.Logger
	Credentials *services.CredentialService
	Access      *services.AccessService
	Memories    *services.MemoryService
	Issuer      auth.SessionIssuer

	// EnforceSessions turns on Bearer-token checks for the mutating admin
	// routes. It is enabled when a session secret is configured; without one
	// the issuer cannot produce tokens and the routes stay open, matching the
	// original behavior of the app.
	EnforceSessions bool
}

// Server is the public HTTP endpoint of the application.
type Server struct {
	echo  *echo.Echo
	httpd *http.Server

	logger      logging.Logger
	credentials *services.CredentialService
	access      *services.AccessService
	memories    *services.MemoryService
	issuer      auth.SessionIssuer

	enforceSessions bool
}

func NewServer(args *Args) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())

	e.Use(middleware.Recover())
	e.Use(echoprometheus.NewMiddleware(""))

	slogEchoCfg := slogecho.Config{
		DefaultLevel:     slog.LevelInfo,
		ServerErrorLevel: slog.LevelError,
		Filters: []slogecho.Filter{
			func(ctx echo.Context) bool {
				return ctx.Request().URL.Path != "/_health"
			},
		},
	}
	e.Use(slogecho.NewWithConfig(args.Slog, slogEchoCfg))

	s := &Server{
		echo: e,
		httpd: &http.Server{
			Handler: e,
			Addr:    args.Addr,
		},
		logger:          args.Logger,
		credentials:     args.Credentials,
		access:          args.Access,
		memories:        args.Memories,
		issuer:          args.Issuer,
		enforceSessions: args.EnforceSessions,
	}
	s.addRoutes()

	return s
}

func (s *Server) addRoutes() {
	s.echo.GET("/_health", func(e echo.Context) error {
		return e.String(http.StatusOK, "healthy")
	})
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api")
	api.POST("/verify-password", s.handleVerifyPassword)
	api.POST("/valentine-response", s.handleValentineResponse)
	api.GET("/recordings", s.handleListMemories)

	admin := api.Group("", s.requireAdmin)
	admin.POST("/set-password", s.handleSetPassword)
	admin.POST("/recordings", s.handleCreateMemory)
	admin.DELETE("/recordings/:id", s.handleDeleteMemory)
}

// requireAdmin gates a route behind a valid admin session token. It is a
// pass-through when session enforcement is disabled.
func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(e echo.Context) error {
		if !s.enforceSessions {
			return next(e)
		}

		header := e.Request().Header.Get(common.SessionTokenHeaderName)
		pts := strings.SplitN(header, " ", 2)
		if len(pts) == 2 && pts[0] == common.SessionTokenScheme {
			role, err := s.issuer.Validate(pts[1])
			if err == nil && role == auth.RoleAdmin {
				return next(e)
			}
		}

		return e.JSON(http.StatusForbidden, errorResponse{Error: "unauthorized"})
	}
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	err := s.httpd.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpd.Shutdown(ctx)
}
