package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/avolkov/tourneyadmin/internal/logging"
	"github.com/avolkov/tourneyadmin/internal/server/config"
	"github.com/avolkov/tourneyadmin/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	address    string
	logger     logging.Logger
	authSvc    *services.AuthService
	usersSvc   *services.UsersService
	playersSvc *services.PlayersService
	cookies    *CookieStore
	jwtSecret  []byte
}

func NewServer(cfg *config.Config, l logging.Logger, as *services.AuthService, us *services.UsersService, ps *services.PlayersService) *Server {
	return &Server{
		address:    cfg.EndpointAddrHTTP,
		logger:     l.With("module", "httpapi"),
		authSvc:    as,
		usersSvc:   us,
		playersSvc: ps,
		cookies:    NewCookieStore(cfg.CookieSecure, cfg.SessionTokenValidityDuration),
		jwtSecret:  []byte(cfg.SecretKey),
	}
}

// Handler builds the route table. Everything under /api/admin sits behind
// the admin gate.
func (s *Server) Handler() http.Handler {
	router := httprouter.New()

	router.POST("/api/login", s.withRequestLog(s.handleLogin))
	router.POST("/api/logout", s.withRequestLog(s.handleLogout))
	router.GET("/api/session", s.withRequestLog(s.authenticated(s.handleSession)))

	router.GET("/api/setup", s.withRequestLog(s.handleSetupStatus))
	router.POST("/api/setup", s.withRequestLog(s.handleSetup))

	router.GET("/api/admin/users", s.withRequestLog(s.adminOnly(s.handleListUsers)))
	router.POST("/api/admin/users", s.withRequestLog(s.adminOnly(s.handleCreateUser)))
	router.PUT("/api/admin/users", s.withRequestLog(s.adminOnly(s.handleUpdateUserRole)))
	router.DELETE("/api/admin/users", s.withRequestLog(s.adminOnly(s.handleDeleteUser)))
	router.PUT("/api/admin/users/password", s.withRequestLog(s.adminOnly(s.handleResetPassword)))

	router.GET("/api/admin/players", s.withRequestLog(s.adminOnly(s.handleListPlayers)))
	router.DELETE("/api/admin/players", s.withRequestLog(s.adminOnly(s.handleDeletePlayer)))

	return router
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
