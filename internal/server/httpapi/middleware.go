package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/avolkov/tourneyadmin/internal/logging"
	"github.com/avolkov/tourneyadmin/internal/server/auth"
	"github.com/avolkov/tourneyadmin/internal/server/models"
)

type ctxKey string

const identityKey ctxKey = "identity"

// identityFromContext returns the authenticated identity placed there by the
// authentication middleware.
func identityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}

// withRequestLog assigns each request a UUID, stores it in the request
// context so every log line under this request carries it, and logs method,
// path, and duration around the handler.
func (s *Server) withRequestLog(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		start := time.Now()
		ctx := logging.WithRequestID(r.Context(), uuid.NewString())
		r = r.WithContext(ctx)

		next(w, r, p)

		s.logger.Debug(ctx, "request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).String(),
		)
	}
}

// authenticated decodes the session cookie, verifies the token, and runs the
// handler with the identity attached to the request context. Missing,
// tampered, and expired tokens all terminate the request with 401.
func (s *Server) authenticated(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		token := s.cookies.Get(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}

		identity, err := auth.GetIdentityFromToken(token, s.jwtSecret)
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next(w, r.WithContext(ctx), p)
	}
}

// adminOnly chains authentication with the admin role gate. Every privileged
// handler sits behind this; no handler re-checks on its own.
func (s *Server) adminOnly(next httprouter.Handle) httprouter.Handle {
	return s.authenticated(func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		identity, ok := identityFromContext(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}
		if err := auth.RequireRole(identity, models.RoleAdmin); err != nil {
			writeError(w, err)
			return
		}
		next(w, r, p)
	})
}
