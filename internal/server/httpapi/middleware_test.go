package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/tourneyadmin/internal/logging"
	"github.com/avolkov/tourneyadmin/internal/server/models"
)

// The request ID must be in the context the handler runs with, not just in
// the trailing access log, so handler-level log lines can be correlated.
func TestWithRequestLog_RequestIDReachesHandler(t *testing.T) {
	env := newTestEnv(t)

	var seen string
	handle := env.server.withRequestLog(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		seen = logging.RequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	handle(httptest.NewRecorder(), req, nil)

	assert.NotEmpty(t, seen)
}

func TestWithRequestLog_DistinctPerRequest(t *testing.T) {
	env := newTestEnv(t)

	ids := make(map[string]bool)
	handle := env.server.withRequestLog(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		ids[logging.RequestID(r.Context())] = true
	})

	for i := 0; i < 3; i++ {
		handle(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), nil)
	}

	assert.Len(t, ids, 3)
}

// Authentication layers on top of the request-log middleware, so the handler
// context must carry both the identity and the request ID.
func TestAuthenticated_PreservesRequestID(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", "pw1", models.RoleAdmin)
	cookie := env.login(t, "alice", "pw1")

	var seenID string
	var seenName string
	handle := env.server.withRequestLog(env.server.authenticated(
		func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			seenID = logging.RequestID(r.Context())
			identity, ok := identityFromContext(r.Context())
			require.True(t, ok)
			seenName = identity.Name
		}))

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.AddCookie(cookie)
	handle(httptest.NewRecorder(), req, nil)

	assert.NotEmpty(t, seenID)
	assert.Equal(t, "alice", seenName)
}
