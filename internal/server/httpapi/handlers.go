package httpapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type identityResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type setupStatusResponse struct {
	SetupRequired bool `json:"setup_required"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	identity, token, err := s.authSvc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	s.cookies.Set(w, token)
	s.logger.Info(r.Context(), "login", "username", identity.Name)
	writeJSON(w, http.StatusOK, identityResponse{Username: identity.Name, Role: string(identity.Role)})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.cookies.Clear(w)
	writeMessage(w, http.StatusOK, "logged out")
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}
	writeJSON(w, http.StatusOK, identityResponse{Username: identity.Name, Role: string(identity.Role)})
}

func (s *Server) handleSetupStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	required, err := s.authSvc.SetupRequired(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, setupStatusResponse{SetupRequired: required})
}

// handleSetup creates the first admin account and logs it in by issuing a
// session cookie right away. Once any account exists the endpoint is
// permanently closed.
func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	identity, err := s.authSvc.CompleteSetup(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	// The account was just created with this password; a login failure here
	// would mean the store lost the write.
	_, token, err := s.authSvc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	s.cookies.Set(w, token)
	s.logger.Info(r.Context(), "setup completed", "username", identity.Name)
	writeJSON(w, http.StatusOK, identityResponse{Username: identity.Name, Role: string(identity.Role)})
}
