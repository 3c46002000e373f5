package httpapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/avolkov/tourneyadmin/internal/server/models"
)

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type updateRoleRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type deleteUserRequest struct {
	Username string `json:"username"`
}

type resetPasswordRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	users, err := s.usersSvc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	result := make([]userResponse, 0, len(users))
	for _, u := range users {
		result = append(result, userResponse{Username: u.Username, Role: string(u.Role)})
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	total, err := s.usersSvc.Create(r.Context(), req.Username, req.Password, models.Role(req.Role))
	if err != nil {
		writeError(w, err)
		return
	}

	s.logger.Info(r.Context(), "user created", "username", req.Username, "total_users", total)
	writeMessage(w, http.StatusOK, "User created successfully")
}

func (s *Server) handleUpdateUserRole(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := identityFromContext(r.Context())

	var req updateRoleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := s.usersSvc.UpdateRole(r.Context(), identity, req.Username, models.Role(req.Role)); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Role updated successfully")
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := identityFromContext(r.Context())

	var req deleteUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := s.usersSvc.Delete(r.Context(), identity, req.Username); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "User deleted successfully")
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req resetPasswordRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := s.usersSvc.ResetPassword(r.Context(), req.Username, req.Password); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Password reset successfully")
}
