package httpapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type deletePlayerRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	players, err := s.playersSvc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	result := make([]string, 0, len(players))
	for _, p := range players {
		result = append(result, p.Name)
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDeletePlayer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req deletePlayerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := s.playersSvc.Delete(r.Context(), req.Name); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Player deleted successfully")
}
