package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/users/"), "/")
	if rest == "" {
		switch r.Method {
		case http.MethodPost:
			s.createUser(w, r)
		case http.MethodGet:
			s.listUsers(w, r)
		default:
			writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"detail": "method not allowed"})
		}
		return
	}

	id, ok := parseID(rest)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid user id"})
		return
	}
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"detail": "method not allowed"})
		return
	}

	user, err := s.users.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid json"})
		return
	}

	user, err := s.users.CreateUser(r.Context(), req.Email, req.Password, req.Role, req.TeamID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)
	users, err := s.users.ListUsers(r.Context(), offset, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]userResponse, len(users))
	for i := range users {
		out[i] = toUserResponse(&users[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/teams/"), "/")
	if rest == "" {
		switch r.Method {
		case http.MethodPost:
			s.createTeam(w, r)
		case http.MethodGet:
			s.listTeams(w, r)
		default:
			writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"detail": "method not allowed"})
		}
		return
	}

	id, ok := parseID(rest)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid team id"})
		return
	}
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"detail": "method not allowed"})
		return
	}

	team, err := s.teams.GetTeam(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTeamResponse(team))
}

func (s *Server) createTeam(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid json"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "name is required"})
		return
	}

	team, err := s.teams.CreateTeam(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTeamResponse(team))
}

func (s *Server) listTeams(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)
	teams, err := s.teams.ListTeams(r.Context(), offset, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]teamResponse, len(teams))
	for i := range teams {
		out[i] = toTeamResponse(&teams[i])
	}
	writeJSON(w, http.StatusOK, out)
}
