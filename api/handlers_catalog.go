package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"canteen-orders/models"
)

func (s *Server) handleMenuItems(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/menu-items/"), "/")
	if rest == "" {
		switch r.Method {
		case http.MethodPost:
			s.createMenuItem(w, r)
		case http.MethodGet:
			s.listMenuItems(w, r)
		default:
			writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"detail": "method not allowed"})
		}
		return
	}

	id, ok := parseID(rest)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid menu item id"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.getMenuItem(w, r, id)
	case http.MethodPut:
		s.updateMenuItem(w, r, id)
	case http.MethodDelete:
		s.deleteMenuItem(w, r, id)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"detail": "method not allowed"})
	}
}

func payloadToMenuItem(p menuItemPayload) *models.MenuItem {
	return &models.MenuItem{
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Image:        p.Image,
		Availability: p.Availability,
		Proportions:  p.Proportions,
		Available:    p.Available,
	}
}

func (s *Server) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var req menuItemPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid json"})
		return
	}

	item := payloadToMenuItem(req)
	if err := s.catalog.CreateMenuItem(r.Context(), item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMenuItemResponse(item))
}

func (s *Server) getMenuItem(w http.ResponseWriter, r *http.Request, id int64) {
	item, err := s.catalog.GetMenuItem(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMenuItemResponse(item))
}

func (s *Server) listMenuItems(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)
	items, err := s.catalog.ListMenuItems(r.Context(), offset, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]menuItemResponse, len(items))
	for i := range items {
		out[i] = toMenuItemResponse(&items[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) updateMenuItem(w http.ResponseWriter, r *http.Request, id int64) {
	var req menuItemPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid json"})
		return
	}

	item := payloadToMenuItem(req)
	item.ID = id
	if err := s.catalog.UpdateMenuItem(r.Context(), item); err != nil {
		writeError(w, err)
		return
	}

	// Re-read for created_at/deleted_from.
	stored, err := s.catalog.GetMenuItem(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMenuItemResponse(stored))
}

func (s *Server) deleteMenuItem(w http.ResponseWriter, r *http.Request, id int64) {
	if err := s.catalog.DeleteMenuItem(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
