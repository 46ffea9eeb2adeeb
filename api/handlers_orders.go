package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"canteen-orders/models"
	"canteen-orders/services"
)

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/orders/")
	if rest == "" {
		switch r.Method {
		case http.MethodPost:
			s.createOrder(w, r)
		case http.MethodGet:
			s.listOrders(w, r)
		default:
			writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"detail": "method not allowed"})
		}
		return
	}

	parts := strings.Split(strings.TrimSuffix(rest, "/"), "/")
	id, ok := parseID(parts[0])
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid order id"})
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		s.getOrder(w, r, id)
	case len(parts) == 2 && parts[1] == "status" && r.Method == http.MethodPatch:
		s.updateOrderStatus(w, r, id)
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "not found"})
	}
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid json"})
		return
	}
	if req.UserID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "user_id is required"})
		return
	}

	lines := make([]models.OrderLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = models.OrderLine{
			MenuItemID:     item.MenuItemID,
			ProportionName: item.ProportionName,
			Quantity:       item.Quantity,
		}
	}

	// Price first, fully in memory; only a complete aggregate is ever
	// handed to the store.
	order, err := services.PriceOrder(r.Context(), s.catalog, req.UserID, lines)
	if err != nil {
		writeError(w, err)
		return
	}

	stored, err := s.orders.SaveOrderAtomic(r.Context(), order)
	if err != nil {
		writeError(w, err)
		return
	}

	s.metrics.OrdersCreated.Inc()
	if s.notifier != nil {
		go s.notifier.OrderCreated(stored)
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(stored))
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request, id int64) {
	order, err := s.orders.GetOrder(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)

	var (
		orders []models.Order
		err    error
	)
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		userID, ok := parseID(raw)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid user_id"})
			return
		}
		orders, err = s.orders.ListOrdersByUser(r.Context(), userID, offset, limit)
	} else {
		orders, err = s.orders.ListOrders(r.Context(), offset, limit)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request, id int64) {
	var req updateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid json"})
		return
	}
	if req.Status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "status is required"})
		return
	}

	if err := s.orders.UpdateOrderStatus(r.Context(), id, req.Status); err != nil {
		writeError(w, err)
		return
	}

	order, err := s.orders.GetOrder(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}
