// Package api is the HTTP surface: request decoding, routing to the
// stores and pricing engine, and response encoding. No business logic
// lives here.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"canteen-orders/metrics"
	"canteen-orders/models"
	"canteen-orders/notify"
	"canteen-orders/services"
)

type Catalog interface {
	CreateMenuItem(ctx context.Context, item *models.MenuItem) error
	GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error)
	ListMenuItems(ctx context.Context, offset, limit int) ([]models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id int64) error
}

type Orders interface {
	SaveOrderAtomic(ctx context.Context, order *models.Order) (*models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	ListOrders(ctx context.Context, offset, limit int) ([]models.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64, offset, limit int) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) error
}

type Users interface {
	CreateUser(ctx context.Context, email, password, role string, teamID *int64) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]models.User, error)
}

type Teams interface {
	CreateTeam(ctx context.Context, name string) (*models.Team, error)
	GetTeam(ctx context.Context, id int64) (*models.Team, error)
	ListTeams(ctx context.Context, offset, limit int) ([]models.Team, error)
}

type Server struct {
	catalog  Catalog
	orders   Orders
	users    Users
	teams    Teams
	metrics  *metrics.ServerMetrics
	notifier *notify.Notifier
}

func NewServer(catalog Catalog, orders Orders, users Users, teams Teams, m *metrics.ServerMetrics, notifier *notify.Notifier) *Server {
	return &Server{
		catalog:  catalog,
		orders:   orders,
		users:    users,
		teams:    teams,
		metrics:  m,
		notifier: notifier,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/orders/", s.instrument("orders", s.handleOrders))
	mux.HandleFunc("/menu-items/", s.instrument("menu_items", s.handleMenuItems))
	mux.HandleFunc("/users/", s.instrument("users", s.handleUsers))
	mux.HandleFunc("/teams/", s.instrument("teams", s.handleTeams))
	return mux
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors to status codes: pricing validation
// failures are 422 so the caller can tell them from malformed JSON
// (400), missing rows are 404, conflicts 409, the rest 500.
func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidReference),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidTransition):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrEmailTaken):
		code = http.StatusConflict
	}
	writeJSON(w, code, map[string]any{"detail": err.Error()})
}

// pagination reads skip/limit query params with the original API's
// defaults (0, 100).
func pagination(r *http.Request) (offset, limit int) {
	offset, limit = 0, 100
	if v := r.URL.Query().Get("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return offset, limit
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil && id > 0
}
