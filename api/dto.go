package api

import (
	"time"

	"canteen-orders/models"
)

// Wire types follow the original API's field names.

type orderLinePayload struct {
	MenuItemID     int64   `json:"menu_item_id"`
	ProportionName *string `json:"proportion_name,omitempty"`
	Quantity       int     `json:"quantity"`
}

type createOrderRequest struct {
	UserID int64              `json:"user_id"`
	Items  []orderLinePayload `json:"items"`
}

type orderItemResponse struct {
	ID             int64   `json:"id"`
	MenuItemID     int64   `json:"menu_item_id"`
	ProportionName *string `json:"proportion_name,omitempty"`
	Quantity       int     `json:"quantity"`
	PriceAtOrder   float64 `json:"price_at_order"`
	NameAtOrder    string  `json:"name_at_order"`
}

type orderResponse struct {
	ID         int64               `json:"id"`
	UserID     int64               `json:"user_id"`
	TotalPrice float64             `json:"total_price"`
	Status     string              `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	Items      []orderItemResponse `json:"items"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

type menuItemPayload struct {
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Price        float64            `json:"price"`
	Image        string             `json:"image"`
	Availability []string           `json:"availability"`
	Proportions  map[string]float64 `json:"proportions"`
	Available    bool               `json:"available"`
}

type menuItemResponse struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Price        float64            `json:"price"`
	Image        string             `json:"image"`
	Availability []string           `json:"availability"`
	Proportions  map[string]float64 `json:"proportions"`
	Available    bool               `json:"available"`
	CreatedAt    time.Time          `json:"created_at"`
	DeletedFrom  *time.Time         `json:"deleted_from,omitempty"`
}

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	TeamID   *int64 `json:"team_id,omitempty"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	TeamID    *int64    `json:"team_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

type createTeamRequest struct {
	Name string `json:"name"`
}

type teamResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	ActivatedFrom time.Time `json:"activated_from"`
}

func toOrderResponse(order *models.Order) orderResponse {
	items := make([]orderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = orderItemResponse{
			ID:             item.ID,
			MenuItemID:     item.MenuItemID,
			ProportionName: item.ProportionName,
			Quantity:       item.Quantity,
			PriceAtOrder:   item.PriceAtOrder,
			NameAtOrder:    item.NameAtOrder,
		}
	}
	return orderResponse{
		ID:         order.ID,
		UserID:     order.UserID,
		TotalPrice: order.TotalPrice,
		Status:     order.Status,
		CreatedAt:  order.CreatedAt,
		Items:      items,
	}
}

func toOrderResponses(orders []models.Order) []orderResponse {
	out := make([]orderResponse, len(orders))
	for i := range orders {
		out[i] = toOrderResponse(&orders[i])
	}
	return out
}

func toMenuItemResponse(item *models.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:           item.ID,
		Name:         item.Name,
		Description:  item.Description,
		Price:        item.Price,
		Image:        item.Image,
		Availability: item.Availability,
		Proportions:  item.Proportions,
		Available:    item.Available,
		CreatedAt:    item.CreatedAt,
		DeletedFrom:  item.DeletedFrom,
	}
}

func toUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		TeamID:    user.TeamID,
		CreatedAt: user.CreatedAt,
		IsActive:  user.IsActive,
	}
}

func toTeamResponse(team *models.Team) teamResponse {
	return teamResponse{ID: team.ID, Name: team.Name, ActivatedFrom: team.ActivatedFrom}
}
